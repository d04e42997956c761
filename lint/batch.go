package lint

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/luketych/luke-linter/schema"
)

// Summary aggregates one batch run. Failures counts files that could not
// be read or walked; it is kept apart from finding counts so a partially
// failed run is distinguishable from a clean one.
type Summary struct {
	Files    int
	Failures int
	Counts   map[schema.Severity]int
}

// Total returns the number of findings at or above sev.
func (s Summary) Total(sev schema.Severity) int {
	n := 0

	for level, count := range s.Counts {
		if level.AtLeast(sev) {
			n += count
		}
	}

	return n
}

// Runner walks paths and analyzes matching files sequentially, one
// document fully processed before the next. Per-file failures are logged
// and counted, never fatal: a batch always runs to the end of its inputs.
type Runner struct {
	analyzer   *Analyzer
	extensions []string
	ignore     []glob.Glob
	handle     func(FileReport)
	enabled    bool
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithExtensions sets the extension allowlist. Entries are normalized to
// lowercase with a leading dot. An empty allowlist admits every extension
// the analyzer's language registry knows.
func WithExtensions(exts ...string) RunnerOption {
	return func(r *Runner) {
		for _, ext := range exts {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext == "" {
				continue
			}

			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}

			if !slices.Contains(r.extensions, ext) {
				r.extensions = append(r.extensions, ext)
			}
		}
	}
}

// WithIgnore sets compiled glob patterns matched against slash-separated
// paths. See [CompileIgnore].
func WithIgnore(patterns ...glob.Glob) RunnerOption {
	return func(r *Runner) {
		r.ignore = append(r.ignore, patterns...)
	}
}

// WithHandler sets a callback invoked with each [FileReport] as it is
// produced, in walk order.
func WithHandler(handle func(FileReport)) RunnerOption {
	return func(r *Runner) {
		r.handle = handle
	}
}

// WithEnabled switches the whole engine on or off. A disabled Runner
// returns an empty [Summary] without touching the filesystem.
func WithEnabled(enabled bool) RunnerOption {
	return func(r *Runner) {
		r.enabled = enabled
	}
}

// NewRunner creates a Runner around an Analyzer.
func NewRunner(analyzer *Analyzer, opts ...RunnerOption) *Runner {
	r := &Runner{
		analyzer: analyzer,
		enabled:  true,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// CompileIgnore compiles ignore patterns with '/' as the separator, so a
// single '*' stays within one path segment and '**' crosses segments.
func CompileIgnore(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))

	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("ignore pattern %q: %w", pattern, err)
		}

		globs = append(globs, g)
	}

	return globs, nil
}

// Enabled reports whether Run will analyze anything.
func (r *Runner) Enabled() bool {
	return r.enabled
}

// Store returns the schema store the analyzer validates against.
func (r *Runner) Store() *schema.Store {
	return r.analyzer.store
}

// Run walks each path in order, analyzing every admitted file. Regular
// file arguments are subject to the same extension and ignore filters as
// walked entries.
func (r *Runner) Run(paths ...string) Summary {
	summary := Summary{Counts: make(map[schema.Severity]int)}

	if !r.enabled {
		return summary
	}

	for _, root := range paths {
		r.walk(root, &summary)
	}

	return summary
}

func (r *Runner) walk(root string, summary *Summary) {
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("walk failed, continuing batch",
				slog.String("path", path),
				slog.Any("error", err),
			)

			summary.Failures++

			return nil
		}

		if d.IsDir() {
			if path != root && r.ignored(path) {
				return fs.SkipDir
			}

			return nil
		}

		if !r.wants(path) || r.ignored(path) {
			return nil
		}

		r.file(path, summary)

		return nil
	})
	if walkErr != nil {
		slog.Warn("walk failed, continuing batch",
			slog.String("path", root),
			slog.Any("error", walkErr),
		)

		summary.Failures++
	}
}

func (r *Runner) file(path string, summary *Summary) {
	src, err := os.ReadFile(path) //nolint:gosec // Paths come from the walked workspace.
	if err != nil {
		slog.Warn("read failed, continuing batch",
			slog.String("path", path),
			slog.Any("error", err),
		)

		summary.Failures++

		return
	}

	report := r.analyzer.File(path, string(src))
	summary.Files++

	for _, f := range report.Findings {
		summary.Counts[f.Severity]++
	}

	for _, fr := range report.Functions {
		for _, f := range fr.Findings {
			summary.Counts[f.Severity]++
		}
	}

	if r.handle != nil {
		r.handle(report)
	}
}

func (r *Runner) wants(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))

	if len(r.extensions) == 0 {
		_, known := r.analyzer.langs[ext]

		return known
	}

	return slices.Contains(r.extensions, ext)
}

func (r *Runner) ignored(path string) bool {
	slashed := filepath.ToSlash(path)

	for _, g := range r.ignore {
		if g.Match(slashed) {
			return true
		}
	}

	return false
}
