package lint_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luketych/luke-linter/lint"
	"github.com/luketych/luke-linter/schema"
	"github.com/luketych/luke-linter/stringtest"
)

// writeFile creates path with content, making parent directories as
// needed.
func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// batchTree lays out a workspace exercising every admission rule: a clean
// file, a failing file, an ignored directory, an unknown extension, and a
// dangling symlink standing in for an unreadable file.
func batchTree(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "a.js"), stringtest.Input(`
		/*
		[[OPEN:masterFormula]][[CLOSE:masterFormula]]
		[[OPEN:author]]ana[[CLOSE:author]]
		*/
		const limit = 10;`))

	writeFile(t, filepath.Join(dir, "b.js"),
		"function add(a, b) { return a + b; }\n")

	writeFile(t, filepath.Join(dir, "node_modules", "dep.js"),
		"function hidden() {}\n")

	writeFile(t, filepath.Join(dir, "notes.txt"), "not source\n")

	require.NoError(t, os.Symlink(
		filepath.Join(dir, "missing-target.js"),
		filepath.Join(dir, "broken.js"),
	))

	return dir
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	dir := batchTree(t)

	ignore, err := lint.CompileIgnore([]string{"**/node_modules/**"})
	require.NoError(t, err)

	var seen []string

	runner := lint.NewRunner(lint.NewAnalyzer(),
		lint.WithIgnore(ignore...),
		lint.WithHandler(func(r lint.FileReport) {
			seen = append(seen, filepath.Base(r.Path))
		}),
	)

	summary := runner.Run(dir)

	assert.Equal(t, 2, summary.Files)
	assert.Equal(t, 1, summary.Failures, "the dangling symlink counts as a failure")

	// a.js is clean; b.js misses its file block and add's block.
	assert.Equal(t, 2, summary.Counts[schema.SeverityError])
	assert.Equal(t, 2, summary.Total(schema.SeverityError))
	assert.Equal(t, 2, summary.Total(schema.SeverityInfo))

	assert.Equal(t, []string{"a.js", "b.js"}, seen,
		"reports arrive in walk order, failures and ignores excluded")
}

func TestRunner_ContinuesPastFailures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	require.NoError(t, os.Symlink(
		filepath.Join(dir, "gone.js"),
		filepath.Join(dir, "aa-broken.js"),
	))

	writeFile(t, filepath.Join(dir, "zz-good.js"), "const n = 1;\n")

	runner := lint.NewRunner(lint.NewAnalyzer())
	summary := runner.Run(dir)

	assert.Equal(t, 1, summary.Failures)
	assert.Equal(t, 1, summary.Files, "a failure earlier in the walk never stops the batch")
}

func TestRunner_NonexistentRoot(t *testing.T) {
	t.Parallel()

	runner := lint.NewRunner(lint.NewAnalyzer())
	summary := runner.Run(filepath.Join(t.TempDir(), "no-such-dir"))

	assert.Zero(t, summary.Files)
	assert.Equal(t, 1, summary.Failures)
}

func TestRunner_SingleFileArgument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "one.js")
	writeFile(t, path, "const n = 1;\n")

	runner := lint.NewRunner(lint.NewAnalyzer())
	summary := runner.Run(path)

	assert.Equal(t, 1, summary.Files)
}

func TestRunner_ExtensionAllowlist(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.js"), "const n = 1;\n")
	writeFile(t, filepath.Join(dir, "b.ts"), "const n = 1;\n")

	var seen []string

	// Entries normalize to a leading dot and lower case.
	runner := lint.NewRunner(lint.NewAnalyzer(),
		lint.WithExtensions("TS"),
		lint.WithHandler(func(r lint.FileReport) {
			seen = append(seen, filepath.Base(r.Path))
		}),
	)

	summary := runner.Run(dir)

	assert.Equal(t, 1, summary.Files)
	assert.Equal(t, []string{"b.ts"}, seen)
}

func TestRunner_Store(t *testing.T) {
	t.Parallel()

	store := schema.NewStore()
	runner := lint.NewRunner(lint.NewAnalyzer(lint.WithStore(store)))

	assert.Same(t, store, runner.Store())
}

func TestRunner_Disabled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.js"), "const n = 1;\n")

	called := false

	runner := lint.NewRunner(lint.NewAnalyzer(),
		lint.WithEnabled(false),
		lint.WithHandler(func(lint.FileReport) { called = true }),
	)

	require.False(t, runner.Enabled())

	summary := runner.Run(dir)

	assert.Zero(t, summary.Files)
	assert.Zero(t, summary.Failures)
	assert.Empty(t, summary.Counts)
	assert.False(t, called)
}

func TestCompileIgnore(t *testing.T) {
	t.Parallel()

	globs, err := lint.CompileIgnore([]string{"**/dist/**", "*.min.js"})
	require.NoError(t, err)
	assert.Len(t, globs, 2)

	_, err = lint.CompileIgnore([]string{"[unclosed"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[unclosed")
}

func TestSummary_Total(t *testing.T) {
	t.Parallel()

	s := lint.Summary{Counts: map[schema.Severity]int{
		schema.SeverityError:   2,
		schema.SeverityWarning: 3,
		schema.SeverityInfo:    5,
	}}

	assert.Equal(t, 2, s.Total(schema.SeverityError))
	assert.Equal(t, 5, s.Total(schema.SeverityWarning))
	assert.Equal(t, 10, s.Total(schema.SeverityInfo))
}
