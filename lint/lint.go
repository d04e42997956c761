package lint

import (
	"github.com/luketych/luke-linter/proptag"
	"github.com/luketych/luke-linter/schema"
	"github.com/luketych/luke-linter/source"
)

// Analyzer runs the per-document pipeline: locate the file block and the
// function declarations, scan each associated block for property tags, and
// validate the scanned mappings against one schema snapshot.
type Analyzer struct {
	store *schema.Store
	langs source.Registry
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithStore sets the schema store consulted at the start of each analysis.
func WithStore(store *schema.Store) Option {
	return func(a *Analyzer) {
		a.store = store
	}
}

// WithRegistry sets the language registry used to pick a profile per path.
func WithRegistry(langs source.Registry) Option {
	return func(a *Analyzer) {
		a.langs = langs
	}
}

// NewAnalyzer creates an Analyzer with the given options. Without options
// it validates against the built-in defaults and knows the built-in
// languages.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		store: schema.NewStore(),
		langs: source.DefaultRegistry(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// FunctionReport carries one function's block association and findings.
// Block is nil when no preceding comment block exists; Findings then holds
// the single block-absence finding.
type FunctionReport struct {
	Function source.Function
	Block    *source.CommentBlock
	Findings []Finding
}

// FileReport carries a whole document's validation results: the file-level
// block and its findings, then one [FunctionReport] per declaration in
// source order. Finding offsets are relative to their block's text; Source
// holds the analyzed document so hosts can map them to absolute positions.
type FileReport struct {
	Path      string
	Source    string
	Block     *source.CommentBlock
	Findings  []Finding
	Functions []FunctionReport
}

// Count returns the number of findings at or above sev, across the file
// block and every function.
func (r FileReport) Count(sev schema.Severity) int {
	n := 0

	for _, f := range r.Findings {
		if f.Severity.AtLeast(sev) {
			n++
		}
	}

	for _, fr := range r.Functions {
		for _, f := range fr.Findings {
			if f.Severity.AtLeast(sev) {
				n++
			}
		}
	}

	return n
}

// File analyzes a single document. The language profile is chosen by the
// path's extension, and the schema snapshot is captured once at entry, so
// a concurrent reload never changes rules mid-document.
//
// A document with no comment block at all yields one file-scope
// block-absence finding plus one per function; no per-property findings
// are produced for a block that does not exist.
func (a *Analyzer) File(path, src string) FileReport {
	lang := a.langs.ForPath(path)
	snap := a.store.Resolve()

	report := FileReport{Path: path, Source: src}

	report.Block = source.FirstBlock(src, lang)
	if report.Block != nil {
		m := proptag.Scan(report.Block.Text)
		report.Findings = Validate(m, snap.Scope(schema.ScopeFile))
	} else {
		report.Findings = []Finding{MissingFileBlock()}
	}

	blocks := source.Blocks(src, lang)

	for _, fn := range documentFunctions(src, lang, blocks) {
		fr := FunctionReport{Function: fn}

		fr.Block = source.PrecedingBlock(src, fn.Start, lang)
		if fr.Block != nil {
			m := proptag.Scan(fr.Block.Text)
			fr.Findings = Validate(m, snap.Scope(schema.ScopeFunction))
		} else {
			fr.Findings = []Finding{MissingFunctionBlock(fn.Name)}
		}

		report.Functions = append(report.Functions, fr)
	}

	return report
}

// documentFunctions locates declarations, dropping matches inside comment
// blocks. The declaration patterns run over raw text, so a code sample
// quoted in a comment would otherwise count as a function.
func documentFunctions(src string, lang source.Language, blocks []source.CommentBlock) []source.Function {
	funcs := source.Functions(src, lang)
	if len(blocks) == 0 {
		return funcs
	}

	kept := make([]source.Function, 0, len(funcs))

	for _, fn := range funcs {
		if !insideBlock(blocks, fn.Start) {
			kept = append(kept, fn)
		}
	}

	return kept
}

func insideBlock(blocks []source.CommentBlock, offset int) bool {
	for _, b := range blocks {
		if offset >= b.Start && offset < b.End {
			return true
		}
	}

	return false
}
