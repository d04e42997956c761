package report

import (
	"github.com/luketych/luke-linter/lint"
	"github.com/luketych/luke-linter/schema"
)

// Diagnostic is a display-ready finding: absolute document offsets with
// 1-based line and column, plus the owning function's name for
// function-scope findings.
type Diagnostic struct {
	Path     string          `json:"path"`
	Function string          `json:"function,omitempty"`
	Property string          `json:"property,omitempty"`
	Kind     lint.Kind       `json:"kind"`
	Severity schema.Severity `json:"severity"`
	Message  string          `json:"message"`
	Offset   int             `json:"offset"`
	Line     int             `json:"line"`
	Column   int             `json:"column"`
}

// Flatten converts a [lint.FileReport] into diagnostics in engine order:
// file findings first, then per-function findings in declaration order.
//
// The engine reports ranges relative to each comment block's text, so
// Flatten adds the block's absolute start. Block-absence findings have no
// block: the file-scope one anchors at the document start and function
// ones at their declaration's first token.
func Flatten(fr lint.FileReport) []Diagnostic {
	ix := NewIndex(fr.Source)

	diags := make([]Diagnostic, 0, len(fr.Findings))

	for _, f := range fr.Findings {
		offset := f.Start
		if fr.Block != nil {
			offset += fr.Block.Start
		}

		diags = append(diags, newDiagnostic(fr.Path, "", f, offset, ix))
	}

	for _, fn := range fr.Functions {
		for _, f := range fn.Findings {
			offset := fn.Function.Start
			if fn.Block != nil {
				offset = fn.Block.Start + f.Start
			}

			diags = append(diags, newDiagnostic(fr.Path, fn.Function.Name, f, offset, ix))
		}
	}

	return diags
}

func newDiagnostic(path, function string, f lint.Finding, offset int, ix *Index) Diagnostic {
	line, col := ix.Position(offset)

	return Diagnostic{
		Path:     path,
		Function: function,
		Property: f.Property,
		Kind:     f.Kind,
		Severity: f.Severity,
		Message:  f.Message,
		Offset:   offset,
		Line:     line,
		Column:   col,
	}
}
