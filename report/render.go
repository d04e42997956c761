package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/luketych/luke-linter/lint"
	"github.com/luketych/luke-linter/schema"
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}

// Printer renders diagnostics as text, one per line:
//
//	path:line:col: severity: message (function)
//
// Create instances with [NewPrinter].
type Printer struct {
	w      io.Writer
	colors map[schema.Severity]*color.Color
}

// PrinterOption configures a [Printer].
type PrinterOption func(*Printer)

// WithColor forces severity coloring on or off. Without this option the
// printer colors only when writing to a terminal.
func WithColor(enabled bool) PrinterOption {
	return func(p *Printer) {
		p.colors = severityColors(enabled)
	}
}

// NewPrinter creates a [Printer] writing to w.
func NewPrinter(w io.Writer, opts ...PrinterOption) *Printer {
	p := &Printer{
		w:      w,
		colors: severityColors(IsTerminal(w)),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// severityColors builds per-severity sprint styles. Explicit enable and
// disable overrides the color package's own environment detection.
func severityColors(enabled bool) map[schema.Severity]*color.Color {
	colors := map[schema.Severity]*color.Color{
		schema.SeverityError:   color.New(color.FgRed, color.Bold),
		schema.SeverityWarning: color.New(color.FgYellow),
		schema.SeverityInfo:    color.New(color.FgCyan),
	}

	for _, c := range colors {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return colors
}

// Print writes one line per diagnostic.
func (p *Printer) Print(diags []Diagnostic) error {
	for _, d := range diags {
		label := string(d.Severity)
		if c, ok := p.colors[d.Severity]; ok {
			label = c.Sprint(label)
		}

		suffix := ""
		if d.Function != "" {
			suffix = " (" + d.Function + ")"
		}

		_, err := fmt.Fprintf(p.w, "%s:%d:%d: %s: %s%s\n",
			d.Path, d.Line, d.Column, label, d.Message, suffix)
		if err != nil {
			return fmt.Errorf("write diagnostic: %w", err)
		}
	}

	return nil
}

// Summary writes the closing line of a batch run: analyzed file and
// finding totals, plus the unreadable-file count when nonzero.
func (p *Printer) Summary(s lint.Summary) error {
	findings := s.Total(schema.SeverityInfo)

	_, err := fmt.Fprintf(p.w, "%d files, %d findings", s.Files, findings)
	if err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	if s.Failures > 0 {
		if _, err := fmt.Fprintf(p.w, ", %d unreadable", s.Failures); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}

	if _, err := fmt.Fprintln(p.w); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	return nil
}

// JSON writes every diagnostic plus the run summary as one indented JSON
// document, for editor and CI consumption.
func JSON(w io.Writer, diags []Diagnostic, s lint.Summary) error {
	if diags == nil {
		diags = []Diagnostic{}
	}

	counts := s.Counts
	if counts == nil {
		counts = map[schema.Severity]int{}
	}

	out := struct {
		Diagnostics []Diagnostic            `json:"diagnostics"`
		Files       int                     `json:"files"`
		Failures    int                     `json:"failures"`
		Counts      map[schema.Severity]int `json:"counts"`
	}{
		Diagnostics: diags,
		Files:       s.Files,
		Failures:    s.Failures,
		Counts:      counts,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode diagnostics: %w", err)
	}

	return nil
}
