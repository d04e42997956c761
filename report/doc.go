// Package report turns engine output into host diagnostics.
//
// The engine reports finding ranges relative to each comment block's text
// and never sees absolute document coordinates. This package is the CLI's
// host adapter: [Flatten] repositions findings into absolute offsets and
// 1-based line and column positions, [Printer] renders them as colored
// text, and [JSON] emits a machine-readable document for editors and CI.
package report
