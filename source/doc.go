// Package source segments raw source text without parsing it.
//
// It locates block comments and function-like declarations using
// per-language profiles of delimiters and declaration patterns. Detection
// is deliberately heuristic: recognizing common declaration shapes with
// patterns keeps the engine language-agnostic and dependency-free, at the
// cost of full grammatical accuracy. That trade-off is a contract here,
// not a defect; it must not be "fixed" with a compiler front end.
//
// [DefaultRegistry] maps file extensions to the built-in [Language]
// profiles. Hosts may register additional profiles.
package source
