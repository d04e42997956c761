package source

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Declaration is one heuristic declaration pattern. Capture group 1, when
// it participates in a match, is the declaration name; matches without a
// captured name are treated as anonymous.
type Declaration struct {
	Pattern *regexp.Regexp

	// Reject lists captured names that are control-flow keywords rather
	// than declarations, such as "if" captured by a method-like pattern.
	Reject []string
}

// Language describes one supported source ecosystem: how its block
// comments are delimited and how function-like declarations look.
// Declarations are tried in order; earlier patterns win when two match at
// the same offset.
type Language struct {
	Name         string
	BlockOpen    string
	BlockClose   string
	Extensions   []string
	Declarations []Declaration
}

var (
	// CStyle covers the script ecosystems annotated documents come from:
	// JavaScript and TypeScript, including their JSX and module variants.
	CStyle = Language{
		Name:       "cstyle",
		BlockOpen:  "/*",
		BlockClose: "*/",
		Extensions: []string{".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs"},
		Declarations: []Declaration{
			// Named or anonymous function keyword declarations, including
			// generators and exported defaults.
			{Pattern: regexp.MustCompile(
				`(?m)^[ \t]*(?:export[ \t]+)?(?:default[ \t]+)?(?:async[ \t]+)?function\b[ \t]*\*?[ \t]*([A-Za-z_$][A-Za-z0-9_$]*)?[ \t]*\(`,
			)},
			// Function expressions and arrow functions assigned to a
			// binding; the binding is the declaration name.
			{Pattern: regexp.MustCompile(
				`(?m)^[ \t]*(?:export[ \t]+)?(?:const|let|var)[ \t]+([A-Za-z_$][A-Za-z0-9_$]*)[ \t]*=[ \t]*(?:async[ \t]+)?(?:function\b|\([^)\n]*\)[ \t]*=>|[A-Za-z_$][A-Za-z0-9_$]*[ \t]*=>)`,
			)},
			// Method-like shapes inside class and object bodies. The
			// reject list keeps control-flow statements out.
			{
				Pattern: regexp.MustCompile(
					`(?m)^[ \t]*(?:(?:public|private|protected|static|async|get|set)[ \t]+)*([A-Za-z_$][A-Za-z0-9_$]*)[ \t]*\([^)\n]*\)[ \t]*\{`,
				),
				Reject: []string{
					"if", "for", "while", "switch", "catch", "do",
					"function", "return", "new", "else", "try", "typeof",
					"await", "yield",
				},
			},
		},
	}

	// GoLang covers Go sources. Block comments only; line comments are not
	// property carriers.
	GoLang = Language{
		Name:       "go",
		BlockOpen:  "/*",
		BlockClose: "*/",
		Extensions: []string{".go"},
		Declarations: []Declaration{
			{Pattern: regexp.MustCompile(
				`(?m)^func[ \t]+(?:\([^)\n]*\)[ \t]+)?([A-Za-z_][A-Za-z0-9_]*)[ \t]*\(`,
			)},
			{Pattern: regexp.MustCompile(
				`(?m)^[ \t]*(?:var[ \t]+)?([A-Za-z_][A-Za-z0-9_]*)[ \t]*:?=[ \t]*func[ \t]*\(`,
			)},
		},
	}

	// Python uses docstring delimiters as its block comment form.
	Python = Language{
		Name:       "python",
		BlockOpen:  `"""`,
		BlockClose: `"""`,
		Extensions: []string{".py"},
		Declarations: []Declaration{
			{Pattern: regexp.MustCompile(
				`(?m)^[ \t]*(?:async[ \t]+)?def[ \t]+([A-Za-z_][A-Za-z0-9_]*)[ \t]*\(`,
			)},
		},
	}
)

// Registry maps file extensions (with leading dot, lower case) to language
// profiles.
type Registry map[string]Language

// DefaultRegistry returns a [Registry] populated with the built-in
// profiles: [CStyle], [GoLang], and [Python].
func DefaultRegistry() Registry {
	r := make(Registry)
	r.Add(CStyle, GoLang, Python)

	return r
}

// Add registers langs under each of their extensions, replacing earlier
// registrations for the same extension.
func (r Registry) Add(langs ...Language) {
	for _, lang := range langs {
		for _, ext := range lang.Extensions {
			r[strings.ToLower(ext)] = lang
		}
	}
}

// ForPath returns the language registered for path's extension. Unknown
// extensions fall back to [CStyle], which matches the ecosystems annotated
// documents historically come from.
func (r Registry) ForPath(path string) Language {
	if lang, ok := r[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}

	return CStyle
}
