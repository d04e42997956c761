package source

import (
	"fmt"
	"slices"
)

// Function is one heuristically located function-like declaration. Start is
// the offset of the declaration's first token. Recomputed on every analysis
// pass and discarded afterwards; never cached across edits.
type Function struct {
	Name      string
	Start     int
	Anonymous bool
}

// Functions finds function-like declarations in text using lang's
// declaration patterns, eagerly and in a single pass per pattern. Results
// are ordered by ascending start offset and deduplicated by offset, with
// earlier patterns taking precedence. Declarations with no discoverable
// name get a synthetic display name and still participate in validation.
func Functions(text string, lang Language) []Function {
	var fns []Function

	seen := make(map[int]bool)

	for _, decl := range lang.Declarations {
		for _, idx := range decl.Pattern.FindAllStringSubmatchIndex(text, -1) {
			start := idx[0]
			// Patterns anchor at line starts; the declaration's first
			// token begins after the indentation.
			for start < len(text) && (text[start] == ' ' || text[start] == '\t') {
				start++
			}

			if seen[start] {
				continue
			}

			fn := Function{Start: start}
			if idx[2] >= 0 {
				fn.Name = text[idx[2]:idx[3]]
			}

			if fn.Name == "" {
				fn.Name = fmt.Sprintf("anonymous@%d", start)
				fn.Anonymous = true
			} else if slices.Contains(decl.Reject, fn.Name) {
				continue
			}

			seen[start] = true
			fns = append(fns, fn)
		}
	}

	slices.SortFunc(fns, func(a, b Function) int {
		return a.Start - b.Start
	})

	return fns
}
