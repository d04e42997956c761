package lint

import (
	"strings"

	"github.com/luketych/luke-linter/proptag"
	"github.com/luketych/luke-linter/schema"
	"github.com/luketych/luke-linter/source"
)

// Template renders a comment block that satisfies validation for a scope:
// the master marker plus one empty tag pair per property defined for the
// scope, in resolved order, wrapped in the language's block delimiters.
// Scanning and validating the result yields zero findings.
func Template(sc schema.Scope, snap *schema.Snapshot, lang source.Language) string {
	var b strings.Builder

	b.WriteString(lang.BlockOpen)
	b.WriteString("\n")
	b.WriteString(proptag.OpenMarker(MasterProperty))
	b.WriteString(proptag.CloseMarker(MasterProperty))
	b.WriteString("\n")

	for _, name := range snap.Scope(sc).Names() {
		if name == MasterProperty {
			continue
		}

		b.WriteString(proptag.OpenMarker(name))
		b.WriteString("\n\n")
		b.WriteString(proptag.CloseMarker(name))
		b.WriteString("\n")
	}

	b.WriteString(lang.BlockClose)
	b.WriteString("\n")

	return b.String()
}

// InsertFileTemplate prepends a file-scope template to a document lacking
// a file-level comment block. The boolean reports whether src changed; a
// document that already has a block comes back untouched.
func InsertFileTemplate(src string, snap *schema.Snapshot, lang source.Language) (string, bool) {
	if source.FirstBlock(src, lang) != nil {
		return src, false
	}

	return Template(schema.ScopeFile, snap, lang) + "\n" + src, true
}
