package lint

import (
	"github.com/luketych/luke-linter/proptag"
	"github.com/luketych/luke-linter/schema"
)

// Validate checks one scanned block against the resolved property set for
// a single scope and returns findings in rule order.
//
// The master marker rule runs first: a block without [MasterProperty]
// produces an error-severity [Finding] no matter what the schema says.
// Property rules follow in resolved order: a required property absent from
// m produces a finding with the definition's configured severity, anchored
// at the block's start. Presence alone satisfies a rule; content is never
// inspected. Tags present in m but not defined for the scope are never
// flagged.
func Validate(m proptag.Mapping, defs *schema.ScopeSchema) []Finding {
	var findings []Finding

	if !m.Has(MasterProperty) {
		findings = append(findings, missingMarker())
	}

	for _, name := range defs.Names() {
		// The marker rule above owns this name even when a configuration
		// layer lists it as an ordinary property.
		if name == MasterProperty {
			continue
		}

		def, ok := defs.Get(name)
		if !ok || !def.Required {
			continue
		}

		if m.Has(name) {
			continue
		}

		findings = append(findings, missingProperty(name, def.Severity))
	}

	return findings
}
