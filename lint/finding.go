package lint

import (
	"fmt"

	"github.com/luketych/luke-linter/schema"
)

// MasterProperty is the marker token every documentation block must carry.
// It sits outside the configurable schema: no layer can rename it, disable
// it, or soften its severity.
const MasterProperty = "masterFormula"

// Kind classifies what a [Finding] reports.
type Kind string

const (
	// KindMissingProperty reports a required property with no tag pair in
	// the block.
	KindMissingProperty Kind = "missing-property"

	// KindMissingMarker reports a block lacking the master marker.
	KindMissingMarker Kind = "missing-marker"

	// KindMissingBlock reports a scope with no comment block at all.
	KindMissingBlock Kind = "missing-block"
)

// Finding is a single validation result.
//
// Start and End are byte offsets relative to the comment block's own text,
// never absolute document offsets. Hosts add the block's start offset
// before converting to display positions. Block-absence findings have no
// block to be relative to; their range is zero and the host anchors them
// at the document start (file scope) or the declaration start (function
// scope).
type Finding struct {
	Property string
	Message  string
	Kind     Kind
	Severity schema.Severity
	Start    int
	End      int
}

// missingProperty builds the finding for a required property absent from
// a block, anchored at the block's start.
func missingProperty(name string, sev schema.Severity) Finding {
	return Finding{
		Property: name,
		Message:  "Missing required property: " + name,
		Kind:     KindMissingProperty,
		Severity: sev,
	}
}

// missingMarker builds the finding for a block lacking [MasterProperty].
func missingMarker() Finding {
	return Finding{
		Property: MasterProperty,
		Message:  "Missing required marker: " + MasterProperty,
		Kind:     KindMissingMarker,
		Severity: schema.SeverityError,
	}
}

// MissingFileBlock is the single finding emitted for a document with no
// comment block at its top.
func MissingFileBlock() Finding {
	return Finding{
		Message:  "No documentation block found at top of file",
		Kind:     KindMissingBlock,
		Severity: schema.SeverityError,
	}
}

// MissingFunctionBlock is the finding emitted for a function with no
// preceding comment block.
func MissingFunctionBlock(name string) Finding {
	return Finding{
		Message:  fmt.Sprintf("No documentation block found for function %q", name),
		Kind:     KindMissingBlock,
		Severity: schema.SeverityError,
	}
}
