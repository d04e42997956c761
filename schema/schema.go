package schema

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Scope is the declaration level a property applies to.
type Scope string

const (
	// ScopeFile covers the document-level comment block at file top.
	ScopeFile Scope = "file"
	// ScopeFunction covers blocks preceding function declarations.
	ScopeFunction Scope = "function"
)

// ErrUnknownScope indicates an unrecognized scope name.
var ErrUnknownScope = errors.New("unknown scope")

// Scopes returns all scopes in validation order.
func Scopes() []Scope {
	return []Scope{ScopeFile, ScopeFunction}
}

// ParseScope parses a scope name.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeFile:
		return ScopeFile, nil
	case ScopeFunction:
		return ScopeFunction, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownScope, s)
}

// Definition describes one property: whether a conforming block must carry
// it, the severity reported when a required property is absent, and prose
// for hosts. Severity is inert for optional properties; absence of an
// optional property never produces a finding.
type Definition struct {
	Severity    Severity
	Description string
	Required    bool
}

// ScopeSchema is the resolved, ordered property set for one scope.
// Immutable once published in a [Snapshot].
type ScopeSchema struct {
	defs  map[string]Definition
	names []string
}

// Names returns the property names in resolved order: defaults first, then
// configured additions in the order their layers listed them. The returned
// slice must not be modified.
func (s *ScopeSchema) Names() []string {
	return s.names
}

// Get returns the definition for name.
func (s *ScopeSchema) Get(name string) (Definition, bool) {
	d, ok := s.defs[name]

	return d, ok
}

// Len returns the number of properties defined for the scope.
func (s *ScopeSchema) Len() int {
	return len(s.names)
}

// add appends name with a neutral base definition if it is not present.
func (s *ScopeSchema) add(name string) {
	if _, ok := s.defs[name]; ok {
		return
	}

	s.names = append(s.names, name)
	s.defs[name] = Definition{Severity: SeverityInfo}
}

func (s *ScopeSchema) equal(other *ScopeSchema) bool {
	return slices.Equal(s.names, other.names) && maps.Equal(s.defs, other.defs)
}

// defaultScopes returns a fresh copy of the built-in schema. Process-wide
// constants; configuration layers merge on top, never replace.
func defaultScopes() map[Scope]*ScopeSchema {
	file := &ScopeSchema{
		names: []string{"author", "description", "version"},
		defs: map[string]Definition{
			"author": {
				Required:    true,
				Severity:    SeverityError,
				Description: "Who owns this file.",
			},
			"description": {
				Severity:    SeverityInfo,
				Description: "What this file is for.",
			},
			"version": {
				Severity:    SeverityInfo,
				Description: "Document revision of this file.",
			},
		},
	}

	function := &ScopeSchema{
		names: []string{"description", "params", "returns"},
		defs: map[string]Definition{
			"description": {
				Required:    true,
				Severity:    SeverityError,
				Description: "What this function does.",
			},
			"params": {
				Severity:    SeverityInfo,
				Description: "Meaning of each parameter.",
			},
			"returns": {
				Severity:    SeverityInfo,
				Description: "Meaning of the return value.",
			},
		},
	}

	return map[Scope]*ScopeSchema{
		ScopeFile:     file,
		ScopeFunction: function,
	}
}
