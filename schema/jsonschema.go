package schema

import (
	"github.com/google/jsonschema-go/jsonschema"
)

// ProjectSchema returns a JSON Schema describing the project configuration
// file, suitable for editor validation of [DefaultProjectFile].
func ProjectSchema() *jsonschema.Schema {
	severity := &jsonschema.Schema{
		Type:        "string",
		Description: "Severity reported when a required property is absent.",
		Enum:        []any{"error", "warning", "info"},
	}

	definition := &jsonschema.Schema{
		Type:        "object",
		Description: "Field-level override of a property definition. Omitted fields inherit from lower-priority layers.",
		Properties: map[string]*jsonschema.Schema{
			"required": {
				Type:        "boolean",
				Description: "Whether every block in the property's scopes must carry it.",
			},
			"severity": severity,
			"description": {
				Type:        "string",
				Description: "Shown by hosts when offering or explaining the property.",
			},
		},
		AdditionalProperties: falseSchema(),
	}

	nameList := &jsonschema.Schema{
		Type:        "array",
		Description: "Ordered property names belonging to the scope.",
		Items: &jsonschema.Schema{
			Type:    "string",
			Pattern: "^[A-Za-z0-9_]+$",
		},
	}

	return &jsonschema.Schema{
		Title:       "luke-linter project configuration",
		Description: "Schema for the " + DefaultProjectFile + " file at the workspace root.",
		Type:        "object",
		Properties: map[string]*jsonschema.Schema{
			"properties": {
				Type:                 "object",
				Description:          "Property definitions keyed by tag name.",
				AdditionalProperties: definition,
			},
			"scopes": {
				Type:        "object",
				Description: "Scope membership lists, merged after the built-in defaults.",
				Properties: map[string]*jsonschema.Schema{
					string(ScopeFile):     nameList,
					string(ScopeFunction): nameList,
				},
				AdditionalProperties: falseSchema(),
			},
		},
		AdditionalProperties: falseSchema(),
	}
}

// falseSchema returns a schema that matches nothing.
func falseSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Not: &jsonschema.Schema{}}
}
