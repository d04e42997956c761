package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/luketych/luke-linter/proptag"
)

// DefaultProjectFile is the well-known project configuration file name,
// resolved against the workspace root.
const DefaultProjectFile = ".luke-linter.json"

var (
	// ErrReadConfig indicates a configuration file could not be read.
	ErrReadConfig = errors.New("read config")
	// ErrParseConfig indicates a configuration document could not be
	// decoded at all. Malformed individual entries are recovered instead.
	ErrParseConfig = errors.New("parse config")
)

// Partial is one property definition as written in a configuration layer.
// Nil fields inherit from lower-priority layers.
type Partial struct {
	Required    *bool     `json:"required,omitempty"    yaml:"required,omitempty"`
	Severity    *Severity `json:"severity,omitempty"    yaml:"severity,omitempty"`
	Description *string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// apply overlays the set fields of p onto base.
func (p Partial) apply(base Definition) Definition {
	if p.Required != nil {
		base.Required = *p.Required
	}

	if p.Severity != nil {
		base.Severity = *p.Severity
	}

	if p.Description != nil {
		base.Description = *p.Description
	}

	return base
}

// Layer is one configuration source's contribution to the resolved schema:
// property definitions keyed by name, and per-scope ordered membership
// lists. Definitions apply to every scope that carries the name; membership
// lists introduce names to a scope.
type Layer struct {
	Properties map[string]Partial `json:"properties,omitempty" yaml:"properties,omitempty"`
	Scopes     map[Scope][]string `json:"scopes,omitempty"     yaml:"scopes,omitempty"`
}

// IsZero reports whether the layer contributes nothing.
func (l Layer) IsZero() bool {
	return len(l.Properties) == 0 && len(l.Scopes) == 0
}

// LoadProject reads the project configuration file at path. A missing file
// is not an error and yields an empty layer.
func LoadProject(path string) (Layer, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Config path comes from the host.
	if errors.Is(err, fs.ErrNotExist) {
		return Layer{}, nil
	}

	if err != nil {
		return Layer{}, fmt.Errorf("%w: %w", ErrReadConfig, err)
	}

	return ParseProject(data)
}

// ParseProject decodes a project configuration document. The document must
// be a JSON object; inside it, each malformed property definition or scope
// list is skipped with a warning while the rest of the layer still applies.
func ParseProject(data []byte) (Layer, error) {
	var raw struct {
		Properties map[string]json.RawMessage `json:"properties"`
		Scopes     map[string]json.RawMessage `json:"scopes"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return Layer{}, fmt.Errorf("%w: %w", ErrParseConfig, err)
	}

	properties := make(map[string]Partial, len(raw.Properties))

	for name, msg := range raw.Properties {
		var p Partial
		if err := json.Unmarshal(msg, &p); err != nil {
			slog.Warn("ignoring malformed property definition",
				slog.String("property", name),
				slog.Any("error", err),
			)

			continue
		}

		properties[name] = p
	}

	scopes := make(map[string][]string, len(raw.Scopes))

	for scopeName, msg := range raw.Scopes {
		var names []string
		if err := json.Unmarshal(msg, &names); err != nil {
			slog.Warn("ignoring malformed scope list",
				slog.String("scope", scopeName),
				slog.Any("error", err),
			)

			continue
		}

		scopes[scopeName] = names
	}

	return NewLayer(properties, scopes), nil
}

// NewLayer normalizes raw configuration input into a Layer. Property names
// a scanner could never match and unknown scope names are skipped with a
// warning each, keeping the rest of the layer usable. Both the project
// file loader and the host settings surface feed through here.
func NewLayer(properties map[string]Partial, scopes map[string][]string) Layer {
	layer := Layer{
		Properties: make(map[string]Partial, len(properties)),
		Scopes:     make(map[Scope][]string, len(scopes)),
	}

	for name, p := range properties {
		if !proptag.ValidName(name) {
			slog.Warn("ignoring property with invalid name",
				slog.String("property", name),
			)

			continue
		}

		layer.Properties[name] = p
	}

	for scopeName, names := range scopes {
		sc, err := ParseScope(scopeName)
		if err != nil {
			slog.Warn("ignoring unknown scope in config",
				slog.String("scope", scopeName),
			)

			continue
		}

		layer.Scopes[sc] = filterNames(sc, names)
	}

	return layer
}

// filterNames drops names a scanner could never recover from a document.
// The input slice is left untouched.
func filterNames(sc Scope, names []string) []string {
	valid := make([]string, 0, len(names))
	for _, name := range names {
		if !proptag.ValidName(name) {
			slog.Warn("ignoring invalid property name in scope list",
				slog.String("scope", string(sc)),
				slog.String("property", name),
			)

			continue
		}

		valid = append(valid, name)
	}

	return valid
}
