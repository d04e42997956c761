package lint

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/luketych/luke-linter/schema"
)

// Sentinel errors for the host settings surface.
var (
	// ErrReadSettings indicates the settings file could not be read.
	ErrReadSettings = errors.New("read settings")
	// ErrParseSettings indicates the settings document could not be
	// decoded at all. Malformed individual entries are recovered instead.
	ErrParseSettings = errors.New("parse settings")
)

// Settings is the host-supplied YAML configuration surface: an engine
// on/off toggle, the extension allowlist, ignore globs, and inline
// property overrides forming the highest-priority schema layer. All
// fields are read-only inputs to the engine.
type Settings struct {
	Enabled    *bool                     `yaml:"enabled"`
	Extensions []string                  `yaml:"extensions"`
	Ignore     []string                  `yaml:"ignore"`
	Properties map[string]schema.Partial `yaml:"properties"`
	Scopes     map[string][]string       `yaml:"scopes"`
}

// LoadSettings reads a YAML settings document. An empty path or a missing
// file yields zero settings and no error, mirroring the project
// configuration file.
func LoadSettings(path string) (Settings, error) {
	if path == "" {
		return Settings{}, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // Settings path comes from the host.
	if errors.Is(err, fs.ErrNotExist) {
		return Settings{}, nil
	}

	if err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrReadSettings, err)
	}

	return ParseSettings(data)
}

// ParseSettings decodes a YAML settings document. Inside a decodable
// document, each malformed property definition or scope list is skipped
// with a warning while the rest of the document still applies, matching
// the project configuration file.
func ParseSettings(data []byte) (Settings, error) {
	var raw struct {
		Enabled    *bool          `yaml:"enabled"`
		Extensions []string       `yaml:"extensions"`
		Ignore     []string       `yaml:"ignore"`
		Properties map[string]any `yaml:"properties"`
		Scopes     map[string]any `yaml:"scopes"`
	}

	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrParseSettings, err)
	}

	s := Settings{
		Enabled:    raw.Enabled,
		Extensions: raw.Extensions,
		Ignore:     raw.Ignore,
		Properties: make(map[string]schema.Partial, len(raw.Properties)),
		Scopes:     make(map[string][]string, len(raw.Scopes)),
	}

	for name, value := range raw.Properties {
		var p schema.Partial
		if err := retype(value, &p); err != nil {
			slog.Warn("ignoring malformed property definition",
				slog.String("property", name),
				slog.Any("error", err),
			)

			continue
		}

		s.Properties[name] = p
	}

	for scopeName, value := range raw.Scopes {
		var names []string
		if err := retype(value, &names); err != nil {
			slog.Warn("ignoring malformed scope list",
				slog.String("scope", scopeName),
				slog.Any("error", err),
			)

			continue
		}

		s.Scopes[scopeName] = names
	}

	return s, nil
}

// retype round-trips one loosely decoded value through YAML into target,
// so a type error surfaces on that entry alone.
func retype(value, target any) error {
	b, err := yaml.Marshal(value)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(b, target)
}

// EngineEnabled reports the enabled toggle, defaulting to on when unset.
func (s Settings) EngineEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// Layer returns the schema overlay carried by these settings, normalized
// the same way as the project configuration file.
func (s Settings) Layer() schema.Layer {
	return schema.NewLayer(s.Properties, s.Scopes)
}
