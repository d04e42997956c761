package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// Severity classifies how a host should surface a finding.
type Severity string

const (
	// SeverityError marks findings that should fail a run.
	SeverityError Severity = "error"
	// SeverityWarning marks findings worth attention but not failure.
	SeverityWarning Severity = "warning"
	// SeverityInfo marks purely informational findings.
	SeverityInfo Severity = "info"
)

// ErrUnknownSeverity indicates an unrecognized severity string.
var ErrUnknownSeverity = errors.New("unknown severity")

// ParseSeverity parses a severity string, case-insensitively. "warn" is
// accepted as an alias for "warning".
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(s) {
	case "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownSeverity, s)
}

// GetAllSeverityStrings returns all valid severity strings in decreasing
// order of severity, for flag help and shell completion.
func GetAllSeverityStrings() []string {
	return []string{
		string(SeverityError),
		string(SeverityWarning),
		string(SeverityInfo),
	}
}

// AtLeast reports whether s is at least as severe as other.
func (s Severity) AtLeast(other Severity) bool {
	return s.rank() >= other.rank()
}

func (s Severity) rank() int {
	switch s {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	}

	return 0
}

// String returns the severity string.
func (s Severity) String() string {
	return string(s)
}

// UnmarshalJSON validates the severity while decoding, so malformed
// configuration entries surface as entry-level errors.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownSeverity, data)
	}

	sev, err := ParseSeverity(raw)
	if err != nil {
		return err
	}

	*s = sev

	return nil
}

// UnmarshalYAML validates the severity while decoding YAML layers.
func (s *Severity) UnmarshalYAML(data []byte) error {
	var raw string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownSeverity, data)
	}

	sev, err := ParseSeverity(raw)
	if err != nil {
		return err
	}

	*s = sev

	return nil
}
