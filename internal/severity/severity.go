// Package severity provides the severity levels attached to validation and
// conversion issues.
//
// Levels are ordered from most to least severe: Error, Warning, Info.
// Only SeverityError issues fail a pipeline stage.
package severity

import "fmt"

// Severity indicates how serious an issue is.
type Severity int

const (
	// SeverityError marks a violation that makes the document unusable.
	SeverityError Severity = iota

	// SeverityWarning marks a problem that does not stop processing, such as
	// a lossy conversion.
	SeverityWarning

	// SeverityInfo marks a note about a choice made during processing.
	SeverityInfo
)

// String returns the lowercase name of the level.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Symbol returns the single-character glyph used in terminal output.
func (s Severity) Symbol() string {
	switch s {
	case SeverityError:
		return "✗"
	case SeverityWarning:
		return "⚠"
	case SeverityInfo:
		return "ℹ"
	default:
		return "?"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	default:
		return fmt.Errorf("severity: unknown level %q", string(text))
	}
	return nil
}
