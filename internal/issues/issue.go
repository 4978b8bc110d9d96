// Package issues provides the issue type shared by validation and conversion.
package issues

import (
	"fmt"

	"github.com/docsync/docsync/internal/severity"
)

// Issue represents a single problem found while validating or converting a
// definition.
type Issue struct {
	// Pointer is the JSON pointer to the offending node (e.g. "#/paths/~1pets/get")
	Pointer string `json:"pointer"`
	// Message is a human-readable description of the issue
	Message string `json:"message"`
	// Severity indicates the severity level of the issue
	Severity severity.Severity `json:"severity"`
	// SpecRef links to the relevant section of the specification (validation use)
	SpecRef string `json:"specRef,omitempty"`
	// Context carries extra detail about a conversion choice (conversion use)
	Context string `json:"context,omitempty"`
}

// String formats the issue for terminal output, prefixed with the severity glyph.
func (i Issue) String() string {
	pointer := i.Pointer
	if pointer == "" {
		pointer = "#"
	}
	result := fmt.Sprintf("%s %s: %s", i.Severity.Symbol(), pointer, i.Message)
	if i.SpecRef != "" {
		result += fmt.Sprintf("\n    Spec: %s", i.SpecRef)
	}
	if i.Context != "" {
		result += fmt.Sprintf("\n    Context: %s", i.Context)
	}
	return result
}

// IsError reports whether the issue is severe enough to fail a stage.
func (i Issue) IsError() bool {
	return i.Severity == severity.SeverityError
}

// List accumulates issues in the order they are found.
type List struct {
	items []Issue
}

// Add appends an issue.
func (l *List) Add(pointer string, sev severity.Severity, format string, args ...any) {
	l.items = append(l.items, Issue{
		Pointer:  pointer,
		Message:  fmt.Sprintf(format, args...),
		Severity: sev,
	})
}

// Errorf appends an error-level issue.
func (l *List) Errorf(pointer, format string, args ...any) {
	l.Add(pointer, severity.SeverityError, format, args...)
}

// Warnf appends a warning-level issue.
func (l *List) Warnf(pointer, format string, args ...any) {
	l.Add(pointer, severity.SeverityWarning, format, args...)
}

// Infof appends an info-level issue.
func (l *List) Infof(pointer, format string, args ...any) {
	l.Add(pointer, severity.SeverityInfo, format, args...)
}

// Append adds already-built issues.
func (l *List) Append(items ...Issue) {
	l.items = append(l.items, items...)
}

// Items returns the accumulated issues.
func (l *List) Items() []Issue {
	return l.items
}

// Errors returns only the error-level issues.
func (l *List) Errors() []Issue {
	var out []Issue
	for _, i := range l.items {
		if i.IsError() {
			out = append(out, i)
		}
	}
	return out
}

// Count returns the number of issues at the given severity.
func (l *List) Count(sev severity.Severity) int {
	n := 0
	for _, i := range l.items {
		if i.Severity == sev {
			n++
		}
	}
	return n
}
