package oaserrors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/docsync/docsync/internal/issues"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrLoad indicates a definition could not be read or parsed.
	ErrLoad = errors.New("load error")

	// ErrAmbiguousDefinition indicates discovery found several candidates
	// and no one could be asked to choose.
	ErrAmbiguousDefinition = errors.New("ambiguous definition")

	// ErrNoDefinitionFound indicates discovery found no candidate.
	ErrNoDefinitionFound = errors.New("no definition found")

	// ErrValidation indicates a definition failed validation.
	ErrValidation = errors.New("validation error")

	// ErrConversion indicates a Swagger or Postman definition could not be
	// converted to OpenAPI.
	ErrConversion = errors.New("conversion error")

	// ErrBundle indicates an external $ref could not be inlined.
	ErrBundle = errors.New("bundle error")

	// ErrMalformedDocument indicates a document does not have the shape of
	// an OpenAPI document.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrEmptyResult indicates a reduction retained no operations.
	ErrEmptyResult = errors.New("empty result")

	// ErrUsage indicates invalid or conflicting caller options.
	ErrUsage = errors.New("usage error")

	// ErrSoftFailure indicates the command produced valid output but the
	// caller should still exit non-zero.
	ErrSoftFailure = errors.New("soft failure")
)

// Issue is a single validation or conversion problem.
type Issue = issues.Issue

// LoadError represents a failure to read or parse a definition.
type LoadError struct {
	// Locator is the file path or URL being loaded
	Locator string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *LoadError) Error() string {
	msg := "load error"
	if e.Locator != "" {
		msg += " for " + e.Locator
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

// AmbiguousDefinitionError is returned when discovery finds more than one
// candidate in a non-interactive environment.
type AmbiguousDefinitionError struct {
	// Candidates lists the locators of every candidate found
	Candidates []string
}

// Error returns a human-readable error message.
func (e *AmbiguousDefinitionError) Error() string {
	return fmt.Sprintf(
		"ambiguous definition: found %d API definitions (%s); pass one explicitly",
		len(e.Candidates), strings.Join(e.Candidates, ", "))
}

// Is reports whether target matches this error type.
func (e *AmbiguousDefinitionError) Is(target error) bool {
	return target == ErrAmbiguousDefinition
}

// NoDefinitionFoundError is returned when discovery finds no candidate.
type NoDefinitionFoundError struct {
	// Dir is the directory that was searched
	Dir string
}

// Error returns a human-readable error message.
func (e *NoDefinitionFoundError) Error() string {
	if e.Dir == "" {
		return "no definition found: could not find an OpenAPI, Swagger or Postman file"
	}
	return fmt.Sprintf("no definition found: could not find an OpenAPI, Swagger or Postman file in %s", e.Dir)
}

// Is reports whether target matches this error type.
func (e *NoDefinitionFoundError) Is(target error) bool {
	return target == ErrNoDefinitionFound
}

// ValidationError represents a definition that failed validation.
// Issues holds every violation found, in document order.
type ValidationError struct {
	// Locator is the file path or URL of the definition
	Locator string
	// Format is the origin format that was validated (openapi, swagger, postman)
	Format string
	// Issues is the complete list of violations
	Issues []Issue
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("validation error")
	if e.Format != "" {
		b.WriteString(" (" + e.Format + ")")
	}
	if e.Locator != "" {
		b.WriteString(" in " + e.Locator)
	}
	fmt.Fprintf(&b, ": %d issue(s)", len(e.Issues))
	for _, i := range e.Issues {
		b.WriteString("\n  ")
		b.WriteString(i.String())
	}
	return b.String()
}

// Is reports whether target matches this error type.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ConversionError represents a failure to convert a definition to OpenAPI.
type ConversionError struct {
	// From is the origin format (swagger, postman)
	From string
	// To is the target version
	To string
	// Pointer locates the construct that could not be converted
	Pointer string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConversionError) Error() string {
	msg := "conversion error"
	if e.From != "" && e.To != "" {
		msg += fmt.Sprintf(" (%s to %s)", e.From, e.To)
	}
	if e.Pointer != "" {
		msg += " at " + e.Pointer
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConversionError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}

// BundleError represents an external $ref that could not be inlined.
type BundleError struct {
	// Ref is the $ref value that failed
	Ref string
	// Pointer is the JSON pointer of the node holding the $ref
	Pointer string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *BundleError) Error() string {
	msg := "bundle error"
	if e.Ref != "" {
		msg += fmt.Sprintf(" resolving %q", e.Ref)
	}
	if e.Pointer != "" {
		msg += " at " + e.Pointer
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *BundleError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *BundleError) Is(target error) bool {
	return target == ErrBundle
}

// MalformedDocumentError is returned when a document violates the shape
// expected of a canonical OpenAPI document, such as paths not being a mapping.
type MalformedDocumentError struct {
	// Pointer is the JSON pointer of the offending node
	Pointer string
	// Message describes the problem
	Message string
}

// Error returns a human-readable error message.
func (e *MalformedDocumentError) Error() string {
	msg := "malformed document"
	if e.Pointer != "" {
		msg += " at " + e.Pointer
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *MalformedDocumentError) Is(target error) bool {
	return target == ErrMalformedDocument
}

// EmptyResultError is returned when a reduction would produce an API with
// no operations.
type EmptyResultError struct {
	// Message explains which criterion matched nothing
	Message string
}

// Error returns a human-readable error message.
func (e *EmptyResultError) Error() string {
	if e.Message == "" {
		return "empty result: all paths in the API definition were removed"
	}
	return "empty result: " + e.Message
}

// Is reports whether target matches this error type.
func (e *EmptyResultError) Is(target error) bool {
	return target == ErrEmptyResult
}

// UsageError represents invalid or conflicting caller input detected before
// any pipeline stage runs.
type UsageError struct {
	// Option is the name of the offending option or argument
	Option string
	// Value is the offending value, if any
	Value any
	// Message describes the problem
	Message string
}

// Error returns a human-readable error message.
func (e *UsageError) Error() string {
	msg := "usage error"
	if e.Option != "" {
		msg += ": " + e.Option
		if e.Value != nil {
			msg += fmt.Sprintf(" (%v)", e.Value)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *UsageError) Is(target error) bool {
	return target == ErrUsage
}

// SoftFailureError signals that valid output was produced but the caller
// should exit with a non-zero status.
type SoftFailureError struct {
	// Message describes why the run is considered unsuccessful
	Message string
}

// Error returns a human-readable error message.
func (e *SoftFailureError) Error() string {
	if e.Message == "" {
		return ErrSoftFailure.Error()
	}
	return ErrSoftFailure.Error() + ": " + e.Message
}

// Is reports whether target matches this error type.
func (e *SoftFailureError) Is(target error) bool {
	return target == ErrSoftFailure
}
