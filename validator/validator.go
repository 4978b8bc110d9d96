package validator

import (
	"fmt"

	"github.com/docsync/docsync/document"
	"github.com/docsync/docsync/internal/issues"
	"github.com/docsync/docsync/internal/severity"
)

// Issue represents a single validation issue.
type Issue = issues.Issue

const (
	// SeverityError indicates a violation that makes the document invalid
	SeverityError = severity.SeverityError
	// SeverityWarning indicates a best practice violation or recommendation
	SeverityWarning = severity.SeverityWarning
)

// Result contains the outcome of validating a definition.
type Result struct {
	// Valid is true if no errors were found (warnings are allowed)
	Valid bool
	// Format is the definition format that was validated
	Format document.Format
	// Version is the version declared by the format marker
	Version string
	// Errors contains every error found, in document order
	Errors []Issue
	// Warnings contains every warning found, in document order
	Warnings []Issue
	// ErrorCount is the total number of errors
	ErrorCount int
	// WarningCount is the total number of warnings
	WarningCount int
}

// Validator checks OpenAPI, Swagger and Postman definitions.
type Validator struct {
	// IncludeWarnings determines whether best practice warnings are reported
	IncludeWarnings bool
	// StrictMode adds checks beyond the format requirements
	StrictMode bool
}

// New creates a new Validator instance with default settings.
func New() *Validator {
	return &Validator{IncludeWarnings: true}
}

// Validate checks doc using functional options.
//
// Example:
//
//	result, err := validator.Validate(doc, validator.WithStrictMode(true))
func Validate(doc *document.Document, opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("validator: invalid options: %w", err)
	}
	v := &Validator{IncludeWarnings: cfg.includeWarnings, StrictMode: cfg.strictMode}
	return v.Validate(doc)
}

// Validate checks doc according to the format its root markers declare.
// Every issue is collected; validation never stops at the first error.
func (v *Validator) Validate(doc *document.Document) (*Result, error) {
	if doc == nil || doc.Root == nil {
		return nil, fmt.Errorf("validator: no document")
	}
	format, version := doc.Classify()
	result := &Result{Format: format, Version: version}
	c := &checker{v: v}

	switch format {
	case document.FormatOpenAPI:
		c.validateOAS3(doc, version)
	case document.FormatSwagger:
		c.validateOAS2(doc, version)
	case document.FormatPostman:
		c.validatePostman(doc, version)
	default:
		return nil, fmt.Errorf("validator: unsupported definition: no openapi, swagger or Postman marker")
	}

	result.Errors = c.list.Errors()
	for _, i := range c.list.Items() {
		if i.Severity == SeverityWarning {
			result.Warnings = append(result.Warnings, i)
		}
	}
	result.ErrorCount = len(result.Errors)
	result.WarningCount = len(result.Warnings)
	result.Valid = result.ErrorCount == 0

	if !v.IncludeWarnings {
		result.Warnings = nil
		result.WarningCount = 0
	}
	return result, nil
}

// checker accumulates issues for one Validate call.
type checker struct {
	v       *Validator
	list    issues.List
	baseURL string
}

// addError appends a validation error.
func (c *checker) addError(pointer, message, anchor string) {
	c.list.Append(Issue{Pointer: pointer, Message: message, Severity: SeverityError, SpecRef: c.specRef(anchor)})
}

// addWarning appends a validation warning.
func (c *checker) addWarning(pointer, message, anchor string) {
	c.list.Append(Issue{Pointer: pointer, Message: message, Severity: SeverityWarning, SpecRef: c.specRef(anchor)})
}

func (c *checker) specRef(anchor string) string {
	if anchor == "" || c.baseURL == "" {
		return ""
	}
	return c.baseURL + "#" + anchor
}
