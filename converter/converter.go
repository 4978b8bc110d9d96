package converter

import (
	"fmt"

	"github.com/docsync/docsync/document"
	"github.com/docsync/docsync/internal/issues"
	"github.com/docsync/docsync/internal/severity"
	"github.com/docsync/docsync/oaserrors"
)

// Severity indicates the severity level of a conversion issue
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational messages about conversion choices
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates lossy conversions or best-effort transformations
	SeverityWarning = severity.SeverityWarning
)

// TargetVersion is the OpenAPI version every conversion produces.
const TargetVersion = document.ConvertedOpenAPIVersion

// ConversionIssue represents a single conversion issue or limitation
type ConversionIssue = issues.Issue

// ConversionResult contains the results of converting a definition
type ConversionResult struct {
	// Document is the OpenAPI 3.x document
	Document *document.Document
	// SourceFormat is the format of the input definition
	SourceFormat document.Format
	// SourceVersion is the version declared by the input definition
	SourceVersion string
	// TargetVersion is the openapi field of Document
	TargetVersion string
	// Converted is false when the input was already OpenAPI 3.x
	Converted bool
	// Issues contains all conversion issues in the order they were found
	Issues []ConversionIssue
	// InfoCount is the total number of info messages
	InfoCount int
	// WarningCount is the total number of warnings
	WarningCount int
}

// HasWarnings returns true if there are any warnings
func (r *ConversionResult) HasWarnings() bool {
	return r.WarningCount > 0
}

// Converter turns Swagger 2.0 and Postman collections into OpenAPI 3.0.3.
type Converter struct {
	// IncludeInfo determines whether to include informational messages
	IncludeInfo bool
}

// New creates a new Converter instance with default settings
func New() *Converter {
	return &Converter{IncludeInfo: true}
}

// Convert is a convenience function that converts doc with the specified
// options. It's equivalent to creating a Converter with New() and calling
// Convert().
//
// Example:
//
//	result, err := converter.Convert(doc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, issue := range result.Issues {
//	    fmt.Println(issue)
//	}
func Convert(doc *document.Document, opts ...Option) (*ConversionResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("converter: invalid options: %w", err)
	}
	c := &Converter{IncludeInfo: cfg.includeInfo}
	return c.Convert(doc)
}

// Convert converts doc to OpenAPI 3.0.3. OpenAPI 3.x input passes through
// unchanged. The source document is never modified.
func (c *Converter) Convert(doc *document.Document) (*ConversionResult, error) {
	if doc == nil || doc.Root == nil {
		return nil, fmt.Errorf("converter: no document")
	}
	format, version := doc.Classify()
	result := &ConversionResult{
		SourceFormat:  format,
		SourceVersion: version,
		TargetVersion: TargetVersion,
	}
	state := &conversion{from: format, list: &issues.List{}}

	var err error
	switch format {
	case document.FormatOpenAPI:
		result.Document = doc
		result.TargetVersion = version
		state.list.Infof("#/openapi", "Document is already OpenAPI %s, no conversion needed", version)
	case document.FormatSwagger:
		result.Document, err = state.convertOAS2ToOAS3(doc.Root)
		result.Converted = true
	case document.FormatPostman:
		result.Document, err = state.convertPostmanToOAS3(doc.Root)
		result.Converted = true
	default:
		return nil, &oaserrors.ConversionError{
			From:    string(format),
			To:      TargetVersion,
			Message: "unsupported source format",
		}
	}
	if err != nil {
		return nil, err
	}
	result.Document.SourceFormat = doc.SourceFormat

	for _, issue := range state.list.Items() {
		switch issue.Severity {
		case SeverityInfo:
			if !c.IncludeInfo {
				continue
			}
			result.InfoCount++
		case SeverityWarning:
			result.WarningCount++
		}
		result.Issues = append(result.Issues, issue)
	}
	return result, nil
}

// conversion carries the state of a single Convert call.
type conversion struct {
	from document.Format
	list *issues.List
}

// warn records a lossy or best-effort conversion.
func (s *conversion) warn(pointer, message, context string) {
	s.list.Append(ConversionIssue{Pointer: pointer, Message: message, Severity: SeverityWarning, Context: context})
}

// fail builds the ConversionError returned for constructs that cannot be
// converted at all.
func (s *conversion) fail(pointer, format string, args ...any) error {
	return s.failWithCause(pointer, nil, format, args...)
}

func (s *conversion) failWithCause(pointer string, cause error, format string, args ...any) error {
	return &oaserrors.ConversionError{
		From:    string(s.from),
		To:      TargetVersion,
		Pointer: pointer,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}
