package loader

import (
	"fmt"
	"strings"

	"github.com/docsync/docsync/document"
)

// OriginKind tells whether a definition lives on disk or behind a URL.
type OriginKind string

const (
	// OriginPath is a local file path.
	OriginPath OriginKind = "path"
	// OriginURL is an http(s) URL.
	OriginURL OriginKind = "url"
)

// SourceDescriptor identifies a definition to load. It is an immutable value.
type SourceDescriptor struct {
	// Locator is the file path or URL
	Locator string `json:"locator"`
	// OriginKind is path or url
	OriginKind OriginKind `json:"originKind"`
	// DeclaredFormat is the format found by probing, or unknown when the
	// source was given explicitly
	DeclaredFormat document.Format `json:"declaredFormat"`
	// FormatVersion is the version declared by the format marker, if probed
	FormatVersion string `json:"formatVersion,omitempty"`
}

// NewSourceDescriptor wraps an explicit path or URL without probing it.
func NewSourceDescriptor(locator string) SourceDescriptor {
	kind := OriginPath
	if IsURL(locator) {
		kind = OriginURL
	}
	return SourceDescriptor{
		Locator:        locator,
		OriginKind:     kind,
		DeclaredFormat: document.FormatUnknown,
	}
}

// IsURL reports whether locator is an http:// or https:// URL.
func IsURL(locator string) bool {
	return strings.HasPrefix(locator, "http://") || strings.HasPrefix(locator, "https://")
}

// Label describes the source for prompts and notices, e.g.
// "openapi.yaml (OpenAPI 3.1.0)".
func (s SourceDescriptor) Label() string {
	if s.DeclaredFormat == "" || s.DeclaredFormat == document.FormatUnknown {
		return s.Locator
	}
	if s.FormatVersion == "" {
		return fmt.Sprintf("%s (%s)", s.Locator, s.DeclaredFormat.Label())
	}
	return fmt.Sprintf("%s (%s %s)", s.Locator, s.DeclaredFormat.Label(), s.FormatVersion)
}
