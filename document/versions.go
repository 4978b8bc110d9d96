package document

import (
	"fmt"
	"strings"

	version "github.com/hashicorp/go-version"
)

// Version strings this tool produces and accepts.
const (
	// ConvertedOpenAPIVersion is the version written by Swagger and Postman conversion.
	ConvertedOpenAPIVersion = "3.0.3"
	// SwaggerVersion is the only Swagger version accepted.
	SwaggerVersion = "2.0"
)

var (
	openAPIConstraint = mustConstraint(">= 3.0.0, < 3.2.0")
	postmanConstraint = mustConstraint(">= 2.0.0, < 3.0.0")
)

func mustConstraint(s string) version.Constraints {
	c, err := version.NewConstraint(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseVersion parses a dotted version string such as "3.0.3" or "2.0".
func ParseVersion(s string) (*version.Version, error) {
	v, err := version.NewVersion(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("document: invalid version %q: %w", s, err)
	}
	return v, nil
}

// IsSupportedOpenAPI reports whether s is an OpenAPI 3.0.x or 3.1.x version.
func IsSupportedOpenAPI(s string) bool {
	v, err := ParseVersion(s)
	if err != nil {
		return false
	}
	return openAPIConstraint.Check(v)
}

// IsSupportedPostman reports whether s is a Postman collection schema 2.x version.
func IsSupportedPostman(s string) bool {
	v, err := ParseVersion(s)
	if err != nil {
		return false
	}
	return postmanConstraint.Check(v)
}

// MinorSeries returns the "major.minor" part of a version ("3.1.0" -> "3.1").
// Unparsable input yields "".
func MinorSeries(s string) string {
	v, err := ParseVersion(s)
	if err != nil {
		return ""
	}
	seg := v.Segments()
	for len(seg) < 2 {
		seg = append(seg, 0)
	}
	return fmt.Sprintf("%d.%d", seg[0], seg[1])
}
