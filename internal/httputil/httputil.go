// Package httputil provides HTTP-related validation utilities and constants.
package httputil

import (
	"mime"
	"slices"
	"strconv"
	"strings"
)

// HTTP Status Code Constants
const (
	StatusCodeLength = 3   // Standard length of HTTP status codes (e.g., "200", "404")
	MinStatusCode    = 100 // Minimum valid HTTP status code
	MaxStatusCode    = 599 // Maximum valid HTTP status code
	WildcardChar     = 'X' // Wildcard character used in status code patterns (e.g., "2XX")
)

// HTTP Method Constants
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace" // OAS 3.0+ only
)

// Methods lists the operation keys of a path item in the order the
// OpenAPI specification declares them.
var Methods = []string{
	MethodGet,
	MethodPut,
	MethodPost,
	MethodDelete,
	MethodOptions,
	MethodHead,
	MethodPatch,
	MethodTrace,
}

// IsMethod reports whether key is an operation key of a path item.
// Matching is case-sensitive, as path item keys are.
func IsMethod(key string) bool {
	return slices.Contains(Methods, key)
}

// NormalizeMethod lowercases a user-supplied method name and reports
// whether it is a known method.
func NormalizeMethod(method string) (string, bool) {
	m := strings.ToLower(strings.TrimSpace(method))
	return m, IsMethod(m)
}

// ValidateStatusCode checks if a status code string is valid according to OpenAPI spec.
// Valid values are:
//   - "default" for default response
//   - Extension fields starting with "x-"
//   - Wildcard patterns: 1XX, 2XX, 3XX, 4XX, 5XX
//   - Numeric codes: 100-599
func ValidateStatusCode(code string) bool {
	if code == "default" || strings.HasPrefix(code, "x-") {
		return true
	}
	if len(code) != StatusCodeLength {
		return false
	}
	if code[1] == WildcardChar && code[2] == WildcardChar {
		return code[0] >= '1' && code[0] <= '5'
	}
	n, err := strconv.Atoi(code)
	return err == nil && n >= MinStatusCode && n <= MaxStatusCode
}

// IsValidMediaType validates a media type string according to RFC 2045/2046.
// Handles wildcards (*/* and type/*) and prevents invalid combinations (*/subtype).
func IsValidMediaType(mediaType string) bool {
	if mediaType == "*/*" {
		return true
	}
	if prefix, ok := strings.CutSuffix(mediaType, "/*"); ok {
		return prefix != "" && prefix != "*" && !strings.Contains(prefix, "/")
	}
	_, _, err := mime.ParseMediaType(mediaType)
	return err == nil
}
