// Package options provides option checks shared by the CLI and the MCP server.
package options

import (
	"fmt"

	"github.com/docsync/docsync/document"
	"github.com/docsync/docsync/oaserrors"
)

// ValidateSingleInputSource ensures exactly one input source is specified.
// sources is a variadic list of booleans indicating whether each source is set.
// Returns an *oaserrors.UsageError naming option when zero or more than one
// source is set.
func ValidateSingleInputSource(option string, sources ...bool) error {
	count := 0
	for _, hasSource := range sources {
		if hasSource {
			count++
		}
	}

	if count != 1 {
		return &oaserrors.UsageError{
			Option:  option,
			Message: fmt.Sprintf("exactly one input source must be provided (got %d)", count),
		}
	}
	return nil
}

// ParseOutputFormat maps an output format name to a document serialization.
// The empty string selects fallback.
func ParseOutputFormat(name string, fallback document.SourceFormat) (document.SourceFormat, error) {
	switch name {
	case "":
		return fallback, nil
	case string(document.SourceFormatJSON):
		return document.SourceFormatJSON, nil
	case string(document.SourceFormatYAML), "yml":
		return document.SourceFormatYAML, nil
	default:
		return "", &oaserrors.UsageError{
			Option:  "format",
			Value:   name,
			Message: "valid formats are json and yaml",
		}
	}
}
