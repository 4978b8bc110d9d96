package analyzer

import (
	"slices"
	"strings"

	"github.com/docsync/docsync/oaserrors"
)

// SupportedFeatureKeys returns every feature key in catalog order, OpenAPI
// features first, followed by the catch-all ReadMeKey.
func SupportedFeatureKeys() []string {
	keys := append(OpenAPIFeatureKeys(), PlatformFeatureKeys()...)
	return append(keys, ReadMeKey)
}

// ValidateFeatureKeys checks user-supplied feature names against the
// catalog before any analysis runs. ReadMeKey expands to every platform
// extension key. Duplicates are dropped and input order is kept.
//
// Unknown names produce a single *oaserrors.UsageError naming all of them.
func ValidateFeatureKeys(keys []string) ([]string, error) {
	supported := SupportedFeatureKeys()
	var (
		out     []string
		unknown []string
	)
	for _, key := range keys {
		switch {
		case key == ReadMeKey:
			for _, k := range PlatformFeatureKeys() {
				if !slices.Contains(out, k) {
					out = append(out, k)
				}
			}
		case slices.Contains(supported, key):
			if !slices.Contains(out, key) {
				out = append(out, key)
			}
		default:
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		return nil, &oaserrors.UsageError{
			Option:  "feature",
			Value:   strings.Join(unknown, ", "),
			Message: "unknown feature key; supported keys are " + strings.Join(supported, ", "),
		}
	}
	return out, nil
}
