package converter

import (
	"slices"
	"strings"

	"github.com/docsync/docsync/document"
)

const (
	mediaTypeJSON      = "application/json"
	mediaTypeForm      = "application/x-www-form-urlencoded"
	mediaTypeMultipart = "multipart/form-data"
)

// getDefaultMediaType returns the media type used when consumes or produces
// is absent.
func getDefaultMediaType() string {
	return mediaTypeJSON
}

// copyKeys deep-copies the named keys from src to dst when present.
func copyKeys(src, dst *document.Map, keys ...string) {
	for _, k := range keys {
		if v, ok := src.Get(k); ok {
			dst.Set(k, document.DeepCopy(v))
		}
	}
}

// copyExtensions deep-copies every x- key from src to dst.
func copyExtensions(src, dst *document.Map) {
	src.Range(func(k string, v any) bool {
		if strings.HasPrefix(k, "x-") {
			dst.Set(k, document.DeepCopy(v))
		}
		return true
	})
}

// stringSlice returns the string elements of v when v is an array.
func stringSlice(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// toAnySlice converts strings to a document array.
func toAnySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// mergeStringArrays concatenates arrays, dropping duplicates and keeping
// first-seen order.
func mergeStringArrays(arrays ...[]string) []string {
	var out []string
	for _, arr := range arrays {
		for _, s := range arr {
			if !slices.Contains(out, s) {
				out = append(out, s)
			}
		}
	}
	return out
}

// setIfNotEmpty sets key only for non-empty maps and slices.
func setIfNotEmpty(m *document.Map, key string, v any) {
	switch val := v.(type) {
	case *document.Map:
		if val.Len() == 0 {
			return
		}
	case []any:
		if len(val) == 0 {
			return
		}
	case string:
		if val == "" {
			return
		}
	case nil:
		return
	}
	m.Set(key, v)
}
