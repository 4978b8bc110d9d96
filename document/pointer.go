package document

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/docsync/docsync/internal/pathutil"
)

// RefKey is the key that marks a reference object.
const RefKey = "$ref"

// Resolve returns the node a "#/..." JSON pointer designates inside root.
// "#" and "" designate root itself.
func Resolve(root any, pointer string) (any, error) {
	parts := pathutil.SplitPointer(pointer)
	current := root
	for i, part := range parts {
		switch v := current.(type) {
		case *Map:
			next, ok := v.Get(part)
			if !ok {
				return nil, fmt.Errorf("reference not found: %s (missing key: %s)", joinTokens(parts[:i+1]), part)
			}
			current = next
		case []any:
			index, err := strconv.Atoi(part)
			if err != nil || index < 0 {
				return nil, fmt.Errorf("invalid array index '%s' in reference: %s (must be a non-negative integer)", part, joinTokens(parts[:i+1]))
			}
			if index >= len(v) {
				return nil, fmt.Errorf("array index %d out of bounds (length %d) in reference: %s", index, len(v), joinTokens(parts[:i+1]))
			}
			current = v[index]
		default:
			return nil, fmt.Errorf("cannot traverse into type %T at %s", v, joinTokens(parts[:i]))
		}
	}
	return current, nil
}

func joinTokens(tokens []string) string {
	return pathutil.Join("#", tokens...)
}

// RefOf returns the $ref string of a reference object.
func RefOf(v any) (string, bool) {
	m, ok := v.(*Map)
	if !ok {
		return "", false
	}
	return m.String(RefKey)
}

// IsLocalRef reports whether ref points inside the current document.
func IsLocalRef(ref string) bool {
	return strings.HasPrefix(ref, "#")
}

// SplitRef splits a reference into its document location and fragment.
// "models.yaml#/Pet" yields ("models.yaml", "#/Pet"); "#/a" yields ("", "#/a");
// "models.yaml" yields ("models.yaml", "#").
func SplitRef(ref string) (location, fragment string) {
	location, frag, found := strings.Cut(ref, "#")
	if !found || frag == "" {
		return location, "#"
	}
	return location, "#" + frag
}

// WalkRefs calls fn for every $ref string found under v, with the JSON
// pointer of the reference object. Traversal is in document order and does
// not follow references.
func WalkRefs(v any, base string, fn func(pointer, ref string)) {
	path := pathutil.Get()
	defer pathutil.Put(path)
	for _, token := range pathutil.SplitPointer(base) {
		path.Push(token)
	}
	walkRefs(v, path, fn)
}

func walkRefs(v any, path *pathutil.PathBuilder, fn func(pointer, ref string)) {
	switch val := v.(type) {
	case *Map:
		if ref, ok := val.String(RefKey); ok {
			fn(path.String(), ref)
		}
		val.Range(func(k string, child any) bool {
			path.Push(k)
			walkRefs(child, path, fn)
			path.Pop()
			return true
		})
	case []any:
		for i, item := range val {
			path.PushIndex(i)
			walkRefs(item, path, fn)
			path.Pop()
		}
	}
}

// RewriteRefs replaces every $ref value under v with the result of fn.
// fn returns the new value and whether to replace it.
func RewriteRefs(v any, fn func(ref string) (string, bool)) {
	switch val := v.(type) {
	case *Map:
		if ref, ok := val.String(RefKey); ok {
			if next, replace := fn(ref); replace {
				val.Set(RefKey, next)
			}
		}
		val.Range(func(_ string, child any) bool {
			RewriteRefs(child, fn)
			return true
		})
	case []any:
		for _, item := range val {
			RewriteRefs(item, fn)
		}
	}
}
