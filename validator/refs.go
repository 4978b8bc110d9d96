package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/docsync/docsync/document"
	"github.com/docsync/docsync/internal/pathutil"
)

// validateLocalRefs reports every internal $ref that does not resolve
// against root. External references are left to the bundler.
func (c *checker) validateLocalRefs(root *document.Map) {
	document.WalkRefs(root, "#", func(pointer, ref string) {
		if !document.IsLocalRef(ref) {
			return
		}
		if _, err := document.Resolve(root, ref); err != nil {
			c.addError(pointer, fmt.Sprintf("Unresolvable $ref %q: %v", ref, err), "reference-object")
		}
	})
}

// validateOperationIDs reports operationIds used by more than one operation.
func (c *checker) validateOperationIDs(root *document.Map) {
	seen := make(map[string]string)
	for _, section := range []string{"paths", "webhooks"} {
		items, _ := root.Map(section)
		for _, op := range document.Operations(items) {
			id, ok := op.Node.String("operationId")
			if !ok || id == "" {
				continue
			}
			ptr := pathutil.Join("#", section, op.Path, op.Method, "operationId")
			if first, dup := seen[id]; dup {
				c.addError(ptr, fmt.Sprintf("Duplicate operationId %q (first used at %s)", id, first), "operation-object")
				continue
			}
			seen[id] = ptr
		}
	}
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

// nonEmptyScalar reports whether m[key] is a non-empty string or a number.
// Numbers are accepted because unquoted YAML versions such as 1.0 decode
// as floats.
func nonEmptyScalar(m *document.Map, key string) bool {
	v, ok := m.Get(key)
	if !ok {
		return false
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t) != ""
	case int, int64, uint64, float64:
		return true
	}
	return false
}

func contains(values []string, v string) bool {
	return slices.Contains(values, v)
}
