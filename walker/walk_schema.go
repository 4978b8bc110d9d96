package walker

import (
	"strconv"

	"github.com/docsync/docsync/document"
	"github.com/docsync/docsync/internal/pathutil"
)

// Schema keywords holding a map of named subschemas.
var schemaMapKeywords = map[string]bool{
	"properties":        true,
	"patternProperties": true,
	"dependentSchemas":  true,
	"$defs":             true,
}

// Schema keywords holding a single subschema.
var schemaKeywords = map[string]bool{
	"additionalProperties":  true,
	"additionalItems":       true,
	"items":                 true,
	"not":                   true,
	"if":                    true,
	"then":                  true,
	"else":                  true,
	"contains":              true,
	"propertyNames":         true,
	"unevaluatedItems":      true,
	"unevaluatedProperties": true,
	"contentSchema":         true,
}

// Schema keywords holding an array of subschemas.
var schemaArrayKeywords = map[string]bool{
	"allOf":       true,
	"anyOf":       true,
	"oneOf":       true,
	"prefixItems": true,
}

// walkSchema walks a schema and its subschemas in document order.
// Non-object schemas (true, false) are ignored.
func (w *Walker) walkSchema(raw any, ptr string, state *walkState, depth int) {
	schema, ok := raw.(*document.Map)
	if !ok || w.stopped {
		return
	}
	if depth > w.maxDepth {
		if w.onSchemaSkipped != nil {
			w.onSchemaSkipped(state.buildContext(ptr), "depth", schema)
		}
		return
	}
	if !visit(w, w.onSchema, state.buildContext(ptr), schema) {
		return
	}
	w.extensions(state, ptr, schema)
	// 3.1 allows keywords next to $ref, so the walk goes on.
	w.ref(state, ptr, schema, NodeSchema)

	schema.Range(func(key string, v any) bool {
		switch {
		case schemaMapKeywords[key]:
			if m, ok := v.(*document.Map); ok {
				m.Range(func(name string, sub any) bool {
					w.walkSchema(sub, pathutil.Join(ptr, key, name), state, depth+1)
					return !w.stopped
				})
			}
		case schemaKeywords[key]:
			// items may be an array in older drafts.
			if list, ok := v.([]any); ok {
				w.walkSchemaList(list, pathutil.Join(ptr, key), state, depth)
			} else {
				w.walkSchema(v, pathutil.Join(ptr, key), state, depth+1)
			}
		case schemaArrayKeywords[key]:
			if list, ok := v.([]any); ok {
				w.walkSchemaList(list, pathutil.Join(ptr, key), state, depth)
			}
		}
		return !w.stopped
	})
}

func (w *Walker) walkSchemaList(list []any, base string, state *walkState, depth int) {
	for i, sub := range list {
		if w.stopped {
			return
		}
		w.walkSchema(sub, base+"/"+strconv.Itoa(i), state, depth+1)
	}
}
