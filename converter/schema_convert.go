// This file implements schema conversion from OAS 2.0 to OAS 3.x.

package converter

import (
	"strings"

	"github.com/docsync/docsync/document"
)

// parameterSchemaKeys are the OAS 2.0 parameter and header fields that move
// into the OAS 3.x schema object.
var parameterSchemaKeys = []string{
	"type", "format", "items", "default",
	"maximum", "exclusiveMaximum", "minimum", "exclusiveMinimum",
	"maxLength", "minLength", "pattern",
	"maxItems", "minItems", "uniqueItems",
	"enum", "multipleOf",
}

// literalKeys hold instance values rather than schemas and are not rewritten.
var literalKeys = map[string]bool{
	"example":  true,
	"examples": true,
	"default":  true,
	"enum":     true,
}

// convertOAS2SchemaToOAS3 returns an OAS 3.x copy of an OAS 2.0 schema.
func convertOAS2SchemaToOAS3(schema any) any {
	converted := document.DeepCopy(schema)
	normalizeSchema(converted)
	return converted
}

// normalizeSchema rewrites OAS 2.0 only constructs in place: x-nullable
// becomes nullable, type file becomes a binary string, and a string
// discriminator becomes a discriminator object.
func normalizeSchema(v any) {
	switch val := v.(type) {
	case *document.Map:
		if nullable, ok := val.Bool("x-nullable"); ok {
			val.Delete("x-nullable")
			val.Set("nullable", nullable)
		}
		if t, _ := val.String("type"); t == "file" {
			val.Set("type", "string")
			val.Set("format", "binary")
		}
		if d, ok := val.String("discriminator"); ok {
			val.Set("discriminator", document.FromPairs("propertyName", d))
		}
		val.Range(func(k string, child any) bool {
			if literalKeys[k] || strings.HasPrefix(k, "x-") {
				return true
			}
			normalizeSchema(child)
			return true
		})
	case []any:
		for _, item := range val {
			normalizeSchema(item)
		}
	}
}

// parameterSchema builds the OAS 3.x schema of a non-body parameter or a
// header from its inline type fields.
func parameterSchema(src *document.Map) *document.Map {
	schema := document.NewMap()
	for _, k := range parameterSchemaKeys {
		v, ok := src.Get(k)
		if !ok {
			continue
		}
		if k == "items" {
			items := document.DeepCopy(v)
			if im, ok := items.(*document.Map); ok {
				im.Delete("collectionFormat")
			}
			normalizeSchema(items)
			schema.Set(k, items)
			continue
		}
		schema.Set(k, document.DeepCopy(v))
	}
	normalizeSchema(schema)
	return schema
}
