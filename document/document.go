package document

import (
	"fmt"
	"strings"

	"github.com/docsync/docsync/internal/httputil"
	"github.com/docsync/docsync/internal/pathutil"
	"github.com/docsync/docsync/oaserrors"
)

// Format is the kind of API definition a document holds.
type Format string

const (
	// FormatOpenAPI is an OpenAPI 3.x document.
	FormatOpenAPI Format = "openapi"
	// FormatSwagger is a Swagger 2.0 document.
	FormatSwagger Format = "swagger"
	// FormatPostman is a Postman v2.x collection.
	FormatPostman Format = "postman"
	// FormatUnknown is anything else.
	FormatUnknown Format = "unknown"
)

// Label returns the name shown to users ("OpenAPI", "Swagger", "Postman").
func (f Format) Label() string {
	switch f {
	case FormatOpenAPI:
		return "OpenAPI"
	case FormatSwagger:
		return "Swagger"
	case FormatPostman:
		return "Postman"
	default:
		return "unknown"
	}
}

const postmanSchemaHost = "schema.getpostman.com"

// Document is a definition held as an order-preserving generic tree.
type Document struct {
	// Root is the top-level object
	Root *Map
	// SourceFormat is the serialization the document was read from
	SourceFormat SourceFormat
}

// New wraps root in a Document.
func New(root *Map) *Document {
	return &Document{Root: root, SourceFormat: SourceFormatYAML}
}

// Parse decodes data into a Document. The top level must be an object.
func Parse(data []byte) (*Document, error) {
	v, err := Decode(data)
	if err != nil {
		return nil, err
	}
	root, ok := v.(*Map)
	if !ok {
		return nil, fmt.Errorf("document: top level is %s, expected an object", kindOf(v))
	}
	return &Document{Root: root, SourceFormat: DetectFormat(data)}, nil
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	return &Document{Root: d.Root.Clone(), SourceFormat: d.SourceFormat}
}

// Classify inspects the root markers and returns the definition format and
// the version declared by it.
func (d *Document) Classify() (Format, string) {
	return Classify(d.Root)
}

// Classify inspects root for an openapi, swagger or Postman collection
// marker. Content decides, not file extension.
func Classify(root *Map) (Format, string) {
	if root == nil {
		return FormatUnknown, ""
	}
	if v, ok := root.Get("openapi"); ok {
		return FormatOpenAPI, scalarString(v)
	}
	if v, ok := root.Get("swagger"); ok {
		return FormatSwagger, scalarString(v)
	}
	if info, ok := root.Map("info"); ok {
		schema, _ := info.String("schema")
		if strings.Contains(schema, postmanSchemaHost) {
			return FormatPostman, postmanSchemaVersion(schema)
		}
		if info.Has("_postman_id") {
			return FormatPostman, postmanSchemaVersion(schema)
		}
	}
	return FormatUnknown, ""
}

// postmanSchemaVersion extracts "2.1.0" from
// "https://schema.getpostman.com/json/collection/v2.1.0/collection.json".
func postmanSchemaVersion(schema string) string {
	for _, part := range strings.Split(schema, "/") {
		if len(part) > 1 && part[0] == 'v' && part[1] >= '0' && part[1] <= '9' {
			return part[1:]
		}
	}
	return ""
}

func scalarString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	case float64:
		// swagger: 2.0 unquoted decodes as a float
		s := fmt.Sprintf("%g", val)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	default:
		return fmt.Sprint(val)
	}
}

// OpenAPIVersion returns the openapi field.
func (d *Document) OpenAPIVersion() string {
	v, _ := d.Root.Get("openapi")
	return scalarString(v)
}

// Info returns the info object, or nil.
func (d *Document) Info() *Map {
	info, _ := d.Root.Map("info")
	return info
}

// Title returns info.title.
func (d *Document) Title() string {
	s, _ := d.Info().String("title")
	return s
}

// DefinitionVersion returns info.version, the version of the described API.
func (d *Document) DefinitionVersion() string {
	v, _ := d.Info().Get("version")
	return scalarString(v)
}

// Paths returns the paths object. A missing paths object yields nil;
// anything other than a mapping is a MalformedDocumentError.
func (d *Document) Paths() (*Map, error) {
	return d.section("paths")
}

// Webhooks returns the webhooks object (3.1), with the same rules as Paths.
func (d *Document) Webhooks() (*Map, error) {
	return d.section("webhooks")
}

// Components returns the components object, with the same rules as Paths.
func (d *Document) Components() (*Map, error) {
	return d.section("components")
}

func (d *Document) section(key string) (*Map, error) {
	v, ok := d.Root.Get(key)
	if !ok || v == nil {
		return nil, nil
	}
	m, ok := v.(*Map)
	if !ok {
		return nil, &oaserrors.MalformedDocumentError{
			Pointer: pathutil.Join("#", key),
			Message: fmt.Sprintf("expected a mapping, got %s", kindOf(v)),
		}
	}
	return m, nil
}

// Operation is an operation object with its location.
type Operation struct {
	// Path is the path template or webhook name
	Path string
	// Method is the lowercase HTTP method
	Method string
	// Node is the operation object
	Node *Map
}

// Operations returns the operations of a paths or webhooks object in
// document order. Keys that are not HTTP methods are ignored.
func Operations(items *Map) []Operation {
	var ops []Operation
	items.Range(func(path string, v any) bool {
		if item, ok := v.(*Map); ok {
			ops = appendOperations(ops, path, item)
		}
		return true
	})
	return ops
}

func appendOperations(ops []Operation, path string, item *Map) []Operation {
	item.Range(func(method string, opv any) bool {
		if !httputil.IsMethod(method) {
			return true
		}
		if op, ok := opv.(*Map); ok {
			ops = append(ops, Operation{Path: path, Method: method, Node: op})
		}
		return true
	})
	return ops
}

// ResolvePathItem returns the path item object item stands for, following
// local $ref chains through root. Items without a $ref, and items whose
// $ref points at another document, are returned unchanged. pointer is the
// location of item and is only used in errors.
func ResolvePathItem(root any, item *Map, pointer string) (*Map, error) {
	seen := make(map[string]bool)
	current := item
	for {
		ref, ok := current.String(RefKey)
		if !ok || !IsLocalRef(ref) {
			return current, nil
		}
		if seen[ref] {
			return nil, &oaserrors.MalformedDocumentError{
				Pointer: pointer,
				Message: fmt.Sprintf("circular path item reference %s", ref),
			}
		}
		seen[ref] = true

		target, err := Resolve(root, ref)
		if err != nil {
			return nil, &oaserrors.MalformedDocumentError{Pointer: pointer, Message: err.Error()}
		}
		next, ok := target.(*Map)
		if !ok {
			return nil, &oaserrors.MalformedDocumentError{
				Pointer: pointer,
				Message: fmt.Sprintf("path item reference %s resolves to a %s", ref, kindOf(target)),
			}
		}
		current = next
	}
}

// InlinePathItems replaces every entry of a paths or webhooks object that
// is a local path item reference with a copy of its target. Keys set next
// to the $ref take precedence over the target's. base is the pointer of
// items.
func InlinePathItems(root any, items *Map, base string) error {
	for _, key := range items.Keys() {
		v, _ := items.Get(key)
		item, ok := v.(*Map)
		if !ok {
			continue
		}
		if ref, ok := item.String(RefKey); !ok || !IsLocalRef(ref) {
			continue
		}
		target, err := ResolvePathItem(root, item, pathutil.Join(base, key))
		if err != nil {
			return err
		}
		inlined := target.Clone()
		item.Range(func(k string, sibling any) bool {
			if k != RefKey {
				inlined.Set(k, DeepCopy(sibling))
			}
			return true
		})
		items.Set(key, inlined)
	}
	return nil
}

func kindOf(v any) string {
	switch v.(type) {
	case *Map:
		return "mapping"
	case []any:
		return "sequence"
	case string:
		return "string"
	case nil:
		return "null"
	case bool:
		return "boolean"
	default:
		return "number"
	}
}
