// Package document holds API definitions as an order-preserving generic tree.
//
// Objects decode to [*Map], arrays to []any and scalars to plain Go values.
// Key order from the source survives decoding, every transformation and
// encoding, so a definition written back out differs from its source only
// where it was changed.
//
// # Decoding
//
// [Parse] accepts JSON or YAML. The serialization is detected from content:
//
//	doc, err := document.Parse(data)
//	format, version := doc.Classify() // openapi 3.1.0, swagger 2.0, postman 2.1.0
//
// # Encoding
//
// [MarshalJSON], [MarshalJSONIndent] and [MarshalYAML] write a tree in key
// order. *Map also implements json.Marshaler and yaml.Marshaler.
//
// # References
//
// [Resolve] follows a "#/..." JSON pointer; [WalkRefs] and [RewriteRefs]
// visit every $ref in a subtree.
package document
