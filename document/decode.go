package document

import (
	"bytes"
	"errors"
	"fmt"

	"go.yaml.in/yaml/v4"
)

// SourceFormat is the serialization a definition was read from.
type SourceFormat string

const (
	// SourceFormatJSON is a JSON serialization.
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatYAML is a YAML serialization.
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatUnknown means the content was empty.
	SourceFormatUnknown SourceFormat = "unknown"
)

// ErrEmpty is returned when decoding empty content.
var ErrEmpty = errors.New("document: empty content")

// DetectFormat reports the serialization of data from its content.
// JSON objects and arrays start with '{' or '[', anything else is YAML.
func DetectFormat(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

// Decode parses JSON or YAML content into the generic tree: *Map for
// objects, []any for arrays and plain Go scalars.
func Decode(data []byte) (any, error) {
	if DetectFormat(data) == SourceFormatUnknown {
		return nil, ErrEmpty
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}
	if node.Kind == 0 {
		return nil, ErrEmpty
	}
	return nodeToValue(&node, 0)
}

// maxAliasDepth bounds alias expansion to guard against alias bombs.
const maxAliasDepth = 100

func nodeToValue(n *yaml.Node, aliasDepth int) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeToValue(n.Content[0], aliasDepth)

	case yaml.MappingNode:
		m := NewMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode, valNode := n.Content[i], n.Content[i+1]
			if keyNode.Kind == yaml.ScalarNode && keyNode.Tag == "!!merge" {
				if err := mergeInto(m, valNode, aliasDepth); err != nil {
					return nil, err
				}
				continue
			}
			val, err := nodeToValue(valNode, aliasDepth)
			if err != nil {
				return nil, err
			}
			m.Set(keyNode.Value, val)
		}
		return m, nil

	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, child := range n.Content {
			val, err := nodeToValue(child, aliasDepth)
			if err != nil {
				return nil, err
			}
			out = append(out, val)
		}
		return out, nil

	case yaml.AliasNode:
		if aliasDepth >= maxAliasDepth || n.Alias == nil {
			return nil, fmt.Errorf("document: alias nesting exceeds %d at line %d", maxAliasDepth, n.Line)
		}
		return nodeToValue(n.Alias, aliasDepth+1)

	case yaml.ScalarNode:
		if n.Tag == "!!str" {
			return n.Value, nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("document: line %d: %w", n.Line, err)
		}
		return v, nil

	default:
		return nil, fmt.Errorf("document: unsupported node kind %v at line %d", n.Kind, n.Line)
	}
}

// mergeInto applies a YAML merge key ("<<") without overriding keys that
// are already set.
func mergeInto(m *Map, src *yaml.Node, aliasDepth int) error {
	val, err := nodeToValue(src, aliasDepth)
	if err != nil {
		return err
	}
	var sources []any
	switch v := val.(type) {
	case *Map:
		sources = []any{v}
	case []any:
		sources = v
	default:
		return fmt.Errorf("document: merge value at line %d is not a mapping", src.Line)
	}
	for _, s := range sources {
		sm, ok := s.(*Map)
		if !ok {
			return fmt.Errorf("document: merge value at line %d is not a mapping", src.Line)
		}
		sm.Range(func(k string, v any) bool {
			if !m.Has(k) {
				m.Set(k, v)
			}
			return true
		})
	}
	return nil
}
