package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"
)

// MarshalJSON writes the map as a JSON object in key order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSONValue(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalYAML implements yaml.Marshaler so the map keeps its key order.
func (m *Map) MarshalYAML() (any, error) {
	return valueToNode(m)
}

// MarshalJSON marshals a generic tree to compact JSON. HTML characters are
// not escaped.
func MarshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSONValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalJSONIndent marshals a generic tree to indented JSON.
func MarshalJSONIndent(v any, indent string) ([]byte, error) {
	data, err := MarshalJSON(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", indent); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// MarshalYAML marshals a generic tree to YAML with two-space indentation,
// preserving key order.
func MarshalYAML(v any) ([]byte, error) {
	node, err := valueToNode(v)
	if err != nil {
		return nil, err
	}
	return yaml.Dump(node, yamlDumpOptions)
}

var yamlDumpOptions = yaml.Options(
	yaml.WithIndent(2),
	yaml.WithLineWidth(-1),
	yaml.WithQuotePreference(yaml.QuoteDouble),
)

// Marshal serializes v in the given format. Unknown formats fall back to YAML.
func Marshal(v any, format SourceFormat) ([]byte, error) {
	if format == SourceFormatJSON {
		return MarshalJSONIndent(v, "  ")
	}
	return MarshalYAML(v)
}

func writeJSONValue(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case *Map:
		if val == nil {
			buf.WriteString("null")
			return nil
		}
		buf.WriteByte('{')
		for i, k := range val.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONScalar(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSONValue(buf, val.values[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case []any:
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case map[string]any:
		// Foreign maps can appear in trees built by hand; encoding/json sorts them.
		return writeJSONScalar(buf, val)
	default:
		return writeJSONScalar(buf, val)
	}
}

func writeJSONScalar(buf *bytes.Buffer, v any) error {
	if f, ok := v.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
		return fmt.Errorf("document: cannot encode %v as JSON", f)
	}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encoder.Encode always appends a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// scalarNode creates a yaml.Node for a scalar value.
func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// valueToNode converts a generic tree value to a yaml.Node.
func valueToNode(v any) (*yaml.Node, error) {
	if v == nil {
		return scalarNode("!!null", "null"), nil
	}

	switch val := v.(type) {
	case bool:
		return scalarNode("!!bool", strconv.FormatBool(val)), nil
	case int:
		return scalarNode("!!int", strconv.Itoa(val)), nil
	case int64:
		return scalarNode("!!int", strconv.FormatInt(val, 10)), nil
	case uint64:
		return scalarNode("!!int", strconv.FormatUint(val, 10)), nil
	case float64:
		return scalarNode("!!float", formatYAMLFloat(val)), nil
	case string:
		return scalarNode("!!str", val), nil
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Content: make([]*yaml.Node, 0, len(val))}
		for _, item := range val {
			child, err := valueToNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case *Map:
		if val == nil {
			return scalarNode("!!null", "null"), nil
		}
		node := &yaml.Node{Kind: yaml.MappingNode, Content: make([]*yaml.Node, 0, 2*len(val.keys))}
		for _, k := range val.keys {
			valNode, err := valueToNode(val.values[k])
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, scalarNode("!!str", k), valNode)
		}
		return node, nil
	default:
		node := &yaml.Node{}
		if err := node.Encode(val); err != nil {
			return nil, fmt.Errorf("document: cannot encode %T: %w", v, err)
		}
		return node, nil
	}
}

// formatYAMLFloat renders f so that it resolves back to a float.
func formatYAMLFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
