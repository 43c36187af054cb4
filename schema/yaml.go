package schema

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// FromYAML decodes a schema document authored in YAML. Mapping order is
// preserved by walking the yaml.Node tree directly instead of decoding into a
// Go map. Multi-document inputs use the first document. Failures are reported
// as Issues, the same error model as ParseJSON.
func FromYAML(data []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, parseIssue(CodeParseError, err)
	}
	root := &doc
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return &Node{}, nil
		}
		root = doc.Content[0]
	}
	n, err := nodeFromYAML(root)
	if err != nil {
		return nil, parseIssue(CodeInvalidType, err)
	}
	return n, nil
}

func nodeFromYAML(y *yaml.Node) (*Node, error) {
	if y.Kind != yaml.MappingNode {
		// scalar/sequence in node position: tolerated, same as the JSON path
		return &Node{}, nil
	}
	n := &Node{}
	for i := 0; i+1 < len(y.Content); i += 2 {
		keyNode, valNode := y.Content[i], y.Content[i+1]
		var key string
		if err := keyNode.Decode(&key); err != nil {
			return nil, fmt.Errorf("schema: yaml mapping key: %w", err)
		}
		switch {
		case key == "type":
			var s string
			if err := valNode.Decode(&s); err == nil {
				n.Type = s
			}
		case key == "properties":
			if valNode.Kind != yaml.MappingNode {
				continue
			}
			fs := NewFields()
			for p := 0; p+1 < len(valNode.Content); p += 2 {
				var name string
				if err := valNode.Content[p].Decode(&name); err != nil {
					return nil, fmt.Errorf("schema: yaml property name: %w", err)
				}
				child, err := nodeFromYAML(valNode.Content[p+1])
				if err != nil {
					return nil, err
				}
				fs.Set(name, child)
			}
			n.Properties = fs
		case key == "items":
			if valNode.Kind == yaml.MappingNode {
				c, err := nodeFromYAML(valNode)
				if err != nil {
					return nil, err
				}
				n.Items = c
			}
		case key == "additionalProperties":
			if valNode.Kind == yaml.MappingNode {
				c, err := nodeFromYAML(valNode)
				if err != nil {
					return nil, err
				}
				n.AdditionalProperties = c
			}
		case key == AnnotKey:
			// non-mapping slot values are foreign shapes, skipped
			if valNode.Kind != yaml.MappingNode {
				continue
			}
			var m map[string]any
			if err := valNode.Decode(&m); err != nil {
				return nil, fmt.Errorf("schema: yaml annotation slot: %w", err)
			}
			for k, v := range m {
				n.setAnnot(k, normalizeYAMLValue(v))
			}
		case strings.HasPrefix(key, AnnotPrefix):
			var v any
			if err := valNode.Decode(&v); err != nil {
				return nil, fmt.Errorf("schema: yaml annotation %q: %w", key, err)
			}
			n.setAnnot(key[len(AnnotPrefix):], normalizeYAMLValue(v))
		default:
			// unknown keyword: skip
		}
	}
	return n, nil
}

// normalizeYAMLValue converts YAML-decoded values into their JSON-like shape
// (map[string]any keys, float64 numbers) so annotation decoding sees one form.
func normalizeYAMLValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = normalizeYAMLValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = normalizeYAMLValue(vv)
		}
		return out
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = normalizeYAMLValue(t[i])
		}
		return arr
	case int:
		return float64(t)
	case int64:
		return float64(t)
	default:
		return v
	}
}
