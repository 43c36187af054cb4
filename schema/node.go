// Package schema holds the display/data schema document model shared by the
// tree builder and generator. It is deliberately small: enough of
// {type, properties, additionalProperties, items} to walk structure, plus the
// reserved annotation slot. Keyword validation (enum, pattern, ...) is out of
// scope.
//
// Property order is load-bearing for the editor tree, so Properties is an
// ordered field list rather than a map, and the JSON codec is a token-walking
// decoder built on goccy/go-json.
package schema

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	j "github.com/goccy/go-json"
)

// AnnotKey is the reserved object key holding the nested annotation slot.
const AnnotKey = "_ux"

// AnnotPrefix marks flattened annotation keys at node level ("_ux.render_as").
// Both storage forms are readable; Marshal writes only the nested form.
const AnnotPrefix = "_ux."

// Node is one display- or data-schema node. A data schema is a Node tree whose
// Annot slots are simply absent.
type Node struct {
	Type                 string
	Properties           *Fields
	AdditionalProperties *Node
	Items                *Node
	// Annot is the annotation slot, merged from the nested "_ux" object and
	// any flattened "_ux."-prefixed keys found during decode. Nil means no
	// annotations; an empty map never round-trips to "_ux": {}.
	Annot map[string]any
}

// Field is one named property entry.
type Field struct {
	Name string
	Node *Node
}

// Fields is an insertion-ordered name -> *Node collection.
type Fields struct {
	list []Field
	idx  map[string]int
}

// NewFields returns an empty ordered field collection.
func NewFields() *Fields {
	return &Fields{idx: map[string]int{}}
}

// Len reports the number of entries.
func (f *Fields) Len() int {
	if f == nil {
		return 0
	}
	return len(f.list)
}

// Get returns the node for name, or (nil, false) when absent.
func (f *Fields) Get(name string) (*Node, bool) {
	if f == nil {
		return nil, false
	}
	i, ok := f.idx[name]
	if !ok {
		return nil, false
	}
	return f.list[i].Node, true
}

// Set appends a new entry or replaces an existing one in place, preserving
// the original position on replacement.
func (f *Fields) Set(name string, n *Node) {
	if f.idx == nil {
		f.idx = map[string]int{}
	}
	if i, ok := f.idx[name]; ok {
		f.list[i].Node = n
		return
	}
	f.idx[name] = len(f.list)
	f.list = append(f.list, Field{Name: name, Node: n})
}

// All returns the entries in insertion order. The returned slice is the
// internal backing array; callers must not mutate it.
func (f *Fields) All() []Field {
	if f == nil {
		return nil
	}
	return f.list
}

// MarshalJSON emits the fields as a JSON object in insertion order.
func (f *Fields) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, fl := range f.All() {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := j.Marshal(fl.Name)
		if err != nil {
			return nil, err
		}
		b.Write(k)
		b.WriteByte(':')
		v, err := j.Marshal(fl.Node)
		if err != nil {
			return nil, err
		}
		b.Write(v)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving key order.
func (f *Fields) UnmarshalJSON(b []byte) error {
	nf, err := fieldsFromJSON(b)
	if err != nil {
		return err
	}
	if nf == nil {
		nf = NewFields()
	}
	*f = *nf
	return nil
}

// annotOrder is the canonical key order for the nested annotation slot.
// Unknown annotation keys follow, sorted.
var annotOrder = []string{
	"render_as", "display", "label", "order",
	"format", "nudges", "selectable", "highlight",
}

// MarshalJSON emits the node with a fixed key order: type, _ux, properties,
// additionalProperties, items. Only the nested annotation form is written.
func (n *Node) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	b.WriteString(`"type":`)
	t, err := j.Marshal(n.Type)
	if err != nil {
		return nil, err
	}
	b.Write(t)
	if len(n.Annot) > 0 {
		b.WriteString(`,"_ux":`)
		if err := marshalAnnot(&b, n.Annot); err != nil {
			return nil, err
		}
	}
	if n.Properties.Len() > 0 {
		b.WriteString(`,"properties":`)
		p, err := n.Properties.MarshalJSON()
		if err != nil {
			return nil, err
		}
		b.Write(p)
	}
	if n.AdditionalProperties != nil {
		b.WriteString(`,"additionalProperties":`)
		a, err := j.Marshal(n.AdditionalProperties)
		if err != nil {
			return nil, err
		}
		b.Write(a)
	}
	if n.Items != nil {
		b.WriteString(`,"items":`)
		it, err := j.Marshal(n.Items)
		if err != nil {
			return nil, err
		}
		b.Write(it)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func marshalAnnot(b *bytes.Buffer, m map[string]any) error {
	b.WriteByte('{')
	first := true
	write := func(k string, v any) error {
		if !first {
			b.WriteByte(',')
		}
		first = false
		kb, err := j.Marshal(k)
		if err != nil {
			return err
		}
		b.Write(kb)
		b.WriteByte(':')
		vb, err := j.Marshal(v)
		if err != nil {
			return err
		}
		b.Write(vb)
		return nil
	}
	seen := map[string]bool{}
	for _, k := range annotOrder {
		if v, ok := m[k]; ok {
			if err := write(k, v); err != nil {
				return err
			}
			seen[k] = true
		}
	}
	rest := make([]string, 0, len(m))
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		if err := write(k, m[k]); err != nil {
			return err
		}
	}
	b.WriteByte('}')
	return nil
}

// UnmarshalJSON decodes a schema node. Non-object values in node position are
// tolerated and leave the node empty; unknown JSON Schema keywords are skipped.
func (n *Node) UnmarshalJSON(b []byte) error {
	dec := j.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(j.Delim); !ok || d != '{' {
		return nil
	}
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := kt.(string)
		if !ok {
			return fmt.Errorf("schema: object key expected, got %v", kt)
		}
		var raw j.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		switch {
		case key == "type":
			// Non-string types (e.g. type arrays) are ignored; the builder
			// applies its own fallback policy.
			var s string
			if err := j.Unmarshal(raw, &s); err == nil {
				n.Type = s
			}
		case key == "properties":
			fs, err := fieldsFromJSON(raw)
			if err != nil {
				return err
			}
			n.Properties = fs
		case key == "items":
			c, err := childFromJSON(raw)
			if err != nil {
				return err
			}
			n.Items = c
		case key == "additionalProperties":
			// Booleans here are JSON Schema shorthand, not a template.
			c, err := childFromJSON(raw)
			if err != nil {
				return err
			}
			n.AdditionalProperties = c
		case key == AnnotKey:
			// a non-object slot value is a foreign shape, skipped the same
			// way unknown keywords are
			if firstByte(raw) != '{' {
				continue
			}
			var m map[string]any
			if err := j.Unmarshal(raw, &m); err != nil {
				return err
			}
			for k, v := range m {
				n.setAnnot(k, v)
			}
		case strings.HasPrefix(key, AnnotPrefix):
			var v any
			if err := j.Unmarshal(raw, &v); err != nil {
				return err
			}
			n.setAnnot(key[len(AnnotPrefix):], v)
		default:
			// unknown keyword: skip
		}
	}
	// closing '}' is left in the decoder; b is a self-contained value
	return nil
}

func (n *Node) setAnnot(k string, v any) {
	if n.Annot == nil {
		n.Annot = map[string]any{}
	}
	n.Annot[k] = v
}

// childFromJSON parses an object value into a Node; any other value yields nil.
func childFromJSON(raw j.RawMessage) (*Node, error) {
	if firstByte(raw) != '{' {
		return nil, nil
	}
	var c Node
	if err := j.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// fieldsFromJSON token-walks an object to preserve property order.
func fieldsFromJSON(raw j.RawMessage) (*Fields, error) {
	dec := j.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(j.Delim); !ok || d != '{' {
		return nil, nil
	}
	fs := NewFields()
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := kt.(string)
		if !ok {
			return nil, fmt.Errorf("schema: property name expected, got %v", kt)
		}
		var child j.RawMessage
		if err := dec.Decode(&child); err != nil {
			return nil, err
		}
		c, err := childFromJSON(child)
		if err != nil {
			return nil, err
		}
		if c == nil {
			c = &Node{}
		}
		fs.Set(name, c)
	}
	return fs, nil
}

func firstByte(raw []byte) byte {
	for _, c := range raw {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return c
	}
	return 0
}

// ParseJSON decodes a schema document from JSON bytes. Failures are reported
// as Issues carrying CodeParseError.
func ParseJSON(data []byte) (*Node, error) {
	var n Node
	if err := j.Unmarshal(data, &n); err != nil {
		return nil, parseIssue(CodeParseError, err)
	}
	return &n, nil
}
