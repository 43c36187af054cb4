package uxtree

import (
	"github.com/uxtree-dev/uxtree/schema"
)

// Generate projects an editor tree back into a canonical display schema. It
// is the structural inverse of Build: type is always emitted, the annotation
// slot only when non-empty, and object properties contain only children that
// pass the inclusion predicate. additionalProperties is never emitted; the
// builder expands the template into concrete wildcard children, so the
// generator's image contains only type, the annotation slot, properties, and
// items.
func Generate(n *ConfiguredNode) *schema.Node {
	out := &schema.Node{
		Type:  n.SchemaType,
		Annot: EncodeUX(n.UX),
	}
	switch n.SchemaType {
	case "object":
		fs := schema.NewFields()
		for _, c := range n.Children {
			if !included(c) {
				continue
			}
			fs.Set(c.Name, Generate(c))
		}
		if fs.Len() > 0 {
			out.Properties = fs
		}
	case "array":
		for _, c := range n.Children {
			if c.Name == ItemsSegment {
				out.Items = Generate(c)
				break
			}
		}
	}
	return out
}

// included is the inclusion predicate: a child is kept unless it is an
// addable placeholder with no annotation anywhere in its subtree. The moment
// any annotation field is set on it or a descendant, the node is promoted
// into the generated schema.
func included(n *ConfiguredNode) bool {
	if n.Diff != DiffAddable {
		return true
	}
	if !n.UX.IsEmpty() {
		return true
	}
	for _, c := range n.Children {
		if included(c) {
			return true
		}
	}
	return false
}
