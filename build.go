package uxtree

import (
	"strings"

	"github.com/uxtree-dev/uxtree/schema"
)

// Build walks the display schema and the optional data schema in lockstep and
// produces the merged editor tree. It is a pure function of its inputs: two
// calls with identical schemas yield deep-equal trees.
//
// Diff classification: the root is always normal. A non-root node with no
// display-schema side is addable, except when its shape was inferred from an
// additionalProperties template (the wildcard annotation covers it, so it is
// normal). A node with a display-schema side but no data-schema side is
// deleted, but only when a data schema was supplied at all; with no data
// schema there is nothing to diff against and every node is normal.
func Build(display, data *schema.Node) *ConfiguredNode {
	return buildNode(display, data, nil, RootID, data != nil)
}

func buildNode(display, data *schema.Node, path []string, name string, haveData bool) *ConfiguredNode {
	n := &ConfiguredNode{
		ID:         nodeID(path),
		Name:       name,
		Path:       path,
		SchemaType: resolveType(display, data),
		UX:         DecodeUX(display),
		Diff:       classify(display, data, path, haveData),
	}
	switch n.SchemaType {
	case "object":
		n.Children = buildObjectChildren(display, data, path, haveData)
	case "array":
		n.Children = buildArrayChild(display, data, path, haveData)
	}
	n.IsLeaf = n.Children == nil
	return n
}

func nodeID(path []string) string {
	if len(path) == 0 {
		return RootID
	}
	return strings.Join(path, ".")
}

// resolveType prefers the display schema's declared type, falls back to the
// data schema's, and defaults to object. Never an error.
func resolveType(display, data *schema.Node) string {
	if display != nil && display.Type != "" {
		return display.Type
	}
	if data != nil && data.Type != "" {
		return data.Type
	}
	return "object"
}

func classify(display, data *schema.Node, path []string, haveData bool) DiffStatus {
	if len(path) == 0 {
		return DiffNormal
	}
	if display == nil {
		return DiffAddable
	}
	if haveData && data == nil {
		return DiffDeleted
	}
	return DiffNormal
}

// buildObjectChildren emits children in the load-bearing precedence order:
// display-declared keys first (original order), then data keys covered by the
// display schema's additionalProperties template, then fully-addable data
// keys. The ordering drives on-screen tree order and is stable across
// rebuilds given identical input.
func buildObjectChildren(display, data *schema.Node, path []string, haveData bool) []*ConfiguredNode {
	var kids []*ConfiguredNode
	declared := map[string]bool{}
	if display != nil {
		for _, f := range display.Properties.All() {
			var dataChild *schema.Node
			if data != nil {
				dataChild, _ = data.Properties.Get(f.Name)
			}
			kids = append(kids, buildNode(f.Node, dataChild, childPath(path, f.Name), f.Name, haveData))
			declared[f.Name] = true
		}
	}
	if data != nil {
		var wildcard *schema.Node
		if display != nil {
			wildcard = display.AdditionalProperties
		}
		for _, f := range data.Properties.All() {
			if declared[f.Name] {
				continue
			}
			// wildcard may be nil: the child is then built purely from data
			// shape and classified addable
			kids = append(kids, buildNode(wildcard, f.Node, childPath(path, f.Name), f.Name, haveData))
		}
	}
	return kids
}

// buildArrayChild recurses once into the synthetic "[items]" child combining
// both sides' item schemas, if either exists.
func buildArrayChild(display, data *schema.Node, path []string, haveData bool) []*ConfiguredNode {
	var di, da *schema.Node
	if display != nil {
		di = display.Items
	}
	if data != nil {
		da = data.Items
	}
	if di == nil && da == nil {
		return nil
	}
	return []*ConfiguredNode{
		buildNode(di, da, childPath(path, ItemsSegment), ItemsSegment, haveData),
	}
}

// childPath copies; appending to a shared parent slice would alias siblings.
func childPath(path []string, name string) []string {
	p := make([]string, len(path)+1)
	copy(p, path)
	p[len(path)] = name
	return p
}

// FindByID walks the tree for the node with the given id, nil when absent.
func FindByID(tree *ConfiguredNode, id string) *ConfiguredNode {
	if tree == nil {
		return nil
	}
	if tree.ID == id {
		return tree
	}
	for _, c := range tree.Children {
		if found := FindByID(c, id); found != nil {
			return found
		}
	}
	return nil
}
