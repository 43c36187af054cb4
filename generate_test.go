package uxtree_test

import (
	"bytes"
	"testing"

	j "github.com/goccy/go-json"

	uxtree "github.com/uxtree-dev/uxtree"
	"github.com/uxtree-dev/uxtree/schema"
)

func marshal(t *testing.T, n *schema.Node) []byte {
	t.Helper()
	b, err := j.Marshal(n)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

func TestGenerate_PrunesUnannotatedAddable(t *testing.T) {
	display := mustSchema(t, `{
		"type": "object",
		"properties": {"known": {"type": "string"}}
	}`)
	data := mustSchema(t, `{
		"type": "object",
		"properties": {
			"known":       {"type": "string"},
			"placeholder": {"type": "string"}
		}
	}`)
	tree := uxtree.Build(display, data)
	out := uxtree.Generate(tree)
	if _, ok := out.Properties.Get("placeholder"); ok {
		t.Fatalf("unannotated addable leaf must be pruned")
	}
	if _, ok := out.Properties.Get("known"); !ok {
		t.Fatalf("declared property must survive")
	}
}

func TestGenerate_AnnotationPromotesAddable(t *testing.T) {
	display := mustSchema(t, `{"type": "object"}`)
	data := mustSchema(t, `{
		"type": "object",
		"properties": {"fresh": {"type": "string"}}
	}`)
	tree := uxtree.Build(display, data)

	render := uxtree.RenderBadge
	tree = uxtree.UpdateAnnotation(tree, "fresh", uxtree.UxPatch{Render: &render})
	out := uxtree.Generate(tree)
	n, ok := out.Properties.Get("fresh")
	if !ok {
		t.Fatalf("annotated addable node must be included")
	}
	if n.Annot["render_as"] != "badge" {
		t.Fatalf("annotation lost: %v", n.Annot)
	}
}

func TestGenerate_DescendantAnnotationPromotesAncestors(t *testing.T) {
	display := mustSchema(t, `{"type": "object"}`)
	data := mustSchema(t, `{
		"type": "object",
		"properties": {
			"outer": {"type": "object", "properties": {"inner": {"type": "string"}}}
		}
	}`)
	tree := uxtree.Build(display, data)
	label := "Inner"
	tree = uxtree.UpdateAnnotation(tree, "outer.inner", uxtree.UxPatch{Label: &label})
	out := uxtree.Generate(tree)
	outer, ok := out.Properties.Get("outer")
	if !ok {
		t.Fatalf("ancestor of annotated node must be included")
	}
	if _, ok := outer.Properties.Get("inner"); !ok {
		t.Fatalf("annotated descendant must be included")
	}
}

func TestGenerate_DeletedNodesSurvive(t *testing.T) {
	display := mustSchema(t, `{
		"type": "object",
		"properties": {"gone": {"type": "string", "_ux": {"render_as": "text"}}}
	}`)
	data := mustSchema(t, `{"type": "object"}`)
	tree := uxtree.Build(display, data)
	if uxtree.FindByID(tree, "gone").Diff != uxtree.DiffDeleted {
		t.Fatalf("expected deleted status")
	}
	out := uxtree.Generate(tree)
	if _, ok := out.Properties.Get("gone"); !ok {
		t.Fatalf("deleted node keeps its annotation provenance in the schema")
	}
}

func TestGenerate_RoundTripAnnotatedSchema(t *testing.T) {
	src := `{
		"type": "object",
		"_ux": {"render_as": "card"},
		"properties": {
			"title": {"type": "string", "_ux": {"label": "Title", "order": 1}},
			"tags": {
				"type": "array",
				"_ux": {"render_as": "list"},
				"items": {"type": "string", "_ux": {"nudges": ["copy"]}}
			}
		}
	}`
	s := mustSchema(t, src)
	regen := uxtree.Generate(uxtree.Build(s, nil))
	if !bytes.Equal(marshal(t, s), marshal(t, regen)) {
		t.Fatalf("round trip mismatch:\n in: %s\nout: %s", marshal(t, s), marshal(t, regen))
	}
}

func TestGenerate_FlattenedInputNormalizesToNested(t *testing.T) {
	flat := mustSchema(t, `{
		"type": "object",
		"properties": {"v": {"type": "string", "_ux.render_as": "code"}}
	}`)
	nested := mustSchema(t, `{
		"type": "object",
		"properties": {"v": {"type": "string", "_ux": {"render_as": "code"}}}
	}`)
	outFlat := uxtree.Generate(uxtree.Build(flat, nil))
	outNested := uxtree.Generate(uxtree.Build(nested, nil))
	if !bytes.Equal(marshal(t, outFlat), marshal(t, outNested)) {
		t.Fatalf("storage forms must normalize identically:\n%s\n%s",
			marshal(t, outFlat), marshal(t, outNested))
	}
}
