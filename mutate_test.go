package uxtree_test

import (
	"testing"

	uxtree "github.com/uxtree-dev/uxtree"
)

func patchLabel(s string) uxtree.UxPatch { return uxtree.UxPatch{Label: &s} }

func TestUpdateAnnotation_StructuralSharing(t *testing.T) {
	display := mustSchema(t, `{
		"type": "object",
		"properties": {
			"left":  {"type": "object", "properties": {"a": {"type": "string"}}},
			"right": {"type": "object", "properties": {"b": {"type": "string"}}}
		}
	}`)
	tree := uxtree.Build(display, nil)
	next := uxtree.UpdateAnnotation(tree, "left.a", patchLabel("A"))

	if next == tree {
		t.Fatalf("expected a new root")
	}
	if uxtree.FindByID(next, "left") == uxtree.FindByID(tree, "left") {
		t.Fatalf("root-to-target path must be copied")
	}
	if uxtree.FindByID(next, "right") != uxtree.FindByID(tree, "right") {
		t.Fatalf("sibling subtree must be shared by reference")
	}
	if uxtree.FindByID(tree, "left.a").UX.Label != "" {
		t.Fatalf("original tree must be untouched")
	}
	if uxtree.FindByID(next, "left.a").UX.Label != "A" {
		t.Fatalf("patch not applied")
	}
}

func TestUpdateAnnotation_PromotesAddable(t *testing.T) {
	display := mustSchema(t, `{"type": "object"}`)
	data := mustSchema(t, `{
		"type": "object",
		"properties": {"p": {"type": "string"}}
	}`)
	tree := uxtree.Build(display, data)
	if uxtree.FindByID(tree, "p").Diff != uxtree.DiffAddable {
		t.Fatalf("precondition: p is addable")
	}
	next := uxtree.UpdateAnnotation(tree, "p", patchLabel("P"))
	if uxtree.FindByID(next, "p").Diff != uxtree.DiffNormal {
		t.Fatalf("editing a placeholder must adopt it")
	}
}

func TestUpdateAnnotation_EmptyFieldsStripped(t *testing.T) {
	display := mustSchema(t, `{
		"type": "object",
		"properties": {"p": {"type": "string", "_ux": {"label": "P"}}}
	}`)
	tree := uxtree.Build(display, nil)
	next := uxtree.UpdateAnnotation(tree, "p", patchLabel(""))
	if got := uxtree.FindByID(next, "p").UX; !got.IsEmpty() {
		t.Fatalf("setting a field to its empty value must strip it, got %+v", got)
	}
}

func TestUpdateAnnotation_UnknownIDIsNoOp(t *testing.T) {
	tree := uxtree.Build(mustSchema(t, `{"type":"object","properties":{"a":{"type":"string"}}}`), nil)
	next := uxtree.UpdateAnnotation(tree, "no.such.node", patchLabel("X"))
	if next != tree {
		t.Fatalf("unknown target must return the tree unchanged by reference")
	}
}

func TestClearAnnotationField(t *testing.T) {
	display := mustSchema(t, `{
		"type": "object",
		"properties": {"p": {"type": "string", "_ux": {"render_as": "card", "label": "P"}}}
	}`)
	tree := uxtree.Build(display, nil)
	next := uxtree.ClearAnnotationField(tree, "p", uxtree.FieldRender)
	got := uxtree.FindByID(next, "p").UX
	if got.Render != "" {
		t.Fatalf("render must be cleared")
	}
	if got.Label != "P" {
		t.Fatalf("other fields must survive, got %+v", got)
	}
}

func TestClearAnnotationField_UnknownFieldIsNoOp(t *testing.T) {
	display := mustSchema(t, `{
		"type": "object",
		"properties": {"p": {"type": "string", "_ux": {"label": "P"}}}
	}`)
	tree := uxtree.Build(display, nil)
	next := uxtree.ClearAnnotationField(tree, "p", "bogus_field")
	if next != tree {
		t.Fatalf("clearing an unknown field must return the tree unchanged by reference")
	}
}

func TestToggleNudge(t *testing.T) {
	tree := uxtree.Build(mustSchema(t, `{"type":"object","properties":{"p":{"type":"string"}}}`), nil)

	on := uxtree.ToggleNudge(tree, "p", uxtree.NudgeCopy)
	if got := uxtree.FindByID(on, "p").UX.Nudges; len(got) != 1 || got[0] != uxtree.NudgeCopy {
		t.Fatalf("toggle on: got %v", got)
	}
	off := uxtree.ToggleNudge(on, "p", uxtree.NudgeCopy)
	if got := uxtree.FindByID(off, "p").UX.Nudges; got != nil {
		t.Fatalf("toggle off must strip the empty list, got %v", got)
	}
}
