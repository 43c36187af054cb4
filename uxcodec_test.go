package uxtree_test

import (
	"testing"

	uxtree "github.com/uxtree-dev/uxtree"
	"github.com/uxtree-dev/uxtree/schema"
)

func mustSchema(t *testing.T, src string) *schema.Node {
	t.Helper()
	n, err := schema.ParseJSON([]byte(src))
	if err != nil {
		t.Fatalf("parse schema: %v", err)
	}
	return n
}

func TestDecodeUX_NestedForm(t *testing.T) {
	n := mustSchema(t, `{
		"type": "string",
		"_ux": {
			"render_as": "color",
			"display": "passthrough",
			"label": "Background",
			"order": 0,
			"format": "hex",
			"nudges": ["copy", "swatch"],
			"selectable": true,
			"highlight": true
		}
	}`)
	u := uxtree.DecodeUX(n)
	if u.Render != uxtree.RenderColor {
		t.Fatalf("render: expected color, got %q", u.Render)
	}
	if u.Display == nil || *u.Display != uxtree.VisibilityPassthrough {
		t.Fatalf("display: expected passthrough, got %v", u.Display)
	}
	if u.Label != "Background" || u.Format != "hex" {
		t.Fatalf("label/format mismatch: %q %q", u.Label, u.Format)
	}
	if u.Order == nil || *u.Order != 0 {
		t.Fatalf("order 0 must be meaningful, got %v", u.Order)
	}
	if len(u.Nudges) != 2 || u.Nudges[0] != "copy" || u.Nudges[1] != "swatch" {
		t.Fatalf("nudges mismatch: %v", u.Nudges)
	}
	if !u.Selectable || !u.Highlight {
		t.Fatalf("expected selectable+highlight true")
	}
}

func TestDecodeUX_FlattenedForm(t *testing.T) {
	n := mustSchema(t, `{
		"type": "string",
		"_ux.render_as": "card",
		"_ux.order": 3,
		"_ux.display": false
	}`)
	u := uxtree.DecodeUX(n)
	if u.Render != uxtree.RenderCard {
		t.Fatalf("render: expected card, got %q", u.Render)
	}
	if u.Order == nil || *u.Order != 3 {
		t.Fatalf("order: expected 3, got %v", u.Order)
	}
	if u.Display == nil || *u.Display != uxtree.VisibilityHidden {
		t.Fatalf("boolean display false must decode as hidden, got %v", u.Display)
	}
}

func TestDecodeUX_AbsentSlot(t *testing.T) {
	n := mustSchema(t, `{"type":"number"}`)
	u := uxtree.DecodeUX(n)
	if !u.IsEmpty() {
		t.Fatalf("expected empty config for absent slot, got %+v", u)
	}
}

func TestEncodeUX_OmissionRules(t *testing.T) {
	if got := uxtree.EncodeUX(uxtree.UxConfig{}); got != nil {
		t.Fatalf("empty config must encode to no slot, got %v", got)
	}

	// false selectable/highlight are omitted, not written as false
	slot := uxtree.EncodeUX(uxtree.UxConfig{Render: "card", Selectable: false, Highlight: false})
	if _, ok := slot["selectable"]; ok {
		t.Fatalf("false selectable must be omitted")
	}
	if _, ok := slot["highlight"]; ok {
		t.Fatalf("false highlight must be omitted")
	}

	// an explicitly set display is preserved, including hidden
	hidden := uxtree.VisibilityHidden
	slot = uxtree.EncodeUX(uxtree.UxConfig{Display: &hidden})
	if got, ok := slot["display"]; !ok || got != "hidden" {
		t.Fatalf("set display=hidden must be written, got %v", slot)
	}

	// order zero is meaningful
	zero := 0.0
	slot = uxtree.EncodeUX(uxtree.UxConfig{Order: &zero})
	if got, ok := slot["order"]; !ok || got != 0.0 {
		t.Fatalf("order 0 must be written, got %v", slot)
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	visible := uxtree.VisibilityVisible
	order := 4.0
	in := uxtree.UxConfig{
		Render:  uxtree.RenderTable,
		Display: &visible,
		Label:   "Rows",
		Order:   &order,
		Nudges:  []string{uxtree.NudgePreview},
	}
	slot := uxtree.EncodeUX(in)
	n := &schema.Node{Type: "array", Annot: slot}
	out := uxtree.DecodeUX(n)
	if out.Render != in.Render || out.Label != in.Label {
		t.Fatalf("round trip mismatch: %+v vs %+v", in, out)
	}
	if out.Display == nil || *out.Display != visible {
		t.Fatalf("display lost in round trip: %v", out.Display)
	}
	if out.Order == nil || *out.Order != order {
		t.Fatalf("order lost in round trip: %v", out.Order)
	}
	if len(out.Nudges) != 1 || out.Nudges[0] != uxtree.NudgePreview {
		t.Fatalf("nudges lost in round trip: %v", out.Nudges)
	}
}
