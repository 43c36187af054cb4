package uxtree

import (
	"encoding/json"

	"github.com/uxtree-dev/uxtree/schema"
)

// DecodeUX reads a node's annotation slot into a UxConfig. Only keys that are
// actually present are populated; an absent slot yields the zero config. The
// schema decoder has already merged the flattened "_ux."-key form into the
// slot, so by this point there is exactly one storage shape to read.
func DecodeUX(n *schema.Node) UxConfig {
	if n == nil {
		return UxConfig{}
	}
	return decodeAnnot(n.Annot)
}

func decodeAnnot(m map[string]any) UxConfig {
	var u UxConfig
	if len(m) == 0 {
		return u
	}
	if s, ok := m[FieldRender].(string); ok {
		u.Render = s
	}
	if v, ok := m[FieldDisplay]; ok {
		if mode, ok := visibilityFrom(v); ok {
			u.Display = &mode
		}
	}
	if s, ok := m[FieldLabel].(string); ok {
		u.Label = s
	}
	if v, ok := m[FieldOrder]; ok {
		if f, ok := numberFrom(v); ok {
			u.Order = &f
		}
	}
	if s, ok := m[FieldFormat].(string); ok {
		u.Format = s
	}
	if v, ok := m[FieldNudges]; ok {
		u.Nudges = stringListFrom(v)
	}
	if b, ok := m[FieldSelectable].(bool); ok {
		u.Selectable = b
	}
	if b, ok := m[FieldHighlight].(bool); ok {
		u.Highlight = b
	}
	return u.normalize()
}

// EncodeUX produces the nested annotation slot, or nil when every field is
// absent/default so that "no annotation" round-trips to "no slot" rather than
// an empty object. A false Selectable/Highlight is omitted, not written as
// false; an explicitly set Display is written even when hidden.
func EncodeUX(u UxConfig) map[string]any {
	if u.IsEmpty() {
		return nil
	}
	out := map[string]any{}
	if u.Render != "" {
		out[FieldRender] = u.Render
	}
	if u.Display != nil {
		out[FieldDisplay] = string(*u.Display)
	}
	if u.Label != "" {
		out[FieldLabel] = u.Label
	}
	if u.Order != nil {
		out[FieldOrder] = *u.Order
	}
	if u.Format != "" {
		out[FieldFormat] = u.Format
	}
	if len(u.Nudges) > 0 {
		nudges := make([]any, len(u.Nudges))
		for i, n := range u.Nudges {
			nudges[i] = n
		}
		out[FieldNudges] = nudges
	}
	if u.Selectable {
		out[FieldSelectable] = true
	}
	if u.Highlight {
		out[FieldHighlight] = true
	}
	return out
}

// visibilityFrom accepts the string modes and the boolean shorthand.
func visibilityFrom(v any) (VisibilityMode, bool) {
	switch t := v.(type) {
	case string:
		switch VisibilityMode(t) {
		case VisibilityVisible, VisibilityHidden, VisibilityPassthrough:
			return VisibilityMode(t), true
		}
		return "", false
	case bool:
		if t {
			return VisibilityVisible, true
		}
		return VisibilityHidden, true
	default:
		return "", false
	}
}

// numberFrom tolerates the number shapes the JSON and YAML decoders produce.
func numberFrom(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func stringListFrom(v any) []string {
	switch t := v.(type) {
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	default:
		return nil
	}
}
