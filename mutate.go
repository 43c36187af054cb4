package uxtree

// UxPatch carries partial annotation updates for UpdateAnnotation. Nil fields
// are left untouched; non-nil fields overwrite. Removing a field goes through
// ClearAnnotationField instead.
type UxPatch struct {
	Render     *string
	Display    *VisibilityMode
	Label      *string
	Order      *float64
	Format     *string
	Nudges     *[]string
	Selectable *bool
	Highlight  *bool
}

// UpdateAnnotation merges the patch into the target node's annotations and
// returns a new tree. Fields that collapse to their empty representation are
// stripped, and an addable node gains normal status the moment it carries any
// annotation (editing a placeholder adopts it). An unknown id returns the
// tree unchanged: selection can legitimately race a rebuild.
//
// Only the root-to-target path is copied; sibling subtrees are unchanged by
// reference, so consumers may use reference equality to skip re-render.
func UpdateAnnotation(tree *ConfiguredNode, id string, patch UxPatch) *ConfiguredNode {
	out, _ := replaceNode(tree, id, func(n *ConfiguredNode) *ConfiguredNode {
		cp := *n
		cp.UX = applyPatch(cp.UX, patch).normalize()
		if cp.Diff == DiffAddable && !cp.UX.IsEmpty() {
			cp.Diff = DiffNormal
		}
		return &cp
	})
	return out
}

// ClearAnnotationField removes exactly one annotation field, addressed by its
// slot key (FieldRender, FieldDisplay, ...).
func ClearAnnotationField(tree *ConfiguredNode, id, field string) *ConfiguredNode {
	out, _ := replaceNode(tree, id, func(n *ConfiguredNode) *ConfiguredNode {
		cp := *n
		switch field {
		case FieldRender:
			cp.UX.Render = ""
		case FieldDisplay:
			cp.UX.Display = nil
		case FieldLabel:
			cp.UX.Label = ""
		case FieldOrder:
			cp.UX.Order = nil
		case FieldFormat:
			cp.UX.Format = ""
		case FieldNudges:
			cp.UX.Nudges = nil
		case FieldSelectable:
			cp.UX.Selectable = false
		case FieldHighlight:
			cp.UX.Highlight = false
		default:
			return n
		}
		cp.UX = cp.UX.normalize()
		return &cp
	})
	return out
}

// ToggleNudge toggles membership of value in the target's nudge list: added
// when absent, removed when present. Toggling on also adopts an addable node,
// the same as any other annotation edit.
func ToggleNudge(tree *ConfiguredNode, id, value string) *ConfiguredNode {
	out, _ := replaceNode(tree, id, func(n *ConfiguredNode) *ConfiguredNode {
		cp := *n
		if cp.UX.HasNudge(value) {
			next := make([]string, 0, len(cp.UX.Nudges)-1)
			for _, v := range cp.UX.Nudges {
				if v != value {
					next = append(next, v)
				}
			}
			cp.UX.Nudges = next
		} else {
			next := make([]string, 0, len(cp.UX.Nudges)+1)
			next = append(next, cp.UX.Nudges...)
			cp.UX.Nudges = append(next, value)
		}
		cp.UX = cp.UX.normalize()
		if cp.Diff == DiffAddable && !cp.UX.IsEmpty() {
			cp.Diff = DiffNormal
		}
		return &cp
	})
	return out
}

func applyPatch(u UxConfig, p UxPatch) UxConfig {
	if p.Render != nil {
		u.Render = *p.Render
	}
	if p.Display != nil {
		mode := *p.Display
		u.Display = &mode
	}
	if p.Label != nil {
		u.Label = *p.Label
	}
	if p.Order != nil {
		order := *p.Order
		u.Order = &order
	}
	if p.Format != nil {
		u.Format = *p.Format
	}
	if p.Nudges != nil {
		u.Nudges = append([]string(nil), (*p.Nudges)...)
	}
	if p.Selectable != nil {
		u.Selectable = *p.Selectable
	}
	if p.Highlight != nil {
		u.Highlight = *p.Highlight
	}
	return u
}

// replaceNode rebuilds the path from root to the node with the given id,
// applying fn to the target. Untouched subtrees are shared by reference. The
// second return reports whether the id was found; when false the original
// tree is returned untouched. When fn returns the target unchanged by
// reference, no spine is copied and the original root comes back, so a no-op
// mutation stays a no-op for consumers comparing roots.
func replaceNode(n *ConfiguredNode, id string, fn func(*ConfiguredNode) *ConfiguredNode) (*ConfiguredNode, bool) {
	if n == nil {
		return nil, false
	}
	if n.ID == id {
		return fn(n), true
	}
	for i, c := range n.Children {
		nc, ok := replaceNode(c, id, fn)
		if !ok {
			continue
		}
		if nc == c {
			return n, true
		}
		kids := make([]*ConfiguredNode, len(n.Children))
		copy(kids, n.Children)
		kids[i] = nc
		cp := *n
		cp.Children = kids
		return &cp, true
	}
	return n, false
}
