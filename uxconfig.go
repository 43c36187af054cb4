package uxtree

// VisibilityMode controls how a node is shown by the renderer. The annotation
// slot also accepts a JSON boolean (true -> visible, false -> hidden); the
// codec normalizes that to a mode at decode time.
type VisibilityMode string

const (
	VisibilityVisible     VisibilityMode = "visible"
	VisibilityHidden      VisibilityMode = "hidden"
	VisibilityPassthrough VisibilityMode = "passthrough"
)

// UxConfig is the decoded annotation set of one node. Zero values mean
// "unset" except where a pointer distinguishes unset from a meaningful zero:
// Display (false/hidden is meaningful) and Order (0 is meaningful).
type UxConfig struct {
	Render     string
	Display    *VisibilityMode
	Label      string
	Order      *float64
	Format     string
	Nudges     []string
	Selectable bool
	Highlight  bool
}

// IsEmpty reports whether every field is absent/default, i.e. the config
// round-trips to "no annotation slot".
func (u UxConfig) IsEmpty() bool {
	return u.Render == "" &&
		u.Display == nil &&
		u.Label == "" &&
		u.Order == nil &&
		u.Format == "" &&
		len(u.Nudges) == 0 &&
		!u.Selectable &&
		!u.Highlight
}

// HasNudge reports membership in the nudge list.
func (u UxConfig) HasNudge(value string) bool {
	for _, n := range u.Nudges {
		if n == value {
			return true
		}
	}
	return false
}

// normalize strips fields that have collapsed to their empty representation
// so "unset" has exactly one in-memory shape.
func (u UxConfig) normalize() UxConfig {
	if len(u.Nudges) == 0 {
		u.Nudges = nil
	}
	if u.Display != nil && *u.Display == "" {
		u.Display = nil
	}
	return u
}
