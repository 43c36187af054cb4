package uxtree

// DiffStatus classifies a tree node against the data schema.
type DiffStatus int

const (
	DiffNormal  DiffStatus = iota // Present on both sides (or nothing to diff against).
	DiffDeleted                   // Annotated in the display schema, gone from the data.
	DiffAddable                   // Present in the data, not yet annotated.
)

func (d DiffStatus) String() string {
	switch d {
	case DiffDeleted:
		return "deleted"
	case DiffAddable:
		return "addable"
	default:
		return "normal"
	}
}

// RootID is the canonical id of the tree root, regardless of path emptiness.
const RootID = "(root)"

// ItemsSegment is the synthetic path segment for an array's unified item
// schema. Arrays carry one item schema, not per-index schemas.
const ItemsSegment = "[items]"

// ConfiguredNode is one position in the merged editor tree. Trees are built
// wholesale by Build and replaced, never mutated in place; the mutation
// functions copy only the root-to-target path and share every other subtree.
type ConfiguredNode struct {
	ID         string
	Name       string
	Path       []string
	SchemaType string
	IsLeaf     bool
	UX         UxConfig
	Diff       DiffStatus
	Children   []*ConfiguredNode // nil iff IsLeaf
}

// Render hint vocabulary. The closed set of tags a node's render_as annotation
// may carry; unknown tags are preserved by the codec but mean nothing to the
// renderer.
const (
	RenderCard      = "card"
	RenderGrid      = "grid"
	RenderTable     = "table"
	RenderText      = "text"
	RenderColor     = "color"
	RenderImage     = "image"
	RenderVideo     = "video"
	RenderAudio     = "audio"
	RenderBadge     = "badge"
	RenderList      = "list"
	RenderTabs      = "tabs"
	RenderAccordion = "accordion"
	RenderCode      = "code"
	RenderMarkdown  = "markdown"
	RenderJSON      = "json"
	RenderLink      = "link"
	RenderProgress  = "progress"
	RenderRating    = "rating"
	RenderTag       = "tag"
	RenderTimeline  = "timeline"
	RenderAvatar    = "avatar"
	RenderChart     = "chart"
	RenderMap       = "map"
	RenderFile      = "file"
	RenderToggle    = "toggle"
	RenderSlider    = "slider"
	RenderSelect    = "select"
	RenderGallery   = "gallery"
)

// RenderHints returns the closed render hint vocabulary in display order.
func RenderHints() []string {
	return []string{
		RenderCard, RenderGrid, RenderTable, RenderText, RenderColor,
		RenderImage, RenderVideo, RenderAudio, RenderBadge, RenderList,
		RenderTabs, RenderAccordion, RenderCode, RenderMarkdown, RenderJSON,
		RenderLink, RenderProgress, RenderRating, RenderTag, RenderTimeline,
		RenderAvatar, RenderChart, RenderMap, RenderFile, RenderToggle,
		RenderSlider, RenderSelect, RenderGallery,
	}
}

// Nudge vocabulary: small enhancement tags attachable to a leaf's rendering.
const (
	NudgeCopy     = "copy"
	NudgePreview  = "preview"
	NudgeDownload = "download"
	NudgeSwatch   = "swatch"
	NudgeExpand   = "expand"
	NudgeRefresh  = "refresh"
)

// Nudges returns the closed nudge vocabulary in display order.
func Nudges() []string {
	return []string{NudgeCopy, NudgePreview, NudgeDownload, NudgeSwatch, NudgeExpand, NudgeRefresh}
}

// Annotation field names as stored in the annotation slot; these are the
// field arguments accepted by ClearAnnotationField and ToggleNudge.
const (
	FieldRender     = "render_as"
	FieldDisplay    = "display"
	FieldLabel      = "label"
	FieldOrder      = "order"
	FieldFormat     = "format"
	FieldNudges     = "nudges"
	FieldSelectable = "selectable"
	FieldHighlight  = "highlight"
)
