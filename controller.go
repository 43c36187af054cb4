package uxtree

import (
	"io"
	"log/slog"
	"sync"
	"time"

	j "github.com/goccy/go-json"
	"github.com/tidwall/jsonc"

	"github.com/uxtree-dev/uxtree/schema"
)

// DefaultDebounce is the raw-text re-parse delay when ControllerOpt.Debounce
// is zero.
const DefaultDebounce = 500 * time.Millisecond

// ControllerOpt bundles controller configuration.
type ControllerOpt struct {
	// Debounce is the raw-text re-parse delay; zero means DefaultDebounce.
	Debounce time.Duration
	// DepthColor selects how selection decorations are colored.
	DepthColor DepthColorMode
	// Logger receives debug events; nil means silent.
	Logger *slog.Logger
	// OnChange fires on every dirty-producing edit with the regenerated
	// display schema.
	OnChange func(*schema.Node)
	// OnSave fires only on an explicit Save with the current display schema.
	OnSave func(*schema.Node)
	// Decorate receives selection-driven highlight requests for the external
	// text-editor widget.
	Decorate func(Decoration)
	// Session is the injected workflow-state handle (sample data for
	// preview), passed through untouched.
	Session *Session
}

// Controller owns one authoritative editor tree and reconciles three kinds of
// input (external prop updates, structured inspector mutations, and raw text
// edits) into a single consistent tree + text + notification cycle.
//
// All transitions are serialized behind one mutex, including the debounce
// timer goroutine, preserving the atomic mutate -> regenerate -> resync ->
// notify ordering. Callbacks run while the lock is held and must not call
// back into the controller.
type Controller struct {
	mu  sync.Mutex
	opt ControllerOpt
	log *slog.Logger

	tree       *ConfiguredNode
	dataSchema *schema.Node
	current    *schema.Node // display schema derived from tree
	text       string
	dirty      bool
	focused    bool
	// pendingResync records a schema change that happened while the text
	// editor had focus, so the buffer is made honest on blur.
	pendingResync bool
	parseErr      string
	selected      string

	timer  *time.Timer
	gen    uint64 // debounce generation; stale timers compare and bail
	closed bool
}

// NewController builds the initial tree from the given schemas and derives
// the serialized text. Either schema may be nil.
func NewController(display, data *schema.Node, opt ControllerOpt) *Controller {
	if opt.Debounce <= 0 {
		opt.Debounce = DefaultDebounce
	}
	log := opt.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c := &Controller{opt: opt, log: log, dataSchema: data, selected: RootID}
	c.tree = Build(display, data)
	c.current = Generate(c.tree)
	c.text = prettyJSON(c.current)
	return c
}

// SetInputs delivers an external update of the display and/or data schema
// from the caller. While local edits are unsaved the update is ignored: the
// caller's echo of our own last emission must not stomp in-flight edits.
func (c *Controller) SetInputs(display, data *schema.Node) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if c.dirty {
		c.log.Debug("uxtree: external update ignored while dirty")
		return
	}
	c.dataSchema = data
	c.tree = Build(display, data)
	c.current = Generate(c.tree)
	c.selected = RootID
	c.parseErr = ""
	c.resyncTextLocked()
}

// UpdateAnnotation applies a structured inspector edit to the node with the
// given id. Unknown ids are silent no-ops.
func (c *Controller) UpdateAnnotation(id string, patch UxPatch) {
	c.applyMutation("update", func(t *ConfiguredNode) *ConfiguredNode {
		return UpdateAnnotation(t, id, patch)
	})
}

// ClearAnnotationField removes one annotation field from the target node.
func (c *Controller) ClearAnnotationField(id, field string) {
	c.applyMutation("clear", func(t *ConfiguredNode) *ConfiguredNode {
		return ClearAnnotationField(t, id, field)
	})
}

// ToggleNudge toggles a nudge tag on the target node.
func (c *Controller) ToggleNudge(id, value string) {
	c.applyMutation("toggle", func(t *ConfiguredNode) *ConfiguredNode {
		return ToggleNudge(t, id, value)
	})
}

func (c *Controller) applyMutation(kind string, fn func(*ConfiguredNode) *ConfiguredNode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	next := fn(c.tree)
	if next == c.tree {
		// no effect: the target id is missing (selection raced a rebuild)
		// or the mutation left the node as it was
		c.log.Debug("uxtree: mutation had no effect", "kind", kind)
		return
	}
	c.tree = next
	c.dirty = true
	c.current = Generate(next)
	c.resyncTextLocked()
	if c.opt.OnChange != nil {
		c.opt.OnChange(c.current)
	}
}

// SetText records a raw text edit. The buffer updates immediately so
// keystrokes are never lost; the parse-and-rebuild runs after the debounce
// window, and every new keystroke cancels the previous timer.
func (c *Controller) SetText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.text = text
	if c.timer != nil {
		c.timer.Stop()
	}
	c.gen++
	gen := c.gen
	c.timer = time.AfterFunc(c.opt.Debounce, func() {
		c.parseText(gen)
	})
}

func (c *Controller) parseText(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.gen {
		return
	}
	// tolerate JSONC comments and trailing commas; the rewrite pads with
	// whitespace so byte offsets (and Locate ranges) stay valid against the
	// user's original text
	buf := []byte(c.text)
	buf = jsonc.ToJSONInPlace(buf)
	display, err := schema.ParseJSON(buf)
	if err != nil {
		msg := err.Error()
		if iss, ok := schema.AsIssues(err); ok && len(iss) > 0 {
			msg = iss[0].Message
		}
		c.parseErr = "Invalid JSON: " + msg
		c.log.Debug("uxtree: text parse failed", "err", err)
		return
	}
	// the parsed document is the new display schema, combined with the
	// existing data schema
	c.tree = Build(display, c.dataSchema)
	c.dirty = true
	c.parseErr = ""
	c.current = Generate(c.tree)
	if FindByID(c.tree, c.selected) == nil {
		c.selected = RootID
	}
	if !c.focused {
		// parse fired after blur: canonicalize the buffer
		c.resyncTextLocked()
	}
	if c.opt.OnChange != nil {
		c.opt.OnChange(c.current)
	}
}

// SetFocused tracks whether the raw-text editor has user focus. A schema
// change that happened while focused is flushed into the buffer on blur.
func (c *Controller) SetFocused(focused bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.focused = focused
	if !focused && c.pendingResync {
		c.resyncTextLocked()
	}
}

// resyncTextLocked overwrites the text buffer with the pretty-printed current
// schema and clears parse-error state, unless the user is mid-keystroke in
// the editor, in which case the resync is deferred to blur. Any pending
// debounce parse is cancelled: the buffer now holds canonical text.
func (c *Controller) resyncTextLocked() {
	if c.focused {
		c.pendingResync = true
		return
	}
	c.pendingResync = false
	c.text = prettyJSON(c.current)
	c.parseErr = ""
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// Select records the selected node id and emits a decoration request for the
// external editor widget. Unknown ids are silent no-ops.
func (c *Controller) Select(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	node := FindByID(c.tree, id)
	if node == nil {
		return
	}
	c.selected = id
	if c.opt.Decorate == nil {
		return
	}
	r, ok := Locate(c.text, node.Path)
	if !ok {
		return
	}
	c.opt.Decorate(Decoration{
		Range: r,
		Style: Style{Color: depthColor(c.opt.DepthColor, len(node.Path))},
	})
}

// Save passes the current display schema to the save callback and clears the
// dirty flag. Saving is disabled while the text buffer holds invalid JSON;
// the return reports whether the save ran.
func (c *Controller) Save() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.parseErr != "" {
		return false
	}
	if c.opt.OnSave != nil {
		c.opt.OnSave(c.current)
	}
	c.dirty = false
	return true
}

// Close cancels any pending debounce timer so a stale rebuild cannot fire
// into a torn-down editor. The controller is unusable afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// Tree returns the current editor tree.
func (c *Controller) Tree() *ConfiguredNode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tree
}

// Schema returns the display schema derived from the current tree.
func (c *Controller) Schema() *schema.Node {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Text returns the current text buffer.
func (c *Controller) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// Dirty reports whether local edits are unreconciled with the last external
// update.
func (c *Controller) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

// ParseError returns the user-visible parse failure message, empty when the
// buffer is valid.
func (c *Controller) ParseError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.parseErr
}

// Selected returns the selected node id.
func (c *Controller) Selected() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// Session returns the injected workflow-state handle, nil when none was
// provided.
func (c *Controller) Session() *Session {
	return c.opt.Session
}

func prettyJSON(n *schema.Node) string {
	b, err := j.MarshalIndent(n, "", "  ")
	if err != nil {
		// Node marshalling is total over the shapes Generate emits
		return "{}"
	}
	return string(b)
}
