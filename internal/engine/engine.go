package engine

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/VergilAI/brand-book-sub003/internal/document"
	"github.com/VergilAI/brand-book-sub003/internal/geom"
	"github.com/VergilAI/brand-book-sub003/internal/interaction"
	"github.com/VergilAI/brand-book-sub003/internal/session"
	"github.com/VergilAI/brand-book-sub003/internal/snap"
	"github.com/VergilAI/brand-book-sub003/internal/view"
)

// ErrNoDocument is returned by operations that need a loaded document.
var ErrNoDocument = errors.New("no document loaded")

// Options configures new editor sessions.
type Options struct {
	BaseWidth     float64
	SurfaceWidth  float64
	SurfaceHeight float64
	Snap          snap.Settings
	Canvas        document.Settings
}

// DefaultOptions returns the options used when no configuration is given.
func DefaultOptions() Options {
	return Options{
		BaseWidth:     view.DefaultBaseWidth,
		SurfaceWidth:  view.DefaultBaseWidth,
		SurfaceHeight: view.DefaultBaseWidth * 0.75,
		Snap:          snap.DefaultSettings(),
		Canvas: document.Settings{
			CanvasWidth:     1280,
			CanvasHeight:    720,
			BackgroundColor: "#ffffff",
		},
	}
}

// Engine owns one editing session and the gesture machine driving it. UI
// hosts send it input events and operations and read back draw commands and
// JSON queries.
type Engine struct {
	opts    Options
	store   *session.Store
	machine *interaction.Machine
}

// NewEngine creates an engine with no document loaded.
func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts}
}

// --- Commands (host → engine) ---

// LoadDocument loads a document from its JSON export shape.
func (e *Engine) LoadDocument(jsonData string) error {
	doc, err := document.Parse([]byte(jsonData))
	if err != nil {
		return err
	}
	e.load(doc)
	return nil
}

// LoadSampleDocument loads the built-in sample document.
func (e *Engine) LoadSampleDocument(name string) {
	e.load(document.NewSampleDocument(name))
}

// NewDocument starts an empty document with the configured canvas.
func (e *Engine) NewDocument(name string) {
	e.load(document.NewEmptyDocument(name, e.opts.Canvas))
}

// load replaces the session. View size and the active tool survive a reload.
func (e *Engine) load(doc *document.Document) {
	v := view.New(e.opts.BaseWidth, e.opts.SurfaceWidth, e.opts.SurfaceHeight)
	tool := interaction.ToolSelect
	if e.store != nil {
		v.Resize(e.store.View.SurfaceWidth, e.store.View.SurfaceHeight)
		v.ShowGrid = e.store.View.ShowGrid
		tool = e.machine.Tool()
	}
	e.store = session.New(doc, v, e.opts.Snap)
	e.machine = interaction.New(e.store)
	e.machine.SetTool(tool)
}

// Loaded reports whether a document is open.
func (e *Engine) Loaded() bool {
	return e.store != nil
}

// Handle feeds one input event to the gesture machine. Events before a
// document is loaded are dropped.
func (e *Engine) Handle(ev interaction.Event) {
	if e.machine == nil {
		return
	}
	e.machine.Handle(ev)
}

// HandleJSON decodes and handles an input event.
func (e *Engine) HandleJSON(data []byte) error {
	var ev interaction.Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}
	e.Handle(ev)
	return nil
}

// SetTool switches the active tool by name.
func (e *Engine) SetTool(name string) error {
	t, err := interaction.ParseTool(name)
	if err != nil {
		return err
	}
	if e.machine == nil {
		return ErrNoDocument
	}
	e.machine.SetTool(t)
	return nil
}

// SetShowGrid toggles grid rendering.
func (e *Engine) SetShowGrid(show bool) {
	if e.store != nil {
		e.store.View.ShowGrid = show
	}
}

// ApplyOperation applies a collaborator operation.
func (e *Engine) ApplyOperation(op session.Operation) error {
	if e.store == nil {
		return ErrNoDocument
	}
	return e.store.ApplyOperation(op)
}

// ApplyOperationJSON decodes and applies an operation.
func (e *Engine) ApplyOperationJSON(data []byte) error {
	var op session.Operation
	if err := json.Unmarshal(data, &op); err != nil {
		return fmt.Errorf("decode operation: %w", err)
	}
	return e.ApplyOperation(op)
}

// --- Queries (host ← engine) ---

// Store exposes the session for in-process hosts. It is nil before a
// document is loaded.
func (e *Engine) Store() *session.Store {
	return e.store
}

// Document returns the live document, or nil.
func (e *Engine) Document() *document.Document {
	if e.store == nil {
		return nil
	}
	return e.store.Document()
}

// Render compiles the current state into draw commands as JSON.
func (e *Engine) Render() string {
	if e.store == nil {
		return "[]"
	}
	result, _ := DrawCommandsToJSON(e.DrawCommands())
	return result
}

// DrawCommands compiles the current state into draw commands.
func (e *Engine) DrawCommands() []DrawCommand {
	if e.store == nil {
		return nil
	}
	return CompileDrawCommands(e.store, e.machine.State())
}

// HitTest returns the id of the topmost shape under a device position, or
// an empty string.
func (e *Engine) HitTest(x, y float64) string {
	if e.store == nil {
		return ""
	}
	id, _ := e.store.HitTestShape(e.store.View.ScreenToCanvas(geom.Point{X: x, Y: y}))
	return id
}

// GetDocument returns the document in its export shape.
func (e *Engine) GetDocument() string {
	if e.store == nil {
		return "{}"
	}
	data, err := e.store.Document().Marshal()
	if err != nil {
		return "{}"
	}
	return string(data)
}

// GetSelection returns the selected shape ids as JSON.
func (e *Engine) GetSelection() string {
	if e.store == nil {
		return "[]"
	}
	data, _ := json.Marshal(e.store.SelectedIDs())
	return string(data)
}

// GetSelectionBounds returns the bounding box of the selection as JSON.
func (e *Engine) GetSelectionBounds() string {
	var r geom.Rect
	if e.store != nil {
		r, _ = e.store.SelectionBounds()
	}
	return RectToJSON(r)
}

// State is a snapshot of the editor state for UI chrome.
type State struct {
	Tool      interaction.Tool      `json:"tool"`
	Gesture   string                `json:"gesture"`
	Selection []string              `json:"selection"`
	View      view.Transform        `json:"view"`
	Viewport  geom.Rect             `json:"viewport"`
	Snap      session.SnapState     `json:"snap"`
	Drawing   session.DrawingState  `json:"drawing"`
	Editing   *session.EditingState `json:"editing,omitempty"`
	Selected  []int                 `json:"selectedVertices,omitempty"`
}

// GetState returns the editor state as JSON.
func (e *Engine) GetState() string {
	if e.store == nil {
		return "{}"
	}
	s := State{
		Tool:      e.machine.Tool(),
		Gesture:   e.machine.State().Name(),
		Selection: e.store.SelectedIDs(),
		View:      *e.store.View,
		Viewport:  e.store.View.Viewport(),
		Snap:      e.store.Snap,
		Drawing:   e.store.Drawing,
		Editing:   e.store.Edit,
	}
	if e.store.Edit != nil {
		s.Selected = e.store.Edit.SelectedVertices()
	}
	data, _ := json.Marshal(s)
	return string(data)
}
