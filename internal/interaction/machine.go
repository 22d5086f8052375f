// Package interaction turns raw pointer and keyboard events into edits of a
// session.Store. Exactly one GestureState is active at a time; a new gesture
// can only start from Idle or Drawing.
package interaction

import (
	"log/slog"

	"github.com/VergilAI/brand-book-sub003/internal/document"
	"github.com/VergilAI/brand-book-sub003/internal/geom"
	"github.com/VergilAI/brand-book-sub003/internal/session"
)

// Hit radii in screen pixels. They are divided by zoom before being compared
// with canvas distances.
const (
	VertexHitRadius = 8.0
	HandleHitRadius = 6.0
	EdgeHitRadius   = 6.0
	MoveDeadZone    = 3.0
	ClosePathRadius = 10.0
)

// Machine is the gesture state machine over one store.
type Machine struct {
	store *session.Store
	tool  Tool
	state GestureState
}

func New(store *session.Store) *Machine {
	return &Machine{store: store, tool: ToolSelect, state: Idle{}}
}

func (m *Machine) Store() *session.Store { return m.store }
func (m *Machine) Tool() Tool            { return m.tool }
func (m *Machine) State() GestureState   { return m.state }

// SetTool switches tools. An open edit session is committed and an open
// drawing discarded.
func (m *Machine) SetTool(t Tool) {
	m.store.CommitEdit()
	m.store.CancelDrawing()
	m.store.ClearIndicators()
	m.tool = t
	m.state = Idle{}
}

// Handle processes one event synchronously.
func (m *Machine) Handle(ev Event) {
	m.store.Snap.Suspended = ev.Modifiers.Alt

	switch ev.Kind {
	case PointerDown:
		m.pointerDown(ev)
	case PointerMove:
		m.pointerMove(ev)
	case PointerUp:
		m.pointerUp(false)
	case PointerLeave:
		m.pointerUp(true)
	case DoubleClick:
		m.doubleClick(ev)
	case Wheel:
		m.store.View.Wheel(ev.Position, ev.DeltaY)
	case KeyDown:
		m.keyDown(ev)
	case Resize:
		if ev.Width > 0 && ev.Height > 0 {
			m.store.View.Resize(ev.Width, ev.Height)
		}
	default:
		slog.Debug("ignoring input event", "kind", ev.Kind)
	}
}

func (m *Machine) canvas(ev Event) geom.Point {
	return m.store.View.ScreenToCanvas(ev.Position)
}

func (m *Machine) radius(px float64) float64 {
	return m.store.View.ScaleScreenDistance(px)
}

// rest is the state a finished gesture falls back to.
func (m *Machine) rest() GestureState {
	if m.store.Drawing.Active {
		return Drawing{}
	}
	return Idle{}
}

func (m *Machine) pointerDown(ev Event) {
	switch m.state.(type) {
	case Idle, Drawing:
	default:
		return
	}

	if ev.Button == ButtonMiddle || (ev.Button == ButtonLeft && ev.Modifiers.Shift) || m.tool == ToolMove {
		m.state = Panning{Last: ev.Position}
		return
	}
	if ev.Button != ButtonLeft {
		return
	}

	p := m.canvas(ev)
	switch m.tool {
	case ToolSelect:
		if m.store.Edit != nil {
			m.editPointerDown(p, ev.Modifiers)
			return
		}
		m.selectPointerDown(p, ev.Modifiers)
	case ToolPen:
		m.penPointerDown(p)
	}
}

func (m *Machine) editPointerDown(p geom.Point, mods Modifiers) {
	e := m.store.Edit
	if i, ok := e.HitVertex(p, m.radius(VertexHitRadius)); ok {
		if mods.Multi() || !e.Selected[i] {
			m.store.SelectVertex(i, mods.Multi())
		}
		m.state = DraggingVertex{Index: i}
		return
	}
	if i, side, ok := e.HitHandle(p, m.radius(HandleHitRadius)); ok {
		m.state = DraggingControlHandle{Index: i, Side: side}
		return
	}
	if after, at, ok := e.HitEdge(p, m.radius(EdgeHitRadius)); ok {
		if i, ok := m.store.InsertVertex(after, at); ok {
			m.store.SelectVertex(i, false)
			m.state = DraggingVertex{Index: i}
		}
		return
	}
	m.store.ClearVertexSelection()
}

func (m *Machine) selectPointerDown(p geom.Point, mods Modifiers) {
	id, hit := m.store.HitTestShape(p)
	if !hit {
		start := m.store.View.Viewport().Clamp(p)
		m.state = AreaSelecting{Start: start, End: start, Additive: mods.Multi()}
		return
	}

	switch {
	case mods.Multi():
		m.store.ToggleSelection(id)
	case !m.store.IsSelected(id):
		m.store.Select(id)
	}
	if !m.store.IsSelected(id) {
		return
	}

	bounds, _ := m.store.SelectionBounds()
	m.state = MovingShapes{
		IDs:         m.store.SelectedIDs(),
		Press:       p,
		StartCenter: bounds.Center(),
	}
}

func (m *Machine) penPointerDown(p geom.Point) {
	d := m.store.Drawing
	if !d.Active {
		res := m.store.SnapPoint(p, nil, nil)
		m.store.StartDrawing(res.Point)
		m.state = Drawing{}
		return
	}

	if len(d.Points) >= document.MinVertices && p.Distance(d.Points[0].Point) < m.radius(ClosePathRadius) {
		if id, ok := m.store.FinishDrawing(); ok {
			slog.Debug("closed pen path", "shape", id)
		}
		m.store.ClearIndicators()
		m.state = Idle{}
		return
	}

	last, _ := d.Last()
	prev := last.Point
	res := m.store.SnapPoint(p, &prev, nil)
	m.store.AppendAnchor(res.Point)
	m.state = DraggingDrawingHandle{Anchor: res.Point}
}

func (m *Machine) pointerMove(ev Event) {
	p := m.canvas(ev)

	switch st := m.state.(type) {
	case Panning:
		m.store.View.PanBy(ev.Position.Sub(st.Last))
		m.state = Panning{Last: ev.Position}
	case AreaSelecting:
		st.End = m.store.View.Viewport().Clamp(p)
		m.state = st
	case MovingShapes:
		m.moveShapes(st, p)
	case DraggingVertex:
		if m.store.Edit == nil {
			m.state = Idle{}
			return
		}
		res := m.store.SnapPoint(p, nil, map[string]bool{m.store.Edit.ShapeID: true})
		m.store.MoveVertex(st.Index, res.Point)
	case DraggingControlHandle:
		m.store.MoveControl(st.Index, st.Side, p)
	case DraggingDrawingHandle:
		m.dragDrawingHandle(st, p)
	case Idle, Drawing:
		if m.tool != ToolPen {
			m.store.ClearIndicators()
			return
		}
		var prev *geom.Point
		if last, ok := m.store.Drawing.Last(); ok && m.store.Drawing.Active {
			prev = &last.Point
		}
		m.store.SnapPoint(p, prev, nil)
	}
}

// moveShapes snaps the selection's bounding-box center and applies one
// delta to every selected shape.
func (m *Machine) moveShapes(st MovingShapes, p geom.Point) {
	if !st.Started {
		if p.Distance(st.Press) <= m.radius(MoveDeadZone) {
			return
		}
		st.Started = true
	}

	exclude := make(map[string]bool, len(st.IDs))
	for _, id := range st.IDs {
		exclude[id] = true
	}
	candidate := st.StartCenter.Add(p.Sub(st.Press))
	res := m.store.SnapPoint(candidate, nil, exclude)

	total := res.Point.Sub(st.StartCenter)
	m.store.MoveShapes(st.IDs, total.Sub(st.Applied))
	st.Applied = total
	m.state = st
}

// dragDrawingHandle sets the last anchor's out handle to the pointer and
// mirrors it into the in handle.
func (m *Machine) dragDrawingHandle(st DraggingDrawingHandle, p geom.Point) {
	offset := p.Sub(st.Anchor)
	if !st.Started {
		if offset.Length() <= m.radius(MoveDeadZone) {
			return
		}
		st.Started = true
		m.state = st
	}
	out := st.Anchor.Add(offset)
	in := st.Anchor.Sub(offset)
	m.store.SetAnchorControls(len(m.store.Drawing.Points)-1, &in, &out)
}

// pointerUp ends the active gesture. Leaving the surface discards an area
// selection; everything else was already written live.
func (m *Machine) pointerUp(leave bool) {
	if st, ok := m.state.(AreaSelecting); ok && !leave {
		m.finishAreaSelection(st)
	}
	m.store.ClearIndicators()
	m.state = m.rest()
}

func (m *Machine) finishAreaSelection(st AreaSelecting) {
	r := st.Rect()
	tiny := m.radius(MoveDeadZone)
	if r.Width <= tiny && r.Height <= tiny {
		if !st.Additive {
			m.store.ClearSelection()
		}
		return
	}
	m.store.ApplyAreaSelection(r, st.Additive)
}

func (m *Machine) doubleClick(ev Event) {
	if m.tool != ToolSelect {
		return
	}
	if _, ok := m.state.(Idle); !ok {
		return
	}
	if id, ok := m.store.HitTestShape(m.canvas(ev)); ok {
		if m.store.Edit == nil || m.store.Edit.ShapeID != id {
			m.store.BeginEdit(id)
		}
		return
	}
	m.store.CommitEdit()
}

func (m *Machine) keyDown(ev Event) {
	switch ev.Key {
	case "Escape":
		switch {
		case m.store.Edit != nil:
			m.store.CommitEdit()
		case m.store.Drawing.Active:
			m.store.CancelDrawing()
		default:
			m.store.ClearSelection()
		}
		m.store.ClearIndicators()
		m.state = Idle{}
	case "Enter":
		switch {
		case m.store.Edit != nil:
			m.store.CommitEdit()
			m.state = Idle{}
		case m.store.Drawing.Active:
			if _, ok := m.store.FinishDrawing(); ok {
				m.store.ClearIndicators()
				m.state = Idle{}
			}
		}
	case "Delete", "Backspace":
		if _, ok := m.state.(Idle); !ok {
			return
		}
		if e := m.store.Edit; e != nil {
			m.store.DeleteVertices(e.SelectedVertices())
			return
		}
		m.store.DeleteShapes(m.store.SelectedIDs()...)
	}
}
