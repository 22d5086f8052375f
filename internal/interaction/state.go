package interaction

import (
	"github.com/VergilAI/brand-book-sub003/internal/geom"
	"github.com/VergilAI/brand-book-sub003/internal/session"
)

// GestureState is the single active gesture. The set of variants is closed.
type GestureState interface {
	Name() string
	gesture()
}

// Idle means no gesture is active.
type Idle struct{}

// Panning drags the view. Last is the previous pointer position in device
// pixels.
type Panning struct {
	Last geom.Point
}

// AreaSelecting is a rubber-band selection, both corners in canvas space.
type AreaSelecting struct {
	Start    geom.Point
	End      geom.Point
	Additive bool
}

// Rect returns the normalized selection rectangle.
func (a AreaSelecting) Rect() geom.Rect {
	return geom.RectFromPoints(a.Start, a.End)
}

// MovingShapes drags the selection as one rigid body. Applied is the total
// delta already written to the shapes.
type MovingShapes struct {
	IDs         []string
	Press       geom.Point
	StartCenter geom.Point
	Applied     geom.Point
	Started     bool
}

// DraggingVertex drags one vertex of the shape under edit.
type DraggingVertex struct {
	Index int
}

// DraggingControlHandle drags one control handle of the shape under edit.
type DraggingControlHandle struct {
	Index int
	Side  session.Side
}

// DraggingDrawingHandle pulls symmetric handles out of the anchor just
// placed with the pen.
type DraggingDrawingHandle struct {
	Anchor  geom.Point
	Started bool
}

// Drawing is an open pen path between clicks.
type Drawing struct{}

func (Idle) Name() string                  { return "idle" }
func (Panning) Name() string               { return "panning" }
func (AreaSelecting) Name() string         { return "areaSelecting" }
func (MovingShapes) Name() string          { return "movingShapes" }
func (DraggingVertex) Name() string        { return "draggingVertex" }
func (DraggingControlHandle) Name() string { return "draggingControlHandle" }
func (DraggingDrawingHandle) Name() string { return "draggingDrawingHandle" }
func (Drawing) Name() string               { return "drawing" }

func (Idle) gesture()                  {}
func (Panning) gesture()               {}
func (AreaSelecting) gesture()         {}
func (MovingShapes) gesture()          {}
func (DraggingVertex) gesture()        {}
func (DraggingControlHandle) gesture() {}
func (DraggingDrawingHandle) gesture() {}
func (Drawing) gesture()               {}
