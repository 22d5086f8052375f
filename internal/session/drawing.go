package session

import (
	"log/slog"

	"github.com/VergilAI/brand-book-sub003/internal/document"
	"github.com/VergilAI/brand-book-sub003/internal/geom"
)

// DrawingState is the open path being placed with the pen tool.
type DrawingState struct {
	Active bool               `json:"active"`
	Points []geom.BezierPoint `json:"points"`
}

// Last returns the most recently placed anchor.
func (d DrawingState) Last() (geom.BezierPoint, bool) {
	if len(d.Points) == 0 {
		return geom.BezierPoint{}, false
	}
	return d.Points[len(d.Points)-1], true
}

// StartDrawing begins a new path at p, discarding any open one.
func (s *Store) StartDrawing(p geom.Point) {
	s.Drawing = DrawingState{
		Active: true,
		Points: []geom.BezierPoint{geom.Anchor(p.X, p.Y)},
	}
}

// AppendAnchor adds a plain anchor to the open path.
func (s *Store) AppendAnchor(p geom.Point) bool {
	if !s.Drawing.Active {
		return false
	}
	s.Drawing.Points = append(s.Drawing.Points, geom.Anchor(p.X, p.Y))
	return true
}

// SetAnchorControls replaces both controls of the anchor at index.
func (s *Store) SetAnchorControls(index int, in, out *geom.Point) bool {
	if !s.Drawing.Active || index < 0 || index >= len(s.Drawing.Points) {
		return false
	}
	s.Drawing.Points[index].Controls = geom.ControlPoints{In: in, Out: out}
	return true
}

func (s *Store) CancelDrawing() {
	s.Drawing = DrawingState{}
}

// FinishDrawing turns the open path into a shape and selects it. Paths with
// fewer than three anchors stay open.
func (s *Store) FinishDrawing() (string, bool) {
	if !s.Drawing.Active || len(s.Drawing.Points) < document.MinVertices {
		slog.Debug("drawing not closable", "points", len(s.Drawing.Points))
		return "", false
	}
	id, ok := s.AddShape("", s.Drawing.Points, document.DefaultStyle)
	if !ok {
		return "", false
	}
	s.Drawing = DrawingState{}
	s.Select(id)
	return id, true
}
