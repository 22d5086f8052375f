package session

import (
	"log/slog"
	"slices"

	"github.com/VergilAI/brand-book-sub003/internal/document"
	"github.com/VergilAI/brand-book-sub003/internal/geom"
)

// Side names one of the two control handles of an anchor.
type Side string

const (
	SideIn  Side = "in"
	SideOut Side = "out"
)

// EditingState is a vertex-edit session scoped to one shape. Vertices is a
// working copy that is written back to the shape on commit.
type EditingState struct {
	ShapeID  string             `json:"shapeId"`
	Vertices []geom.BezierPoint `json:"vertices"`
	Selected map[int]bool       `json:"-"`
}

// SelectedVertices returns the selected indices in ascending order.
func (e *EditingState) SelectedVertices() []int {
	out := make([]int, 0, len(e.Selected))
	for i := range e.Selected {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// HitVertex returns the index of the nearest vertex within radius.
func (e *EditingState) HitVertex(p geom.Point, radius float64) (int, bool) {
	best, bestDist := -1, radius
	for i, v := range e.Vertices {
		if d := p.Distance(v.Point); d <= bestDist {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}

// HitHandle returns the nearest control handle within radius.
func (e *EditingState) HitHandle(p geom.Point, radius float64) (int, Side, bool) {
	best, side, bestDist := -1, SideIn, radius
	for i, v := range e.Vertices {
		if c := v.Controls.In; c != nil {
			if d := p.Distance(*c); d <= bestDist {
				best, side, bestDist = i, SideIn, d
			}
		}
		if c := v.Controls.Out; c != nil {
			if d := p.Distance(*c); d <= bestDist {
				best, side, bestDist = i, SideOut, d
			}
		}
	}
	return best, side, best >= 0
}

// HitEdge returns the closest point on the outline within radius and the
// index of the vertex that starts that edge.
func (e *EditingState) HitEdge(p geom.Point, radius float64) (int, geom.Point, bool) {
	n := len(e.Vertices)
	if n < 2 {
		return -1, geom.Point{}, false
	}
	best, bestDist := -1, radius
	var at geom.Point
	for i := range n {
		a, b := e.Vertices[i].Point, e.Vertices[(i+1)%n].Point
		q := geom.ClosestPointOnSegment(p, a, b)
		if d := p.Distance(q); d <= bestDist {
			best, bestDist, at = i, d, q
		}
	}
	return best, at, best >= 0
}

// BeginEdit opens a vertex-edit session on a shape, committing any session
// already open. The shape becomes the only selected shape.
func (s *Store) BeginEdit(id string) bool {
	sh, ok := s.doc.Shapes[id]
	if !ok {
		return false
	}
	s.CommitEdit()
	s.Edit = &EditingState{
		ShapeID:  id,
		Vertices: sh.Vertices(),
		Selected: map[int]bool{},
	}
	s.Select(id)
	return true
}

// CommitEdit writes the working vertices back into the shape and closes the
// session.
func (s *Store) CommitEdit() bool {
	e := s.Edit
	if e == nil {
		return false
	}
	s.Edit = nil
	sh, ok := s.doc.Shapes[e.ShapeID]
	if !ok {
		return false
	}
	if len(e.Vertices) < document.MinVertices {
		slog.Debug("discarding degenerate edit", "shape", e.ShapeID, "vertices", len(e.Vertices))
		return false
	}
	sh.SetVertices(e.Vertices)
	s.doc.Shapes[e.ShapeID] = sh
	s.doc.Touch()
	return true
}

func (s *Store) validVertex(i int) bool {
	return s.Edit != nil && i >= 0 && i < len(s.Edit.Vertices)
}

// MoveVertex moves the vertex at i to p, carrying its handles along.
func (s *Store) MoveVertex(i int, p geom.Point) bool {
	if !s.validVertex(i) {
		return false
	}
	v := s.Edit.Vertices[i]
	s.Edit.Vertices[i] = v.Translate(p.Sub(v.Point))
	return true
}

// MoveControl moves one handle of the vertex at i. A missing handle is
// created.
func (s *Store) MoveControl(i int, side Side, p geom.Point) bool {
	if !s.validVertex(i) {
		return false
	}
	c := p
	switch side {
	case SideIn:
		s.Edit.Vertices[i].Controls.In = &c
	case SideOut:
		s.Edit.Vertices[i].Controls.Out = &c
	default:
		return false
	}
	return true
}

// InsertVertex inserts a plain anchor after index and returns its index.
func (s *Store) InsertVertex(after int, p geom.Point) (int, bool) {
	if !s.validVertex(after) {
		return -1, false
	}
	at := after + 1
	s.Edit.Vertices = slices.Insert(s.Edit.Vertices, at, geom.Anchor(p.X, p.Y))

	shifted := make(map[int]bool, len(s.Edit.Selected))
	for i := range s.Edit.Selected {
		if i >= at {
			i++
		}
		shifted[i] = true
	}
	s.Edit.Selected = shifted
	return at, true
}

// DeleteVertices removes the listed vertices, highest index first. It is
// refused when fewer than three vertices would remain.
func (s *Store) DeleteVertices(indices []int) bool {
	if s.Edit == nil {
		return false
	}
	uniq := slices.Clone(indices)
	slices.Sort(uniq)
	uniq = slices.Compact(uniq)
	uniq = slices.DeleteFunc(uniq, func(i int) bool { return !s.validVertex(i) })
	if len(uniq) == 0 {
		return false
	}
	if len(s.Edit.Vertices)-len(uniq) < document.MinVertices {
		slog.Debug("vertex delete would leave too few vertices", "shape", s.Edit.ShapeID)
		return false
	}
	for _, i := range slices.Backward(uniq) {
		s.Edit.Vertices = slices.Delete(s.Edit.Vertices, i, i+1)
	}
	clear(s.Edit.Selected)
	return true
}

// SelectVertex selects the vertex at i. When additive, the vertex is toggled
// and the rest of the selection kept.
func (s *Store) SelectVertex(i int, additive bool) bool {
	if !s.validVertex(i) {
		return false
	}
	if additive {
		if s.Edit.Selected[i] {
			delete(s.Edit.Selected, i)
		} else {
			s.Edit.Selected[i] = true
		}
		return true
	}
	clear(s.Edit.Selected)
	s.Edit.Selected[i] = true
	return true
}

func (s *Store) ClearVertexSelection() {
	if s.Edit != nil {
		clear(s.Edit.Selected)
	}
}
