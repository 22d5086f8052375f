// Package session holds the editable state of one open document: the shapes
// themselves plus selection, view, in-progress drawing, vertex editing and
// snapping state.
//
// A Store is owned by exactly one caller at a time. The interaction machine
// is its only mutator during a gesture; collaborators go through
// ApplyOperation. Operations addressing a missing shape or vertex are no-ops
// that report false.
package session

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/VergilAI/brand-book-sub003/internal/document"
	"github.com/VergilAI/brand-book-sub003/internal/geom"
	"github.com/VergilAI/brand-book-sub003/internal/snap"
	"github.com/VergilAI/brand-book-sub003/internal/svgpath"
	"github.com/VergilAI/brand-book-sub003/internal/typeid"
	"github.com/VergilAI/brand-book-sub003/internal/view"
)

// Store is the document plus all per-session editor state.
type Store struct {
	doc       *document.Document
	selection map[string]bool

	View    *view.Transform
	Drawing DrawingState
	// Edit is nil outside of a vertex-edit session.
	Edit *EditingState
	Snap SnapState
}

// SnapState is the snapping engine configuration plus the indicators of the
// most recent query, kept for rendering.
type SnapState struct {
	snap.Engine
	Indicators []snap.Indicator `json:"indicators"`
}

// New creates a store over doc. A nil doc starts an empty document.
func New(doc *document.Document, v *view.Transform, settings snap.Settings) *Store {
	if doc == nil {
		doc = document.NewEmptyDocument("Untitled", document.Settings{})
	}
	if doc.Shapes == nil {
		doc.Shapes = map[string]document.Shape{}
	}
	if v == nil {
		v = view.New(view.DefaultBaseWidth, view.DefaultBaseWidth, view.DefaultBaseWidth*0.75)
	}
	return &Store{
		doc:       doc,
		selection: map[string]bool{},
		View:      v,
		Snap:      SnapState{Engine: snap.Engine{Settings: settings}},
	}
}

// Document returns the live document. Callers must not mutate its shapes
// directly.
func (s *Store) Document() *document.Document {
	return s.doc
}

// Shape returns the shape with the given id.
func (s *Store) Shape(id string) (document.Shape, bool) {
	sh, ok := s.doc.Shapes[id]
	return sh, ok
}

// ShapeIDs returns all shape ids in ascending order, which is creation order
// for generated ids.
func (s *Store) ShapeIDs() []string {
	ids := make([]string, 0, len(s.doc.Shapes))
	for id := range s.doc.Shapes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// AddShape creates a closed shape from vertices. Fewer than three vertices
// is refused.
func (s *Store) AddShape(name string, vertices []geom.BezierPoint, style document.Style) (string, bool) {
	if len(vertices) < document.MinVertices {
		slog.Debug("refusing shape with too few vertices", "vertices", len(vertices))
		return "", false
	}
	id := typeid.NewShapeID()
	if name == "" {
		name = fmt.Sprintf("Shape %d", len(s.doc.Shapes)+1)
	}
	s.doc.Shapes[id] = document.NewShape(id, name, geom.CloneAll(vertices), style)
	s.doc.Touch()
	return id, true
}

// DeleteShapes removes the given shapes and drops them from the selection.
// It returns the number of shapes removed.
func (s *Store) DeleteShapes(ids ...string) int {
	n := 0
	for _, id := range ids {
		if _, ok := s.doc.Shapes[id]; !ok {
			continue
		}
		delete(s.doc.Shapes, id)
		delete(s.selection, id)
		if s.Edit != nil && s.Edit.ShapeID == id {
			s.Edit = nil
		}
		n++
	}
	if n > 0 {
		s.doc.Touch()
	}
	return n
}

// MoveShapes translates every listed shape by the same delta.
func (s *Store) MoveShapes(ids []string, delta geom.Point) bool {
	moved := false
	for _, id := range ids {
		sh, ok := s.doc.Shapes[id]
		if !ok {
			continue
		}
		sh.FillPath = svgpath.Translate(sh.FillPath, delta.X, delta.Y)
		sh.Center = sh.Center.Add(delta)
		s.doc.Shapes[id] = sh
		if s.Edit != nil && s.Edit.ShapeID == id {
			for i, v := range s.Edit.Vertices {
				s.Edit.Vertices[i] = v.Translate(delta)
			}
		}
		moved = true
	}
	if moved {
		s.doc.Touch()
	}
	return moved
}

// StylePatch carries the style properties to change; nil fields are kept.
type StylePatch struct {
	Fill        *string  `json:"fill,omitempty"`
	Stroke      *string  `json:"stroke,omitempty"`
	StrokeWidth *float64 `json:"strokeWidth,omitempty"`
	Opacity     *float64 `json:"opacity,omitempty"`
}

// Restyle applies patch to the shape.
func (s *Store) Restyle(id string, patch StylePatch) bool {
	sh, ok := s.doc.Shapes[id]
	if !ok {
		slog.Debug("restyle of unknown shape", "shape", id)
		return false
	}
	if patch.Fill != nil {
		sh.Fill = *patch.Fill
	}
	if patch.Stroke != nil {
		sh.Stroke = *patch.Stroke
	}
	if patch.StrokeWidth != nil {
		sh.StrokeWidth = *patch.StrokeWidth
	}
	if patch.Opacity != nil {
		sh.Opacity = min(max(*patch.Opacity, 0), 1)
	}
	s.doc.Shapes[id] = sh
	s.doc.Touch()
	return true
}

func (s *Store) Rename(id, name string) bool {
	sh, ok := s.doc.Shapes[id]
	if !ok {
		return false
	}
	sh.Name = name
	s.doc.Shapes[id] = sh
	s.doc.Touch()
	return true
}

// ShapeVertices decodes the outline of a shape. The shape under a vertex edit
// reports its working vertices.
func (s *Store) ShapeVertices(id string) ([]geom.BezierPoint, bool) {
	if s.Edit != nil && s.Edit.ShapeID == id {
		return geom.CloneAll(s.Edit.Vertices), true
	}
	sh, ok := s.doc.Shapes[id]
	if !ok {
		return nil, false
	}
	return sh.Vertices(), true
}

// SnapTargets reduces every shape not in exclude to its outline, in id order.
func (s *Store) SnapTargets(exclude map[string]bool) []snap.Target {
	var out []snap.Target
	for _, id := range s.ShapeIDs() {
		if exclude[id] {
			continue
		}
		verts, _ := s.ShapeVertices(id)
		pts := geom.Positions(verts)
		out = append(out, snap.Target{ID: id, Vertices: pts, Center: geom.Centroid(pts)})
	}
	return out
}

// SnapPoint runs the snapping engine against the shape pool and keeps the
// resulting indicators for rendering.
func (s *Store) SnapPoint(p geom.Point, prev *geom.Point, exclude map[string]bool) snap.Result {
	res := s.Snap.Engine.Snap(s.SnapTargets(exclude), snap.Request{Point: p, Prev: prev, Exclude: exclude})
	s.Snap.Indicators = res.Indicators
	return res
}

func (s *Store) ClearIndicators() {
	s.Snap.Indicators = nil
}

// HitTestShape returns the topmost shape whose outline contains p. Later
// shapes are on top.
func (s *Store) HitTestShape(p geom.Point) (string, bool) {
	ids := s.ShapeIDs()
	for i := len(ids) - 1; i >= 0; i-- {
		verts, _ := s.ShapeVertices(ids[i])
		if geom.PointInPolygon(p, geom.Positions(verts)) {
			return ids[i], true
		}
	}
	return "", false
}
