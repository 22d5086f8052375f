package session

import (
	"encoding/json"
	"errors"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/VergilAI/brand-book-sub003/internal/document"
	"github.com/VergilAI/brand-book-sub003/internal/geom"
	"github.com/VergilAI/brand-book-sub003/internal/snap"
)

func square(x, y, size float64) []geom.BezierPoint {
	return []geom.BezierPoint{
		geom.Anchor(x, y),
		geom.Anchor(x+size, y),
		geom.Anchor(x+size, y+size),
		geom.Anchor(x, y+size),
	}
}

func newStore(t *testing.T) *Store {
	t.Helper()
	return New(nil, nil, snap.DefaultSettings())
}

func mustAdd(t *testing.T, s *Store, verts []geom.BezierPoint) string {
	t.Helper()
	id, ok := s.AddShape("", verts, document.DefaultStyle)
	if !ok {
		t.Fatal("AddShape refused")
	}
	return id
}

func TestAddShape(t *testing.T) {
	s := newStore(t)
	if _, ok := s.AddShape("line", square(0, 0, 10)[:2], document.DefaultStyle); ok {
		t.Fatal("two-vertex shape accepted")
	}

	id := mustAdd(t, s, square(0, 0, 10))
	sh, ok := s.Shape(id)
	if !ok {
		t.Fatal("shape missing after add")
	}
	if sh.Center != (geom.Point{X: 5, Y: 5}) {
		t.Errorf("center = %v, want (5,5)", sh.Center)
	}
	if !strings.HasPrefix(sh.FillPath, "M 0 0") || !strings.HasSuffix(sh.FillPath, "Z") {
		t.Errorf("fillPath = %q", sh.FillPath)
	}
	if sh.Name != "Shape 1" {
		t.Errorf("name = %q, want Shape 1", sh.Name)
	}
}

func TestDeleteShapesDropsSelection(t *testing.T) {
	s := newStore(t)
	a := mustAdd(t, s, square(0, 0, 10))
	b := mustAdd(t, s, square(20, 0, 10))
	s.Select(a, b)

	if n := s.DeleteShapes(a, "missing"); n != 1 {
		t.Fatalf("deleted %d shapes, want 1", n)
	}
	if got := s.SelectedIDs(); !slices.Equal(got, []string{b}) {
		t.Errorf("selection = %v, want [%s]", got, b)
	}
	if s.DeleteShapes("missing") != 0 {
		t.Error("deleting a missing shape should be a no-op")
	}
}

func TestMoveShapes(t *testing.T) {
	s := newStore(t)
	id := mustAdd(t, s, square(0, 0, 10))
	if !s.MoveShapes([]string{id}, geom.Point{X: 5, Y: -2}) {
		t.Fatal("MoveShapes reported no change")
	}
	sh, _ := s.Shape(id)
	if sh.Center != (geom.Point{X: 10, Y: 3}) {
		t.Errorf("center = %v, want (10,3)", sh.Center)
	}
	if got := geom.Positions(sh.Vertices())[0]; got != (geom.Point{X: 5, Y: -2}) {
		t.Errorf("first vertex = %v, want (5,-2)", got)
	}
	if s.MoveShapes([]string{"missing"}, geom.Point{X: 1}) {
		t.Error("moving a missing shape should report false")
	}
}

func TestHitTestShapeTopmost(t *testing.T) {
	s := newStore(t)
	below := mustAdd(t, s, square(0, 0, 20))
	other := mustAdd(t, s, square(10, 10, 20))
	topmost := max(below, other)

	tests := []struct {
		p    geom.Point
		want string
		ok   bool
	}{
		{geom.Point{X: 5, Y: 5}, below, true},
		{geom.Point{X: 15, Y: 15}, topmost, true},
		{geom.Point{X: 100, Y: 100}, "", false},
	}
	for _, tt := range tests {
		got, ok := s.HitTestShape(tt.p)
		if got != tt.want || ok != tt.ok {
			t.Errorf("HitTestShape(%v) = %q,%v, want %q,%v", tt.p, got, ok, tt.want, tt.ok)
		}
	}
}

func TestAreaSelection(t *testing.T) {
	s := newStore(t)
	a := mustAdd(t, s, square(0, 0, 10))
	b := mustAdd(t, s, square(50, 0, 10))

	got := s.ApplyAreaSelection(geom.Rect{X: -5, Y: -5, Width: 20, Height: 20}, false)
	if !slices.Equal(got, []string{a}) {
		t.Fatalf("replace selection = %v, want [%s]", got, a)
	}

	got = s.ApplyAreaSelection(geom.Rect{X: -5, Y: -5, Width: 80, Height: 20}, true)
	if !slices.Equal(got, []string{b}) {
		t.Errorf("toggle selection = %v, want [%s]", got, b)
	}

	bounds, ok := s.SelectionBounds()
	if !ok || bounds != (geom.Rect{X: 50, Y: 0, Width: 10, Height: 10}) {
		t.Errorf("SelectionBounds = %v,%v", bounds, ok)
	}
}

func TestSelectionBoundsIncludesFlatShape(t *testing.T) {
	s := newStore(t)
	flat := mustAdd(t, s, []geom.BezierPoint{geom.Anchor(0, 300), geom.Anchor(50, 300), geom.Anchor(100, 300)})
	sq := mustAdd(t, s, square(200, 200, 10))
	s.Select(flat, sq)

	r, ok := s.SelectionBounds()
	if !ok {
		t.Fatal("no selection bounds")
	}
	if want := (geom.Rect{X: 0, Y: 200, Width: 210, Height: 100}); r != want {
		t.Errorf("bounds = %+v, want %+v", r, want)
	}
	if c := r.Center(); c != (geom.Point{X: 105, Y: 250}) {
		t.Errorf("center = %v, want (105,250)", c)
	}
}

func TestDrawing(t *testing.T) {
	s := newStore(t)
	if s.AppendAnchor(geom.Point{}) {
		t.Fatal("append without an open path")
	}
	s.StartDrawing(geom.Point{X: 0, Y: 0})
	s.AppendAnchor(geom.Point{X: 100, Y: 0})
	if _, ok := s.FinishDrawing(); ok {
		t.Fatal("finished a two-point path")
	}
	if !s.Drawing.Active {
		t.Fatal("failed finish should keep the path open")
	}
	s.AppendAnchor(geom.Point{X: 50, Y: 100})

	id, ok := s.FinishDrawing()
	if !ok {
		t.Fatal("FinishDrawing refused three points")
	}
	if s.Drawing.Active || len(s.Drawing.Points) != 0 {
		t.Error("drawing state not reset")
	}
	if !s.IsSelected(id) {
		t.Error("new shape not selected")
	}
	sh, _ := s.Shape(id)
	if math.Abs(sh.Center.Y-100.0/3) > 1e-9 || sh.Center.X != 50 {
		t.Errorf("center = %v", sh.Center)
	}
}

func TestEditSession(t *testing.T) {
	s := newStore(t)
	id := mustAdd(t, s, square(0, 0, 10))

	if !s.BeginEdit(id) {
		t.Fatal("BeginEdit failed")
	}
	if s.MoveVertex(9, geom.Point{}) {
		t.Error("MoveVertex accepted an invalid index")
	}
	s.MoveVertex(2, geom.Point{X: 20, Y: 20})

	// Shape is untouched until commit.
	if sh, _ := s.Shape(id); sh.Center != (geom.Point{X: 5, Y: 5}) {
		t.Fatalf("center changed before commit: %v", sh.Center)
	}

	at, ok := s.InsertVertex(0, geom.Point{X: 5, Y: 0})
	if !ok || at != 1 {
		t.Fatalf("InsertVertex = %d,%v", at, ok)
	}
	if !s.CommitEdit() {
		t.Fatal("CommitEdit failed")
	}
	if s.Edit != nil {
		t.Fatal("edit session still open")
	}
	verts, _ := s.ShapeVertices(id)
	if len(verts) != 5 {
		t.Fatalf("vertex count = %d, want 5", len(verts))
	}
	if verts[3].Point != (geom.Point{X: 20, Y: 20}) {
		t.Errorf("moved vertex = %v", verts[3].Point)
	}
}

func TestMoveVertexCarriesHandles(t *testing.T) {
	s := newStore(t)
	verts := square(0, 0, 10)
	out := geom.Point{X: 3, Y: -3}
	verts[0].Controls.Out = &out
	id := mustAdd(t, s, verts)
	s.BeginEdit(id)

	s.MoveVertex(0, geom.Point{X: 1, Y: 1})
	got := s.Edit.Vertices[0].Controls.Out
	if got == nil || *got != (geom.Point{X: 4, Y: -2}) {
		t.Errorf("out handle = %v, want (4,-2)", got)
	}

	s.MoveControl(0, SideOut, geom.Point{X: 7, Y: 7})
	if p := s.Edit.Vertices[0].Point; p != (geom.Point{X: 1, Y: 1}) {
		t.Errorf("anchor moved with handle: %v", p)
	}
}

func TestDeleteVertices(t *testing.T) {
	s := newStore(t)
	verts := append(square(0, 0, 10), geom.Anchor(-5, 5))
	id := mustAdd(t, s, verts)
	s.BeginEdit(id)

	if s.DeleteVertices([]int{0, 1, 2}) {
		t.Fatal("deleted below the three-vertex floor")
	}
	if !s.DeleteVertices([]int{4, 1, 4}) {
		t.Fatal("DeleteVertices refused")
	}
	want := []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	if got := geom.Positions(s.Edit.Vertices); !slices.Equal(got, want) {
		t.Errorf("vertices = %v, want %v", got, want)
	}
	if s.DeleteVertices([]int{0}) {
		t.Error("deleted from a triangle")
	}
}

func TestApplyOperation(t *testing.T) {
	s := newStore(t)
	id := mustAdd(t, s, square(0, 0, 10))

	ops := []string{
		`{"type":"shape.select","shapeId":"` + id + `"}`,
		`{"type":"shape.move","delta":{"x":10,"y":0}}`,
		`{"type":"shape.style","shapeId":"` + id + `","style":{"fill":"#ff0000","opacity":0.5}}`,
		`{"type":"shape.rename","shapeId":"` + id + `","name":"Box"}`,
		`{"type":"snap.settings","snap":{"grid":true,"gridSize":25}}`,
		`{"type":"view.zoom","zoom":2}`,
	}
	for _, raw := range ops {
		var op Operation
		if err := json.Unmarshal([]byte(raw), &op); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if err := s.ApplyOperation(op); err != nil {
			t.Fatalf("ApplyOperation(%s) = %v", op.Type, err)
		}
	}

	sh, _ := s.Shape(id)
	if sh.Center != (geom.Point{X: 15, Y: 5}) || sh.Fill != "#ff0000" || sh.Opacity != 0.5 || sh.Name != "Box" {
		t.Errorf("shape after ops = %+v", sh)
	}
	if sh.Stroke != document.DefaultStyle.Stroke {
		t.Errorf("stroke changed to %q", sh.Stroke)
	}
	if !s.Snap.Settings.Grid || s.Snap.Settings.GridSize != 25 || !s.Snap.Settings.Vertices {
		t.Errorf("snap settings = %+v", s.Snap.Settings)
	}
	if s.View.Zoom != 2 {
		t.Errorf("zoom = %v", s.View.Zoom)
	}

	if err := s.ApplyOperation(Operation{Type: "shape.delete", ShapeIDs: []string{id}}); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Shape(id); ok {
		t.Error("shape survived delete")
	}
}

func TestApplyOperationErrors(t *testing.T) {
	s := newStore(t)
	tests := []struct {
		op   Operation
		want error
	}{
		{Operation{Type: "shape.explode"}, ErrUnknownOperation},
		{Operation{Type: "shape.move"}, ErrInvalidPayload},
		{Operation{Type: "shape.style", ShapeID: "x", Style: json.RawMessage(`"red"`)}, ErrInvalidPayload},
		{Operation{Type: "shape.rename"}, ErrInvalidPayload},
		{Operation{Type: "view.zoom"}, ErrInvalidPayload},
		{Operation{Type: "snap.settings", Snap: json.RawMessage(`{"distance":-1}`)}, ErrInvalidPayload},
	}
	for _, tt := range tests {
		t.Run(tt.op.Type, func(t *testing.T) {
			if err := s.ApplyOperation(tt.op); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	// Missing ids are not errors.
	if err := s.ApplyOperation(Operation{Type: "shape.move", ShapeID: "missing", Delta: &geom.Point{X: 1}}); err != nil {
		t.Errorf("move of missing shape = %v", err)
	}
}
