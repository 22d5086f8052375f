package geom

import (
	"math"
	"testing"
)

func TestPointInPolygon(t *testing.T) {
	square := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	hexagon := make([]Point, 6)
	for i := range hexagon {
		a := float64(i) * math.Pi / 3
		hexagon[i] = Point{X: 50 + 20*math.Cos(a), Y: 50 + 20*math.Sin(a)}
	}
	concave := []Point{{0, 0}, {10, 0}, {10, 10}, {5, 5}, {0, 10}}

	tests := []struct {
		name     string
		p        Point
		vertices []Point
		want     bool
	}{
		{"square center", Point{5, 5}, square, true},
		{"square far outside", Point{500, -300}, square, false},
		{"hexagon centroid", Centroid(hexagon), hexagon, true},
		{"hexagon outside bbox", Point{0, 0}, hexagon, false},
		{"concave notch", Point{5, 8}, concave, false},
		{"concave body", Point{5, 2}, concave, true},
		{"two vertices", Point{0, 0}, []Point{{-1, -1}, {1, 1}}, false},
		{"empty", Point{0, 0}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointInPolygon(tt.p, tt.vertices); got != tt.want {
				t.Errorf("PointInPolygon(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestClosestPointOnSegment(t *testing.T) {
	a, b := Point{0, 0}, Point{10, 0}

	tests := []struct {
		name string
		p    Point
		want Point
	}{
		{"projection inside", Point{4, 3}, Point{4, 0}},
		{"before start", Point{-5, 2}, a},
		{"past end", Point{15, -2}, b},
		{"on segment", Point{7, 0}, Point{7, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClosestPointOnSegment(tt.p, a, b)
			if got.Distance(tt.want) > 1e-9 {
				t.Errorf("ClosestPointOnSegment(%v) = %v, want %v", tt.p, got, tt.want)
			}
			d := got.Distance(tt.p)
			if d < 0 {
				t.Errorf("negative distance %v", d)
			}
			if (d == 0) != (tt.p.Y == 0 && tt.p.X >= 0 && tt.p.X <= 10) {
				t.Errorf("distance %v does not match on-segment status of %v", d, tt.p)
			}
		})
	}

	t.Run("degenerate", func(t *testing.T) {
		got := ClosestPointOnSegment(Point{3, 4}, Point{1, 1}, Point{1, 1})
		if got != (Point{1, 1}) {
			t.Errorf("got %v, want (1,1)", got)
		}
	})
}

func TestCentroid(t *testing.T) {
	got := Centroid([]Point{{0, 0}, {100, 0}, {50, 100}})
	if math.Abs(got.X-50) > 1e-9 || math.Abs(got.Y-100.0/3) > 1e-9 {
		t.Errorf("Centroid = %v, want (50, 33.33)", got)
	}
	if c := Centroid(nil); c != (Point{}) {
		t.Errorf("Centroid(nil) = %v, want zero", c)
	}
}

func TestRect(t *testing.T) {
	r := RectFromPoints(Point{10, 10}, Point{0, 20})
	if r != (Rect{X: 0, Y: 10, Width: 10, Height: 10}) {
		t.Fatalf("RectFromPoints = %+v", r)
	}
	if !r.Contains(Point{5, 15}) || r.Contains(Point{11, 15}) {
		t.Error("Contains mismatch")
	}
	if got := r.Clamp(Point{-5, 30}); got != (Point{0, 20}) {
		t.Errorf("Clamp = %v", got)
	}
	if !r.Intersects(Rect{X: 9, Y: 19, Width: 5, Height: 5}) {
		t.Error("expected intersection")
	}
	if r.Intersects(Rect{X: 11, Y: 0, Width: 1, Height: 1}) {
		t.Error("unexpected intersection")
	}
	u := r.Union(Rect{X: 20, Y: 0, Width: 5, Height: 5})
	if u != (Rect{X: 0, Y: 0, Width: 25, Height: 20}) {
		t.Errorf("Union = %+v", u)
	}
}

func TestRectUnionKeepsDegenerateRects(t *testing.T) {
	square := Rect{X: 200, Y: 200, Width: 10, Height: 10}
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{"flat line", Rect{X: 0, Y: 300, Width: 100}, square, Rect{X: 0, Y: 200, Width: 210, Height: 100}},
		{"flat line second", square, Rect{X: 0, Y: 300, Width: 100}, Rect{X: 0, Y: 200, Width: 210, Height: 100}},
		{"vertical line", Rect{X: 400, Y: 0, Height: 50}, square, Rect{X: 200, Y: 0, Width: 200, Height: 210}},
		{"single point", Rect{X: 0, Y: 0}, square, Rect{X: 0, Y: 0, Width: 210, Height: 210}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Union(tt.b); got != tt.want {
				t.Errorf("Union = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMatrixInvert(t *testing.T) {
	m := Translate(30, -10).Multiply(Scale(2, 4))
	p := Point{3, 5}
	back := m.Invert().TransformPoint(m.TransformPoint(p))
	if back.Distance(p) > 1e-9 {
		t.Errorf("round trip = %v, want %v", back, p)
	}
}

func TestBezierPointTranslateCopiesHandles(t *testing.T) {
	in := Point{-1, 0}
	b := BezierPoint{Point: Point{0, 0}, Controls: ControlPoints{In: &in}}
	moved := b.Translate(Point{5, 5})
	if moved.Controls.In == b.Controls.In {
		t.Fatal("handle pointer shared after translate")
	}
	if *moved.Controls.In != (Point{4, 5}) || moved.Controls.Out != nil {
		t.Errorf("moved controls = %+v", moved.Controls)
	}
}
