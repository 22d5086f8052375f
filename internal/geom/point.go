package geom

import "math"

// Point is a canvas-space coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is a convenience constructor.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Length returns the length of p treated as a vector.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the euclidean distance between two points.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// ControlPoints holds the optional bezier handles on either side of an anchor.
type ControlPoints struct {
	In  *Point `json:"in,omitempty"`
	Out *Point `json:"out,omitempty"`
}

// BezierPoint is a path anchor with optional incoming/outgoing controls.
type BezierPoint struct {
	Point
	Controls ControlPoints `json:"controlPoints"`
}

// Anchor creates a BezierPoint with no controls.
func Anchor(x, y float64) BezierPoint {
	return BezierPoint{Point: Point{X: x, Y: y}}
}

// HasControls reports whether either handle is set.
func (b BezierPoint) HasControls() bool {
	return b.Controls.In != nil || b.Controls.Out != nil
}

// Translate moves the anchor and both of its handles by d.
func (b BezierPoint) Translate(d Point) BezierPoint {
	out := BezierPoint{Point: b.Point.Add(d)}
	if b.Controls.In != nil {
		in := b.Controls.In.Add(d)
		out.Controls.In = &in
	}
	if b.Controls.Out != nil {
		o := b.Controls.Out.Add(d)
		out.Controls.Out = &o
	}
	return out
}

// Clone returns a deep copy so handle pointers are not shared.
func (b BezierPoint) Clone() BezierPoint {
	return b.Translate(Point{})
}

// Positions returns the anchor positions of a vertex list.
func Positions(vertices []BezierPoint) []Point {
	pts := make([]Point, len(vertices))
	for i, v := range vertices {
		pts[i] = v.Point
	}
	return pts
}

// CloneAll deep-copies a vertex list.
func CloneAll(vertices []BezierPoint) []BezierPoint {
	if vertices == nil {
		return nil
	}
	out := make([]BezierPoint, len(vertices))
	for i, v := range vertices {
		out[i] = v.Clone()
	}
	return out
}
