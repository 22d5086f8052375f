// Package svgpath converts between the SVG path subset used for shape
// outlines (M, L, C, Q, Z) and ordered bezier vertex lists.
package svgpath

import (
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/VergilAI/brand-book-sub003/internal/geom"
)

// closeEpsilon is the distance under which a trailing anchor is treated as
// the wrap-around copy of the first anchor.
const closeEpsilon = 1e-6

// PathCommand represents a single path segment for rendering.
// Format matches Canvas2D: ["M", x, y], ["L", x, y], ["C", x1, y1, x2, y2, x, y], ["Z"].
type PathCommand []interface{}

// Decode parses path data into an ordered anchor list. Malformed operands are
// skipped; an empty or unparseable path yields nil.
func Decode(path string) []geom.BezierPoint {
	var (
		verts  []geom.BezierPoint
		cursor geom.Point
		start  geom.Point
	)

	resolve := func(rel bool, x, y float64) geom.Point {
		if rel {
			return geom.Point{X: cursor.X + x, Y: cursor.Y + y}
		}
		return geom.Point{X: x, Y: y}
	}

	for _, seg := range tokenize(path) {
		rel := isRelative(seg.cmd)
		switch upper(seg.cmd) {
		case 'M':
			for i, g := range seg.groups() {
				p := resolve(rel, g[0], g[1])
				if i == 0 {
					start = p
				}
				verts = append(verts, geom.BezierPoint{Point: p})
				cursor = p
			}
		case 'L':
			for _, g := range seg.groups() {
				p := resolve(rel, g[0], g[1])
				verts = append(verts, geom.BezierPoint{Point: p})
				cursor = p
			}
		case 'C':
			for _, g := range seg.groups() {
				c1 := resolve(rel, g[0], g[1])
				c2 := resolve(rel, g[2], g[3])
				p := resolve(rel, g[4], g[5])
				verts = appendCurve(verts, c1, c2, p)
				cursor = p
			}
		case 'Q':
			for _, g := range seg.groups() {
				q := resolve(rel, g[0], g[1])
				p := resolve(rel, g[2], g[3])
				// Exact quadratic to cubic elevation.
				c1 := cursor.Add(q.Sub(cursor).Mul(2.0 / 3.0))
				c2 := p.Add(q.Sub(p).Mul(2.0 / 3.0))
				verts = appendCurve(verts, c1, c2, p)
				cursor = p
			}
		case 'Z':
			cursor = start
		default:
			slog.Debug("svgpath: ignoring unsupported command", "command", string(seg.cmd))
		}
	}

	return foldClosingAnchor(verts)
}

func appendCurve(verts []geom.BezierPoint, c1, c2, p geom.Point) []geom.BezierPoint {
	if n := len(verts); n > 0 {
		out := c1
		verts[n-1].Controls.Out = &out
	}
	in := c2
	return append(verts, geom.BezierPoint{Point: p, Controls: geom.ControlPoints{In: &in}})
}

// foldClosingAnchor merges a trailing anchor that repeats the first one,
// carrying its incoming control over to the first anchor.
func foldClosingAnchor(verts []geom.BezierPoint) []geom.BezierPoint {
	n := len(verts)
	if n < 2 {
		return verts
	}
	first, last := verts[0], verts[n-1]
	if first.Distance(last.Point) > closeEpsilon {
		return verts
	}
	if last.Controls.In != nil {
		verts[0].Controls.In = last.Controls.In
	}
	return verts[:n-1]
}

// Build produces draw commands for a vertex list. Segments with no adjacent
// control are lines; otherwise a cubic is emitted, mirroring the missing
// handle from the present one.
func Build(vertices []geom.BezierPoint, closed bool) []PathCommand {
	n := len(vertices)
	if n == 0 {
		return nil
	}

	cmds := []PathCommand{{"M", vertices[0].X, vertices[0].Y}}
	segments := n - 1
	if closed && n > 1 {
		segments = n
	}
	for i := 0; i < segments; i++ {
		a, b := vertices[i], vertices[(i+1)%n]
		if a.Controls.Out == nil && b.Controls.In == nil {
			cmds = append(cmds, PathCommand{"L", b.X, b.Y})
			continue
		}
		var c1, c2 geom.Point
		switch {
		case a.Controls.Out != nil && b.Controls.In != nil:
			c1, c2 = *a.Controls.Out, *b.Controls.In
		case a.Controls.Out != nil:
			c1 = *a.Controls.Out
			c2 = mirror(b.Point, c1, a.Point)
		default:
			c2 = *b.Controls.In
			c1 = mirror(a.Point, c2, b.Point)
		}
		cmds = append(cmds, PathCommand{"C", c1.X, c1.Y, c2.X, c2.Y, b.X, b.Y})
	}
	if closed {
		cmds = append(cmds, PathCommand{"Z"})
	}
	return cmds
}

// mirror reflects a handle defined at source to the target end of a segment.
func mirror(target, control, source geom.Point) geom.Point {
	return target.Sub(control.Sub(source).Mul(0.5))
}

// Encode serializes a vertex list as path data, e.g. "M 0 0 L 100 0 L 0 0 Z".
func Encode(vertices []geom.BezierPoint, closed bool) string {
	return Format(Build(vertices, closed))
}

// Format renders draw commands as space separated path data.
func Format(cmds []PathCommand) string {
	var sb strings.Builder
	for i, cmd := range cmds {
		if len(cmd) == 0 {
			continue
		}
		if i > 0 {
			sb.WriteByte(' ')
		}
		op, _ := cmd[0].(string)
		sb.WriteString(op)
		for _, v := range cmd[1:] {
			sb.WriteByte(' ')
			sb.WriteString(formatNumber(toFloat64(v)))
		}
	}
	return sb.String()
}

// Commands decodes path data and rebuilds it as closed draw commands.
func Commands(path string) []PathCommand {
	return Build(Decode(path), true)
}

// Bounds returns the bounding box of the anchors and controls of a path.
func Bounds(path string) geom.Rect {
	verts := Decode(path)
	pts := make([]geom.Point, 0, len(verts)*3)
	for _, v := range verts {
		pts = append(pts, v.Point)
		if v.Controls.In != nil {
			pts = append(pts, *v.Controls.In)
		}
		if v.Controls.Out != nil {
			pts = append(pts, *v.Controls.Out)
		}
	}
	return geom.BoundsOf(pts)
}

// formatNumber prints v with at most six decimals and no trailing zeros.
func formatNumber(v float64) string {
	v = math.Round(v*1e6) / 1e6
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// toFloat64 converts an interface{} to float64.
func toFloat64(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
