package document

import (
	"math"
	"time"

	"github.com/VergilAI/brand-book-sub003/internal/geom"
	"github.com/VergilAI/brand-book-sub003/internal/typeid"
)

// NewSampleDocument returns a small document with a rectangle, a triangle
// and a curved blob, used by playgrounds and tests.
func NewSampleDocument(name string) *Document {
	now := time.Now().UTC().Format(time.RFC3339)

	rectID := typeid.NewShapeID()
	triangleID := typeid.NewShapeID()
	blobID := typeid.NewShapeID()

	rect := []geom.BezierPoint{
		geom.Anchor(200, 200),
		geom.Anchor(400, 200),
		geom.Anchor(400, 350),
		geom.Anchor(200, 350),
	}
	triangle := []geom.BezierPoint{
		geom.Anchor(900, 350),
		geom.Anchor(1000, 200),
		geom.Anchor(1100, 350),
	}

	return &Document{
		Version: FormatVersion,
		Metadata: Metadata{
			Name:     name,
			Author:   "",
			Created:  now,
			Modified: now,
		},
		Shapes: map[string]Shape{
			rectID: NewShape(rectID, "Rectangle", rect, Style{
				Fill: "#e94560", Stroke: "#000000", StrokeWidth: 2, Opacity: 1,
			}),
			triangleID: NewShape(triangleID, "Triangle", triangle, Style{
				Fill: "#53d769", Stroke: "#2d6a4f", StrokeWidth: 2, Opacity: 1,
			}),
			blobID: NewShape(blobID, "Blob", blob(640, 500, 120, 80), Style{
				Fill: "#0f3460", Stroke: "#16213e", StrokeWidth: 2, Opacity: 1,
			}),
		},
		Settings: Settings{
			CanvasWidth:     1280,
			CanvasHeight:    720,
			BackgroundColor: "#1a1a2e",
		},
	}
}

// blob approximates an ellipse with four anchors and symmetric handles.
func blob(cx, cy, rx, ry float64) []geom.BezierPoint {
	// Magic number for bezier approximation of a circle/ellipse
	// k = 4 * (sqrt(2) - 1) / 3 ≈ 0.5522847498
	k := 4 * (math.Sqrt2 - 1) / 3
	kx, ky := rx*k, ry*k

	withHandles := func(x, y, inX, inY, outX, outY float64) geom.BezierPoint {
		in := geom.Point{X: inX, Y: inY}
		out := geom.Point{X: outX, Y: outY}
		return geom.BezierPoint{Point: geom.Point{X: x, Y: y}, Controls: geom.ControlPoints{In: &in, Out: &out}}
	}
	return []geom.BezierPoint{
		withHandles(cx+rx, cy, cx+rx, cy-ky, cx+rx, cy+ky),
		withHandles(cx, cy+ry, cx+kx, cy+ry, cx-kx, cy+ry),
		withHandles(cx-rx, cy, cx-rx, cy+ky, cx-rx, cy-ky),
		withHandles(cx, cy-ry, cx-kx, cy-ry, cx+kx, cy-ry),
	}
}
