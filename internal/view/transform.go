// Package view models zoom and pan and maps device coordinates on the
// render surface to canvas coordinates.
package view

import "github.com/VergilAI/brand-book-sub003/internal/geom"

const (
	MinZoom = 0.1
	MaxZoom = 5.0

	// DefaultBaseWidth is the logical canvas width visible at zoom 1.
	DefaultBaseWidth = 1200.0

	// WheelStep is the zoom factor applied per wheel notch.
	WheelStep = 1.1
)

// Transform is the view state: pan is the canvas-space top-left of the
// viewport, the viewport width is BaseWidth/Zoom and its height follows the
// live aspect ratio of the render surface.
type Transform struct {
	Zoom          float64    `json:"zoom"`
	Pan           geom.Point `json:"pan"`
	BaseWidth     float64    `json:"baseWidth"`
	SurfaceWidth  float64    `json:"surfaceWidth"`
	SurfaceHeight float64    `json:"surfaceHeight"`
	ShowGrid      bool       `json:"showGrid"`
}

// New creates a transform at zoom 1 with the pan at the origin.
func New(baseWidth, surfaceWidth, surfaceHeight float64) *Transform {
	if baseWidth <= 0 {
		baseWidth = DefaultBaseWidth
	}
	t := &Transform{Zoom: 1, BaseWidth: baseWidth}
	t.Resize(surfaceWidth, surfaceHeight)
	return t
}

// ClampZoom limits z to [MinZoom, MaxZoom].
func ClampZoom(z float64) float64 {
	return min(max(z, MinZoom), MaxZoom)
}

// Resize updates the render surface size. Only the vertical extent of the
// viewport changes; horizontal scale is fixed by BaseWidth and Zoom.
func (t *Transform) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	t.SurfaceWidth = width
	t.SurfaceHeight = height
}

func (t *Transform) surface() (float64, float64) {
	w, h := t.SurfaceWidth, t.SurfaceHeight
	if w <= 0 || h <= 0 {
		return t.BaseWidth, t.BaseWidth * 0.75
	}
	return w, h
}

// ViewportSize returns the canvas-space width and height of the viewport.
func (t *Transform) ViewportSize() (float64, float64) {
	sw, sh := t.surface()
	w := t.BaseWidth / t.Zoom
	return w, w * sh / sw
}

// Viewport returns the visible canvas rectangle.
func (t *Transform) Viewport() geom.Rect {
	w, h := t.ViewportSize()
	return geom.Rect{X: t.Pan.X, Y: t.Pan.Y, Width: w, Height: h}
}

// ScreenToCanvasMatrix maps device coordinates to canvas coordinates.
func (t *Transform) ScreenToCanvasMatrix() geom.Matrix2D {
	sw, sh := t.surface()
	vw, vh := t.ViewportSize()
	return geom.Translate(t.Pan.X, t.Pan.Y).Multiply(geom.Scale(vw/sw, vh/sh))
}

// ScreenToCanvas converts a device-space point to canvas space.
func (t *Transform) ScreenToCanvas(p geom.Point) geom.Point {
	return t.ScreenToCanvasMatrix().TransformPoint(p)
}

// CanvasToScreen converts a canvas-space point to device space.
func (t *Transform) CanvasToScreen(p geom.Point) geom.Point {
	return t.ScreenToCanvasMatrix().Invert().TransformPoint(p)
}

// ScaleScreenDistance converts a radius in screen pixels to canvas units so
// handles stay visually constant across zoom levels.
func (t *Transform) ScaleScreenDistance(px float64) float64 {
	return px * t.unitsPerPixel()
}

// unitsPerPixel is the canvas length covered by one device pixel. It is
// 1/Zoom when the surface is BaseWidth pixels wide.
func (t *Transform) unitsPerPixel() float64 {
	sw, _ := t.surface()
	vw, _ := t.ViewportSize()
	return vw / sw
}

// PanBy moves the view by a screen-space drag delta.
func (t *Transform) PanBy(screenDelta geom.Point) {
	t.Pan = t.Pan.Sub(screenDelta.Mul(t.unitsPerPixel()))
}

// ZoomAt sets the zoom while keeping the canvas point under the screen
// position fixed at the same normalized screen location.
func (t *Transform) ZoomAt(screen geom.Point, zoom float64) {
	anchor := t.ScreenToCanvas(screen)
	sw, sh := t.surface()
	nx, ny := screen.X/sw, screen.Y/sh

	t.Zoom = ClampZoom(zoom)
	vw, vh := t.ViewportSize()
	t.Pan = geom.Point{X: anchor.X - nx*vw, Y: anchor.Y - ny*vh}
}

// Wheel applies one wheel step at the cursor; negative deltaY zooms in.
func (t *Transform) Wheel(screen geom.Point, deltaY float64) {
	switch {
	case deltaY < 0:
		t.ZoomAt(screen, t.Zoom*WheelStep)
	case deltaY > 0:
		t.ZoomAt(screen, t.Zoom/WheelStep)
	}
}

// ZoomTo zooms around the center of the render surface.
func (t *Transform) ZoomTo(zoom float64) {
	sw, sh := t.surface()
	t.ZoomAt(geom.Point{X: sw / 2, Y: sh / 2}, zoom)
}
