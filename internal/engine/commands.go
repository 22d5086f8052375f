package engine

import (
	"encoding/json"

	"github.com/VergilAI/brand-book-sub003/internal/document"
	"github.com/VergilAI/brand-book-sub003/internal/geom"
	"github.com/VergilAI/brand-book-sub003/internal/interaction"
	"github.com/VergilAI/brand-book-sub003/internal/session"
	"github.com/VergilAI/brand-book-sub003/internal/snap"
	"github.com/VergilAI/brand-book-sub003/internal/svgpath"
)

// Chrome colors for editor overlays.
const (
	selectionColor = "#2563eb"
	handleColor    = "#ffffff"
	marqueeFill    = "rgba(37, 99, 235, 0.08)"
	previewStroke  = "#4338ca"
	gridColor      = "#e5e7eb"
)

// Overlay sizes in screen pixels.
const (
	handleRadius  = 4.0
	controlRadius = 3.0
	markerRadius  = 4.0
	overlayStroke = 1.0
)

// DrawCommand represents a single drawing operation for the frontend to execute.
// The frontend receives a list of these and executes them on a Canvas2D context.
// Geometry is in canvas space; the leading "transform" command maps it to the
// surface.
type DrawCommand struct {
	Op          string                `json:"op"`                    // "transform", "clear", "grid", "path", "line", "rect", "handle", "marker"
	ShapeID     string                `json:"shapeId,omitempty"`     // For hit correlation
	Transform   []float64             `json:"transform,omitempty"`   // [a, b, c, d, e, f] affine matrix
	Path        []svgpath.PathCommand `json:"path,omitempty"`        // Path data for "path" ops
	Rect        *geom.Rect            `json:"rect,omitempty"`        // For "rect", "clear" and "grid"
	From        *geom.Point           `json:"from,omitempty"`        // Line start or handle center
	To          *geom.Point           `json:"to,omitempty"`          // Line end
	Radius      float64               `json:"radius,omitempty"`      // Handle and marker radius, canvas units
	Spacing     float64               `json:"spacing,omitempty"`     // Grid spacing
	Fill        string                `json:"fill,omitempty"`        // Fill color
	Stroke      string                `json:"stroke,omitempty"`      // Stroke color
	StrokeWidth float64               `json:"strokeWidth,omitempty"` // Stroke width, canvas units
	Opacity     float64               `json:"opacity,omitempty"`     // Global alpha
	Dash        []float64             `json:"dash,omitempty"`        // Line dash pattern, canvas units
	Selected    bool                  `json:"selected,omitempty"`
}

// CompileDrawCommands generates a draw command buffer for the session.
// Commands are in painter's order (back to front).
func CompileDrawCommands(s *session.Store, gesture interaction.GestureState) []DrawCommand {
	if s == nil {
		return nil
	}
	v := s.View
	px := v.ScaleScreenDistance
	doc := s.Document()
	viewport := v.Viewport()

	commands := []DrawCommand{{
		Op:        "transform",
		Transform: v.ScreenToCanvasMatrix().Invert().ToSlice(),
	}}

	commands = append(commands, DrawCommand{
		Op:   "clear",
		Rect: &geom.Rect{Width: doc.Settings.CanvasWidth, Height: doc.Settings.CanvasHeight},
		Fill: doc.Settings.BackgroundColor,
	})
	if v.ShowGrid && s.Snap.Settings.GridSize > 0 {
		commands = append(commands, DrawCommand{
			Op:          "grid",
			Rect:        &viewport,
			Spacing:     s.Snap.Settings.GridSize,
			Stroke:      gridColor,
			StrokeWidth: px(overlayStroke),
		})
	}

	for _, id := range s.ShapeIDs() {
		commands = append(commands, compileShape(s, id))
	}
	for _, id := range s.SelectedIDs() {
		if s.Edit != nil && s.Edit.ShapeID == id {
			continue
		}
		sh, _ := s.Shape(id)
		b := sh.Bounds()
		commands = append(commands, DrawCommand{
			Op:          "rect",
			ShapeID:     id,
			Rect:        &b,
			Stroke:      selectionColor,
			StrokeWidth: px(overlayStroke),
			Dash:        []float64{px(4), px(4)},
		})
	}

	if s.Edit != nil {
		commands = append(commands, compileHandles(s.Edit.Vertices, s.Edit.Selected, px)...)
	}
	if s.Drawing.Active {
		commands = append(commands, DrawCommand{
			Op:          "path",
			Path:        svgpath.Build(s.Drawing.Points, false),
			Stroke:      previewStroke,
			StrokeWidth: px(document.DefaultStyle.StrokeWidth),
			Opacity:     1,
		})
		commands = append(commands, compileHandles(s.Drawing.Points, nil, px)...)
	}

	if st, ok := gesture.(interaction.AreaSelecting); ok {
		r := st.Rect()
		commands = append(commands, DrawCommand{
			Op:          "rect",
			Rect:        &r,
			Fill:        marqueeFill,
			Stroke:      selectionColor,
			StrokeWidth: px(overlayStroke),
		})
	}

	for _, ind := range s.Snap.Indicators {
		commands = append(commands, compileIndicator(ind, px))
	}
	return commands
}

func compileShape(s *session.Store, id string) DrawCommand {
	sh, _ := s.Shape(id)
	path := svgpath.Commands(sh.FillPath)
	if s.Edit != nil && s.Edit.ShapeID == id {
		path = svgpath.Build(s.Edit.Vertices, true)
	}
	return DrawCommand{
		Op:          "path",
		ShapeID:     id,
		Path:        path,
		Fill:        sh.Fill,
		Stroke:      sh.Stroke,
		StrokeWidth: sh.StrokeWidth,
		Opacity:     sh.Opacity,
		Selected:    s.IsSelected(id),
	}
}

// compileHandles draws anchor handles plus control arms for every vertex.
func compileHandles(vertices []geom.BezierPoint, selected map[int]bool, px func(float64) float64) []DrawCommand {
	var commands []DrawCommand
	for i, v := range vertices {
		anchor := v.Point
		for _, c := range []*geom.Point{v.Controls.In, v.Controls.Out} {
			if c == nil {
				continue
			}
			commands = append(commands,
				DrawCommand{Op: "line", From: &anchor, To: c, Stroke: selectionColor, StrokeWidth: px(overlayStroke)},
				DrawCommand{Op: "handle", From: c, Radius: px(controlRadius), Fill: selectionColor},
			)
		}
		fill := handleColor
		if selected[i] {
			fill = selectionColor
		}
		commands = append(commands, DrawCommand{
			Op:          "handle",
			From:        &anchor,
			Radius:      px(handleRadius),
			Fill:        fill,
			Stroke:      selectionColor,
			StrokeWidth: px(overlayStroke),
			Selected:    selected[i],
		})
	}
	return commands
}

func compileIndicator(ind snap.Indicator, px func(float64) float64) DrawCommand {
	from, to := ind.From, ind.To
	switch ind.Kind {
	case snap.IndicatorMarker:
		return DrawCommand{Op: "marker", From: &from, Radius: px(markerRadius), Fill: ind.Color}
	case snap.IndicatorConnector:
		return DrawCommand{Op: "line", From: &from, To: &to, Stroke: ind.Color, StrokeWidth: px(overlayStroke)}
	default:
		return DrawCommand{
			Op:          "line",
			From:        &from,
			To:          &to,
			Stroke:      ind.Color,
			StrokeWidth: px(overlayStroke),
			Dash:        []float64{px(3), px(3)},
		}
	}
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}

// RectToJSON serializes a Rect to JSON.
func RectToJSON(r geom.Rect) string {
	data, _ := json.Marshal(r)
	return string(data)
}
