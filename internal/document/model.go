package document

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/VergilAI/brand-book-sub003/internal/geom"
	"github.com/VergilAI/brand-book-sub003/internal/svgpath"
)

// FormatVersion is written into every exported document.
const FormatVersion = "1.0"

// MinVertices is the smallest vertex count of a polygon shape.
const MinVertices = 3

type Document struct {
	Version  string           `json:"version"`
	Metadata Metadata         `json:"metadata"`
	Shapes   map[string]Shape `json:"shapes"`
	Settings Settings         `json:"settings"`
}

type Metadata struct {
	Name     string `json:"name"`
	Author   string `json:"author"`
	Created  string `json:"created"`
	Modified string `json:"modified"`
}

type Settings struct {
	CanvasWidth     float64 `json:"canvasWidth"`
	CanvasHeight    float64 `json:"canvasHeight"`
	BackgroundColor string  `json:"backgroundColor"`
}

// Shape is a closed polygon. FillPath and Center are derived from the
// vertex list and must be rewritten together through SetVertices.
type Shape struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	FillPath    string     `json:"fillPath"`
	Fill        string     `json:"fill"`
	Stroke      string     `json:"stroke"`
	StrokeWidth float64    `json:"strokeWidth"`
	Opacity     float64    `json:"opacity"`
	Center      geom.Point `json:"center"`
}

type Style struct {
	Fill        string  `json:"fill"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
	Opacity     float64 `json:"opacity"`
}

// DefaultStyle is applied to shapes created with the pen tool.
var DefaultStyle = Style{
	Fill:        "#e0e7ff",
	Stroke:      "#4338ca",
	StrokeWidth: 2,
	Opacity:     1,
}

// NewShape builds a shape from an ordered vertex list.
func NewShape(id, name string, vertices []geom.BezierPoint, style Style) Shape {
	s := Shape{
		ID:          id,
		Name:        name,
		Fill:        style.Fill,
		Stroke:      style.Stroke,
		StrokeWidth: style.StrokeWidth,
		Opacity:     style.Opacity,
	}
	s.SetVertices(vertices)
	return s
}

// SetVertices re-derives FillPath and Center from vertices.
func (s *Shape) SetVertices(vertices []geom.BezierPoint) {
	s.FillPath = svgpath.Encode(vertices, true)
	s.Center = geom.Centroid(geom.Positions(vertices))
}

// Vertices decodes the shape outline.
func (s Shape) Vertices() []geom.BezierPoint {
	return svgpath.Decode(s.FillPath)
}

// Style returns the paint properties of the shape.
func (s Shape) Style() Style {
	return Style{Fill: s.Fill, Stroke: s.Stroke, StrokeWidth: s.StrokeWidth, Opacity: s.Opacity}
}

// Bounds returns the bounding box of the outline, controls included.
func (s Shape) Bounds() geom.Rect {
	return svgpath.Bounds(s.FillPath)
}

// NewEmptyDocument creates an empty document with the given canvas settings.
func NewEmptyDocument(name string, settings Settings) *Document {
	now := time.Now().UTC().Format(time.RFC3339)
	return &Document{
		Version: FormatVersion,
		Metadata: Metadata{
			Name:     name,
			Created:  now,
			Modified: now,
		},
		Shapes:   map[string]Shape{},
		Settings: settings,
	}
}

// Touch bumps the modified timestamp.
func (d *Document) Touch() {
	d.Metadata.Modified = time.Now().UTC().Format(time.RFC3339)
}

// Parse decodes an exported document. Shapes whose center was omitted get it
// re-derived from their path.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	if doc.Shapes == nil {
		doc.Shapes = map[string]Shape{}
	}
	if doc.Version == "" {
		doc.Version = FormatVersion
	}
	for id, s := range doc.Shapes {
		if s.ID == "" {
			s.ID = id
		}
		if s.Center == (geom.Point{}) {
			s.Center = geom.Centroid(geom.Positions(s.Vertices()))
		}
		doc.Shapes[id] = s
	}
	return &doc, nil
}

// Marshal encodes the document in its export shape.
func (d *Document) Marshal() ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return data, nil
}
