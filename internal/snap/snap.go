// Package snap corrects a cursor position against nearby geometric features
// (vertices, edges, centers, grid, alignment guides and angle increments)
// and describes the visual indicators for the winning correction.
//
// The engine is UI-agnostic and deterministic: identical inputs always
// produce identical results, regardless of target order.
package snap

import (
	"cmp"
	"math"
	"slices"

	"github.com/VergilAI/brand-book-sub003/internal/geom"
)

// Category identifies the geometric feature a candidate snaps to.
type Category string

const (
	CategoryVertex   Category = "vertex"
	CategoryMidpoint Category = "midpoint"
	CategoryCenter   Category = "center"
	CategoryEdge     Category = "edge"
	CategoryGuide    Category = "guide"
	CategoryGrid     Category = "grid"
	CategoryAngle    Category = "angle"
)

// priority breaks distance ties; lower wins.
var priority = map[Category]int{
	CategoryVertex:   0,
	CategoryMidpoint: 1,
	CategoryCenter:   2,
	CategoryEdge:     3,
	CategoryGuide:    4,
	CategoryGrid:     5,
	CategoryAngle:    6,
}

// Colors used for indicator markers, keyed by category.
var Colors = map[Category]string{
	CategoryVertex:   "#ef4444",
	CategoryMidpoint: "#f59e0b",
	CategoryCenter:   "#8b5cf6",
	CategoryEdge:     "#3b82f6",
	CategoryGuide:    "#ec4899",
	CategoryGrid:     "#9ca3af",
	CategoryAngle:    "#10b981",
}

const (
	// AlignTolerance is the fixed distance for shared-axis alignment,
	// independent of Settings.Distance.
	AlignTolerance = 2.0

	// connectorEpsilon is the minimum raw-to-snapped distance that gets a
	// connector line.
	connectorEpsilon = 0.5
)

// Settings holds the per-category switches and tolerances.
type Settings struct {
	Enabled   bool `json:"enabled"`
	Vertices  bool `json:"vertices"`
	Edges     bool `json:"edges"`
	Midpoints bool `json:"midpoints"`
	Centers   bool `json:"centers"`
	Grid      bool `json:"grid"`
	Guides    bool `json:"guides"`
	Angles    bool `json:"angles"`

	Distance       float64 `json:"distance"`
	GridSize       float64 `json:"gridSize"`
	AngleIncrement float64 `json:"angleIncrement"` // degrees
}

// DefaultSettings enables geometric snapping with grid and angle snapping off.
func DefaultSettings() Settings {
	return Settings{
		Enabled:        true,
		Vertices:       true,
		Edges:          true,
		Midpoints:      true,
		Centers:        true,
		Guides:         true,
		Distance:       10,
		GridSize:       20,
		AngleIncrement: 15,
	}
}

// Target is one shape of the snap pool, reduced to its outline.
type Target struct {
	ID       string
	Vertices []geom.Point
	Center   geom.Point
}

// Request describes a single snap query.
type Request struct {
	Point geom.Point
	// Prev is the previous anchor while drawing; it enables angle snapping.
	Prev *geom.Point
	// Exclude lists target ids that must not attract the point.
	Exclude map[string]bool
}

// Candidate is a point tied to a geometric feature near the cursor.
type Candidate struct {
	Category Category   `json:"category"`
	Point    geom.Point `json:"point"`
	Distance float64    `json:"distance"`
	ShapeID  string     `json:"shapeId,omitempty"`
}

type IndicatorKind string

const (
	IndicatorMarker    IndicatorKind = "marker"
	IndicatorConnector IndicatorKind = "connector"
	IndicatorGuide     IndicatorKind = "guide"
)

// Indicator is a render-ready hint. Markers use From as their position.
type Indicator struct {
	Kind     IndicatorKind `json:"kind"`
	Category Category      `json:"category,omitempty"`
	Color    string        `json:"color"`
	From     geom.Point    `json:"from"`
	To       geom.Point    `json:"to"`
}

// Result is the outcome of a snap query.
type Result struct {
	Point      geom.Point  `json:"point"`
	Candidate  *Candidate  `json:"candidate,omitempty"`
	Indicators []Indicator `json:"indicators"`
}

// Engine evaluates snap requests under its settings.
type Engine struct {
	Settings Settings `json:"settings"`
	// Suspended disables snapping transiently, e.g. while a modifier is held.
	Suspended bool `json:"suspended"`
}

// Snap returns the corrected point for req against the target pool.
func (e Engine) Snap(targets []Target, req Request) Result {
	raw := req.Point
	if !e.Settings.Enabled || e.Suspended {
		return Result{Point: raw}
	}

	pool := make([]Target, 0, len(targets))
	for _, t := range targets {
		if !req.Exclude[t.ID] {
			pool = append(pool, t)
		}
	}

	var best *Candidate
	if cands := e.candidates(raw, pool); len(cands) > 0 {
		slices.SortStableFunc(cands, func(a, b Candidate) int {
			if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
				return c
			}
			return cmp.Compare(priority[a.Category], priority[b.Category])
		})
		best = &cands[0]
	}

	var angleLine *Indicator
	if c, line, ok := e.angleCandidate(raw, req.Prev, best); ok {
		best = &c
		angleLine = &line
	}

	res := Result{Point: raw}
	if best == nil {
		return res
	}
	res.Point = best.Point
	res.Candidate = best

	res.Indicators = append(res.Indicators, Indicator{
		Kind:     IndicatorMarker,
		Category: best.Category,
		Color:    Colors[best.Category],
		From:     best.Point,
		To:       best.Point,
	})
	if raw.Distance(best.Point) > connectorEpsilon {
		res.Indicators = append(res.Indicators, Indicator{
			Kind:     IndicatorConnector,
			Category: best.Category,
			Color:    Colors[best.Category],
			From:     raw,
			To:       best.Point,
		})
	}
	if angleLine != nil {
		res.Indicators = append(res.Indicators, *angleLine)
	}
	if e.Settings.Guides {
		res.Indicators = append(res.Indicators, guideLines(best.Point, pool)...)
	}
	return res
}

func (e Engine) candidates(p geom.Point, pool []Target) []Candidate {
	s := e.Settings
	var out []Candidate
	consider := func(cat Category, q geom.Point, id string) {
		if d := p.Distance(q); d <= s.Distance {
			out = append(out, Candidate{Category: cat, Point: q, Distance: d, ShapeID: id})
		}
	}

	for _, t := range pool {
		n := len(t.Vertices)
		for i, v := range t.Vertices {
			if s.Vertices {
				consider(CategoryVertex, v, t.ID)
			}
			if n < 2 {
				continue
			}
			next := t.Vertices[(i+1)%n]
			if s.Edges {
				consider(CategoryEdge, geom.ClosestPointOnSegment(p, v, next), t.ID)
			}
			if s.Midpoints {
				consider(CategoryMidpoint, geom.Midpoint(v, next), t.ID)
			}
		}
		if s.Centers {
			consider(CategoryCenter, t.Center, t.ID)
		}
	}

	if s.Grid && s.GridSize > 0 {
		g := geom.Point{
			X: math.Round(p.X/s.GridSize) * s.GridSize,
			Y: math.Round(p.Y/s.GridSize) * s.GridSize,
		}
		consider(CategoryGrid, g, "")
	}

	if s.Guides {
		if c, ok := guideCandidate(p, pool); ok {
			out = append(out, c)
		}
	}
	return out
}

// angleCandidate rounds the segment from prev to raw to the configured
// increment. It wins over base when it lies within the snap distance.
func (e Engine) angleCandidate(raw geom.Point, prev *geom.Point, base *Candidate) (Candidate, Indicator, bool) {
	s := e.Settings
	if !s.Angles || prev == nil || s.AngleIncrement <= 0 {
		return Candidate{}, Indicator{}, false
	}
	v := raw.Sub(*prev)
	length := v.Length()
	if length == 0 {
		return Candidate{}, Indicator{}, false
	}

	inc := s.AngleIncrement * math.Pi / 180
	angle := math.Round(math.Atan2(v.Y, v.X)/inc) * inc
	ap := prev.Add(geom.Point{X: math.Cos(angle), Y: math.Sin(angle)}.Mul(length))

	ref := raw
	if base != nil {
		ref = base.Point
	}
	if ap.Distance(ref) > s.Distance {
		return Candidate{}, Indicator{}, false
	}

	line := Indicator{
		Kind:     IndicatorGuide,
		Category: CategoryAngle,
		Color:    Colors[CategoryAngle],
		From:     *prev,
		To:       ap,
	}
	return Candidate{Category: CategoryAngle, Point: ap, Distance: raw.Distance(ap)}, line, true
}

// alignment is the closest shared coordinate found on one axis.
type alignment struct {
	found bool
	delta float64
	ref   geom.Point
	id    string
}

func (a *alignment) consider(delta float64, ref geom.Point, id string) {
	d := math.Abs(delta)
	if d >= AlignTolerance {
		return
	}
	if !a.found || d < math.Abs(a.delta) {
		*a = alignment{found: true, delta: delta, ref: ref, id: id}
	}
}

func alignments(p geom.Point, pool []Target) (x, y alignment) {
	for _, t := range pool {
		refs := append([]geom.Point{t.Center}, t.Vertices...)
		for _, r := range refs {
			if r.Distance(p) < 1e-9 {
				continue
			}
			x.consider(r.X-p.X, r, t.ID)
			y.consider(r.Y-p.Y, r, t.ID)
		}
	}
	return x, y
}

func guideCandidate(p geom.Point, pool []Target) (Candidate, bool) {
	ax, ay := alignments(p, pool)
	if !ax.found && !ay.found {
		return Candidate{}, false
	}
	q := p
	id := ""
	if ax.found {
		q.X += ax.delta
		id = ax.id
	}
	if ay.found {
		q.Y += ay.delta
		if id == "" {
			id = ay.id
		}
	}
	return Candidate{Category: CategoryGuide, Point: q, Distance: p.Distance(q), ShapeID: id}, true
}

// guideLines draws one line per axis on which p shares a coordinate with
// the pool, spanning from the aligned feature to p.
func guideLines(p geom.Point, pool []Target) []Indicator {
	ax, ay := alignments(p, pool)
	var out []Indicator
	if ax.found {
		x := ax.ref.X
		out = append(out, Indicator{
			Kind:     IndicatorGuide,
			Category: CategoryGuide,
			Color:    Colors[CategoryGuide],
			From:     geom.Point{X: x, Y: ax.ref.Y},
			To:       geom.Point{X: x, Y: p.Y},
		})
	}
	if ay.found {
		y := ay.ref.Y
		out = append(out, Indicator{
			Kind:     IndicatorGuide,
			Category: CategoryGuide,
			Color:    Colors[CategoryGuide],
			From:     geom.Point{X: ay.ref.X, Y: y},
			To:       geom.Point{X: p.X, Y: y},
		})
	}
	return out
}
