package snap

import (
	"math"
	"testing"

	"github.com/VergilAI/brand-book-sub003/internal/geom"
)

func square(id string, x, y, size float64) Target {
	verts := []geom.Point{{X: x, Y: y}, {X: x + size, Y: y}, {X: x + size, Y: y + size}, {X: x, Y: y + size}}
	return Target{ID: id, Vertices: verts, Center: geom.Centroid(verts)}
}

func only(mod func(*Settings)) Settings {
	s := Settings{Enabled: true, Distance: 10, GridSize: 10, AngleIncrement: 15}
	mod(&s)
	return s
}

func TestSnapDisabled(t *testing.T) {
	targets := []Target{square("a", 0, 0, 10)}
	raw := geom.Point{X: 1, Y: 1}

	for name, e := range map[string]Engine{
		"disabled":  {Settings: only(func(s *Settings) { s.Enabled = false; s.Vertices = true })},
		"suspended": {Settings: DefaultSettings(), Suspended: true},
	} {
		t.Run(name, func(t *testing.T) {
			res := e.Snap(targets, Request{Point: raw})
			if res.Point != raw || res.Candidate != nil || len(res.Indicators) != 0 {
				t.Errorf("Snap = %+v, want raw point and no indicators", res)
			}
		})
	}
}

func TestSnapVertexBeatsGridOnTie(t *testing.T) {
	target := Target{ID: "tri", Vertices: []geom.Point{{X: 14, Y: 0}, {X: 30, Y: 0}, {X: 30, Y: 20}}}
	target.Center = geom.Centroid(target.Vertices)
	raw := geom.Point{X: 12, Y: 0}

	e := Engine{Settings: only(func(s *Settings) { s.Vertices = true; s.Edges = true; s.Grid = true })}
	res := e.Snap([]Target{target}, Request{Point: raw})
	if res.Candidate == nil || res.Candidate.Category != CategoryVertex {
		t.Fatalf("candidate = %+v, want vertex", res.Candidate)
	}
	if res.Point != (geom.Point{X: 14, Y: 0}) {
		t.Errorf("point = %v, want (14,0)", res.Point)
	}

	// Grid off by default: the vertex is the only feature in range.
	d := DefaultSettings()
	d.Guides = false
	res = Engine{Settings: d}.Snap([]Target{target}, Request{Point: raw})
	if res.Candidate == nil || res.Candidate.Category != CategoryVertex {
		t.Errorf("default candidate = %+v, want vertex", res.Candidate)
	}
}

func TestSnapTieBreakIgnoresTargetOrder(t *testing.T) {
	// A vertex of one target and the center of another are both 3 away.
	a := Target{ID: "a", Vertices: []geom.Point{{X: 3, Y: 0}, {X: 50, Y: 50}, {X: 60, Y: 50}}}
	a.Center = geom.Point{X: 100, Y: 100}
	b := Target{ID: "b", Vertices: []geom.Point{{X: 200, Y: 200}}, Center: geom.Point{X: -3, Y: 0}}
	e := Engine{Settings: only(func(s *Settings) { s.Vertices = true; s.Centers = true })}

	for _, pool := range [][]Target{{a, b}, {b, a}} {
		res := e.Snap(pool, Request{Point: geom.Point{}})
		if res.Candidate == nil || res.Candidate.Category != CategoryVertex || res.Candidate.ShapeID != "a" {
			t.Errorf("pool %s,%s: candidate = %+v, want vertex of a", pool[0].ID, pool[1].ID, res.Candidate)
		}
	}
}

func TestSnapEdgeAndMidpoint(t *testing.T) {
	targets := []Target{square("a", 0, 0, 100)}
	e := Engine{Settings: only(func(s *Settings) { s.Edges = true; s.Midpoints = true })}

	res := e.Snap(targets, Request{Point: geom.Point{X: 30, Y: 4}})
	if res.Candidate == nil || res.Candidate.Category != CategoryEdge || res.Point != (geom.Point{X: 30, Y: 0}) {
		t.Errorf("edge snap = %+v", res)
	}

	// Directly above the midpoint the projection and midpoint tie; midpoint wins.
	res = e.Snap(targets, Request{Point: geom.Point{X: 50, Y: 4}})
	if res.Candidate == nil || res.Candidate.Category != CategoryMidpoint {
		t.Errorf("midpoint snap = %+v", res.Candidate)
	}
}

func TestSnapExclude(t *testing.T) {
	targets := []Target{square("self", 0, 0, 10)}
	raw := geom.Point{X: 1, Y: 1}
	res := Engine{Settings: DefaultSettings()}.Snap(targets, Request{Point: raw, Exclude: map[string]bool{"self": true}})
	if res.Point != raw || res.Candidate != nil {
		t.Errorf("excluded target attracted the point: %+v", res)
	}
}

func TestSnapGrid(t *testing.T) {
	e := Engine{Settings: only(func(s *Settings) { s.Grid = true })}
	res := e.Snap(nil, Request{Point: geom.Point{X: 18, Y: 4}})
	if res.Point != (geom.Point{X: 20, Y: 0}) {
		t.Errorf("grid snap = %v, want (20,0)", res.Point)
	}
	if len(res.Indicators) != 2 {
		t.Errorf("indicators = %d, want marker and connector", len(res.Indicators))
	}
}

func TestSnapAngleOverrides(t *testing.T) {
	prev := geom.Point{}
	e := Engine{Settings: only(func(s *Settings) { s.Angles = true; s.Grid = true })}

	res := e.Snap(nil, Request{Point: geom.Point{X: 100, Y: 3}, Prev: &prev})
	if res.Candidate == nil || res.Candidate.Category != CategoryAngle {
		t.Fatalf("candidate = %+v, want angle", res.Candidate)
	}
	if math.Abs(res.Point.Y) > 1e-9 || math.Abs(res.Point.X-math.Hypot(100, 3)) > 1e-9 {
		t.Errorf("angle point = %v", res.Point)
	}

	res = e.Snap(nil, Request{Point: geom.Point{X: 100, Y: 3}})
	if res.Candidate == nil || res.Candidate.Category != CategoryGrid {
		t.Errorf("without a previous anchor candidate = %+v, want grid", res.Candidate)
	}
}

func TestSnapGuides(t *testing.T) {
	targets := []Target{square("a", 0, 0, 10)}
	e := Engine{Settings: only(func(s *Settings) { s.Guides = true })}

	res := e.Snap(targets, Request{Point: geom.Point{X: 50, Y: 5.5}})
	if res.Candidate == nil || res.Candidate.Category != CategoryGuide {
		t.Fatalf("candidate = %+v, want guide", res.Candidate)
	}
	if res.Point != (geom.Point{X: 50, Y: 5}) {
		t.Errorf("point = %v, want (50,5)", res.Point)
	}

	var guides []Indicator
	for _, ind := range res.Indicators {
		if ind.Kind == IndicatorGuide {
			guides = append(guides, ind)
		}
	}
	if len(guides) != 1 {
		t.Fatalf("guides = %+v, want one horizontal guide", guides)
	}
	if guides[0].From != (geom.Point{X: 5, Y: 5}) || guides[0].To != (geom.Point{X: 50, Y: 5}) {
		t.Errorf("guide = %+v", guides[0])
	}
}

func TestSnapMarkerOnlyWhenOnTarget(t *testing.T) {
	targets := []Target{square("a", 0, 0, 10)}
	e := Engine{Settings: only(func(s *Settings) { s.Vertices = true })}
	res := e.Snap(targets, Request{Point: geom.Point{X: 10, Y: 10}})
	if len(res.Indicators) != 1 || res.Indicators[0].Kind != IndicatorMarker {
		t.Errorf("indicators = %+v, want a single marker", res.Indicators)
	}
	if res.Indicators[0].Color != Colors[CategoryVertex] {
		t.Errorf("marker color = %q", res.Indicators[0].Color)
	}
}
