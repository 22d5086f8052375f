package session

import (
	"slices"

	"github.com/VergilAI/brand-book-sub003/internal/geom"
)

// Select replaces the selection with the given ids. Unknown ids are ignored.
func (s *Store) Select(ids ...string) {
	clear(s.selection)
	for _, id := range ids {
		if _, ok := s.doc.Shapes[id]; ok {
			s.selection[id] = true
		}
	}
}

// ToggleSelection flips the selection state of id.
func (s *Store) ToggleSelection(id string) bool {
	if _, ok := s.doc.Shapes[id]; !ok {
		return false
	}
	if s.selection[id] {
		delete(s.selection, id)
	} else {
		s.selection[id] = true
	}
	return true
}

func (s *Store) ClearSelection() {
	clear(s.selection)
}

func (s *Store) IsSelected(id string) bool {
	return s.selection[id]
}

// SelectedIDs returns the selection in id order.
func (s *Store) SelectedIDs() []string {
	ids := make([]string, 0, len(s.selection))
	for id := range s.selection {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// SelectionBounds returns the union of the selected shapes' bounds.
func (s *Store) SelectionBounds() (geom.Rect, bool) {
	var r geom.Rect
	found := false
	for _, id := range s.SelectedIDs() {
		b := s.shapeBounds(id)
		if !found {
			r = b
			found = true
			continue
		}
		r = r.Union(b)
	}
	return r, found
}

// ApplyAreaSelection selects the shapes whose bounds intersect area. When
// additive, each hit shape is toggled against the existing selection;
// otherwise the hits replace it.
func (s *Store) ApplyAreaSelection(area geom.Rect, additive bool) []string {
	var hits []string
	for _, id := range s.ShapeIDs() {
		if area.Intersects(s.shapeBounds(id)) {
			hits = append(hits, id)
		}
	}
	if !additive {
		s.Select(hits...)
		return s.SelectedIDs()
	}
	for _, id := range hits {
		s.ToggleSelection(id)
	}
	return s.SelectedIDs()
}

func (s *Store) shapeBounds(id string) geom.Rect {
	if s.Edit != nil && s.Edit.ShapeID == id {
		return geom.BoundsOf(geom.Positions(s.Edit.Vertices))
	}
	return s.doc.Shapes[id].Bounds()
}
