package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/VergilAI/brand-book-sub003/internal/geom"
)

var (
	ErrUnknownOperation = errors.New("unknown operation type")
	ErrInvalidPayload   = errors.New("invalid operation payload")
)

// Operation is a collaborator request against the store, such as a property
// panel restyling a shape or a toolbar deleting the selection.
type Operation struct {
	Type     string          `json:"type"`
	ShapeID  string          `json:"shapeId,omitempty"`
	ShapeIDs []string        `json:"shapeIds,omitempty"`
	Additive bool            `json:"additive,omitempty"`
	Delta    *geom.Point     `json:"delta,omitempty"`
	Name     *string         `json:"name,omitempty"`
	Style    json.RawMessage `json:"style,omitempty"`
	Snap     json.RawMessage `json:"snap,omitempty"`
	Zoom     float64         `json:"zoom,omitempty"`
}

// ApplyOperation applies op. Unknown types and malformed payloads return an
// error; addressing missing shapes is a no-op.
func (s *Store) ApplyOperation(op Operation) error {
	switch op.Type {
	case "shape.select":
		return s.applySelect(op)
	case "shape.move":
		return s.applyMove(op)
	case "shape.delete":
		s.DeleteShapes(s.targets(op)...)
		return nil
	case "shape.style":
		return s.applyStyle(op)
	case "shape.rename":
		return s.applyRename(op)
	case "selection.clear":
		s.ClearSelection()
		return nil
	case "snap.settings":
		return s.applySnapSettings(op)
	case "view.zoom":
		return s.applyZoom(op)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOperation, op.Type)
	}
}

// targets returns the ids an operation addresses, falling back to the
// selection when none are given.
func (s *Store) targets(op Operation) []string {
	ids := op.ShapeIDs
	if op.ShapeID != "" {
		ids = append([]string{op.ShapeID}, ids...)
	}
	if len(ids) == 0 {
		return s.SelectedIDs()
	}
	return ids
}

func (s *Store) applySelect(op Operation) error {
	ids := op.ShapeIDs
	if op.ShapeID != "" {
		ids = append([]string{op.ShapeID}, ids...)
	}
	if len(ids) == 0 {
		return fmt.Errorf("%w: shape.select needs shapeId or shapeIds", ErrInvalidPayload)
	}
	if !op.Additive {
		s.Select(ids...)
		return nil
	}
	for _, id := range ids {
		s.ToggleSelection(id)
	}
	return nil
}

func (s *Store) applyMove(op Operation) error {
	if op.Delta == nil {
		return fmt.Errorf("%w: shape.move needs delta", ErrInvalidPayload)
	}
	s.MoveShapes(s.targets(op), *op.Delta)
	return nil
}

func (s *Store) applyStyle(op Operation) error {
	if len(op.Style) == 0 {
		return fmt.Errorf("%w: shape.style needs style", ErrInvalidPayload)
	}
	var patch StylePatch
	if err := json.Unmarshal(op.Style, &patch); err != nil {
		return fmt.Errorf("%w: style: %w", ErrInvalidPayload, err)
	}
	for _, id := range s.targets(op) {
		s.Restyle(id, patch)
	}
	return nil
}

func (s *Store) applyRename(op Operation) error {
	if op.ShapeID == "" || op.Name == nil {
		return fmt.Errorf("%w: shape.rename needs shapeId and name", ErrInvalidPayload)
	}
	s.Rename(op.ShapeID, *op.Name)
	return nil
}

// applySnapSettings merges the given fields over the current settings.
func (s *Store) applySnapSettings(op Operation) error {
	if len(op.Snap) == 0 {
		return fmt.Errorf("%w: snap.settings needs snap", ErrInvalidPayload)
	}
	settings := s.Snap.Settings
	if err := json.Unmarshal(op.Snap, &settings); err != nil {
		return fmt.Errorf("%w: snap: %w", ErrInvalidPayload, err)
	}
	if settings.Distance < 0 || settings.GridSize < 0 || settings.AngleIncrement < 0 {
		return fmt.Errorf("%w: snap tolerances must not be negative", ErrInvalidPayload)
	}
	s.Snap.Settings = settings
	return nil
}

func (s *Store) applyZoom(op Operation) error {
	if op.Zoom <= 0 {
		return fmt.Errorf("%w: view.zoom needs a positive zoom", ErrInvalidPayload)
	}
	s.View.ZoomTo(op.Zoom)
	return nil
}
