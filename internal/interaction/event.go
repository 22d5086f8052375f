package interaction

import (
	"fmt"

	"github.com/VergilAI/brand-book-sub003/internal/geom"
)

// Kind is the type of an input event.
type Kind string

const (
	PointerDown  Kind = "pointerdown"
	PointerMove  Kind = "pointermove"
	PointerUp    Kind = "pointerup"
	PointerLeave Kind = "pointerleave"
	DoubleClick  Kind = "dblclick"
	Wheel        Kind = "wheel"
	KeyDown      Kind = "keydown"
	Resize       Kind = "resize"
)

// Button follows the DOM numbering.
type Button int

const (
	ButtonLeft   Button = 0
	ButtonMiddle Button = 1
	ButtonRight  Button = 2
)

type Modifiers struct {
	Shift bool `json:"shift,omitempty"`
	Ctrl  bool `json:"ctrl,omitempty"`
	Alt   bool `json:"alt,omitempty"`
	Meta  bool `json:"meta,omitempty"`
}

// Multi reports whether the multi-select modifier is held. Shift is taken by
// panning, so Ctrl and Meta toggle selection.
func (m Modifiers) Multi() bool {
	return m.Ctrl || m.Meta
}

// Event is one input event. Position is in device (surface) pixels; the
// machine maps it to canvas space. Width and Height carry the new surface
// size of a resize event.
type Event struct {
	Kind      Kind       `json:"kind"`
	Position  geom.Point `json:"position"`
	Button    Button     `json:"button"`
	Buttons   int        `json:"buttons,omitempty"`
	Modifiers Modifiers  `json:"modifiers"`
	Key       string     `json:"key,omitempty"`
	DeltaY    float64    `json:"deltaY,omitempty"`
	Width     float64    `json:"width,omitempty"`
	Height    float64    `json:"height,omitempty"`
}

// Tool is the active editor tool.
type Tool string

const (
	ToolSelect Tool = "select"
	ToolPen    Tool = "pen"
	ToolMove   Tool = "move"
)

// ParseTool validates a tool name.
func ParseTool(s string) (Tool, error) {
	switch t := Tool(s); t {
	case ToolSelect, ToolPen, ToolMove:
		return t, nil
	}
	return "", fmt.Errorf("unknown tool %q", s)
}
