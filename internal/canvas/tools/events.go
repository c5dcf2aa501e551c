package tools

import (
	"time"

	"github.com/labelforge/labelforge/backend/internal/canvas/geometry"
)

// EventKind is the kind of a raw pointer event.
type EventKind int

const (
	MouseDown EventKind = iota
	MouseUp
	MouseMove
	Click
	DblClick
)

// Button identifies the pressed mouse button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// MouseEvent is one raw pointer event in canvas-internal coordinates.
// Timestamps come from the event source so double-click windows are
// deterministic under test.
type MouseEvent struct {
	Kind   EventKind
	Button Button
	Shift  bool
	Pos    geometry.Point
	At     time.Time
}

// ignored filters events that never reach mode logic: right and middle
// clicks and shift-held interactions.
func ignored(ev MouseEvent) bool {
	return ev.Button != ButtonLeft || ev.Shift
}
