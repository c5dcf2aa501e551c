package tools

import (
	"github.com/labelforge/labelforge/backend/internal/canvas/geometry"
)

// lastEventKind is the event marker a three-point tool tracks to
// disambiguate drags from click sequences.
type lastEventKind int

const (
	evNone lastEventKind = iota
	evMouseDown
	evMouseUp
	evClick
	evDrag
	evDblClick
)

// ThreePointTool draws shapes defined by three points, e.g. rotated
// rectangles. A drag fixes the first two points in one motion; otherwise
// clicks accumulate points one at a time, finishing on the third.
type ThreePointTool struct {
	toolBase
	lastEvent lastEventKind
	downPoint *geometry.Point

	// dragJustEnded swallows the click following a drag's mouseup.
	dragJustEnded bool
}

// NewThreePointTool creates a three-point tool bound to the canvas.
func NewThreePointTool(canvas Canvas) *ThreePointTool {
	return &ThreePointTool{toolBase: toolBase{canvas: canvas}}
}

// HandleEvent feeds one raw pointer event through the gesture state
// machine.
func (t *ThreePointTool) HandleEvent(ev MouseEvent) {
	if ignored(ev) {
		return
	}

	switch ev.Kind {
	case MouseDown:
		t.lastEvent = evMouseDown
		if t.region == nil {
			if !t.canStart(ev.Pos) {
				t.lastEvent = evNone
				return
			}
			p := ev.Pos
			t.downPoint = &p
		}
	case MouseMove:
		// Drag is only entered when a mousedown is immediately followed
		// by movement, before any mouseup.
		if t.lastEvent == evMouseDown && t.downPoint != nil && t.region == nil {
			if t.downPoint.Distance(ev.Pos) <= t.minSize() {
				return
			}
			t.lastEvent = evDrag
			t.beginRegion(&Region{Points: []geometry.Point{*t.downPoint, ev.Pos}})
			return
		}
		if t.lastEvent == evDrag && t.region != nil {
			t.region.Points[len(t.region.Points)-1] = ev.Pos
		}
	case MouseUp:
		if t.lastEvent == evDrag && t.region != nil {
			// The drag fixed the first two points; the third arrives as
			// a click.
			t.region.Points[len(t.region.Points)-1] = ev.Pos
			t.dragJustEnded = true
		}
		t.downPoint = nil
		t.lastEvent = evMouseUp
	case Click:
		if t.dragJustEnded {
			t.dragJustEnded = false
			t.lastEvent = evClick
			return
		}
		t.handleClickPoint(ev.Pos)
		t.lastEvent = evClick
	case DblClick:
		t.lastEvent = evDblClick
	}
}

// handleClickPoint accumulates defining points: the first click opens the
// region, the second extends it, the third finishes.
func (t *ThreePointTool) handleClickPoint(p geometry.Point) {
	if t.region == nil {
		if !t.canStart(p) {
			return
		}
		t.beginRegion(&Region{Points: []geometry.Point{p}})
		return
	}

	t.region.Points = append(t.region.Points, p)
	if len(t.region.Points) >= 3 {
		t.commit()
	}
}
