package tools

import (
	"time"

	"github.com/labelforge/labelforge/backend/internal/canvas/geometry"
)

// twoPointMode is the gesture mode of a two-point tool.
type twoPointMode int

const (
	modeDefault twoPointMode = iota
	modeDrag
	modeTwoClicks
)

// TwoPointTool draws rectangle-like regions from two defining points,
// either by drag or by two separate clicks. A double click synthesizes a
// default-sized region at the click point.
type TwoPointTool struct {
	toolBase
	mode       twoPointMode
	startPoint *geometry.Point

	lastClickAt  time.Time
	lastClickPos geometry.Point
	hasLastClick bool

	// suppressClick swallows the click the browser fires after a drag's
	// mouseup so the finished drag is not reinterpreted as a first click.
	suppressClick bool
}

// NewTwoPointTool creates a two-point tool bound to the canvas.
func NewTwoPointTool(canvas Canvas) *TwoPointTool {
	return &TwoPointTool{toolBase: toolBase{canvas: canvas}}
}

// HandleEvent feeds one raw pointer event through the gesture state
// machine.
func (t *TwoPointTool) HandleEvent(ev MouseEvent) {
	if ignored(ev) {
		return
	}

	switch ev.Kind {
	case MouseDown:
		t.handleMouseDown(ev)
	case MouseMove:
		t.handleMouseMove(ev)
	case MouseUp:
		t.handleMouseUp(ev)
	case Click:
		t.handleClick(ev)
	case DblClick:
		t.handleDblClick(ev)
	}
}

func (t *TwoPointTool) handleMouseDown(ev MouseEvent) {
	if t.mode == modeTwoClicks {
		// Second interaction of two-clicks mode arrives as a click.
		return
	}
	if !t.canStart(ev.Pos) {
		return
	}
	// Tentative: becomes a drag only if the pointer moves past the
	// threshold before release.
	p := ev.Pos
	t.startPoint = &p
}

func (t *TwoPointTool) handleMouseMove(ev MouseEvent) {
	switch t.mode {
	case modeDefault:
		if t.startPoint == nil {
			return
		}
		// Below the threshold no region exists yet; jitter never creates
		// degenerate regions.
		if t.startPoint.Distance(ev.Pos) <= t.minSize() {
			return
		}
		t.mode = modeDrag
		t.beginRegion(&Region{Start: *t.startPoint})
		t.stretchTo(ev.Pos)
	case modeDrag, modeTwoClicks:
		t.stretchTo(ev.Pos)
	}
}

func (t *TwoPointTool) handleMouseUp(ev MouseEvent) {
	if t.mode == modeDrag {
		t.stretchTo(ev.Pos)
		t.finish()
		t.suppressClick = true
		return
	}
	// A stationary press releases as a click; the click event carries the
	// position.
}

func (t *TwoPointTool) handleClick(ev MouseEvent) {
	if t.suppressClick {
		t.suppressClick = false
		return
	}
	if t.promoteToDblClick(ev) {
		return
	}
	t.lastClickAt = ev.At
	t.lastClickPos = ev.Pos
	t.hasLastClick = true

	switch t.mode {
	case modeTwoClicks:
		// Second click: finish, ignoring jitter-range clicks that would
		// produce a degenerate region.
		if t.region != nil && t.region.Start.Distance(ev.Pos) <= t.minSize() {
			return
		}
		t.stretchTo(ev.Pos)
		t.finish()
	case modeDefault:
		// First click: starts the region only when it lands where the
		// press was recorded.
		if t.startPoint != nil && t.startPoint.Distance(ev.Pos) > t.minSize() {
			t.startPoint = nil
			return
		}
		t.startPoint = nil
		if !t.canStart(ev.Pos) {
			return
		}
		t.mode = modeTwoClicks
		t.beginRegion(&Region{Start: ev.Pos})
	}
}

// promoteToDblClick replays the browser double-click emulation: a click is
// promoted only when the previous click happened within the time window
// and the position threshold. The intermediate region begun by the first
// click is dropped so the pair acts as one double click, not two clicks.
func (t *TwoPointTool) promoteToDblClick(ev MouseEvent) bool {
	if !t.hasLastClick {
		return false
	}
	if ev.At.Sub(t.lastClickAt) > doubleClickWindow {
		return false
	}
	if t.lastClickPos.Distance(ev.Pos) > t.minSize() {
		return false
	}
	t.hasLastClick = false
	t.handleDblClick(ev)
	return true
}

// handleDblClick synthesizes a default-sized region at the click point: an
// explicit shortcut for "default-sized shape here".
func (t *TwoPointTool) handleDblClick(ev MouseEvent) {
	if t.region != nil {
		t.reset()
	}
	t.startPoint = nil
	if !t.canStart(ev.Pos) {
		return
	}
	size := t.defaultSize()
	t.beginRegion(&Region{
		Start:  geometry.Point{X: ev.Pos.X - size/2, Y: ev.Pos.Y - size/2},
		Width:  size,
		Height: size,
	})
	t.finish()
}

func (t *TwoPointTool) stretchTo(p geometry.Point) {
	if t.region == nil {
		return
	}
	t.region.Width = p.X - t.region.Start.X
	t.region.Height = p.Y - t.region.Start.Y
}

func (t *TwoPointTool) finish() {
	t.commit()
	t.mode = modeDefault
	t.startPoint = nil
}

// reset drops the in-progress region without the guard/selection side
// effects of a discard; used when a promoted double click replaces the
// region begun by its first click.
func (t *TwoPointTool) reset() {
	t.canvas.DeleteDrawingRegion()
	t.region = nil
	t.canvas.UnfreezeHistory()
	t.mode = modeDefault
}
