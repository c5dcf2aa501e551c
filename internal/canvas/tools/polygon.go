package tools

import (
	"time"

	"github.com/labelforge/labelforge/backend/internal/canvas/geometry"
)

// polygonClickWindow is the delay within which a repeated click on the
// start point triggers the default-polygon shortcut.
const polygonClickWindow = 350 * time.Millisecond

// clickDedupWindow is how long a stationary mousedown/mouseup pair keeps
// suppressing the click event the browser synthesizes for it.
const clickDedupWindow = 50 * time.Millisecond

// PolygonTool builds closed shapes from accumulated vertices. One polygon
// exists at a time; a click near the start point closes it once at least
// three vertices exist.
type PolygonTool struct {
	toolBase
	downPoint    *geometry.Point
	lastVertexAt time.Time

	// dedup records a stationary mousedown/mouseup pair already processed
	// as a vertex, so the following click event is not double-processed.
	dedupPos geometry.Point
	dedupAt  time.Time
	hasDedup bool
}

// NewPolygonTool creates a polygon tool bound to the canvas.
func NewPolygonTool(canvas Canvas) *PolygonTool {
	return &PolygonTool{toolBase: toolBase{canvas: canvas}}
}

// HandleEvent feeds one raw pointer event through the gesture state
// machine.
func (t *PolygonTool) HandleEvent(ev MouseEvent) {
	if ignored(ev) {
		return
	}

	switch ev.Kind {
	case MouseDown:
		p := ev.Pos
		t.downPoint = &p
	case MouseUp:
		if t.downPoint != nil && t.downPoint.Distance(ev.Pos) <= t.minSize() {
			// Stationary pair resolves to a click now; remember it so the
			// synthesized click event is skipped.
			t.handleVertex(ev.Pos, ev.At)
			t.dedupPos = ev.Pos
			t.dedupAt = ev.At
			t.hasDedup = true
		}
		t.downPoint = nil
	case Click:
		if t.consumeDedup(ev) {
			return
		}
		t.handleVertex(ev.Pos, ev.At)
	}
}

func (t *PolygonTool) consumeDedup(ev MouseEvent) bool {
	if !t.hasDedup {
		return false
	}
	t.hasDedup = false
	return ev.At.Sub(t.dedupAt) <= clickDedupWindow &&
		t.dedupPos.Distance(ev.Pos) <= t.minSize()
}

// handleVertex starts a new polygon, adds a vertex, or closes the polygon
// when the click lands on the start point.
func (t *PolygonTool) handleVertex(p geometry.Point, at time.Time) {
	defer func() { t.lastVertexAt = at }()

	if t.region == nil {
		if !t.canStart(p) {
			return
		}
		t.beginRegion(&Region{Points: []geometry.Point{p}})
		return
	}

	start := t.region.Points[0]
	if start.Distance(p) <= t.minSize() {
		if len(t.region.Points) >= 3 {
			t.commit()
			return
		}
		// Rapid re-click on the start point: draw the default polygon
		// instead of accumulating a duplicate vertex.
		if at.Sub(t.lastVertexAt) <= polygonClickWindow {
			t.drawDefaultPolygon(start)
		}
		return
	}

	t.region.Points = append(t.region.Points, p)
}

// drawDefaultPolygon replaces the pending vertices with a fixed small
// triangle anchored at the start point and commits it.
func (t *PolygonTool) drawDefaultPolygon(start geometry.Point) {
	size := t.defaultSize()
	t.region.Points = []geometry.Point{
		start,
		{X: start.X + size, Y: start.Y},
		{X: start.X + size/2, Y: start.Y + size},
	}
	t.commit()
}
