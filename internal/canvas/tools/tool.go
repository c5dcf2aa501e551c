package tools

import (
	"time"

	"github.com/google/uuid"

	"github.com/labelforge/labelforge/backend/internal/canvas/geometry"
)

// Stage-pixel thresholds, divided by the current zoom scale so the
// perceived tolerance stays constant at any zoom level.
const (
	// minSizePx is the minimum movement before a drag creates a region.
	minSizePx = 5.0
	// defaultSizePx is the edge length of a region synthesized by a
	// double click.
	defaultSizePx = 30.0
)

// doubleClickWindow is the delay within which a second click at the same
// position is promoted to a double click.
const doubleClickWindow = 300 * time.Millisecond

// toolBase carries the state shared by all tool families: the collaborator
// handle, the in-progress region, and the commit/discard pipeline.
type toolBase struct {
	canvas Canvas
	region *Region
}

// minSize returns the movement threshold in canvas coordinates for the
// current zoom.
func (t *toolBase) minSize() float64 {
	return scaled(minSizePx, t.canvas.StageScale())
}

// defaultSize returns the synthesized-region edge length for the current
// zoom.
func (t *toolBase) defaultSize() float64 {
	return scaled(defaultSizePx, t.canvas.StageScale())
}

func scaled(px, scale float64) float64 {
	if scale <= 0 {
		scale = 1
	}
	return px / scale
}

// IsDrawing reports whether a gesture is in progress.
func (t *toolBase) IsDrawing() bool {
	return t.region != nil
}

// canStart checks the preconditions for starting a region: no region in
// progress, annotation writable, a valid control selected, and the pointer
// within canvas bounds.
func (t *toolBase) canStart(p geometry.Point) bool {
	if t.region != nil {
		return false
	}
	if t.canvas.ReadOnly() {
		return false
	}
	active := t.canvas.ActiveStates()
	if len(active) == 0 || !active[0].Valid {
		return false
	}
	return t.canvas.InBounds(p)
}

// beginRegion opens a gesture: history is frozen so mouse-move mutations
// stay invisible to undo until commit or discard.
func (t *toolBase) beginRegion(region *Region) {
	region.IsDrawing = true
	if active := t.canvas.ActiveStates(); len(active) > 0 {
		region.Control = active[0]
	}
	t.canvas.FreezeHistory()
	t.canvas.CreateDrawingRegion(region)
	t.region = region
}

// commit finalizes the in-progress region. The owning control is
// re-resolved from the current selection, so a label change mid-draw is
// honored; secondary active controls attach to the same result. A guard
// rejection routes through discard instead.
func (t *toolBase) commit() *Result {
	region := t.region
	if region == nil {
		return nil
	}
	if !t.canvas.BeforeCommit(region) {
		t.discard()
		return nil
	}

	active := t.canvas.ActiveStates()
	res := &Result{
		ID:       uuid.NewString(),
		Bounds:   region.Bounds(),
		Rotation: region.Rotation,
	}
	if len(region.Points) > 0 {
		res.Points = append(res.Points, region.Points...)
	}
	if len(active) > 0 {
		res.Control = active[0]
		res.Extra = append(res.Extra, active[1:]...)
	} else {
		res.Control = region.Control
	}

	t.canvas.CreateResult(res)
	t.detach()
	t.canvas.NotifyDrawingFinished(res)
	return res
}

// discard abandons the in-progress region: the region is deleted, an
// exclusive control selection is cleared, and the tool returns to viewing
// mode. No partial state survives.
func (t *toolBase) discard() {
	if t.region == nil {
		return
	}
	if t.region.Control.Exclusive {
		t.canvas.ClearSelection(t.region.Control)
	}
	t.canvas.DeleteDrawingRegion()
	t.region = nil
	t.canvas.UnfreezeHistory()
}

// detach releases the committed region from the tool.
func (t *toolBase) detach() {
	t.region = nil
	t.canvas.DeleteDrawingRegion()
	t.canvas.UnfreezeHistory()
}
