// Package tools implements the drawing-tool gesture state machines: raw
// pointer events in, committed regions out. Each tool instance owns its
// gesture state; at most one in-progress region exists per tool.
package tools

import (
	"github.com/labelforge/labelforge/backend/internal/canvas/geometry"
	"github.com/labelforge/labelforge/backend/internal/canvas/ocr"
)

// Control identifies the label control that will own a drawn result.
type Control struct {
	Name string
	Type string
	// Exclusive marks a mutually-exclusive state-like tag; its selection
	// is cleared when a commit guard rejects the region.
	Exclusive bool
	// Valid is false for an incorrect control/label selection, which
	// blocks starting a region.
	Valid bool
}

// Region is an in-progress drawing area. It is owned by the active tool
// until commit, when ownership transfers to the annotation store.
type Region struct {
	Start     geometry.Point
	Width     float64
	Height    float64
	Rotation  float64
	Points    []geometry.Point
	IsDrawing bool
	Control   Control
}

// Bounds returns the region's axis-aligned bounding rectangle.
func (r *Region) Bounds() geometry.Rect {
	if len(r.Points) > 0 {
		boxes := make([]geometry.Rect, len(r.Points))
		for i, p := range r.Points {
			boxes[i] = geometry.Rect{X: p.X, Y: p.Y}
		}
		return geometry.BoundingBox(boxes)
	}
	rect := geometry.Rect{X: r.Start.X, Y: r.Start.Y, Width: r.Width, Height: r.Height}
	if rect.Width < 0 {
		rect.X += rect.Width
		rect.Width = -rect.Width
	}
	if rect.Height < 0 {
		rect.Y += rect.Height
		rect.Height = -rect.Height
	}
	return rect
}

// Result is a finalized annotation result produced by the commit pipeline.
type Result struct {
	ID       string
	Bounds   geometry.Rect
	Points   []geometry.Point
	Rotation float64
	Control  Control
	// Extra carries secondary simultaneously-active controls attached to
	// the same result.
	Extra []Control
}

// Canvas is the annotation store / stage collaborator the tools draw
// against. The editor supplies the implementation; tests use a fake.
type Canvas interface {
	// ActiveStates returns the currently selected label controls in
	// order; the first is the primary control for new results.
	ActiveStates() []Control

	// CreateDrawingRegion creates the single in-progress region for the
	// active gesture.
	CreateDrawingRegion(region *Region)
	// DeleteDrawingRegion discards the in-progress region without commit.
	DeleteDrawingRegion()
	// CreateResult finalizes a region into a permanent annotation result.
	CreateResult(res *Result)

	// BeforeCommit is the guard consulted before a region is finalized;
	// returning false discards the region.
	BeforeCommit(region *Region) bool
	// ClearSelection drops the current selection of an exclusive control
	// after a guard rejection.
	ClearSelection(control Control)
	// NotifyDrawingFinished lets external listeners react to a committed
	// result, e.g. to trigger text extraction.
	NotifyDrawingFinished(res *Result)

	// FreezeHistory / UnfreezeHistory bracket a gesture so intermediate
	// mouse-move mutations stay out of undo history.
	FreezeHistory()
	UnfreezeHistory()

	StageScale() float64
	// InBounds reports whether the point lies within the canvas.
	InBounds(p geometry.Point) bool
	ReadOnly() bool

	// OCRWords exposes the document's cached word boxes for snap queries;
	// empty when the document has no OCR data.
	OCRWords() []ocr.Word
}
