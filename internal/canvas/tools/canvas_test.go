package tools

import (
	"time"

	"github.com/labelforge/labelforge/backend/internal/canvas/geometry"
	"github.com/labelforge/labelforge/backend/internal/canvas/ocr"
)

// fakeCanvas records the collaborator calls the tools make.
type fakeCanvas struct {
	active       []Control
	readOnly     bool
	scale        float64
	bounds       geometry.Rect
	words        []ocr.Word
	beforeCommit func(*Region) bool

	region        *Region
	deleted       int
	results       []*Result
	cleared       []Control
	notified      []*Result
	freezeDepth   int
	freezeCalls   int
	unfreezeCalls int
}

func newFakeCanvas() *fakeCanvas {
	return &fakeCanvas{
		active: []Control{{Name: "threat_region", Type: "rectanglelabels", Valid: true}},
		scale:  1,
		bounds: geometry.Rect{X: 0, Y: 0, Width: 1000, Height: 1000},
	}
}

func (c *fakeCanvas) ActiveStates() []Control { return c.active }

func (c *fakeCanvas) CreateDrawingRegion(region *Region) { c.region = region }

func (c *fakeCanvas) DeleteDrawingRegion() {
	c.region = nil
	c.deleted++
}

func (c *fakeCanvas) CreateResult(res *Result) { c.results = append(c.results, res) }

func (c *fakeCanvas) BeforeCommit(region *Region) bool {
	if c.beforeCommit != nil {
		return c.beforeCommit(region)
	}
	return true
}

func (c *fakeCanvas) ClearSelection(control Control) { c.cleared = append(c.cleared, control) }

func (c *fakeCanvas) NotifyDrawingFinished(res *Result) { c.notified = append(c.notified, res) }

func (c *fakeCanvas) FreezeHistory() {
	c.freezeDepth++
	c.freezeCalls++
}

func (c *fakeCanvas) UnfreezeHistory() {
	c.freezeDepth--
	c.unfreezeCalls++
}

func (c *fakeCanvas) StageScale() float64 { return c.scale }

func (c *fakeCanvas) InBounds(p geometry.Point) bool { return c.bounds.Contains(p) }

func (c *fakeCanvas) ReadOnly() bool { return c.readOnly }

func (c *fakeCanvas) OCRWords() []ocr.Word { return c.words }

// event helpers

var testStart = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func at(ms int) time.Time { return testStart.Add(time.Duration(ms) * time.Millisecond) }

func down(x, y float64, ms int) MouseEvent {
	return MouseEvent{Kind: MouseDown, Pos: geometry.Point{X: x, Y: y}, At: at(ms)}
}

func up(x, y float64, ms int) MouseEvent {
	return MouseEvent{Kind: MouseUp, Pos: geometry.Point{X: x, Y: y}, At: at(ms)}
}

func move(x, y float64, ms int) MouseEvent {
	return MouseEvent{Kind: MouseMove, Pos: geometry.Point{X: x, Y: y}, At: at(ms)}
}

func click(x, y float64, ms int) MouseEvent {
	return MouseEvent{Kind: Click, Pos: geometry.Point{X: x, Y: y}, At: at(ms)}
}

func dblclick(x, y float64, ms int) MouseEvent {
	return MouseEvent{Kind: DblClick, Pos: geometry.Point{X: x, Y: y}, At: at(ms)}
}
