// Package geometry provides the rectangle and point primitives used by the
// canvas tools and the OCR snap resolver. Coordinates are normalized to the
// 0–1 range unless a caller states otherwise.
package geometry

import "math"

// Point is a 2D point.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance between two points.
func (p Point) Distance(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// Rect is an axis-aligned rectangle defined by its top-left corner.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the rectangle's center point.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Area returns the rectangle's area.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// Contains reports whether the point lies inside the rectangle, edges
// included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Intersect returns the overlapping rectangle and whether the two
// rectangles overlap at all.
func (r Rect) Intersect(o Rect) (Rect, bool) {
	x1 := math.Max(r.X, o.X)
	y1 := math.Max(r.Y, o.Y)
	x2 := math.Min(r.Right(), o.Right())
	y2 := math.Min(r.Bottom(), o.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return Rect{}, false
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}, true
}

// IntersectionPercent returns the fraction of r covered by o, in 0–1.
// A degenerate r yields 0.
func (r Rect) IntersectionPercent(o Rect) float64 {
	area := r.Area()
	if area <= 0 {
		return 0
	}
	inter, ok := r.Intersect(o)
	if !ok {
		return 0
	}
	return inter.Area() / area
}

// DistanceToPoint returns the Euclidean distance from the point to the
// nearest edge of the rectangle, zero if the point is inside.
func (r Rect) DistanceToPoint(p Point) float64 {
	dx := math.Max(math.Max(r.X-p.X, 0), p.X-r.Right())
	dy := math.Max(math.Max(r.Y-p.Y, 0), p.Y-r.Bottom())
	return math.Hypot(dx, dy)
}

// DistanceTo returns the gap distance between two rectangles, zero when
// they overlap or touch.
func (r Rect) DistanceTo(o Rect) float64 {
	dx := math.Max(math.Max(o.X-r.Right(), 0), r.X-o.Right())
	dy := math.Max(math.Max(o.Y-r.Bottom(), 0), r.Y-o.Bottom())
	return math.Hypot(dx, dy)
}

// Union returns the smallest rectangle covering both r and o.
func (r Rect) Union(o Rect) Rect {
	x1 := math.Min(r.X, o.X)
	y1 := math.Min(r.Y, o.Y)
	x2 := math.Max(r.Right(), o.Right())
	y2 := math.Max(r.Bottom(), o.Bottom())
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// BoundingBox returns the tightest rectangle spanning all given rects.
// The zero Rect is returned for an empty input.
func BoundingBox(rects []Rect) Rect {
	if len(rects) == 0 {
		return Rect{}
	}
	out := rects[0]
	for _, r := range rects[1:] {
		out = out.Union(r)
	}
	return out
}
