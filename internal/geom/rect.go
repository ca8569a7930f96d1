// Package geom provides client-space rectangles shared by the layout surface
// and the caret navigation engine.
//
// Coordinates grow rightwards and downwards. Left and Top are inclusive,
// Right and Bottom exclusive. A caret rectangle is collapsed: Left == Right.
package geom

import (
	"fmt"
	"math"
)

// Rect is a rectangle in client coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// NewRect creates a rectangle from its edges.
func NewRect(left, top, right, bottom float64) Rect {
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	if r.Right <= r.Left {
		return 0
	}
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	if r.Bottom <= r.Top {
		return 0
	}
	return r.Bottom - r.Top
}

// IsZero reports whether r is the zero rectangle.
func (r Rect) IsZero() bool {
	return r == Rect{}
}

// CollapseLeft returns a zero-width rectangle on the left edge of r.
func (r Rect) CollapseLeft() Rect {
	return Rect{Left: r.Left, Top: r.Top, Right: r.Left, Bottom: r.Bottom}
}

// CollapseRight returns a zero-width rectangle on the right edge of r.
func (r Rect) CollapseRight() Rect {
	return Rect{Left: r.Right, Top: r.Top, Right: r.Right, Bottom: r.Bottom}
}

// Collapse collapses r to its left edge when toStart is true, else to its right edge.
func (r Rect) Collapse(toStart bool) Rect {
	if toStart {
		return r.CollapseLeft()
	}
	return r.CollapseRight()
}

// OverlapsY reports whether the vertical extents of r and other intersect.
func (r Rect) OverlapsY(other Rect) bool {
	return r.Top < other.Bottom && r.Bottom > other.Top
}

// Above reports whether r lies entirely above other.
func (r Rect) Above(other Rect) bool {
	return r.Bottom <= other.Top
}

// Below reports whether r lies entirely below other.
func (r Rect) Below(other Rect) bool {
	return r.Top >= other.Bottom
}

// ContainsX reports whether x lies within [Left, Right].
func (r Rect) ContainsX(x float64) bool {
	return x >= r.Left && x <= r.Right
}

// DistanceX returns the horizontal distance from x to the closest of the
// left and right edges.
func (r Rect) DistanceX(x float64) float64 {
	return math.Min(math.Abs(x-r.Left), math.Abs(x-r.Right))
}

// UnionY returns r with its vertical extent grown to cover other.
func (r Rect) UnionY(other Rect) Rect {
	r.Top = math.Min(r.Top, other.Top)
	r.Bottom = math.Max(r.Bottom, other.Bottom)
	return r
}

// Union returns the smallest rectangle containing both rectangles.
// A zero rectangle is treated as empty.
func (r Rect) Union(other Rect) Rect {
	if r.IsZero() {
		return other
	}
	if other.IsZero() {
		return r
	}
	return Rect{
		Left:   math.Min(r.Left, other.Left),
		Top:    math.Min(r.Top, other.Top),
		Right:  math.Max(r.Right, other.Right),
		Bottom: math.Max(r.Bottom, other.Bottom),
	}
}

// String returns a compact representation of the rectangle.
func (r Rect) String() string {
	return fmt.Sprintf("[%g,%g %g,%g]", r.Left, r.Top, r.Right, r.Bottom)
}
