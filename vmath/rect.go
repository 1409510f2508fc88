package vmath

import "math"

// Rect is an axis-aligned rectangle, Min holds the smaller coordinates
type Rect struct {
	Min, Max Vec2
}

// NewRect builds a rectangle from any two opposite corners
func NewRect(a, b Vec2) Rect {
	return Rect{
		Min: Vec2{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: Vec2{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }
func (r Rect) Center() Vec2    { return r.Min.Add(r.Max).Scale(0.5) }

// ContainsPoint uses strict inequalities, points on an edge are outside
func (r Rect) ContainsPoint(p Vec2) bool {
	return p.X > r.Min.X && p.X < r.Max.X && p.Y > r.Min.Y && p.Y < r.Max.Y
}

// ContainsPointInclusive treats edges as inside
func (r Rect) ContainsPointInclusive(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// ClosestPoint clamps p into the rectangle
func (r Rect) ClosestPoint(p Vec2) Vec2 {
	return Vec2{X: Clamp(p.X, r.Min.X, r.Max.X), Y: Clamp(p.Y, r.Min.Y, r.Max.Y)}
}

// OverlapsCircle reports whether the circle reaches strictly into the rectangle
func (r Rect) OverlapsCircle(center Vec2, radius float64) bool {
	if r.ContainsPoint(center) {
		return true
	}
	return center.Sub(r.ClosestPoint(center)).LengthSq() < radius*radius
}

// Corners returns bottom-left, top-left, top-right, bottom-right
func (r Rect) Corners() [4]Vec2 {
	return [4]Vec2{
		r.Min,
		{X: r.Min.X, Y: r.Max.Y},
		r.Max,
		{X: r.Max.X, Y: r.Min.Y},
	}
}

// Edges returns the left, right, top, bottom sides in that order
func (r Rect) Edges() [4]Segment {
	c := r.Corners()
	return [4]Segment{
		{A: c[0], B: c[1]},
		{A: c[3], B: c[2]},
		{A: c[1], B: c[2]},
		{A: c[0], B: c[3]},
	}
}
