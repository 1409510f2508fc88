package vmath

// Shape is the containment contract shared by obstacles and terrain zones
type Shape interface {
	ContainsPoint(p Vec2) bool
	OverlapsCircle(center Vec2, radius float64) bool
}

var (
	_ Shape = Circle{}
	_ Shape = Rect{}
	_ Shape = Segment{}
)
