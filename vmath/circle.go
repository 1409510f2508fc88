package vmath

// Circle is a disc with strict-inequality containment
type Circle struct {
	Center Vec2
	Radius float64
}

func (c Circle) ContainsPoint(p Vec2) bool {
	return p.Sub(c.Center).LengthSq() < c.Radius*c.Radius
}

func (c Circle) OverlapsCircle(center Vec2, radius float64) bool {
	r := c.Radius + radius
	return center.Sub(c.Center).LengthSq() < r*r
}
