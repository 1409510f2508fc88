package physics

import (
	"math"

	"github.com/lixenwraith/golf-sim/core"
	"github.com/lixenwraith/golf-sim/vmath"
)

// clipToBounds handles course border collision, returns true if any reflection occurred
// A crossing is clipped to where the step from previous meets the border line and the
// perpendicular velocity component is reversed, x is handled before y
func clipToBounds(previous vmath.Vec2, s core.BallState, bounds vmath.Rect) (core.BallState, bool) {
	rx := reflectBoundsX(previous, &s, bounds.Min.X, bounds.Max.X)
	ry := reflectBoundsY(previous, &s, bounds.Min.Y, bounds.Max.Y)
	return s, rx || ry
}

func reflectBoundsX(previous vmath.Vec2, s *core.BallState, minX, maxX float64) bool {
	var edge float64
	switch {
	case s.Position.X < minX:
		edge = minX
	case s.Position.X > maxX:
		edge = maxX
	default:
		return false
	}

	border := vmath.LineWithSlope(math.Inf(1), vmath.Vec2{X: edge})
	if p, ok := vmath.Seg(previous, s.Position).IntersectLine(border); ok {
		s.Position = p
	}
	s.Position.X = edge
	s.Velocity.X = -s.Velocity.X
	return true
}

func reflectBoundsY(previous vmath.Vec2, s *core.BallState, minY, maxY float64) bool {
	var edge float64
	switch {
	case s.Position.Y < minY:
		edge = minY
	case s.Position.Y > maxY:
		edge = maxY
	default:
		return false
	}

	border := vmath.LineWithSlope(0, vmath.Vec2{Y: edge})
	if p, ok := vmath.Seg(previous, s.Position).IntersectLine(border); ok {
		s.Position = p
	}
	s.Position.Y = edge
	s.Velocity.Y = -s.Velocity.Y
	return true
}
