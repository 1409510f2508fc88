package terrain

import "github.com/lixenwraith/golf-sim/vmath"

// Target is the hole the ball is aimed at
type Target struct {
	Position vmath.Vec2
	Radius   float64
}

// Contains reports whether p lies within the hole, boundary included
func (t Target) Contains(p vmath.Vec2) bool {
	return p.Distance(t.Position) <= t.Radius
}

func (t Target) DistanceTo(p vmath.Vec2) float64 {
	return p.Distance(t.Position)
}
