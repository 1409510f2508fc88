package physics

import (
	"math"

	"github.com/lixenwraith/golf-sim/core"
	"github.com/lixenwraith/golf-sim/terrain"
	"github.com/lixenwraith/golf-sim/vmath"
)

// AccelerationModel computes gravity and friction acceleration from the terrain under the ball
type AccelerationModel interface {
	Name() string
	Acceleration(s core.BallState, t *terrain.Terrain, g float64) vmath.Vec2
}

// Projected treats the ball as moving on the horizontal projection of the surface
// a = -g·∇h - g·μk·v/|v|
type Projected struct{}

func (Projected) Name() string { return "projected" }

func (Projected) Acceleration(s core.BallState, t *terrain.Terrain, g float64) vmath.Vec2 {
	slope := t.Slope(s.Position)
	mu := t.KineticFrictionAt(s.Position)
	return slope.Scale(-g).Sub(s.Velocity.Normalize().Scale(g * mu))
}

// Inclined accounts for travel along the tilted surface itself
// Gravity is scaled by 1/(1+|∇h|²) and friction by the surface normal and the climb rate ∇h·v
type Inclined struct{}

func (Inclined) Name() string { return "inclined" }

func (Inclined) Acceleration(s core.BallState, t *terrain.Terrain, g float64) vmath.Vec2 {
	slope := t.Slope(s.Position)
	mu := t.KineticFrictionAt(s.Position)

	denom := 1 + slope.LengthSq()
	down := slope.Scale(-g / denom)

	climb := slope.Dot(s.Velocity)
	speed := math.Sqrt(s.Velocity.LengthSq() + climb*climb)
	if speed == 0 {
		return down
	}
	friction := s.Velocity.Scale(g * mu / math.Sqrt(denom) / speed)
	return down.Sub(friction)
}
