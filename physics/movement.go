package physics

import "github.com/lixenwraith/golf-sim/vmath"

// CapSpeed limits the velocity magnitude to maxSpeed
// Returns true if velocity was clamped
func CapSpeed(v vmath.Vec2, maxSpeed float64) (vmath.Vec2, bool) {
	if v.LengthSq() <= maxSpeed*maxSpeed {
		return v, false
	}
	return v.ClampLength(maxSpeed), true
}
