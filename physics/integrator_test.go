package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/golf-sim/core"
	"github.com/lixenwraith/golf-sim/vmath"
)

// drag is a = -v, exact solution v(t) = v0·e^-t
func drag(s core.BallState) vmath.Vec2 { return s.Velocity.Neg() }

func constant(a vmath.Vec2) AccelerationFunc {
	return func(core.BallState) vmath.Vec2 { return a }
}

func TestIntegratorConstructorsRejectBadStep(t *testing.T) {
	for _, h := range []float64{0, -0.01, math.NaN(), math.Inf(1)} {
		_, err := NewEuler(h)
		assert.ErrorIs(t, err, ErrInvalidStepSize)
		_, err = NewRK2(h)
		assert.ErrorIs(t, err, ErrInvalidStepSize)
		_, err = NewRK4(h)
		assert.ErrorIs(t, err, ErrInvalidStepSize)
	}
}

func TestEulerStep(t *testing.T) {
	e, err := NewEuler(0.1)
	require.NoError(t, err)

	s := core.BallState{Position: vmath.V(1, 2), Velocity: vmath.V(1, 0)}
	next := e.Advance(s, drag)

	assert.True(t, next.Position.NearlyEqual(vmath.V(1.1, 2), 1e-12))
	assert.True(t, next.Velocity.NearlyEqual(vmath.V(0.9, 0), 1e-12))
	assert.Equal(t, vmath.V(1, 2), s.Position, "input state is not modified")
}

func TestRK2Weights(t *testing.T) {
	r, err := NewRK2(0.1)
	require.NoError(t, err)

	next := r.Advance(core.BallState{Velocity: vmath.V(1, 0)}, drag)

	// trial stage at 2h/3, stages weighted 1:3 over h/4
	assert.InDelta(t, 0.905, next.Velocity.X, 1e-12)
	assert.InDelta(t, 0.095, next.Position.X, 1e-12)
}

func TestRK2ExactForConstantAcceleration(t *testing.T) {
	r, err := NewRK2(0.2)
	require.NoError(t, err)

	a := vmath.V(0, -2)
	next := r.Advance(core.BallState{Velocity: vmath.V(1, 1)}, constant(a))

	assert.InDelta(t, 0.2, next.Position.X, 1e-12)
	assert.InDelta(t, 0.2-0.04, next.Position.Y, 1e-12)
	assert.InDelta(t, 0.6, next.Velocity.Y, 1e-12)
}

func TestRK4MatchesExponentialDecay(t *testing.T) {
	r, err := NewRK4(0.1)
	require.NoError(t, err)

	s := core.BallState{Velocity: vmath.V(1, 0)}
	for range 10 {
		s = r.Advance(s, drag)
	}
	assert.InDelta(t, math.Exp(-1), s.Velocity.X, 1e-6)
	assert.InDelta(t, 1-math.Exp(-1), s.Position.X, 1e-6)
}

func TestIntegratorOrderOfAccuracy(t *testing.T) {
	run := func(integ Integrator) float64 {
		s := core.BallState{Velocity: vmath.V(1, 0)}
		n := int(math.Round(1 / integ.StepSize()))
		for range n {
			s = integ.Advance(s, drag)
		}
		return math.Abs(s.Velocity.X - math.Exp(-1))
	}

	e, _ := NewEuler(0.05)
	r2, _ := NewRK2(0.05)
	r4, _ := NewRK4(0.05)
	assert.Greater(t, run(e), run(r2))
	assert.Greater(t, run(r2), run(r4))
}

func TestWithStepSizeReturnsCopy(t *testing.T) {
	orig, err := NewRK4(0.01)
	require.NoError(t, err)

	changed, err := orig.WithStepSize(0.05)
	require.NoError(t, err)
	assert.Equal(t, 0.05, changed.StepSize())
	assert.Equal(t, 0.01, orig.StepSize())
	assert.Equal(t, "rk4", changed.Name())

	_, err = orig.WithStepSize(0)
	assert.ErrorIs(t, err, ErrInvalidStepSize)
}

func TestStoppingConditions(t *testing.T) {
	prev := core.BallState{Velocity: vmath.V(1, 0)}
	tests := []struct {
		name string
		cond StoppingCondition
		next vmath.Vec2
		want bool
	}{
		{"small below step", SmallVelocity{}, vmath.V(0.005, 0), true},
		{"small above step", SmallVelocity{}, vmath.V(0.02, 0), false},
		{"small reversed but fast", SmallVelocity{}, vmath.V(-1, 0), false},
		{"dot reversed", DotProduct{}, vmath.V(-0.5, 0), true},
		{"dot perpendicular", DotProduct{}, vmath.V(0, 1), false},
		{"dot slow same direction", DotProduct{}, vmath.V(0.001, 0), false},
		{"combined slow", DotProductSmallVelocity{}, vmath.V(0.001, 0), true},
		{"combined reversed", DotProductSmallVelocity{}, vmath.V(-2, 0), true},
		{"combined moving", DotProductSmallVelocity{}, vmath.V(0.5, 0.5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cond.ShouldStop(core.BallState{Velocity: tt.next}, prev, 0.01)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCapSpeed(t *testing.T) {
	v, clamped := CapSpeed(vmath.V(30, 40), 5)
	assert.True(t, clamped)
	assert.InDelta(t, 5, v.Length(), 1e-12)
	assert.True(t, v.Normalize().NearlyEqual(vmath.V(0.6, 0.8), 1e-12))

	v, clamped = CapSpeed(vmath.V(3, 4), 5)
	assert.False(t, clamped)
	assert.Equal(t, vmath.V(3, 4), v)
}
