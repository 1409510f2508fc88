package physics

import (
	"fmt"
	"math"

	"github.com/lixenwraith/golf-sim/core"
	"github.com/lixenwraith/golf-sim/vmath"
)

// AccelerationFunc evaluates the acceleration acting on a ball in the given state
type AccelerationFunc func(s core.BallState) vmath.Vec2

// Integrator advances a ball state by one time step
// Implementations are immutable values and safe to share between goroutines
type Integrator interface {
	Name() string
	StepSize() float64
	// WithStepSize returns a copy using step size h
	WithStepSize(h float64) (Integrator, error)
	// Advance returns the state one step later, s is not modified
	Advance(s core.BallState, accel AccelerationFunc) core.BallState
}

func validateStepSize(h float64) error {
	if !(h > 0) || math.IsInf(h, 0) {
		return fmt.Errorf("%w: %g", ErrInvalidStepSize, h)
	}
	return nil
}

// Euler is the explicit first order method
type Euler struct {
	h float64
}

func NewEuler(h float64) (Euler, error) {
	if err := validateStepSize(h); err != nil {
		return Euler{}, err
	}
	return Euler{h: h}, nil
}

func (e Euler) Name() string      { return "euler" }
func (e Euler) StepSize() float64 { return e.h }

func (e Euler) WithStepSize(h float64) (Integrator, error) {
	return NewEuler(h)
}

func (e Euler) Advance(s core.BallState, accel AccelerationFunc) core.BallState {
	a := accel(s)
	return core.BallState{
		Position: s.Position.Add(s.Velocity.Scale(e.h)),
		Velocity: s.Velocity.Add(a.Scale(e.h)),
	}
}

// RK2 is a two stage method sampling at 2h/3 and weighting the stages 1:3
type RK2 struct {
	h float64
}

func NewRK2(h float64) (RK2, error) {
	if err := validateStepSize(h); err != nil {
		return RK2{}, err
	}
	return RK2{h: h}, nil
}

func (r RK2) Name() string      { return "rk2" }
func (r RK2) StepSize() float64 { return r.h }

func (r RK2) WithStepSize(h float64) (Integrator, error) {
	return NewRK2(h)
}

func (r RK2) Advance(s core.BallState, accel AccelerationFunc) core.BallState {
	k1v := s.Velocity
	k1a := accel(s)

	trial := advanceBy(s, k1v, k1a, 2*r.h/3)
	k2v := trial.Velocity
	k2a := accel(trial)

	q := r.h / 4
	return core.BallState{
		Position: s.Position.Add(k1v.Add(k2v.Scale(3)).Scale(q)),
		Velocity: s.Velocity.Add(k1a.Add(k2a.Scale(3)).Scale(q)),
	}
}

// RK4 is the classic fourth order Runge-Kutta method
type RK4 struct {
	h float64
}

func NewRK4(h float64) (RK4, error) {
	if err := validateStepSize(h); err != nil {
		return RK4{}, err
	}
	return RK4{h: h}, nil
}

func (r RK4) Name() string      { return "rk4" }
func (r RK4) StepSize() float64 { return r.h }

func (r RK4) WithStepSize(h float64) (Integrator, error) {
	return NewRK4(h)
}

func (r RK4) Advance(s core.BallState, accel AccelerationFunc) core.BallState {
	half := r.h / 2

	k1v := s.Velocity
	k1a := accel(s)

	s2 := advanceBy(s, k1v, k1a, half)
	k2v, k2a := s2.Velocity, accel(s2)

	s3 := advanceBy(s, k2v, k2a, half)
	k3v, k3a := s3.Velocity, accel(s3)

	s4 := advanceBy(s, k3v, k3a, r.h)
	k4v, k4a := s4.Velocity, accel(s4)

	w := r.h / 6
	return core.BallState{
		Position: s.Position.Add(weighted(k1v, k2v, k3v, k4v).Scale(w)),
		Velocity: s.Velocity.Add(weighted(k1a, k2a, k3a, k4a).Scale(w)),
	}
}

// advanceBy moves s by velocity v and acceleration a over dt
func advanceBy(s core.BallState, v, a vmath.Vec2, dt float64) core.BallState {
	return core.BallState{
		Position: s.Position.Add(v.Scale(dt)),
		Velocity: s.Velocity.Add(a.Scale(dt)),
	}
}

// weighted returns k1 + 2·k2 + 2·k3 + k4
func weighted(k1, k2, k3, k4 vmath.Vec2) vmath.Vec2 {
	return k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4)
}
