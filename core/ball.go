package core

import (
	"fmt"

	"github.com/lixenwraith/golf-sim/parameter"
	"github.com/lixenwraith/golf-sim/vmath"
)

// BallState is the kinematic state advanced by integrators, always passed by value
type BallState struct {
	Position vmath.Vec2
	Velocity vmath.Vec2
}

// Stopped reports the terminal state, velocity exactly zero
func (s BallState) Stopped() bool {
	return s.Velocity.IsZero()
}

func (s BallState) String() string {
	return fmt.Sprintf("pos=%v vel=%v", s.Position, s.Velocity)
}

// Ball is the simulated body, Mass only scales externally applied forces
type Ball struct {
	State  BallState
	Radius float64
	Mass   float64
}

// NewBall creates a resting ball at pos with default radius and mass
func NewBall(pos vmath.Vec2) Ball {
	return Ball{
		State:  BallState{Position: pos},
		Radius: parameter.BallRadius,
		Mass:   parameter.BallMass,
	}
}

// Copy returns an independent ball, Ball holds no references so this is a value copy
func (b Ball) Copy() Ball {
	return b
}

// AddForce applies an instantaneous force as a velocity change of f/mass
func (b *Ball) AddForce(f vmath.Vec2) {
	if b.Mass <= 0 {
		return
	}
	b.State.Velocity = b.State.Velocity.Add(f.Scale(1 / b.Mass))
}

// Validate rejects non-positive radius or mass
func (b Ball) Validate() error {
	if b.Radius <= 0 {
		return fmt.Errorf("ball radius %g: must be positive", b.Radius)
	}
	if b.Mass <= 0 {
		return fmt.Errorf("ball mass %g: must be positive", b.Mass)
	}
	return nil
}
