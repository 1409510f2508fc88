package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/golf-sim/parameter"
	"github.com/lixenwraith/golf-sim/vmath"
)

func TestNewBallDefaults(t *testing.T) {
	b := NewBall(vmath.V(1, 2))
	assert.Equal(t, vmath.V(1, 2), b.State.Position)
	assert.True(t, b.State.Stopped())
	assert.Equal(t, parameter.BallRadius, b.Radius)
	assert.Equal(t, parameter.BallMass, b.Mass)
	require.NoError(t, b.Validate())
}

func TestBallAddForceScalesByMass(t *testing.T) {
	b := NewBall(vmath.Vec2{})
	b.Mass = 2
	b.AddForce(vmath.V(4, -2))
	assert.Equal(t, vmath.V(2, -1), b.State.Velocity)

	b.AddForce(vmath.V(2, 2))
	assert.Equal(t, vmath.V(3, 0), b.State.Velocity)
}

func TestBallCopyIsIndependent(t *testing.T) {
	orig := NewBall(vmath.V(0, 0))
	cp := orig.Copy()
	cp.AddForce(vmath.V(1, 0))
	cp.State.Position = vmath.V(5, 5)

	assert.True(t, orig.State.Stopped())
	assert.Equal(t, vmath.V(0, 0), orig.State.Position)
}

func TestBallValidate(t *testing.T) {
	b := NewBall(vmath.Vec2{})
	b.Radius = 0
	assert.Error(t, b.Validate())

	b = NewBall(vmath.Vec2{})
	b.Mass = -1
	assert.Error(t, b.Validate())
}
