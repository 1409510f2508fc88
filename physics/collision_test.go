package physics

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/golf-sim/core"
	"github.com/lixenwraith/golf-sim/terrain"
	"github.com/lixenwraith/golf-sim/vmath"
)

const ballRadius = 0.25

var approx = cmpopts.EquateApprox(0, 1e-9)

func flatCourse(t *testing.T) *terrain.Terrain {
	t.Helper()
	ter := terrain.New(vmath.V(-100, -100), vmath.V(100, 100), terrain.Flat{})
	ter.KineticFriction = 0.1
	require.NoError(t, ter.Validate())
	return ter
}

func TestBounceElasticWall(t *testing.T) {
	ter := flatCourse(t)
	wall, err := ter.Registry().AddWall(vmath.V(2, -3), vmath.V(2, 3), 1)
	require.NoError(t, err)

	vin := vmath.V(3, 1)
	prev := core.BallState{Position: vmath.V(1.6, 0), Velocity: vin}
	next := core.BallState{Position: vmath.V(2.1, 1.0/6), Velocity: vin}

	res := Bounce{}.Resolve(next, prev, ballRadius, ter)
	require.True(t, res.Contact)
	assert.Equal(t, wall.ID(), res.Obstacle)
	assert.False(t, res.Border)

	if diff := cmp.Diff(vmath.V(-3, 1), res.State.Velocity, approx); diff != "" {
		t.Errorf("reflected velocity mismatch (-want +got):\n%s", diff)
	}
	assert.InDelta(t, vin.Length(), res.State.Velocity.Length(), 1e-12)
	assert.Less(t, res.State.Position.X, 2.0, "ball stays on the incoming side")
}

func TestBounceInelasticWall(t *testing.T) {
	ter := flatCourse(t)
	_, err := ter.Registry().AddWall(vmath.V(2, -3), vmath.V(2, 3), 0.5)
	require.NoError(t, err)

	vin := vmath.V(4, 0)
	prev := core.BallState{Position: vmath.V(1.7, 0), Velocity: vin}
	next := core.BallState{Position: vmath.V(2.2, 0), Velocity: vin}

	res := Bounce{}.Resolve(next, prev, ballRadius, ter)
	require.True(t, res.Contact)
	assert.InDelta(t, 0.5*vin.Length(), res.State.Velocity.Length(), 1e-12)
	assert.True(t, res.State.Velocity.NearlyEqual(vmath.V(-2, 0), 1e-12))
	// backed off to 1.75, then the 0.45 left of the step along the reflected direction
	assert.InDelta(t, 1.3, res.State.Position.X, 1e-9)
}

func TestBounceTreeRepositionsOutside(t *testing.T) {
	ter := flatCourse(t)
	tree, err := ter.Registry().AddTree(vmath.V(5, 0), 0.5, 1)
	require.NoError(t, err)

	prev := core.BallState{Position: vmath.V(4, 0), Velocity: vmath.V(5, 0)}
	next := core.BallState{Position: vmath.V(4.5, 0), Velocity: vmath.V(5, 0)}

	res := Bounce{}.Resolve(next, prev, ballRadius, ter)
	require.True(t, res.Contact)
	assert.True(t, res.State.Velocity.NearlyEqual(vmath.V(-5, 0), 1e-12))
	assert.InDelta(t, 4.0, res.State.Position.X, 1e-9, "contact at 4.25 plus the remaining 0.25 back")
	assert.False(t, tree.OverlapsBall(res.State.Position, ballRadius))
}

func TestBounceNearestObstacleWins(t *testing.T) {
	ter := flatCourse(t)
	near, err := ter.Registry().AddWall(vmath.V(2, -3), vmath.V(2, 3), 1)
	require.NoError(t, err)
	_, err = ter.Registry().AddWall(vmath.V(2.5, -3), vmath.V(2.5, 3), 1)
	require.NoError(t, err)

	prev := core.BallState{Position: vmath.V(1, 0), Velocity: vmath.V(5, 0)}
	next := core.BallState{Position: vmath.V(3, 0), Velocity: vmath.V(5, 0)}

	res := Bounce{}.Resolve(next, prev, ballRadius, ter)
	require.True(t, res.Contact)
	assert.Equal(t, near.ID(), res.Obstacle)
}

func TestBounceClipsToBounds(t *testing.T) {
	ter := terrain.New(vmath.V(0, 0), vmath.V(10, 10), terrain.Flat{})

	prev := core.BallState{Position: vmath.V(9.5, 5), Velocity: vmath.V(1, 1)}
	next := core.BallState{Position: vmath.V(10.5, 5.5), Velocity: vmath.V(1, 1)}

	res := Bounce{}.Resolve(next, prev, ballRadius, ter)
	assert.True(t, res.Border)
	assert.False(t, res.Contact)
	assert.True(t, res.State.Position.NearlyEqual(vmath.V(10, 5.25), 1e-12))
	assert.Equal(t, vmath.V(-1, 1), res.State.Velocity)
}

func TestBounceClipsCorner(t *testing.T) {
	ter := terrain.New(vmath.V(0, 0), vmath.V(10, 10), terrain.Flat{})

	prev := core.BallState{Position: vmath.V(9, 9), Velocity: vmath.V(1, 1)}
	next := core.BallState{Position: vmath.V(11, 12), Velocity: vmath.V(1, 1)}

	res := Bounce{}.Resolve(next, prev, ballRadius, ter)
	assert.True(t, res.Border)
	assert.False(t, ter.IsOutOfBounds(res.State.Position))
	assert.Equal(t, vmath.V(-1, -1), res.State.Velocity)
}

func TestBounceNoObstaclePassesThrough(t *testing.T) {
	ter := flatCourse(t)
	prev := core.BallState{Position: vmath.V(0, 0), Velocity: vmath.V(1, 0)}
	next := core.BallState{Position: vmath.V(0.01, 0), Velocity: vmath.V(0.99, 0)}

	res := Bounce{}.Resolve(next, prev, ballRadius, ter)
	assert.Equal(t, Resolution{State: next}, res)
}

func TestStopOnTouchInsideBox(t *testing.T) {
	ter := flatCourse(t)
	box, err := ter.Registry().AddBox(vmath.V(1, -1), vmath.V(3, 1), 0.75)
	require.NoError(t, err)

	prev := core.BallState{Position: vmath.V(0.5, 0), Velocity: vmath.V(2, 0)}
	next := core.BallState{Position: vmath.V(1.5, 0), Velocity: vmath.V(1.9, 0)}
	require.True(t, box.ContainsPoint(next.Position))

	res := StopOnTouch{}.Resolve(next, prev, ballRadius, ter)
	assert.Equal(t, core.BallState{Position: prev.Position}, res.State)
	assert.True(t, res.State.Velocity.IsZero())
	assert.True(t, res.Contact)
	assert.Equal(t, box.ID(), res.Obstacle)
}

func TestStopOnTouchOutOfBounds(t *testing.T) {
	ter := terrain.New(vmath.V(0, 0), vmath.V(10, 10), terrain.Flat{})
	prev := core.BallState{Position: vmath.V(9.9, 5), Velocity: vmath.V(1, 0)}
	next := core.BallState{Position: vmath.V(10.1, 5), Velocity: vmath.V(1, 0)}

	res := StopOnTouch{}.Resolve(next, prev, ballRadius, ter)
	assert.Equal(t, core.BallState{Position: prev.Position}, res.State)
	assert.True(t, res.Border)
}

func TestStopOnTouchPassesFreeStep(t *testing.T) {
	ter := flatCourse(t)
	prev := core.BallState{Position: vmath.V(0, 0), Velocity: vmath.V(1, 0)}
	next := core.BallState{Position: vmath.V(0.01, 0), Velocity: vmath.V(1, 0)}

	res := StopOnTouch{}.Resolve(next, prev, ballRadius, ter)
	assert.Equal(t, next, res.State)
	assert.False(t, res.Contact)
}
