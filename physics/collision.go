package physics

import (
	"github.com/lixenwraith/golf-sim/core"
	"github.com/lixenwraith/golf-sim/obstacle"
	"github.com/lixenwraith/golf-sim/terrain"
	"github.com/lixenwraith/golf-sim/vmath"
)

// Resolution is the outcome of resolving one proposed step against obstacles and course bounds
type Resolution struct {
	State core.BallState
	// Contact is set when an obstacle was hit, Obstacle names it
	Contact    bool
	Obstacle   obstacle.ID
	Bounciness float64
	// Border is set when the course bounds were hit
	Border bool
}

// CollisionSystem turns a proposed next state into a physically admissible one
type CollisionSystem interface {
	Name() string
	Resolve(next, prev core.BallState, ballRadius float64, t *terrain.Terrain) Resolution
}

// StopOnTouch rejects any step that ends outside the course or touching an obstacle
// The ball is left at its previous position with zero velocity
type StopOnTouch struct{}

func (StopOnTouch) Name() string { return "stop" }

func (StopOnTouch) Resolve(next, prev core.BallState, ballRadius float64, t *terrain.Terrain) Resolution {
	stopped := core.BallState{Position: prev.Position}

	if t.IsOutOfBounds(next.Position) {
		return Resolution{State: stopped, Border: true}
	}
	for _, o := range t.Obstacles() {
		if o.OverlapsBall(next.Position, ballRadius) {
			return Resolution{State: stopped, Contact: true, Obstacle: o.ID(), Bounciness: o.Bounciness()}
		}
	}
	return Resolution{State: next}
}

// Bounce reflects the ball off the first obstacle met along the step and clips it to the course bounds
type Bounce struct{}

func (Bounce) Name() string { return "bounce" }

func (Bounce) Resolve(next, prev core.BallState, ballRadius float64, t *terrain.Terrain) Resolution {
	res := Resolution{State: next}

	if cd, ok := nearestCollision(next.Position, prev.Position, ballRadius, t.Obstacles()); ok {
		res.State = bounceOff(next, prev, cd)
		res.Contact = true
		res.Obstacle = cd.Obstacle
		res.Bounciness = cd.Bounciness
	}

	res.State, res.Border = clipToBounds(prev.Position, res.State, t.Bounds)
	return res
}

// nearestCollision queries obstacles within reach of the step and returns the contact closest to previous
func nearestCollision(current, previous vmath.Vec2, ballRadius float64, obstacles []obstacle.Obstacle) (obstacle.CollisionData, bool) {
	searchRadius := current.Distance(previous) + ballRadius

	var (
		best     obstacle.CollisionData
		bestDist float64
		found    bool
	)
	for _, o := range obstacles {
		if !o.OverlapsBall(previous, searchRadius) {
			continue
		}
		cd, ok := o.CollisionData(current, previous, ballRadius)
		if !ok {
			continue
		}
		if d := previous.Distance(cd.Position); !found || d < bestDist {
			best, bestDist, found = cd, d, true
		}
	}
	return best, found
}

// bounceOff reflects velocity about the contact normal, scales it by bounciness and places the ball
// at the contact point, backed off by the ball radius against the travel direction, plus the rest of
// the step's displacement along the reflected direction
func bounceOff(next, prev core.BallState, cd obstacle.CollisionData) core.BallState {
	v := next.Velocity.Reflect(cd.Normal).Scale(cd.Bounciness)

	n := cd.Normal.Normalize()
	base := cd.Position
	if next.Position.Sub(prev.Position).Dot(cd.Normal) < 0 {
		base = base.Add(n.Scale(cd.BallRadius))
	} else {
		base = base.Sub(n.Scale(cd.BallRadius))
	}

	remaining := next.Position.Distance(base)
	return core.BallState{
		Position: base.Add(v.WithLength(remaining)),
		Velocity: v,
	}
}
