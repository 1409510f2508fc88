package physics

import "github.com/lixenwraith/golf-sim/core"

// StoppingCondition decides after each step whether the ball has come to rest
type StoppingCondition interface {
	Name() string
	ShouldStop(next, prev core.BallState, h float64) bool
}

// SmallVelocity stops once speed drops below the step size
type SmallVelocity struct{}

func (SmallVelocity) Name() string { return "smallV" }

func (SmallVelocity) ShouldStop(next, _ core.BallState, h float64) bool {
	return next.Velocity.Length() < h
}

// DotProduct stops when the velocity reverses against the previous step
type DotProduct struct{}

func (DotProduct) Name() string { return "dotProduct" }

func (DotProduct) ShouldStop(next, prev core.BallState, _ float64) bool {
	return next.Velocity.Dot(prev.Velocity) < 0
}

// DotProductSmallVelocity stops on either reversal or small speed
type DotProductSmallVelocity struct{}

func (DotProductSmallVelocity) Name() string { return "dotProductSmallV" }

func (DotProductSmallVelocity) ShouldStop(next, prev core.BallState, h float64) bool {
	return DotProduct{}.ShouldStop(next, prev, h) || SmallVelocity{}.ShouldStop(next, prev, h)
}
