package sweep

import (
	"fmt"
	"math"
	"strings"

	"github.com/lixenwraith/golf-sim/registry"
	"github.com/lixenwraith/golf-sim/terrain"
	"github.com/lixenwraith/golf-sim/vmath"
)

// Heuristic scores a trajectory against the target, lower is better
type Heuristic func(positions []vmath.Vec2, target terrain.Target) float64

var Heuristics = registry.New[Heuristic]("heuristic")

func init() {
	Heuristics.Register("final", FinalDistance)
	Heuristics.Register("closest", ClosestDistance)
	Heuristics.Register("finalClosest", FinalClosestDistance)
}

// FinalDistance is the distance from the resting position to the target
func FinalDistance(positions []vmath.Vec2, target terrain.Target) float64 {
	if len(positions) == 0 {
		return math.Inf(1)
	}
	return target.DistanceTo(positions[len(positions)-1])
}

// ClosestDistance is the smallest distance to the target anywhere along the trajectory
func ClosestDistance(positions []vmath.Vec2, target terrain.Target) float64 {
	best := math.Inf(1)
	for _, p := range positions {
		best = min(best, target.DistanceTo(p))
	}
	return best
}

// FinalClosestDistance rewards shots that both pass near and stop near the target
func FinalClosestDistance(positions []vmath.Vec2, target terrain.Target) float64 {
	return FinalDistance(positions, target) + ClosestDistance(positions, target)
}

func lookupHeuristic(name string) (Heuristic, error) {
	h, ok := Heuristics.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownHeuristic, name, strings.Join(Heuristics.Names(), ", "))
	}
	return h, nil
}
