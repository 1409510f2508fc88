package obstacle

import "github.com/lixenwraith/golf-sim/vmath"

// edgeHit is a contact point together with the index of the edge it lies on
type edgeHit struct {
	point vmath.Vec2
	edge  int
}

// offsetPathHit sweeps a ball of radius rb from previous to current against straight edges
// The path is probed by its center line and two copies offset perpendicular to travel by rb
// Without any probe crossing, the circle of radius rb around current is tested against the edges,
// counting only contacts ahead of the ball along its travel direction
// The hit closest to previous wins
func offsetPathHit(current, previous vmath.Vec2, rb float64, edges []vmath.Segment) (edgeHit, bool) {
	travel := current.Sub(previous)
	if travel.IsZero() {
		return edgeHit{}, false
	}

	offset := travel.Perpendicular().WithLength(rb)
	probes := [3]vmath.Segment{
		vmath.Seg(previous, current),
		vmath.Seg(previous.Add(offset), current.Add(offset)),
		vmath.Seg(previous.Sub(offset), current.Sub(offset)),
	}

	var hits []edgeHit
	for i, edge := range edges {
		if edge.Degenerate() {
			continue
		}
		for _, probe := range probes {
			if p, ok := probe.Intersect(edge); ok {
				hits = append(hits, edgeHit{point: p, edge: i})
			}
		}
	}

	if len(hits) == 0 {
		for i, edge := range edges {
			if edge.Degenerate() {
				continue
			}
			for _, p := range edge.CircleIntersections(current, rb) {
				if p.Sub(current).Dot(travel) > 0 {
					hits = append(hits, edgeHit{point: p, edge: i})
				}
			}
		}
	}

	return closestHit(previous, hits)
}

func closestHit(origin vmath.Vec2, hits []edgeHit) (edgeHit, bool) {
	if len(hits) == 0 {
		return edgeHit{}, false
	}
	best := hits[0]
	bestDist := origin.Distance(best.point)
	for _, h := range hits[1:] {
		if d := origin.Distance(h.point); d < bestDist {
			best, bestDist = h, d
		}
	}
	return best, true
}

// edgeNormal returns the unit normal of a segment
func edgeNormal(s vmath.Segment) vmath.Vec2 {
	return s.B.Sub(s.A).Perpendicular().Normalize()
}
