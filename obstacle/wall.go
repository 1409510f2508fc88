package obstacle

import "github.com/lixenwraith/golf-sim/vmath"

// Wall is a thick segment with rounded end caps
type Wall struct {
	id         ID
	segment    vmath.Segment
	thickness  float64
	bounciness float64
	// caps are synthetic trees at both endpoints with radius equal to the thickness
	caps [2]*Tree
}

func newWall(id ID, a, b vmath.Vec2, thickness, bounciness float64) *Wall {
	return &Wall{
		id:         id,
		segment:    vmath.Seg(a, b),
		thickness:  thickness,
		bounciness: bounciness,
		caps: [2]*Tree{
			newTree(0, a, thickness, bounciness),
			newTree(0, b, thickness, bounciness),
		},
	}
}

func (w *Wall) ID() ID                 { return w.id }
func (w *Wall) Kind() Kind             { return KindWall }
func (w *Wall) Bounciness() float64    { return w.bounciness }
func (w *Wall) Shape() vmath.Shape     { return w.segment }
func (w *Wall) Segment() vmath.Segment { return w.segment }
func (w *Wall) Thickness() float64     { return w.thickness }
func (w *Wall) Normal() vmath.Vec2     { return edgeNormal(w.segment) }

// ContainsPoint reports points whose perpendicular foot lies on the segment within thickness
func (w *Wall) ContainsPoint(p vmath.Vec2) bool {
	d := w.segment.B.Sub(w.segment.A)
	t := p.Sub(w.segment.A).Dot(d) / d.LengthSq()
	if t < 0 || t > 1 {
		return false
	}
	return w.segment.Line().DistanceTo(p) <= w.thickness
}

func (w *Wall) OverlapsBall(center vmath.Vec2, radius float64) bool {
	return w.segment.DistanceTo(center) < radius+w.thickness
}

// CollisionData tests the end caps first, the body only when neither cap is touched
func (w *Wall) CollisionData(current, previous vmath.Vec2, ballRadius float64) (CollisionData, bool) {
	c0, ok0 := w.caps[0].CollisionData(current, previous, ballRadius)
	c1, ok1 := w.caps[1].CollisionData(current, previous, ballRadius)

	switch {
	case ok0 && ok1:
		if previous.Distance(c1.Position) < previous.Distance(c0.Position) {
			return w.own(c1), true
		}
		return w.own(c0), true
	case ok0:
		return w.own(c0), true
	case ok1:
		return w.own(c1), true
	}

	hit, ok := offsetPathHit(current, previous, ballRadius, []vmath.Segment{w.segment})
	if !ok {
		return CollisionData{}, false
	}
	return CollisionData{
		Normal:     w.Normal(),
		Position:   hit.point,
		Previous:   previous,
		Bounciness: w.bounciness,
		BallRadius: ballRadius,
		Obstacle:   w.id,
	}, true
}

// own re-attributes a cap collision to the wall
func (w *Wall) own(cd CollisionData) CollisionData {
	cd.Obstacle = w.id
	cd.Bounciness = w.bounciness
	return cd
}
