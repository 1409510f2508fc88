package obstacle

import (
	"math"

	"github.com/lixenwraith/golf-sim/vmath"
)

// Tree is a circular obstacle
type Tree struct {
	id         ID
	circle     vmath.Circle
	bounciness float64
}

func newTree(id ID, center vmath.Vec2, radius, bounciness float64) *Tree {
	return &Tree{
		id:         id,
		circle:     vmath.Circle{Center: center, Radius: radius},
		bounciness: bounciness,
	}
}

func (t *Tree) ID() ID                          { return t.id }
func (t *Tree) Kind() Kind                      { return KindTree }
func (t *Tree) Bounciness() float64             { return t.bounciness }
func (t *Tree) Shape() vmath.Shape              { return t.circle }
func (t *Tree) Center() vmath.Vec2              { return t.circle.Center }
func (t *Tree) Radius() float64                 { return t.circle.Radius }
func (t *Tree) ContainsPoint(p vmath.Vec2) bool { return t.circle.ContainsPoint(p) }

func (t *Tree) OverlapsBall(center vmath.Vec2, radius float64) bool {
	return t.circle.OverlapsCircle(center, radius)
}

// CollisionData intersects the travelled segment with the tree circle inflated by the ball radius
// The reported position is the ball center at first contact, so BallRadius is zero
func (t *Tree) CollisionData(current, previous vmath.Vec2, ballRadius float64) (CollisionData, bool) {
	d := current.Sub(previous)
	a := d.LengthSq()
	if a == 0 {
		return CollisionData{}, false
	}

	r := t.circle.Radius + ballRadius
	f := previous.Sub(t.circle.Center)
	c := f.LengthSq() - r*r
	// Already inside, leaving is not a collision
	if c < 0 {
		return CollisionData{}, false
	}

	b := 2 * f.Dot(d)
	disc := b*b - 4*a*c
	if disc < 0 {
		return CollisionData{}, false
	}

	t1 := (-b - math.Sqrt(disc)) / (2 * a)
	if t1 < 0 || t1 > 1 {
		return CollisionData{}, false
	}

	p := previous.Add(d.Scale(t1))
	return CollisionData{
		Normal:     p.Sub(t.circle.Center),
		Position:   p,
		Previous:   previous,
		Bounciness: t.bounciness,
		Obstacle:   t.id,
	}, true
}
