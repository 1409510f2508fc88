package obstacle

import "github.com/lixenwraith/golf-sim/vmath"

// Box is an axis-aligned rectangular obstacle
type Box struct {
	id         ID
	rect       vmath.Rect
	edges      [4]vmath.Segment
	bounciness float64
}

func newBox(id ID, a, b vmath.Vec2, bounciness float64) *Box {
	r := vmath.NewRect(a, b)
	return &Box{
		id:         id,
		rect:       r,
		edges:      r.Edges(),
		bounciness: bounciness,
	}
}

func (b *Box) ID() ID              { return b.id }
func (b *Box) Kind() Kind          { return KindBox }
func (b *Box) Bounciness() float64 { return b.bounciness }
func (b *Box) Shape() vmath.Shape  { return b.rect }
func (b *Box) Rect() vmath.Rect    { return b.rect }

func (b *Box) ContainsPoint(p vmath.Vec2) bool {
	return b.rect.ContainsPoint(p)
}

func (b *Box) OverlapsBall(center vmath.Vec2, radius float64) bool {
	return b.rect.OverlapsCircle(center, radius)
}

// CollisionData finds the first edge crossed by the ball, edges are tested left, right, top, bottom
// The result depends on travel direction, reversing the path reports the opposite entry edge
func (b *Box) CollisionData(current, previous vmath.Vec2, ballRadius float64) (CollisionData, bool) {
	hit, ok := offsetPathHit(current, previous, ballRadius, b.edges[:])
	if !ok {
		return CollisionData{}, false
	}
	return CollisionData{
		Normal:     edgeNormal(b.edges[hit.edge]),
		Position:   hit.point,
		Previous:   previous,
		Bounciness: b.bounciness,
		BallRadius: ballRadius,
		Obstacle:   b.id,
	}, true
}
