package obstacle

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/golf-sim/parameter"
	"github.com/lixenwraith/golf-sim/vmath"
)

// Sentinel errors
var (
	ErrInvalidBounciness = errors.New("bounciness out of range (0, 2]")
	ErrInvalidGeometry   = errors.New("invalid obstacle geometry")
	ErrNotFound          = errors.New("obstacle not found")
)

// ID identifies an obstacle within one registry, 0 is reserved for synthetic obstacles
type ID uint64

// Kind tags the obstacle variant
type Kind uint8

const (
	KindTree Kind = iota
	KindBox
	KindWall
)

func (k Kind) String() string {
	switch k {
	case KindTree:
		return "tree"
	case KindBox:
		return "box"
	case KindWall:
		return "wall"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

// CollisionData describes where a moving ball first meets an obstacle
// Normal is not necessarily unit length, consumers normalize as needed
type CollisionData struct {
	Normal     vmath.Vec2
	Position   vmath.Vec2
	Previous   vmath.Vec2
	Bounciness float64
	// BallRadius is the offset applied along the normal when repositioning the ball
	// Zero when Position is already a ball-center location
	BallRadius float64
	Obstacle   ID
}

// Obstacle is a static body the ball can collide with
type Obstacle interface {
	ID() ID
	Kind() Kind
	Bounciness() float64
	Shape() vmath.Shape
	ContainsPoint(p vmath.Vec2) bool
	OverlapsBall(center vmath.Vec2, radius float64) bool
	// CollisionData reports the first contact of a ball of radius ballRadius travelling from previous to current
	CollisionData(current, previous vmath.Vec2, ballRadius float64) (CollisionData, bool)
}

func validateBounciness(b float64) error {
	if !(b > 0 && b <= parameter.MaxBounciness) {
		return fmt.Errorf("%w: %g", ErrInvalidBounciness, b)
	}
	return nil
}
