package terrain

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/golf-sim/obstacle"
	"github.com/lixenwraith/golf-sim/parameter"
	"github.com/lixenwraith/golf-sim/vmath"
)

// Sentinel errors
var (
	ErrInvalidBounds   = errors.New("invalid terrain bounds")
	ErrInvalidFriction = errors.New("invalid friction")
	ErrUnplayable      = errors.New("terrain is not playable")
)

// Terrain is the course surface, shared read-only by concurrent simulations
// Zones and obstacles must not be changed while a simulation is running
type Terrain struct {
	Bounds          vmath.Rect
	Height          HeightFunction
	StaticFriction  float64
	KineticFriction float64
	Zones           []Zone
	Target          Target
	// Start is the ball rest position a course places the player at
	Start vmath.Vec2

	obstacles *obstacle.Registry
}

// New creates a terrain spanning two opposite corners with default green frictions and no obstacles
func New(a, b vmath.Vec2, height HeightFunction) *Terrain {
	return &Terrain{
		Bounds:          vmath.NewRect(a, b),
		Height:          height,
		StaticFriction:  parameter.DefaultStaticFriction,
		KineticFriction: parameter.DefaultKineticFriction,
		Target:          Target{Radius: parameter.TargetRadius},
		obstacles:       obstacle.NewRegistry(),
	}
}

// Registry exposes the obstacle registry for adding and removing obstacles
func (t *Terrain) Registry() *obstacle.Registry {
	return t.obstacles
}

// Obstacles returns the current obstacle snapshot in insertion order
func (t *Terrain) Obstacles() []obstacle.Obstacle {
	return t.obstacles.All()
}

func (t *Terrain) AddZone(z Zone) {
	t.Zones = append(t.Zones, z)
}

func (t *Terrain) HeightAt(p vmath.Vec2) float64 {
	return t.Height.HeightAt(p.X, p.Y)
}

// inDomain reports whether derivatives are meaningful at p
func (t *Terrain) inDomain(p vmath.Vec2) bool {
	h := t.HeightAt(p)
	return h >= -parameter.HeightDomain && h <= parameter.HeightDomain
}

// XDerivativeAt returns ∂h/∂x, zero where the height leaves the derivative domain
func (t *Terrain) XDerivativeAt(p vmath.Vec2) float64 {
	if !t.inDomain(p) {
		return 0
	}
	return t.Height.XDerivativeAt(p.X, p.Y)
}

// YDerivativeAt returns ∂h/∂y, zero where the height leaves the derivative domain
func (t *Terrain) YDerivativeAt(p vmath.Vec2) float64 {
	if !t.inDomain(p) {
		return 0
	}
	return t.Height.YDerivativeAt(p.X, p.Y)
}

// Slope returns the gradient (∂h/∂x, ∂h/∂y)
func (t *Terrain) Slope(p vmath.Vec2) vmath.Vec2 {
	if !t.inDomain(p) {
		return vmath.Vec2{}
	}
	return vmath.Vec2{
		X: t.Height.XDerivativeAt(p.X, p.Y),
		Y: t.Height.YDerivativeAt(p.X, p.Y),
	}
}

// zoneAt returns the first zone containing p
func (t *Terrain) zoneAt(p vmath.Vec2) (Zone, bool) {
	for _, z := range t.Zones {
		if z.Contains(p) {
			return z, true
		}
	}
	return Zone{}, false
}

func (t *Terrain) KineticFrictionAt(p vmath.Vec2) float64 {
	if z, ok := t.zoneAt(p); ok {
		return z.KineticFriction
	}
	return t.KineticFriction
}

func (t *Terrain) StaticFrictionAt(p vmath.Vec2) float64 {
	if z, ok := t.zoneAt(p); ok {
		return z.StaticFriction
	}
	return t.StaticFriction
}

// IsOutOfBounds reports positions outside the course, the border itself is in bounds
func (t *Terrain) IsOutOfBounds(p vmath.Vec2) bool {
	return !t.Bounds.ContainsPointInclusive(p)
}

// InWater reports a negative surface height
func (t *Terrain) InWater(p vmath.Vec2) bool {
	return t.HeightAt(p) < 0
}

// PointInObstacle reports whether any obstacle contains p
func (t *Terrain) PointInObstacle(p vmath.Vec2) bool {
	return t.obstacles.ContainsPoint(p)
}

// Validate checks the configuration once at load time
func (t *Terrain) Validate() error {
	if t.Height == nil {
		return errors.New("terrain has no height function")
	}
	if t.Bounds.Width() <= 0 || t.Bounds.Height() <= 0 {
		return fmt.Errorf("bounds %v-%v: %w", t.Bounds.Min, t.Bounds.Max, ErrInvalidBounds)
	}
	if err := validateFriction(t.StaticFriction, t.KineticFriction); err != nil {
		return fmt.Errorf("green: %w", err)
	}
	for _, z := range t.Zones {
		if err := z.validate(); err != nil {
			return err
		}
	}
	if t.Target.Radius < 0 {
		return fmt.Errorf("target radius %g: %w", t.Target.Radius, ErrInvalidBounds)
	}
	if t.IsOutOfBounds(t.Target.Position) {
		return fmt.Errorf("target %v outside course: %w", t.Target.Position, ErrInvalidBounds)
	}
	if t.IsOutOfBounds(t.Start) {
		return fmt.Errorf("start %v outside course: %w", t.Start, ErrInvalidBounds)
	}
	return nil
}

// CheckPlayable samples a samples×samples grid over the bounds and rejects surfaces that are too
// high or too steep for a ball to come to rest predictably
func (t *Terrain) CheckPlayable(samples int) error {
	if samples < 2 {
		samples = 2
	}
	stepX := t.Bounds.Width() / float64(samples-1)
	stepY := t.Bounds.Height() / float64(samples-1)

	for i := range samples {
		for j := range samples {
			x := t.Bounds.Min.X + float64(i)*stepX
			y := t.Bounds.Min.Y + float64(j)*stepY

			if h := t.Height.HeightAt(x, y); h > parameter.PlayableMaxHeight {
				return fmt.Errorf("height %.3f at (%g, %g): %w", h, x, y, ErrUnplayable)
			}
			dx := t.Height.XDerivativeAt(x, y)
			dy := t.Height.YDerivativeAt(x, y)
			if math.Abs(dx) > parameter.PlayableMaxFirstDerivative || math.Abs(dy) > parameter.PlayableMaxFirstDerivative {
				return fmt.Errorf("slope (%.3f, %.3f) at (%g, %g): %w", dx, dy, x, y, ErrUnplayable)
			}
			xx, yy, xy := secondDerivatives(t.Height, x, y)
			if math.Abs(xx) > parameter.PlayableMaxSecondDerivative ||
				math.Abs(yy) > parameter.PlayableMaxSecondDerivative ||
				math.Abs(xy) > parameter.PlayableMaxSecondDerivative {
				return fmt.Errorf("curvature (%.3f, %.3f, %.3f) at (%g, %g): %w", xx, yy, xy, x, y, ErrUnplayable)
			}
		}
	}
	return nil
}

func validateFriction(static, kinetic float64) error {
	if !(static >= 0) || math.IsInf(static, 0) {
		return fmt.Errorf("static %g: %w", static, ErrInvalidFriction)
	}
	if !(kinetic >= 0) || math.IsInf(kinetic, 0) {
		return fmt.Errorf("kinetic %g: %w", kinetic, ErrInvalidFriction)
	}
	return nil
}
