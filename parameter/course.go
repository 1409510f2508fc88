package parameter

// Obstacle defaults
const (
	// WallThickness is the half-width of a wall and the radius of its end caps
	WallThickness = 0.05

	TreeBounciness = 1.0
	BoxBounciness  = 0.75
	WallBounciness = 0.9

	// MaxBounciness is the inclusive upper limit, values above 1 amplify speed
	MaxBounciness = 2.0
)

// Friction zone defaults (sand)
const (
	ZoneStaticFriction  = 0.4
	ZoneKineticFriction = 0.3
)

// Terrain limits
const (
	// HeightDomain clamps derivatives, outside [-HeightDomain, HeightDomain] the surface is treated as flat
	HeightDomain = 10.0

	// DerivativeStep is the central difference step for numeric height functions
	DerivativeStep = 1e-4

	// TargetRadius is the default hole radius
	TargetRadius = 0.15
)

// Playability thresholds sampled over the course bounds
const (
	PlayableMaxHeight           = 10.0
	PlayableMaxFirstDerivative  = 0.15
	PlayableMaxSecondDerivative = 0.1
	PlayableSampleGrid          = 50
)
