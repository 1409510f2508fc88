package parameter

// World physics
const (
	// Gravity is the gravitational acceleration in game units per second squared
	Gravity = 9.81

	// MaxBallSpeed caps velocity magnitude before every integration step
	MaxBallSpeed = 5.0

	// DefaultKineticFriction is the green's rolling friction when a course omits it
	DefaultKineticFriction = 0.1

	// DefaultStaticFriction is the green's holding friction when a course omits it
	DefaultStaticFriction = 0.2
)

// Ball defaults
const (
	BallRadius = 0.25
	BallMass   = 1.0
)

// Solver defaults
const (
	// DefaultStepSize is the integrator time step
	DefaultStepSize = 0.01

	// DefaultMaxSteps bounds one simulation
	DefaultMaxSteps = 200_000
	// NoStepLimit as a step ceiling lets a simulation run until it stops
	NoStepLimit = -1

	// DefaultIntegrator, DefaultStoppingCondition, DefaultCollisionSystem and DefaultAcceleration
	// name the registered strategies used when nothing is configured
	DefaultIntegrator        = "rk4"
	DefaultStoppingCondition = "smallV"
	DefaultCollisionSystem   = "bounce"
	DefaultAcceleration      = "projected"
)

// Step size comparison reference, the finest step used as ground truth
const ReferenceStepSize = 0.0005
