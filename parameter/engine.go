package parameter

import "time"

// Viewer timing
const (
	// FrameUpdateInterval is the viewer redraw interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// TrajectoryPointsPerFrame is how many trajectory samples the viewer advances per frame
	TrajectoryPointsPerFrame = 4

	// EventQueueSize is the buffered capacity of the viewer input channel
	EventQueueSize = 100
)

// Viewer aiming
const (
	// AimAngleStep is the rotation per key press in radians
	AimAngleStep = 0.05

	// AimPowerStep is the speed change per key press
	AimPowerStep = 0.1

	DefaultAimPower = 2.5
)

// Sweep defaults
const (
	// DefaultSweepWorkers bounds concurrent shot evaluations, 0 means GOMAXPROCS
	DefaultSweepWorkers = 0

	DefaultSweepAngles   = 36
	DefaultSweepSpeeds   = 5
	DefaultSweepMinSpeed = 1.0
)
