package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Event tones
const (
	BounceToneDuration = 50 * time.Millisecond
	StopToneDuration   = 120 * time.Millisecond

	// BounceToneBase is the pitch for a bounciness 1 obstacle, scaled linearly by bounciness
	BounceToneBase = 880.0
	BorderTone     = 440.0
	StopTone       = 660.0
	WaterTone      = 220.0
	HoleTone       = 1320.0

	// MinSoundGap between consecutive tones
	MinSoundGap = 40 * time.Millisecond
)
