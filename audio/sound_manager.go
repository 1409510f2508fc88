package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/golf-sim/parameter"
	"github.com/lixenwraith/golf-sim/physics"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// SoundManager plays short tones for trajectory events through a single mixer
// All methods are safe to call before Initialize or after it failed, they do nothing
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	last        time.Time
	now         func() time.Time
}

func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
		now:   time.Now,
	}
}

// Initialize opens the speaker, failure leaves the manager silent
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup drops queued tones and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

// PlayEvent plays the tone for a trajectory event, tones closer than MinSoundGap are dropped
func (sm *SoundManager) PlayEvent(ev physics.Event) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	s, ok := toneFor(ev)
	if !ok {
		return
	}
	if !sm.admit() {
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// admit reports whether enough time passed since the last tone, caller holds mu
func (sm *SoundManager) admit() bool {
	now := sm.now()
	if !sm.last.IsZero() && now.Sub(sm.last) < parameter.MinSoundGap {
		return false
	}
	sm.last = now
	return true
}

// PlayHole plays the rising chime for a holed ball, never rate limited
func (sm *SoundManager) PlayHole() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	d := 3 * parameter.StopToneDuration
	s := beep.Take(sampleRate.N(d), NewSlideGenerator(sampleRate, parameter.StopTone, parameter.HoleTone, d))

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// toneFor maps an event to a finite streamer
func toneFor(ev physics.Event) (beep.Streamer, bool) {
	switch ev.Kind {
	case physics.EventBounce:
		freq := parameter.BounceToneBase * ev.Bounciness
		return beep.Take(sampleRate.N(parameter.BounceToneDuration),
			NewPluckGenerator(sampleRate, freq, parameter.BounceToneDuration)), true
	case physics.EventBorder, physics.EventTouch:
		return beep.Take(sampleRate.N(parameter.BounceToneDuration),
			NewPluckGenerator(sampleRate, parameter.BorderTone, parameter.BounceToneDuration)), true
	case physics.EventStop:
		sine, err := generators.SineTone(sampleRate, parameter.StopTone)
		if err != nil {
			return nil, false
		}
		quiet := &effects.Volume{Streamer: sine, Base: 2, Volume: -3}
		return beep.Take(sampleRate.N(parameter.StopToneDuration), quiet), true
	case physics.EventWater:
		d := 2 * parameter.StopToneDuration
		return beep.Take(sampleRate.N(d), NewSlideGenerator(sampleRate, parameter.WaterTone*2, parameter.WaterTone/2, d)), true
	default:
		return nil, false
	}
}
