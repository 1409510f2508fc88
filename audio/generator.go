package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// PluckGenerator is a sine tone with a fast attack and exponential decay, the click of a ball
// against an obstacle
type PluckGenerator struct {
	sr    beep.SampleRate
	freq  float64
	decay float64
	pos   int
}

// NewPluckGenerator creates a pluck that fades to about 5% over dur
func NewPluckGenerator(sr beep.SampleRate, freq float64, dur time.Duration) *PluckGenerator {
	return &PluckGenerator{
		sr:    sr,
		freq:  freq,
		decay: 3 / dur.Seconds(),
	}
}

func (g *PluckGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	attack := g.sr.N(2 * time.Millisecond)
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		envelope := math.Exp(-t * g.decay)
		if g.pos < attack {
			envelope *= float64(g.pos) / float64(attack)
		}
		sample := 0.3 * envelope * math.Sin(2*math.Pi*g.freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *PluckGenerator) Err() error {
	return nil
}

// SlideGenerator glides from one pitch to another, used for the ball dropping into water or the hole
type SlideGenerator struct {
	sr       beep.SampleRate
	from, to float64
	total    int
	pos      int
	phase    float64
}

func NewSlideGenerator(sr beep.SampleRate, from, to float64, dur time.Duration) *SlideGenerator {
	return &SlideGenerator{
		sr:    sr,
		from:  from,
		to:    to,
		total: max(sr.N(dur), 1),
	}
}

func (g *SlideGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		progress := math.Min(float64(g.pos)/float64(g.total), 1)
		freq := g.from + (g.to-g.from)*progress

		// phase accumulation keeps the glide click-free
		g.phase += freq / float64(g.sr)
		if g.phase >= 1 {
			g.phase -= 1
		}
		sample := 0.25 * (1 - progress) * math.Sin(2*math.Pi*g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *SlideGenerator) Err() error {
	return nil
}
