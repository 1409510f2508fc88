package course

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/golf-sim/physics"
	"github.com/lixenwraith/golf-sim/terrain"
	"github.com/lixenwraith/golf-sim/vmath"
)

// Point is a course file coordinate
type Point struct {
	X float64 `mapstructure:"x" json:"x"`
	Y float64 `mapstructure:"y" json:"y"`
}

func (p Point) Vec() vmath.Vec2 { return vmath.V(p.X, p.Y) }

// File is the on-disk course schema, decoded by viper from TOML, YAML or JSON
type File struct {
	Name   string             `mapstructure:"name"`
	Engine physics.Strategies `mapstructure:"engine"`

	Bounds Bounds       `mapstructure:"bounds"`
	Green  Friction     `mapstructure:"green"`
	Height HeightSpec   `mapstructure:"height"`
	Ball   BallSpec     `mapstructure:"ball"`
	Target TargetSpec   `mapstructure:"target"`
	Zones  []ZoneSpec   `mapstructure:"zones"`
	Trees  []TreeSpec   `mapstructure:"trees"`
	Boxes  []BoxSpec    `mapstructure:"boxes"`
	Walls  []WallSpec   `mapstructure:"walls"`
	Shots  []Point      `mapstructure:"shots"`
	Check  PlayableSpec `mapstructure:"playable"`
}

type Bounds struct {
	Min Point `mapstructure:"min"`
	Max Point `mapstructure:"max"`
}

type Friction struct {
	Static  float64 `mapstructure:"static"`
	Kinetic float64 `mapstructure:"kinetic"`
}

// HeightSpec selects an analytic surface by Kind, unused fields are ignored
type HeightSpec struct {
	Kind string `mapstructure:"kind"`

	// flat, bump
	Height float64 `mapstructure:"height"`
	// plane: h = a·x + b·y + c
	A float64 `mapstructure:"a"`
	B float64 `mapstructure:"b"`
	C float64 `mapstructure:"c"`
	// wave: h = amplitude·sin(kx·x + ky·y) + offset
	Amplitude float64 `mapstructure:"amplitude"`
	KX        float64 `mapstructure:"kx"`
	KY        float64 `mapstructure:"ky"`
	Offset    float64 `mapstructure:"offset"`
	// bump: Gaussian hill centred on (x, y)
	X     float64 `mapstructure:"x"`
	Y     float64 `mapstructure:"y"`
	Sigma float64 `mapstructure:"sigma"`
	// sum
	Terms []HeightSpec `mapstructure:"terms"`
}

type BallSpec struct {
	Start  Point   `mapstructure:"start"`
	Radius float64 `mapstructure:"radius"`
	Mass   float64 `mapstructure:"mass"`
}

type TargetSpec struct {
	Position Point   `mapstructure:"position"`
	Radius   float64 `mapstructure:"radius"`
}

// ZoneSpec frictions are pointers so an explicit zero survives decoding
type ZoneSpec struct {
	Min     Point    `mapstructure:"min"`
	Max     Point    `mapstructure:"max"`
	Static  *float64 `mapstructure:"static"`
	Kinetic *float64 `mapstructure:"kinetic"`
}

// Obstacle bounciness of zero selects the per-kind default

type TreeSpec struct {
	Center     Point   `mapstructure:"center"`
	Radius     float64 `mapstructure:"radius"`
	Bounciness float64 `mapstructure:"bounciness"`
}

type BoxSpec struct {
	Min        Point   `mapstructure:"min"`
	Max        Point   `mapstructure:"max"`
	Bounciness float64 `mapstructure:"bounciness"`
}

type WallSpec struct {
	From       Point   `mapstructure:"from"`
	To         Point   `mapstructure:"to"`
	Thickness  float64 `mapstructure:"thickness"`
	Bounciness float64 `mapstructure:"bounciness"`
}

type PlayableSpec struct {
	Enabled bool `mapstructure:"enabled"`
	Samples int  `mapstructure:"samples"`
}

// Build converts a height spec into a height function
func (h HeightSpec) Build() (terrain.HeightFunction, error) {
	switch strings.ToLower(h.Kind) {
	case "", "flat":
		return terrain.Flat{Height: h.Height}, nil
	case "plane":
		return terrain.Plane{A: h.A, B: h.B, C: h.C}, nil
	case "wave":
		return terrain.Wave{Amplitude: h.Amplitude, KX: h.KX, KY: h.KY, Offset: h.Offset}, nil
	case "bump":
		if !(h.Sigma > 0) {
			return nil, fmt.Errorf("%w: bump sigma %g must be positive", ErrInvalidCourse, h.Sigma)
		}
		return terrain.Bump{Height: h.Height, X: h.X, Y: h.Y, Sigma: h.Sigma, Offset: h.Offset}, nil
	case "sum":
		if len(h.Terms) == 0 {
			return nil, fmt.Errorf("%w: sum height has no terms", ErrInvalidCourse)
		}
		sum := make(terrain.Sum, 0, len(h.Terms))
		for i, term := range h.Terms {
			f, err := term.Build()
			if err != nil {
				return nil, fmt.Errorf("term %d: %w", i, err)
			}
			sum = append(sum, f)
		}
		return sum, nil
	default:
		return nil, fmt.Errorf("%w: unknown height kind %q", ErrInvalidCourse, h.Kind)
	}
}
