// Package course loads playable courses: the terrain, its obstacles, the ball and the
// simulation strategies a course was designed for
package course

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/lixenwraith/golf-sim/config"
	"github.com/lixenwraith/golf-sim/core"
	"github.com/lixenwraith/golf-sim/obstacle"
	"github.com/lixenwraith/golf-sim/parameter"
	"github.com/lixenwraith/golf-sim/physics"
	"github.com/lixenwraith/golf-sim/terrain"
	"github.com/lixenwraith/golf-sim/vmath"
)

var ErrInvalidCourse = errors.New("invalid course")

// Course is a loaded, validated course ready for simulation
type Course struct {
	Name    string
	Terrain *terrain.Terrain
	Ball    core.Ball
	// Strategies holds only what the file named, see EngineStrategies
	Strategies physics.Strategies
	// Shots are initial velocities listed in the file for batch simulation
	Shots []vmath.Vec2
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("name", "untitled")

	v.SetDefault("bounds.min.x", -50.0)
	v.SetDefault("bounds.min.y", -50.0)
	v.SetDefault("bounds.max.x", 50.0)
	v.SetDefault("bounds.max.y", 50.0)

	v.SetDefault("green.static", parameter.DefaultStaticFriction)
	v.SetDefault("green.kinetic", parameter.DefaultKineticFriction)
	v.SetDefault("height.kind", "flat")

	v.SetDefault("ball.radius", parameter.BallRadius)
	v.SetDefault("ball.mass", parameter.BallMass)

	v.SetDefault("target.position.x", 4.0)
	v.SetDefault("target.position.y", 4.0)
	v.SetDefault("target.radius", parameter.TargetRadius)

	v.SetDefault("playable.enabled", false)
	v.SetDefault("playable.samples", parameter.PlayableSampleGrid)
}

// Load reads a course file, the format follows the extension (.toml, .yaml, .yml, .json)
func Load(path string) (*Course, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading course %s: %w", path, err)
	}
	c, err := Decode(v)
	if err != nil {
		return nil, fmt.Errorf("course %s: %w", path, err)
	}
	return c, nil
}

// Parse reads a course from r in the given format ("toml", "yaml" or "json")
func Parse(r io.Reader, format string) (*Course, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType(format)
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading course: %w", err)
	}
	return Decode(v)
}

// Decode unmarshals a populated viper instance and builds the course
func Decode(v *viper.Viper) (*Course, error) {
	var f File
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("error unmarshaling course: %w", err)
	}
	return f.Build()
}

// Default returns the built-in practice course
func Default() *Course {
	c, err := Parse(strings.NewReader(defaultCourse), "yaml")
	if err != nil {
		panic(fmt.Sprintf("built-in course: %v", err))
	}
	return c
}

// Build validates the file and assembles the terrain, obstacles and ball
// Out-of-range values are rejected, never clamped
func (f File) Build() (*Course, error) {
	height, err := f.Height.Build()
	if err != nil {
		return nil, fmt.Errorf("height: %w", err)
	}

	t := terrain.New(f.Bounds.Min.Vec(), f.Bounds.Max.Vec(), height)
	t.StaticFriction = f.Green.Static
	t.KineticFriction = f.Green.Kinetic
	t.Target = terrain.Target{Position: f.Target.Position.Vec(), Radius: f.Target.Radius}
	t.Start = f.Ball.Start.Vec()

	for _, z := range f.Zones {
		zone := terrain.NewZone(z.Min.Vec(), z.Max.Vec())
		if z.Static != nil {
			zone.StaticFriction = *z.Static
		}
		if z.Kinetic != nil {
			zone.KineticFriction = *z.Kinetic
		}
		t.AddZone(zone)
	}

	if err := t.Validate(); err != nil {
		return nil, invalid(err)
	}
	if f.Check.Enabled {
		if err := t.CheckPlayable(f.Check.Samples); err != nil {
			return nil, invalid(err)
		}
	}

	if err := f.addObstacles(t.Registry()); err != nil {
		return nil, invalid(err)
	}

	ball := core.NewBall(t.Start)
	ball.Radius = f.Ball.Radius
	ball.Mass = f.Ball.Mass
	if err := ball.Validate(); err != nil {
		return nil, invalid(err)
	}
	if t.PointInObstacle(t.Start) {
		return nil, fmt.Errorf("%w: ball start %v is inside an obstacle", ErrInvalidCourse, t.Start)
	}

	if _, err := f.Engine.Config(); err != nil {
		return nil, invalid(err)
	}

	shots := make([]vmath.Vec2, len(f.Shots))
	for i, s := range f.Shots {
		shots[i] = s.Vec()
	}

	return &Course{
		Name:       f.Name,
		Terrain:    t,
		Ball:       ball,
		Strategies: f.Engine,
		Shots:      shots,
	}, nil
}

func (f File) addObstacles(reg *obstacle.Registry) error {
	for i, s := range f.Trees {
		if _, err := reg.AddTree(s.Center.Vec(), s.Radius, orDefault(s.Bounciness, parameter.TreeBounciness)); err != nil {
			return fmt.Errorf("trees[%d]: %w", i, err)
		}
	}
	for i, s := range f.Boxes {
		if _, err := reg.AddBox(s.Min.Vec(), s.Max.Vec(), orDefault(s.Bounciness, parameter.BoxBounciness)); err != nil {
			return fmt.Errorf("boxes[%d]: %w", i, err)
		}
	}
	for i, s := range f.Walls {
		thickness := orDefault(s.Thickness, parameter.WallThickness)
		if _, err := reg.AddWallWithThickness(s.From.Vec(), s.To.Vec(), thickness, orDefault(s.Bounciness, parameter.WallBounciness)); err != nil {
			return fmt.Errorf("walls[%d]: %w", i, err)
		}
	}
	return nil
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

// EngineStrategies fills the strategies the file left unset from fallback
func (c *Course) EngineStrategies(fallback physics.Strategies) physics.Strategies {
	s := c.Strategies
	if s.Integrator == "" {
		s.Integrator = fallback.Integrator
	}
	if s.StepSize == 0 {
		s.StepSize = fallback.StepSize
	}
	if s.Stopping == "" {
		s.Stopping = fallback.Stopping
	}
	if s.Collision == "" {
		s.Collision = fallback.Collision
	}
	if s.Acceleration == "" {
		s.Acceleration = fallback.Acceleration
	}
	return s
}

// NewEngine builds an engine from the course strategies over the configured engine settings
func (c *Course) NewEngine(ec config.EngineConfig, logger *zap.Logger) (*physics.Engine, error) {
	s := c.EngineStrategies(physics.Strategies{
		Integrator:   ec.Integrator,
		StepSize:     ec.StepSize,
		Stopping:     ec.Stopping,
		Collision:    ec.Collision,
		Acceleration: ec.Acceleration,
	})
	pc, err := s.Config()
	if err != nil {
		return nil, err
	}
	pc.Gravity = ec.Gravity
	pc.MaxSpeed = ec.MaxSpeed
	pc.MaxSteps = ec.MaxSteps
	pc.Logger = logger
	return physics.New(pc)
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidCourse, err)
}

const defaultCourse = `
name: practice green
bounds: {min: {x: -12, y: -8}, max: {x: 12, y: 8}}
green: {static: 0.2, kinetic: 0.1}
height:
  kind: sum
  terms:
    - {kind: wave, amplitude: 0.1, kx: 0.3, ky: 0.2, offset: 0.5}
    - {kind: bump, height: -1.2, x: 6, y: -5, sigma: 1.2}
ball: {start: {x: -9, y: 0}}
target: {position: {x: 9, y: 2}, radius: 0.3}
zones:
  - {min: {x: 2, y: 3}, max: {x: 6, y: 6}}
trees:
  - {center: {x: -3, y: 2}, radius: 0.6}
  - {center: {x: 1, y: -3}, radius: 0.5}
boxes:
  - {min: {x: 3, y: -1}, max: {x: 4, y: 1}}
walls:
  - {from: {x: -1, y: 4}, to: {x: -1, y: 8}}
  - {from: {x: 7, y: 0}, to: {x: 10, y: 0}}
`
