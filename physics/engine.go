package physics

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/lixenwraith/golf-sim/core"
	"github.com/lixenwraith/golf-sim/parameter"
	"github.com/lixenwraith/golf-sim/terrain"
	"github.com/lixenwraith/golf-sim/vmath"
)

// Sentinel errors
var (
	ErrInvalidStepSize = errors.New("step size must be positive and finite")
	ErrStepLimit       = errors.New("simulation step limit reached")
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrInvalidConfig   = errors.New("invalid engine configuration")
)

// Config selects the strategies and world constants of an Engine
// Zero values are replaced by defaults in New, so zero gravity or a zero speed cap cannot be configured
type Config struct {
	Integrator   Integrator
	Stopping     StoppingCondition
	Collision    CollisionSystem
	Acceleration AccelerationModel

	Gravity  float64
	MaxSpeed float64
	// MaxSteps bounds a single shot, 0 takes parameter.DefaultMaxSteps and
	// parameter.NoStepLimit disables the ceiling
	MaxSteps int

	Logger *zap.Logger
}

// DefaultConfig returns rk4 at the default step with small-velocity stopping, bouncing and projected acceleration
func DefaultConfig() Config {
	integ, _ := NewRK4(parameter.DefaultStepSize)
	return Config{
		Integrator:   integ,
		Stopping:     SmallVelocity{},
		Collision:    Bounce{},
		Acceleration: Projected{},
		Gravity:      parameter.Gravity,
		MaxSpeed:     parameter.MaxBallSpeed,
		MaxSteps:     parameter.DefaultMaxSteps,
	}
}

// Engine runs shot simulations
// An Engine holds only configuration and can be shared by concurrent callers
type Engine struct {
	integrator   Integrator
	stopping     StoppingCondition
	collision    CollisionSystem
	acceleration AccelerationModel

	gravity  float64
	maxSpeed float64
	maxSteps int

	logger *zap.Logger
}

// New validates cfg and builds an engine, unset fields take their defaults
func New(cfg Config) (*Engine, error) {
	def := DefaultConfig()
	if cfg.Integrator == nil {
		cfg.Integrator = def.Integrator
	}
	if cfg.Stopping == nil {
		cfg.Stopping = def.Stopping
	}
	if cfg.Collision == nil {
		cfg.Collision = def.Collision
	}
	if cfg.Acceleration == nil {
		cfg.Acceleration = def.Acceleration
	}
	if cfg.Gravity == 0 {
		cfg.Gravity = def.Gravity
	}
	if cfg.MaxSpeed == 0 {
		cfg.MaxSpeed = def.MaxSpeed
	}
	if cfg.MaxSteps == 0 {
		cfg.MaxSteps = def.MaxSteps
	}

	if err := validateStepSize(cfg.Integrator.StepSize()); err != nil {
		return nil, fmt.Errorf("integrator %s: %w", cfg.Integrator.Name(), err)
	}
	if cfg.Gravity < 0 {
		return nil, fmt.Errorf("%w: gravity %g", ErrInvalidConfig, cfg.Gravity)
	}
	if cfg.MaxSpeed < 0 {
		return nil, fmt.Errorf("%w: max speed %g", ErrInvalidConfig, cfg.MaxSpeed)
	}
	if cfg.MaxSteps < parameter.NoStepLimit {
		return nil, fmt.Errorf("%w: max steps %d", ErrInvalidConfig, cfg.MaxSteps)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Engine{
		integrator:   cfg.Integrator,
		stopping:     cfg.Stopping,
		collision:    cfg.Collision,
		acceleration: cfg.Acceleration,
		gravity:      cfg.Gravity,
		maxSpeed:     cfg.MaxSpeed,
		maxSteps:     cfg.MaxSteps,
		logger:       logger.Named("physics"),
	}, nil
}

// Config returns the effective configuration
func (e *Engine) Config() Config {
	return Config{
		Integrator:   e.integrator,
		Stopping:     e.stopping,
		Collision:    e.collision,
		Acceleration: e.acceleration,
		Gravity:      e.gravity,
		MaxSpeed:     e.maxSpeed,
		MaxSteps:     e.maxSteps,
		Logger:       e.logger,
	}
}

// SimulateShot launches ball with initial velocity v0 and returns its positions until rest
// The first position is the ball's start, the last its resting place
func (e *Engine) SimulateShot(v0 vmath.Vec2, ball core.Ball, t *terrain.Terrain) ([]vmath.Vec2, error) {
	tr, err := e.Trace(v0, ball, t)
	return tr.Positions, err
}

// Trace simulates like SimulateShot and also records bounce and stop events
// On ErrStepLimit the partial trace is returned with the error
func (e *Engine) Trace(v0 vmath.Vec2, ball core.Ball, t *terrain.Terrain) (Trace, error) {
	state := core.BallState{Position: ball.State.Position, Velocity: v0}
	h := e.integrator.StepSize()
	accel := func(s core.BallState) vmath.Vec2 {
		return e.acceleration.Acceleration(s, t, e.gravity)
	}

	tr := Trace{Positions: []vmath.Vec2{state.Position}}

	for step := 1; !state.Velocity.IsZero(); step++ {
		if e.maxSteps > 0 && step > e.maxSteps {
			e.logger.Warn("step limit reached",
				zap.Int("max_steps", e.maxSteps),
				zap.Stringer("position", state.Position),
				zap.Stringer("velocity", state.Velocity))
			return tr, fmt.Errorf("after %d steps at %v: %w", e.maxSteps, state.Position, ErrStepLimit)
		}

		state.Velocity, _ = CapSpeed(state.Velocity, e.maxSpeed)
		prev := state
		next := e.integrator.Advance(state, accel)

		if e.stopping.ShouldStop(next, prev, h) {
			slope := t.Slope(next.Position)
			if t.StaticFrictionAt(next.Position) < slope.Length() {
				next.Velocity = slope.Neg()
				tr.Events = append(tr.Events, Event{Step: step, Kind: EventSlide, Position: next.Position})
			} else {
				next.Velocity = vmath.Vec2{}
				tr.Events = append(tr.Events, Event{Step: step, Kind: EventStop, Position: next.Position})
			}
		}

		res := e.collision.Resolve(next, prev, ball.Radius, t)
		next = res.State
		if res.Contact {
			kind := EventBounce
			if next.Velocity.IsZero() {
				kind = EventTouch
			}
			tr.Events = append(tr.Events, Event{
				Step: step, Kind: kind, Position: next.Position,
				Obstacle: res.Obstacle, Bounciness: res.Bounciness,
			})
		}
		if res.Border {
			kind := EventBorder
			if next.Velocity.IsZero() {
				kind = EventTouch
			}
			tr.Events = append(tr.Events, Event{Step: step, Kind: kind, Position: next.Position})
		}

		if t.InWater(next.Position) {
			next.Velocity = vmath.Vec2{}
			tr.Events = append(tr.Events, Event{Step: step, Kind: EventWater, Position: next.Position})
		}

		tr.Positions = append(tr.Positions, next.Position)
		state = next
	}

	e.logger.Debug("shot simulated",
		zap.Int("steps", tr.Steps()),
		zap.Stringer("final", tr.Final()),
		zap.Int("bounces", tr.Count(EventBounce)+tr.Count(EventBorder)))
	return tr, nil
}
