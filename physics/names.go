package physics

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/golf-sim/parameter"
	"github.com/lixenwraith/golf-sim/registry"
)

// IntegratorFactory builds an integrator for a step size
type IntegratorFactory func(h float64) (Integrator, error)

// Strategy registries, populated at init and resolved by name from course files and flags
var (
	Integrators        = registry.New[IntegratorFactory]("integrator")
	StoppingConditions = registry.New[func() StoppingCondition]("stopping condition")
	CollisionSystems   = registry.New[func() CollisionSystem]("collision system")
	AccelerationModels = registry.New[func() AccelerationModel]("acceleration model")
)

func init() {
	Integrators.Register("euler", func(h float64) (Integrator, error) { return NewEuler(h) })
	Integrators.Register("rk2", func(h float64) (Integrator, error) { return NewRK2(h) })
	Integrators.Register("rk4", func(h float64) (Integrator, error) { return NewRK4(h) })

	StoppingConditions.Register("smallV", func() StoppingCondition { return SmallVelocity{} })
	StoppingConditions.Register("dotProduct", func() StoppingCondition { return DotProduct{} })
	StoppingConditions.Register("dotProductSmallV", func() StoppingCondition { return DotProductSmallVelocity{} })

	CollisionSystems.Register("stop", func() CollisionSystem { return StopOnTouch{} })
	CollisionSystems.Register("bounce", func() CollisionSystem { return Bounce{} })

	AccelerationModels.Register("projected", func() AccelerationModel { return Projected{} })
	AccelerationModels.Register("inclined", func() AccelerationModel { return Inclined{} })
}

func unknown[F any](r *registry.Registry[F], name string) error {
	return fmt.Errorf("%w: %s %q (known: %s)", ErrUnknownStrategy, r.Kind(), name, strings.Join(r.Names(), ", "))
}

func NewIntegrator(name string, h float64) (Integrator, error) {
	f, ok := Integrators.Get(name)
	if !ok {
		return nil, unknown(Integrators, name)
	}
	return f(h)
}

func NewStoppingCondition(name string) (StoppingCondition, error) {
	f, ok := StoppingConditions.Get(name)
	if !ok {
		return nil, unknown(StoppingConditions, name)
	}
	return f(), nil
}

func NewCollisionSystem(name string) (CollisionSystem, error) {
	f, ok := CollisionSystems.Get(name)
	if !ok {
		return nil, unknown(CollisionSystems, name)
	}
	return f(), nil
}

func NewAccelerationModel(name string) (AccelerationModel, error) {
	f, ok := AccelerationModels.Get(name)
	if !ok {
		return nil, unknown(AccelerationModels, name)
	}
	return f(), nil
}

// Strategies names one strategy per role, empty names select the defaults
type Strategies struct {
	Integrator   string  `mapstructure:"integrator" json:"integrator"`
	StepSize     float64 `mapstructure:"step_size" json:"step_size"`
	Stopping     string  `mapstructure:"stopping" json:"stopping"`
	Collision    string  `mapstructure:"collision" json:"collision"`
	Acceleration string  `mapstructure:"acceleration" json:"acceleration"`
}

// DefaultStrategies returns the names behind DefaultConfig
func DefaultStrategies() Strategies {
	return Strategies{
		Integrator:   parameter.DefaultIntegrator,
		StepSize:     parameter.DefaultStepSize,
		Stopping:     parameter.DefaultStoppingCondition,
		Collision:    parameter.DefaultCollisionSystem,
		Acceleration: parameter.DefaultAcceleration,
	}
}

// Config resolves the named strategies into an engine configuration with default world constants
func (s Strategies) Config() (Config, error) {
	def := DefaultStrategies()
	if s.Integrator == "" {
		s.Integrator = def.Integrator
	}
	if s.StepSize == 0 {
		s.StepSize = def.StepSize
	}
	if s.Stopping == "" {
		s.Stopping = def.Stopping
	}
	if s.Collision == "" {
		s.Collision = def.Collision
	}
	if s.Acceleration == "" {
		s.Acceleration = def.Acceleration
	}

	cfg := DefaultConfig()
	var err error
	if cfg.Integrator, err = NewIntegrator(s.Integrator, s.StepSize); err != nil {
		return Config{}, err
	}
	if cfg.Stopping, err = NewStoppingCondition(s.Stopping); err != nil {
		return Config{}, err
	}
	if cfg.Collision, err = NewCollisionSystem(s.Collision); err != nil {
		return Config{}, err
	}
	if cfg.Acceleration, err = NewAccelerationModel(s.Acceleration); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
