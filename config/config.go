package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/lixenwraith/golf-sim/parameter"
)

// EnvPrefix scopes environment overrides, e.g. GOLF_ENGINE_MAX_STEPS
const EnvPrefix = "GOLF"

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the application configuration
type Config struct {
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Engine EngineConfig `mapstructure:"engine" yaml:"engine"`
	Sweep  SweepConfig  `mapstructure:"sweep" yaml:"sweep"`
	Evolve EvolveConfig `mapstructure:"evolve" yaml:"evolve"`
	Viewer ViewerConfig `mapstructure:"viewer" yaml:"viewer"`
}

// LoggerConfig holds all the configuration for the logger
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig names the console color per level
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// EngineConfig selects the simulation strategies used when a course does not name its own
type EngineConfig struct {
	Integrator   string  `mapstructure:"integrator" yaml:"integrator"`
	StepSize     float64 `mapstructure:"step_size" yaml:"step_size"`
	Stopping     string  `mapstructure:"stopping" yaml:"stopping"`
	Collision    string  `mapstructure:"collision" yaml:"collision"`
	Acceleration string  `mapstructure:"acceleration" yaml:"acceleration"`
	Gravity      float64 `mapstructure:"gravity" yaml:"gravity"`
	MaxSpeed     float64 `mapstructure:"max_speed" yaml:"max_speed"`
	MaxSteps     int     `mapstructure:"max_steps" yaml:"max_steps"`
}

// SweepConfig bounds the candidate grid and its concurrent evaluation
type SweepConfig struct {
	// Workers caps concurrent simulations, 0 means GOMAXPROCS
	Workers   int     `mapstructure:"workers" yaml:"workers"`
	Angles    int     `mapstructure:"angles" yaml:"angles"`
	Speeds    int     `mapstructure:"speeds" yaml:"speeds"`
	MinSpeed  float64 `mapstructure:"min_speed" yaml:"min_speed"`
	MaxSpeed  float64 `mapstructure:"max_speed" yaml:"max_speed"`
	Heuristic string  `mapstructure:"heuristic" yaml:"heuristic"`
	Top       int     `mapstructure:"top" yaml:"top"`
}

// EvolveConfig tunes the genetic shot search, speeds and workers come from SweepConfig
type EvolveConfig struct {
	Population       int     `mapstructure:"population" yaml:"population"`
	Generations      int     `mapstructure:"generations" yaml:"generations"`
	Elite            int     `mapstructure:"elite" yaml:"elite"`
	MutationRate     float64 `mapstructure:"mutation_rate" yaml:"mutation_rate"`
	MutationStrength float64 `mapstructure:"mutation_strength" yaml:"mutation_strength"`
	// Seed fixes the search, 0 draws a random one
	Seed uint64 `mapstructure:"seed" yaml:"seed"`
}

// ViewerConfig configures the interactive terminal viewer
type ViewerConfig struct {
	Audio bool `mapstructure:"audio" yaml:"audio"`
	// PointsPerFrame is the animation speed in trajectory samples per redraw
	PointsPerFrame int `mapstructure:"points_per_frame" yaml:"points_per_frame"`
}

// SetDefaults registers every default on v
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "golfsim")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 20)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 14)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "magenta")

	// -- Engine --
	v.SetDefault("engine.integrator", parameter.DefaultIntegrator)
	v.SetDefault("engine.step_size", parameter.DefaultStepSize)
	v.SetDefault("engine.stopping", parameter.DefaultStoppingCondition)
	v.SetDefault("engine.collision", parameter.DefaultCollisionSystem)
	v.SetDefault("engine.acceleration", parameter.DefaultAcceleration)
	v.SetDefault("engine.gravity", parameter.Gravity)
	v.SetDefault("engine.max_speed", parameter.MaxBallSpeed)
	v.SetDefault("engine.max_steps", parameter.DefaultMaxSteps)

	// -- Sweep --
	v.SetDefault("sweep.workers", parameter.DefaultSweepWorkers)
	v.SetDefault("sweep.angles", parameter.DefaultSweepAngles)
	v.SetDefault("sweep.speeds", parameter.DefaultSweepSpeeds)
	v.SetDefault("sweep.min_speed", parameter.DefaultSweepMinSpeed)
	v.SetDefault("sweep.max_speed", parameter.MaxBallSpeed)
	v.SetDefault("sweep.heuristic", "final")
	v.SetDefault("sweep.top", 5)

	// -- Evolve --
	v.SetDefault("evolve.population", parameter.GAPoolSize)
	v.SetDefault("evolve.generations", parameter.GAMaxIterations)
	v.SetDefault("evolve.elite", parameter.GAEliteCount)
	v.SetDefault("evolve.mutation_rate", parameter.GAPerturbationRate)
	v.SetDefault("evolve.mutation_strength", parameter.GAPerturbationStrength)
	v.SetDefault("evolve.seed", 0)

	// -- Viewer --
	v.SetDefault("viewer.audio", true)
	v.SetDefault("viewer.points_per_frame", parameter.TrajectoryPointsPerFrame)
}

// NewViper returns a viper instance with defaults and GOLF_ environment overrides bound
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads an optional config file into a fresh viper and returns the validated configuration
func Load(path string) (*Config, error) {
	v := NewViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}
	return NewConfigFromViper(v)
}

// NewConfigFromViper unmarshals and validates
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate fails fast on values the simulator would otherwise have to clamp
func (c *Config) Validate() error {
	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logger.format must be console or json, got %q", ErrInvalidConfig, c.Logger.Format)
	}
	if c.Engine.StepSize <= 0 {
		return fmt.Errorf("%w: engine.step_size must be positive", ErrInvalidConfig)
	}
	if c.Engine.Gravity < 0 {
		return fmt.Errorf("%w: engine.gravity must not be negative", ErrInvalidConfig)
	}
	if c.Engine.MaxSpeed <= 0 {
		return fmt.Errorf("%w: engine.max_speed must be positive", ErrInvalidConfig)
	}
	if c.Engine.MaxSteps < parameter.NoStepLimit {
		return fmt.Errorf("%w: engine.max_steps must be %d (unbounded), 0 (default) or positive", ErrInvalidConfig, parameter.NoStepLimit)
	}
	if c.Sweep.Workers < 0 {
		return fmt.Errorf("%w: sweep.workers must not be negative", ErrInvalidConfig)
	}
	if c.Sweep.Angles <= 0 || c.Sweep.Speeds <= 0 {
		return fmt.Errorf("%w: sweep.angles and sweep.speeds must be positive", ErrInvalidConfig)
	}
	if c.Sweep.MinSpeed <= 0 || c.Sweep.MaxSpeed < c.Sweep.MinSpeed {
		return fmt.Errorf("%w: sweep speed range [%g, %g] is invalid", ErrInvalidConfig, c.Sweep.MinSpeed, c.Sweep.MaxSpeed)
	}
	if c.Evolve.Population < 2 || c.Evolve.Generations < 1 {
		return fmt.Errorf("%w: evolve.population must be at least 2 and evolve.generations positive", ErrInvalidConfig)
	}
	if c.Evolve.Elite < 0 || c.Evolve.Elite >= c.Evolve.Population {
		return fmt.Errorf("%w: evolve.elite must be in [0, population)", ErrInvalidConfig)
	}
	if c.Evolve.MutationRate < 0 || c.Evolve.MutationRate > 1 || c.Evolve.MutationStrength < 0 {
		return fmt.Errorf("%w: evolve mutation rate must be in [0, 1] and strength not negative", ErrInvalidConfig)
	}
	if c.Viewer.PointsPerFrame <= 0 {
		return fmt.Errorf("%w: viewer.points_per_frame must be positive", ErrInvalidConfig)
	}
	return nil
}
