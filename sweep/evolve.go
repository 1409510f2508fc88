package sweep

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/golf-sim/core"
	"github.com/lixenwraith/golf-sim/genetic"
	"github.com/lixenwraith/golf-sim/parameter"
	"github.com/lixenwraith/golf-sim/terrain"
	"github.com/lixenwraith/golf-sim/vmath"
)

// EvolveOptions configures a genetic shot search, zero fields take the genetic defaults
type EvolveOptions struct {
	Population  int
	Generations int
	Elite       int
	// MutationRate is the per-gene mutation probability
	MutationRate float64
	// MutationStrength is the mutation standard deviation as a fraction of the gene range
	MutationStrength float64
	// Seed fixes the search, 0 draws a random one
	Seed               uint64
	MinSpeed, MaxSpeed float64
}

// Evolution is the outcome of a genetic shot search
type Evolution struct {
	Best    Result
	History []genetic.PoolStats
}

func (o EvolveOptions) config(workers int) (genetic.Config, error) {
	cfg := genetic.DefaultConfig()
	if o.Population > 0 {
		cfg.PoolSize = o.Population
	}
	if o.Generations > 0 {
		cfg.MaxIterations = o.Generations
	}
	if o.Elite > 0 {
		cfg.EliteCount = o.Elite
	}
	if o.MutationRate > 0 {
		cfg.PerturbationRate = o.MutationRate
	}
	if o.MutationStrength > 0 {
		cfg.PerturbationStrength = o.MutationStrength
	}
	cfg.Seed = o.Seed
	cfg.Parallelism = workers
	// small populations keep at least one slot for offspring
	cfg.EliteCount = min(cfg.EliteCount, cfg.PoolSize-1)
	return cfg, cfg.Validate()
}

// Evolve searches shot space with a genetic algorithm over (angle, speed) genomes
// Fitness is the negated heuristic score, unsettled shots score the course's width plus height
// The search stops early once the best shot ends in the hole
func (s *Sweeper) Evolve(ctx context.Context, ball core.Ball, t *terrain.Terrain, opts EvolveOptions) (Evolution, error) {
	minSpeed, maxSpeed := opts.MinSpeed, opts.MaxSpeed
	if minSpeed == 0 && maxSpeed == 0 {
		minSpeed, maxSpeed = parameter.DefaultSweepMinSpeed, parameter.MaxBallSpeed
	}
	if minSpeed <= 0 || maxSpeed < minSpeed {
		return Evolution{}, fmt.Errorf("%w: speed range [%g, %g]", ErrInvalidGrid, minSpeed, maxSpeed)
	}
	cfg, err := opts.config(s.workers)
	if err != nil {
		return Evolution{}, err
	}

	bp := &genetic.BoundedPerturbator{
		Bounds:            []genetic.Bounds{{Min: -math.Pi, Max: math.Pi}, {Min: minSpeed, Max: maxSpeed}},
		StandardDeviation: cfg.PerturbationStrength,
	}
	unsettled := t.Bounds.Width() + t.Bounds.Height()
	evaluator := func(_ context.Context, g []float64) (float64, error) {
		r, err := s.evaluate(genomeVelocity(g), ball, t)
		if err != nil {
			return 0, err
		}
		if r.Err != nil {
			return -unsettled, nil
		}
		return -r.Score, nil
	}

	engine, err := genetic.NewEngine(evaluator, bp.Initializer(),
		&genetic.TournamentSelector[[]float64]{TournamentSize: parameter.GATournamentSize},
		&genetic.BlendCombiner{Alpha: parameter.GABlendAlpha},
		bp, cfg, s.logger)
	if err != nil {
		return Evolution{}, err
	}
	engine.SetTerminator(func(p *genetic.Pool[[]float64]) bool {
		return t.Target.Contains(s.finalOf(p.Members[0].Data, ball, t))
	})

	start := time.Now()
	s.logger.Info("evolution started",
		zap.Int("population", cfg.PoolSize),
		zap.Int("generations", cfg.MaxIterations),
		zap.String("heuristic", s.name))

	if _, err := engine.Run(ctx); err != nil {
		return Evolution{}, err
	}
	best, err := engine.Best()
	if err != nil {
		return Evolution{}, err
	}
	r, err := s.evaluate(genomeVelocity(best.Data), ball, t)
	if err != nil {
		return Evolution{}, err
	}
	if r.Err != nil {
		return Evolution{}, fmt.Errorf("best shot did not settle: %w", r.Err)
	}

	history := engine.History()
	s.logger.Info("evolution finished",
		zap.Int("generations", len(history)-1),
		zap.Float64("best_score", r.Score),
		zap.Stringer("best_velocity", r.Velocity),
		zap.Duration("elapsed", time.Since(start)))
	return Evolution{Best: r, History: history}, nil
}

func genomeVelocity(g []float64) vmath.Vec2 {
	return vmath.FromAngle(g[0]).Scale(g[1])
}

// finalOf returns where a genome's shot comes to rest, an unsettled shot never counts as holed
func (s *Sweeper) finalOf(g []float64, ball core.Ball, t *terrain.Terrain) vmath.Vec2 {
	tr, err := s.engine.Trace(genomeVelocity(g), ball, t)
	if err != nil {
		return vmath.V(math.Inf(1), math.Inf(1))
	}
	return tr.Final()
}
