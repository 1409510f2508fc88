package genetic

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/golf-sim/parameter"
)

var (
	ErrInvalidConfig = errors.New("invalid genetic configuration")
	ErrNoCandidates  = errors.New("no candidates available")
)

// --- Algorithm Engine ---

// Engine runs a generational genetic algorithm with elitism
// Random choices are drawn on the calling goroutine only, so a fixed Seed reproduces a run
type Engine[S any] struct {
	evaluator   EvaluatorFunc[S]
	initializer InitializerFunc[S]
	selector    Selector[S]
	combiner    Combiner[S]
	perturbator Perturbator[S]
	terminator  TerminationFunc[S]

	config Config
	rng    *rand.Rand
	logger *zap.Logger

	currentPool *Pool[S]
	history     []PoolStats
}

// Config holds the parameters of one search
type Config struct {
	// PoolSize is the number of candidates maintained in each generation
	PoolSize int
	// EliteCount is the number of best solutions carried over unchanged
	EliteCount int
	// PerturbationRate is the per-gene mutation probability (0-1)
	PerturbationRate float64
	// PerturbationStrength is the mutation spread, applied by the caller's perturbator
	PerturbationStrength float64
	// MaxIterations is the maximum number of generations to evolve
	MaxIterations int
	// Parallelism caps concurrent evaluations, 0 means GOMAXPROCS
	Parallelism int
	// Seed for random number generation, 0 draws a random seed
	Seed uint64
}

// DefaultConfig returns the default search parameters
func DefaultConfig() Config {
	return Config{
		PoolSize:             parameter.GAPoolSize,
		EliteCount:           parameter.GAEliteCount,
		PerturbationRate:     parameter.GAPerturbationRate,
		PerturbationStrength: parameter.GAPerturbationStrength,
		MaxIterations:        parameter.GAMaxIterations,
	}
}

// Validate rejects configurations the engine cannot run
func (c Config) Validate() error {
	switch {
	case c.PoolSize < 2:
		return fmt.Errorf("%w: pool size %d, need at least 2", ErrInvalidConfig, c.PoolSize)
	case c.EliteCount < 0 || c.EliteCount >= c.PoolSize:
		return fmt.Errorf("%w: elite count %d must be in [0, %d)", ErrInvalidConfig, c.EliteCount, c.PoolSize)
	case c.PerturbationRate < 0 || c.PerturbationRate > 1:
		return fmt.Errorf("%w: perturbation rate %g must be in [0, 1]", ErrInvalidConfig, c.PerturbationRate)
	case c.PerturbationStrength < 0:
		return fmt.Errorf("%w: perturbation strength %g", ErrInvalidConfig, c.PerturbationStrength)
	case c.MaxIterations < 0:
		return fmt.Errorf("%w: max iterations %d", ErrInvalidConfig, c.MaxIterations)
	case c.Parallelism < 0:
		return fmt.Errorf("%w: parallelism %d", ErrInvalidConfig, c.Parallelism)
	}
	return nil
}

// NewEngine creates a genetic algorithm engine with the specified operators
func NewEngine[S any](
	evaluator EvaluatorFunc[S],
	initializer InitializerFunc[S],
	selector Selector[S],
	combiner Combiner[S],
	perturbator Perturbator[S],
	config Config,
	logger *zap.Logger,
) (*Engine[S], error) {
	if evaluator == nil || initializer == nil || selector == nil || combiner == nil || perturbator == nil {
		return nil, fmt.Errorf("%w: missing operator", ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Parallelism == 0 {
		config.Parallelism = runtime.GOMAXPROCS(0)
	}

	seed := config.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Engine[S]{
		evaluator:   evaluator,
		initializer: initializer,
		selector:    selector,
		combiner:    combiner,
		perturbator: perturbator,
		config:      config,
		rng:         rand.New(rand.NewPCG(seed, seed)),
		logger:      logger.Named("genetic"),
		history:     make([]PoolStats, 0, config.MaxIterations+1),
	}, nil
}

// SetTerminator sets an early stopping condition, checked after every generation
func (e *Engine[S]) SetTerminator(terminator TerminationFunc[S]) {
	e.terminator = terminator
}

// Run evolves from a fresh population until MaxIterations or the terminator stops it
// On cancellation the last complete pool is returned with the context error
func (e *Engine[S]) Run(ctx context.Context) (*Pool[S], error) {
	initial := make([]S, e.config.PoolSize)
	for i := range initial {
		initial[i] = e.initializer(e.rng)
	}
	members, err := e.evaluate(ctx, initial)
	if err != nil {
		return nil, err
	}
	e.advance(members, 0)

	for iteration := 0; iteration < e.config.MaxIterations; iteration++ {
		if e.terminator != nil && e.terminator(e.currentPool) {
			e.logger.Debug("terminated early", zap.Int("generation", e.currentPool.Generation))
			break
		}
		if err := e.evolveGeneration(ctx); err != nil {
			return e.currentPool, err
		}
	}
	return e.currentPool, nil
}

// evolveGeneration keeps the elite and fills the rest of the pool with mutated offspring
func (e *Engine[S]) evolveGeneration(ctx context.Context) error {
	elite := e.currentPool.Members[:e.config.EliteCount]
	need := e.config.PoolSize - len(elite)

	offspring := make([]S, 0, need+1)
	for len(offspring) < need {
		parents := e.selector.Select(e.currentPool, 2, e.rng)
		for _, child := range e.combiner.Combine(parents, e.rng) {
			e.perturbator.Perturb(&child, e.config.PerturbationRate, e.rng)
			offspring = append(offspring, child)
		}
	}

	evaluated, err := e.evaluate(ctx, offspring[:need])
	if err != nil {
		return err
	}
	next := make([]Candidate[S], 0, e.config.PoolSize)
	next = append(next, elite...)
	next = append(next, evaluated...)
	e.advance(next, e.currentPool.Generation+1)
	return nil
}

// evaluate scores solutions concurrently, results keep the input order
func (e *Engine[S]) evaluate(ctx context.Context, solutions []S) ([]Candidate[S], error) {
	out := make([]Candidate[S], len(solutions))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.Parallelism)

	for i, s := range solutions {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			score, err := e.evaluator(gctx, s)
			if err != nil {
				return err
			}
			out[i] = Candidate[S]{Data: s, Score: score}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, ctx.Err()
}

// advance sorts members best first and makes them the current pool
func (e *Engine[S]) advance(members []Candidate[S], generation int) {
	slices.SortStableFunc(members, func(a, b Candidate[S]) int {
		return cmp.Compare(b.Score, a.Score)
	})
	stats := calculateStats(members)
	stats.Generation = generation
	e.currentPool = &Pool[S]{Members: members, Generation: generation, Stats: stats}
	e.history = append(e.history, stats)

	e.logger.Debug("generation evaluated",
		zap.Int("generation", generation),
		zap.Float64("best", stats.BestScore),
		zap.Float64("average", stats.AverageScore))
}

// calculateStats expects members sorted best first
func calculateStats[S any](members []Candidate[S]) PoolStats {
	if len(members) == 0 {
		return PoolStats{}
	}
	total := 0.0
	for _, c := range members {
		total += c.Score
	}
	return PoolStats{
		BestScore:    members[0].Score,
		WorstScore:   members[len(members)-1].Score,
		AverageScore: total / float64(len(members)),
	}
}

// History returns the statistics of every evaluated generation, the initial population first
func (e *Engine[S]) History() []PoolStats {
	return e.history
}

// Best returns the best candidate found so far
func (e *Engine[S]) Best() (Candidate[S], error) {
	if e.currentPool == nil || len(e.currentPool.Members) == 0 {
		return Candidate[S]{}, ErrNoCandidates
	}
	return e.currentPool.Members[0], nil
}
