// Package sweep evaluates grids of candidate shots concurrently and ranks them against the target
package sweep

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"slices"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/golf-sim/core"
	"github.com/lixenwraith/golf-sim/physics"
	"github.com/lixenwraith/golf-sim/terrain"
	"github.com/lixenwraith/golf-sim/vmath"
)

var (
	ErrUnknownHeuristic = errors.New("unknown heuristic")
	ErrInvalidGrid      = errors.New("invalid sweep grid")
)

// Options configures a Sweeper
type Options struct {
	// Workers caps concurrent simulations, 0 means GOMAXPROCS
	Workers   int
	Heuristic string
	Logger    *zap.Logger
}

// Result is one evaluated candidate
type Result struct {
	Velocity vmath.Vec2 `json:"velocity"`
	Score    float64    `json:"score"`
	Final    vmath.Vec2 `json:"final"`
	Steps    int        `json:"steps"`
	Bounces  int        `json:"bounces"`
	Holed    bool       `json:"holed"`
	Water    bool       `json:"water"`
	// Err is set when the shot hit the step ceiling, Score is then +Inf
	Err error `json:"-"`
}

// Sweeper scores candidate shots with a shared engine
// Engines hold no per-shot state, so one engine serves every worker
type Sweeper struct {
	engine    *physics.Engine
	heuristic Heuristic
	name      string
	workers   int
	logger    *zap.Logger
}

func New(engine *physics.Engine, opts Options) (*Sweeper, error) {
	if engine == nil {
		return nil, errors.New("sweep: nil engine")
	}
	if opts.Workers < 0 {
		return nil, fmt.Errorf("%w: workers %d", ErrInvalidGrid, opts.Workers)
	}
	if opts.Heuristic == "" {
		opts.Heuristic = "final"
	}
	h, err := lookupHeuristic(opts.Heuristic)
	if err != nil {
		return nil, err
	}
	workers := opts.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sweeper{
		engine:    engine,
		heuristic: h,
		name:      opts.Heuristic,
		workers:   workers,
		logger:    logger.Named("sweep"),
	}, nil
}

// Grid returns angles×speeds initial velocities, angles evenly spaced from +x counter-clockwise
// and speeds spaced linearly over [minSpeed, maxSpeed]
func Grid(angles, speeds int, minSpeed, maxSpeed float64) ([]vmath.Vec2, error) {
	if angles <= 0 || speeds <= 0 {
		return nil, fmt.Errorf("%w: %d angles × %d speeds", ErrInvalidGrid, angles, speeds)
	}
	if !(minSpeed > 0) || maxSpeed < minSpeed {
		return nil, fmt.Errorf("%w: speed range [%g, %g]", ErrInvalidGrid, minSpeed, maxSpeed)
	}

	out := make([]vmath.Vec2, 0, angles*speeds)
	for i := range angles {
		theta := 2 * math.Pi * float64(i) / float64(angles)
		dir := vmath.FromAngle(theta)
		for j := range speeds {
			speed := maxSpeed
			if speeds > 1 {
				speed = minSpeed + (maxSpeed-minSpeed)*float64(j)/float64(speeds-1)
			}
			out = append(out, dir.Scale(speed))
		}
	}
	return out, nil
}

// Evaluate simulates every candidate from the ball's position and returns results in candidate order
// Shots that hit the engine's step ceiling are kept with Err set; any other failure aborts the batch
func (s *Sweeper) Evaluate(ctx context.Context, ball core.Ball, t *terrain.Terrain, candidates []vmath.Vec2) ([]Result, error) {
	start := time.Now()
	s.logger.Info("sweep started",
		zap.Int("candidates", len(candidates)),
		zap.Int("workers", s.workers),
		zap.String("heuristic", s.name))

	results := make([]Result, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, v0 := range candidates {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := s.evaluate(v0, ball, t)
			if err != nil {
				return fmt.Errorf("candidate %d %v: %w", i, v0, err)
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	best, ok := Best(results)
	fields := []zap.Field{
		zap.Int("candidates", len(candidates)),
		zap.Duration("elapsed", time.Since(start)),
	}
	if ok {
		fields = append(fields, zap.Float64("best_score", best.Score), zap.Stringer("best_velocity", best.Velocity))
	}
	s.logger.Info("sweep finished", fields...)
	return results, nil
}

func (s *Sweeper) evaluate(v0 vmath.Vec2, ball core.Ball, t *terrain.Terrain) (Result, error) {
	tr, err := s.engine.Trace(v0, ball, t)
	r := Result{
		Velocity: v0,
		Final:    tr.Final(),
		Steps:    tr.Steps(),
		Bounces:  tr.Count(physics.EventBounce) + tr.Count(physics.EventBorder),
		Water:    tr.Count(physics.EventWater) > 0,
	}
	if err != nil {
		if !errors.Is(err, physics.ErrStepLimit) {
			return Result{}, err
		}
		s.logger.Warn("shot did not settle", zap.Stringer("velocity", v0), zap.Error(err))
		r.Err = err
		r.Score = math.Inf(1)
		return r, nil
	}
	r.Score = s.heuristic(tr.Positions, t.Target)
	r.Holed = t.Target.Contains(r.Final)
	return r, nil
}

// Rank returns a copy sorted best first, unsettled shots last, ties keep candidate order
func Rank(results []Result) []Result {
	out := slices.Clone(results)
	slices.SortStableFunc(out, func(a, b Result) int {
		if (a.Err != nil) != (b.Err != nil) {
			if a.Err != nil {
				return 1
			}
			return -1
		}
		return cmp.Compare(a.Score, b.Score)
	})
	return out
}

// Best returns the lowest scoring settled result
func Best(results []Result) (Result, bool) {
	var best Result
	found := false
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if !found || r.Score < best.Score {
			best, found = r, true
		}
	}
	return best, found
}
