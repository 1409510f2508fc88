package sweep

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/lixenwraith/golf-sim/core"
	"github.com/lixenwraith/golf-sim/genetic"
	"github.com/lixenwraith/golf-sim/parameter"
	"github.com/lixenwraith/golf-sim/physics"
	"github.com/lixenwraith/golf-sim/terrain"
	"github.com/lixenwraith/golf-sim/vmath"
)

func flatGreen(t *testing.T) *terrain.Terrain {
	t.Helper()
	ter := terrain.New(vmath.V(-20, -20), vmath.V(20, 20), terrain.Flat{})
	ter.KineticFriction = 0.1
	ter.Target = terrain.Target{Position: vmath.V(5, 0), Radius: 0.5}
	require.NoError(t, ter.Validate())
	return ter
}

func newSweeper(t *testing.T, cfg physics.Config, opts Options) *Sweeper {
	t.Helper()
	e, err := physics.New(cfg)
	require.NoError(t, err)
	opts.Logger = zaptest.NewLogger(t)
	s, err := New(e, opts)
	require.NoError(t, err)
	return s
}

func TestGrid(t *testing.T) {
	g, err := Grid(4, 3, 1, 3)
	require.NoError(t, err)
	require.Len(t, g, 12)

	assert.True(t, g[0].NearlyEqual(vmath.V(1, 0), 1e-12))
	assert.True(t, g[1].NearlyEqual(vmath.V(2, 0), 1e-12))
	assert.True(t, g[2].NearlyEqual(vmath.V(3, 0), 1e-12))
	assert.True(t, g[3].NearlyEqual(vmath.V(0, 1), 1e-12))
	assert.True(t, g[11].NearlyEqual(vmath.V(0, -3), 1e-12))

	single, err := Grid(1, 1, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, []vmath.Vec2{vmath.V(4, 0)}, single)

	for _, bad := range [][4]float64{{0, 1, 1, 2}, {1, 0, 1, 2}, {1, 1, 0, 2}, {1, 1, 3, 2}} {
		_, err := Grid(int(bad[0]), int(bad[1]), bad[2], bad[3])
		assert.ErrorIs(t, err, ErrInvalidGrid)
	}
}

func TestHeuristics(t *testing.T) {
	target := terrain.Target{Position: vmath.V(3, 0)}
	path := []vmath.Vec2{vmath.V(0, 0), vmath.V(2, 1), vmath.V(3, 1), vmath.V(6, 4)}

	assert.InDelta(t, 5, FinalDistance(path, target), 1e-12)
	assert.InDelta(t, 1, ClosestDistance(path, target), 1e-12)
	assert.InDelta(t, 6, FinalClosestDistance(path, target), 1e-12)
	assert.True(t, math.IsInf(FinalDistance(nil, target), 1))

	assert.Equal(t, []string{"closest", "final", "finalClosest"}, Heuristics.Names())
}

func TestEvaluatePicksClosestStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	ter := flatGreen(t)
	s := newSweeper(t, physics.Config{Collision: physics.StopOnTouch{}}, Options{Workers: 3})
	candidates := []vmath.Vec2{vmath.V(2, 0), vmath.V(3, 0), vmath.V(4, 0), vmath.V(-3, 0), vmath.V(0, 3)}

	results, err := s.Evaluate(context.Background(), core.NewBall(vmath.Vec2{}), ter, candidates)
	require.NoError(t, err)
	require.Len(t, results, len(candidates))
	for i, r := range results {
		assert.Equal(t, candidates[i], r.Velocity, "results keep candidate order")
		assert.NoError(t, r.Err)
		assert.Positive(t, r.Steps)
	}

	best, ok := Best(results)
	require.True(t, ok)
	assert.Equal(t, vmath.V(3, 0), best.Velocity)
	// v²/(2gμ) = 9/1.962
	assert.InDelta(t, 9/1.962, best.Final.X, 0.05)
	assert.True(t, best.Holed)

	ranked := Rank(results)
	assert.Equal(t, best, ranked[0])
	for i := 1; i < len(ranked); i++ {
		assert.LessOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
}

func TestEvaluateKeepsUnsettledShots(t *testing.T) {
	defer goleak.VerifyNone(t)

	ter := terrain.New(vmath.V(0, 0), vmath.V(10, 10), terrain.Flat{})
	ter.KineticFriction = 0
	ter.Target = terrain.Target{Position: vmath.V(8, 8), Radius: 0.2}
	s := newSweeper(t, physics.Config{MaxSteps: 200}, Options{Workers: 2})

	results, err := s.Evaluate(context.Background(), core.NewBall(vmath.V(5, 5)), ter, []vmath.Vec2{vmath.V(2, 1), vmath.V(1, 2)})
	require.NoError(t, err)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, physics.ErrStepLimit)
		assert.True(t, math.IsInf(r.Score, 1))
	}
	_, ok := Best(results)
	assert.False(t, ok)
}

func TestEvaluateCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ter := flatGreen(t)
	s := newSweeper(t, physics.Config{}, Options{Workers: 1})
	candidates, err := Grid(16, 4, 1, 4)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Evaluate(ctx, core.NewBall(vmath.Vec2{}), ter, candidates)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRankPutsUnsettledLast(t *testing.T) {
	results := []Result{
		{Velocity: vmath.V(1, 0), Score: math.Inf(1), Err: physics.ErrStepLimit},
		{Velocity: vmath.V(2, 0), Score: 3},
		{Velocity: vmath.V(3, 0), Score: 1},
		{Velocity: vmath.V(4, 0), Score: 3},
	}
	ranked := Rank(results)
	got := make([]vmath.Vec2, len(ranked))
	for i, r := range ranked {
		got[i] = r.Velocity
	}
	assert.Equal(t, []vmath.Vec2{vmath.V(3, 0), vmath.V(2, 0), vmath.V(4, 0), vmath.V(1, 0)}, got)
	assert.Equal(t, vmath.V(1, 0), results[0].Velocity, "input is not reordered")
}

func TestNewValidation(t *testing.T) {
	e, err := physics.New(physics.Config{})
	require.NoError(t, err)

	_, err = New(e, Options{Heuristic: "astar"})
	assert.ErrorIs(t, err, ErrUnknownHeuristic)
	_, err = New(e, Options{Workers: -1})
	assert.ErrorIs(t, err, ErrInvalidGrid)
	_, err = New(nil, Options{})
	assert.Error(t, err)

	s, err := New(e, Options{})
	require.NoError(t, err)
	assert.Positive(t, s.workers)
	assert.Equal(t, "final", s.name)
}

func TestEvolveFindsHole(t *testing.T) {
	defer goleak.VerifyNone(t)

	ter := flatGreen(t)
	s := newSweeper(t, physics.DefaultConfig(), Options{Workers: 4})
	ball := core.NewBall(vmath.Vec2{})
	opts := EvolveOptions{Population: 24, Generations: 30, Seed: 11}

	ev, err := s.Evolve(context.Background(), ball, ter, opts)
	require.NoError(t, err)
	assert.Less(t, ev.Best.Score, 0.5)
	assert.NoError(t, ev.Best.Err)
	require.NotEmpty(t, ev.History)
	assert.LessOrEqual(t, len(ev.History), opts.Generations+1)
	assert.Equal(t, -ev.History[len(ev.History)-1].BestScore, ev.Best.Score)

	speed := ev.Best.Velocity.Length()
	assert.True(t, speed >= parameter.DefaultSweepMinSpeed && speed <= parameter.MaxBallSpeed)

	again, err := s.Evolve(context.Background(), ball, ter, opts)
	require.NoError(t, err)
	assert.Equal(t, ev.Best, again.Best, "same seed, same search")
}

func TestEvolveRejectsBadOptions(t *testing.T) {
	ter := flatGreen(t)
	s := newSweeper(t, physics.DefaultConfig(), Options{Workers: 1})
	ball := core.NewBall(vmath.Vec2{})

	_, err := s.Evolve(context.Background(), ball, ter, EvolveOptions{MinSpeed: 3, MaxSpeed: 2})
	assert.ErrorIs(t, err, ErrInvalidGrid)
	_, err = s.Evolve(context.Background(), ball, ter, EvolveOptions{Population: 1})
	assert.ErrorIs(t, err, genetic.ErrInvalidConfig)
	_, err = s.Evolve(context.Background(), ball, ter, EvolveOptions{MutationRate: 2})
	assert.ErrorIs(t, err, genetic.ErrInvalidConfig)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Evolve(ctx, ball, ter, EvolveOptions{Seed: 1})
	assert.ErrorIs(t, err, context.Canceled)
}
