package genetic

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var squareBounds = []Bounds{{Min: -10, Max: 10}, {Min: -10, Max: 10}}

// paraboloid peaks at (3, -1)
func paraboloid(_ context.Context, s []float64) (float64, error) {
	dx, dy := s[0]-3, s[1]+1
	return -(dx*dx + dy*dy), nil
}

func newTestEngine(t *testing.T, eval EvaluatorFunc[[]float64], cfg Config) *Engine[[]float64] {
	t.Helper()
	bp := &BoundedPerturbator{Bounds: squareBounds, StandardDeviation: cfg.PerturbationStrength}
	e, err := NewEngine(eval, bp.Initializer(),
		&TournamentSelector[[]float64]{TournamentSize: 3},
		&BlendCombiner{Alpha: 0.3},
		bp, cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	return e
}

func seeded(seed uint64) Config {
	cfg := DefaultConfig()
	cfg.Seed = seed
	cfg.Parallelism = 4
	return cfg
}

func TestEngineFindsMaximum(t *testing.T) {
	e := newTestEngine(t, paraboloid, seeded(7))
	pool, err := e.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, pool.Members, DefaultConfig().PoolSize)

	best, err := e.Best()
	require.NoError(t, err)
	assert.InDelta(t, 3, best.Data[0], 0.2)
	assert.InDelta(t, -1, best.Data[1], 0.2)
	assert.Equal(t, pool.Members[0], best)

	history := e.History()
	require.Len(t, history, DefaultConfig().MaxIterations+1)
	for i := 1; i < len(history); i++ {
		// elitism never loses the best
		assert.GreaterOrEqual(t, history[i].BestScore, history[i-1].BestScore)
		assert.Equal(t, i, history[i].Generation)
	}
	for i := 1; i < len(pool.Members); i++ {
		assert.GreaterOrEqual(t, pool.Members[i-1].Score, pool.Members[i].Score)
	}
}

func TestEngineSeedIsReproducible(t *testing.T) {
	a := newTestEngine(t, paraboloid, seeded(42))
	b := newTestEngine(t, paraboloid, seeded(42))
	_, err := a.Run(context.Background())
	require.NoError(t, err)
	_, err = b.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a.History(), b.History())
	ba, _ := a.Best()
	bb, _ := b.Best()
	assert.Equal(t, ba, bb)
}

func TestEngineTerminator(t *testing.T) {
	e := newTestEngine(t, paraboloid, seeded(1))
	e.SetTerminator(func(p *Pool[[]float64]) bool { return p.Generation >= 3 })
	pool, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, pool.Generation)
	assert.Len(t, e.History(), 4)
}

func TestEngineEvaluatorError(t *testing.T) {
	boom := errors.New("boom")
	e := newTestEngine(t, func(_ context.Context, s []float64) (float64, error) {
		if s[0] > 5 {
			return 0, boom
		}
		return 0, nil
	}, seeded(3))
	_, err := e.Run(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestEngineCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := newTestEngine(t, paraboloid, seeded(5))
	_, err := e.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = e.Best()
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tiny pool", func(c *Config) { c.PoolSize = 1 }},
		{"elite fills pool", func(c *Config) { c.EliteCount = c.PoolSize }},
		{"negative elite", func(c *Config) { c.EliteCount = -1 }},
		{"rate above one", func(c *Config) { c.PerturbationRate = 1.5 }},
		{"negative strength", func(c *Config) { c.PerturbationStrength = -0.1 }},
		{"negative iterations", func(c *Config) { c.MaxIterations = -1 }},
		{"negative parallelism", func(c *Config) { c.Parallelism = -2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
	assert.NoError(t, DefaultConfig().Validate())

	_, err := NewEngine[[]float64](paraboloid, nil, nil, nil, nil, DefaultConfig(), nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestTournamentSelector(t *testing.T) {
	pool := &Pool[int]{Members: []Candidate[int]{{Data: 1, Score: 1}, {Data: 2, Score: 5}, {Data: 3, Score: 3}}}
	rng := rand.New(rand.NewPCG(1, 2))

	// the tournament is capped at the pool size and draws with replacement,
	// so the best wins about 70% of the time and the worst under 4%
	sel := &TournamentSelector[int]{TournamentSize: 50}
	got := sel.Select(pool, 1000, rng)
	require.Len(t, got, 1000)
	wins := map[int]int{}
	for _, c := range got {
		wins[c.Data]++
	}
	assert.Greater(t, wins[2], 500)
	assert.Greater(t, wins[2], wins[3])
	assert.Greater(t, wins[3], wins[1])
	assert.Less(t, wins[1], 100)

	single := &Pool[int]{Members: []Candidate[int]{{Data: 7, Score: 1}}}
	for _, c := range sel.Select(single, 3, rng) {
		assert.Equal(t, 7, c.Data)
	}
	assert.Empty(t, sel.Select(&Pool[int]{}, 2, rng))
}

func TestCombiners(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	parents := []Candidate[[]float64]{{Data: []float64{0, 10}}, {Data: []float64{2, 20}}}

	blend := &BlendCombiner{Alpha: 0.5}
	for range 100 {
		for _, child := range blend.Combine(parents, rng) {
			require.Len(t, child, 2)
			assert.True(t, child[0] >= -1 && child[0] <= 3, "gene 0 %g", child[0])
			assert.True(t, child[1] >= 5 && child[1] <= 25, "gene 1 %g", child[1])
		}
	}

	uniform := &UniformCombiner[[]float64, float64]{MixProbability: 0.5}
	for range 20 {
		kids := uniform.Combine(parents, rng)
		require.Len(t, kids, 2)
		for i := range 2 {
			// genes swap between the children but are never invented
			assert.ElementsMatch(t, []float64{parents[0].Data[i], parents[1].Data[i]}, []float64{kids[0][i], kids[1][i]})
		}
	}

	lone := blend.Combine(parents[:1], rng)
	require.Len(t, lone, 1)
	lone[0][0] = 99
	assert.Equal(t, 0.0, parents[0].Data[0], "lone parent is copied")
}

func TestBoundedPerturbator(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	bp := &BoundedPerturbator{Bounds: []Bounds{{Min: 0, Max: 1}, {Min: -5, Max: 5}}, StandardDeviation: 10}

	for range 100 {
		s := []float64{0.5, 0}
		bp.Perturb(&s, 1, rng)
		assert.True(t, s[0] >= 0 && s[0] <= 1)
		assert.True(t, s[1] >= -5 && s[1] <= 5)
	}

	s := []float64{0.5, 0, 7}
	bp.Perturb(&s, 0, rng)
	assert.Equal(t, []float64{0.5, 0, 7}, s, "rate 0 leaves genes untouched")

	assert.Equal(t, []float64{1, -5, 42}, bp.Clamp([]float64{3, -9, 42}))

	sample := bp.Initializer()
	for range 20 {
		g := sample(rng)
		require.Len(t, g, 2)
		assert.True(t, g[0] >= 0 && g[0] <= 1)
		assert.True(t, g[1] >= -5 && g[1] <= 5)
	}
}
