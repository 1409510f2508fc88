package genetic

import (
	"context"
	"math/rand/v2"
)

// --- Core Data Structures ---

// Candidate is an evaluated solution, higher Score is better
type Candidate[S any] struct {
	Data  S
	Score float64
}

// Pool is the working set of one generation, Members are sorted best first
type Pool[S any] struct {
	Members    []Candidate[S]
	Generation int
	Stats      PoolStats
}

// PoolStats summarizes the scores of a pool
type PoolStats struct {
	Generation   int
	BestScore    float64
	WorstScore   float64
	AverageScore float64
}

// --- Function Types ---

// EvaluatorFunc scores a solution, it is called concurrently and must not share mutable state
type EvaluatorFunc[S any] func(ctx context.Context, solution S) (float64, error)

// InitializerFunc creates a random solution for the first generation
type InitializerFunc[S any] func(rng *rand.Rand) S

// TerminationFunc reports whether evolution can stop early
type TerminationFunc[S any] func(pool *Pool[S]) bool

// --- Operators ---

// Selector chooses candidates for reproduction
type Selector[S any] interface {
	Select(pool *Pool[S], size int, rng *rand.Rand) []Candidate[S]
}

// Combiner recombines parents into one or more offspring
type Combiner[S any] interface {
	Combine(parents []Candidate[S], rng *rand.Rand) []S
}

// Perturbator mutates a solution in place, rate is the per-gene mutation probability
type Perturbator[S any] interface {
	Perturb(solution *S, rate float64, rng *rand.Rand)
}
