// Package genetic provides a generic genetic algorithm for bounded numeric search problems
// It has no knowledge of the simulation, callers supply the evaluator and operators
package genetic

import (
	"math/rand/v2"
)

// --- Concrete Operator Implementations ---

// TournamentSelector samples small groups with replacement and keeps the best of each
type TournamentSelector[S any] struct {
	TournamentSize int
}

func (ts *TournamentSelector[S]) Select(pool *Pool[S], size int, rng *rand.Rand) []Candidate[S] {
	n := len(pool.Members)
	if n == 0 || size <= 0 {
		return nil
	}
	tournSize := min(max(ts.TournamentSize, 2), n)

	selected := make([]Candidate[S], 0, size)
	for len(selected) < size {
		winner := pool.Members[rng.IntN(n)]
		for i := 1; i < tournSize; i++ {
			if c := pool.Members[rng.IntN(n)]; c.Score > winner.Score {
				winner = c
			}
		}
		selected = append(selected, winner)
	}
	return selected
}

// UniformCombiner performs uniform crossover, each gene comes from either parent
type UniformCombiner[S ~[]T, T any] struct {
	// MixProbability is the chance of taking a gene from the first parent
	MixProbability float64
}

func (uc *UniformCombiner[S, T]) Combine(parents []Candidate[S], rng *rand.Rand) []S {
	if len(parents) < 2 {
		return passThrough[S, T](parents)
	}
	p1, p2 := parents[0].Data, parents[1].Data
	length := min(len(p1), len(p2))

	o1 := make(S, length)
	o2 := make(S, length)
	for i := range length {
		if rng.Float64() < uc.MixProbability {
			o1[i], o2[i] = p1[i], p2[i]
		} else {
			o1[i], o2[i] = p2[i], p1[i]
		}
	}
	return []S{o1, o2}
}

// BlendCombiner performs BLX-α crossover on real-valued genes
// Each child gene is drawn uniformly from the parents' interval widened by Alpha on both sides
type BlendCombiner struct {
	Alpha float64
}

func (bc *BlendCombiner) Combine(parents []Candidate[[]float64], rng *rand.Rand) [][]float64 {
	if len(parents) < 2 {
		return passThrough(parents)
	}
	p1, p2 := parents[0].Data, parents[1].Data
	length := min(len(p1), len(p2))

	o1 := make([]float64, length)
	o2 := make([]float64, length)
	for i := range length {
		lo, hi := min(p1[i], p2[i]), max(p1[i], p2[i])
		d := (hi - lo) * bc.Alpha
		lo, hi = lo-d, hi+d
		o1[i] = lo + rng.Float64()*(hi-lo)
		o2[i] = lo + rng.Float64()*(hi-lo)
	}
	return [][]float64{o1, o2}
}

// passThrough copies a lone parent so mutation cannot alias the pool
func passThrough[S ~[]T, T any](parents []Candidate[S]) []S {
	if len(parents) == 0 {
		return nil
	}
	return []S{append(S(nil), parents[0].Data...)}
}

// Bounds is the inclusive range of one gene
type Bounds struct {
	Min, Max float64
}

// Sample draws a value uniformly from the range
func (b Bounds) Sample(rng *rand.Rand) float64 {
	return b.Min + rng.Float64()*(b.Max-b.Min)
}

func (b Bounds) clamp(v float64) float64 {
	return min(max(v, b.Min), b.Max)
}

// BoundedPerturbator adds Gaussian noise scaled to each gene's range and clamps every gene into its bounds
type BoundedPerturbator struct {
	Bounds []Bounds
	// StandardDeviation is a fraction of the gene range
	StandardDeviation float64
}

func (bp *BoundedPerturbator) Perturb(solution *[]float64, rate float64, rng *rand.Rand) {
	if solution == nil {
		return
	}
	s := *solution
	for i := range s {
		if i >= len(bp.Bounds) {
			break
		}
		b := bp.Bounds[i]
		if rng.Float64() < rate {
			s[i] += rng.NormFloat64() * bp.StandardDeviation * (b.Max - b.Min)
		}
		// crossover may have left the range too
		s[i] = b.clamp(s[i])
	}
}

// Clamp returns a copy with every gene inside its bounds
func (bp *BoundedPerturbator) Clamp(solution []float64) []float64 {
	out := make([]float64, len(solution))
	for i, v := range solution {
		if i < len(bp.Bounds) {
			v = bp.Bounds[i].clamp(v)
		}
		out[i] = v
	}
	return out
}

// Initializer samples every gene uniformly from its bounds
func (bp *BoundedPerturbator) Initializer() InitializerFunc[[]float64] {
	return func(rng *rand.Rand) []float64 {
		s := make([]float64, len(bp.Bounds))
		for i, b := range bp.Bounds {
			s[i] = b.Sample(rng)
		}
		return s
	}
}
