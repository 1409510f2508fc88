package parameter

// Genetic shot search
const (
	// GAPoolSize is the number of candidates in each population
	GAPoolSize = 32

	// GAEliteCount is preserved best performers per generation
	GAEliteCount = 4

	// GATournamentSize is the number of candidates competing for each parent slot
	GATournamentSize = 3

	// GAPerturbationRate is the per-gene mutation probability (0.0-1.0)
	GAPerturbationRate = 0.3

	// GAPerturbationStrength is the mutation standard deviation as a fraction of the gene range
	GAPerturbationStrength = 0.1

	// GABlendAlpha widens blend crossover beyond the parents' interval
	GABlendAlpha = 0.3

	// GAMaxIterations caps the generations of one search
	GAMaxIterations = 40
)
