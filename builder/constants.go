// Package builder defines shared constants used by the constructors, so that
// method tags and minimum sizes appear in exactly one place.
package builder

// Constructor method names, used to prefix errors.
const (
	MethodChain             = "Chain"
	MethodCycle             = "Cycle"
	MethodStar              = "Star"
	MethodGrid              = "Grid"
	MethodComplete          = "Complete"
	MethodCompleteBipartite = "CompleteBipartite"
	MethodRandomSparse      = "RandomSparse"
	MethodGumbelEvidence    = "GumbelEvidence"
)

// Minimum sizes.
const (
	// MinChainVariables: a chain needs at least one factor.
	MinChainVariables = 2
	// MinCycleVariables: fewer than 3 variables would couple one pair twice.
	MinCycleVariables = 3
	// MinStarVariables: hub plus one leaf.
	MinStarVariables = 2
	// MinGridDim: a 1×1 grid has no factors but is valid.
	MinGridDim = 1
	// MinCompleteVariables: K_1 is a single free variable.
	MinCompleteVariables = 1
	// MinPartition is the smallest side of CompleteBipartite.
	MinPartition = 1
	// MinRandomSparseVariables is the smallest RandomSparse size.
	MinRandomSparseVariables = 1
)

// Probability bounds for RandomSparse, inclusive.
const (
	MinProbability = 0.0
	MaxProbability = 1.0
)
