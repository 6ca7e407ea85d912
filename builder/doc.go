// Package builder provides functional-options constructors for reproducible
// factor-graph fixtures: the topologies loopy belief propagation is usually
// exercised on, plus random evidence for them.
//
// Components:
//
//   - Orchestration:
//     – BuildGraph(gopts, bopts, cons...) creates a graph and applies constructors in order.
//     – Apply(g, bopts, cons...) applies constructors to an existing graph.
//   - Topologies (pairwise couplings, one factor per edge):
//     – Chain, Cycle, Star, Grid (Ising lattice), Complete, CompleteBipartite, RandomSparse.
//   - Coupling strengths (CouplingFn):
//     – DefaultCouplingFn, ConstantCouplingFn, UniformCouplingFn, NormalCouplingFn.
//     – Binary variables get the Ising table j·s_a·s_b; larger domains the Potts table.
//   - Variable names (NameFn):
//     – DecimalNameFn, SymbolNameFn, ExcelColumnNameFn, PrefixNameFn; unnamed by default.
//   - Evidence:
//     – GumbelEvidence, GumbelBatch.
//
// Guarantees:
//
//   - Fast-fail on invalid option parameters via panics in option constructors.
//   - Constructors validate before mutating and return wrapped sentinels
//     (ErrTooFewVariables, ErrInvalidProbability, ErrNeedRandSource, ...).
//   - Same seed, options and constructor order ⇒ identical graphs and evidence.
//
// Example:
//
//	g, err := builder.BuildGraph(nil,
//		[]builder.BuilderOption{builder.WithSeed(7), builder.WithCouplingFn(builder.NormalCouplingFn(0, 0.3))},
//		builder.Grid(16, 16))
package builder
