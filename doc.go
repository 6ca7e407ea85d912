// Package loopy is loopy belief propagation for discrete factor graphs:
// author a graph of variables and factors, compile it once into a flat
// message layout, and run synchronous sum-product or max-product message
// passing over it as many times as you like with different evidence.
//
// Packages:
//
//	core/     - Graph, Variable, Factor, Kind; thread-safe authoring and validation
//	kernel/   - per-kind factor kernels (dense, enumeration, pairwise, OR, AND) and a registry for custom kinds
//	backend/  - numeric primitives (segment sums, range max/logsumexp, normalization)
//	wiring/   - compiles a Graph into edge slots, state ranges and per-kind gather/scatter plans
//	bp/       - the iteration engine: Run, RunBatch, Evidence, Messages, Options
//	belief/   - marginals, log beliefs, MAP assignments and joint scores from final messages
//	builder/  - lattice, chain, star, complete, bipartite and random topologies plus random evidence
//	modelio/  - YAML model documents
//	cmd/lbp/  - command-line front end
//
// Quick example:
//
//	  A ──[pair]── B
//
//	g := core.NewGraph()
//	a, _ := g.AddVariable(2, core.WithName("A"))
//	b, _ := g.AddVariable(2, core.WithName("B"))
//	g.AddFactor(core.KindPairwise, []core.VariableRef{a, b}, core.Params{Table: []float64{0, 0, 0, 5}})
//	w, _ := wiring.Compile(g)
//	res, _ := bp.Run(ctx, w, nil, bp.DefaultOptions())
//	marg, _ := belief.Marginals(w, res.Messages, nil) // A: [0.0132 0.9868]
//
// All potentials and messages are log-domain. On trees the fixed point is
// exact; on loopy graphs it is the usual Bethe approximation and convergence
// is not guaranteed, which Result.Reason reports rather than an error.
//
//	go get github.com/katalvlaran/loopy
package loopy
