package bp_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/loopy/belief"
	"github.com/katalvlaran/loopy/bp"
	"github.com/katalvlaran/loopy/core"
	"github.com/katalvlaran/loopy/wiring"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// exactMarginals enumerates every joint assignment of g and returns the
// exact marginals.
func exactMarginals(t *testing.T, g *core.Graph, ev *bp.Evidence) [][]float64 {
	t.Helper()
	vars := g.Variables()
	cards := make([]int, len(vars))
	for i, v := range vars {
		cards[i] = v.Card
	}
	total, ok := core.JointSize(cards, 1<<20)
	require.True(t, ok, "graph too large for enumeration")

	logs := make([][][]float64, len(vars)) // logs[v][x] collects scores
	for v := range logs {
		logs[v] = make([][]float64, cards[v])
	}
	a := make(belief.Assignment, len(vars))
	for i := 0; i < total; i++ {
		rem := i
		for v := len(vars) - 1; v >= 0; v-- {
			a[v] = rem % cards[v]
			rem /= cards[v]
		}
		s, err := belief.Score(g, a, ev, nil)
		require.NoError(t, err)
		for v, x := range a {
			logs[v][x] = append(logs[v][x], s)
		}
	}

	out := make([][]float64, len(vars))
	for v := range out {
		lse := make([]float64, cards[v])
		for x := range lse {
			lse[x] = logSumExp(logs[v][x])
		}
		norm := floats.LogSumExp(lse)
		out[v] = make([]float64, cards[v])
		for x := range lse {
			out[v][x] = math.Exp(lse[x] - norm)
		}
	}

	return out
}

func logSumExp(xs []float64) float64 {
	if len(xs) == 0 {
		return math.Inf(-1)
	}

	return floats.LogSumExp(xs)
}

// addPairwise adds a pairwise factor with a random table.
func addPairwise(t *testing.T, g *core.Graph, rng *rand.Rand, scale float64, a, b core.VariableRef) {
	t.Helper()
	va, _ := g.Variable(a)
	vb, _ := g.Variable(b)
	table := make([]float64, va.Card*vb.Card)
	for i := range table {
		table[i] = rng.NormFloat64() * scale
	}
	_, err := g.AddFactor(core.KindPairwise, []core.VariableRef{a, b}, core.Params{Table: table})
	require.NoError(t, err)
}

// randomEvidence draws Gaussian log-weights for every variable of w.
func randomEvidence(t *testing.T, w *wiring.Wiring, rng *rand.Rand, scale float64) *bp.Evidence {
	t.Helper()
	ev := bp.NewEvidence(w)
	for _, v := range w.Variables {
		ws := make([]float64, v.Card)
		for i := range ws {
			ws[i] = rng.NormFloat64() * scale
		}
		require.NoError(t, ev.Set(v.Ref, ws))
	}

	return ev
}

// chain builds x0 - x1 - ... - x(n-1) with the given domain sizes.
func chain(t *testing.T, rng *rand.Rand, cards ...int) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	refs := make([]core.VariableRef, len(cards))
	for i, c := range cards {
		r, err := g.AddVariable(c)
		require.NoError(t, err)
		refs[i] = r
	}
	for i := 0; i+1 < len(refs); i++ {
		addPairwise(t, g, rng, 1, refs[i], refs[i+1])
	}

	return g
}

func mustCompile(t *testing.T, g *core.Graph) *wiring.Wiring {
	t.Helper()
	w, err := wiring.Compile(g)
	require.NoError(t, err)

	return w
}
