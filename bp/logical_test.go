package bp_test

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/loopy/belief"
	"github.com/katalvlaran/loopy/bp"
	"github.com/katalvlaran/loopy/core"
)

// logicalConfigs lists the admissible rows of an OR (or AND) factor over
// arity-1 parents and a trailing child.
func logicalConfigs(kind core.Kind, parents int) [][]int {
	var rows [][]int
	for m := 0; m < 1<<parents; m++ {
		row := make([]int, parents+1)
		on, all := false, true
		for p := 0; p < parents; p++ {
			row[p] = (m >> (parents - 1 - p)) & 1
			on = on || row[p] == 1
			all = all && row[p] == 1
		}
		if (kind == core.KindOR && on) || (kind == core.KindAND && all) {
			row[parents] = 1
		}
		rows = append(rows, row)
	}

	return rows
}

// logicalGraph builds parents, optionally coupled into a loop, and one
// logical factor. When enumerate is true the logical factor is written out
// as an enumeration factor instead.
func logicalGraph(t *testing.T, kind core.Kind, parents int, coupled, enumerate bool) *core.Graph {
	t.Helper()
	rng := rand.New(rand.NewSource(int64(parents)*7 + int64(kind)))
	g := core.NewGraph()
	scope := make([]core.VariableRef, parents+1)
	for i := range scope {
		r, err := g.AddVariable(2)
		require.NoError(t, err)
		scope[i] = r
	}
	for i := 0; coupled && i+1 < parents; i++ {
		addPairwise(t, g, rng, 0.5, scope[i], scope[i+1])
	}
	if enumerate {
		_, err := g.AddFactor(core.KindEnumeration, scope, core.Params{Configs: logicalConfigs(kind, parents)})
		require.NoError(t, err)
	} else {
		_, err := g.AddFactor(kind, scope, core.Params{})
		require.NoError(t, err)
	}

	return g
}

func TestRun_LogicalMatchesEnumeration(t *testing.T) {
	t.Parallel()

	modes := []struct {
		name        string
		mode        bp.Mode
		temperature float64
	}{
		{"sum", bp.SumProduct, 1},
		{"tempered", bp.SumProduct, 0.5},
		{"max", bp.MaxProduct, 0},
	}
	for _, kind := range []core.Kind{core.KindOR, core.KindAND} {
		for _, parents := range []int{1, 2, 4} {
			for _, m := range modes {
				t.Run(fmt.Sprintf("%s/%d/%s", kind, parents, m.name), func(t *testing.T) {
					// max-product only settles reliably on trees
					coupled := m.mode == bp.SumProduct
					closed := mustCompile(t, logicalGraph(t, kind, parents, coupled, false))
					enum := mustCompile(t, logicalGraph(t, kind, parents, coupled, true))
					rng := rand.New(rand.NewSource(int64(parents)))
					ev := randomEvidence(t, closed, rng, 1)
					evEnum := bp.NewEvidence(enum)
					for _, v := range closed.Variables {
						require.NoError(t, evEnum.Set(v.Ref, ev.Of(v.Ref)))
					}

					opts := bp.DefaultOptions()
					opts.Mode = m.mode
					opts.Temperature = m.temperature
					opts.Tolerance = 1e-9
					opts.MaxIterations = 2000
					r1, err := bp.Run(context.Background(), closed, ev, opts)
					require.NoError(t, err)
					r2, err := bp.Run(context.Background(), enum, evEnum, opts)
					require.NoError(t, err)
					require.True(t, r1.Converged)
					require.True(t, r2.Converged)

					b1, err := belief.LogBeliefs(closed, r1.Messages, ev)
					require.NoError(t, err)
					b2, err := belief.LogBeliefs(enum, r2.Messages, evEnum)
					require.NoError(t, err)
					d1, err := belief.Marginals(closed, r1.Messages, ev)
					require.NoError(t, err)
					d2, err := belief.Marginals(enum, r2.Messages, evEnum)
					require.NoError(t, err)

					if diff := cmp.Diff(d2.All(), d1.All(), cmpopts.EquateApprox(0, 1e-4)); diff != "" {
						t.Fatalf("marginals differ (-enumeration +closed form):\n%s", diff)
					}
					if m.mode == bp.MaxProduct {
						a1, _ := belief.MAP(closed, r1.Messages, ev)
						a2, _ := belief.MAP(enum, r2.Messages, evEnum)
						assert.Equal(t, a2, a1, "beliefs %v vs %v", b1, b2)
					}
				})
			}
		}
	}
}

func TestRun_LogicalTreeIsExact(t *testing.T) {
	t.Parallel()

	for _, kind := range []core.Kind{core.KindOR, core.KindAND} {
		t.Run(kind.String(), func(t *testing.T) {
			g := core.NewGraph()
			scope := make([]core.VariableRef, 4)
			for i := range scope {
				r, err := g.AddVariable(2)
				require.NoError(t, err)
				scope[i] = r
			}
			_, err := g.AddFactor(kind, scope, core.Params{})
			require.NoError(t, err)
			w := mustCompile(t, g)
			ev := randomEvidence(t, w, rand.New(rand.NewSource(3)), 2)

			opts := bp.DefaultOptions()
			opts.Damping = 0
			res, err := bp.Run(context.Background(), w, ev, opts)
			require.NoError(t, err)
			require.True(t, res.Converged)

			d, err := belief.Marginals(w, res.Messages, ev)
			require.NoError(t, err)
			if diff := cmp.Diff(exactMarginals(t, g, ev), d.All(), approx); diff != "" {
				t.Fatalf("single %s factor is not exact:\n%s", kind, diff)
			}
		})
	}
}

func TestRunBatch_MatchesSequential(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(77))
	g := chain(t, rng, 2, 3, 3, 2)
	addPairwise(t, g, rng, 1, 3, 0)
	w := mustCompile(t, g)

	evs := make([]*bp.Evidence, 9)
	for i := range evs {
		evs[i] = randomEvidence(t, w, rng, 1)
	}
	evs[4] = nil

	got, err := bp.RunBatch(context.Background(), w, evs, bp.DefaultOptions(), 3)
	require.NoError(t, err)
	require.Len(t, got, len(evs))
	for i, ev := range evs {
		want, err := bp.Run(context.Background(), w, ev, bp.DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, want.Iterations, got[i].Iterations, "item %d", i)
		assert.Equal(t, want.Messages, got[i].Messages, "item %d", i)
	}
}

func TestRunBatch_Errors(t *testing.T) {
	t.Parallel()

	_, w := pairScenario(t)
	good := bp.NewEvidence(w)
	bad := bp.NewEvidence(w)
	require.NoError(t, bad.Set(0, []float64{0, 0}))
	bad.Values()[0] = math.Inf(1)

	_, err := bp.RunBatch(context.Background(), w, []*bp.Evidence{good, bad}, bp.DefaultOptions(), 0)
	assert.ErrorIs(t, err, bp.ErrInvalidEvidence)
	assert.ErrorContains(t, err, "item 1")

	_, err = bp.RunBatch(context.Background(), nil, nil, bp.DefaultOptions(), 1)
	assert.ErrorIs(t, err, bp.ErrNilWiring)

	res, err := bp.RunBatch(context.Background(), w, nil, bp.DefaultOptions(), 1)
	require.NoError(t, err)
	assert.Empty(t, res)
}
