package belief

import (
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/loopy/bp"
	"github.com/katalvlaran/loopy/core"
	"github.com/katalvlaran/loopy/kernel"
)

// Score returns the total log-potential of a joint assignment: the sum of
// every factor's log-potential at the assignment plus the evidence weights.
// A configuration that a factor does not list scores -Inf. reg may be nil
// (built-in kernels).
//
// Complexity: O(F·arity) for table kinds; enumeration and custom kinds pay
// their flattening cost.
func Score(g *core.Graph, a Assignment, ev *bp.Evidence, reg *kernel.Registry) (float64, error) {
	if reg == nil {
		reg = kernel.DefaultRegistry()
	}
	vars, facs := g.Snapshot()
	if len(a) != len(vars) {
		return 0, fmt.Errorf("Score: %d states for %d variables: %w", len(a), len(vars), core.ErrShapeMismatch)
	}
	for v, x := range a {
		if x < 0 || x >= vars[v].Card {
			return 0, fmt.Errorf("Score: %s=%d outside [0,%d): %w", vars[v].Label(), x, vars[v].Card, core.ErrShapeMismatch)
		}
	}

	total := 0.0
	for _, f := range facs {
		pot, err := factorScore(f, vars, a, reg)
		if err != nil {
			return 0, fmt.Errorf("Score: factor %d: %w", f.Ref, err)
		}
		total += pot
	}
	if ev != nil {
		for v, x := range a {
			w := ev.Of(core.VariableRef(v))
			if len(w) != vars[v].Card {
				return 0, fmt.Errorf("Score: evidence for %s: %w", vars[v].Label(), bp.ErrShapeMismatch)
			}
			total += w[x]
		}
	}

	return total, nil
}

// factorScore evaluates one factor at the assignment.
func factorScore(f core.Factor, vars []core.Variable, a Assignment, reg *kernel.Registry) (float64, error) {
	cards := make([]int, len(f.Scope))
	cfg := make([]int, len(f.Scope))
	for p, v := range f.Scope {
		cards[p] = vars[v].Card
		cfg[p] = a[v]
	}

	switch f.Kind {
	case core.KindDense, core.KindPairwise:
		idx := 0
		for p, x := range cfg {
			idx = idx*cards[p] + x
		}
		return f.Params.Table[idx], nil
	case core.KindOR, core.KindAND:
		child := cfg[len(cfg)-1]
		want := 0
		if f.Kind == core.KindAND {
			want = 1
		}
		for _, x := range cfg[:len(cfg)-1] {
			if (f.Kind == core.KindOR && x == 1) || (f.Kind == core.KindAND && x == 0) {
				want = 1 - want
				break
			}
		}
		if child != want {
			return math.Inf(-1), nil
		}
		return 0, nil
	}

	tb, err := reg.FlattenFactor(f, cards)
	if err != nil {
		return 0, err
	}
	for c, row := range tb.Configs {
		if slices.Equal(row, cfg) {
			return tb.LogPotentials[c], nil
		}
	}

	return math.Inf(-1), nil
}
