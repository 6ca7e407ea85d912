// Package builder: internal helpers shared by the constructors.
//
// Design principles:
//   - Single responsibility: add variables, build coupling tables, add couplings.
//   - Error context: every failure is wrapped with the constructor name.
package builder

import (
	"fmt"

	"github.com/katalvlaran/loopy/core"
)

// addVariables appends n variables of cfg.card states. Names come from
// cfg.nameFn evaluated at each new variable's index, so constructors can be
// composed without name clashes.
//
// Complexity: O(n).
func addVariables(g *core.Graph, cfg builderConfig, method string, n int) ([]core.VariableRef, error) {
	base := g.NumVariables()
	refs := make([]core.VariableRef, n)
	for i := 0; i < n; i++ {
		var opts []core.VariableOption
		if cfg.nameFn != nil {
			opts = append(opts, core.WithName(cfg.nameFn(base+i)))
		}
		ref, err := g.AddVariable(cfg.card, opts...)
		if err != nil {
			return nil, fmt.Errorf("%s: AddVariable(#%d): %w", method, base+i, err)
		}
		refs[i] = ref
	}

	return refs, nil
}

// addNamedVariables appends one variable per name.
func addNamedVariables(g *core.Graph, cfg builderConfig, method string, names []string) ([]core.VariableRef, error) {
	refs := make([]core.VariableRef, len(names))
	for i, name := range names {
		ref, err := g.AddVariable(cfg.card, core.WithName(name))
		if err != nil {
			return nil, fmt.Errorf("%s: AddVariable(%s): %w", method, name, err)
		}
		refs[i] = ref
	}

	return refs, nil
}

// CouplingTable returns the card×card row-major log-potential table of a
// coupling of strength j. Binary variables get the Ising form
// j·s_a·s_b with s = ±1; larger domains get the Potts form (j on the
// diagonal, 0 elsewhere).
//
// Complexity: O(card²).
func CouplingTable(card int, j float64) []float64 {
	if card == 2 {
		return []float64{j, -j, -j, j}
	}
	table := make([]float64, card*card)
	for s := 0; s < card; s++ {
		table[s*card+s] = j
	}

	return table
}

// addCoupling adds one pairwise factor between a and b with a drawn strength.
func addCoupling(g *core.Graph, cfg builderConfig, method string, a, b core.VariableRef) error {
	j := cfg.coupling()
	_, err := g.AddFactor(core.KindPairwise, []core.VariableRef{a, b}, core.Params{Table: CouplingTable(cfg.card, j)})
	if err != nil {
		return fmt.Errorf("%s: AddFactor(%d—%d, J=%g): %w", method, a, b, j, err)
	}

	return nil
}
