// SPDX-License-Identifier: MIT
// Package: loopy/builder
//
// impl_chain.go - implementation of Chain(n) and Cycle(n).
//
// Contract:
//   - Chain: n ≥ 2, factors x_i — x_{i+1} for i = 0..n-2.
//   - Cycle: n ≥ 3, the chain plus the closing factor x_{n-1} — x_0.
//   - Variables are added in ascending index order; factors in ascending i.
//
// Complexity:
//   - Time: O(n · card²). Space: O(n) for the handle slice.
//
// Determinism:
//   - Coupling strengths are drawn in factor order from cfg.rng.

package builder

import (
	"github.com/katalvlaran/loopy/core"
)

// Chain returns a Constructor that builds a pairwise chain over n variables.
// A chain is a tree, so belief propagation on it is exact.
func Chain(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if err := validateMin(MethodChain, "n", n, MinChainVariables); err != nil {
			return err
		}
		refs, err := addVariables(g, cfg, MethodChain, n)
		if err != nil {
			return err
		}
		for i := 0; i+1 < n; i++ {
			if err = addCoupling(g, cfg, MethodChain, refs[i], refs[i+1]); err != nil {
				return err
			}
		}

		return nil
	}
}

// Cycle returns a Constructor that builds a ring of n variables, the
// smallest loopy topology.
func Cycle(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if err := validateMin(MethodCycle, "n", n, MinCycleVariables); err != nil {
			return err
		}
		refs, err := addVariables(g, cfg, MethodCycle, n)
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err = addCoupling(g, cfg, MethodCycle, refs[i], refs[(i+1)%n]); err != nil {
				return err
			}
		}

		return nil
	}
}
