// SPDX-License-Identifier: MIT
// Package: loopy/builder
//
// impl_complete.go - implementation of Complete(n), the fully connected
// pairwise model (Sherrington–Kirkpatrick when couplings are Gaussian).
//
// Contract:
//   - n ≥ 1 (else ErrTooFewVariables).
//   - Factors for every unordered pair {i,j}, i<j, in (i asc, j asc) order.
//
// Complexity:
//   - Time: O(n² · card²).

package builder

import (
	"github.com/katalvlaran/loopy/core"
)

// Complete returns a Constructor that couples every pair of n variables.
func Complete(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if err := validateMin(MethodComplete, "n", n, MinCompleteVariables); err != nil {
			return err
		}
		refs, err := addVariables(g, cfg, MethodComplete, n)
		if err != nil {
			return err
		}

		return addAllPairs(g, cfg, MethodComplete, refs, refs, true)
	}
}

// addAllPairs couples every a ∈ left with every b ∈ right. When same is
// true left and right are one set and only pairs with i<j are emitted.
func addAllPairs(g *core.Graph, cfg builderConfig, method string, left, right []core.VariableRef, same bool) error {
	for i, a := range left {
		start := 0
		if same {
			start = i + 1
		}
		for _, b := range right[start:] {
			if err := addCoupling(g, cfg, method, a, b); err != nil {
				return err
			}
		}
	}

	return nil
}
