// SPDX-License-Identifier: MIT
// Package: loopy/builder
//
// impl_star.go - implementation of Star(n).
//
// Contract:
//   - n ≥ 2 (else ErrTooFewVariables).
//   - The first added variable is the hub; factors hub — leaf_i in leaf order.
//
// Complexity:
//   - Time: O(n · card²).

package builder

import (
	"github.com/katalvlaran/loopy/core"
)

// Star returns a Constructor that couples one hub variable to n-1 leaves.
func Star(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if err := validateMin(MethodStar, "n", n, MinStarVariables); err != nil {
			return err
		}
		refs, err := addVariables(g, cfg, MethodStar, n)
		if err != nil {
			return err
		}
		hub := refs[0]
		for _, leaf := range refs[1:] {
			if err = addCoupling(g, cfg, MethodStar, hub, leaf); err != nil {
				return err
			}
		}

		return nil
	}
}
