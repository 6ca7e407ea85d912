// SPDX-License-Identifier: MIT
// Package: loopy/builder
//
// impl_random_sparse.go - implementation of RandomSparse(n, p).
//
// Canonical model:
//   - Erdős–Rényi-like generator: couple each unordered pair {i,j}, i<j,
//     independently with probability p.
//
// Contract:
//   - n ≥ 1 (else ErrTooFewVariables).
//   - 0 ≤ p ≤ 1 (else ErrInvalidProbability).
//   - cfg.rng is required when 0 < p < 1 (else ErrNeedRandSource); p ∈ {0,1}
//     is deterministic without one.
//
// Complexity:
//   - Time: O(n²) Bernoulli trials + O(|factors|·card²).
//
// Determinism:
//   - Stable trial order: i asc, then j asc. Each accepted pair draws its
//     coupling right after its trial, from the same stream.

package builder

import (
	"fmt"

	"github.com/katalvlaran/loopy/core"
)

// RandomSparse returns a Constructor that samples a sparse pairwise model.
func RandomSparse(n int, p float64) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if err := validateMin(MethodRandomSparse, "n", n, MinRandomSparseVariables); err != nil {
			return err
		}
		if err := validateProbability(MethodRandomSparse, p); err != nil {
			return err
		}
		if cfg.rng == nil && p > MinProbability && p < MaxProbability {
			return fmt.Errorf("%s: rng is required: %w", MethodRandomSparse, ErrNeedRandSource)
		}

		refs, err := addVariables(g, cfg, MethodRandomSparse, n)
		if err != nil {
			return err
		}
		if p == MinProbability {
			return nil
		}
		if cfg.rng == nil {
			return addAllPairs(g, cfg, MethodRandomSparse, refs, refs, true)
		}

		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if cfg.rng.Float64() >= p {
					continue
				}
				if err = addCoupling(g, cfg, MethodRandomSparse, refs[i], refs[j]); err != nil {
					return err
				}
			}
		}

		return nil
	}
}
