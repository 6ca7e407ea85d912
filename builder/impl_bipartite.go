// SPDX-License-Identifier: MIT
// Package: loopy/builder
//
// impl_bipartite.go - implementation of CompleteBipartite(m, k), the
// restricted-Boltzmann-machine topology.
//
// Contract:
//   - m ≥ 1 and k ≥ 1 (else ErrTooFewVariables).
//   - Variables: left side <leftPrefix>0..m-1, then right side <rightPrefix>0..k-1
//     (prefixes from WithPartitionPrefix, default "L"/"R").
//   - Factors for every (left i, right j) in (i asc, j asc) order.
//
// Complexity:
//   - Time: O(m·k·card²).

package builder

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/loopy/core"
)

// CompleteBipartite returns a Constructor that couples every left variable
// with every right variable.
func CompleteBipartite(m, k int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if m < MinPartition || k < MinPartition {
			return fmt.Errorf("%s: m=%d, k=%d (each must be ≥ %d): %w",
				MethodCompleteBipartite, m, k, MinPartition, ErrTooFewVariables)
		}
		left, err := addNamedVariables(g, cfg, MethodCompleteBipartite, sideNames(cfg.leftPrefix, m))
		if err != nil {
			return err
		}
		right, err := addNamedVariables(g, cfg, MethodCompleteBipartite, sideNames(cfg.rightPrefix, k))
		if err != nil {
			return err
		}

		return addAllPairs(g, cfg, MethodCompleteBipartite, left, right, false)
	}
}

// sideNames returns prefix0..prefix(n-1).
func sideNames(prefix string, n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = prefix + strconv.Itoa(i)
	}

	return names
}
