// SPDX-License-Identifier: MIT
// Package: loopy/builder
//
// impl_grid.go - implementation of Grid(rows, cols), the Ising lattice.
//
// Canonical model:
//   - 2D orthogonal grid with 4-neighbourhood (right and bottom neighbour per cell).
//   - Variable names use the fixed scheme "r,c" (row-major), a deliberate
//     exception to cfg.nameFn so that coordinates stay explicit.
//
// Contract:
//   - rows ≥ 1 and cols ≥ 1 (else ErrTooFewVariables).
//   - Variables in row-major order; for each (r,c) the Right factor, then the Bottom one.
//
// Complexity:
//   - Time: O(rows·cols·card²). Space: O(rows·cols) handles.

package builder

import (
	"fmt"

	"github.com/katalvlaran/loopy/core"
)

const gridNameFmt = "%d,%d"

// GridName returns the name Grid gives to cell (r, c).
func GridName(r, c int) string {
	return fmt.Sprintf(gridNameFmt, r, c)
}

// Grid returns a Constructor that builds a rows×cols pairwise lattice.
func Grid(rows, cols int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if rows < MinGridDim || cols < MinGridDim {
			return fmt.Errorf("%s: rows=%d, cols=%d (each must be ≥ %d): %w",
				MethodGrid, rows, cols, MinGridDim, ErrTooFewVariables)
		}

		names := make([]string, 0, rows*cols)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				names = append(names, GridName(r, c))
			}
		}
		refs, err := addNamedVariables(g, cfg, MethodGrid, names)
		if err != nil {
			return err
		}

		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				u := refs[r*cols+c]
				if c+1 < cols {
					if err = addCoupling(g, cfg, MethodGrid, u, refs[r*cols+c+1]); err != nil {
						return err
					}
				}
				if r+1 < rows {
					if err = addCoupling(g, cfg, MethodGrid, u, refs[(r+1)*cols+c]); err != nil {
						return err
					}
				}
			}
		}

		return nil
	}
}
