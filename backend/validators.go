// SPDX-License-Identifier: MIT
// Package: backend
//
// Purpose:
//   - Single source of truth for the index-array checks performed when plans
//     are compiled (kernel.NewTablePlan, wiring.Compile), so that the
//     hot-path primitives can trust their inputs.
//   - Return wrapped sentinels; callers add their own operation prefix.

package backend

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateIndex ensures every idx[i] lies in [0, n).
// Complexity: O(len(idx)).
func ValidateIndex(idx []int, n int) error {
	if err := checkRange(idx, 0, n); err != nil {
		return validatorErrorf("ValidateIndex", err)
	}

	return nil
}

// ValidateIndexRange ensures every idx[i] lies in [lo, hi).
// Complexity: O(len(idx)).
func ValidateIndexRange(idx []int, lo, hi int) error {
	if err := checkRange(idx, lo, hi); err != nil {
		return validatorErrorf("ValidateIndexRange", err)
	}

	return nil
}

func checkRange(idx []int, lo, hi int) error {
	for i, j := range idx {
		if j < lo || j >= hi {
			return fmt.Errorf("idx[%d]=%d not in [%d,%d): %w", i, j, lo, hi, ErrIndexOutOfRange)
		}
	}

	return nil
}

// ValidateSegments ensures seg has the same length as the data it partitions
// and that every segment id lies in [0, nseg).
// Complexity: O(len(seg)).
func ValidateSegments(seg []int, dataLen, nseg int) error {
	if len(seg) != dataLen {
		return validatorErrorf("ValidateSegments", fmt.Errorf("%d segment ids for %d values: %w", len(seg), dataLen, ErrDimensionMismatch))
	}

	return ValidateIndex(seg, nseg)
}

// ValidateOffsets ensures off is a non-decreasing sequence from 0 to n.
// Complexity: O(len(off)).
func ValidateOffsets(off []int, n int) error {
	if len(off) == 0 || off[0] != 0 || off[len(off)-1] != n {
		return validatorErrorf("ValidateOffsets", ErrDimensionMismatch)
	}
	for k := 1; k < len(off); k++ {
		if off[k] < off[k-1] {
			return validatorErrorf("ValidateOffsets", fmt.Errorf("off[%d]=%d < off[%d]=%d: %w", k, off[k], k-1, off[k-1], ErrDimensionMismatch))
		}
	}

	return nil
}
