// SPDX-License-Identifier: MIT
// Package: core
//
// validate.go - kind-specific parameter checks used by AddFactor.
//
// Policy:
//   - Validators are pure and allocate only what they return.
//   - They return wrapped sentinels (ErrShapeMismatch, ErrInvalidScope, ...);
//     AddFactor adds the kind prefix.
//   - -Inf is a legal log-potential (forbidden configuration); NaN and +Inf are not.

package core

import (
	"fmt"
	"math"
)

// JointSize returns prod(cards), or ok=false if the product exceeds limit.
// Complexity: O(len(cards)).
func JointSize(cards []int, limit int) (size int, ok bool) {
	size = 1
	for _, c := range cards {
		if c <= 0 || size > limit/c {
			return 0, false
		}
		size *= c
	}

	return size, true
}

// validateParams dispatches on kind. cards are the scope's domain sizes.
func validateParams(kind Kind, cards []int, p Params, maxTable int) error {
	switch kind {
	case KindDense:
		if len(p.Configs) != 0 {
			return fmt.Errorf("dense factor takes no configs: %w", ErrShapeMismatch)
		}
		return validateTable(cards, p.Table, maxTable)

	case KindPairwise:
		if len(cards) != 2 {
			return fmt.Errorf("pairwise factor needs 2 variables, got %d: %w", len(cards), ErrInvalidScope)
		}
		if len(p.Configs) != 0 {
			return fmt.Errorf("pairwise factor takes no configs: %w", ErrShapeMismatch)
		}
		return validateTable(cards, p.Table, maxTable)

	case KindEnumeration:
		return validateConfigs(cards, p)

	case KindOR, KindAND:
		if len(cards) < 2 {
			return fmt.Errorf("logical factor needs ≥1 parent and a child, got %d variables: %w", len(cards), ErrInvalidScope)
		}
		for i, c := range cards {
			if c != 2 {
				return fmt.Errorf("logical factor scope[%d] has %d states, want 2: %w", i, c, ErrShapeMismatch)
			}
		}
		if len(p.Table) != 0 || len(p.Configs) != 0 {
			return fmt.Errorf("logical factor takes no parameters: %w", ErrShapeMismatch)
		}
		return nil
	}

	if kind < KindCustom {
		return fmt.Errorf("kind %d: %w", uint8(kind), ErrUnknownKind)
	}
	// Custom kinds: whatever is present must be shaped like a dense table or an enumeration.
	if len(p.Configs) != 0 {
		return validateConfigs(cards, p)
	}
	if len(p.Table) != 0 {
		return validateTable(cards, p.Table, maxTable)
	}

	return nil
}

// validateTable checks a dense row-major table over cards.
func validateTable(cards []int, table []float64, maxTable int) error {
	size, ok := JointSize(cards, maxTable)
	if !ok {
		return fmt.Errorf("joint of %v exceeds %d entries: %w", cards, maxTable, ErrTableTooLarge)
	}
	if len(table) != size {
		return fmt.Errorf("table has %d entries, scope %v needs %d: %w", len(table), cards, size, ErrShapeMismatch)
	}

	return validatePotentials(table)
}

// validateConfigs checks an explicit configuration list and its potentials.
func validateConfigs(cards []int, p Params) error {
	if len(p.Configs) == 0 {
		return fmt.Errorf("enumeration needs at least one configuration: %w", ErrShapeMismatch)
	}
	if p.Table != nil && len(p.Table) != len(p.Configs) {
		return fmt.Errorf("%d potentials for %d configurations: %w", len(p.Table), len(p.Configs), ErrShapeMismatch)
	}

	seen := make(map[string]int, len(p.Configs))
	for i, cfg := range p.Configs {
		if len(cfg) != len(cards) {
			return fmt.Errorf("config[%d] has %d values, scope has %d: %w", i, len(cfg), len(cards), ErrShapeMismatch)
		}
		for j, x := range cfg {
			if x < 0 || x >= cards[j] {
				return fmt.Errorf("config[%d][%d]=%d outside [0,%d): %w", i, j, x, cards[j], ErrShapeMismatch)
			}
		}
		key := fmt.Sprint(cfg)
		if k, dup := seen[key]; dup {
			return fmt.Errorf("config[%d] repeats config[%d]: %w", i, k, ErrShapeMismatch)
		}
		seen[key] = i
	}
	if p.Table == nil {
		return nil
	}

	return validatePotentials(p.Table)
}

// validatePotentials rejects NaN/+Inf and all -Inf tables.
func validatePotentials(table []float64) error {
	admissible := false
	for i, x := range table {
		if math.IsNaN(x) || math.IsInf(x, 1) {
			return fmt.Errorf("entry %d = %v: %w", i, x, ErrBadPotential)
		}
		if !math.IsInf(x, -1) {
			admissible = true
		}
	}
	if !admissible {
		return fmt.Errorf("all entries are -Inf: %w", ErrBadPotential)
	}

	return nil
}
