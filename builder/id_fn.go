// SPDX-License-Identifier: MIT
// Package: loopy/builder
//
// id_fn.go - deterministic variable naming schemes.
//
// A NameFn maps a variable's index (its VariableRef) to a name. Schemes that
// cannot represent an index panic, as option-time programmer errors do.

package builder

import (
	"fmt"
	"strconv"
)

// NameFn maps a zero-based variable index to a unique name.
type NameFn func(idx int) string

// DecimalNameFn returns "0", "1", "2", ...
func DecimalNameFn(idx int) string {
	return strconv.Itoa(idx)
}

// SymbolNameFn returns "A".."Z" for idx in [0,25].
func SymbolNameFn(idx int) string {
	if idx < 0 || idx > 25 {
		panic(fmt.Sprintf("SymbolNameFn: idx must be in [0,25], got %d", idx))
	}
	return string('A' + rune(idx))
}

// ExcelColumnNameFn returns "A".."Z", "AA", "AB", ...
func ExcelColumnNameFn(idx int) string {
	if idx < 0 {
		panic(fmt.Sprintf("ExcelColumnNameFn: idx must be ≥ 0, got %d", idx))
	}
	var runes []rune
	for i := idx; i >= 0; i = i/26 - 1 {
		runes = append(runes, rune('A'+(i%26)))
	}
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}

	return string(runes)
}

// PrefixNameFn returns prefix+idx ("x0", "x1", ...).
func PrefixNameFn(prefix string) NameFn {
	return func(idx int) string {
		if idx < 0 {
			panic(fmt.Sprintf("PrefixNameFn: idx must be ≥ 0, got %d", idx))
		}
		return prefix + strconv.Itoa(idx)
	}
}

// WithPrefixNames names variables prefix0, prefix1, ...
func WithPrefixNames(prefix string) BuilderOption {
	return WithNameScheme(PrefixNameFn(prefix))
}

// WithSymbolNames names variables A..Z.
func WithSymbolNames() BuilderOption {
	return WithNameScheme(SymbolNameFn)
}

// WithExcelColumnNames names variables A, B, ..., Z, AA, AB, ...
func WithExcelColumnNames() BuilderOption {
	return WithNameScheme(ExcelColumnNameFn)
}
