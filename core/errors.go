// SPDX-License-Identifier: MIT
// Package core: sentinel error set.
//
// Every message is prefixed with "core: ..." for consistency. Methods wrap
// these sentinels with the operation name and offending position
// (fmt.Errorf("AddFactor: scope[%d]: %w", i, ErrInvalidScope)); callers match
// with errors.Is.

package core

import "errors"

var (
	// ErrBadDomain indicates a variable domain size below 1.
	ErrBadDomain = errors.New("core: domain size must be >= 1")

	// ErrDuplicateName indicates a variable name that is already taken.
	ErrDuplicateName = errors.New("core: duplicate variable name")

	// ErrUnknownVariable indicates a lookup of a handle or name that does not exist.
	ErrUnknownVariable = errors.New("core: unknown variable")

	// ErrUnknownFactor indicates a lookup of a factor handle that does not exist.
	ErrUnknownFactor = errors.New("core: unknown factor")

	// ErrInvalidScope indicates a malformed factor scope: empty, referencing an
	// unknown variable, containing a duplicate, or violating the kind's arity.
	ErrInvalidScope = errors.New("core: invalid factor scope")

	// ErrShapeMismatch indicates parameters whose dimensions disagree with the
	// domain sizes of the scope.
	ErrShapeMismatch = errors.New("core: shape mismatch")

	// ErrBadPotential indicates a NaN or +Inf log-potential, or a factor whose
	// entries are all -Inf (no admissible configuration).
	ErrBadPotential = errors.New("core: invalid log-potential")

	// ErrTableTooLarge indicates a dense table above the graph's size cap.
	ErrTableTooLarge = errors.New("core: dense table too large")

	// ErrUnknownKind indicates a kind value that is neither built-in nor custom.
	ErrUnknownKind = errors.New("core: unknown factor kind")
)
