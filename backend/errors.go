// SPDX-License-Identifier: MIT
// Package: backend
//
// Sentinel errors. Primitives panic with them on programmer errors; the
// validators return them wrapped.

package backend

import "errors"

var (
	// ErrDimensionMismatch indicates buffers or index arrays of incompatible lengths.
	ErrDimensionMismatch = errors.New("backend: dimension mismatch")

	// ErrIndexOutOfRange indicates an index array entry outside its target buffer.
	ErrIndexOutOfRange = errors.New("backend: index out of range")
)
