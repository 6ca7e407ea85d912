// SPDX-License-Identifier: MIT

package kernel

import "errors"

var (
	// ErrNoKernel indicates a factor kind with no registered kernel.
	ErrNoKernel = errors.New("kernel: no kernel registered for kind")

	// ErrDuplicateKernel indicates a second registration for the same kind.
	ErrDuplicateKernel = errors.New("kernel: kind already registered")

	// ErrBadInstance indicates a compile batch whose shapes are inconsistent.
	ErrBadInstance = errors.New("kernel: malformed instance")
)
