// SPDX-License-Identifier: MIT

package wiring

import (
	"errors"

	"github.com/katalvlaran/loopy/kernel"
)

var (
	// ErrNoKernel indicates a factor kind with no kernel in the registry.
	// It is the same sentinel as kernel.ErrNoKernel.
	ErrNoKernel = kernel.ErrNoKernel

	// ErrNilGraph indicates a nil *core.Graph passed to Compile.
	ErrNilGraph = errors.New("wiring: nil graph")

	// ErrEmptyGraph indicates a graph without variables.
	ErrEmptyGraph = errors.New("wiring: graph has no variables")

	// ErrBadPlan indicates a compiled plan whose message indices fall
	// outside the buffers or outside its own group.
	ErrBadPlan = errors.New("wiring: plan indexes outside its states")

	// ErrUnknownVariable indicates a variable handle outside the wiring.
	ErrUnknownVariable = errors.New("wiring: unknown variable")

	// ErrUnknownFactor indicates a factor handle or position outside the wiring.
	ErrUnknownFactor = errors.New("wiring: unknown factor or position")
)
