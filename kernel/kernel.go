// SPDX-License-Identifier: MIT
// Package: kernel
//
// kernel.go - the Kernel / Plan contract and the per-kind registry.
//
// A Kernel turns every factor of one Kind into a compiled Plan: flat index
// arrays that let one Update call compute all outgoing factor-to-variable
// messages of the group with a handful of backend primitives.

package kernel

import (
	"fmt"
	"sort"
	"sync"

	"github.com/katalvlaran/loopy/backend"
	"github.com/katalvlaran/loopy/core"
)

// Instance is one factor as seen by its kernel at compile time.
//
// StateStart[p] is the offset, in the flat message buffers, of the first
// state of the edge at scope position p; the message entry for value x of
// that position is StateStart[p]+x in both the v2f and f2v buffers.
// NumStates is the length of those buffers; 0 leaves the upper bound
// unchecked.
type Instance struct {
	Factor     core.FactorRef
	Cards      []int
	Params     core.Params
	StateStart []int
	NumStates  int
}

// Table is the enumeration form of a factor: the admissible configurations
// and one log-potential each. Every kind can be flattened into a Table.
type Table struct {
	Configs       [][]int
	LogPotentials []float64
}

// Plan evaluates the factor-to-variable update for one group of factors.
// Plans are immutable after compilation and safe for concurrent Update calls.
type Plan interface {
	// Update reads v2f and overwrites the f2v entries of every edge owned by
	// the plan. temperature 0 selects max-product, T > 0 sum-product at T.
	// Outputs may contain -Inf; the engine floors and normalizes them.
	Update(be backend.Backend, v2f, f2v []float64, temperature float64) error

	// Entries is the number of flat work items touched per Update.
	Entries() int
}

// Indexed is implemented by plans that can list the message entries they
// read from v2f and write to f2v. wiring.Compile checks both lists against
// the layout; every built-in plan implements it.
type Indexed interface {
	Indices() (reads, writes []int)
}

// Kernel is the per-kind variant: flattening for reference computations,
// compilation of a batch of instances into a Plan.
type Kernel interface {
	Kind() core.Kind
	Flatten(cards []int, p core.Params) (Table, error)
	Compile(insts []Instance) (Plan, error)
}

// Registry maps kinds to kernels. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	kernels map[core.Kind]Kernel
}

// NewRegistry returns a registry holding ks. Duplicate kinds are an error.
func NewRegistry(ks ...Kernel) (*Registry, error) {
	r := &Registry{kernels: make(map[core.Kind]Kernel, len(ks))}
	for _, k := range ks {
		if err := r.Register(k); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// DefaultRegistry returns a fresh registry with every built-in kernel.
func DefaultRegistry() *Registry {
	r := &Registry{kernels: make(map[core.Kind]Kernel)}
	for _, k := range Builtins() {
		r.kernels[k.Kind()] = k
	}

	return r
}

// Builtins returns one instance of every built-in kernel, in kind order.
func Builtins() []Kernel {
	return []Kernel{Dense{}, Enumeration{}, Pairwise{}, OR{}, AND{}}
}

// Register adds k. Registering a kind twice is an error.
func (r *Registry) Register(k Kernel) error {
	if k == nil {
		return fmt.Errorf("Register: nil kernel: %w", ErrBadInstance)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.kernels[k.Kind()]; dup {
		return fmt.Errorf("Register(%s): %w", k.Kind(), ErrDuplicateKernel)
	}
	r.kernels[k.Kind()] = k

	return nil
}

// Lookup returns the kernel registered for kind.
func (r *Registry) Lookup(kind core.Kind) (Kernel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	k, ok := r.kernels[kind]

	return k, ok
}

// Kinds returns the registered kinds in ascending order.
func (r *Registry) Kinds() []core.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]core.Kind, 0, len(r.kernels))
	for k := range r.kernels {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// FlattenFactor flattens f through the kernel registered for its kind.
// cards are the domain sizes of f.Scope.
func (r *Registry) FlattenFactor(f core.Factor, cards []int) (Table, error) {
	k, ok := r.Lookup(f.Kind)
	if !ok {
		return Table{}, fmt.Errorf("FlattenFactor(%s): %w", f.Kind, ErrNoKernel)
	}

	return k.Flatten(cards, f.Params)
}

// checkInstances validates the shape of a compile batch.
func checkInstances(op string, insts []Instance) error {
	for i, in := range insts {
		if len(in.Cards) == 0 || len(in.Cards) != len(in.StateStart) {
			return fmt.Errorf("%s: instance %d: %d cards, %d offsets: %w", op, i, len(in.Cards), len(in.StateStart), ErrBadInstance)
		}
		for p, c := range in.Cards {
			if c < 1 || in.StateStart[p] < 0 {
				return fmt.Errorf("%s: instance %d position %d: %w", op, i, p, ErrBadInstance)
			}
			if in.NumStates > 0 && in.StateStart[p]+c > in.NumStates {
				return fmt.Errorf("%s: instance %d position %d: states [%d,%d) beyond %d: %w",
					op, i, p, in.StateStart[p], in.StateStart[p]+c, in.NumStates, ErrBadInstance)
			}
		}
	}

	return nil
}

// numStates returns the buffer length declared by insts, or 0 when none does.
func numStates(insts []Instance) int {
	n := 0
	for _, in := range insts {
		n = max(n, in.NumStates)
	}

	return n
}
