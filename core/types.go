// Package core defines the central Graph, Variable and Factor types of a
// discrete factor graph, and provides thread-safe primitives for building
// and querying it.
//
// Variables and factors live in append-only arenas: AddVariable and AddFactor
// return integer handles (VariableRef, FactorRef) that are plain offsets into
// those arenas. Insertion order is therefore significant: it fixes the flat
// layout produced by the wiring compiler and the order of every exported
// result array.
//
// All core APIs use a single sync.RWMutex, so a graph can be authored from
// several goroutines. Once authoring is done the graph is only read.
package core

import (
	"fmt"
	"strings"
	"sync"
)

// VariableRef is a stable handle of a Variable inside its Graph.
// It equals the insertion index of the variable.
type VariableRef int

// FactorRef is a stable handle of a Factor inside its Graph.
// It equals the insertion index of the factor.
type FactorRef int

// NoVariable is returned together with an error when no handle applies.
const NoVariable VariableRef = -1

// NoFactor is returned together with an error when no handle applies.
const NoFactor FactorRef = -1

// Kind tags a factor with the kernel variant that evaluates it.
//
// Kinds are a closed enumeration for the built-in kernels; values starting at
// KindCustom are reserved for user kernels registered with the kernel package.
type Kind uint8

const (
	// KindDense is an arbitrary log-potential table over the full joint of the
	// scope, row-major with the last scope entry varying fastest.
	KindDense Kind = iota

	// KindEnumeration lists the valid configurations explicitly, one
	// log-potential per configuration. Missing configurations have potential -Inf.
	KindEnumeration

	// KindPairwise is a dense table over exactly two variables.
	KindPairwise

	// KindOR constrains child = OR(parents) over binary variables.
	// The child is the last scope entry.
	KindOR

	// KindAND constrains child = AND(parents) over binary variables.
	// The child is the last scope entry.
	KindAND

	kindBuiltinEnd
)

// KindCustom is the first Kind value available for user-defined kernels.
const KindCustom Kind = 64

var kindNames = [...]string{
	KindDense:       "dense",
	KindEnumeration: "enumeration",
	KindPairwise:    "pairwise",
	KindOR:          "or",
	KindAND:         "and",
}

// String returns the lower-case name of a built-in kind, or "custom(N)".
func (k Kind) String() string {
	if k < kindBuiltinEnd {
		return kindNames[k]
	}

	return fmt.Sprintf("custom(%d)", uint8(k))
}

// IsBuiltin reports whether k is one of the kinds shipped with the library.
func (k Kind) IsBuiltin() bool { return k < kindBuiltinEnd }

// IsLogical reports whether k is a logical (OR/AND) kind.
func (k Kind) IsLogical() bool { return k == KindOR || k == KindAND }

// ParseKind resolves a kind name as produced by Kind.String (case-insensitive).
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}

	return 0, fmt.Errorf("ParseKind(%q): %w", s, ErrUnknownKind)
}

// Params carries kind-specific factor parameters.
//
//   - Dense / Pairwise: Table holds prod(cards) log-potentials.
//   - Enumeration: Configs lists valid configurations (one value per scope
//     entry); Table holds one log-potential per configuration (nil ⇒ all zero).
//   - OR / AND: no parameters.
type Params struct {
	Table   []float64
	Configs [][]int
}

// clone returns a deep copy so that callers cannot mutate stored factors.
func (p Params) clone() Params {
	var out Params
	if p.Table != nil {
		out.Table = append([]float64(nil), p.Table...)
	}
	if p.Configs != nil {
		out.Configs = make([][]int, len(p.Configs))
		for i, c := range p.Configs {
			out.Configs[i] = append([]int(nil), c...)
		}
	}

	return out
}

// Variable is a discrete random variable with Card states.
type Variable struct {
	// Ref is the handle of this variable (its insertion index).
	Ref VariableRef

	// Name is optional; when set it is unique within the Graph.
	Name string

	// Card is the domain size (number of states), Card ≥ 1.
	Card int
}

// Label returns Name if set, otherwise "v<Ref>".
func (v Variable) Label() string {
	if v.Name != "" {
		return v.Name
	}

	return fmt.Sprintf("v%d", int(v.Ref))
}

// Factor is a local log-compatibility function over an ordered scope.
type Factor struct {
	// Ref is the handle of this factor (its insertion index).
	Ref FactorRef

	// Name is an optional label used in diagnostics.
	Name string

	// Kind selects the kernel variant.
	Kind Kind

	// Scope lists distinct variables; position i is edge (Ref, i).
	Scope []VariableRef

	// Params are the kind-specific parameters.
	Params Params
}

// Arity returns the number of scope entries.
func (f Factor) Arity() int { return len(f.Scope) }

// clone returns a deep copy of the factor.
func (f Factor) clone() Factor {
	out := f
	out.Scope = append([]VariableRef(nil), f.Scope...)
	out.Params = f.Params.clone()

	return out
}

// GraphOption configures a Graph before creation.
type GraphOption func(g *Graph)

// WithMaxTableSize caps the number of entries a dense or pairwise table may
// hold. Non-positive values keep DefaultMaxTableSize.
func WithMaxTableSize(n int) GraphOption {
	return func(g *Graph) {
		if n > 0 {
			g.maxTable = n
		}
	}
}

// VariableOption configures a single AddVariable call.
type VariableOption func(v *Variable)

// WithName assigns a unique name to the variable.
func WithName(name string) VariableOption {
	return func(v *Variable) { v.Name = name }
}

// FactorOption configures a single AddFactor call.
type FactorOption func(f *Factor)

// WithFactorName assigns a diagnostic label to the factor.
func WithFactorName(name string) FactorOption {
	return func(f *Factor) { f.Name = name }
}

// DefaultMaxTableSize is the largest dense table accepted by default (2^24 entries).
const DefaultMaxTableSize = 1 << 24

// Graph is the in-memory factor graph.
//
// mu guards every field below it. variables and factors are append-only;
// incident[v] lists the factors touching variable v in insertion order.
type Graph struct {
	mu sync.RWMutex

	maxTable int // upper bound for prod(cards) of dense tables

	variables []Variable
	factors   []Factor
	byName    map[string]VariableRef
	incident  [][]FactorRef
	numEdges  int
}

// NewGraph creates an empty Graph.
// Complexity: O(len(opts)).
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		maxTable: DefaultMaxTableSize,
		byName:   make(map[string]VariableRef),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}
