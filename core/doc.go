// Package core provides a thread-safe, in-memory discrete factor graph with a
// minimal, composable API surface.
//
// The graph G = (V, F, E) is bipartite:
//
//   - Variables (V) are discrete random variables with a fixed domain size.
//   - Factors (F) are local log-compatibility functions over an ordered scope
//     of distinct variables, tagged with a Kind that selects their kernel.
//   - Edges (E) are the (factor, position) pairs; they are not allocated, the
//     wiring compiler indexes them.
//
// Why use core.Graph?
//
//   - Append-only arenas: handles are integer offsets, insertion order is the
//     layout order of every downstream flat array.
//   - All-or-nothing construction: a failing AddFactor leaves the graph untouched.
//   - Deep copies on the way in and out: stored factors cannot be mutated by callers.
//
// Factor kinds:
//
//	KindDense        full joint table, row-major (last scope entry fastest)
//	KindEnumeration  explicit configurations + one log-potential each
//	KindPairwise     dense table over exactly two variables
//	KindOR / KindAND logical constraint, binary variables, child last
//	KindCustom+      user kernels registered in the kernel package
//
// Core Methods:
//
//	AddVariable(card int, opts ...VariableOption) (VariableRef, error)        // O(1)
//	AddFactor(kind Kind, scope []VariableRef, p Params, ...) (FactorRef, error) // O(|scope|+|p|)
//	Variable(ref) / Factor(ref) / Lookup(name)                                 // O(1)
//	Variables() / Factors()                                                    // insertion order
//	FactorsOf(ref) []FactorRef                                                 // O(deg)
//	Stats() *GraphStats                                                        // O(V+E)
//	Clone() / CloneEmpty()
//
// Errors:
//
//	ErrBadDomain       – domain size < 1
//	ErrDuplicateName   – variable name already taken
//	ErrUnknownVariable – no such handle or name
//	ErrInvalidScope    – empty, unknown entry, duplicate entry, kind arity
//	ErrShapeMismatch   – params disagree with the scope's domain sizes
//	ErrBadPotential    – NaN/+Inf entry or no admissible configuration
//	ErrTableTooLarge   – dense joint above WithMaxTableSize
//	ErrUnknownKind     – kind neither built-in nor custom
package core
