// Package wiring compiles a core.Graph into the flat index arrays consumed by
// the message-passing engine.
//
// A Wiring is built once per graph topology and reused across runs with
// different evidence. It never changes after Compile returns and may be shared
// by concurrent runs.
//
// What Compile produces:
//
//	variable layout   VarCard, VarStart, NumVarStates
//	edge layout       EdgeVar, EdgeFactor, EdgePos, EdgeCard, EdgeStart, NumEdgeStates
//	edge-state maps   StateEdge (per-message segments), StateVarState (belief segments)
//	groups            one per factor kind, ascending, each with its compiled kernel.Plan
//
// Every edge carries two message slots: SlotV2F(e) = 2e and SlotF2V(e) = 2e+1.
// Both directions of edge e are stored at EdgeStart[e] .. EdgeStart[e+1]-1 of
// their respective buffers.
//
// Errors:
//
//	ErrNilGraph    – nil graph
//	ErrEmptyGraph  – graph without variables
//	ErrNoKernel    – a factor kind has no registered kernel
package wiring
