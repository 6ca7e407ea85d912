// SPDX-License-Identifier: MIT
// Package: wiring
//
// compile.go - Graph → Wiring.
//
// Implementation:
//   - Stage 1: Snapshot the graph under one read lock.
//   - Stage 2: Variable layout (VarCard, VarStart).
//   - Stage 3: Partition factors by kind, ascending; resolve kernels.
//   - Stage 4: Edge layout group by group; per-edge-state maps; validate.
//   - Stage 5: Compile one Plan per group; check the indices it lists.
//
// Complexity:
//   - Time O(V + E·k + plan size), Space the same; k = max domain size.

package wiring

import (
	"context"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/katalvlaran/loopy/backend"
	"github.com/katalvlaran/loopy/core"
	"github.com/katalvlaran/loopy/kernel"
)

var tracer = otel.Tracer("loopy.wiring")

// Compile builds the wiring of g. See CompileContext.
func Compile(g *core.Graph, opts ...Option) (*Wiring, error) {
	return CompileContext(context.Background(), g, opts...)
}

// CompileContext builds the immutable wiring of g.
//
// The result is a snapshot: factors or variables added to g afterwards are
// not part of it. Two graphs built by the same sequence of calls yield
// identical wirings.
//
// Errors:
//   - ErrNilGraph, ErrEmptyGraph.
//   - ErrNoKernel: a factor kind has no kernel in the registry.
//   - ErrBadPlan: a plan reads outside the message buffers or writes
//     outside its group (checked for plans implementing kernel.Indexed).
//   - Any error returned by a kernel's Compile, wrapped with the kind.
func CompileContext(ctx context.Context, g *core.Graph, opts ...Option) (*Wiring, error) {
	if g == nil {
		return nil, fmt.Errorf("Compile: %w", ErrNilGraph)
	}
	cfg := newConfig(opts)

	_, span := tracer.Start(ctx, "wiring.Compile")
	defer span.End()

	vars, facs := g.Snapshot()
	span.SetAttributes(
		attribute.Int("variables", len(vars)),
		attribute.Int("factors", len(facs)),
	)
	if len(vars) == 0 {
		span.AddEvent("empty_graph")
		return nil, fmt.Errorf("Compile: %w", ErrEmptyGraph)
	}

	w := &Wiring{Variables: vars, Factors: facs}
	w.layoutVariables()

	kinds, byKind := partition(facs)
	kernels := make([]kernel.Kernel, len(kinds))
	for i, kd := range kinds {
		k, ok := cfg.registry.Lookup(kd)
		if !ok {
			err := fmt.Errorf("Compile: kind %s (%d factors): %w", kd, len(byKind[kd]), ErrNoKernel)
			span.RecordError(err)
			span.SetStatus(codes.Error, "no kernel")
			return nil, err
		}
		kernels[i] = k
	}

	w.layoutEdges(kinds, byKind)
	if err := w.validateLayout(); err != nil {
		err = fmt.Errorf("Compile: layout: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "bad layout")
		return nil, err
	}

	for i := range w.Groups {
		grp := &w.Groups[i]
		plan, err := kernels[i].Compile(w.instances(grp))
		if err != nil {
			err = fmt.Errorf("Compile: kind %s: %w", grp.Kind, err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "kernel compile failed")
			return nil, err
		}
		if err = w.validatePlan(grp, plan); err != nil {
			err = fmt.Errorf("Compile: kind %s: %w", grp.Kind, err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "bad plan")
			return nil, err
		}
		grp.Plan = plan
		cfg.logger.Debug("compiled factor group",
			zap.Stringer("kind", grp.Kind),
			zap.Int("factors", len(grp.Factors)),
			zap.Int("edges", grp.EdgeHi-grp.EdgeLo),
			zap.Int("entries", plan.Entries()),
		)
	}

	span.SetAttributes(
		attribute.Int("edges", w.NumEdges()),
		attribute.Int("edge_states", w.NumEdgeStates),
		attribute.Int("groups", len(w.Groups)),
	)
	span.AddEvent("compiled", trace.WithAttributes(attribute.Int("var_states", w.NumVarStates)))

	return w, nil
}

// layoutVariables fills VarCard / VarStart / NumVarStates.
func (w *Wiring) layoutVariables() {
	n := len(w.Variables)
	w.VarCard = make([]int, n)
	w.VarStart = make([]int, n+1)
	for i, v := range w.Variables {
		w.VarCard[i] = v.Card
		w.VarStart[i+1] = w.VarStart[i] + v.Card
	}
	w.NumVarStates = w.VarStart[n]
	w.varEdges = make([][]int, n)
}

// partition groups factor refs by kind, kinds ascending, refs in insertion order.
func partition(facs []core.Factor) ([]core.Kind, map[core.Kind][]core.FactorRef) {
	byKind := make(map[core.Kind][]core.FactorRef)
	for _, f := range facs {
		byKind[f.Kind] = append(byKind[f.Kind], f.Ref)
	}
	kinds := make([]core.Kind, 0, len(byKind))
	for k := range byKind {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	return kinds, byKind
}

// layoutEdges assigns edge and edge-state indices group by group.
func (w *Wiring) layoutEdges(kinds []core.Kind, byKind map[core.Kind][]core.FactorRef) {
	w.FactorEdge = make([]int, len(w.Factors))
	w.EdgeStart = []int{0}
	w.Groups = make([]Group, 0, len(kinds))

	for _, kd := range kinds {
		grp := Group{Kind: kd, Factors: byKind[kd], EdgeLo: len(w.EdgeVar), StateLo: w.EdgeStart[len(w.EdgeStart)-1]}
		for _, ref := range grp.Factors {
			f := w.Factors[ref]
			w.FactorEdge[ref] = len(w.EdgeVar)
			for pos, v := range f.Scope {
				e := len(w.EdgeVar)
				card := w.VarCard[v]
				start := w.EdgeStart[e]
				w.EdgeVar = append(w.EdgeVar, v)
				w.EdgeFactor = append(w.EdgeFactor, ref)
				w.EdgePos = append(w.EdgePos, pos)
				w.EdgeCard = append(w.EdgeCard, card)
				w.EdgeStart = append(w.EdgeStart, start+card)
				w.varEdges[v] = append(w.varEdges[v], e)
				for x := 0; x < card; x++ {
					w.StateEdge = append(w.StateEdge, e)
					w.StateVarState = append(w.StateVarState, w.VarStart[v]+x)
				}
			}
		}
		grp.EdgeHi = len(w.EdgeVar)
		grp.StateHi = w.EdgeStart[len(w.EdgeStart)-1]
		w.Groups = append(w.Groups, grp)
	}
	w.NumEdgeStates = w.EdgeStart[len(w.EdgeStart)-1]
	for v := range w.varEdges {
		sort.Ints(w.varEdges[v])
	}
}

// instances builds the kernel view of every factor in grp.
func (w *Wiring) instances(grp *Group) []kernel.Instance {
	insts := make([]kernel.Instance, len(grp.Factors))
	for i, ref := range grp.Factors {
		f := w.Factors[ref]
		in := kernel.Instance{
			Factor:     ref,
			Cards:      make([]int, len(f.Scope)),
			Params:     f.Params,
			StateStart: make([]int, len(f.Scope)),
			NumStates:  w.NumEdgeStates,
		}
		for pos, v := range f.Scope {
			in.Cards[pos] = w.VarCard[v]
			in.StateStart[pos] = w.EdgeStart[w.FactorEdge[ref]+pos]
		}
		insts[i] = in
	}

	return insts
}

// validateLayout checks the offset and segment arrays the engine indexes
// without bounds checks.
func (w *Wiring) validateLayout() error {
	if err := backend.ValidateOffsets(w.VarStart, w.NumVarStates); err != nil {
		return fmt.Errorf("VarStart: %w", err)
	}
	if err := backend.ValidateOffsets(w.EdgeStart, w.NumEdgeStates); err != nil {
		return fmt.Errorf("EdgeStart: %w", err)
	}
	if err := backend.ValidateSegments(w.StateVarState, w.NumEdgeStates, w.NumVarStates); err != nil {
		return fmt.Errorf("StateVarState: %w", err)
	}
	if err := backend.ValidateSegments(w.StateEdge, w.NumEdgeStates, w.NumEdges()); err != nil {
		return fmt.Errorf("StateEdge: %w", err)
	}

	return nil
}

// validatePlan checks a plan that lists its indices: reads anywhere in the
// message buffers, writes only inside the group's own states.
func (w *Wiring) validatePlan(grp *Group, plan kernel.Plan) error {
	if plan == nil {
		return fmt.Errorf("nil plan: %w", ErrBadPlan)
	}
	ix, ok := plan.(kernel.Indexed)
	if !ok {
		return nil
	}
	reads, writes := ix.Indices()
	if err := backend.ValidateIndex(reads, w.NumEdgeStates); err != nil {
		return fmt.Errorf("reads: %w: %w", ErrBadPlan, err)
	}
	if err := backend.ValidateIndexRange(writes, grp.StateLo, grp.StateHi); err != nil {
		return fmt.Errorf("writes outside group states: %w: %w", ErrBadPlan, err)
	}

	return nil
}
