// SPDX-License-Identifier: MIT
// Package: bp
//
// engine.go - the synchronous (flooding) message-passing loop.
//
// One sweep:
//  1. belief = evidence + Σ F2V          (segment sum by StateVarState)
//  2. V2F    = belief[var-state] - F2V   (floor, per-message max subtraction)
//  3. F2V'   = group plans on V2F        (floor, finiteness check, normalize)
//  4. F2V'   = α·F2V + (1-α)·F2V'        (damping)
//  5. delta  = max |F2V' - F2V|
//
// All V2F messages of a sweep are derived from the previous sweep's F2V.

package bp

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/katalvlaran/loopy/backend"
	"github.com/katalvlaran/loopy/wiring"
)

var tracer = otel.Tracer("loopy.bp")

// maxWarnings caps Result.Warnings; later events are still counted and logged at debug.
const maxWarnings = 64

// Run performs loopy belief propagation on w.
//
// Description:
//
//	Messages start at zero (uniform) or at opts.WarmStart and are updated
//	synchronously until the largest message change drops below
//	opts.Tolerance, opts.MaxIterations sweeps have run, or ctx is done.
//	Neither non-convergence nor cancellation is an error: both are reported
//	through Result.Reason together with the messages reached so far.
//
// Inputs:
//   - w: compiled wiring, shared read-only.
//   - ev: evidence for w, or nil for none.
//   - opts: validated with Options.Validate.
//
// Errors:
//   - ErrNilWiring, ErrInvalidOption.
//   - ErrShapeMismatch: evidence or warm start built for another wiring.
//   - ErrInvalidEvidence: NaN/+Inf evidence or a variable with every state at -Inf.
//   - ErrNonFinite: a message became NaN or +Inf.
//   - ErrPlanFailed: a custom plan indexed outside the message buffers.
//
// Complexity:
//   - O(iterations · (edge-states + Σ plan entries)) time, O(edge-states) memory.
func Run(ctx context.Context, w *wiring.Wiring, ev *Evidence, opts Options) (*Result, error) {
	if w == nil {
		return nil, fmt.Errorf("Run: %w", ErrNilWiring)
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}
	if err := ev.check(w); err != nil {
		return nil, fmt.Errorf("Run: evidence: %w", err)
	}
	if opts.WarmStart != nil {
		if err := opts.WarmStart.Check(w); err != nil {
			return nil, fmt.Errorf("Run: warm start: %w", err)
		}
	}

	runID := uuid.NewString()
	log := opts.logger().With(zap.String("run_id", runID))
	ctx, span := tracer.Start(ctx, "bp.Run",
		trace.WithAttributes(
			attribute.String("run_id", runID),
			attribute.Int("variables", w.NumVariables()),
			attribute.Int("factors", w.NumFactors()),
			attribute.Int("edges", w.NumEdges()),
			attribute.String("mode", opts.Mode.String()),
		),
	)
	defer span.End()
	span.SetAttributes(
		attribute.Float64("damping", opts.Damping),
		attribute.Int("max_iterations", opts.MaxIterations),
		attribute.Float64("tolerance", opts.Tolerance),
	)
	started := time.Now()

	st, err := newRunState(w, ev, opts)
	if err != nil {
		runsTotal.WithLabelValues("error", opts.Mode.String()).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "warm start")
		return nil, fmt.Errorf("Run: %w", err)
	}
	res := &Result{RunID: runID, Reason: StopMaxIterations}

	if w.NumEdges() == 0 {
		res.Converged, res.Reason = true, StopConverged
		span.AddEvent("no_edges")
	}

	for !res.Converged && res.Iterations < opts.MaxIterations {
		if ctx.Err() != nil {
			res.Reason = StopCanceled
			span.AddEvent("cancelled", trace.WithAttributes(
				attribute.Int("iterations_completed", res.Iterations),
			))
			break
		}

		iter := res.Iterations + 1
		delta, shifts, err := st.sweep()
		if err != nil {
			err = fmt.Errorf("Run: iteration %d: %w", iter, err)
			runsTotal.WithLabelValues("error", opts.Mode.String()).Inc()
			span.RecordError(err)
			span.SetStatus(codes.Error, "sweep failed")
			log.Error("belief propagation aborted", zap.Error(err))
			return nil, err
		}
		res.Iterations = iter
		res.Delta = delta
		res.Deltas = append(res.Deltas, delta)

		for i, dir := range [...]string{"v2f", "f2v"} {
			if shifts[i] <= opts.InstabilityThreshold {
				continue
			}
			warn := InstabilityWarning{Iteration: iter, Direction: dir, Shift: shifts[i]}
			instabilityTotal.WithLabelValues(dir).Inc()
			if len(res.Warnings) < maxWarnings {
				res.Warnings = append(res.Warnings, warn)
				log.Warn("numeric instability", zap.Error(warn))
			} else {
				log.Debug("numeric instability", zap.Error(warn))
			}
		}

		if delta < opts.Tolerance {
			res.Converged, res.Reason = true, StopConverged
		}
	}
	res.Messages = st.messages()

	elapsed := time.Since(started)
	runsTotal.WithLabelValues(res.Reason.String(), opts.Mode.String()).Inc()
	runIterations.Observe(float64(res.Iterations))
	runDuration.Observe(elapsed.Seconds())

	log.Debug("belief propagation finished",
		zap.Int("iterations", res.Iterations),
		zap.Bool("converged", res.Converged),
		zap.Stringer("reason", res.Reason),
		zap.Float64("delta", res.Delta),
		zap.Int("warnings", len(res.Warnings)),
		zap.Duration("elapsed", elapsed),
	)
	span.SetAttributes(
		attribute.Int("iterations", res.Iterations),
		attribute.Bool("converged", res.Converged),
		attribute.Float64("delta", res.Delta),
		attribute.String("reason", res.Reason.String()),
	)

	return res, nil
}

// runState owns every buffer of one run.
type runState struct {
	w           *wiring.Wiring
	be          backend.Backend
	temperature float64
	damping     float64

	ev     []float64 // nil without evidence
	belief []float64
	v2f    []float64
	f2v    []float64
	next   []float64
}

func newRunState(w *wiring.Wiring, ev *Evidence, opts Options) (*runState, error) {
	st := &runState{
		w:           w,
		be:          opts.backend(),
		temperature: opts.temperature(),
		damping:     opts.Damping,
		belief:      make([]float64, w.NumVarStates),
		v2f:         make([]float64, w.NumEdgeStates),
		f2v:         make([]float64, w.NumEdgeStates),
		next:        make([]float64, w.NumEdgeStates),
	}
	if ev != nil {
		st.ev = ev.values
	}
	if opts.WarmStart != nil {
		copy(st.f2v, opts.WarmStart.F2V)
		copy(st.v2f, opts.WarmStart.V2F)
		st.be.Floor(st.f2v)
		if i := st.be.FirstNonFinite(st.f2v); i >= 0 {
			return nil, fmt.Errorf("warm start entry %d: %w", i, ErrNonFinite)
		}
	}

	return st, nil
}

// sweep runs one synchronous iteration and returns the convergence metric
// and the largest normalization shift of each direction.
func (st *runState) sweep() (float64, [2]float64, error) {
	w, be := st.w, st.be
	var shifts [2]float64

	be.SegmentSum(st.belief, st.f2v, w.StateVarState)
	if st.ev != nil {
		be.Add(st.belief, st.belief, st.ev)
	}
	be.Gather(st.v2f, st.belief, w.StateVarState)
	be.Sub(st.v2f, st.v2f, st.f2v)
	be.Floor(st.v2f)
	shifts[0] = be.NormalizeRanges(st.v2f, w.EdgeStart)

	for i := range w.Groups {
		g := &w.Groups[i]
		if err := st.update(g); err != nil {
			return 0, shifts, fmt.Errorf("%s group: %w", g.Kind, err)
		}
	}
	be.Floor(st.next)
	if i := be.FirstNonFinite(st.next); i >= 0 {
		e := w.StateEdge[i]
		return 0, shifts, fmt.Errorf("edge %d (factor %d, variable %d): %w", e, w.EdgeFactor[e], w.EdgeVar[e], ErrNonFinite)
	}
	shifts[1] = be.NormalizeRanges(st.next, w.EdgeStart)

	be.Blend(st.next, st.f2v, st.next, st.damping)
	delta := be.MaxAbsDiff(st.next, st.f2v)
	st.f2v, st.next = st.next, st.f2v

	return delta, shifts, nil
}

// update runs one group's plan. Plans that do not list their indices are
// not checked at compile time; an out-of-range access inside them surfaces
// here as ErrPlanFailed instead of crashing the caller.
func (st *runState) update(g *wiring.Group) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		re, isRuntime := r.(runtime.Error)
		e, isErr := r.(error)
		switch {
		case isRuntime:
			err = fmt.Errorf("%v: %w", re, ErrPlanFailed)
		case isErr && (errors.Is(e, backend.ErrIndexOutOfRange) || errors.Is(e, backend.ErrDimensionMismatch)):
			err = fmt.Errorf("%w: %w", ErrPlanFailed, e)
		default:
			panic(r)
		}
	}()

	return g.Plan.Update(st.be, st.v2f, st.next, st.temperature)
}

// messages hands the final buffers to the result.
func (st *runState) messages() *Messages {
	return &Messages{V2F: st.v2f, F2V: st.f2v}
}
