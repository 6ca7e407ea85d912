// Package bp implements the loopy belief propagation engine: a synchronous,
// log-domain, damped message-passing loop over a compiled wiring.
//
// Usage:
//
//	w, _ := wiring.Compile(g)
//	ev := bp.NewEvidence(w)
//	_ = ev.Set(x, []float64{0, 1.2})
//	res, err := bp.Run(ctx, w, ev, bp.DefaultOptions())
//	marg, _ := belief.Marginals(w, res.Messages, ev)
//
// Modes:
//
//	SumProduct   reduce = T·log Σ exp(x/T), T = Options.Temperature (1 by default)
//	MaxProduct   reduce = max
//
// Termination is reported, not raised: Result.Reason is StopConverged,
// StopMaxIterations or StopCanceled. Errors are reserved for invalid inputs
// and for messages that become NaN or +Inf (ErrNonFinite).
//
// Every run carries a uuid RunID that appears in its zap log lines and in its
// OpenTelemetry span ("loopy.bp" tracer). Prometheus collectors under the
// "loopy_bp_" prefix count runs by outcome, sweeps, duration and instability
// warnings.
//
// A Wiring is immutable; any number of runs may share it. RunBatch runs
// several evidence sets concurrently with a bounded errgroup.
package bp
