package bp

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/loopy/wiring"
)

// RunBatch runs one independent inference per evidence item over the shared
// wiring w, with at most parallelism concurrent runs (≤ 0 means GOMAXPROCS).
// results[i] corresponds to evs[i]. The first failing run cancels the rest
// and its error is returned.
func RunBatch(ctx context.Context, w *wiring.Wiring, evs []*Evidence, opts Options, parallelism int) ([]*Result, error) {
	if w == nil {
		return nil, fmt.Errorf("RunBatch: %w", ErrNilWiring)
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("RunBatch: %w", err)
	}
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	results := make([]*Result, len(evs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i, ev := range evs {
		i, ev := i, ev // per-iteration copies (pre-Go 1.22 loop semantics)
		g.Go(func() error {
			res, err := Run(gctx, w, ev, opts)
			if err != nil {
				return fmt.Errorf("RunBatch: item %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
