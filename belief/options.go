// SPDX-License-Identifier: MIT

package belief

import "github.com/katalvlaran/loopy/backend"

// Option customizes a readout call.
type Option func(*config)

type config struct {
	backend backend.Backend
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	if c.backend == nil {
		c.backend = backend.Default()
	}

	return c
}

// WithBackend selects the numeric backend, typically the one the run used
// (bp.Options.Backend). Panics on nil.
func WithBackend(be backend.Backend) Option {
	if be == nil {
		panic("belief: WithBackend(nil)")
	}

	return func(c *config) { c.backend = be }
}
