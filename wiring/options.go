package wiring

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/loopy/kernel"
)

// Option customizes Compile.
type Option func(*config)

type config struct {
	registry *kernel.Registry
	logger   *zap.Logger
}

func newConfig(opts []Option) config {
	c := config{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&c)
	}
	if c.registry == nil {
		c.registry = kernel.DefaultRegistry()
	}

	return c
}

// WithRegistry selects the kernels used to compile factor groups.
// Panics on nil.
func WithRegistry(r *kernel.Registry) Option {
	if r == nil {
		panic("wiring: WithRegistry(nil)")
	}

	return func(c *config) { c.registry = r }
}

// WithLogger attaches a logger for compile diagnostics. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("wiring: WithLogger(nil)")
	}

	return func(c *config) { c.logger = l }
}
