package discovery

import (
	"runtime"

	"github.com/askiada/go-causality/pkg/metrics"
)

type config struct {
	concurrency int
	maxCondSize int
	collectors  *metrics.Collectors
}

// Option configures a PC run.
type Option func(*config)

// WithConcurrency bounds how many edges of a level are tested at the same time.
func WithConcurrency(n int) Option {
	return func(c *config) {
		c.concurrency = n
	}
}

// WithMaxConditioningSize stops the skeleton search after level k. A negative k means no limit.
func WithMaxConditioningSize(k int) Option {
	return func(c *config) {
		c.maxCondSize = k
	}
}

// WithMetrics records test verdicts and run durations in collectors.
func WithMetrics(collectors *metrics.Collectors) Option {
	return func(c *config) {
		c.collectors = collectors
	}
}

func newConfig(opts ...Option) config {
	cfg := config{
		concurrency: runtime.GOMAXPROCS(0),
		maxCondSize: -1,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.concurrency < 1 {
		cfg.concurrency = 1
	}

	return cfg
}
