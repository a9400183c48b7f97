package worker

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/okian/aura/pkg/logger"
)

// Option applies a configuration option to the InMemoryWorker.
type Option func(*InMemoryWorker)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *InMemoryWorker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(logger logger.Logger) Option {
	return func(w *InMemoryWorker) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithClock sets the clock used to time jobs.
func WithClock(clock clockwork.Clock) Option {
	return func(w *InMemoryWorker) {
		if clock != nil {
			w.clock = clock
		}
	}
}

func withCounters(c *counters) Option {
	return func(w *InMemoryWorker) {
		w.counters = c
	}
}

// PoolOption applies a configuration option to the Pool.
type PoolOption func(*Pool)

// WithPoolLogger sets the pool logger; workers log through named children.
func WithPoolLogger(logger logger.Logger) PoolOption {
	return func(p *Pool) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithPoolClock sets the clock shared by the pool and its workers.
func WithPoolClock(clock clockwork.Clock) PoolOption {
	return func(p *Pool) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// WithMetricsInterval sets how often throughput is recomputed.
func WithMetricsInterval(d time.Duration) PoolOption {
	return func(p *Pool) {
		if d > 0 {
			p.interval = d
		}
	}
}
