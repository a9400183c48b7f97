package service

import (
	"github.com/jonboulle/clockwork"

	"github.com/okian/aura/internal/adapters/repository"
	"github.com/okian/aura/internal/adapters/weathersource"
	"github.com/okian/aura/internal/domain/aura"
	"github.com/okian/aura/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of render workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum number of queued render jobs.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithMaxBatchSize caps the number of items in one batch.
func WithMaxBatchSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.maxBatchSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSource sets the weather source used for live renders.
func WithSource(src weathersource.Source) Option {
	return func(s *Service) {
		s.source = src
	}
}

// WithSourceName labels the configured source in stats.
func WithSourceName(name string) Option {
	return func(s *Service) {
		s.sourceName = name
	}
}

// WithClock sets the clock used for timestamps and latency.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithDefaultMode sets the mode used when a request names none.
func WithDefaultMode(m aura.Mode) Option {
	return func(s *Service) {
		s.defaultMode = m
	}
}

// WithRandomSeed seeds the generator that picks per-render seeds. Zero
// seeds from the clock.
func WithRandomSeed(seed int64) Option {
	return func(s *Service) {
		s.randomSeed = seed
	}
}

// WithComposer replaces the aura composer.
func WithComposer(c *aura.Composer) Option {
	return func(s *Service) {
		if c != nil {
			s.composer = c
		}
	}
}

// WithPeakStore replaces the board that records severity peaks per place.
func WithPeakStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.peaks = store
		}
	}
}
