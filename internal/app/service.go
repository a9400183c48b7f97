// Package service wires the aura engine to its weather source, render queue
// and worker pool, and implements the dependencies required by the HTTP API
// and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/okian/aura/internal/adapters/mq/queue"
	workerpool "github.com/okian/aura/internal/adapters/mq/worker"
	"github.com/okian/aura/internal/adapters/render/css"
	"github.com/okian/aura/internal/adapters/repository"
	"github.com/okian/aura/internal/adapters/weathersource"
	"github.com/okian/aura/internal/domain/aura"
	"github.com/okian/aura/internal/domain/model"
	"github.com/okian/aura/internal/domain/severity"
	"github.com/okian/aura/pkg/logger"
	"github.com/okian/aura/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultWorkerMultiplier = 2
	defaultQueueSize        = 1024
	defaultMaxBatchSize     = 100
)

// Service renders auras synchronously or through the worker pool.
type Service struct {
	mu sync.RWMutex

	// Core components
	composer *aura.Composer
	source   weathersource.Source
	queue    *queue.InMemoryQueue
	pool     *workerpool.Pool
	peaks    repository.Store
	clock    clockwork.Clock

	// Configuration
	workerCount  int
	queueSize    int
	maxBatchSize int
	defaultMode  aura.Mode
	randomSeed   int64
	sourceName   string

	// seeds picks per-render seeds when a request carries none
	seedMu sync.Mutex
	seeds  *rand.Rand

	started bool

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		composer:     aura.NewComposer(),
		clock:        clockwork.NewRealClock(),
		workerCount:  runtime.NumCPU() * defaultWorkerMultiplier,
		queueSize:    defaultQueueSize,
		maxBatchSize: defaultMaxBatchSize,
		defaultMode:  aura.Radial,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Named("service")
	}
	if s.peaks == nil {
		s.peaks = repository.NewMemoryStore()
	}
	seed := s.randomSeed
	if seed == 0 {
		seed = s.clock.Now().UnixNano()
	}
	s.seeds = rand.New(rand.NewSource(seed)) //nolint:gosec // render seeds, not security

	return s
}

// Start creates the render queue and starts the worker pool.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.logger.Info(ctx, "starting aura service...")

	s.queue = queue.NewInMemoryQueue(
		queue.WithCapacity(s.queueSize),
		queue.WithBufferSize(s.queueSize),
	)
	s.pool = workerpool.NewPool(s.workerCount, s.queue, s,
		workerpool.WithPoolClock(s.clock),
		workerpool.WithPoolLogger(s.logger.Named("worker-pool")),
	)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "aura service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("maxBatchSize", s.maxBatchSize),
		logger.String("defaultMode", s.defaultMode.String()),
	)

	return nil
}

// Stop closes the queue, lets queued jobs finish and stops the workers.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping aura service...")

	if err := s.pool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "worker pool shutdown incomplete", logger.Error(err))
	}

	s.started = false
	s.logger.Info(ctx, "aura service stopped")
}

// DefaultMode is the mode used when a request names none.
func (s *Service) DefaultMode() aura.Mode {
	return s.defaultMode
}

// MaxBatchSize is the largest accepted batch.
func (s *Service) MaxBatchSize() int {
	return s.maxBatchSize
}

// ResolveMode parses a selector name. An empty name yields the default mode,
// an unknown one Radial.
func (s *Service) ResolveMode(name string) aura.Mode {
	if strings.TrimSpace(name) == "" {
		return s.defaultMode
	}
	m, ok := aura.ParseMode(name)
	if !ok {
		s.logger.Debug(context.Background(), "unknown mode, using radial", logger.String("mode", name))
	}
	return m
}

// Render composes one aura. It does not need the service to be started.
func (s *Service) Render(ctx context.Context, req model.RenderRequest) (model.Rendering, error) {
	if err := ctx.Err(); err != nil {
		return model.Rendering{}, fmt.Errorf("render: %w", err)
	}

	seed := s.nextSeed()
	if req.Seed != nil {
		seed = *req.Seed
	}

	start := s.clock.Now()
	snap := req.Observation.Snapshot()
	d := s.composer.Compose(snap, req.Mode, aura.NewRandom(seed))
	explanation := severity.Explain(severity.Score(snap))
	latency := float64(s.clock.Since(start).Microseconds()) / 1000

	metrics.RecordAuraComposed(d.Mode.String(), latency)
	metrics.RecordSeverity(explanation.Score, string(explanation.WeatherType))
	if req.Mode == aura.Randomizer {
		metrics.RecordRandomizerPick(d.Mode.String())
	}

	return model.Rendering{
		ID:            uuid.NewString(),
		Mode:          d.Mode,
		RequestedMode: req.Mode,
		GeneratedAt:   s.clock.Now().UTC(),
		Seed:          seed,
		Weather:       snap,
		Severity:      explanation,
		Descriptor:    d,
		CSS:           css.Render(d).Map(),
	}, nil
}

// RenderBatch fans the requests out to the worker pool and returns the
// renderings in request order. A full queue fails the whole batch with
// ErrBackpressure.
func (s *Service) RenderBatch(ctx context.Context, reqs []model.RenderRequest) ([]model.Rendering, error) {
	s.mu.RLock()
	started, q := s.started, s.queue
	s.mu.RUnlock()

	if !started {
		return nil, ErrNotStarted
	}
	switch {
	case len(reqs) == 0:
		return nil, ErrEmptyBatch
	case len(reqs) > s.maxBatchSize:
		return nil, fmt.Errorf("%w: %d items, limit %d", ErrBatchTooLarge, len(reqs), s.maxBatchSize)
	}
	metrics.RecordBatchSize(len(reqs))

	batchID := uuid.NewString()
	// Buffered for every job so late replies never block a worker.
	reply := make(chan model.JobResult, len(reqs))
	for i, req := range reqs {
		job := model.Job{
			ID:      fmt.Sprintf("%s-%d", batchID, i),
			Index:   i,
			Request: req,
			Reply:   reply,
		}
		if err := queue.Submit(ctx, q, job); err != nil {
			s.logger.Warn(ctx, "batch refused",
				logger.String("batchID", batchID),
				logger.Int("queued", i),
				logger.Int("size", len(reqs)),
				logger.Error(err),
			)
			switch {
			case errors.Is(err, queue.ErrFull):
				return nil, fmt.Errorf("%w: %d of %d items queued", ErrBackpressure, i, len(reqs))
			case errors.Is(err, queue.ErrClosed):
				return nil, ErrNotStarted
			default:
				return nil, fmt.Errorf("batch %s: %w", batchID, err)
			}
		}
	}

	out := make([]model.Rendering, len(reqs))
	for range reqs {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("batch %s: %w", batchID, ctx.Err())
		case res := <-reply:
			if res.Err != nil {
				return nil, fmt.Errorf("batch %s item %d: %w", batchID, res.Index, res.Err)
			}
			out[res.Index] = res.Rendering
		}
	}

	s.logger.Debug(ctx, "batch rendered", logger.String("batchID", batchID), logger.Int("size", len(reqs)))
	return out, nil
}

// RenderLive resolves the location, fetches its current weather and renders.
func (s *Service) RenderLive(ctx context.Context, req model.LiveRequest) (model.Rendering, error) {
	if s.source == nil {
		return model.Rendering{}, ErrNoSource
	}

	loc, err := s.locate(ctx, req)
	if err != nil {
		return model.Rendering{}, err
	}

	obs, err := s.source.Fetch(ctx, loc)
	if err != nil {
		metrics.RecordErrorByComponent("service", "fetch")
		return model.Rendering{}, fmt.Errorf("fetch weather for %s: %w", describe(loc), err)
	}

	rendering, err := s.Render(ctx, model.RenderRequest{Observation: obs, Mode: req.Mode, Seed: req.Seed})
	if err != nil {
		return model.Rendering{}, err
	}
	rendering.Location = &loc
	s.recordPeak(ctx, loc, rendering)

	s.logger.Info(ctx, "live aura rendered",
		logger.String("location", describe(loc)),
		logger.String("mode", rendering.Mode.String()),
		logger.String("weatherType", string(rendering.Severity.WeatherType)),
		logger.Float64("severity", rendering.Severity.Score),
	)
	return rendering, nil
}

// RenderRandomPlace renders the live aura of a randomly chosen place.
func (s *Service) RenderRandomPlace(ctx context.Context, mode aura.Mode, seed *int64) (model.Rendering, error) {
	s.seedMu.Lock()
	place := weathersource.RandomPlace(s.seeds)
	s.seedMu.Unlock()

	return s.RenderLive(ctx, model.LiveRequest{Query: place, Mode: mode, Seed: seed})
}

// Peaks returns up to n places with the most severe weather seen by live
// renders.
func (s *Service) Peaks(ctx context.Context, n int) ([]repository.Peak, error) {
	peaks, err := s.peaks.TopN(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("peaks: %w", err)
	}
	return peaks, nil
}

func (s *Service) recordPeak(ctx context.Context, loc model.Location, r model.Rendering) {
	updated, err := s.peaks.UpdatePeak(ctx, repository.Peak{
		Place:       describe(loc),
		Latitude:    loc.Latitude,
		Longitude:   loc.Longitude,
		Score:       r.Severity.Score,
		WeatherType: string(r.Severity.WeatherType),
		Label:       r.Severity.Label,
		Mode:        r.Mode.String(),
		RenderingID: r.ID,
		ObservedAt:  r.GeneratedAt,
	})
	if err != nil {
		s.logger.Warn(ctx, "peak not recorded", logger.String("location", describe(loc)), logger.Error(err))
		return
	}
	if updated {
		s.logger.Debug(ctx, "new severity peak",
			logger.String("location", describe(loc)),
			logger.Float64("severity", r.Severity.Score),
		)
	}
}

// Geocode resolves a place name through the configured source.
func (s *Service) Geocode(ctx context.Context, query string) (model.Location, error) {
	if s.source == nil {
		return model.Location{}, ErrNoSource
	}
	loc, err := s.source.Geocode(ctx, query)
	if err != nil {
		return model.Location{}, fmt.Errorf("geocode %q: %w", query, err)
	}
	return loc, nil
}

func (s *Service) locate(ctx context.Context, req model.LiveRequest) (model.Location, error) {
	if q := strings.TrimSpace(req.Query); q != "" {
		loc, err := s.Geocode(ctx, q)
		if err != nil {
			return model.Location{}, err
		}
		if req.Altitude != nil {
			loc.Altitude = req.Altitude
		}
		return loc, nil
	}
	if req.Latitude == nil || req.Longitude == nil {
		return model.Location{}, ErrInvalidLocation
	}
	return model.Location{
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		Altitude:  req.Altitude,
	}, nil
}

func (s *Service) nextSeed() int64 {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()
	return s.seeds.Int63()
}

func describe(loc model.Location) string {
	if label := loc.Label(); label != "" {
		return label
	}
	return fmt.Sprintf("%.4f,%.4f", loc.Latitude, loc.Longitude)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":      s.started,
		"workerCount":  s.workerCount,
		"queueSize":    s.queueSize,
		"maxBatchSize": s.maxBatchSize,
		"defaultMode":  s.defaultMode.String(),
		"source":       s.sourceName,
		"peaks":        s.peaks.Count(ctx),
	}

	if s.started {
		queueLen := s.queue.Len(ctx)
		poolStats := s.pool.Stats()

		stats["queueLength"] = queueLen
		stats["processed"] = poolStats.Processed
		stats["failed"] = poolStats.Failed
		stats["throughput"] = poolStats.Throughput

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}
