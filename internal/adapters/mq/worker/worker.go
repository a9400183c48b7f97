// Package worker runs render jobs off the queue on a fixed pool of goroutines.
package worker

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/okian/aura/internal/domain/model"
	"github.com/okian/aura/pkg/logger"
	"github.com/okian/aura/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	metricsUpdateInterval   = 5 * time.Second
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Job is what workers read off the queue.
type Job = model.Job

// Renderer composes the aura for one request.
type Renderer interface {
	Render(ctx context.Context, req model.RenderRequest) (model.Rendering, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, req model.RenderRequest) (model.Rendering, error)

// Render calls f.
func (f RendererFunc) Render(ctx context.Context, req model.RenderRequest) (model.Rendering, error) {
	return f(ctx, req)
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Worker processes jobs and replies with their renderings.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown stops the worker once its current job is answered.
	Shutdown(ctx context.Context) error
}

// counters are shared by the workers of a pool.
type counters struct {
	processed atomic.Int64
	failed    atomic.Int64
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue    Queue
	renderer Renderer
	name     string
	clock    clockwork.Clock
	counters *counters

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, renderer Renderer, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    queue,
		renderer: renderer,
		name:     "worker",
		clock:    clockwork.NewRealClock(),
		counters: &counters{},
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.logger == nil {
		w.logger = logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop. The dequeue context ends with the loop so a
// stopped worker leaves no forwarder behind.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	dequeueCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	jobs := w.queue.Dequeue(dequeueCtx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			if err := w.processJob(ctx, job); err != nil {
				w.logger.Debug(ctx, "render job failed",
					logger.String("jobID", job.ID),
					logger.Error(err),
				)
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.stop()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// Done is closed when Run returns.
func (w *InMemoryWorker) Done() <-chan struct{} {
	return w.done
}

func (w *InMemoryWorker) stop() {
	w.shutdownOnce.Do(func() { close(w.shutdown) })
}

// processJob renders one job and replies. The reply is sent even when
// rendering fails so the waiting caller never hangs.
func (w *InMemoryWorker) processJob(ctx context.Context, job Job) error { //nolint:gocritic // hugeParam: Job is passed by value for channel semantics
	start := w.clock.Now()

	rendering, err := w.renderer.Render(ctx, job.Request)
	latency := float64(w.clock.Since(start).Microseconds()) / 1000

	if err != nil {
		w.counters.failed.Add(1)
		metrics.RecordJobFailed()
		metrics.RecordErrorByComponent("worker", "render")
		err = fmt.Errorf("render job %s: %w", job.ID, err)
	} else {
		w.counters.processed.Add(1)
		metrics.RecordJobProcessed(latency)
	}

	if !job.Complete(model.JobResult{Rendering: rendering, Err: err}) {
		w.logger.Warn(ctx, "reply dropped", logger.String("jobID", job.ID), logger.Int("index", job.Index))
	}
	return err
}

// Stats is a point-in-time view of a pool.
type Stats struct {
	Workers    int     `json:"workers"`
	Processed  int64   `json:"processed"`
	Failed     int64   `json:"failed"`
	Throughput float64 `json:"throughput_per_second"`
}

// Pool manages multiple workers.
type Pool struct {
	workers  []*InMemoryWorker
	queue    Queue
	renderer Renderer
	clock    clockwork.Clock
	interval time.Duration
	counters *counters

	started      atomic.Bool
	shutdown     chan struct{}
	shutdownOnce sync.Once

	// throughput bookkeeping, touched only by the metrics updater
	lastProcessed int64
	lastTick      time.Time
	throughput    atomic.Uint64 // float64 bits

	logger logger.Logger
}

// NewPool creates a new worker pool. A non-positive count uses twice the
// number of CPUs.
func NewPool(workerCount int, queue Queue, renderer Renderer, opts ...PoolOption) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers:  make([]*InMemoryWorker, workerCount),
		queue:    queue,
		renderer: renderer,
		clock:    clockwork.NewRealClock(),
		interval: metricsUpdateInterval,
		counters: &counters{},
		shutdown: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(pool)
	}
	if pool.logger == nil {
		pool.logger = logger.Named("worker-pool")
	}
	pool.lastTick = pool.clock.Now()

	for i := 0; i < workerCount; i++ {
		name := "worker-" + strconv.Itoa(i)
		pool.workers[i] = NewInMemoryWorker(
			queue,
			renderer,
			WithName(name),
			WithClock(pool.clock),
			WithLogger(pool.logger.Named(name)),
			withCounters(pool.counters),
		)
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	if !p.started.CompareAndSwap(false, true) {
		return
	}
	for _, w := range p.workers {
		go w.Run(ctx)
	}

	go p.startMetricsUpdater(ctx)

	p.logger.Info(ctx, "worker pool started", logger.Int("workers", len(p.workers)))
}

// startMetricsUpdater refreshes the throughput gauge on every tick.
func (p *Pool) startMetricsUpdater(ctx context.Context) {
	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.shutdown:
			return
		case <-ticker.Chan():
			p.updateMetrics()
		}
	}
}

func (p *Pool) updateMetrics() {
	now := p.clock.Now()
	processed := p.counters.processed.Load()
	if elapsed := now.Sub(p.lastTick).Seconds(); elapsed > 0 {
		p.setThroughput(float64(processed-p.lastProcessed) / elapsed)
	}
	p.lastProcessed = processed
	p.lastTick = now
	metrics.UpdateWorkerCount(len(p.workers))
}

func (p *Pool) setThroughput(v float64) {
	p.throughput.Store(math.Float64bits(v))
}

// Stats returns the pool counters.
func (p *Pool) Stats() Stats {
	return Stats{
		Workers:    len(p.workers),
		Processed:  p.counters.processed.Load(),
		Failed:     p.counters.failed.Load(),
		Throughput: math.Float64frombits(p.throughput.Load()),
	}
}

func (p *Pool) signal() {
	p.shutdownOnce.Do(func() {
		close(p.shutdown)
		for _, w := range p.workers {
			w.stop()
		}
	})
}

// Stop stops all workers without draining the queue.
func (p *Pool) Stop() {
	p.signal()
	if !p.started.Load() {
		return
	}

	for _, w := range p.workers {
		select {
		case <-w.done:
		case <-p.clock.After(workerShutdownTimeout):
		}
	}
}

// Shutdown closes the queue, lets the workers drain it, and stops them. If
// ctx or the pool timeout expires first the remaining workers are signalled
// to stop immediately.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	if !p.started.Load() {
		p.signal()
		return nil
	}

	timeout := p.clock.After(poolShutdownTimeout)

	var timeoutErr error
	for i, w := range p.workers {
		if timeoutErr != nil {
			break
		}
		select {
		case <-w.done:
		case <-ctx.Done():
			timeoutErr = ctx.Err()
			p.logger.Warn(ctx, "worker shutdown interrupted", logger.Int("worker_id", i))
		case <-timeout:
			timeoutErr = context.DeadlineExceeded
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}
	p.signal()

	if timeoutErr != nil {
		return fmt.Errorf("worker pool shutdown: %w", timeoutErr)
	}
	return nil
}
