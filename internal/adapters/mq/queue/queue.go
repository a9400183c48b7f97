// Package queue defines the contract for enqueuing and consuming render jobs.
//
// The in-memory implementation is a bounded buffered channel; a full queue
// refuses new jobs instead of blocking so callers can apply backpressure.
package queue

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/aura/internal/domain/model"
	"github.com/okian/aura/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultQueueCapacity = 1024
	defaultBufferSize    = 1024
)

// Rejection reasons reported to metrics.
const (
	reasonClosed    = "closed"
	reasonCapacity  = "capacity_exceeded"
	reasonCancelled = "context_cancelled"
	reasonFull      = "queue_full"
)

// Job is the payload type flowing through the queue.
type Job = model.Job

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a job to the queue.
	// Returns false if the queue is full or closed and the job was not enqueued.
	Enqueue(ctx context.Context, j Job) bool

	// Dequeue returns a channel that will receive jobs as they become available.
	// The channel will be closed when the queue is closed.
	Dequeue(ctx context.Context) <-chan Job

	// Len returns the current number of queued jobs.
	Len(ctx context.Context) int

	// Close gracefully shuts down the queue.
	// After closing, no new jobs can be enqueued and the dequeue channel will be closed.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	jobs       chan Job
	capacity   int
	bufferSize int
	mu         sync.RWMutex
	closed     bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity:   defaultQueueCapacity,
		bufferSize: defaultBufferSize,
	}

	for _, opt := range opts {
		opt(q)
	}

	// the buffer must hold capacity jobs
	q.bufferSize = max(q.bufferSize, q.capacity)
	q.jobs = make(chan Job, q.bufferSize)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	metrics.UpdateQueueUtilization(0.0)

	return q
}

// Capacity returns the maximum number of queued jobs.
func (q *InMemoryQueue) Capacity() int {
	return q.capacity
}

// Enqueue adds a job to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, j Job) bool { //nolint:gocritic // hugeParam: Job is passed by value for channel semantics
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		q.reject(reasonClosed)
		return false
	}

	if len(q.jobs) >= q.capacity {
		q.reject(reasonCapacity)
		return false
	}

	select {
	case <-ctx.Done():
		q.reject(reasonCancelled)
		return false
	default:
	}

	select {
	case q.jobs <- j:
		metrics.RecordQueueEnqueue()
		q.observe()
		return true
	default:
		q.reject(reasonFull)
		return false
	}
}

// Dequeue returns a channel that will receive jobs as they become available.
// Once ctx is done the forwarder stops taking jobs, and a job it already
// holds is answered with ErrAbandoned.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Job {
	out := make(chan Job)
	go func() {
		defer close(out)
		for ctx.Err() == nil {
			var j Job
			select {
			case <-ctx.Done():
				return
			case next, ok := <-q.jobs:
				if !ok {
					return
				}
				j = next
			}

			select {
			case out <- j:
				metrics.RecordQueueDequeue()
				q.observe()
			case <-ctx.Done():
				q.observe()
				j.Complete(model.JobResult{Err: fmt.Errorf("%w: %w", ErrAbandoned, ctx.Err())})
				return
			}
		}
	}()
	return out
}

// Len returns the current number of queued jobs.
func (q *InMemoryQueue) Len(_ context.Context) int {
	return q.observe()
}

// Close gracefully shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	close(q.jobs)
	q.closed = true

	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

func (q *InMemoryQueue) observe() int {
	size := len(q.jobs)
	metrics.UpdateQueueSize(size)
	metrics.UpdateQueueUtilization(float64(size) / float64(q.capacity))
	return size
}

func (q *InMemoryQueue) reject(reason string) {
	metrics.RecordQueueRejected(reason)
	metrics.RecordErrorByComponent("queue", reason)
}
