package queue

import (
	"context"
	"errors"
)

// Sentinel kinds for queue errors.
var (
	ErrFull   = errors.New("queue full")
	ErrClosed = errors.New("queue closed")

	// ErrAbandoned answers a job whose consumer stopped before taking it.
	ErrAbandoned = errors.New("job abandoned by stopped consumer")
)

// Submit enqueues j and explains a refusal: ErrClosed once the queue is
// closed, the context error if ctx is done, ErrFull otherwise.
func Submit(ctx context.Context, q Queue, j Job) error { //nolint:gocritic // hugeParam: Job is passed by value for channel semantics
	if q.Enqueue(ctx, j) {
		return nil
	}
	if q.IsClosed() {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return ErrFull
}
