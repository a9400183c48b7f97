package worker_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/smartystreets/goconvey/convey"

	queue "github.com/okian/aura/internal/adapters/mq/queue"
	worker "github.com/okian/aura/internal/adapters/mq/worker"
	"github.com/okian/aura/internal/domain/aura"
	model "github.com/okian/aura/internal/domain/model"
	"github.com/okian/aura/internal/domain/weather"
	logging "github.com/okian/aura/pkg/logger"
)

// Mock implementations for testing.
type mockQueue struct {
	jobChan chan queue.Job
	once    sync.Once
}

func newMockQueue() *mockQueue {
	return &mockQueue{jobChan: make(chan queue.Job, 10)}
}

func (mq *mockQueue) Dequeue(ctx context.Context) <-chan queue.Job {
	return mq.jobChan
}

func (mq *mockQueue) Close() error {
	mq.once.Do(func() { close(mq.jobChan) })
	return nil
}

type mockRenderer struct {
	mu     sync.Mutex
	calls  int
	failOn map[aura.Mode]error
}

func newMockRenderer() *mockRenderer {
	return &mockRenderer{failOn: make(map[aura.Mode]error)}
}

func (mr *mockRenderer) Render(ctx context.Context, req model.RenderRequest) (model.Rendering, error) {
	mr.mu.Lock()
	mr.calls++
	err := mr.failOn[req.Mode]
	mr.mu.Unlock()
	if err != nil {
		return model.Rendering{}, err
	}
	d := aura.NewComposer().Compose(req.Observation.Snapshot(), req.Mode, aura.NewRandom(1))
	return model.Rendering{Mode: d.Mode, RequestedMode: req.Mode, Descriptor: d}, nil
}

func (mr *mockRenderer) callCount() int {
	mr.mu.Lock()
	defer mr.mu.Unlock()
	return mr.calls
}

func newJob(id string, index int, mode aura.Mode, reply chan model.JobResult) queue.Job {
	return queue.Job{
		ID:      id,
		Index:   index,
		Request: model.RenderRequest{Observation: weather.Observation{CloudCover: weather.Float64(80)}, Mode: mode},
		Reply:   reply,
	}
}

func await(reply <-chan model.JobResult) (model.JobResult, bool) {
	select {
	case r := <-reply:
		return r, true
	case <-time.After(time.Second):
		return model.JobResult{}, false
	}
}

func TestInMemoryWorker(t *testing.T) {
	convey.Convey("Given a new InMemoryWorker", t, func() {
		q := newMockQueue()
		r := newMockRenderer()

		convey.Convey("When creating a worker with custom options", func() {
			w := worker.NewInMemoryWorker(q, r,
				worker.WithName("custom"),
				worker.WithLogger(logging.Nop()),
				worker.WithClock(clockwork.NewFakeClock()),
			)

			convey.Convey("Then it should be created successfully", func() {
				convey.So(w, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When running a worker", func() {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			w := worker.NewInMemoryWorker(q, r, worker.WithLogger(logging.Nop()))
			go w.Run(ctx)

			convey.Convey("And when processing a job", func() {
				reply := make(chan model.JobResult, 1)
				q.jobChan <- newJob("job-1", 4, aura.Layered, reply)
				res, ok := await(reply)

				convey.Convey("Then it replies with the rendering", func() {
					convey.So(ok, convey.ShouldBeTrue)
					convey.So(res.Err, convey.ShouldBeNil)
					convey.So(res.JobID, convey.ShouldEqual, "job-1")
					convey.So(res.Index, convey.ShouldEqual, 4)
					convey.So(res.Rendering.Mode, convey.ShouldEqual, aura.Layered)
					convey.So(res.Rendering.Descriptor.Outline.BaseSides, convey.ShouldEqual, 8)
				})
			})

			convey.Convey("And when rendering fails", func() {
				boom := errors.New("boom")
				r.failOn[aura.Fractal] = boom
				reply := make(chan model.JobResult, 1)
				q.jobChan <- newJob("job-2", 0, aura.Fractal, reply)
				res, ok := await(reply)

				convey.Convey("Then the error is still delivered", func() {
					convey.So(ok, convey.ShouldBeTrue)
					convey.So(errors.Is(res.Err, boom), convey.ShouldBeTrue)
					convey.So(res.Err.Error(), convey.ShouldContainSubstring, "job-2")
				})
			})

			convey.Convey("And when shutting down", func() {
				err := w.Shutdown(context.Background())

				convey.Convey("Then it should shutdown gracefully", func() {
					convey.So(err, convey.ShouldBeNil)
					convey.So(w.Shutdown(context.Background()), convey.ShouldBeNil)
				})
			})
		})

		convey.Convey("When context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			w := worker.NewInMemoryWorker(q, r, worker.WithLogger(logging.Nop()))
			go w.Run(ctx)
			cancel()

			convey.Convey("Then worker should stop", func() {
				select {
				case <-w.Done():
				case <-time.After(time.Second):
					convey.So("worker did not stop", convey.ShouldBeEmpty)
				}
			})
		})

		convey.Convey("When the queue channel is closed", func() {
			w := worker.NewInMemoryWorker(q, r, worker.WithLogger(logging.Nop()))
			go w.Run(context.Background())
			_ = q.Close()

			convey.Convey("Then worker should stop", func() {
				select {
				case <-w.Done():
				case <-time.After(time.Second):
					convey.So("worker did not stop", convey.ShouldBeEmpty)
				}
			})
		})
	})
}

func TestWorkerPool(t *testing.T) {
	convey.Convey("Given a worker pool over a real queue", t, func() {
		q := queue.NewInMemoryQueue(queue.WithCapacity(64))
		r := newMockRenderer()

		convey.Convey("When creating a pool with a non-positive count", func() {
			p := worker.NewPool(0, q, r, worker.WithPoolLogger(logging.Nop()))

			convey.Convey("Then it falls back to a CPU-based size", func() {
				convey.So(p.Size(), convey.ShouldBeGreaterThan, 0)
			})
		})

		convey.Convey("When processing a batch", func() {
			ctx := context.Background()
			p := worker.NewPool(4, q, r, worker.WithPoolLogger(logging.Nop()))
			p.Start(ctx)

			const n = 20
			reply := make(chan model.JobResult, n)
			for i := 0; i < n; i++ {
				convey.So(q.Enqueue(ctx, newJob(fmt.Sprintf("job-%d", i), i, aura.Modes()[i%7], reply)), convey.ShouldBeTrue)
			}

			indexes := map[int]bool{}
			for i := 0; i < n; i++ {
				res, ok := await(reply)
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(res.Err, convey.ShouldBeNil)
				indexes[res.Index] = true
			}

			convey.Convey("Then every job is answered exactly once", func() {
				convey.So(len(indexes), convey.ShouldEqual, n)
				convey.So(r.callCount(), convey.ShouldEqual, n)
				convey.So(p.Stats().Processed, convey.ShouldEqual, n)
				convey.So(p.Stats().Failed, convey.ShouldEqual, 0)
			})

			convey.Convey("And when shutting down", func() {
				err := p.Shutdown(ctx)

				convey.Convey("Then the queue is closed and the pool stops", func() {
					convey.So(err, convey.ShouldBeNil)
					convey.So(q.IsClosed(), convey.ShouldBeTrue)
				})
			})
		})

		convey.Convey("When stopping a pool that never started", func() {
			p := worker.NewPool(2, q, r, worker.WithPoolLogger(logging.Nop()))

			convey.Convey("Then it returns immediately", func() {
				convey.So(func() { p.Stop() }, convey.ShouldNotPanic)
				convey.So(p.Shutdown(context.Background()), convey.ShouldBeNil)
			})
		})
	})
}

func TestWorkerPoolThroughput(t *testing.T) {
	convey.Convey("Given a pool on a fake clock", t, func() {
		clock := clockwork.NewFakeClock()
		q := newMockQueue()
		p := worker.NewPool(2, q, newMockRenderer(),
			worker.WithPoolClock(clock),
			worker.WithMetricsInterval(5*time.Second),
			worker.WithPoolLogger(logging.Nop()),
		)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		p.Start(ctx)

		reply := make(chan model.JobResult, 10)
		for i := 0; i < 10; i++ {
			q.jobChan <- newJob(fmt.Sprintf("job-%d", i), i, aura.Radial, reply)
		}
		for i := 0; i < 10; i++ {
			_, ok := await(reply)
			convey.So(ok, convey.ShouldBeTrue)
		}

		convey.Convey("When the metrics interval elapses", func() {
			clock.BlockUntil(1)
			clock.Advance(5 * time.Second)

			convey.Convey("Then throughput is jobs per second over the interval", func() {
				deadline := time.Now().Add(time.Second)
				for p.Stats().Throughput == 0 && time.Now().Before(deadline) {
					time.Sleep(5 * time.Millisecond)
				}
				convey.So(p.Stats().Throughput, convey.ShouldAlmostEqual, 2.0, 1e-9)
				convey.So(p.Stats().Workers, convey.ShouldEqual, 2)
			})
		})
	})
}

func TestWorkerPoolStopAnswersHeldJobs(t *testing.T) {
	convey.Convey("Given a single worker busy on a slow render with another job waiting", t, func() {
		q := queue.NewInMemoryQueue(queue.WithCapacity(4))
		started := make(chan struct{}, 4)
		gate := make(chan struct{})
		r := worker.RendererFunc(func(_ context.Context, req model.RenderRequest) (model.Rendering, error) {
			started <- struct{}{}
			<-gate
			return model.Rendering{RequestedMode: req.Mode}, nil
		})
		p := worker.NewPool(1, q, r, worker.WithPoolLogger(logging.Nop()))
		ctx := context.Background()
		p.Start(ctx)

		reply := make(chan model.JobResult, 2)
		convey.So(q.Enqueue(ctx, newJob("busy", 0, aura.Radial, reply)), convey.ShouldBeTrue)
		select {
		case <-started:
		case <-time.After(time.Second):
			convey.So("render never started", convey.ShouldBeEmpty)
		}
		convey.So(q.Enqueue(ctx, newJob("waiting", 1, aura.Swirl, reply)), convey.ShouldBeTrue)

		// the dequeue forwarder picks up the second job and waits on the busy worker
		deadline := time.Now().Add(time.Second)
		for q.Len(ctx) > 0 && time.Now().Before(deadline) {
			time.Sleep(time.Millisecond)
		}
		convey.So(q.Len(ctx), convey.ShouldEqual, 0)

		convey.Convey("When the pool is stopped", func() {
			stopped := make(chan struct{})
			go func() {
				p.Stop()
				close(stopped)
			}()
			close(gate)

			convey.Convey("Then both jobs are answered and the pool stops", func() {
				indexes := map[int]bool{}
				for i := 0; i < 2; i++ {
					res, ok := await(reply)
					convey.So(ok, convey.ShouldBeTrue)
					if res.Err != nil {
						convey.So(errors.Is(res.Err, queue.ErrAbandoned), convey.ShouldBeTrue)
					}
					indexes[res.Index] = true
				}
				convey.So(indexes, convey.ShouldResemble, map[int]bool{0: true, 1: true})

				select {
				case <-stopped:
				case <-time.After(time.Second):
					convey.So("pool did not stop", convey.ShouldBeEmpty)
				}
			})
		})
	})
}

func TestRendererFunc(t *testing.T) {
	convey.Convey("Given a function renderer", t, func() {
		var got aura.Mode
		var r worker.Renderer = worker.RendererFunc(func(_ context.Context, req model.RenderRequest) (model.Rendering, error) {
			got = req.Mode
			return model.Rendering{ID: "fn"}, nil
		})

		res, err := r.Render(context.Background(), model.RenderRequest{Mode: aura.Particle})

		convey.So(err, convey.ShouldBeNil)
		convey.So(res.ID, convey.ShouldEqual, "fn")
		convey.So(got, convey.ShouldEqual, aura.Particle)
	})
}
