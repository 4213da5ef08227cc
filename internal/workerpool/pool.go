package workerpool

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/Iron-Ham/threadlab/internal/event"
	"github.com/Iron-Ham/threadlab/internal/logging"
	"github.com/Iron-Ham/threadlab/internal/task"
	"github.com/Iron-Ham/threadlab/internal/taskqueue"
)

// Sentinel errors returned by pool operations.
var (
	ErrAlreadyStarted = errors.New("worker pool already started")
	ErrNotStarted     = errors.New("worker pool was never started")
)

// Executor evaluates a task. It must be safe for concurrent use.
type Executor func(task.Task) task.Result

// DefaultWorkers returns the detected hardware parallelism.
func DefaultWorkers() int {
	return runtime.NumCPU()
}

// Pool drains a task queue with a fixed number of workers.
type Pool struct {
	queue  *taskqueue.Queue
	exec   Executor
	logger *logging.Logger
	bus    *event.Bus

	sinkMu sync.Mutex
	sink   io.Writer

	mu      sync.Mutex
	started bool
	size    int
	wg      conc.WaitGroup

	active    atomic.Int32
	processed atomic.Int64
}

// Option configures a Pool.
type Option func(*Pool)

// WithLogger sets the pool's logger. The default discards everything.
func WithLogger(l *logging.Logger) Option {
	return func(p *Pool) {
		p.logger = l
	}
}

// WithBus publishes worker lifecycle events on the given bus.
func WithBus(bus *event.Bus) Option {
	return func(p *Pool) {
		p.bus = bus
	}
}

// WithExecutor replaces task.Execute as the task evaluator.
func WithExecutor(exec Executor) Option {
	return func(p *Pool) {
		p.exec = exec
	}
}

// New creates a Pool that consumes q and writes result lines to sink.
// A nil sink discards output.
func New(q *taskqueue.Queue, sink io.Writer, opts ...Option) *Pool {
	if sink == nil {
		sink = io.Discard
	}
	p := &Pool{
		queue:  q,
		sink:   sink,
		exec:   task.Execute,
		logger: logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.WithComponent("workerpool")
	return p
}

// Start spawns count workers. A count <= 0 means DefaultWorkers().
func (p *Pool) Start(count int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return ErrAlreadyStarted
	}
	if count <= 0 {
		count = DefaultWorkers()
	}
	p.started = true
	p.size = count

	p.logger.Info("starting workers", "count", count, "queued", p.queue.Len())
	for id := 1; id <= count; id++ {
		p.active.Add(1)
		p.wg.Go(func() {
			p.work(id)
		})
	}
	return nil
}

// ShutdownAndWait signals shutdown on the queue and blocks until every
// worker has drained the queue and exited. The queue is shut down even when
// the pool was never started, in which case ErrNotStarted is returned.
func (p *Pool) ShutdownAndWait() error {
	p.queue.Shutdown()

	p.mu.Lock()
	started := p.started
	p.mu.Unlock()
	if !started {
		return ErrNotStarted
	}

	p.wg.Wait()
	p.logger.Info("workers stopped", "processed", p.processed.Load())
	return nil
}

// Size returns the number of workers spawned by Start.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.size
}

// Active returns the number of worker goroutines that have not yet exited.
func (p *Pool) Active() int {
	return int(p.active.Load())
}

// Processed returns the number of tasks executed so far.
func (p *Pool) Processed() int64 {
	return p.processed.Load()
}

// work is the worker loop.
func (p *Pool) work(id int) {
	defer p.active.Add(-1)

	log := p.logger.WithWorker(id)
	p.bus.Publish(event.NewWorkerStartedEvent(id))

	processed := 0
	for {
		t, ok := p.queue.Dequeue()
		if !ok {
			break
		}

		start := time.Now()
		res := p.exec(t)
		elapsed := time.Since(start)

		p.emit(log, res)
		processed++
		p.processed.Add(1)

		log.Debug("task done", "task", t.String(), "duration", elapsed)
		p.bus.Publish(event.NewTaskCompletedEvent(id, t.String(), res.Text, elapsed))
	}

	log.Debug("worker exiting", "processed", processed)
	p.bus.Publish(event.NewWorkerStoppedEvent(id, processed))
}

// emit writes one result line. Writes are serialized so lines from
// different workers never interleave.
func (p *Pool) emit(log *logging.Logger, res task.Result) {
	p.sinkMu.Lock()
	_, err := fmt.Fprintln(p.sink, res.Text)
	p.sinkMu.Unlock()
	if err != nil {
		log.Warn("failed to write result", "task", res.Task.String(), "error", err)
	}
}

// Run enqueues tasks, starts workers and waits for the queue to drain. It
// returns the number of tasks processed.
func Run(q *taskqueue.Queue, sink io.Writer, tasks []task.Task, workers int, opts ...Option) (int64, error) {
	if _, err := q.EnqueueAll(tasks); err != nil {
		return 0, fmt.Errorf("enqueue tasks: %w", err)
	}

	p := New(q, sink, opts...)
	if err := p.Start(workers); err != nil {
		return 0, fmt.Errorf("start workers: %w", err)
	}
	if err := p.ShutdownAndWait(); err != nil {
		return p.Processed(), fmt.Errorf("shutdown workers: %w", err)
	}
	return p.Processed(), nil
}
