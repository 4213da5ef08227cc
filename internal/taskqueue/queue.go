package taskqueue

import (
	"errors"
	"sync"

	"github.com/eapache/queue"

	"github.com/Iron-Ham/threadlab/internal/event"
	"github.com/Iron-Ham/threadlab/internal/task"
)

// ErrQueueClosed is returned by Enqueue once Shutdown has been called.
var ErrQueueClosed = errors.New("task queue is shut down")

// Queue is a FIFO of tasks with a one-shot shutdown flag.
// All methods are safe for concurrent use.
type Queue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending *queue.Queue // of task.Task, guarded by mu
	closed  bool

	enqueued int
	dequeued int
	waiting  int

	bus *event.Bus
}

// Option configures a Queue.
type Option func(*Queue)

// WithBus publishes queue events on the given bus. Events are published
// after the queue lock is released.
func WithBus(bus *event.Bus) Option {
	return func(q *Queue) {
		q.bus = bus
	}
}

// New creates an empty, open Queue.
func New(opts ...Option) *Queue {
	q := &Queue{
		pending: queue.New(),
	}
	q.cond = sync.NewCond(&q.mu)
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Enqueue appends t and wakes one waiting consumer.
// Returns ErrQueueClosed if Shutdown has already been called.
func (q *Queue) Enqueue(t task.Task) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrQueueClosed
	}
	q.pending.Add(t)
	q.enqueued++
	depth := q.pending.Length()
	q.mu.Unlock()

	q.cond.Signal()
	q.bus.Publish(event.NewTaskEnqueuedEvent(t.String(), depth))
	return nil
}

// EnqueueAll appends every task in order. It stops at the first failure and
// returns the number of tasks accepted.
func (q *Queue) EnqueueAll(tasks []task.Task) (int, error) {
	for i, t := range tasks {
		if err := q.Enqueue(t); err != nil {
			return i, err
		}
	}
	return len(tasks), nil
}

// Dequeue removes and returns the oldest task, blocking while the queue is
// empty and open. It returns false only when the queue is closed and empty.
func (q *Queue) Dequeue() (task.Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.pending.Length() == 0 && !q.closed {
		q.waiting++
		q.cond.Wait()
		q.waiting--
	}
	if q.pending.Length() == 0 {
		return task.Task{}, false
	}

	t := q.pending.Remove().(task.Task)
	q.dequeued++
	return t, true
}

// TryDequeue is the non-blocking form of Dequeue. It returns false when no
// task is immediately available.
func (q *Queue) TryDequeue() (task.Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.pending.Length() == 0 {
		return task.Task{}, false
	}
	t := q.pending.Remove().(task.Task)
	q.dequeued++
	return t, true
}

// Shutdown raises the shutdown flag and wakes every blocked consumer so each
// re-evaluates its wait predicate. Calling Shutdown more than once is a
// no-op.
func (q *Queue) Shutdown() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	remaining := q.pending.Length()
	q.mu.Unlock()

	q.cond.Broadcast()
	q.bus.Publish(event.NewQueueShutdownEvent(remaining))
}

// Len returns the number of pending tasks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending.Length()
}

// Closed reports whether Shutdown has been called.
func (q *Queue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Status returns a snapshot of the queue's counters.
func (q *Queue) Status() Status {
	q.mu.Lock()
	defer q.mu.Unlock()

	return Status{
		Pending:  q.pending.Length(),
		Enqueued: q.enqueued,
		Dequeued: q.dequeued,
		Waiting:  q.waiting,
		Closed:   q.closed,
	}
}
