package event

import "time"

// Event type identifiers.
const (
	TypeTaskEnqueued   = "task.enqueued"
	TypeTaskCompleted  = "task.completed"
	TypeQueueShutdown  = "queue.shutdown"
	TypeWorkerStarted  = "worker.started"
	TypeWorkerStopped  = "worker.stopped"
	TypeTrialCompleted = "bench.trial_completed"
)

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a "category.action" identifier.
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Queue Events
// -----------------------------------------------------------------------------

// TaskEnqueuedEvent is emitted after a task is appended to the queue.
type TaskEnqueuedEvent struct {
	baseEvent
	Task  string // Short task description, e.g. "gcd(56,98)"
	Depth int    // Queue length after the append
}

// NewTaskEnqueuedEvent creates a TaskEnqueuedEvent.
func NewTaskEnqueuedEvent(task string, depth int) TaskEnqueuedEvent {
	return TaskEnqueuedEvent{
		baseEvent: newBaseEvent(TypeTaskEnqueued),
		Task:      task,
		Depth:     depth,
	}
}

// QueueShutdownEvent is emitted once, when the queue stops accepting tasks.
type QueueShutdownEvent struct {
	baseEvent
	Remaining int // Tasks still queued when shutdown was signaled
}

// NewQueueShutdownEvent creates a QueueShutdownEvent.
func NewQueueShutdownEvent(remaining int) QueueShutdownEvent {
	return QueueShutdownEvent{
		baseEvent: newBaseEvent(TypeQueueShutdown),
		Remaining: remaining,
	}
}

// -----------------------------------------------------------------------------
// Worker Pool Events
// -----------------------------------------------------------------------------

// WorkerStartedEvent is emitted when a worker goroutine begins its loop.
type WorkerStartedEvent struct {
	baseEvent
	WorkerID int
}

// NewWorkerStartedEvent creates a WorkerStartedEvent.
func NewWorkerStartedEvent(workerID int) WorkerStartedEvent {
	return WorkerStartedEvent{
		baseEvent: newBaseEvent(TypeWorkerStarted),
		WorkerID:  workerID,
	}
}

// WorkerStoppedEvent is emitted when a worker observes shutdown on an
// empty queue and exits.
type WorkerStoppedEvent struct {
	baseEvent
	WorkerID  int
	Processed int // Tasks this worker executed
}

// NewWorkerStoppedEvent creates a WorkerStoppedEvent.
func NewWorkerStoppedEvent(workerID, processed int) WorkerStoppedEvent {
	return WorkerStoppedEvent{
		baseEvent: newBaseEvent(TypeWorkerStopped),
		WorkerID:  workerID,
		Processed: processed,
	}
}

// TaskCompletedEvent is emitted after a worker executes a task.
type TaskCompletedEvent struct {
	baseEvent
	WorkerID int
	Task     string
	Result   string
	Duration time.Duration
}

// NewTaskCompletedEvent creates a TaskCompletedEvent.
func NewTaskCompletedEvent(workerID int, task, result string, duration time.Duration) TaskCompletedEvent {
	return TaskCompletedEvent{
		baseEvent: newBaseEvent(TypeTaskCompleted),
		WorkerID:  workerID,
		Task:      task,
		Result:    result,
		Duration:  duration,
	}
}

// -----------------------------------------------------------------------------
// Benchmark Events
// -----------------------------------------------------------------------------

// TrialCompletedEvent is emitted after one counter benchmark trial.
type TrialCompletedEvent struct {
	baseEvent
	Strategy string
	Threads  int
	Final    int64
	Expected int64
	Elapsed  time.Duration
}

// NewTrialCompletedEvent creates a TrialCompletedEvent.
func NewTrialCompletedEvent(strategy string, threads int, final, expected int64, elapsed time.Duration) TrialCompletedEvent {
	return TrialCompletedEvent{
		baseEvent: newBaseEvent(TypeTrialCompleted),
		Strategy:  strategy,
		Threads:   threads,
		Final:     final,
		Expected:  expected,
		Elapsed:   elapsed,
	}
}
