// Package event provides a synchronous pub-sub bus used to observe the
// task queue, the worker pool and the counter benchmark without coupling
// them to logging or rendering code.
//
// # Event Categories
//
// Queue:
//   - [TaskEnqueuedEvent]: a task was appended to the queue
//   - [QueueShutdownEvent]: the shutdown flag was raised
//
// Worker pool:
//   - [WorkerStartedEvent], [WorkerStoppedEvent]: worker lifecycle
//   - [TaskCompletedEvent]: a worker finished executing a task
//
// Benchmark:
//   - [TrialCompletedEvent]: one strategy/thread-count trial finished
//
// # Thread Safety
//
// [Bus] is safe for concurrent use. Handlers run synchronously on the
// publishing goroutine, so a handler must not block and must not call back
// into the component that published the event while that component holds a
// lock. A panicking handler is recovered and does not stop delivery to the
// remaining handlers.
//
// # Usage
//
//	bus := event.NewBus()
//	bus.Subscribe(event.TypeTaskCompleted, func(e event.Event) {
//	    done := e.(event.TaskCompletedEvent)
//	    log.Printf("worker %d: %s", done.WorkerID, done.Result)
//	})
//	bus.SubscribeAll(func(e event.Event) {
//	    log.Printf("event %s", e.EventType())
//	})
//
// Event types follow the pattern "category.action".
package event
