// Package taskqueue provides the one-shot FIFO queue shared by the worker
// pool.
//
// A single mutex guards both the pending tasks and the shutdown flag, and a
// condition variable bound to that mutex is signaled on every insertion and
// broadcast on shutdown. Consumers wait on the predicate "queue non-empty OR
// shutdown requested", so neither a lost wake-up nor a spurious wake-up can
// strand or mislead a worker.
//
// Shutdown is not cancellation: tasks queued before [Queue.Shutdown] are
// still handed out, and [Queue.Dequeue] reports false only once the queue is
// both closed and empty. A closed queue cannot be reopened.
//
// Tasks may be enqueued while consumers are already running. Enqueueing
// after Shutdown is a caller error and is rejected with [ErrQueueClosed].
//
// Usage:
//
//	q := taskqueue.New()
//	for _, t := range task.DefaultBatch() {
//	    _ = q.Enqueue(t)
//	}
//	go func() {
//	    for {
//	        t, ok := q.Dequeue()
//	        if !ok {
//	            return
//	        }
//	        fmt.Println(task.Execute(t).Text)
//	    }
//	}()
//	q.Shutdown()
package taskqueue
