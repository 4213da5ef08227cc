// Package workerpool runs a fixed set of worker goroutines against a
// [taskqueue.Queue].
//
// Each worker loops on Dequeue, executes the task outside the queue lock and
// writes one result line to the pool's sink. Workers exit only after the
// queue is shut down and empty, so [Pool.ShutdownAndWait] never drops a
// queued task.
//
// A Pool is single use: Start may be called once, and once ShutdownAndWait
// returns the queue is drained and no worker goroutine is left running.
//
// Usage:
//
//	q := taskqueue.New()
//	_, _ = q.EnqueueAll(task.DefaultBatch())
//
//	pool := workerpool.New(q, os.Stdout)
//	if err := pool.Start(workerpool.DefaultWorkers()); err != nil {
//	    return err
//	}
//	return pool.ShutdownAndWait()
package workerpool
