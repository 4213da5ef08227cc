package workerpool

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iron-Ham/threadlab/internal/event"
	"github.com/Iron-Ham/threadlab/internal/logging"
	"github.com/Iron-Ham/threadlab/internal/task"
	"github.com/Iron-Ham/threadlab/internal/taskqueue"
)

// syncBuffer is a bytes.Buffer safe for concurrent writers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := strings.TrimSpace(b.buf.String())
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

var expectedLines = []string{
	"Factorial of 10 is 3628800",
	"Fibonacci number at position 20 is 6765",
	"Sum of digits of 12345 is 15",
	"29 is prime",
	"GCD of 56 and 98 is 14",
	"Reverse of 123456 is 654321",
}

func sorted(s []string) []string {
	cp := append([]string(nil), s...)
	sort.Strings(cp)
	return cp
}

func TestPool_DefaultBatch(t *testing.T) {
	for _, workers := range []int{1, 2, 4, 16} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			q := taskqueue.New()
			_, err := q.EnqueueAll(task.DefaultBatch())
			require.NoError(t, err)

			var out syncBuffer
			p := New(q, &out)
			require.NoError(t, p.Start(workers))
			require.NoError(t, p.ShutdownAndWait())

			assert.Equal(t, sorted(expectedLines), sorted(out.Lines()))
			assert.Equal(t, int64(len(expectedLines)), p.Processed())
			assert.Equal(t, 0, q.Len(), "queue must be empty after ShutdownAndWait")
			assert.Equal(t, 0, p.Active(), "no worker may remain live after ShutdownAndWait")
			assert.Equal(t, workers, p.Size())
		})
	}
}

func TestPool_ZeroTasks(t *testing.T) {
	q := taskqueue.New()
	var out syncBuffer
	p := New(q, &out)

	require.NoError(t, p.Start(4))

	done := make(chan error, 1)
	go func() { done <- p.ShutdownAndWait() }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("ShutdownAndWait did not return for an empty queue")
	}

	assert.Empty(t, out.Lines())
	assert.Equal(t, 0, p.Active())
	assert.Equal(t, int64(0), p.Processed())
}

func TestPool_ExactlyOnce(t *testing.T) {
	q := taskqueue.New()
	const total = 500
	for i := range total {
		require.NoError(t, q.Enqueue(task.New(task.KindReverseNumber, i)))
	}

	var mu sync.Mutex
	counts := make(map[int]int, total)
	exec := func(t task.Task) task.Result {
		mu.Lock()
		counts[t.N]++
		mu.Unlock()
		return task.Execute(t)
	}

	p := New(q, nil, WithExecutor(exec))
	require.NoError(t, p.Start(8))
	require.NoError(t, p.ShutdownAndWait())

	require.Len(t, counts, total)
	for n, c := range counts {
		if c != 1 {
			t.Errorf("task %d executed %d times", n, c)
		}
	}
}

func TestPool_SingleWorkerIsFIFO(t *testing.T) {
	q := taskqueue.New()
	_, err := q.EnqueueAll(task.DefaultBatch())
	require.NoError(t, err)

	var out syncBuffer
	p := New(q, &out)
	require.NoError(t, p.Start(1))
	require.NoError(t, p.ShutdownAndWait())

	assert.Equal(t, expectedLines, out.Lines())
}

func TestPool_DrainsTasksEnqueuedWhileRunning(t *testing.T) {
	q := taskqueue.New()
	var out syncBuffer
	p := New(q, &out)
	require.NoError(t, p.Start(3))

	// Workers are already blocked on an empty queue.
	require.Eventually(t, func() bool {
		return q.Status().Waiting == 3
	}, time.Second, time.Millisecond)

	_, err := q.EnqueueAll(task.DefaultBatch())
	require.NoError(t, err)
	require.NoError(t, p.ShutdownAndWait())

	assert.Equal(t, sorted(expectedLines), sorted(out.Lines()))
}

func TestPool_SlowTasksStillDrainAfterShutdown(t *testing.T) {
	q := taskqueue.New()
	for i := range 20 {
		require.NoError(t, q.Enqueue(task.New(task.KindFactorial, i)))
	}

	var executed atomic.Int32
	exec := func(t task.Task) task.Result {
		time.Sleep(2 * time.Millisecond)
		executed.Add(1)
		return task.Execute(t)
	}

	p := New(q, nil, WithExecutor(exec))
	require.NoError(t, p.Start(2))
	require.NoError(t, p.ShutdownAndWait())

	assert.Equal(t, int32(20), executed.Load())
}

func TestPool_StartTwice(t *testing.T) {
	p := New(taskqueue.New(), nil)
	require.NoError(t, p.Start(1))
	assert.True(t, errors.Is(p.Start(1), ErrAlreadyStarted))
	require.NoError(t, p.ShutdownAndWait())
}

func TestPool_ShutdownWithoutStart(t *testing.T) {
	q := taskqueue.New()
	p := New(q, nil)

	assert.ErrorIs(t, p.ShutdownAndWait(), ErrNotStarted)
	assert.True(t, q.Closed(), "queue should be shut down even if the pool never started")
}

func TestPool_DefaultWorkerCount(t *testing.T) {
	p := New(taskqueue.New(), nil)
	require.NoError(t, p.Start(0))
	require.NoError(t, p.ShutdownAndWait())

	assert.Equal(t, DefaultWorkers(), p.Size())
	assert.GreaterOrEqual(t, DefaultWorkers(), 1)
}

func TestPool_PublishesEvents(t *testing.T) {
	bus := event.NewBus()
	var mu sync.Mutex
	counts := map[string]int{}
	processed := 0
	bus.SubscribeAll(func(e event.Event) {
		mu.Lock()
		defer mu.Unlock()
		counts[e.EventType()]++
		if stopped, ok := e.(event.WorkerStoppedEvent); ok {
			processed += stopped.Processed
		}
	})

	q := taskqueue.New(taskqueue.WithBus(bus))
	_, err := q.EnqueueAll(task.DefaultBatch())
	require.NoError(t, err)

	p := New(q, nil, WithBus(bus), WithLogger(logging.NopLogger()))
	require.NoError(t, p.Start(3))
	require.NoError(t, p.ShutdownAndWait())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 6, counts[event.TypeTaskEnqueued])
	assert.Equal(t, 6, counts[event.TypeTaskCompleted])
	assert.Equal(t, 3, counts[event.TypeWorkerStarted])
	assert.Equal(t, 3, counts[event.TypeWorkerStopped])
	assert.Equal(t, 1, counts[event.TypeQueueShutdown])
	assert.Equal(t, 6, processed)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestPool_SinkErrorsAreLogged(t *testing.T) {
	var logs syncBuffer
	q := taskqueue.New()
	_, err := q.EnqueueAll(task.DefaultBatch()[:1])
	require.NoError(t, err)

	p := New(q, failingWriter{}, WithLogger(logging.NewWriterLogger(&logs, logging.LevelWarn)))
	require.NoError(t, p.Start(1))
	require.NoError(t, p.ShutdownAndWait())

	assert.Equal(t, int64(1), p.Processed())
	lines := logs.Lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "disk full")
}

func TestRun(t *testing.T) {
	var out syncBuffer
	n, err := Run(taskqueue.New(), &out, task.DefaultBatch(), 4)
	require.NoError(t, err)

	assert.Equal(t, int64(6), n)
	assert.Equal(t, sorted(expectedLines), sorted(out.Lines()))
}

func TestRun_ClosedQueue(t *testing.T) {
	q := taskqueue.New()
	q.Shutdown()

	_, err := Run(q, nil, task.DefaultBatch(), 2)
	assert.ErrorIs(t, err, taskqueue.ErrQueueClosed)
}
