package bench

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iron-Ham/threadlab/internal/counter"
	"github.com/Iron-Ham/threadlab/internal/event"
)

func TestDeltas_ShapeAndRange(t *testing.T) {
	d := Deltas(42, 4, 1000, 100)
	require.Len(t, d, 4)
	for i, slice := range d {
		require.Lenf(t, slice, 1000, "thread %d", i)
		for _, v := range slice {
			if v < -100 || v > 100 {
				t.Fatalf("delta %d out of range [-100,100]", v)
			}
		}
	}
}

func TestDeltas_Deterministic(t *testing.T) {
	a := Deltas(7, 3, 50, 100)
	b := Deltas(7, 3, 50, 100)
	assert.Equal(t, a, b)

	c := Deltas(8, 3, 50, 100)
	assert.NotEqual(t, a, c)
}

func TestDeltas_ZeroMaxDelta(t *testing.T) {
	for _, slice := range Deltas(1, 2, 10, 0) {
		for _, v := range slice {
			assert.Equal(t, int64(0), v)
		}
	}
}

func TestSum(t *testing.T) {
	assert.Equal(t, int64(0), Sum(nil))
	assert.Equal(t, int64(3), Sum([][]int64{{1, 2}, {-5, 5}}))
}

func TestRunTrial_SynchronizedMatchesExactSum(t *testing.T) {
	for _, threads := range []int{1, 2, 4, 8, 16} {
		deltas := Deltas(uint64(threads)*31, threads, 1000, 100)
		want := Sum(deltas)

		atomicTrial, err := RunTrial(context.Background(), counter.NewAtomic(), deltas)
		require.NoError(t, err)
		mutexTrial, err := RunTrial(context.Background(), counter.NewMutex(), deltas)
		require.NoError(t, err)

		assert.Equalf(t, want, atomicTrial.Final, "atomic, %d threads", threads)
		assert.Equalf(t, want, mutexTrial.Final, "mutex, %d threads", threads)
		assert.Equal(t, atomicTrial.Final, mutexTrial.Final)
		assert.True(t, atomicTrial.Consistent())
		assert.Equal(t, int64(0), mutexTrial.Drift())
		assert.Equal(t, threads, atomicTrial.Threads)
		assert.Equal(t, 1000, atomicTrial.Iterations)
	}
}

func TestRunTrial_ResetsCounter(t *testing.T) {
	c := counter.NewAtomic()
	c.Add(12345)

	deltas := [][]int64{{1, 1}, {-1}}
	trial, err := RunTrial(context.Background(), c, deltas)
	require.NoError(t, err)
	assert.Equal(t, int64(1), trial.Final)
}

func TestRunTrial_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunTrial(ctx, counter.NewMutex(), Deltas(1, 2, 10, 100))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSettings_Validate(t *testing.T) {
	require.NoError(t, DefaultSettings().Validate())

	bad := Settings{
		ThreadCounts: []int{0, 2},
		Iterations:   0,
		MaxDelta:     -1,
		Strategies:   []string{"atomic", "bogus"},
	}
	err := bad.Validate()
	require.Error(t, err)
	for _, fragment := range []string{"thread count", "iterations", "max delta", "bogus"} {
		assert.Contains(t, err.Error(), fragment)
	}

	assert.Error(t, Settings{Iterations: 1}.Validate())
}

func TestSettings_ValidateUpperBounds(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Settings)
		fragment string
	}{
		{"max delta overflows delta range", func(s *Settings) { s.MaxDelta = math.MaxInt64/2 + 1 }, "max delta"},
		{"max delta above limit", func(s *Settings) { s.MaxDelta = MaxDelta + 1 }, "max delta"},
		{"too many threads", func(s *Settings) { s.ThreadCounts = []int{2, 100_000_000} }, "thread count"},
		{"too many iterations", func(s *Settings) { s.Iterations = MaxIterations + 1 }, "iterations"},
		{"delta set too large", func(s *Settings) {
			s.ThreadCounts = []int{MaxThreads}
			s.Iterations = MaxTotalDeltas/MaxThreads + 1
		}, "threads * iterations"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			err := s.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.fragment)

			_, err = NewRunner(s)
			assert.Error(t, err)
		})
	}

	t.Run("limits are accepted", func(t *testing.T) {
		s := DefaultSettings()
		s.MaxDelta = MaxDelta
		s.ThreadCounts = []int{MaxThreads}
		s.Iterations = MaxTotalDeltas / MaxThreads
		assert.NoError(t, s.Validate())
	})
}

func TestRunner_LargestMaxDelta(t *testing.T) {
	s := DefaultSettings()
	s.MaxDelta = MaxDelta
	s.ThreadCounts = []int{2}
	s.Iterations = 100
	s.Seed = 5

	r, err := NewRunner(s)
	require.NoError(t, err)

	var trials []Trial
	require.NotPanics(t, func() {
		trials, err = r.Run(context.Background())
	})
	require.NoError(t, err)
	for _, tr := range trials {
		if counter.Synchronized(tr.Strategy) {
			assert.True(t, tr.Consistent(), tr.Strategy)
		}
	}
}

func TestRunner_SynchronizedStrategies(t *testing.T) {
	bus := event.NewBus()
	var published []event.TrialCompletedEvent
	bus.Subscribe(event.TypeTrialCompleted, func(e event.Event) {
		published = append(published, e.(event.TrialCompletedEvent))
	})

	settings := DefaultSettings()
	settings.Seed = 99
	settings.Strategies = []string{counter.Atomic, counter.Mutex}

	r, err := NewRunner(settings, WithBus(bus))
	require.NoError(t, err)
	assert.Equal(t, uint64(99), r.Seed())

	trials, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, trials, 6)
	require.Len(t, published, 6)

	for i := 0; i < len(trials); i += 2 {
		a, m := trials[i], trials[i+1]
		assert.Equal(t, a.Threads, m.Threads)
		assert.Equal(t, a.Expected, m.Expected, "strategies at one thread count share deltas")
		assert.True(t, a.Consistent())
		assert.True(t, m.Consistent())
	}
	assert.Equal(t, []int{2, 2, 4, 4, 8, 8}, []int{
		trials[0].Threads, trials[1].Threads, trials[2].Threads,
		trials[3].Threads, trials[4].Threads, trials[5].Threads,
	})
}

func TestRunner_TimeSeed(t *testing.T) {
	r, err := NewRunner(DefaultSettings())
	require.NoError(t, err)
	assert.NotZero(t, r.Seed())
}

func TestNewRunner_InvalidSettings(t *testing.T) {
	_, err := NewRunner(Settings{})
	assert.Error(t, err)
}

func TestRunner_CancelledBetweenTrials(t *testing.T) {
	settings := DefaultSettings()
	settings.Strategies = []string{counter.Mutex}

	r, err := NewRunner(settings)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	trials, err := r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, trials)
}
