package bench

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Iron-Ham/threadlab/internal/counter"
)

// Trial is the outcome of running one strategy at one thread count.
type Trial struct {
	Strategy   string
	Threads    int
	Iterations int // Deltas applied per thread
	Final      int64
	Expected   int64
	Elapsed    time.Duration
}

// Consistent reports whether the final value equals the exact sum.
func (t Trial) Consistent() bool {
	return t.Final == t.Expected
}

// Drift returns Final - Expected. Non-zero drift means updates were lost.
func (t Trial) Drift() int64 {
	return t.Final - t.Expected
}

// Deltas generates threads slices of iterations deltas each, uniformly
// drawn from [-maxDelta, maxDelta]. Output is fully determined by seed.
func Deltas(seed uint64, threads, iterations int, maxDelta int64) [][]int64 {
	out := make([][]int64, threads)
	for i := range out {
		rng := rand.New(rand.NewPCG(seed, uint64(i)))
		d := make([]int64, iterations)
		for j := range d {
			d[j] = rng.Int64N(2*maxDelta+1) - maxDelta
		}
		out[i] = d
	}
	return out
}

// Sum returns the exact arithmetic sum of every delta.
func Sum(deltas [][]int64) int64 {
	var total int64
	for _, d := range deltas {
		for _, v := range d {
			total += v
		}
	}
	return total
}

// RunTrial resets c, applies deltas[i] from goroutine i, and reports the
// final value and elapsed time. The context is checked before workers are
// released; a trial that has started always runs to completion.
func RunTrial(ctx context.Context, c counter.Counter, deltas [][]int64) (Trial, error) {
	if err := ctx.Err(); err != nil {
		return Trial{}, err
	}

	c.Reset()

	iterations := 0
	if len(deltas) > 0 {
		iterations = len(deltas[0])
	}

	gate := make(chan struct{})
	var g errgroup.Group
	for _, d := range deltas {
		g.Go(func() error {
			<-gate
			for _, v := range d {
				c.Add(v)
			}
			return nil
		})
	}

	start := time.Now()
	close(gate)
	if err := g.Wait(); err != nil {
		return Trial{}, fmt.Errorf("trial %s/%d: %w", c.Name(), len(deltas), err)
	}
	elapsed := time.Since(start)

	return Trial{
		Strategy:   c.Name(),
		Threads:    len(deltas),
		Iterations: iterations,
		Final:      c.Value(),
		Expected:   Sum(deltas),
		Elapsed:    elapsed,
	}, nil
}
