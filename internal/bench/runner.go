package bench

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/Iron-Ham/threadlab/internal/counter"
	"github.com/Iron-Ham/threadlab/internal/event"
	"github.com/Iron-Ham/threadlab/internal/logging"
)

// Upper bounds on Settings. MaxTotalDeltas caps the pre-generated delta set
// for a single thread count (threads * iterations int64 values).
const (
	MaxThreads     = 4096
	MaxIterations  = 100_000_000
	MaxDelta       = 1_000_000_000
	MaxTotalDeltas = 1 << 26
)

// Settings controls which trials a Runner executes.
type Settings struct {
	ThreadCounts []int
	Iterations   int
	MaxDelta     int64
	// Seed drives delta generation. Zero picks a time-based seed.
	Seed       uint64
	Strategies []string
}

// DefaultSettings mirrors the classic demo: 2, 4 and 8 threads, 1000
// deltas per thread in [-100, 100], every strategy.
func DefaultSettings() Settings {
	return Settings{
		ThreadCounts: []int{2, 4, 8},
		Iterations:   1000,
		MaxDelta:     100,
		Strategies:   counter.Names(),
	}
}

// Validate checks settings for values that would make a trial meaningless.
func (s Settings) Validate() error {
	var errs []error
	if len(s.ThreadCounts) == 0 {
		errs = append(errs, errors.New("at least one thread count is required"))
	}
	for _, n := range s.ThreadCounts {
		if n <= 0 || n > MaxThreads {
			errs = append(errs, fmt.Errorf("thread count must be between 1 and %d, got %d", MaxThreads, n))
		}
	}
	if s.Iterations <= 0 || s.Iterations > MaxIterations {
		errs = append(errs, fmt.Errorf("iterations must be between 1 and %d, got %d", MaxIterations, s.Iterations))
	}
	if len(errs) == 0 {
		largest := slices.Max(s.ThreadCounts)
		if int64(largest)*int64(s.Iterations) > MaxTotalDeltas {
			errs = append(errs, fmt.Errorf("threads * iterations must not exceed %d, got %d * %d",
				MaxTotalDeltas, largest, s.Iterations))
		}
	}
	if s.MaxDelta < 0 || s.MaxDelta > MaxDelta {
		errs = append(errs, fmt.Errorf("max delta must be between 0 and %d, got %d", MaxDelta, s.MaxDelta))
	}
	if len(s.Strategies) == 0 {
		errs = append(errs, errors.New("at least one strategy is required"))
	}
	for _, name := range s.Strategies {
		if _, err := counter.New(name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Runner executes every (thread count, strategy) trial in order.
type Runner struct {
	settings Settings
	seed     uint64
	logger   *logging.Logger
	bus      *event.Bus
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the runner's logger.
func WithLogger(l *logging.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// WithBus publishes a TrialCompletedEvent after every trial.
func WithBus(bus *event.Bus) Option {
	return func(r *Runner) {
		r.bus = bus
	}
}

// NewRunner validates settings and returns a Runner.
func NewRunner(settings Settings, opts ...Option) (*Runner, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid bench settings: %w", err)
	}
	seed := settings.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	r := &Runner{
		settings: settings,
		seed:     seed,
		logger:   logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithComponent("bench")
	return r, nil
}

// Seed returns the seed used for delta generation.
func (r *Runner) Seed() uint64 {
	return r.seed
}

// Run executes all trials. For each thread count one delta set is
// generated and shared by every strategy. Cancellation is honored between
// trials.
func (r *Runner) Run(ctx context.Context) ([]Trial, error) {
	trials := make([]Trial, 0, len(r.settings.ThreadCounts)*len(r.settings.Strategies))

	for _, threads := range r.settings.ThreadCounts {
		deltas := Deltas(r.seed, threads, r.settings.Iterations, r.settings.MaxDelta)

		for _, name := range r.settings.Strategies {
			c, err := counter.New(name)
			if err != nil {
				return trials, err
			}

			trial, err := RunTrial(ctx, c, deltas)
			if err != nil {
				return trials, err
			}
			trials = append(trials, trial)

			r.logger.Debug("trial completed",
				"strategy", trial.Strategy,
				"threads", trial.Threads,
				"final", trial.Final,
				"expected", trial.Expected,
				"elapsed", trial.Elapsed,
			)
			if counter.Synchronized(name) && !trial.Consistent() {
				// Cannot happen for a correct strategy; surface it loudly.
				r.logger.Error("synchronized counter diverged", "strategy", name, "drift", trial.Drift())
			}
			r.bus.Publish(event.NewTrialCompletedEvent(
				trial.Strategy, trial.Threads, trial.Final, trial.Expected, trial.Elapsed,
			))
		}
	}
	return trials, nil
}
