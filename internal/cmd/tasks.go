package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/threadlab/internal/config"
	"github.com/Iron-Ham/threadlab/internal/report"
	"github.com/Iron-Ham/threadlab/internal/task"
	"github.com/Iron-Ham/threadlab/internal/taskqueue"
	"github.com/Iron-Ham/threadlab/internal/workerpool"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Drain the built-in task batch through a worker pool",
	Long: `Load the six built-in tasks (factorial, fibonacci, digit sum, primality,
gcd, reverse) into a shared FIFO queue and process them with a pool of worker
goroutines. Each worker prints one result line per task; result order is not
deterministic. The total wall-clock time is printed once the pool has drained.

The pool size defaults to one worker per CPU.`,
	Args: cobra.NoArgs,
	RunE: runTasks,
}

func init() {
	tasksCmd.Flags().IntP("workers", "w", 0, "number of worker goroutines (0 = one per CPU)")
	tasksCmd.Flags().Bool("no-timing", false, "do not print the total time")
}

func runTasks(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("workers") {
		cfg.Pool.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if noTiming, _ := cmd.Flags().GetBool("no-timing"); noTiming {
		cfg.Pool.ShowTiming = false
	}
	if err := validateOverrides(cfg); err != nil {
		return err
	}

	logger := createLogger(cfg, cmd.ErrOrStderr())
	defer func() { _ = logger.Close() }()
	bus := newEventBus(logger)

	out := cmd.OutOrStdout()
	batch := task.DefaultBatch()
	logger.Info("running task batch", "tasks", len(batch), "workers", cfg.Pool.Workers)

	q := taskqueue.New(taskqueue.WithBus(bus))
	if _, err := q.EnqueueAll(batch); err != nil {
		return fmt.Errorf("enqueue tasks: %w", err)
	}

	pool := workerpool.New(q, out,
		workerpool.WithLogger(logger),
		workerpool.WithBus(bus),
	)
	if err := pool.Start(cfg.Pool.Workers); err != nil {
		return fmt.Errorf("start workers: %w", err)
	}

	// Timing covers shutdown and join only, with workers already running.
	start := time.Now()
	if err := pool.ShutdownAndWait(); err != nil {
		return fmt.Errorf("shutdown workers: %w", err)
	}
	elapsed := time.Since(start)

	logger.Info("task batch finished",
		"processed", pool.Processed(),
		"workers", pool.Size(),
		"duration_ms", elapsed.Milliseconds())

	if cfg.Pool.ShowTiming {
		report.New(out, cfg.Output.Color).TotalTime(elapsed)
	}
	return nil
}
