package cmd

import (
	"fmt"
	"io"

	"github.com/Iron-Ham/threadlab/internal/config"
	"github.com/Iron-Ham/threadlab/internal/event"
	"github.com/Iron-Ham/threadlab/internal/logging"
)

// createLogger returns a logger if logging is enabled in config, or a
// NopLogger if it is disabled or cannot be created.
func createLogger(cfg *config.Config, stderr io.Writer) *logging.Logger {
	if !cfg.Logging.Enabled {
		return logging.NopLogger()
	}

	logger, err := logging.NewLogger(cfg.Logging.ResolveDir(), cfg.Logging.Level)
	if err != nil {
		// Log creation failure shouldn't prevent the command from running
		fmt.Fprintf(stderr, "Warning: failed to create logger: %v\n", err)
		return logging.NopLogger()
	}
	return logger
}

// validateOverrides re-checks cfg after command-line flags have been
// applied on top of the loaded configuration.
func validateOverrides(cfg *config.Config) error {
	if errs := cfg.Validate(); len(errs) > 0 {
		return fmt.Errorf("invalid flags: %w", config.ValidationErrors(errs))
	}
	return nil
}

// newEventBus returns a bus that mirrors every lifecycle event into the
// debug log.
func newEventBus(logger *logging.Logger) *event.Bus {
	bus := event.NewBus()
	bus.OnPanic(func(eventType string, recovered any, stack []byte) {
		logger.Error("event handler panicked",
			"event_type", eventType,
			"panic", fmt.Sprint(recovered),
			"stack", string(stack))
	})

	if !logger.Enabled(logging.LevelDebug) {
		return bus
	}

	log := logger.WithComponent("events")
	bus.SubscribeAll(func(e event.Event) {
		log.Debug("event", append([]any{"event_type", e.EventType()}, eventAttrs(e)...)...)
	})
	return bus
}

func eventAttrs(e event.Event) []any {
	switch ev := e.(type) {
	case event.TaskEnqueuedEvent:
		return []any{"task", ev.Task, "depth", ev.Depth}
	case event.QueueShutdownEvent:
		return []any{"remaining", ev.Remaining}
	case event.WorkerStartedEvent:
		return []any{"worker_id", ev.WorkerID}
	case event.WorkerStoppedEvent:
		return []any{"worker_id", ev.WorkerID, "processed", ev.Processed}
	case event.TaskCompletedEvent:
		return []any{"worker_id", ev.WorkerID, "task", ev.Task, "duration_ms", ev.Duration.Milliseconds()}
	case event.TrialCompletedEvent:
		return []any{
			"strategy", ev.Strategy,
			"threads", ev.Threads,
			"final", ev.Final,
			"expected", ev.Expected,
			"elapsed_ms", ev.Elapsed.Milliseconds(),
		}
	default:
		return nil
	}
}
