// Package logging provides structured logging for threadlab runs.
//
// It wraps log/slog with a JSON handler. A [Logger] writes either to
// {dir}/threadlab.log or, when no directory is configured, to stderr so that
// stdout stays reserved for program results.
//
// # Context Propagation
//
// Child loggers carry persistent attributes:
//
//	logger, err := logging.NewLogger("", "debug")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	poolLog := logger.WithComponent("workerpool")
//	poolLog.WithWorker(3).Debug("task done", "task", "gcd(56,98)")
//
// Output:
//
//	{"time":"...","level":"DEBUG","msg":"task done","component":"workerpool","worker_id":3,"task":"gcd(56,98)"}
//
// # Thread Safety
//
// [Logger] is safe for concurrent use; child loggers share the parent's
// handler and writer.
package logging
