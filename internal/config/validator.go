package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Iron-Ham/threadlab/internal/bench"
	"github.com/Iron-Ham/threadlab/internal/counter"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "bench.iterations")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// Upper bounds that keep a demo run from exhausting the machine.
const (
	maxWorkers      = 1024
	maxBenchThreads = bench.MaxThreads
	maxIterations   = bench.MaxIterations
	maxDelta        = bench.MaxDelta
	maxTotalDeltas  = bench.MaxTotalDeltas
)

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidColorModes returns the list of valid output.color values
func ValidColorModes() []string {
	return []string{"auto", "always", "never"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validatePool()...)
	errors = append(errors, c.validateBench()...)
	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateOutput()...)

	return errors
}

// validatePool validates the PoolConfig
func (c *Config) validatePool() []ValidationError {
	var errors []ValidationError

	if c.Pool.Workers < 0 {
		errors = append(errors, ValidationError{
			Field:   "pool.workers",
			Value:   c.Pool.Workers,
			Message: "must be non-negative (0 means one per CPU)",
		})
	}
	if c.Pool.Workers > maxWorkers {
		errors = append(errors, ValidationError{
			Field:   "pool.workers",
			Value:   c.Pool.Workers,
			Message: fmt.Sprintf("exceeds maximum of %d", maxWorkers),
		})
	}

	return errors
}

// validateBench validates the BenchConfig
func (c *Config) validateBench() []ValidationError {
	var errors []ValidationError

	if len(c.Bench.ThreadCounts) == 0 {
		errors = append(errors, ValidationError{
			Field:   "bench.thread_counts",
			Value:   c.Bench.ThreadCounts,
			Message: "must list at least one thread count",
		})
	}
	for i, n := range c.Bench.ThreadCounts {
		if n <= 0 || n > maxBenchThreads {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("bench.thread_counts[%d]", i),
				Value:   n,
				Message: fmt.Sprintf("must be between 1 and %d", maxBenchThreads),
			})
		}
	}

	if c.Bench.Iterations <= 0 || c.Bench.Iterations > maxIterations {
		errors = append(errors, ValidationError{
			Field:   "bench.iterations",
			Value:   c.Bench.Iterations,
			Message: fmt.Sprintf("must be between 1 and %d", maxIterations),
		})
	}

	if len(errors) == 0 {
		largest := slices.Max(c.Bench.ThreadCounts)
		if int64(largest)*int64(c.Bench.Iterations) > maxTotalDeltas {
			errors = append(errors, ValidationError{
				Field:   "bench.iterations",
				Value:   c.Bench.Iterations,
				Message: fmt.Sprintf("times the largest thread count (%d) exceeds %d deltas", largest, maxTotalDeltas),
			})
		}
	}

	if c.Bench.MaxDelta < 0 || c.Bench.MaxDelta > maxDelta {
		errors = append(errors, ValidationError{
			Field:   "bench.max_delta",
			Value:   c.Bench.MaxDelta,
			Message: fmt.Sprintf("must be between 0 and %d", maxDelta),
		})
	}

	if len(c.Bench.Strategies) == 0 {
		errors = append(errors, ValidationError{
			Field:   "bench.strategies",
			Value:   c.Bench.Strategies,
			Message: "must list at least one strategy",
		})
	}
	for i, s := range c.Bench.Strategies {
		if !slices.Contains(counter.Names(), s) {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("bench.strategies[%d]", i),
				Value:   s,
				Message: fmt.Sprintf("must be one of: %s", strings.Join(counter.Names(), ", ")),
			})
		}
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}

// validateOutput validates the OutputConfig
func (c *Config) validateOutput() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidColorModes(), c.Output.Color) {
		errors = append(errors, ValidationError{
			Field:   "output.color",
			Value:   c.Output.Color,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidColorModes(), ", ")),
		})
	}

	return errors
}
