package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/Iron-Ham/threadlab/internal/counter"
)

// Config represents the complete threadlab configuration
type Config struct {
	Pool    PoolConfig    `mapstructure:"pool" yaml:"pool"`
	Bench   BenchConfig   `mapstructure:"bench" yaml:"bench"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
}

// PoolConfig controls the task queue worker pool
type PoolConfig struct {
	// Workers is the number of worker goroutines (default: 0, meaning one per CPU)
	Workers int `mapstructure:"workers" yaml:"workers"`
	// ShowTiming prints the total wall-clock time after the pool drains (default: true)
	ShowTiming bool `mapstructure:"show_timing" yaml:"show_timing"`
}

// BenchConfig controls the counter synchronization benchmark
type BenchConfig struct {
	// ThreadCounts lists the worker counts to benchmark, in order (default: [2, 4, 8])
	ThreadCounts []int `mapstructure:"thread_counts" yaml:"thread_counts"`
	// Iterations is the number of deltas each worker applies (default: 1000)
	Iterations int `mapstructure:"iterations" yaml:"iterations"`
	// MaxDelta bounds each random delta to [-MaxDelta, MaxDelta] (default: 100)
	MaxDelta int64 `mapstructure:"max_delta" yaml:"max_delta"`
	// Seed drives delta generation; 0 picks a time-based seed (default: 0)
	Seed uint64 `mapstructure:"seed" yaml:"seed"`
	// Strategies lists the counter strategies to compare
	// Options: "unsynchronized", "atomic", "mutex"
	Strategies []string `mapstructure:"strategies" yaml:"strategies"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether structured logs are written at all (default: false)
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level" yaml:"level"`
	// Dir is the directory for threadlab.log; empty writes to stderr (default: "")
	// Supports ~ for home directory expansion.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// OutputConfig controls how results are rendered
type OutputConfig struct {
	// Color selects styled output: "auto", "always", "never" (default: "auto")
	Color string `mapstructure:"color" yaml:"color"`
}

// ResolveDir expands a leading ~ in the log directory.
func (l *LoggingConfig) ResolveDir() string {
	path := l.Dir
	if path == "~" || (len(path) > 1 && path[:2] == "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	return path
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Pool: PoolConfig{
			Workers:    0, // One worker per CPU
			ShowTiming: true,
		},
		Bench: BenchConfig{
			ThreadCounts: []int{2, 4, 8},
			Iterations:   1000,
			MaxDelta:     100,
			Seed:         0, // Time based
			Strategies:   counter.Names(),
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
			Dir:     "",
		},
		Output: OutputConfig{
			Color: "auto",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Pool defaults
	viper.SetDefault("pool.workers", defaults.Pool.Workers)
	viper.SetDefault("pool.show_timing", defaults.Pool.ShowTiming)

	// Bench defaults
	viper.SetDefault("bench.thread_counts", defaults.Bench.ThreadCounts)
	viper.SetDefault("bench.iterations", defaults.Bench.Iterations)
	viper.SetDefault("bench.max_delta", defaults.Bench.MaxDelta)
	viper.SetDefault("bench.seed", defaults.Bench.Seed)
	viper.SetDefault("bench.strategies", defaults.Bench.Strategies)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)

	// Output defaults
	viper.SetDefault("output.color", defaults.Output.Color)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom is Load against an explicit viper instance.
func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "threadlab")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".threadlab"
	}
	return filepath.Join(home, ".config", "threadlab")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
