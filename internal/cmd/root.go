package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/threadlab/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "threadlab",
	Short: "Task queue worker pool and counter synchronization demos",
	Long: `threadlab runs two small concurrency demonstrations:

  tasks  drains a fixed batch of numeric tasks through a shared FIFO queue
         with a pool of worker goroutines
  bench  compares unsynchronized, atomic and mutex-guarded shared counters
         across several goroutine counts`,
	SilenceUsage: true,
}

// ExecuteContext runs the root command with ctx. The bench command stops
// between trials once ctx is canceled.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/threadlab/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/threadlab")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("THREADLAB")
	// e.g., THREADLAB_POOL_WORKERS for pool.workers
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
