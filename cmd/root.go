package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/growth-sim/growth-sim/sim/config"
)

var (
	configPath string // path to the growth config YAML ("" = built-in defaults)
	dataDir    string // root directory holding ServerN trees
	logLevel   string // log verbosity level
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "growth-sim",
	Short: "Synthetic growth telemetry simulator for database monitoring demos",
}

// Execute runs the CLI root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging applies the --log flag.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// loadConfig loads the growth config, falling back to built-in defaults when
// no --config flag was given. Configuration errors are fatal: no entity is
// touched on a bad config.
func loadConfig() *config.Config {
	if configPath == "" {
		return config.Default()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		logrus.Fatalf("Configuration error: %v", err)
	}
	return cfg
}

// init sets up flags shared by all subcommands.
func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to growth config YAML (default: built-in configuration)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", ".", "Root directory for ServerN state and output trees")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warning", "Log level (trace, debug, info, warn, error, fatal, panic)")
}
