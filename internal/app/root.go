// Package app wires the command-line interface: flags, configuration,
// and the run, explore, and history subcommands.
package app

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/roshansmehta/MLB-salary-predictor/internal/config"
	"github.com/roshansmehta/MLB-salary-predictor/pkg/log"
)

var (
	configPath string
	dataPath   string
	outDir     string
	dbPath     string
	logLevel   string

	rootCmd = &cobra.Command{
		Use:   "salary",
		Short: "Predict MLB player salaries from 1986-87 performance data",
		Long: `salary fits and compares five regression techniques on a table of
player-season statistics: best-subset selection, ridge, the lasso,
principal component regression, and partial least squares. Each
technique is tuned on held-out data and the winner is the one with
the lowest test error.

Examples:
  # Full analysis with defaults
  salary run --data Hitters.csv

  # Exploratory report and figures only
  salary explore --data Hitters.csv --out figures/

  # Past results
  salary history`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "player-season CSV (overrides config)")
	rootCmd.PersistentFlags().StringVar(&outDir, "out", "", "output directory for figures and the report (overrides config)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite run-history file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(exploreCmd)
	rootCmd.AddCommand(historyCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig merges the config file with command-line overrides and
// builds the logger.
func loadConfig() (config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, zerolog.Nop(), err
	}
	if dataPath != "" {
		cfg.DataPath = dataPath
	}
	if outDir != "" {
		cfg.OutDir = outDir
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logger := log.New(cfg.LogLevel)
	log.InstallWarningHandler(logger)
	return cfg, logger, cfg.Validate()
}
