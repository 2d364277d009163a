package main

import (
	"github.com/spf13/cobra"

	"snapdiff/internal/config"
	"snapdiff/internal/logging"
	"snapdiff/internal/version"
)

var (
	// logLevelFlag is the CLI --log-level flag value
	logLevelFlag string
	// logFormatFlag is the CLI --log-format flag value
	logFormatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "snapdiff",
	Short: "snapdiff - structured diff for snapshot documents",
	Long: `snapdiff compares two snapshots of an entity document (an identifier, a
metadata block and a list of candidate records) and reports which metadata
fields changed and which candidates were added, removed or edited.

Inputs are JSON or YAML files; the report is a compact JSON document with
time fields normalized to UTC+2.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("snapdiff version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn or error (default: from config)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "",
		"Log format: json or human (default: from config)")
}

// newLogger builds the command logger from config, with CLI flags taking
// precedence.
func newLogger(cfg *config.Config) *logging.Logger {
	level := cfg.Logging.Level
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	format := cfg.Logging.Format
	if logFormatFlag != "" {
		format = logFormatFlag
	}
	return logging.NewLogger(logging.Config{
		Format: logging.Format(format),
		Level:  logging.ParseLevel(level),
	})
}
