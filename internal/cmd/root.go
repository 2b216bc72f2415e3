package cmd

import (
	"fmt"

	"github.com/harrison/linekit/internal/config"
	"github.com/harrison/linekit/internal/logger"
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for linekit
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linekit",
		Short: "Bracket balance checks and line-range replacement for source files",
		Long: `linekit works on source files line by line.

  check    report the first unbalanced brace or parenthesis, or every
           bracket left open at end of file
  replace  swap an inclusive range of lines for the contents of another file
  history  list journaled replacements

With no arguments, check and replace act on the targets from
.linekit/config.yaml (or the built-in defaults).`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: nearest .linekit/config.yaml)")
	cmd.PersistentFlags().String("log-level", "", "Log verbosity: trace, debug, info, warn, error")

	cmd.AddCommand(NewCheckCommand())
	cmd.AddCommand(NewReplaceCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}

// loadConfig reads the config file named by --config, or the nearest
// .linekit/config.yaml, and applies --log-level.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(".")
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if cmd.Flags().Changed("log-level") {
		level, _ := cmd.Flags().GetString("log-level")
		cfg.MergeWithFlags(config.Flags{LogLevel: &level})
	}

	return cfg, nil
}

// newLogger builds the stderr logger for a command.
func newLogger(cmd *cobra.Command, cfg *config.Config) *logger.ConsoleLogger {
	return logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)
}

// changedInt returns a pointer to the flag's value when it was set.
func changedInt(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt(name)
	return &v
}

func changedBool(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetBool(name)
	return &v
}

func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}
