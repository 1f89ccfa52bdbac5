package cmd

import (
	"dispatch/config"

	"github.com/spf13/cobra"
)

var debugMode bool

// NewRootCmd builds the dispatch command tree. Running it without a
// subcommand starts the HTTP server.
func NewRootCmd() *cobra.Command {
	serve := NewServeCmd()
	rootCmd := &cobra.Command{
		Use:          "dispatch",
		Short:        "Dispatch admin backend over the dispatch spreadsheet",
		SilenceUsage: true,
		RunE:         serve.RunE,
	}

	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false, "enable debug logging")

	rootCmd.AddCommand(serve)
	rootCmd.AddCommand(NewStatsCmd())
	rootCmd.AddCommand(NewHashPasswordCmd())
	return rootCmd
}

// loadConfig reads the environment and applies the logging settings.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if debugMode {
		cfg.LogLevel = "debug"
	}
	cfg.ConfigureLogging()
	return cfg, nil
}
