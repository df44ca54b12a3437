package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hivelings-server/internal/engine"
	"hivelings-server/internal/version"
	"hivelings-server/pkg/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hivelings",
		Short: "Hivelings - deterministic foraging simulation",
		Long: `hivelings runs a tick-based world where hivelings gather food
into hive entrances, driven by a pluggable decision-maker (mind).

Every run is reproducible from its scenario and seed and can be
recorded to a replay file and verified later.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level, _ := cmd.Flags().GetString("log-level")
			format, _ := cmd.Flags().GetString("log-format")
			if level == "" {
				level = os.Getenv("LOG_LEVEL")
			}
			if format == "" {
				format = os.Getenv("LOG_FORMAT")
			}
			logger.Configure(logger.Options{Level: level, Format: format})
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config (defaults are used when empty)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error (env LOG_LEVEL)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json (env LOG_FORMAT)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newReplayCmd(),
		newMindCmd(),
		newHistoryCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(version.Info())
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), version.String())
			}
		},
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

// loadConfig читает --config или возвращает значения по умолчанию.
func loadConfig(cmd *cobra.Command) (engine.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return engine.DefaultConfig(), nil
	}
	return engine.LoadConfig(path)
}
