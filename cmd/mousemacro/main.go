package main

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/mousemacro/cmd/mousemacro/commands"
	"github.com/teranos/mousemacro/config"
	"github.com/teranos/mousemacro/logger"
)

var rootCmd = &cobra.Command{
	Use:   "mousemacro",
	Short: "mousemacro - scheduled, randomized mouse click automation",
	Long: `mousemacro - scheduled, randomized mouse click automation.

Runs one macro at a time: a click action repeated at a base point, with optional
random spread, random delay and a daily time window. Runs are paused, resumed
and stopped from stdin or global hotkeys and journaled to SQLite.

Available commands:
  run      - Run the configured macro
  capture  - Capture the coordinates of the next mouse click
  config   - Show and validate configuration
  journal  - Inspect past runs
  version  - Show build information

Examples:
  mousemacro capture                       # Click somewhere to read its coordinates
  mousemacro run --x 640 --y 480 --repeat 10
  mousemacro run --live --delay 250 --min-delay 0 --max-delay 100
  mousemacro journal ls`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if debug, _ := cmd.Flags().GetBool("debug"); debug && verbosity < logger.VerbosityDebug {
			verbosity = logger.VerbosityDebug
		}
		jsonOutput, _ := cmd.Flags().GetBool("json")
		if path, _ := cmd.Flags().GetString("config"); path != "" {
			config.SetConfigFile(path)
		}

		if err := logger.Initialize(jsonOutput, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if jsonOutput {
			pterm.DisableStyling()
		}
		logger.Logger.Debugw("Logger initialized", "level", logger.LevelName(verbosity))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("debug", false, "Debug logging (same as -vv)")
	rootCmd.PersistentFlags().Bool("json", false, "Machine-readable output")
	rootCmd.PersistentFlags().String("config", "", "Config file layered above the user and project configs")

	rootCmd.AddCommand(commands.RunCmd)
	rootCmd.AddCommand(commands.CaptureCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.JournalCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		commands.PrintError(err)
		os.Exit(1)
	}
}
