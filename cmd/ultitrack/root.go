package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configDir  string
	logLevel   string
	rosterFile string
	matchName  string
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   AppName,
		Short: "Record an ultimate frisbee match from the terminal",
		Long: `ultitrack records possession events for an ultimate frisbee match.
Commands are read one per line; taps are percentages of field width and length.

Examples:
  ultitrack play
  ultitrack play --roster teams.yaml --match "Club Final"
  ultitrack replay game.txt --export
  ultitrack roster
  ultitrack config init`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".",
		"Directory holding ultitrack.cfg.json and .env")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override the configured log level")
	rootCmd.PersistentFlags().StringVar(&rosterFile, "roster", "",
		"YAML roster file (default: built-in teams)")
	rootCmd.PersistentFlags().StringVar(&matchName, "match", "",
		"Match name used in logs and exports")

	rootCmd.AddCommand(NewPlayCommand())
	rootCmd.AddCommand(NewReplayCommand())
	rootCmd.AddCommand(NewRosterCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

func flagOptions() sessionOptions {
	return sessionOptions{
		ConfigDir:  configDir,
		LogLevel:   logLevel,
		RosterFile: rosterFile,
		MatchName:  matchName,
	}
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
