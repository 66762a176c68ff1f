package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ultitrack/recorder/internal/config"
	"github.com/ultitrack/recorder/internal/dispatcher"
	"github.com/ultitrack/recorder/internal/roster"
	"github.com/ultitrack/recorder/pkg/core"
)

// NewPlayCommand starts an interactive recording session on stdin.
func NewPlayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Record a match interactively",
		Long: `Reads commands from stdin, one per line. Type "help" for the list.

Example session:
  start
  tap 50 60
  select h1
  tap 40 10
  select h2
  stats`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(flagOptions())
			if err != nil {
				return err
			}
			defer s.close()

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s vs %s\n",
				AppName, CurrentVersion, s.teams.HomeName, s.teams.AwayName)
			_, err = runLines(s.dispatcher, s.parser, cmd.InOrStdin(), cmd.OutOrStdout(), true)
			return err
		},
	}
}

// NewReplayCommand runs a command script non-interactively.
func NewReplayCommand() *cobra.Command {
	var export, strict bool

	cmd := &cobra.Command{
		Use:   "replay <script>",
		Short: "Run a recorded command script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open script: %w", err)
			}
			defer f.Close()

			s, err := newSession(flagOptions())
			if err != nil {
				return err
			}
			defer s.close()

			out := cmd.OutOrStdout()
			failures, err := runLines(s.dispatcher, s.parser, f, out, false)
			if err != nil {
				return fmt.Errorf("failed to read script: %w", err)
			}

			if export {
				result, err := s.dispatcher.Dispatch(dispatcher.Event{Command: ":EXPORT:"})
				if err != nil {
					return err
				}
				fmt.Fprintln(out, result)
			}
			if strict && failures > 0 {
				return fmt.Errorf("%d command(s) failed", failures)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&export, "export", false, "Export the match when the script ends")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero if any command failed")

	return cmd
}

// NewRosterCommand prints the roster in use.
func NewRosterCommand() *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Show the roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(configDir); err != nil {
				config.LoadDefaults()
			}
			path := config.GetRosterConfig().File
			if rosterFile != "" {
				path = rosterFile
			}

			teams, err := roster.Load(path)
			if err != nil {
				return err
			}
			if _, err := roster.New(teams.Roster); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asYAML {
				data, err := roster.Marshal(teams)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SIDE\tTEAM\tID\t#\tNAME\tGENDER")
			fmt.Fprintln(w, "----\t----\t--\t-\t----\t------")
			for _, side := range []core.TeamSide{core.Home, core.Away} {
				name := teams.HomeName
				if side == core.Away {
					name = teams.AwayName
				}
				for _, p := range teams.Roster.For(side) {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", side, name, p.ID, p.Number, p.Name, p.Gender)
				}
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print as a roster file")

	return cmd
}

// NewConfigCommand groups configuration helpers.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a config file with every default",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.WriteExample(configDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	})

	return cmd
}

// NewVersionCommand prints build information.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (built %s)\n", AppName, CurrentVersion, BuildDate)
		},
	}
}
