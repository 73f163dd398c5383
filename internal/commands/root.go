package commands

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/buildinfo"
	"github.com/cleared-dev/tally/internal/logger"
)

// now is the clock behind default dates, year windows and parse-log timestamps.
var now = time.Now

// globals carries state shared by every subcommand.
type globals struct {
	logLevel string
	logJSON  bool
	log      zerolog.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	g := &globals{log: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:     "tally",
		Short:   "Quick-entry transaction calculator",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := logger.ParseLevel(g.logLevel)
			if err != nil {
				return err
			}
			if g.logJSON {
				g.log = logger.NewWithWriter(cmd.ErrOrStderr(), level)
			} else {
				g.log = logger.NewConsole(cmd.ErrOrStderr(), level)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "log level (debug, info, warn, error, off)")
	rootCmd.PersistentFlags().BoolVar(&g.logJSON, "log-json", false, "write logs as JSON")

	rootCmd.AddCommand(newInitCommand(g))
	rootCmd.AddCommand(newCalcCommand(g))
	rootCmd.AddCommand(newAddCommand(g))
	rootCmd.AddCommand(newImportCommand(g))
	rootCmd.AddCommand(newDateCommand())

	return rootCmd
}
