package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/diag"
	"github.com/cleared-dev/tally/internal/gitops"
	"github.com/cleared-dev/tally/internal/journal"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/parselog"
)

func newAddCommand(g *globals) *cobra.Command {
	var flags sessionFlags
	var repo string
	var what string

	cmd := &cobra.Command{
		Use:   "add <text...>",
		Short: "Parse a quick-entry line and append it to the register",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProject(repo)
			if err != nil {
				return err
			}

			rec := &diag.Recorder{}
			c, err := flags.calculator(cmd, cfg, diag.Tee(rec, diag.LogSink{Log: g.log}))
			if err != nil {
				return err
			}

			text := strings.Join(args, " ")
			txns := collect(c.Calc(flags.entryKind(cfg), text), c.DefaultDate(), what)
			if len(txns) == 0 {
				return fmt.Errorf("no transactions found in %q", text)
			}

			ids, err := journal.NewService(repo).Append(txns)
			if err != nil {
				return err
			}

			if err := parselog.Append(repo, parselog.FromEvents(now(), "add", rec.Events)); err != nil {
				g.log.Warn().Err(err).Msg("writing parse log")
			}

			out := cmd.OutOrStdout()
			for i, txn := range txns {
				fmt.Fprintf(out, "%s  %-10s  %-7s  %12s  %s\n", ids[i], txn.Date, txn.Kind, model.FormatAmount(txn.Amount), describe(txn))
			}

			if cfg.Git.AutoCommit && gitops.IsRepo(repo) {
				hash, err := gitops.Commit(repo, "add: "+strings.Join(ids, ", "), author(cfg))
				if err != nil {
					return fmt.Errorf("committing: %w", err)
				}
				g.log.Debug().Str("commit", hash).Msg("committed")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&repo, "repo", ".", "project directory")
	cmd.Flags().StringVar(&what, "what", "", "free-form note stored with every record")
	flags.bindEntry(cmd)
	flags.bindDate(cmd)
	flags.bindResolver(cmd)

	return cmd
}
