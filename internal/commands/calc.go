package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/diag"
	"github.com/cleared-dev/tally/internal/model"
)

func newCalcCommand(g *globals) *cobra.Command {
	var flags sessionFlags

	cmd := &cobra.Command{
		Use:   "calc <text...>",
		Short: "Parse a quick-entry line and print the records and total",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := flags.calculator(cmd, nil, diag.LogSink{Log: g.log})
			if err != nil {
				return err
			}

			res := c.Calc(flags.entryKind(nil), strings.Join(args, " "))
			out := cmd.OutOrStdout()
			for res.HasMore() {
				txn, _ := res.Next()
				fmt.Fprintf(out, "%-10s  %-7s  %12s  %s\n", txn.Date, txn.Kind, model.FormatAmount(txn.Amount), describe(txn))
			}
			fmt.Fprintf(out, "Total: %s\n", model.FormatAmount(res.Total()))
			return nil
		},
	}

	flags.bindEntry(cmd)
	flags.bindDate(cmd)
	flags.bindResolver(cmd)

	return cmd
}
