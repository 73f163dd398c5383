package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newDateCommand() *cobra.Command {
	var flags sessionFlags

	cmd := &cobra.Command{
		Use:   "date <text...>",
		Short: "Resolve a free-text date",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := flags.resolver(cmd, nil)
			if err != nil {
				return err
			}

			d := r.Resolve(strings.Join(args, " "))
			if d.IsZero() {
				return fmt.Errorf("no date found in %q", strings.Join(args, " "))
			}

			out := cmd.OutOrStdout()
			if ymd := d.YMD(); ymd != "" {
				fmt.Fprintln(out, ymd)
			}
			if s := d.Short(); s != "" {
				fmt.Fprintln(out, s)
			}
			switch {
			case d.StartTime != "" && d.EndTime != "":
				fmt.Fprintf(out, "time: %s-%s\n", d.StartTime, d.EndTime)
			case d.StartTime != "":
				fmt.Fprintf(out, "time: %s\n", d.StartTime)
			}
			return nil
		},
	}

	flags.bindResolver(cmd)

	return cmd
}
