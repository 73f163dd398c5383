package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/diag"
	"github.com/cleared-dev/tally/internal/gitops"
	"github.com/cleared-dev/tally/internal/importer"
	"github.com/cleared-dev/tally/internal/journal"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/parselog"
)

func newImportCommand(g *globals) *cobra.Command {
	var flags sessionFlags
	var repo string
	var progress bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import quick-entry lines from import/*.txt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadProject(repo)
			if err != nil {
				return err
			}

			files, err := importer.Scan(repo)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(files) == 0 {
				fmt.Fprintln(out, "Nothing to import.")
				return nil
			}

			// One calculator for the batch so the date session spans every file.
			rec := &diag.Recorder{}
			c, err := flags.calculator(cmd, cfg, diag.Tee(rec, diag.LogSink{Log: g.log}))
			if err != nil {
				return err
			}
			svc := journal.NewService(repo)
			kind := flags.entryKind(cfg)

			batches := make([][]importer.Line, len(files))
			total := 0
			for i, f := range files {
				lines, err := importer.ReadFile(f.Path)
				if err != nil {
					return err
				}
				batches[i] = lines
				total += len(lines)
			}

			var bar *progressbar.ProgressBar
			if progress {
				bar = newProgressBar(cmd.ErrOrStderr(), total)
			}

			// Parse everything first; the register is written once so a
			// rejected record leaves every file pending.
			var txns []model.Transaction
			var logged []parselog.Entry
			counts := make([]int, len(files))
			for i, f := range files {
				for _, line := range batches[i] {
					rec.Reset()
					parsed := collect(c.Calc(kind, line.Text), c.DefaultDate(), "")
					txns = append(txns, parsed...)
					counts[i] += len(parsed)
					source := fmt.Sprintf("%s:%d", f.Name, line.Number)
					logged = append(logged, parselog.FromEvents(now(), source, rec.Events)...)
					if bar != nil {
						if err := bar.Add(1); err != nil {
							g.log.Warn().Err(err).Msg("updating progress bar")
						}
					}
				}
			}

			if bar != nil {
				if err := bar.Finish(); err != nil {
					g.log.Warn().Err(err).Msg("finishing progress bar")
				}
				fmt.Fprintln(cmd.ErrOrStderr())
			}

			if len(txns) > 0 {
				if _, err := svc.Append(txns); err != nil {
					return fmt.Errorf("importing: %w", err)
				}
			}
			if err := parselog.Append(repo, logged); err != nil {
				g.log.Warn().Err(err).Msg("writing parse log")
			}

			imported := make([]string, 0, len(files))
			for i, f := range files {
				if err := importer.MarkProcessed(repo, f.Name); err != nil {
					return err
				}
				g.log.Info().Str("file", f.Name).Int("records", counts[i]).Msg("imported")
				fmt.Fprintf(out, "Imported %d records from %s\n", counts[i], f.Name)
				imported = append(imported, f.Name)
			}

			if cfg.Git.AutoCommit && gitops.IsRepo(repo) {
				hash, err := gitops.Commit(repo, "import: "+strings.Join(imported, ", "), author(cfg))
				if err != nil {
					return fmt.Errorf("committing: %w", err)
				}
				g.log.Debug().Str("commit", hash).Msg("committed")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&repo, "repo", ".", "project directory")
	cmd.Flags().BoolVar(&progress, "progress", false, "show a progress bar on stderr")
	flags.bindEntry(cmd)
	flags.bindDate(cmd)
	flags.bindResolver(cmd)

	return cmd
}

func newProgressBar(w io.Writer, lines int) *progressbar.ProgressBar {
	return progressbar.NewOptions(lines,
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Parsing lines"),
	)
}
