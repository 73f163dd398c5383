package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/config"
	"github.com/cleared-dev/tally/internal/gitops"
)

func newInitCommand(g *globals) *cobra.Command {
	var name string
	var fiscalStart string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new tally project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			hash, err := runInit(absDir, name, fiscalStart)
			if err != nil {
				return err
			}
			g.log.Debug().Str("dir", absDir).Str("commit", hash).Msg("initialized")
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized tally project at %s (%s)\n", absDir, hash)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&fiscalStart, "fiscal-start", "01-01", "fiscal year start (MM-DD)")

	return cmd
}

func runInit(dir, name, fiscalStart string) (string, error) {
	dirs := []string{
		"logs",
		"import",
		filepath.Join("import", "processed"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return "", fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(name)
	cfg.Fiscal.YearStart = fiscalStart
	if _, err := cfg.YearWindow(now()); err != nil {
		return "", err
	}
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}

	gitignore := "*.swp\n.DS_Store\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return "", fmt.Errorf("writing .gitignore: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return "", fmt.Errorf("writing .gitkeep: %w", err)
	}

	if err := gitops.Init(dir); err != nil {
		return "", fmt.Errorf("git init: %w", err)
	}

	hash, err := gitops.Commit(dir, "init: Initialize "+name, author(cfg))
	if err != nil {
		return "", fmt.Errorf("initial commit: %w", err)
	}
	return hash, nil
}

func author(cfg *config.Config) gitops.Author {
	return gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail}
}
