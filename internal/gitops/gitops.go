package gitops

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Author is the identity recorded on commits.
type Author struct {
	Name  string
	Email string
}

func (a Author) String() string {
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// Init initializes a new git repository at dir.
func Init(dir string) error {
	if _, err := git(dir, "init"); err != nil {
		return err
	}
	return nil
}

// IsRepo reports whether dir is the root of a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// Commit stages paths (all changes when none are given) and commits them.
// Returns the short commit hash.
func Commit(dir, message string, author Author, paths ...string) (string, error) {
	add := append([]string{"add", "-A", "--"}, paths...)
	if len(paths) == 0 {
		add = append(add, ".")
	}
	if _, err := git(dir, add...); err != nil {
		return "", err
	}

	if _, err := git(dir, "commit", "-m", message, "--author", author.String()); err != nil {
		return "", err
	}

	out, err := git(dir, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func git(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	// Committer is fixed; the author comes from tally.yaml.
	cmd.Env = append(os.Environ(),
		"GIT_COMMITTER_NAME=tally",
		"GIT_COMMITTER_EMAIL=tally@cleared.dev",
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %s: %w", args[0], strings.TrimSpace(string(out)), err)
	}
	return string(out), nil
}
