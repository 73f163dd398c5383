package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file at the repository root.
const FileName = "tally.yaml"

// Config represents the top-level tally.yaml configuration.
type Config struct {
	Business BusinessConfig `yaml:"business"`
	Entry    EntryConfig    `yaml:"entry"`
	Fiscal   FiscalConfig   `yaml:"fiscal"`
	Git      GitConfig      `yaml:"git"`
}

// BusinessConfig identifies whose books these are.
type BusinessConfig struct {
	Name string `yaml:"name"`
}

// EntryConfig holds defaults applied to parsed quick-entry lines.
type EntryConfig struct {
	DefaultKind string `yaml:"default_kind"` // "expense" or "income"
	FutureDates bool   `yaml:"future_dates"`
}

// FiscalConfig defines the fiscal year boundaries.
type FiscalConfig struct {
	YearStart string `yaml:"year_start"` // "MM-DD" format, e.g. "01-01"
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a tally.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault reads path, falling back to Default when it does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(""), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(name string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name: name,
		},
		Entry: EntryConfig{
			DefaultKind: "expense",
		},
		Fiscal: FiscalConfig{
			YearStart: "01-01",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Tally",
			AuthorEmail: "tally@cleared.dev",
		},
	}
}

// YearWindow returns the operating year window for the fiscal year that
// contains now: one year when the fiscal year is the calendar year, else the
// two calendar years it spans.
func (c *Config) YearWindow(now time.Time) ([]int, error) {
	start := c.Fiscal.YearStart
	if start == "" {
		start = "01-01"
	}
	t, err := time.Parse("01-02", start)
	if err != nil {
		return nil, fmt.Errorf("parsing fiscal year_start %q: %w", start, err)
	}
	if t.Month() == time.January && t.Day() == 1 {
		return []int{now.Year()}, nil
	}

	first := now.Year()
	if now.Before(time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location())) {
		first--
	}
	return []int{first, first + 1}, nil
}
