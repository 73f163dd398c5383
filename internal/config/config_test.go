package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Test Biz")
	cfg.Entry.FutureDates = true
	cfg.Fiscal.YearStart = "07-01"

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Business.Name, got.Business.Name)
	assert.Equal(t, cfg.Entry.DefaultKind, got.Entry.DefaultKind)
	assert.True(t, got.Entry.FutureDates)
	assert.Equal(t, "07-01", got.Fiscal.YearStart)
	assert.Equal(t, cfg.Git, got.Git)
}

func TestDefaults(t *testing.T) {
	cfg := Default("My Company")

	assert.Equal(t, "My Company", cfg.Business.Name)
	assert.Equal(t, "expense", cfg.Entry.DefaultKind)
	assert.False(t, cfg.Entry.FutureDates)
	assert.Equal(t, "01-01", cfg.Fiscal.YearStart)
	assert.True(t, cfg.Git.AutoCommit)
	assert.Equal(t, "Tally", cfg.Git.AuthorName)
	assert.Equal(t, "tally@cleared.dev", cfg.Git.AuthorEmail)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, "expense", cfg.Entry.DefaultKind)

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("entry:\n  default_kind: income\n"), 0o644))
	cfg, err = LoadOrDefault(path)
	require.NoError(t, err)
	assert.Equal(t, "income", cfg.Entry.DefaultKind)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("entry: [unclosed"), 0o644))

	_, err := LoadOrDefault(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default("Test Biz")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Test Biz")
	assert.Contains(t, contents, "default_kind: expense")
	assert.Contains(t, contents, "year_start: 01-01")
	assert.Contains(t, contents, "auto_commit: true")
}

func TestYearWindow(t *testing.T) {
	tests := []struct {
		start string
		now   time.Time
		want  []int
	}{
		{"01-01", time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), []int{2025}},
		{"", time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), []int{2025}},
		{"07-01", time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), []int{2025, 2026}},
		{"07-01", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), []int{2024, 2025}},
		{"10-01", time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), []int{2025, 2026}},
	}
	for _, tt := range tests {
		cfg := Default("x")
		cfg.Fiscal.YearStart = tt.start
		got, err := cfg.YearWindow(tt.now)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "start %q at %s", tt.start, tt.now.Format("2006-01-02"))
	}
}

func TestYearWindow_Invalid(t *testing.T) {
	cfg := Default("x")
	cfg.Fiscal.YearStart = "13-45"
	_, err := cfg.YearWindow(time.Now())
	assert.Error(t, err)
}
