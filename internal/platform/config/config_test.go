package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadtrack/internal/platform/config"
)

func TestNewRequiresWorkspace(t *testing.T) {
	t.Parallel()
	_, err := config.New("")
	require.Error(t, err)
}

func TestNewDefaults(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg, err := config.New(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".leadtrack", "leadtrack.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(dir, "shifts"), cfg.NotesPath)
	assert.Equal(t, config.DefaultHTTPAddr, cfg.HTTPAddr)
	assert.Equal(t, config.DefaultLogLevel, cfg.LogLevel)
	assert.Empty(t, cfg.Operator)
}

func TestNewAppliesWorkspaceFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	file := "db_path: data/leads.db\nnotes_path: /tmp/shift-notes\nhttp_addr: \":9000\"\nlog_level: DEBUG\noperator: \"  Ann \"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(file), 0o644))

	cfg, err := config.New(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data", "leads.db"), cfg.DBPath)
	assert.Equal(t, "/tmp/shift-notes", cfg.NotesPath)
	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "Ann", cfg.Operator)
}

func TestNewRejectsMalformedFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte("db_path: [unterminated"), 0o644))
	_, err := config.New(dir)
	require.Error(t, err)
}
