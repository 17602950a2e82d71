package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baxromumarov/disksearch"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 50, cfg.Queues.Directories)
	assert.Equal(t, 50, cfg.Queues.Results)
	assert.Equal(t, "stop-worker", cfg.CopyErrors)
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "disksearch.yaml", `
queues:
  directories: 8
  results: 16
copy_errors: skip-file
include_root: true
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Queues.Directories)
	assert.Equal(t, 16, cfg.Queues.Results)
	assert.Equal(t, "skip-file", cfg.CopyErrors)
	assert.True(t, cfg.IncludeRoot)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadTOMLKeepsDefaultsForMissingFields(t *testing.T) {
	path := writeConfig(t, "disksearch.toml", `
copy_errors = "abort-run"

[queues]
results = 4
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Queues.Directories)
	assert.Equal(t, 4, cfg.Queues.Results)
	assert.Equal(t, "abort-run", cfg.CopyErrors)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadEmptyYAMLFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, "empty.yml", ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		body    string
		wantErr string
	}{
		{"unknown extension", "cfg.json", `{}`, "unsupported file format"},
		{"unknown yaml field", "cfg.yaml", "workers: 3\n", "workers"},
		{"unknown toml field", "cfg.toml", "workers = 3\n", "strict mode"},
		{"zero capacity", "cfg.yaml", "queues:\n  results: 0\n", "queue capacities must be positive"},
		{"bad policy", "cfg.toml", `copy_errors = "retry"`, "copy_errors"},
		{"bad level", "cfg.yaml", "log:\n  level: chatty\n", "log.level"},
		{"bad format", "cfg.yaml", "log:\n  format: xml\n", "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.file, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApply(t *testing.T) {
	cfg := Default()
	cfg.Queues.Directories = 3
	cfg.Queues.Results = 7
	cfg.CopyErrors = "skip-file"
	cfg.IncludeRoot = true

	var run disksearch.Config
	require.NoError(t, cfg.Apply(&run))
	assert.Equal(t, 3, run.DirQueueCapacity)
	assert.Equal(t, 7, run.ResultsQueueCapacity)
	assert.Equal(t, disksearch.SkipFile, run.OnCopyError)
	assert.True(t, run.IncludeRoot)
}
