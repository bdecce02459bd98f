package config

import (
	"testing"

	"github.com/GriffinCanCode/AgentOS/workspace/internal/shared/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "auto_gpt_workspace", cfg.Workspace.Root)
	assert.True(t, cfg.Workspace.Create)
	assert.False(t, cfg.OpLog.Indexed)
	assert.Equal(t, 4000, cfg.Chunk.MaxLength)
	assert.Equal(t, 200, cfg.Chunk.Overlap)
	assert.True(t, cfg.Editor.Debug)
	assert.Equal(t, "sequential", cfg.Editor.BatchMode)
	assert.Empty(t, cfg.Memory.File)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)
	assert.NoError(t, cfg.Validate())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Default().Chunk, cfg.Chunk)
	assert.Equal(t, Default().Editor, cfg.Editor)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"WORKSPACE_ROOT":    "/tmp/ws",
		"WORKSPACE_CREATE":  "false",
		"OPLOG_INDEXED":     "true",
		"CHUNK_MAX_LENGTH":  "100",
		"CHUNK_OVERLAP":     "10",
		"EDITOR_DEBUG":      "false",
		"EDITOR_BATCH_MODE": "original",
		"MEMORY_FILE":       "/tmp/memory.jsonl",
		"LOG_LEVEL":         "debug",
		"LOG_DEV":           "true",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/ws", cfg.Workspace.Root)
	assert.False(t, cfg.Workspace.Create)
	assert.True(t, cfg.OpLog.Indexed)
	assert.Equal(t, 100, cfg.Chunk.MaxLength)
	assert.Equal(t, 10, cfg.Chunk.Overlap)
	assert.False(t, cfg.Editor.Debug)
	assert.Equal(t, "original", cfg.Editor.BatchMode)
	assert.Equal(t, "/tmp/memory.jsonl", cfg.Memory.File)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
}

func TestLoadWithPartialEnvironmentVariables(t *testing.T) {
	t.Setenv("CHUNK_OVERLAP", "0")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Chunk.Overlap)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 4000, cfg.Chunk.MaxLength)
	assert.Equal(t, "auto_gpt_workspace", cfg.Workspace.Root)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty root", func(c *Config) { c.Workspace.Root = "" }},
		{"zero window", func(c *Config) { c.Chunk.MaxLength = 0 }},
		{"overlap equals window", func(c *Config) { c.Chunk.Overlap = c.Chunk.MaxLength }},
		{"negative overlap", func(c *Config) { c.Chunk.Overlap = -1 }},
		{"unknown batch mode", func(c *Config) { c.Editor.BatchMode = "parallel" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), errs.ErrInvalidConfiguration)
		})
	}
}

func TestLoadRejectsDegenerateWindow(t *testing.T) {
	t.Setenv("CHUNK_MAX_LENGTH", "10")
	t.Setenv("CHUNK_OVERLAP", "10")

	_, err := Load()
	assert.ErrorIs(t, err, errs.ErrInvalidConfiguration)
}
