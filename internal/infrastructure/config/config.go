package config

import (
	"fmt"

	"github.com/GriffinCanCode/AgentOS/workspace/internal/shared/errs"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Workspace WorkspaceConfig
	OpLog     OpLogConfig
	Chunk     ChunkConfig
	Editor    EditorConfig
	Memory    MemoryConfig
	Logging   LogConfig
}

// WorkspaceConfig holds sandbox root configuration.
type WorkspaceConfig struct {
	Root   string `envconfig:"WORKSPACE_ROOT" default:"auto_gpt_workspace"`
	Create bool   `envconfig:"WORKSPACE_CREATE" default:"true"`
}

// OpLogConfig holds operation log configuration.
type OpLogConfig struct {
	// Indexed answers duplicate checks from an in-memory set rebuilt at open
	// instead of rescanning the log file on every check.
	Indexed bool `envconfig:"OPLOG_INDEXED" default:"false"`
}

// ChunkConfig holds ingestion window configuration.
type ChunkConfig struct {
	MaxLength int `envconfig:"CHUNK_MAX_LENGTH" default:"4000"`
	Overlap   int `envconfig:"CHUNK_OVERLAP" default:"200"`
}

// EditorConfig holds line editor configuration.
type EditorConfig struct {
	Debug     bool   `envconfig:"EDITOR_DEBUG" default:"true"`
	BatchMode string `envconfig:"EDITOR_BATCH_MODE" default:"sequential"`
}

// MemoryConfig holds the memory sink configuration.
type MemoryConfig struct {
	// File is a JSONL file inside or outside the sandbox receiving ingested
	// chunks. Empty keeps chunks in process memory.
	File string `envconfig:"MEMORY_FILE"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Workspace: WorkspaceConfig{
			Root:   "auto_gpt_workspace",
			Create: true,
		},
		OpLog: OpLogConfig{
			Indexed: false,
		},
		Chunk: ChunkConfig{
			MaxLength: 4000,
			Overlap:   200,
		},
		Editor: EditorConfig{
			Debug:     true,
			BatchMode: "sequential",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}

// Validate rejects settings no component could run with.
func (c *Config) Validate() error {
	if c.Workspace.Root == "" {
		return fmt.Errorf("WORKSPACE_ROOT is empty: %w", errs.ErrInvalidConfiguration)
	}
	if c.Chunk.MaxLength <= 0 {
		return fmt.Errorf("CHUNK_MAX_LENGTH must be positive, got %d: %w", c.Chunk.MaxLength, errs.ErrInvalidConfiguration)
	}
	if c.Chunk.Overlap < 0 || c.Chunk.Overlap >= c.Chunk.MaxLength {
		return fmt.Errorf("CHUNK_OVERLAP must be in [0, %d), got %d: %w", c.Chunk.MaxLength, c.Chunk.Overlap, errs.ErrInvalidConfiguration)
	}
	switch c.Editor.BatchMode {
	case "sequential", "original":
	default:
		return fmt.Errorf("EDITOR_BATCH_MODE must be sequential or original, got %q: %w", c.Editor.BatchMode, errs.ErrInvalidConfiguration)
	}
	return nil
}
