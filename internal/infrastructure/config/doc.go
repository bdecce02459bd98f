// Package config provides 12-factor configuration management for the workspace.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables.
//
// Configuration Sections:
//   - Workspace: sandbox root and whether to create it
//   - OpLog: duplicate-check strategy
//   - Chunk: ingestion window size and overlap
//   - Editor: diff reporting and batch semantics
//   - Memory: where ingested chunks are stored
//   - Logging: log level and output format
//
// Example Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	guard, err := paths.NewGuard(cfg.Workspace.Root, cfg.Workspace.Create)
//
// Environment Variables:
//   - WORKSPACE_ROOT, WORKSPACE_CREATE
//   - OPLOG_INDEXED
//   - CHUNK_MAX_LENGTH, CHUNK_OVERLAP
//   - EDITOR_DEBUG, EDITOR_BATCH_MODE
//   - MEMORY_FILE
//   - LOG_LEVEL, LOG_DEV
package config
