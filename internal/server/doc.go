// Package server wires the workspace components together.
//
// Lifecycle:
//  1. Validate configuration
//  2. Open the sandbox guard, creating the root when allowed
//  3. Open the operation log (scan or indexed mode)
//  4. Open the memory sink (JSONL file or in-process buffer)
//  5. Build the file store, ingester and line editor
//  6. Register the workspace tools
//
// Example Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	srv, err := server.New(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	defer srv.Close()
//	result, err := srv.Execute(ctx, "file.read", map[string]interface{}{"filename": "notes.txt"})
package server
