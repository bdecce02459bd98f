// Package providers exposes the workspace to an agent as tools.
//
// Workspace implements service.Provider over the file store, the ingester
// and the line editor. Every tool returns a types.Result; failures carry
// the error kind (PathEscapeError, DuplicateOperation, ...) so the agent
// branches on Kind instead of parsing messages.
//
// Subpackages:
//   - filesystem: sandboxed read, write, append, delete, search and glob
//   - ingest: overlapping chunking and memory ingestion
//   - memory: in-memory and JSONL chunk sinks
//   - editor: line-indexed edits with backup and diff
//
// Example Usage:
//
//	ws := providers.NewWorkspace(store, ingester, ed, sink)
//	result, err := ws.Execute(ctx, "file.read", map[string]interface{}{"filename": "notes.txt"})
package providers
