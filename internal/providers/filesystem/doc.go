// Package filesystem provides the sandboxed file store used by the agent.
//
// This package is organized into specialized modules:
//   - types: Store construction and options
//   - paths: Guarded path resolution and error classification
//   - basic: Core file operations (read, write, append, delete)
//   - search: Recursive listing and glob matching
//
// All operations:
//   - Resolve every name through the sandbox Guard before touching the disk
//   - Record successful mutations in the operation log
//   - Reject a second write or delete of the same file (ErrDuplicateOperation)
//   - Return errors from the shared taxonomy, never error-looking strings
//
// Write and Delete are deliberately not idempotent: repeating one is an
// error, not a no-op, so an agent cannot blindly retry an action it already
// performed. Append may be repeated freely.
//
// Example Usage:
//
//	store := filesystem.New(guard, log, filesystem.WithLogger(logger))
//	if err := store.Write("notes.txt", "hello"); err != nil { ... }
//	content, err := store.Read("notes.txt")
package filesystem
