// Package paths confines filesystem access to a single sandbox root.
//
// Every workspace component resolves caller-supplied names through a Guard
// before touching the disk. Resolution joins and normalizes the segments,
// then requires the sandbox root as a literal string prefix of the result.
//
// # Layout
//
//	<root>/
//	  ├── file_logger.txt   (operation log, see package oplog)
//	  ├── notes.txt
//	  └── notes.txt.bak     (line editor backup)
//
// # Known limitation
//
// The prefix check is textual, not a directory-boundary check. A root of
// /sandbox admits /sandbox-evil/x. Hardening it would change which paths
// are rejected, so it is left as is and pinned by a test.
//
// # Usage
//
//	guard, err := paths.NewGuard("./auto_gpt_workspace", true)
//	full, err := guard.Resolve("notes", "todo.txt")
package paths
