// Package cli implements the workspace command line.
//
// Every file command is a thin wrapper over one "file.*" tool, so the
// command line and an agent see the same results and error kinds.
//
// Example Usage:
//
//	workspace --root ./ws write notes.txt "first draft"
//	workspace --root ./ws edit notes.txt --lines 1 --action insert --new "# Title"
//	workspace --root ./ws --output yaml search
package cli
