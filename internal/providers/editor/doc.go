// Package editor applies line-indexed edits to sandbox files.
//
// An edit runs as a single pass: validate, load, apply, back up, commit,
// report. Validation and apply failures leave the file untouched. Once
// the backup (<file>.bak) is written the original content is always
// recoverable, even if the commit fails.
//
// In the default sequential mode each line number is checked against the
// live line count, so an insert or delete earlier in the batch shifts the
// targets that follow it:
//
//	// lines: a b c
//	ed.Edit(editor.Request{Filename: "f.txt", Lines: "1,2", Action: "insert", NewText: &x})
//	// lines: x x a b c  (the second insert lands before the first x)
//
// BatchOriginal instead resolves every number against the file as it was
// before the call.
package editor
