// Package errs defines the error taxonomy shared by every workspace component.
//
// Components wrap one of the sentinels below with context, so callers branch
// with errors.Is and never on message text:
//
//	if errors.Is(err, errs.ErrDuplicateOperation) {
//	    // already written this session
//	}
package errs

import "errors"

// Sentinel errors. Each maps to one taxonomy kind.
var (
	// ErrPathEscape indicates a path that resolves outside the sandbox root.
	ErrPathEscape = errors.New("attempted to access outside of working directory")

	// ErrDuplicateOperation indicates a write or delete already recorded for the file.
	ErrDuplicateOperation = errors.New("operation already performed on file")

	// ErrFileNotFound indicates the target file does not exist.
	ErrFileNotFound = errors.New("file does not exist")

	// ErrLineOutOfRange indicates a line number outside the current line count.
	ErrLineOutOfRange = errors.New("line number out of range")

	// ErrTextNotFound indicates the text to replace is absent from the target line.
	ErrTextNotFound = errors.New("text not found on line")

	// ErrInvalidConfiguration covers malformed line specs, unknown actions,
	// missing text arguments and degenerate chunk windows.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrIO covers permission, disk and decode failures from the filesystem.
	ErrIO = errors.New("io failure")
)

// Kind names used in tool results.
const (
	KindPathEscape           = "PathEscapeError"
	KindDuplicateOperation   = "DuplicateOperation"
	KindFileNotFound         = "FileNotFoundError"
	KindLineOutOfRange       = "LineOutOfRange"
	KindTextNotFound         = "TextNotFound"
	KindInvalidConfiguration = "InvalidConfiguration"
	KindIO                   = "IOFailure"
)

var kinds = []struct {
	err  error
	kind string
}{
	{ErrPathEscape, KindPathEscape},
	{ErrDuplicateOperation, KindDuplicateOperation},
	{ErrFileNotFound, KindFileNotFound},
	{ErrLineOutOfRange, KindLineOutOfRange},
	{ErrTextNotFound, KindTextNotFound},
	{ErrInvalidConfiguration, KindInvalidConfiguration},
	{ErrIO, KindIO},
}

// Kind returns the taxonomy name for err. Errors outside the taxonomy are
// reported as IOFailure, nil as the empty string.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindIO
}
