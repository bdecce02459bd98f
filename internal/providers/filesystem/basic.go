package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/GriffinCanCode/AgentOS/workspace/internal/oplog"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/shared/errs"
)

// Read returns the full text content of filename.
//
// Reads are probed speculatively by the agent, so every failure comes back
// as a classified error: ErrPathEscape, ErrFileNotFound, or ErrIO for
// permission and decode problems. An empty file is ("", nil).
func (s *Store) Read(filename string) (content string, err error) {
	start := time.Now()
	defer func() { s.finish(OpRead, filename, start, err) }()

	path, err := s.guard.Resolve(filename)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", classify(OpRead, filename, err)
	}
	if err := decodeText(filename, data); err != nil {
		return "", err
	}
	return string(data), nil
}

// Write replaces the content of filename, creating parent directories.
// A second Write of the same filename fails with ErrDuplicateOperation and
// leaves the file untouched.
func (s *Store) Write(filename, text string) (err error) {
	start := time.Now()
	defer func() { s.finish(OpWrite, filename, start, err) }()

	path, err := s.guard.Resolve(filename)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := oplog.ValidateEntry(oplog.OpWrite, filename); err != nil {
		return err
	}
	if err := s.rejectDuplicate(oplog.OpWrite, filename, "file has already been updated"); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return classify(OpWrite, filename, err)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return classify(OpWrite, filename, err)
	}
	return s.log.Record(oplog.OpWrite, filename)
}

// Append adds text to the end of filename, creating it if absent.
// Appends are never checked for duplicates.
func (s *Store) Append(filename, text string) (err error) {
	start := time.Now()
	defer func() { s.finish(OpAppend, filename, start, err) }()

	path, err := s.guard.Resolve(filename)
	if err != nil {
		return err
	}

	if err := oplog.ValidateEntry(oplog.OpAppend, filename); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return classify(OpAppend, filename, err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return classify(OpAppend, filename, err)
	}
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return classify(OpAppend, filename, err)
	}
	if err := f.Close(); err != nil {
		return classify(OpAppend, filename, err)
	}
	return s.log.Record(oplog.OpAppend, filename)
}

// Delete removes filename. A second Delete of the same filename fails with
// ErrDuplicateOperation; a missing file fails with ErrFileNotFound and is
// not recorded.
func (s *Store) Delete(filename string) (err error) {
	start := time.Now()
	defer func() { s.finish(OpDelete, filename, start, err) }()

	path, err := s.guard.Resolve(filename)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := oplog.ValidateEntry(oplog.OpDelete, filename); err != nil {
		return err
	}
	if err := s.rejectDuplicate(oplog.OpDelete, filename, "file has already been deleted"); err != nil {
		return err
	}

	info, err := os.Lstat(path)
	if err != nil {
		return classify(OpDelete, filename, err)
	}
	if info.IsDir() {
		return fmt.Errorf("delete %s: is a directory: %w", filename, errs.ErrIO)
	}
	if err := os.Remove(path); err != nil {
		return classify(OpDelete, filename, err)
	}
	return s.log.Record(oplog.OpDelete, filename)
}

// Exists reports whether filename resolves to an existing regular file
func (s *Store) Exists(filename string) (ok bool, err error) {
	start := time.Now()
	defer func() { s.finish(OpExists, filename, start, err) }()

	path, err := s.guard.Resolve(filename)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, classify(OpExists, filename, err)
	}
	return info.Mode().IsRegular(), nil
}

func (s *Store) rejectDuplicate(op oplog.Op, filename, msg string) error {
	done, err := s.log.WasPerformed(op, filename)
	if err != nil {
		return err
	}
	if done {
		return fmt.Errorf("%s %s: %s: %w", op, filename, msg, errs.ErrDuplicateOperation)
	}
	return nil
}
