// Package oplog keeps the append-only record of mutating file operations.
//
// The log is a plain text file at the sandbox root. Its first line is a fixed
// header and every later line is "<op>: <filename>". Entries are never
// rewritten or compacted. FileStore consults it to reject a second write or
// delete of the same file within a session.
//
// The log assumes a single writer. The mutex only serializes callers inside
// one process; two processes sharing a sandbox will corrupt it.
package oplog

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/GriffinCanCode/AgentOS/workspace/internal/logging"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/shared/errs"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/shared/paths"
	"go.uber.org/zap"
)

// Header is the first line of every log file
const Header = "File Operation Logger"

// Op is a mutating operation kind
type Op string

const (
	OpWrite  Op = "write"
	OpAppend Op = "append"
	OpDelete Op = "delete"
)

// ParseOp returns the Op named s
func ParseOp(s string) (Op, error) {
	switch op := Op(s); op {
	case OpWrite, OpAppend, OpDelete:
		return op, nil
	}
	return "", fmt.Errorf("unknown operation %q: %w", s, errs.ErrInvalidConfiguration)
}

// Entry is one recorded operation
type Entry struct {
	Op       Op     `json:"op" yaml:"op" toml:"op"`
	Filename string `json:"filename" yaml:"filename" toml:"filename"`
}

// Line returns the entry as written to the log, without terminator
func (e Entry) Line() string {
	return string(e.Op) + ": " + e.Filename
}

// Options configures a Log
type Options struct {
	// Indexed keeps an in-memory set of entries, rebuilt from the file at
	// open, instead of rescanning the file on every duplicate check.
	Indexed bool
	Logger  *logging.Logger
}

// Log is the operation log of one sandbox
type Log struct {
	path  string
	index map[Entry]struct{}
	log   *logging.Logger
	mu    sync.Mutex
}

// Open opens the log of the sandbox behind guard. A missing log file is
// fine; it is created by the first Record.
func Open(guard *paths.Guard, opts Options) (*Log, error) {
	path, err := guard.LogPath()
	if err != nil {
		return nil, err
	}

	l := &Log{
		path: path,
		log:  logging.OrNop(opts.Logger).Component("oplog"),
	}

	if opts.Indexed {
		entries, err := l.readEntries()
		if err != nil {
			return nil, err
		}
		l.index = make(map[Entry]struct{}, len(entries))
		for _, e := range entries {
			l.index[e] = struct{}{}
		}
		l.log.Debug("operation log indexed", logging.File(paths.LogFileName), zap.Int("entries", len(entries)))
	}

	return l, nil
}

// Path returns the absolute location of the log file
func (l *Log) Path() string {
	return l.path
}

// WasPerformed reports whether op was already recorded for filename.
// It matches whole lines exactly, so "write: a.txt" never matches a
// recorded "write: ba.txt".
func (l *Log) WasPerformed(op Op, filename string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.index != nil {
		_, ok := l.index[Entry{Op: op, Filename: filename}]
		return ok, nil
	}

	data, err := os.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read operation log: %v: %w", err, errs.ErrIO)
	}

	target := Entry{Op: op, Filename: filename}.Line()
	for _, line := range strings.Split(string(data), "\n") {
		if line == target {
			return true, nil
		}
	}
	return false, nil
}

// ValidateEntry reports whether op and filename can be recorded. Callers
// check it before touching the disk so a rejected entry leaves no change.
func ValidateEntry(op Op, filename string) error {
	if _, err := ParseOp(string(op)); err != nil {
		return err
	}
	if strings.ContainsAny(filename, "\r\n") {
		return fmt.Errorf("filename %q contains a line break: %w", filename, errs.ErrInvalidConfiguration)
	}
	return nil
}

// Record appends an entry, writing the header first if the log is new
func (l *Log) Record(op Op, filename string) error {
	if err := ValidateEntry(op, filename); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open operation log: %v: %w", err, errs.ErrIO)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat operation log: %v: %w", err, errs.ErrIO)
	}

	var buf strings.Builder
	if info.Size() == 0 {
		buf.WriteString(Header + "\n")
	}
	entry := Entry{Op: op, Filename: filename}
	buf.WriteString(entry.Line() + "\n")

	if _, err := f.WriteString(buf.String()); err != nil {
		return fmt.Errorf("append operation log: %v: %w", err, errs.ErrIO)
	}

	if l.index != nil {
		l.index[entry] = struct{}{}
	}
	l.log.Debug("operation recorded", logging.Op(string(op)), logging.File(filename))
	return nil
}

// Entries returns every recorded entry in log order
func (l *Log) Entries() ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.readEntries()
}

func (l *Log) readEntries() ([]Entry, error) {
	f, err := os.Open(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open operation log: %v: %w", err, errs.ErrIO)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if e, ok := parseLine(scanner.Text()); ok {
			entries = append(entries, e)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan operation log: %v: %w", err, errs.ErrIO)
	}
	return entries, nil
}

// parseLine splits "<op>: <filename>". The header and foreign lines are skipped.
func parseLine(line string) (Entry, bool) {
	opText, filename, found := strings.Cut(line, ": ")
	if !found {
		return Entry{}, false
	}
	op, err := ParseOp(opText)
	if err != nil {
		return Entry{}, false
	}
	return Entry{Op: op, Filename: filename}, true
}
