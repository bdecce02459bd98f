package memory

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/GriffinCanCode/AgentOS/workspace/internal/logging"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/shared/errs"
	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Record is one chunk handed to a sink
type Record struct {
	ID        string    `json:"id" yaml:"id" toml:"id"`
	Text      string    `json:"text" yaml:"text" toml:"text"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at" toml:"created_at"`
}

func newRecord(text string) Record {
	return Record{
		ID:        uuid.New().String(),
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
}

// Buffer is an in-memory sink
type Buffer struct {
	mu      sync.RWMutex
	records []Record
}

// NewBuffer creates an empty buffer
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Add stores text as a new record
func (b *Buffer) Add(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.records = append(b.records, newRecord(text))
}

// Records returns a copy of the stored records in insertion order
func (b *Buffer) Records() []Record {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Record, len(b.records))
	copy(out, b.records)
	return out
}

// Len returns the number of stored records
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.records)
}

// FileSink appends records to a JSONL file.
//
// Add has no error return, so the first write failure is kept and
// reported by Err; later records are dropped.
type FileSink struct {
	path   string
	logger *logging.Logger

	mu   sync.Mutex
	file *os.File
	err  error
}

// OpenFileSink opens path for appending, creating it and its parent
// directories when missing
func OpenFileSink(path string, logger *logging.Logger) (*FileSink, error) {
	if path == "" {
		return nil, fmt.Errorf("memory file path is empty: %w", errs.ErrInvalidConfiguration)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create memory dir: %v: %w", err, errs.ErrIO)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open memory file: %v: %w", err, errs.ErrIO)
	}
	return &FileSink{
		path:   path,
		logger: logging.OrNop(logger).Component("memory"),
		file:   f,
	}, nil
}

// Path returns the JSONL file path
func (s *FileSink) Path() string {
	return s.path
}

// Add appends text as one JSON line
func (s *FileSink) Add(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return
	}
	if s.file == nil {
		s.err = fmt.Errorf("memory file %s is closed: %w", s.path, errs.ErrIO)
		return
	}

	rec := newRecord(text)
	line, err := sonic.Marshal(rec)
	if err != nil {
		s.err = fmt.Errorf("encode memory record: %v: %w", err, errs.ErrIO)
		return
	}
	if _, err := s.file.Write(append(line, '\n')); err != nil {
		s.err = fmt.Errorf("write memory record: %v: %w", err, errs.ErrIO)
		s.logger.Error("memory write failed", zap.String("path", s.path), zap.Error(err))
		return
	}
	s.logger.Debug("memory record stored", zap.String("id", rec.ID), zap.Int("bytes", len(text)))
}

// Err returns the first write failure, if any
func (s *FileSink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close flushes and closes the file
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	err := errors.Join(s.file.Sync(), s.file.Close())
	s.file = nil
	return err
}

// ReadRecords loads every record from a JSONL file written by FileSink.
// Blank lines are skipped.
func ReadRecords(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("memory file %s: %w", path, errs.ErrFileNotFound)
		}
		return nil, fmt.Errorf("read memory file: %v: %w", err, errs.ErrIO)
	}

	var records []Record
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for n := 1; scanner.Scan(); n++ {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := sonic.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("memory file %s line %d: %v: %w", path, n, err, errs.ErrIO)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan memory file: %v: %w", err, errs.ErrIO)
	}
	return records, nil
}
