// Package id provides ID generation for workspace runs.
//
// IDs are prefixed ULIDs: lexicographically sortable by creation time and
// readable in logs (ing_01HV...). They label ingest runs so every log line
// of one run can be correlated.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// IngestID identifies one ingest run
type IngestID string

// IngestPrefix marks ingest run IDs
const IngestPrefix = "ing"

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex // Protects entropy reader
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the shared generator
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator with cryptographically secure entropy
func NewGenerator() *Generator {
	return &Generator{entropy: rand.Reader}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.Generate().String())
}

// NewIngestID generates a new ingest run ID
func NewIngestID() IngestID {
	return IngestID(Default().GenerateWithPrefix(IngestPrefix))
}

func (id IngestID) String() string { return string(id) }

