package memory

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/GriffinCanCode/AgentOS/workspace/internal/shared/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferKeepsOrder(t *testing.T) {
	buf := NewBuffer()
	buf.Add("one")
	buf.Add("two")

	records := buf.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "one", records[0].Text)
	assert.Equal(t, "two", records[1].Text)
	assert.NotEqual(t, records[0].ID, records[1].ID)
	assert.Equal(t, 2, buf.Len())
}

func TestBufferConcurrentAdd(t *testing.T) {
	buf := NewBuffer()
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf.Add("chunk")
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, buf.Len())
}

func TestFileSinkRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "memory.jsonl")

	sink, err := OpenFileSink(path, nil)
	require.NoError(t, err)
	sink.Add("first\nwith newline")
	sink.Add("second")
	require.NoError(t, sink.Err())
	require.NoError(t, sink.Close())

	records, err := ReadRecords(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "first\nwith newline", records[0].Text)
	assert.Equal(t, "second", records[1].Text)
	assert.False(t, records[0].CreatedAt.IsZero())
	assert.Len(t, records[0].ID, 36)
}

func TestFileSinkAppendsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.jsonl")

	for _, text := range []string{"a", "b"} {
		sink, err := OpenFileSink(path, nil)
		require.NoError(t, err)
		sink.Add(text)
		require.NoError(t, sink.Close())
	}

	records, err := ReadRecords(path)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestFileSinkAddAfterClose(t *testing.T) {
	sink, err := OpenFileSink(filepath.Join(t.TempDir(), "memory.jsonl"), nil)
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	sink.Add("late")
	assert.ErrorIs(t, sink.Err(), errs.ErrIO)
}

func TestOpenFileSinkEmptyPath(t *testing.T) {
	_, err := OpenFileSink("", nil)
	assert.ErrorIs(t, err, errs.ErrInvalidConfiguration)
}

func TestReadRecords(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadRecords(filepath.Join(dir, "missing.jsonl"))
	assert.ErrorIs(t, err, errs.ErrFileNotFound)

	bad := filepath.Join(dir, "bad.jsonl")
	require.NoError(t, os.WriteFile(bad, []byte("{\"id\":\"x\"}\n\nnot json\n"), 0o644))
	_, err = ReadRecords(bad)
	assert.ErrorIs(t, err, errs.ErrIO)
}
