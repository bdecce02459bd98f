package ingest_test

import (
	"strings"
	"testing"

	"github.com/GriffinCanCode/AgentOS/workspace/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/providers/filesystem"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/providers/ingest"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/shared/errs"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/testutil"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newIngester(t *testing.T, metrics *monitoring.Metrics) (*ingest.Ingester, *filesystem.Store) {
	t.Helper()
	guard := testutil.NewGuard(t)
	store := filesystem.New(guard, testutil.NewLog(t, guard))
	return ingest.New(store, ingest.WithMetrics(metrics)), store
}

func TestIngestLabelsEveryChunk(t *testing.T) {
	ing, store := newIngester(t, nil)
	require.NoError(t, store.Write("notes.txt", "abcdefghij"))

	sink := new(testutil.MockSink)
	sink.On("Add", "Filename: notes.txt\nContent part#1/3: abcd").Return().Once()
	sink.On("Add", "Filename: notes.txt\nContent part#2/3: defg").Return().Once()
	sink.On("Add", "Filename: notes.txt\nContent part#3/3: ghij").Return().Once()

	report, err := ing.Ingest("notes.txt", sink, 4, 1)
	require.NoError(t, err)

	sink.AssertExpectations(t)
	assert.Equal(t, "notes.txt", report.Filename)
	assert.Equal(t, 10, report.Length)
	assert.Equal(t, 3, report.Chunks)
	assert.Equal(t, 3, report.Added)
	assert.True(t, strings.HasPrefix(report.ID.String(), "ing_"))
}

func TestIngestMissingFile(t *testing.T) {
	ing, _ := newIngester(t, nil)
	sink := testutil.NewMockSink(t)

	report, err := ing.Ingest("missing.txt", sink, ingest.DefaultMaxLength, ingest.DefaultOverlap)
	assert.ErrorIs(t, err, errs.ErrFileNotFound)
	assert.Zero(t, report.Added)
	sink.AssertNotCalled(t, "Add", mock.Anything)
}

func TestIngestRejectsDegenerateWindow(t *testing.T) {
	ing, store := newIngester(t, nil)
	require.NoError(t, store.Write("notes.txt", "content"))
	sink := testutil.NewMockSink(t)

	_, err := ing.Ingest("notes.txt", sink, 10, 10)
	assert.ErrorIs(t, err, errs.ErrInvalidConfiguration)
	sink.AssertNotCalled(t, "Add", mock.Anything)
}

func TestIngestNilSink(t *testing.T) {
	ing, _ := newIngester(t, nil)

	_, err := ing.Ingest("notes.txt", nil, 10, 2)
	assert.ErrorIs(t, err, errs.ErrInvalidConfiguration)
}

func TestIngestKeepsPartialProgress(t *testing.T) {
	metrics := monitoring.NewMetrics()
	ing, store := newIngester(t, metrics)
	require.NoError(t, store.Write("notes.txt", strings.Repeat("z", 30)))

	sink := new(testutil.MockSink)
	sink.On("Add", mock.Anything).Return().Twice()
	sink.On("Add", mock.Anything).Panic("sink full").Once()

	report, err := ing.Ingest("notes.txt", sink, 10, 0)
	assert.ErrorIs(t, err, errs.ErrIO)
	assert.Equal(t, 3, report.Chunks)
	assert.Equal(t, 2, report.Added)

	assert.Equal(t, float64(2), promtest.ToFloat64(metrics.ChunksIngested))
	assert.Equal(t, float64(1), promtest.ToFloat64(metrics.IngestFailures))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Filename: a.md\nContent part#2/5: body", ingest.Label("a.md", 2, 5, "body"))
}
