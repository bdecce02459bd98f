package monitoring

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/GriffinCanCode/AgentOS/workspace/internal/shared/errs"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordOp(t *testing.T) {
	m := NewMetrics()
	start := time.Now()

	m.RecordOp("write", start, nil)
	m.RecordOp("write", start, fmt.Errorf("a.txt: %w", errs.ErrDuplicateOperation))
	m.RecordOp("read", start, errs.ErrPathEscape)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.OpsTotal.WithLabelValues("write", StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OpsTotal.WithLabelValues("write", errs.KindDuplicateOperation)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DuplicateRejections.WithLabelValues("write")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PathRejections))

	snap := m.Snapshot()
	assert.Equal(t, int64(3), snap.TotalOps)
	assert.Equal(t, int64(2), snap.TotalErrors)
}

func TestRecordIngestAndEdit(t *testing.T) {
	m := NewMetrics()

	m.RecordIngest(3, nil)
	m.RecordIngest(1, errs.ErrIO)
	m.RecordEdit("insert", true)
	m.RecordEdit("modify", false)

	assert.Equal(t, 4.0, testutil.ToFloat64(m.ChunksIngested))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.IngestFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EditsTotal.WithLabelValues("insert", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EditsTotal.WithLabelValues("modify", "false")))
	assert.Equal(t, int64(2), m.Snapshot().Edits)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordOp("write", time.Now(), nil)
		m.RecordIngest(1, nil)
		m.RecordEdit("delete", true)
	})
	assert.Equal(t, Snapshot{}, m.Snapshot())
}

func TestWriteToTextfile(t *testing.T) {
	m := NewMetrics()
	m.RecordOp("append", time.Now(), nil)

	path := filepath.Join(t.TempDir(), "workspace.prom")
	require.NoError(t, m.WriteToTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `workspace_ops_total{op="append",status="ok"} 1`)
}
