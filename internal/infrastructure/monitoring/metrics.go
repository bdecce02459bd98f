package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/GriffinCanCode/AgentOS/workspace/internal/shared/errs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Status label values
const (
	StatusOK = "ok"
)

// Metrics holds all Prometheus metrics.
//
// A nil *Metrics is valid and records nothing, so components can take it as
// an optional dependency.
type Metrics struct {
	registry *prometheus.Registry

	// File operation metrics
	OpsTotal   *prometheus.CounterVec
	OpDuration *prometheus.HistogramVec

	// Guard and log rejections
	PathRejections      prometheus.Counter
	DuplicateRejections *prometheus.CounterVec

	// Ingestion metrics
	ChunksIngested prometheus.Counter
	IngestFailures prometheus.Counter

	// Line editor metrics
	EditsTotal *prometheus.CounterVec

	// Snapshot for summaries - track current values
	snapshot Snapshot

	mu sync.RWMutex
}

// Snapshot holds running totals for human-readable summaries
type Snapshot struct {
	TotalOps       int64
	TotalErrors    int64
	ChunksIngested int64
	Edits          int64
}

// NewMetrics creates a metrics collector on its own registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		OpsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workspace_ops_total",
				Help: "Total number of workspace file operations",
			},
			[]string{"op", "status"},
		),
		OpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "workspace_op_duration_seconds",
				Help:    "Workspace file operation duration in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"op"},
		),

		PathRejections: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "workspace_path_rejections_total",
				Help: "Total number of paths rejected for escaping the sandbox",
			},
		),
		DuplicateRejections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workspace_duplicate_rejections_total",
				Help: "Total number of writes and deletes rejected as duplicates",
			},
			[]string{"op"},
		),

		ChunksIngested: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "workspace_chunks_ingested_total",
				Help: "Total number of chunks handed to the memory sink",
			},
		),
		IngestFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "workspace_ingest_failures_total",
				Help: "Total number of ingest runs that reported an error",
			},
		),

		EditsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workspace_edits_total",
				Help: "Total number of committed line edits",
			},
			[]string{"action", "changed"},
		),
	}
}

// Registry returns the registry holding the workspace metrics
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordOp records a finished file operation; err classifies the status
func (m *Metrics) RecordOp(op string, start time.Time, err error) {
	if m == nil {
		return
	}

	status := StatusOK
	if err != nil {
		status = errs.Kind(err)
	}
	m.OpsTotal.WithLabelValues(op, status).Inc()
	m.OpDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	switch status {
	case errs.KindPathEscape:
		m.PathRejections.Inc()
	case errs.KindDuplicateOperation:
		m.DuplicateRejections.WithLabelValues(op).Inc()
	}

	m.mu.Lock()
	m.snapshot.TotalOps++
	if err != nil {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordIngest records chunks added by one ingest run
func (m *Metrics) RecordIngest(added int, err error) {
	if m == nil {
		return
	}

	m.ChunksIngested.Add(float64(added))
	if err != nil {
		m.IngestFailures.Inc()
	}

	m.mu.Lock()
	m.snapshot.ChunksIngested += int64(added)
	m.mu.Unlock()
}

// RecordEdit records a committed line edit
func (m *Metrics) RecordEdit(action string, changed bool) {
	if m == nil {
		return
	}

	m.EditsTotal.WithLabelValues(action, strconv.FormatBool(changed)).Inc()

	m.mu.Lock()
	m.snapshot.Edits++
	m.mu.Unlock()
}

// Snapshot returns a copy of the running totals
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

// WriteToTextfile writes the metrics in Prometheus text format, for
// node_exporter's textfile collector.
func (m *Metrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
