package ingest

import (
	"fmt"
	"unicode/utf8"

	"github.com/GriffinCanCode/AgentOS/workspace/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/logging"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/shared/errs"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/shared/id"
	"go.uber.org/zap"
)

// Default window parameters
const (
	DefaultMaxLength = 4000
	DefaultOverlap   = 200
)

// Sink receives labeled chunks. It is called once per chunk, synchronously.
type Sink interface {
	Add(text string)
}

// Reader reads sandbox files; satisfied by *filesystem.Store
type Reader interface {
	Read(filename string) (string, error)
}

// Report describes one ingest run
type Report struct {
	ID       id.IngestID `json:"id" yaml:"id"`
	Filename string      `json:"filename" yaml:"filename"`
	Length   int         `json:"length" yaml:"length"`
	Chunks   int         `json:"chunks" yaml:"chunks"`
	Added    int         `json:"added" yaml:"added"`
}

// Ingester feeds sandbox files to a memory sink
type Ingester struct {
	reader  Reader
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// Option configures an Ingester
type Option func(*Ingester)

// WithLogger sets the ingester logger
func WithLogger(l *logging.Logger) Option {
	return func(i *Ingester) {
		i.logger = logging.OrNop(l).Component("ingest")
	}
}

// WithMetrics sets the metrics collector
func WithMetrics(m *monitoring.Metrics) Option {
	return func(i *Ingester) {
		i.metrics = m
	}
}

// New creates an Ingester reading through reader
func New(reader Reader, opts ...Option) *Ingester {
	i := &Ingester{
		reader: reader,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Label formats chunk n (1-based) of total for the sink
func Label(filename string, n, total int, text string) string {
	return fmt.Sprintf("Filename: %s\nContent part#%d/%d: %s", filename, n, total, text)
}

// Ingest reads filename, splits it, and hands every labeled chunk to sink.
//
// The returned error is for reporting only. Chunks added before a failure
// stay in the sink and are counted in Report.Added; nothing is rolled back.
func (i *Ingester) Ingest(filename string, sink Sink, maxLength, overlap int) (report Report, err error) {
	report = Report{ID: id.NewIngestID(), Filename: filename}
	logger := i.logger.With(zap.Stringer("ingest_id", report.ID), logging.File(filename))

	defer func() {
		i.metrics.RecordIngest(report.Added, err)
		if err != nil {
			logger.Warn("ingest failed",
				zap.Int("added", report.Added), logging.Kind(errs.Kind(err)), zap.Error(err))
			return
		}
		logger.Info("ingest completed", zap.Int("chunks", report.Chunks))
	}()

	if sink == nil {
		return report, fmt.Errorf("ingest %s: no memory sink: %w", filename, errs.ErrInvalidConfiguration)
	}

	if err := ValidateWindow(maxLength, overlap); err != nil {
		return report, err
	}

	content, err := i.reader.Read(filename)
	if err != nil {
		return report, err
	}

	report.Length = utf8.RuneCountInString(content)
	report.Chunks, _ = Count(report.Length, maxLength, overlap)
	chunks, _ := Split(content, maxLength, overlap)

	for chunk := range chunks {
		if err := add(sink, Label(filename, chunk.Index+1, report.Chunks, chunk.Text)); err != nil {
			return report, fmt.Errorf("ingest %s part %d/%d: %w", filename, chunk.Index+1, report.Chunks, err)
		}
		report.Added++
	}
	return report, nil
}

// add shields the run from a panicking sink
func add(sink Sink, text string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("memory sink panicked: %v: %w", r, errs.ErrIO)
		}
	}()
	sink.Add(text)
	return nil
}
