package filesystem

import (
	"sync"
	"time"

	"github.com/GriffinCanCode/AgentOS/workspace/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/logging"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/oplog"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/shared/errs"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/shared/paths"
	"go.uber.org/zap"
)

// Operation names used in logs and metrics
const (
	OpRead   = "read"
	OpWrite  = "write"
	OpAppend = "append"
	OpDelete = "delete"
	OpExists = "exists"
	OpSearch = "search"
	OpGlob   = "glob"
)

// Store provides file operations confined to one sandbox
type Store struct {
	guard   *paths.Guard
	log     *oplog.Log
	logger  *logging.Logger
	metrics *monitoring.Metrics

	// serializes mutations so a duplicate check always sees earlier records
	mu sync.Mutex
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the store logger
func WithLogger(l *logging.Logger) Option {
	return func(s *Store) {
		s.logger = logging.OrNop(l).Component("filestore")
	}
}

// WithMetrics sets the metrics collector
func WithMetrics(m *monitoring.Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// New creates a Store over the sandbox behind guard
func New(guard *paths.Guard, log *oplog.Log, opts ...Option) *Store {
	s := &Store{
		guard:  guard,
		log:    log,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Guard returns the sandbox guard
func (s *Store) Guard() *paths.Guard {
	return s.guard
}

// finish logs and measures a completed operation
func (s *Store) finish(op, name string, start time.Time, err error) {
	s.metrics.RecordOp(op, start, err)
	if err != nil {
		s.logger.Warn("operation failed",
			logging.Op(op), logging.File(name), logging.Kind(errs.Kind(err)), zap.Error(err))
		return
	}
	s.logger.Debug("operation completed", logging.Op(op), logging.File(name))
}
