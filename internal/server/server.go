package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/GriffinCanCode/AgentOS/workspace/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/logging"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/oplog"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/providers"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/providers/editor"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/providers/filesystem"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/providers/ingest"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/providers/memory"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/service"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/shared/paths"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/types"
	"go.uber.org/zap"
)

// Server owns one sandbox and dispatches tool calls against it
type Server struct {
	logger   *logging.Logger
	metrics  *monitoring.Metrics
	guard    *paths.Guard
	oplog    *oplog.Log
	store    *filesystem.Store
	registry *service.Registry

	sink     ingest.Sink
	fileSink *memory.FileSink
}

// New builds every component from cfg. A nil logger discards output.
func New(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger = logging.OrNop(logger)
	metrics := monitoring.NewMetrics()

	guard, err := paths.NewGuard(cfg.Workspace.Root, cfg.Workspace.Create)
	if err != nil {
		return nil, err
	}

	log, err := oplog.Open(guard, oplog.Options{Indexed: cfg.OpLog.Indexed, Logger: logger})
	if err != nil {
		return nil, err
	}

	mode, err := editor.ParseBatchMode(cfg.Editor.BatchMode)
	if err != nil {
		return nil, err
	}

	s := &Server{
		logger:  logger,
		metrics: metrics,
		guard:   guard,
		oplog:   log,
	}

	// The memory file is the only resource New holds open; every failure
	// after this point goes through abort.
	if cfg.Memory.File != "" {
		s.fileSink, err = memory.OpenFileSink(cfg.Memory.File, logger)
		if err != nil {
			return nil, err
		}
		s.sink = s.fileSink
	} else {
		s.sink = memory.NewBuffer()
	}

	s.store = filesystem.New(guard, log,
		filesystem.WithLogger(logger),
		filesystem.WithMetrics(metrics))
	ing := ingest.New(s.store,
		ingest.WithLogger(logger),
		ingest.WithMetrics(metrics))
	ed := editor.New(guard, editor.Options{
		Debug:   cfg.Editor.Debug,
		Mode:    mode,
		Logger:  logger,
		Metrics: metrics,
	})

	s.registry = service.NewRegistry()
	ws := providers.NewWorkspace(s.store, ing, ed, s.sink,
		providers.WithChunkWindow(cfg.Chunk.MaxLength, cfg.Chunk.Overlap))
	if err := s.registry.Register(ws); err != nil {
		return nil, s.abort(err)
	}

	logger.Info("workspace ready",
		zap.String("root", guard.Root()),
		zap.Bool("indexed_log", cfg.OpLog.Indexed),
		zap.Int("tools", len(s.registry.Tools())))
	return s, nil
}

// Execute runs one tool call
func (s *Server) Execute(ctx context.Context, toolID string, params map[string]interface{}) (*types.Result, error) {
	return s.registry.Execute(ctx, toolID, params)
}

// Registry returns the tool registry
func (s *Server) Registry() *service.Registry {
	return s.registry
}

// Store returns the sandboxed file store
func (s *Server) Store() *filesystem.Store {
	return s.store
}

// OpLog returns the operation log
func (s *Server) OpLog() *oplog.Log {
	return s.oplog
}

// Sink returns the memory sink receiving ingested chunks
func (s *Server) Sink() ingest.Sink {
	return s.sink
}

// Metrics returns the metrics collector
func (s *Server) Metrics() *monitoring.Metrics {
	return s.metrics
}

// abort releases what New opened and returns err
func (s *Server) abort(err error) error {
	if s.fileSink != nil {
		if cerr := s.fileSink.Close(); cerr != nil {
			s.logger.Warn("close memory file", zap.Error(cerr))
		}
	}
	return err
}

// Close releases the memory file and reports any write it dropped
func (s *Server) Close() error {
	if s.fileSink == nil {
		return nil
	}
	var errList []error
	if err := s.fileSink.Err(); err != nil {
		errList = append(errList, err)
	}
	if err := s.fileSink.Close(); err != nil {
		errList = append(errList, fmt.Errorf("close memory file: %w", err))
	}
	return errors.Join(errList...)
}
