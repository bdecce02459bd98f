package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/GriffinCanCode/AgentOS/workspace/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/logging"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/server"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app is the state shared by all subcommands of one invocation
type app struct {
	root        string
	output      string
	metricsFile string

	cfg    *config.Config
	logger *logging.Logger
	srv    *server.Server
	out    io.Writer
}

// Run executes the command line in args and returns the exit status.
// Resources are released and metrics written even when the command fails.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{}
	cmd := newRoot(a)
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	err = errors.Join(err, a.close())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRoot(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "workspace",
		Short:             "Sandboxed file access for an autonomous agent",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd)
		},
	}

	cmd.AddCommand(readCmd(a))
	cmd.AddCommand(writeCmd(a))
	cmd.AddCommand(appendCmd(a))
	cmd.AddCommand(deleteCmd(a))
	cmd.AddCommand(existsCmd(a))
	cmd.AddCommand(searchCmd(a))
	cmd.AddCommand(globCmd(a))
	cmd.AddCommand(ingestCmd(a))
	cmd.AddCommand(editCmd(a))
	cmd.AddCommand(logCmd(a))
	cmd.AddCommand(memoryCmd(a))
	cmd.AddCommand(toolsCmd(a))

	cmd.PersistentFlags().StringVarP(&a.root, "root", "r", "", "workspace root (overrides WORKSPACE_ROOT)")
	cmd.PersistentFlags().StringVarP(&a.output, "output", "o", formatText, "output format: text, json, yaml or toml")
	cmd.PersistentFlags().StringVar(&a.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")
	return cmd
}

func (a *app) open(cmd *cobra.Command) error {
	if err := validFormat(a.output); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.root != "" {
		cfg.Workspace.Root = a.root
	}

	logCfg := logging.DefaultConfig()
	if cfg.Logging.Development {
		logCfg = logging.DevelopmentConfig()
	}
	if cfg.Logging.Level != "" {
		logCfg.Level = cfg.Logging.Level
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.srv = srv
	a.out = cmd.OutOrStdout()
	return nil
}

func (a *app) close() error {
	if a.srv == nil {
		return nil
	}
	var errList []error
	if err := a.srv.Close(); err != nil {
		errList = append(errList, err)
	}
	if a.metricsFile != "" {
		if err := a.srv.Metrics().WriteToTextfile(a.metricsFile); err != nil {
			errList = append(errList, fmt.Errorf("write metrics: %w", err))
		}
	}

	snap := a.srv.Metrics().Snapshot()
	a.logger.Debug("session summary",
		zap.Int64("ops", snap.TotalOps),
		zap.Int64("errors", snap.TotalErrors),
		zap.Int64("chunks", snap.ChunksIngested),
		zap.Int64("edits", snap.Edits))
	_ = a.logger.Sync()
	a.srv = nil
	return errors.Join(errList...)
}

// run executes a tool and prints its result. A failed result becomes the
// command error so the exit status reflects it.
func (a *app) run(cmd *cobra.Command, toolID string, params map[string]interface{}, text func(*types.Result) string) error {
	result, err := a.srv.Execute(cmd.Context(), toolID, params)
	if err != nil {
		return err
	}
	if err := a.print(result, text); err != nil {
		return err
	}
	if !result.Success {
		return &ToolError{Kind: result.Kind, Message: *result.Error}
	}
	return nil
}

// ToolError is a failed tool result surfaced as a command error
type ToolError struct {
	Kind    string
	Message string
}

func (e *ToolError) Error() string {
	return e.Kind + ": " + e.Message
}
