package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/GriffinCanCode/AgentOS/workspace/internal/oplog"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/providers/memory"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/shared/errs"
	"github.com/spf13/cobra"
)

func logCmd(a *app) *cobra.Command {
	var opName string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the operation log",
		Example: `  workspace log
  workspace log --op delete`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := a.srv.OpLog().Entries()
			if err != nil {
				return err
			}
			if opName != "" {
				op, err := oplog.ParseOp(opName)
				if err != nil {
					return err
				}
				filtered := entries[:0]
				for _, e := range entries {
					if e.Op == op {
						filtered = append(filtered, e)
					}
				}
				entries = filtered
			}

			if a.output != formatText {
				return a.encode(map[string]interface{}{"entries": entries})
			}
			lines := make([]string, len(entries))
			for i, e := range entries {
				lines[i] = e.Line()
			}
			return writeLine(a.out, strings.Join(lines, "\n"))
		},
	}

	cmd.Flags().StringVar(&opName, "op", "", "only show write, append or delete entries")
	return cmd
}

func memoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "memory",
		Short: "List chunks stored in MEMORY_FILE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Memory.File == "" {
				return fmt.Errorf("MEMORY_FILE is not set: %w", errs.ErrInvalidConfiguration)
			}
			records, err := memory.ReadRecords(a.cfg.Memory.File)
			if err != nil {
				return err
			}

			if a.output != formatText {
				return a.encode(map[string]interface{}{"records": records})
			}
			for _, r := range records {
				head, _, _ := strings.Cut(r.Text, "\n")
				if err := writeLine(a.out, fmt.Sprintf("%s  %s  %s", r.ID, r.CreatedAt.Format(time.RFC3339), head)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func toolsCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "tools [intent]",
		Short: "List agent tools, or the ones matching an intent",
		Example: `  workspace tools
  workspace tools "edit a line"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := a.srv.Registry()
			tools := registry.Tools()
			if len(args) == 1 {
				tools = registry.Discover(args[0], limit)
			}

			if a.output != formatText {
				return a.encode(map[string]interface{}{"tools": tools, "stats": registry.Stats()})
			}
			for _, t := range tools {
				if err := writeLine(a.out, fmt.Sprintf("%-16s %s", t.ID, t.Description)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "maximum tools to show for an intent")
	return cmd
}
