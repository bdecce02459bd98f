package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/GriffinCanCode/AgentOS/workspace/internal/types"
	"github.com/spf13/cobra"
)

func readCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "read <file>",
		Short:   "Print the text of a file",
		Example: `  workspace read notes.txt`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "file.read", map[string]interface{}{"filename": args[0]}, func(r *types.Result) string {
				s, _ := r.Data["content"].(string)
				return s
			})
		},
	}
}

func writeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "write <file> [text]",
		Short: "Write a file; each file can be written once per workspace",
		Long: `Write a file, creating parent directories.

The text is read from stdin when omitted. A second write of the same file
fails with DuplicateOperation.
`,
		Example: `  workspace write notes.txt "first draft"
  cat draft.md | workspace write docs/draft.md`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := textArg(cmd, args)
			if err != nil {
				return err
			}
			return a.run(cmd, "file.write", map[string]interface{}{"filename": args[0], "text": text}, message)
		},
	}
}

func appendCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "append <file> [text]",
		Short:   "Append text to a file, creating it if missing",
		Example: `  workspace append log.md "- step done"`,
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := textArg(cmd, args)
			if err != nil {
				return err
			}
			return a.run(cmd, "file.append", map[string]interface{}{"filename": args[0], "text": text}, message)
		},
	}
}

func deleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <file>",
		Short:   "Delete a file; each file can be deleted once per workspace",
		Example: `  workspace delete scratch.txt`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "file.delete", map[string]interface{}{"filename": args[0]}, message)
		},
	}
}

func existsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "exists <file>",
		Short: "Report whether a regular file exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "file.exists", map[string]interface{}{"filename": args[0]}, func(r *types.Result) string {
				return fmt.Sprint(r.Data["exists"])
			})
		},
	}
}

func searchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search [directory]",
		Short: "List non-hidden files under a directory",
		Example: `  workspace search
  workspace search docs`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := map[string]interface{}{}
			if len(args) == 1 {
				params["directory"] = args[0]
			}
			return a.run(cmd, "file.search", params, fileList)
		},
	}
}

func globCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "glob <pattern>",
		Short:   "List files matching a doublestar pattern",
		Example: `  workspace glob '**/*.md'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "file.glob", map[string]interface{}{"pattern": args[0]}, fileList)
		},
	}
}

// textArg returns the second argument, or stdin when it is absent
func textArg(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 2 {
		return args[1], nil
	}
	var b strings.Builder
	if _, err := io.Copy(&b, cmd.InOrStdin()); err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return b.String(), nil
}
