package cli

import (
	"github.com/GriffinCanCode/AgentOS/workspace/internal/types"
	"github.com/spf13/cobra"
)

func editCmd(a *app) *cobra.Command {
	var lines, action, oldText, newText, mode string

	cmd := &cobra.Command{
		Use:   "edit <file>",
		Short: "Insert, modify, or delete lines of a file",
		Long: `Insert, modify, or delete lines of a file.

The original content is saved to <file>.bak before the file is replaced.
With several line numbers in sequential mode (the default) each number
refers to the file as left by the previous edit; --mode original makes
every number refer to the file before the command.
`,
		Example: `  workspace edit notes.txt --lines 2 --action insert --new "new second line"
  workspace edit notes.txt --lines 3,7 --action modify --old TODO --new DONE
  workspace edit notes.txt --lines 1,4 --action delete --mode original`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := map[string]interface{}{
				"filename": args[0],
				"lines":    lines,
				"action":   action,
			}
			// absent and empty text differ: modify needs --old even if empty
			if cmd.Flags().Changed("old") {
				params["old_text"] = oldText
			}
			if cmd.Flags().Changed("new") {
				params["new_text"] = newText
			}
			if mode != "" {
				params["mode"] = mode
			}
			return a.run(cmd, "file.edit_line", params, func(r *types.Result) string {
				out := message(r)
				if diff, ok := r.Data["diff"].(string); ok {
					out += "\n" + diff
				}
				return out
			})
		},
	}

	cmd.Flags().StringVarP(&lines, "lines", "l", "", "comma-separated 1-based line numbers")
	cmd.Flags().StringVarP(&action, "action", "a", "", "insert, modify or delete (add and replace are aliases)")
	cmd.Flags().StringVar(&oldText, "old", "", "text to replace (modify)")
	cmd.Flags().StringVar(&newText, "new", "", "text to insert or substitute")
	cmd.Flags().StringVar(&mode, "mode", "", "line numbering: sequential or original (default EDITOR_BATCH_MODE)")
	_ = cmd.MarkFlagRequired("lines")
	_ = cmd.MarkFlagRequired("action")
	return cmd
}
