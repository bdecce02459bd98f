package cli

import (
	"fmt"

	"github.com/GriffinCanCode/AgentOS/workspace/internal/types"
	"github.com/spf13/cobra"
)

func ingestCmd(a *app) *cobra.Command {
	var maxLength, overlap int

	cmd := &cobra.Command{
		Use:   "ingest <file>",
		Short: "Split a file into overlapping chunks and add them to memory",
		Long: `Split a file into overlapping chunks and add them to memory.

Chunks go to MEMORY_FILE as JSON lines when it is set. Without it they only
live for the duration of the command, which is still useful to check how a
file would be split.
`,
		Example: `  MEMORY_FILE=memory.jsonl workspace ingest docs/guide.md
  workspace ingest notes.txt --max-length 1000 --overlap 100`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := map[string]interface{}{"filename": args[0]}
			if cmd.Flags().Changed("max-length") {
				params["max_length"] = maxLength
			}
			if cmd.Flags().Changed("overlap") {
				params["overlap"] = overlap
			}
			return a.run(cmd, "file.ingest", params, func(r *types.Result) string {
				return fmt.Sprintf("Ingested %v chunks of %v (%v characters), run %v",
					r.Data["added"], r.Data["filename"], r.Data["length"], r.Data["id"])
			})
		},
	}

	cmd.Flags().IntVar(&maxLength, "max-length", 0, "chunk size in characters (default CHUNK_MAX_LENGTH)")
	cmd.Flags().IntVar(&overlap, "overlap", 0, "characters shared by consecutive chunks (default CHUNK_OVERLAP)")
	return cmd
}
