package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/taskboard/internal/jsonl"
	"github.com/mesh-intelligence/taskboard/internal/tasks"
	"github.com/mesh-intelligence/taskboard/internal/validate"
)

// importReject is a record that failed validation.
type importReject struct {
	Record int    `json:"record"`
	Error  string `json:"error"`
}

// importResult summarizes one import run.
type importResult struct {
	Created  []int64        `json:"created"`
	Rejected []importReject `json:"rejected"`
	Skipped  []int          `json:"skipped"`
}

func newImportCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.jsonl>",
		Short: "Create tasks from a JSONL file",
		Long: `Read one task object per line and create each valid one. Lines that
are not JSON objects are skipped; records that fail validation are reported
and not created. Any "id" field is ignored.`,
		Args: checkArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			records, skipped, err := jsonl.ReadTasks(args[0])
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return userError{fmt.Errorf("import: %w", err)}
				}
				return fmt.Errorf("import: %w", err)
			}

			backend, table, err := o.attachBackend(ctx)
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			defer backend.Detach()

			svc := tasks.NewService(table, o.logger(cmd.ErrOrStderr()))
			result := importResult{Created: []int64{}, Rejected: []importReject{}, Skipped: skipped}
			if result.Skipped == nil {
				result.Skipped = []int{}
			}

			for i, fields := range records {
				fields = fields.Trimmed()
				if err := validate.Create(fields); err != nil {
					result.Rejected = append(result.Rejected, importReject{Record: i + 1, Error: err.Error()})
					continue
				}
				task, err := svc.Create(ctx, fields)
				if err != nil {
					return fmt.Errorf("import record %d: %w", i+1, err)
				}
				result.Created = append(result.Created, task.ID)
			}

			if o.jsonMode {
				return printJSON(cmd.OutOrStdout(), result)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d task(s)\n", len(result.Created))
			for _, r := range result.Rejected {
				fmt.Fprintf(out, "  record %d rejected: %s\n", r.Record, r.Error)
			}
			if len(result.Skipped) > 0 {
				fmt.Fprintf(out, "  %d record(s) skipped: not a task object\n", len(result.Skipped))
			}
			return nil
		},
	}
}
