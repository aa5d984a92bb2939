package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/taskboard/internal/client"
	"github.com/mesh-intelligence/taskboard/pkg/types"
)

// newStore builds a client store for the configured server. Notifications go
// to stderr so stdout stays machine-readable.
func (o *options) newStore(cmd *cobra.Command, confirmer client.Confirmer) (*client.Store, *client.Client) {
	c := client.New(o.server())
	opts := []client.StoreOption{client.WithNotifier(cliNotifier{w: cmd.ErrOrStderr()})}
	if confirmer != nil {
		opts = append(opts, client.WithConfirmer(confirmer))
	}
	return client.NewStore(c, opts...), c
}

func (o *options) printTasks(cmd *cobra.Command, list []types.Task) error {
	if o.jsonMode {
		return printJSON(cmd.OutOrStdout(), list)
	}
	printTaskTable(cmd.OutOrStdout(), list)
	return nil
}

func (o *options) printOne(cmd *cobra.Command, t types.Task) error {
	if o.jsonMode {
		return printJSON(cmd.OutOrStdout(), t)
	}
	printTask(cmd.OutOrStdout(), t)
	return nil
}

// parseTaskID reads a positional task id.
func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, userError{fmt.Errorf("invalid task id %q", arg)}
	}
	return id, nil
}

func newListCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tasks",
		Args:  checkArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _ := o.newStore(cmd, nil)
			if err := store.FetchTasks(cmd.Context()); err != nil {
				return fmt.Errorf("list: %w", err)
			}
			return o.printTasks(cmd, store.Tasks())
		},
	}
}

func newFilterCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "filter <status>",
		Short: "List tasks with a status",
		Long: `List tasks whose status matches exactly. "All" lists every task.

Example:
  taskboard filter "In Progress"`,
		Args: checkArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _ := o.newStore(cmd, nil)
			store.SetStatus(args[0])
			if err := store.FilterTask(cmd.Context()); err != nil {
				return fmt.Errorf("filter: %w", err)
			}
			return o.printTasks(cmd, store.Tasks())
		},
	}
}

func newShowCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Display a task",
		Args:  checkArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			_, c := o.newStore(cmd, nil)
			task, err := c.Show(cmd.Context(), id)
			if err != nil {
				if errors.Is(err, types.ErrNotFound) {
					return fmt.Errorf("task %d: %w", id, types.ErrNotFound)
				}
				return fmt.Errorf("show: %w", err)
			}
			return o.printOne(cmd, *task)
		},
	}
}

func newCreateCmd(o *options) *cobra.Command {
	var title, description, status string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		Long: `Create a task. Title and description are required; status defaults
to "To Do".

Example:
  taskboard create --title "Buy milk" --description "2%"`,
		Args: checkArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _ := o.newStore(cmd, nil)
			store.SetTitle(title)
			store.SetDescription(description)
			store.SetDraftStatus(status)

			task, err := store.CreateTask(cmd.Context())
			if err != nil {
				return fmt.Errorf("create: %w", err)
			}
			return o.printOne(cmd, *task)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "task title")
	cmd.Flags().StringVar(&description, "description", "", "task description")
	cmd.Flags().StringVar(&status, "status", types.StatusToDo, "task status (To Do, In Progress, Completed)")
	return cmd
}

func newUpdateCmd(o *options) *cobra.Command {
	var title, description, status string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a task",
		Long: `Change the given fields of a task. Fields without a flag are left as
they are.

Example:
  taskboard update 3 --status Completed`,
		Args: checkArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}

			var patch types.TaskPatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("status") {
				patch.Status = &status
			}
			if patch.IsEmpty() {
				return userError{errors.New("update: nothing to change; pass --title, --description or --status")}
			}

			store, _ := o.newStore(cmd, nil)
			task, err := store.UpdateTask(cmd.Context(), id, patch)
			if err != nil {
				return fmt.Errorf("update: %w", err)
			}
			return o.printOne(cmd, *task)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&status, "status", "", "new status")
	return cmd
}

func newDeleteCmd(o *options) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Long:  "Delete a task after confirmation. Use --yes to skip the prompt.",
		Args:  checkArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}

			var confirmer client.Confirmer = promptConfirmer{in: cmd.InOrStdin(), out: cmd.ErrOrStderr()}
			if yes {
				confirmer = client.AlwaysConfirm
			}

			store, _ := o.newStore(cmd, confirmer)
			deleted, err := store.DeleteTask(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("delete: %w", err)
			}

			if o.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]any{"id": id, "deleted": deleted})
			}
			if deleted {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %d\n", id)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")
	return cmd
}
