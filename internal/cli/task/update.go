package task

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/coordinator"
	"github.com/thenoetrevino/scope/internal/models"
	"github.com/thenoetrevino/scope/internal/types"
)

// UpdateCmd returns the task update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Update a task",
		Long: `Update a task. Only the flags you pass are changed.

Examples:
  scope task update T4 --title="Fix login on Safari"
  scope task update T4 --priority=critical --assignee=Luis
  scope task update T4 --end=""
`,
		Args: cobra.ExactArgs(1),
		RunE: handler.Command(runUpdate),
	}
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().String("assignee", "", "New assignee")
	cmd.Flags().String("priority", "", "New priority")
	cmd.Flags().String("status", "", "New status or custom column name")
	cmd.Flags().String("start", "", "New start date (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "New end date (YYYY-MM-DD)")
	cmd.Flags().String("comments", "", "Replace the comments")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runUpdate(ctx context.Context, env *handler.Env) error {
	flags := env.Flags()
	priority, err := flags.OptionalPriority("priority")
	if err != nil {
		return err
	}
	start, err := flags.OptionalDate("start")
	if err != nil {
		return err
	}
	end, err := flags.OptionalDate("end")
	if err != nil {
		return err
	}
	req := coordinator.UpdateTaskRequest{
		Title:       flags.OptionalString("title"),
		Description: flags.OptionalString("description"),
		Assignee:    flags.OptionalString("assignee"),
		Priority:    priority,
		Status:      flags.OptionalString("status"),
		StartDate:   start,
		EndDate:     end,
		Comments:    flags.OptionalString("comments"),
	}
	if req == (coordinator.UpdateTaskRequest{}) {
		return env.Out.Usage(errors.New("nothing to update"), "Pass at least one field flag, e.g. --title")
	}

	task, err := env.Coordinator().UpdateTask(ctx, types.TaskID(env.Args[0]), req)
	if err != nil {
		return err
	}
	return printUpdated(env, task)
}

func printUpdated(env *handler.Env, task models.Task) error {
	switch {
	case env.Out.Quiet:
		return env.Out.IDs(string(task.ID))
	case env.Out.JSON:
		return env.Out.Object("task", task)
	}
	env.Out.Printf("✓ Task %s updated (status: %s)\n", task.ID, task.Status)
	return nil
}
