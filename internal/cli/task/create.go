package task

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/coordinator"
	"github.com/thenoetrevino/scope/internal/types"
)

// CreateCmd returns the task create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new task",
		Long: `Create a new task in a project.

Examples:
  # Simple task (human-readable output)
  scope task create --project=P1 --title="Fix login bug"

  # With details, straight into a sprint
  scope task create --project=P1 --title="Add OAuth" \
    --priority=high --assignee="Ana" --sprint=S1 \
    --start=2025-01-06 --end=2025-01-10

  # Quiet mode for bash capture
  TASK_ID=$(scope task create --project=P1 --title="Write docs" --quiet)
`,
		RunE: handler.Command(runCreate),
	}

	handler.AddProjectFlag(cmd)
	cmd.Flags().String("title", "", "Task title (required)")
	cmd.Flags().String("description", "", "Task description")
	cmd.Flags().String("assignee", "", "Person responsible")
	cmd.Flags().String("priority", "", "Priority: low, medium, high, critical (default medium)")
	cmd.Flags().String("status", "", "Initial status or custom column name (default todo)")
	cmd.Flags().String("start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().String("sprint", "", "Add the task to this sprint")
	cmd.Flags().String("id", "", "Explicit task ID (allocated when empty)")
	handler.AddOutputFlags(cmd)

	return cmd
}

func runCreate(ctx context.Context, env *handler.Env) error {
	flags := env.Flags()
	projectID, err := flags.ProjectID()
	if err != nil {
		return err
	}
	title, err := flags.String("title")
	if err != nil {
		return err
	}
	priority, err := flags.Priority("priority")
	if err != nil {
		return err
	}
	start, err := flags.Date("start")
	if err != nil {
		return err
	}
	end, err := flags.Date("end")
	if err != nil {
		return err
	}

	task, err := env.Coordinator().CreateTask(ctx, coordinator.CreateTaskRequest{
		ID:          types.TaskID(flags.StringOptional("id")),
		ProjectID:   projectID,
		Title:       title,
		Description: flags.StringOptional("description"),
		Assignee:    flags.StringOptional("assignee"),
		Priority:    priority,
		Status:      flags.StringOptional("status"),
		StartDate:   start,
		EndDate:     end,
		SprintID:    types.SprintID(flags.StringOptional("sprint")),
	})
	if err != nil {
		return err
	}

	switch {
	case env.Out.Quiet:
		return env.Out.IDs(string(task.ID))
	case env.Out.JSON:
		return env.Out.Object("task", task)
	}
	env.Out.Printf("✓ Task '%s' created successfully (ID: %s)\n", task.Title, task.ID)
	return nil
}
