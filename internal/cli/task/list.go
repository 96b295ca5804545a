package task

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/cli/styles"
	"github.com/thenoetrevino/scope/internal/models"
)

// ListCmd returns the task list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's tasks",
		Long: `List the tasks of a project, optionally filtered.

Examples:
  scope task list --project=P1
  scope task list --project=P1 --status=blocked
  scope task list --project=P1 --assignee=Ana --json
`,
		RunE: handler.Command(runList),
	}
	handler.AddProjectFlag(cmd)
	cmd.Flags().String("status", "", "Only tasks with this status")
	cmd.Flags().String("assignee", "", "Only tasks assigned to this person")
	cmd.Flags().String("priority", "", "Only tasks with this priority")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runList(ctx context.Context, env *handler.Env) error {
	flags := env.Flags()
	projectID, err := flags.ProjectID()
	if err != nil {
		return err
	}
	priority, err := flags.Priority("priority")
	if err != nil {
		return err
	}

	tasks, err := env.Coordinator().ListTasks(ctx, projectID)
	if err != nil {
		return err
	}
	tasks = filter(tasks, flags.StringOptional("status"), flags.StringOptional("assignee"), priority)

	if env.Out.Quiet {
		for _, t := range tasks {
			if err := env.Out.IDs(string(t.ID)); err != nil {
				return err
			}
		}
		return nil
	}
	if env.Out.JSON {
		return env.Out.Object("tasks", tasks)
	}

	if len(tasks) == 0 {
		env.Out.Println("No tasks found")
		return nil
	}
	env.Out.Printf("Found %d tasks:\n\n", len(tasks))
	for _, t := range tasks {
		env.Out.Printf("  [%s] %s  %s  %s", t.ID, t.Title, styles.SubtitleStyle.Render(t.Status), styles.Priority(t.Priority))
		if t.Assignee != "" {
			env.Out.Printf("  @%s", t.Assignee)
		}
		env.Out.Println()
	}
	return nil
}

func filter(tasks []models.Task, status, assignee, priority string) []models.Task {
	out := tasks[:0:0]
	for _, t := range tasks {
		if status != "" && t.Status != status {
			continue
		}
		if assignee != "" && !strings.EqualFold(t.Assignee, assignee) {
			continue
		}
		if priority != "" && t.Priority != priority {
			continue
		}
		out = append(out, t)
	}
	return out
}
