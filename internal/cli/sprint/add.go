package sprint

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/types"
)

// AddCmd returns the sprint add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <sprint-id> <task-id>...",
		Short: "Add tasks to a sprint",
		Long: `Add tasks to a sprint. Tasks already in the sprint are left alone.

Examples:
  scope sprint add S1 T4 T5 --project=P1
`,
		Args: cobra.MinimumNArgs(2),
		RunE: handler.Command(runAdd),
	}
	handler.AddProjectFlag(cmd)
	handler.AddOutputFlags(cmd)
	return cmd
}

// RemoveCmd returns the sprint remove subcommand
func RemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <sprint-id> <task-id>...",
		Short: "Remove tasks from a sprint",
		Long: `Remove tasks from a sprint. The tasks themselves are kept.

Examples:
  scope sprint remove S1 T5 --project=P1
`,
		Args: cobra.MinimumNArgs(2),
		RunE: handler.Command(runRemove),
	}
	handler.AddProjectFlag(cmd)
	handler.AddOutputFlags(cmd)
	return cmd
}

type membershipFunc func(ctx context.Context, projectID types.ProjectID, sprintID types.SprintID, taskID types.TaskID) error

func runAdd(ctx context.Context, env *handler.Env) error {
	return changeMembers(ctx, env, env.Coordinator().AttachTask, "added to")
}

func runRemove(ctx context.Context, env *handler.Env) error {
	return changeMembers(ctx, env, env.Coordinator().DetachTask, "removed from")
}

func changeMembers(ctx context.Context, env *handler.Env, change membershipFunc, verb string) error {
	projectID, err := env.Flags().ProjectID()
	if err != nil {
		return err
	}
	sprintID := types.SprintID(env.Args[0])
	for _, id := range env.Args[1:] {
		if err := change(ctx, projectID, sprintID, types.TaskID(id)); err != nil {
			return err
		}
	}

	taskIDs, err := env.Coordinator().TasksInSprint(ctx, projectID, sprintID)
	if err != nil {
		return err
	}
	switch {
	case env.Out.Quiet:
		for _, id := range taskIDs {
			if err := env.Out.IDs(string(id)); err != nil {
				return err
			}
		}
		return nil
	case env.Out.JSON:
		return env.Out.Object("sprint", map[string]any{"id": sprintID, "taskIds": taskIDs})
	}
	for _, id := range env.Args[1:] {
		env.Out.Printf("✓ Task %s %s sprint %s\n", id, verb, sprintID)
	}
	env.Out.Printf("Sprint %s now has %d tasks\n", sprintID, len(taskIDs))
	return nil
}
