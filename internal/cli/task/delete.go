package task

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/types"
)

// DeleteCmd returns the task delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <task-id>...",
		Short: "Delete tasks",
		Long: `Delete one or more tasks. They are removed from every sprint as well.

Examples:
  scope task delete T4
  scope task delete T4 T5 T6 --json
`,
		Args: cobra.MinimumNArgs(1),
		RunE: handler.Command(runDelete),
	}
	handler.AddOutputFlags(cmd)
	return cmd
}

func runDelete(ctx context.Context, env *handler.Env) error {
	deleted := make([]string, 0, len(env.Args))
	for _, arg := range env.Args {
		if err := env.Coordinator().DeleteTask(ctx, types.TaskID(arg)); err != nil {
			return err
		}
		deleted = append(deleted, arg)
	}
	switch {
	case env.Out.Quiet:
		return nil
	case env.Out.JSON:
		return env.Out.Object("deleted", deleted)
	}
	for _, id := range deleted {
		env.Out.Printf("✓ Task %s deleted\n", id)
	}
	return nil
}
