package task

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/coordinator"
	"github.com/thenoetrevino/scope/internal/types"
)

// CommentCmd returns the task comment subcommand
func CommentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment <task-id> <text>",
		Short: "Append a line to a task's comments",
		Long: `Append a comment to a task. Comments are kept as one block of text,
one comment per line.

Examples:
  scope task comment T4 "Waiting on the API team"
`,
		Args: cobra.ExactArgs(2),
		RunE: handler.Command(runComment),
	}
	handler.AddOutputFlags(cmd)
	return cmd
}

func runComment(ctx context.Context, env *handler.Env) error {
	coord := env.Coordinator()
	id := types.TaskID(env.Args[0])
	text := strings.TrimSpace(env.Args[1])

	current, err := coord.GetTask(ctx, id)
	if err != nil {
		return err
	}
	comments := text
	if existing := strings.TrimRight(current.Comments, "\n"); existing != "" {
		comments = existing + "\n" + text
	}

	task, err := coord.UpdateTask(ctx, id, coordinator.UpdateTaskRequest{Comments: &comments})
	if err != nil {
		return err
	}
	return printUpdated(env, task)
}
