package task

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/apperr"
	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/coordinator"
	"github.com/thenoetrevino/scope/internal/models"
	"github.com/thenoetrevino/scope/internal/types"
)

// MoveCmd returns the task move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <task-id> <column>",
		Short: "Move a task to another board column",
		Long: `Move a task to a column. The column may be given by ID, by name or by
the status it holds.

Examples:
  scope task move T4 P1_progress
  scope task move T4 done
  scope task move T4 "Code Review"
`,
		Args: cobra.ExactArgs(2),
		RunE: handler.Command(runMove),
	}
	handler.AddOutputFlags(cmd)
	return cmd
}

func runMove(ctx context.Context, env *handler.Env) error {
	coord := env.Coordinator()
	id := types.TaskID(env.Args[0])

	current, err := coord.GetTask(ctx, id)
	if err != nil {
		return err
	}
	col, err := resolveColumn(ctx, coord, current.ProjectID, env.Args[1])
	if err != nil {
		return err
	}
	task, err := coord.MoveTask(ctx, id, col.ID)
	if err != nil {
		return err
	}
	return printUpdated(env, task)
}

// StatusCmd returns a shortcut that moves a task to the default column
// holding status.
func StatusCmd(use, short, status string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " <task-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: handler.Command(func(ctx context.Context, env *handler.Env) error {
			task, err := env.Coordinator().UpdateTask(ctx, types.TaskID(env.Args[0]), coordinator.UpdateTaskRequest{
				Status: &status,
			})
			if err != nil {
				return err
			}
			return printUpdated(env, task)
		}),
	}
	handler.AddOutputFlags(cmd)
	return cmd
}

// resolveColumn finds a project column by ID, status or name.
func resolveColumn(ctx context.Context, coord *coordinator.Coordinator, projectID types.ProjectID, ref string) (models.Column, error) {
	cols, err := coord.ListColumns(ctx, projectID)
	if err != nil {
		return models.Column{}, err
	}
	for _, c := range cols {
		if string(c.ID) == ref {
			return c, nil
		}
	}
	for _, c := range cols {
		if c.IsDefault && c.Status() == ref {
			return c, nil
		}
	}
	for _, c := range cols {
		if strings.EqualFold(c.Name, ref) {
			return c, nil
		}
	}
	return models.Column{}, apperr.NotFound("column", ref)
}
