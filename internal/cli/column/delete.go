package column

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/types"
)

// DeleteCmd returns the column delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <column-id>",
		Short: "Delete a custom column",
		Long: `Delete a custom column. Its tasks move back to todo. Default columns
cannot be deleted.

Examples:
  scope column delete P1_C1 --project=P1
`,
		Args: cobra.ExactArgs(1),
		RunE: handler.Command(runDelete),
	}
	handler.AddProjectFlag(cmd)
	handler.AddOutputFlags(cmd)
	return cmd
}

func runDelete(ctx context.Context, env *handler.Env) error {
	projectID, err := env.Flags().ProjectID()
	if err != nil {
		return err
	}
	id := types.ColumnID(env.Args[0])
	moved, err := env.Coordinator().DeleteColumn(ctx, projectID, id)
	if err != nil {
		return err
	}
	if moved == nil {
		moved = []types.TaskID{}
	}

	switch {
	case env.Out.Quiet:
		for _, t := range moved {
			if err := env.Out.IDs(string(t)); err != nil {
				return err
			}
		}
		return nil
	case env.Out.JSON:
		return env.Out.Object("deleted", map[string]any{"id": id, "movedTasks": moved})
	}
	env.Out.Printf("✓ Column %s deleted\n", id)
	if len(moved) > 0 {
		ids := make([]string, len(moved))
		for i, t := range moved {
			ids[i] = string(t)
		}
		env.Out.Printf("  Moved to todo: %s\n", strings.Join(ids, ", "))
	}
	return nil
}
