package column

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/types"
)

// ReorderCmd returns the column reorder subcommand
func ReorderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reorder <column-id>...",
		Short: "Set the order of a project's columns",
		Long: `Set the board order of a project's columns. Every column of the
project must be listed exactly once.

Examples:
  scope column reorder --project=P1 P1_todo P1_progress P1_C1 P1_blocked P1_done
`,
		Args: cobra.MinimumNArgs(1),
		RunE: handler.Command(runReorder),
	}
	handler.AddProjectFlag(cmd)
	handler.AddOutputFlags(cmd)
	return cmd
}

func runReorder(ctx context.Context, env *handler.Env) error {
	projectID, err := env.Flags().ProjectID()
	if err != nil {
		return err
	}
	ordered := make([]types.ColumnID, len(env.Args))
	for i, id := range env.Args {
		ordered[i] = types.ColumnID(id)
	}
	if err := env.Coordinator().ReorderColumns(ctx, projectID, ordered); err != nil {
		return err
	}

	columns, err := env.Coordinator().ListColumns(ctx, projectID)
	if err != nil {
		return err
	}
	switch {
	case env.Out.Quiet:
		for _, col := range columns {
			if err := env.Out.IDs(string(col.ID)); err != nil {
				return err
			}
		}
		return nil
	case env.Out.JSON:
		return env.Out.Object("columns", columns)
	}
	env.Out.Println("✓ Columns reordered")
	for _, col := range columns {
		env.Out.Printf("  %d. %s\n", col.OrderIndex+1, col.Name)
	}
	return nil
}
