package column

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/types"
)

// UpdateCmd returns the column update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <column-id>",
		Short: "Rename a column",
		Long: `Rename a column. Tasks in a custom column follow it to the new name.

Examples:
  scope column update P1_C1 --name="Review"
  scope column update P1_todo --name="Backlog"
`,
		Args: cobra.ExactArgs(1),
		RunE: handler.Command(runUpdate),
	}
	cmd.Flags().String("name", "", "New column name (required)")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runUpdate(ctx context.Context, env *handler.Env) error {
	name, err := env.Flags().String("name")
	if err != nil {
		return err
	}
	col, err := env.Coordinator().RenameColumn(ctx, types.ColumnID(env.Args[0]), name)
	if err != nil {
		return err
	}
	return printColumn(env, col, "updated")
}
