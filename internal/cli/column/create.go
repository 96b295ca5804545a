package column

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/coordinator"
	"github.com/thenoetrevino/scope/internal/types"
)

// CreateCmd returns the column create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a custom column to the end of the board",
		Long: `Add a custom column to the end of a project's board.

Examples:
  # Human-readable output
  scope column create --name="Code Review" --project=P1

  # Quiet mode for bash capture
  COLUMN_ID=$(scope column create --name="QA" --project=P1 --quiet)
`,
		RunE: handler.Command(runCreate),
	}
	handler.AddProjectFlag(cmd)
	cmd.Flags().String("name", "", "Column name (required)")
	cmd.Flags().String("id", "", "Explicit column ID (allocated when empty)")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runCreate(ctx context.Context, env *handler.Env) error {
	flags := env.Flags()
	projectID, err := flags.ProjectID()
	if err != nil {
		return err
	}
	name, err := flags.String("name")
	if err != nil {
		return err
	}
	col, err := env.Coordinator().CreateColumn(ctx, coordinator.CreateColumnRequest{
		ID:        types.ColumnID(flags.StringOptional("id")),
		ProjectID: projectID,
		Name:      name,
	})
	if err != nil {
		return err
	}
	return printColumn(env, col, "created successfully")
}
