package column

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/cli/styles"
)

// ListCmd returns the column list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's columns in board order",
		RunE:  handler.Command(runList),
	}
	handler.AddProjectFlag(cmd)
	handler.AddOutputFlags(cmd)
	return cmd
}

func runList(ctx context.Context, env *handler.Env) error {
	projectID, err := env.Flags().ProjectID()
	if err != nil {
		return err
	}
	columns, err := env.Coordinator().ListColumns(ctx, projectID)
	if err != nil {
		return err
	}

	if env.Out.Quiet {
		for _, col := range columns {
			if err := env.Out.IDs(string(col.ID)); err != nil {
				return err
			}
		}
		return nil
	}
	if env.Out.JSON {
		return env.Out.Object("columns", columns)
	}

	env.Out.Printf("Columns in project %s:\n\n", projectID)
	for _, col := range columns {
		kind := "custom"
		if col.IsDefault {
			kind = "default"
		}
		env.Out.Printf("  %d. [%s] %s  %s\n", col.OrderIndex+1, col.ID, col.Name, styles.SubtitleStyle.Render(kind))
	}
	return nil
}
