package sprint

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/types"
)

// DeleteCmd returns the sprint delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <sprint-id>",
		Short: "Delete a sprint",
		Long: `Delete a sprint. Its tasks are kept and stay on the board.

Examples:
  scope sprint delete S2 --project=P1
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
	id := types.SprintID(env.Args[0])
	if err := env.Coordinator().DeleteSprint(ctx, projectID, id); err != nil {
		return err
	}
	switch {
	case env.Out.Quiet:
		return nil
	case env.Out.JSON:
		return env.Out.Object("deleted", map[string]string{"id": string(id), "projectId": string(projectID)})
	}
	env.Out.Printf("✓ Sprint %s deleted\n", id)
	return nil
}
