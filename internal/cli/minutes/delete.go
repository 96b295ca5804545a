package minutes

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/types"
)

// DeleteCmd returns the minutes delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <minutes-id>...",
		Short: "Delete minutes",
		Args:  cobra.MinimumNArgs(1),
		RunE:  handler.Command(runDelete),
	}
	handler.AddOutputFlags(cmd)
	return cmd
}

func runDelete(ctx context.Context, env *handler.Env) error {
	deleted := make([]string, 0, len(env.Args))
	for _, arg := range env.Args {
		if err := env.Coordinator().DeleteMinutes(ctx, types.MinutesID(arg)); err != nil {
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
		env.Out.Printf("✓ Minutes %s deleted\n", id)
	}
	return nil
}
