package data

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
)

// ClearCmd returns the data clear subcommand
func ClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all local data",
		Long: `Delete every project from the local cache. The remote store is not
modified; in remote mode the data comes back on the next read.`,
		Args: cobra.NoArgs,
		RunE: handler.Command(runClear),
	}
	cmd.Flags().Bool("force", false, "Skip confirmation")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runClear(ctx context.Context, env *handler.Env) error {
	if !confirm(env, "Delete all local data?") {
		return nil
	}
	if err := env.Coordinator().ClearAll(ctx); err != nil {
		return err
	}
	switch {
	case env.Out.Quiet:
		return nil
	case env.Out.JSON:
		return env.Out.Object("cleared", true)
	}
	env.Out.Println("✓ Local data cleared")
	return nil
}
