package data

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli"
	"github.com/thenoetrevino/scope/internal/cli/handler"
)

// RefreshCmd returns the data refresh subcommand
func RefreshCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Replace the local copy with the remote store's",
		Long: `Replace the local copy of every project, or of one project with
--project, with the remote store's. Does nothing in local mode.`,
		Args: cobra.NoArgs,
		RunE: handler.Command(runRefresh),
	}
	handler.AddProjectFlag(cmd)
	handler.AddOutputFlags(cmd)
	return cmd
}

func runRefresh(ctx context.Context, env *handler.Env) error {
	coord := env.Coordinator()
	var err error
	if projectID, perr := cli.GetProjectID(env.Cmd()); perr == nil {
		err = coord.RefreshProject(ctx, projectID)
	} else {
		err = coord.Refresh(ctx)
	}
	if err != nil {
		return err
	}

	remote := coord.RemoteEnabled()
	switch {
	case env.Out.Quiet:
		return nil
	case env.Out.JSON:
		return env.Out.Object("refresh", map[string]bool{"remote": remote})
	case !remote:
		env.Out.Println("Local mode: nothing to refresh")
		return nil
	}
	env.Out.Println("✓ Refreshed from the remote store")
	return nil
}
