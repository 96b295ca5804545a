package auth

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
)

// WhoAmICmd returns the whoami command
func WhoAmICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the user the stored session belongs to",
		Args:  cobra.NoArgs,
		RunE:  handler.Command(runWhoAmI),
	}
	handler.AddOutputFlags(cmd)
	return cmd
}

func runWhoAmI(ctx context.Context, env *handler.Env) error {
	if err := requireRemote(env); err != nil {
		return err
	}
	user, err := env.CLI.App.WhoAmI(ctx)
	if err != nil {
		return err
	}
	return printUser(env, user, "Logged in as "+user.Username)
}
