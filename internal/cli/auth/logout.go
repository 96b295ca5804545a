package auth

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
)

// LogoutCmd returns the logout command
func LogoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		Args:  cobra.NoArgs,
		RunE:  handler.Command(runLogout),
	}
	handler.AddOutputFlags(cmd)
	return cmd
}

func runLogout(_ context.Context, env *handler.Env) error {
	if err := requireRemote(env); err != nil {
		return err
	}
	if err := env.CLI.App.Logout(); err != nil {
		return err
	}
	switch {
	case env.Out.Quiet:
		return nil
	case env.Out.JSON:
		return env.Out.Object("loggedOut", true)
	}
	env.Out.Println("✓ Logged out")
	return nil
}
