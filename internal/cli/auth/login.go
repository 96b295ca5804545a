package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/user"
)

// LoginCmd returns the login command
func LoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the remote store",
		Long: `Log in to the remote store and keep the session token for later
commands. The password is prompted for when --password is not given.
The username defaults to $SCOPE_USER, then the system user.

Examples:
  scope login --username=alice
  echo "$PASSWORD" | scope login --username=alice
`,
		Args: cobra.NoArgs,
		RunE: handler.Command(runLogin),
	}
	cmd.Flags().StringP("username", "u", "", "Username (defaults to $SCOPE_USER or the system user)")
	cmd.Flags().String("password", "", "Password (prompted when empty)")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runLogin(ctx context.Context, env *handler.Env) error {
	if err := requireRemote(env); err != nil {
		return err
	}
	flags := env.Flags()
	username := strings.TrimSpace(flags.StringOptional("username"))
	if username == "" {
		username = user.LoginName()
	}
	if username == "" {
		return env.Out.Usage(errors.New("no username given"), "Pass --username or export "+user.EnvUser)
	}
	password := flags.StringOptional("password")
	if password == "" {
		var err error
		if password, err = readPassword(env); err != nil {
			return err
		}
	}

	account, err := env.CLI.App.Login(ctx, username, password)
	if err != nil {
		return err
	}
	return printUser(env, account, "✓ Logged in as "+account.Username)
}
