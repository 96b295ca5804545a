package cli

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/types"
)

// EnvProject holds the default project for commands run without --project.
const EnvProject = "SCOPE_PROJECT"

type cliKey struct{}

// ErrNoCLI means a command ran without the root command's setup.
var ErrNoCLI = errors.New("cli not initialized")

// WithCLI stores c in ctx for the commands to pick up.
func WithCLI(ctx context.Context, c *CLI) context.Context {
	return context.WithValue(ctx, cliKey{}, c)
}

// GetCLIFromContext returns the CLI stored by WithCLI.
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if ctx == nil {
		return nil, ErrNoCLI
	}
	c, ok := ctx.Value(cliKey{}).(*CLI)
	if !ok || c == nil {
		return nil, ErrNoCLI
	}
	return c, nil
}

// GetProjectID returns --project, falling back to SCOPE_PROJECT.
func GetProjectID(cmd *cobra.Command) (types.ProjectID, error) {
	if f := cmd.Flags().Lookup("project"); f != nil {
		if v := strings.TrimSpace(f.Value.String()); v != "" {
			return types.ProjectID(v), nil
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvProject)); v != "" {
		return types.ProjectID(v), nil
	}
	return "", errors.New("no project specified: use --project or set " + EnvProject)
}
