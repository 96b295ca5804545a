package minutes

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/types"
)

// ShowCmd returns the minutes show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <minutes-id>",
		Short: "Show minutes with rendered markdown",
		Args:  cobra.ExactArgs(1),
		RunE:  handler.Command(runShow),
	}
	cmd.Flags().Bool("raw", false, "Print the content without rendering")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runShow(ctx context.Context, env *handler.Env) error {
	m, err := env.Coordinator().GetMinutes(ctx, types.MinutesID(env.Args[0]))
	if err != nil {
		return err
	}
	switch {
	case env.Out.Quiet:
		return env.Out.IDs(string(m.ID))
	case env.Out.JSON:
		return env.Out.Object("minutes", m)
	case env.Flags().Bool("raw"):
		env.Out.Println(m.Content)
		return nil
	}
	env.Out.Println(render(m))
	return nil
}
