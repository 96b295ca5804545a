package risk

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/types"
)

// ShowCmd returns the risk show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <risk-id>",
		Short: "Show a risk",
		Args:  cobra.ExactArgs(1),
		RunE:  handler.Command(runShow),
	}
	handler.AddOutputFlags(cmd)
	return cmd
}

func runShow(ctx context.Context, env *handler.Env) error {
	r, err := env.Coordinator().GetRisk(ctx, types.RiskID(env.Args[0]))
	if err != nil {
		return err
	}
	switch {
	case env.Out.Quiet:
		return env.Out.IDs(string(r.ID))
	case env.Out.JSON:
		return env.Out.Object("risk", r)
	}
	env.Out.Println(render(r))
	return nil
}
