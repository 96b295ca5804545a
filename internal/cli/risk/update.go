package risk

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/coordinator"
	"github.com/thenoetrevino/scope/internal/types"
)

// UpdateCmd returns the risk update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <risk-id>",
		Short: "Update a risk",
		Long: `Update a risk. Only the flags you pass are changed; the risk factor
and appetite follow impact and probability.

Examples:
  scope risk update R2 --probability=1
  scope risk update R2 --status=closed
`,
		Args: cobra.ExactArgs(1),
		RunE: handler.Command(runUpdate),
	}
	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().Int("impact", 0, "New impact, 1-4")
	cmd.Flags().Int("probability", 0, "New probability, 1-4")
	cmd.Flags().String("mitigation", "", "New mitigation plan")
	cmd.Flags().String("strategy", "", "New strategy")
	cmd.Flags().String("status", "", "New status")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runUpdate(ctx context.Context, env *handler.Env) error {
	flags := env.Flags()
	impact, err := flags.OptionalRiskScore("impact")
	if err != nil {
		return err
	}
	probability, err := flags.OptionalRiskScore("probability")
	if err != nil {
		return err
	}
	req := coordinator.UpdateRiskRequest{
		Name:        flags.OptionalString("name"),
		Description: flags.OptionalString("description"),
		Impact:      impact,
		Probability: probability,
		Mitigation:  flags.OptionalString("mitigation"),
		Strategy:    flags.OptionalString("strategy"),
		Status:      flags.OptionalString("status"),
	}
	if req == (coordinator.UpdateRiskRequest{}) {
		return env.Out.Usage(errors.New("nothing to update"), "Pass at least one field flag, e.g. --status")
	}

	r, err := env.Coordinator().UpdateRisk(ctx, types.RiskID(env.Args[0]), req)
	if err != nil {
		return err
	}
	return printRisk(env, r, "updated")
}
