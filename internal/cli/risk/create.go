package risk

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/coordinator"
	"github.com/thenoetrevino/scope/internal/types"
)

// CreateCmd returns the risk create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a risk to a project",
		Long: `Add a risk to a project's register.

Examples:
  scope risk create --project=P1 --name="Key developer leaves" --impact=4 --probability=2
  scope risk create --project=P1 --name="Vendor delay" --impact=3 --probability=3 \
    --strategy=transfer --mitigation="Penalty clause in contract"
`,
		RunE: handler.Command(runCreate),
	}
	handler.AddProjectFlag(cmd)
	cmd.Flags().String("name", "", "Risk name (required)")
	cmd.Flags().String("description", "", "Description")
	cmd.Flags().Int("impact", 0, "Impact, 1-4 (required)")
	cmd.Flags().Int("probability", 0, "Probability, 1-4 (required)")
	cmd.Flags().String("mitigation", "", "Mitigation plan")
	cmd.Flags().String("strategy", "", "avoid, mitigate, transfer or accept (default mitigate)")
	cmd.Flags().String("status", "", "open, monitoring or closed (default open)")
	cmd.Flags().String("id", "", "Explicit risk ID (allocated when empty)")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runCreate(ctx context.Context, env *handler.Env) error {
	flags := env.Flags()
	projectID, err := flags.ProjectID()
	if err != nil {
		return err
	}
	name, err := flags.String("name")
	if err != nil {
		return err
	}
	impact, err := flags.RiskScore("impact")
	if err != nil {
		return err
	}
	probability, err := flags.RiskScore("probability")
	if err != nil {
		return err
	}

	r, err := env.Coordinator().CreateRisk(ctx, coordinator.CreateRiskRequest{
		ID:          types.RiskID(flags.StringOptional("id")),
		ProjectID:   projectID,
		Name:        name,
		Description: flags.StringOptional("description"),
		Impact:      impact,
		Probability: probability,
		Mitigation:  flags.StringOptional("mitigation"),
		Strategy:    flags.StringOptional("strategy"),
		Status:      flags.StringOptional("status"),
	})
	if err != nil {
		return err
	}
	return printRisk(env, r, "created successfully")
}
