package risk

import (
	"context"
	"sort"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/cli/styles"
	"github.com/thenoetrevino/scope/internal/models"
)

// ListCmd returns the risk list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's risks",
		Long: `List a project's risks.

Examples:
  scope risk list --project=P1
  scope risk list --project=P1 --status=open --by-factor
`,
		RunE: handler.Command(runList),
	}
	handler.AddProjectFlag(cmd)
	cmd.Flags().String("status", "", "Filter by status")
	cmd.Flags().Bool("by-factor", false, "Sort by risk factor, highest first")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runList(ctx context.Context, env *handler.Env) error {
	flags := env.Flags()
	projectID, err := flags.ProjectID()
	if err != nil {
		return err
	}
	all, err := env.Coordinator().ListRisks(ctx, projectID)
	if err != nil {
		return err
	}

	status := flags.StringOptional("status")
	risks := make([]models.Risk, 0, len(all))
	for _, r := range all {
		if status == "" || r.Status == status {
			risks = append(risks, r)
		}
	}
	if flags.Bool("by-factor") {
		sort.SliceStable(risks, func(i, j int) bool {
			return risks[i].RiskFactor > risks[j].RiskFactor
		})
	}

	if env.Out.Quiet {
		for _, r := range risks {
			if err := env.Out.IDs(string(r.ID)); err != nil {
				return err
			}
		}
		return nil
	}
	if env.Out.JSON {
		return env.Out.Object("risks", risks)
	}

	if len(risks) == 0 {
		env.Out.Println("No risks found")
		return nil
	}
	env.Out.Printf("Found %d risks:\n\n", len(risks))
	for _, r := range risks {
		env.Out.Printf("  [%s] %s  %2d  %s  %s\n", r.ID, r.Name, r.RiskFactor, styles.Appetite(r.Appetite),
			styles.SubtitleStyle.Render(r.Status))
	}
	return nil
}
