// Package risk holds all cli commands for a project's risk register
//
// e.g., scope risk ...
package risk

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/cli/styles"
	"github.com/thenoetrevino/scope/internal/models"
)

// RiskCmd returns the risk parent command
func RiskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Manage the risk register",
		Long: `Manage a project's risks. Impact and probability are scored 1 to 4;
their product is the risk factor, which sets the risk appetite:

   1-4   Riesgo Bajo
   5-8   Riesgo Moderado
   9-12  Riesgo Alto
  13-16  Riesgo Extremo`,
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(StatsCmd())

	return cmd
}

func render(r models.Risk) string {
	return styles.Card(r.Name, string(r.ID)+" · "+string(r.ProjectID), []styles.Field{
		{Label: "Impact", Value: fmt.Sprint(r.Impact)},
		{Label: "Probability", Value: fmt.Sprint(r.Probability)},
		{Label: "Risk factor", Value: fmt.Sprint(r.RiskFactor)},
		{Label: "Appetite", Value: styles.Appetite(r.Appetite)},
		{Label: "Strategy", Value: r.Strategy},
		{Label: "Status", Value: r.Status},
	},
		styles.Field{Label: "Description", Value: r.Description},
		styles.Field{Label: "Mitigation", Value: r.Mitigation},
	)
}

func printRisk(env *handler.Env, r models.Risk, verb string) error {
	switch {
	case env.Out.Quiet:
		return env.Out.IDs(string(r.ID))
	case env.Out.JSON:
		return env.Out.Object("risk", r)
	}
	env.Out.Printf("✓ Risk '%s' %s (ID: %s, factor %d, %s)\n", r.Name, verb, r.ID, r.RiskFactor, r.Appetite)
	return nil
}
