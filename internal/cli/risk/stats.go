package risk

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/cli/styles"
	"github.com/thenoetrevino/scope/internal/models"
)

// StatsCmd returns the risk stats subcommand
func StatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize a project's risks by status, appetite and strategy",
		Args:  cobra.NoArgs,
		RunE:  handler.Command(runStats),
	}
	handler.AddProjectFlag(cmd)
	handler.AddOutputFlags(cmd)
	return cmd
}

var (
	statusOrder   = []string{models.RiskOpen, models.RiskMonitoring, models.RiskClosed}
	appetiteOrder = []string{models.AppetiteLow, models.AppetiteModerate, models.AppetiteHigh, models.AppetiteExtreme}
	strategyOrder = []string{models.StrategyAvoid, models.StrategyMitigate, models.StrategyTransfer, models.StrategyAccept}
)

func runStats(ctx context.Context, env *handler.Env) error {
	projectID, err := env.Flags().ProjectID()
	if err != nil {
		return err
	}
	stats, err := env.Coordinator().RiskStats(ctx, projectID)
	if err != nil {
		return err
	}
	switch {
	case env.Out.Quiet:
		env.Out.Println(stats.Total)
		return nil
	case env.Out.JSON:
		return env.Out.Object("stats", stats)
	}

	env.Out.Println(styles.Card(fmt.Sprintf("%d risks", stats.Total), string(projectID), nil,
		section("By status", statusOrder, stats.ByStatus),
		section("By appetite", appetiteOrder, stats.ByAppetite),
		section("By strategy", strategyOrder, stats.ByStrategy),
	))
	return nil
}

func section(label string, order []string, counts map[string]int) styles.Field {
	lines := make([]string, len(order))
	for i, key := range order {
		lines[i] = fmt.Sprintf("  %-16s %d", key, counts[key])
	}
	return styles.Field{Label: label, Value: strings.Join(lines, "\n")}
}
