package sprint

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/coordinator"
	"github.com/thenoetrevino/scope/internal/types"
)

// ShowCmd returns the sprint show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <sprint-id>",
		Short: "Show a sprint with its progress and task metrics",
		Args:  cobra.ExactArgs(1),
		RunE:  handler.Command(runShow),
	}
	handler.AddProjectFlag(cmd)
	handler.AddOutputFlags(cmd)
	return cmd
}

// CurrentCmd returns the sprint current subcommand
func CurrentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "current",
		Short: "Show the most recently created sprint",
		Args:  cobra.NoArgs,
		RunE:  handler.Command(runCurrent),
	}
	handler.AddProjectFlag(cmd)
	handler.AddOutputFlags(cmd)
	return cmd
}

func runShow(ctx context.Context, env *handler.Env) error {
	projectID, err := env.Flags().ProjectID()
	if err != nil {
		return err
	}
	return showReport(ctx, env, projectID, types.SprintID(env.Args[0]))
}

func runCurrent(ctx context.Context, env *handler.Env) error {
	projectID, err := env.Flags().ProjectID()
	if err != nil {
		return err
	}
	s, err := env.Coordinator().CurrentSprint(ctx, projectID)
	if err != nil {
		return err
	}
	return showReport(ctx, env, projectID, s.ID)
}

func showReport(ctx context.Context, env *handler.Env, projectID types.ProjectID, id types.SprintID) error {
	report, err := env.Coordinator().SprintReport(ctx, projectID, id)
	if err != nil {
		return err
	}
	switch {
	case env.Out.Quiet:
		return env.Out.IDs(string(report.Sprint.ID))
	case env.Out.JSON:
		return env.Out.Object("sprint", jsonReport(report))
	}
	env.Out.Println(render(report))
	return nil
}

type reportJSON struct {
	coordinator.SprintReport
	CompletionRate int `json:"completionRate"`
}

func jsonReport(r coordinator.SprintReport) reportJSON {
	return reportJSON{SprintReport: r, CompletionRate: r.Metrics.CompletionRate()}
}
