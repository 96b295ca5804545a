package sprint

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/coordinator"
	"github.com/thenoetrevino/scope/internal/types"
)

// CreateCmd returns the sprint create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a sprint",
		Long: `Create a sprint, optionally with its initial tasks.

Examples:
  scope sprint create --project=P1 --name="Sprint 1" --start=2025-01-06 --end=2025-01-17
  scope sprint create --project=P1 --name="Hardening" --tasks=T4,T7 --status=active
`,
		RunE: handler.Command(runCreate),
	}
	handler.AddProjectFlag(cmd)
	cmd.Flags().String("name", "", "Sprint name (required)")
	cmd.Flags().String("start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().String("status", "", "planning, active or completed (default planning)")
	cmd.Flags().StringSlice("tasks", nil, "Task IDs to include")
	cmd.Flags().String("id", "", "Explicit sprint ID (allocated when empty)")
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
	start, err := flags.Date("start")
	if err != nil {
		return err
	}
	end, err := flags.Date("end")
	if err != nil {
		return err
	}
	taskArgs, _ := env.Cmd().Flags().GetStringSlice("tasks")
	taskIDs := make([]types.TaskID, len(taskArgs))
	for i, id := range taskArgs {
		taskIDs[i] = types.TaskID(id)
	}

	rec, err := env.Coordinator().CreateSprint(ctx, coordinator.CreateSprintRequest{
		ID:        types.SprintID(flags.StringOptional("id")),
		ProjectID: projectID,
		Name:      name,
		StartDate: start,
		EndDate:   end,
		Status:    flags.StringOptional("status"),
		TaskIDs:   taskIDs,
	})
	if err != nil {
		return err
	}

	switch {
	case env.Out.Quiet:
		return env.Out.IDs(string(rec.ID))
	case env.Out.JSON:
		return env.Out.Object("sprint", rec)
	}
	env.Out.Printf("✓ Sprint '%s' created successfully (ID: %s, %d tasks)\n", rec.Name, rec.ID, len(rec.TaskIDs))
	return nil
}
