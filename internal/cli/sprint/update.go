package sprint

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/coordinator"
	"github.com/thenoetrevino/scope/internal/types"
)

// UpdateCmd returns the sprint update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <sprint-id>",
		Short: "Update a sprint",
		Long: `Update a sprint. Only the flags you pass are changed.

Examples:
  scope sprint update S1 --project=P1 --status=active
  scope sprint update S1 --project=P1 --end=2025-01-24
`,
		Args: cobra.ExactArgs(1),
		RunE: handler.Command(runUpdate),
	}
	handler.AddProjectFlag(cmd)
	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("start", "", "New start date (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "New end date (YYYY-MM-DD)")
	cmd.Flags().String("status", "", "planning, active or completed")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runUpdate(ctx context.Context, env *handler.Env) error {
	flags := env.Flags()
	projectID, err := flags.ProjectID()
	if err != nil {
		return err
	}
	start, err := flags.OptionalDate("start")
	if err != nil {
		return err
	}
	end, err := flags.OptionalDate("end")
	if err != nil {
		return err
	}
	req := coordinator.UpdateSprintRequest{
		Name:      flags.OptionalString("name"),
		StartDate: start,
		EndDate:   end,
		Status:    flags.OptionalString("status"),
	}
	if req == (coordinator.UpdateSprintRequest{}) {
		return env.Out.Usage(errors.New("nothing to update"), "Pass at least one of --name, --start, --end or --status")
	}

	s, err := env.Coordinator().UpdateSprint(ctx, projectID, types.SprintID(env.Args[0]), req)
	if err != nil {
		return err
	}
	switch {
	case env.Out.Quiet:
		return env.Out.IDs(string(s.ID))
	case env.Out.JSON:
		return env.Out.Object("sprint", s)
	}
	env.Out.Printf("✓ Sprint %s updated (status: %s)\n", s.ID, s.Status)
	return nil
}
