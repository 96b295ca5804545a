package sprint

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/cli/styles"
)

// ListCmd returns the sprint list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's sprints",
		RunE:  handler.Command(runList),
	}
	handler.AddProjectFlag(cmd)
	handler.AddOutputFlags(cmd)
	return cmd
}

func runList(ctx context.Context, env *handler.Env) error {
	projectID, err := env.Flags().ProjectID()
	if err != nil {
		return err
	}
	sprints, err := env.Coordinator().ListSprints(ctx, projectID)
	if err != nil {
		return err
	}

	if env.Out.Quiet {
		for _, s := range sprints {
			if err := env.Out.IDs(string(s.ID)); err != nil {
				return err
			}
		}
		return nil
	}
	if env.Out.JSON {
		return env.Out.Object("sprints", sprints)
	}

	if len(sprints) == 0 {
		env.Out.Println("No sprints found")
		return nil
	}
	env.Out.Printf("Found %d sprints:\n\n", len(sprints))
	for _, s := range sprints {
		env.Out.Printf("  [%s] %s  %s  %d tasks", s.ID, s.Name, styles.SubtitleStyle.Render(s.Status), len(s.TaskIDs))
		if s.StartDate != "" || s.EndDate != "" {
			env.Out.Printf("  (%s → %s)", s.StartDate, s.EndDate)
		}
		env.Out.Println()
	}
	return nil
}
