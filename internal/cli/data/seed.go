package data

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/coordinator"
	"github.com/thenoetrevino/scope/internal/models"
	"github.com/thenoetrevino/scope/internal/types"
)

// SeedCmd returns the data seed subcommand
func SeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a demo project to explore the commands with",
		Long: `Create a demo project with tasks in every column, a sprint, a risk and
meeting minutes. Prints the new project's ID.`,
		Args: cobra.NoArgs,
		RunE: handler.Command(runSeed),
	}
	cmd.Flags().String("name", "Demo project", "Project name")
	handler.AddOutputFlags(cmd)
	return cmd
}

var seedTasks = []coordinator.CreateTaskRequest{
	{Title: "Fix auth bug", Priority: models.PriorityHigh, Assignee: "Ana"},
	{Title: "Refactor UI"},
	{Title: "Update deps", Priority: models.PriorityLow},
	{Title: "Add tests", Status: models.StatusInProgress, Assignee: "Luis"},
	{Title: "Review PR #42", Status: models.StatusInProgress},
	{Title: "Wait for API keys", Status: models.StatusBlocked, Priority: models.PriorityCritical},
	{Title: "Set up CI", Status: models.StatusDone},
}

func runSeed(ctx context.Context, env *handler.Env) error {
	coord := env.Coordinator()
	project, err := coord.CreateProject(ctx, coordinator.CreateProjectRequest{
		Name:        env.Flags().StringOptional("name"),
		Description: "Sample data created by scope data seed",
	})
	if err != nil {
		return err
	}

	taskIDs := make([]types.TaskID, 0, len(seedTasks))
	for _, req := range seedTasks {
		req.ProjectID = project.ID
		t, err := coord.CreateTask(ctx, req)
		if err != nil {
			return err
		}
		taskIDs = append(taskIDs, t.ID)
	}

	today := coord.Today()
	sprint, err := coord.CreateSprint(ctx, coordinator.CreateSprintRequest{
		ProjectID: project.ID,
		Name:      "Sprint 1",
		StartDate: today,
		Status:    models.SprintActive,
		TaskIDs:   taskIDs[:4],
	})
	if err != nil {
		return err
	}
	if _, err := coord.CreateRisk(ctx, coordinator.CreateRiskRequest{
		ProjectID:   project.ID,
		Name:        "API keys arrive late",
		Impact:      3,
		Probability: 2,
		Mitigation:  "Mock the provider until the keys arrive",
	}); err != nil {
		return err
	}
	if _, err := coord.CreateMinutes(ctx, coordinator.CreateMinutesRequest{
		ProjectID: project.ID,
		Title:     "Kickoff",
		Date:      today,
		Content:   "# Kickoff\n\n- Agreed on two-week sprints\n- **Ana** owns the auth fix",
	}); err != nil {
		return err
	}

	switch {
	case env.Out.Quiet:
		return env.Out.IDs(string(project.ID))
	case env.Out.JSON:
		return env.Out.Object("project", project)
	}
	env.Out.Printf("✓ Demo project '%s' created (ID: %s)\n", project.Name, project.ID)
	env.Out.Printf("  %d tasks, sprint %s, 1 risk, 1 set of minutes\n", len(taskIDs), sprint.ID)
	env.Out.Printf("  Try: scope board --project=%s\n", project.ID)
	return nil
}
