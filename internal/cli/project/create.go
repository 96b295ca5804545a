package project

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/coordinator"
	"github.com/thenoetrevino/scope/internal/types"
)

// CreateCmd returns the project create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		Long: `Create a new project. The four default board columns are created with it.

Examples:
  # Simple project (human-readable output)
  scope project create --name="Backend API"

  # JSON output for agents
  scope project create --name="Backend API" --json

  # Quiet mode for bash capture
  PROJECT_ID=$(scope project create --name="Backend API" --quiet)
`,
		RunE: handler.Command(runCreate),
	}

	cmd.Flags().String("name", "", "Project name (required)")
	cmd.Flags().String("description", "", "Project description")
	cmd.Flags().String("id", "", "Explicit project ID (allocated when empty)")
	handler.AddOutputFlags(cmd)

	return cmd
}

func runCreate(ctx context.Context, env *handler.Env) error {
	flags := env.Flags()
	name, err := flags.String("name")
	if err != nil {
		return err
	}

	project, err := env.Coordinator().CreateProject(ctx, coordinator.CreateProjectRequest{
		ID:          types.ProjectID(flags.StringOptional("id")),
		Name:        name,
		Description: flags.StringOptional("description"),
	})
	if err != nil {
		return err
	}

	switch {
	case env.Out.Quiet:
		return env.Out.IDs(string(project.ID))
	case env.Out.JSON:
		return env.Out.Object("project", project)
	}
	env.Out.Printf("✓ Project '%s' created successfully (ID: %s)\n", project.Name, project.ID)
	return nil
}
