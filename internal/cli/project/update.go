package project

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/coordinator"
	"github.com/thenoetrevino/scope/internal/types"
)

// UpdateCmd returns the project update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <project-id>",
		Short: "Update a project's name or description",
		Long: `Update a project. Only the flags you pass are changed.

Examples:
  scope project update P1 --name="Backend API v2"
  scope project update P1 --description=""
`,
		Args: cobra.ExactArgs(1),
		RunE: handler.Command(runUpdate),
	}
	cmd.Flags().String("name", "", "New project name")
	cmd.Flags().String("description", "", "New project description")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runUpdate(ctx context.Context, env *handler.Env) error {
	flags := env.Flags()
	req := coordinator.UpdateProjectRequest{
		Name:        flags.OptionalString("name"),
		Description: flags.OptionalString("description"),
	}
	if req.Name == nil && req.Description == nil {
		return env.Out.Usage(errors.New("nothing to update"), "Pass --name or --description")
	}

	project, err := env.Coordinator().UpdateProject(ctx, types.ProjectID(env.Args[0]), req)
	if err != nil {
		return err
	}
	switch {
	case env.Out.Quiet:
		return env.Out.IDs(string(project.ID))
	case env.Out.JSON:
		return env.Out.Object("project", project)
	}
	env.Out.Printf("✓ Project %s updated\n", project.ID)
	return nil
}
