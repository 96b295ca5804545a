package project

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
)

// ListCmd returns the project list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		RunE:  handler.Command(runList),
	}
	handler.AddOutputFlags(cmd)
	return cmd
}

func runList(ctx context.Context, env *handler.Env) error {
	projects, err := env.Coordinator().ListProjects(ctx)
	if err != nil {
		return err
	}

	if env.Out.Quiet {
		for _, p := range projects {
			if err := env.Out.IDs(string(p.ID)); err != nil {
				return err
			}
		}
		return nil
	}
	if env.Out.JSON {
		return env.Out.Object("projects", projects)
	}

	if len(projects) == 0 {
		env.Out.Println("No projects found")
		return nil
	}
	env.Out.Printf("Found %d projects:\n\n", len(projects))
	for _, p := range projects {
		env.Out.Printf("  [%s] %s", p.ID, p.Name)
		if p.Description != "" {
			env.Out.Printf(" - %s", p.Description)
		}
		env.Out.Println()
	}
	return nil
}
