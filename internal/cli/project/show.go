package project

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/types"
)

// ShowCmd returns the project show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show a project",
		Args:  cobra.ExactArgs(1),
		RunE:  handler.Command(runShow),
	}
	handler.AddOutputFlags(cmd)
	return cmd
}

func runShow(ctx context.Context, env *handler.Env) error {
	project, err := env.Coordinator().GetProject(ctx, types.ProjectID(env.Args[0]))
	if err != nil {
		return err
	}
	switch {
	case env.Out.Quiet:
		return env.Out.IDs(string(project.ID))
	case env.Out.JSON:
		return env.Out.Object("project", project)
	}
	env.Out.Println(render(project))
	return nil
}
