package use

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli"
	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/types"
)

// ProjectCmd returns the use project subcommand
func ProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project [project-id]",
		Short: "Set project context for current shell session",
		Long: `Set the current project context using environment variables.
This command outputs shell commands that should be evaluated:

  eval $(scope use project P3)            # Use project P3
  eval $(scope use project --clear)       # Clear project context
  scope use project --show                # Show current project

The SCOPE_PROJECT environment variable will be set in your current shell
session only. The --project flag on other commands takes precedence over
this environment variable.`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.Command(runUseProject),
	}

	cmd.Flags().Bool("clear", false, "Clear the current project context")
	cmd.Flags().Bool("show", false, "Show the current project context")
	cmd.Flags().Bool("dry-run", false, "Show what would be exported without outputting shell commands")

	return cmd
}

func runUseProject(ctx context.Context, env *handler.Env) error {
	flags := env.Flags()
	stderr := env.Cmd().ErrOrStderr()

	if flags.Bool("show") {
		return showCurrentProject(ctx, env)
	}

	if flags.Bool("clear") {
		if flags.Bool("dry-run") {
			fmt.Fprintf(stderr, "Would clear %s\n", cli.EnvProject)
			return nil
		}
		env.Out.Printf("unset %s\n", cli.EnvProject)
		fmt.Fprintf(stderr, "Cleared project context\n")
		return nil
	}

	if len(env.Args) == 0 {
		return env.Out.Usage(errors.New("project ID required"), "Usage: eval $(scope use project <project-id>)")
	}

	projectID := types.ProjectID(env.Args[0])
	project, err := env.Coordinator().GetProject(ctx, projectID)
	if err != nil {
		return err
	}

	if flags.Bool("dry-run") {
		fmt.Fprintf(stderr, "Would set %s=%s (%s)\n", cli.EnvProject, projectID, project.Name)
		return nil
	}

	env.Out.Printf("export %s=%s\n", cli.EnvProject, projectID)
	fmt.Fprintf(stderr, "Now using project %s: %s\n", projectID, project.Name)
	return nil
}

func showCurrentProject(ctx context.Context, env *handler.Env) error {
	current := os.Getenv(cli.EnvProject)
	if current == "" {
		env.Out.Println("No project context set")
		env.Out.Println("Use 'eval $(scope use project <project-id>)' to set one")
		return nil
	}

	project, err := env.Coordinator().GetProject(ctx, types.ProjectID(current))
	if err != nil {
		env.Out.Printf("Current project: %s (project not found)\n", current)
		return nil
	}
	env.Out.Printf("Current project: %s (%s)\n", project.ID, project.Name)
	return nil
}
