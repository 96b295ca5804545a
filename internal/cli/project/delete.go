package project

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/types"
)

// DeleteCmd returns the project delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a project and everything in it",
		Long: `Delete a project together with its tasks, sprints, columns, risks and minutes.

Examples:
  scope project delete P3          # asks for confirmation
  scope project delete P3 --force  # no confirmation
`,
		Args: cobra.ExactArgs(1),
		RunE: handler.Command(runDelete),
	}
	cmd.Flags().Bool("force", false, "Skip confirmation")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runDelete(ctx context.Context, env *handler.Env) error {
	id := types.ProjectID(env.Args[0])
	coord := env.Coordinator()

	project, err := coord.GetProject(ctx, id)
	if err != nil {
		return err
	}

	if !env.Flags().Bool("force") && !env.Out.JSON && !env.Out.Quiet {
		env.Out.Printf("Delete project %s '%s' and all of its data? [y/N]: ", project.ID, project.Name)
		answer, _ := bufio.NewReader(env.Cmd().InOrStdin()).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			env.Out.Println("Cancelled")
			return nil
		}
	}

	if err := coord.DeleteProject(ctx, id); err != nil {
		return err
	}
	switch {
	case env.Out.Quiet:
		return nil
	case env.Out.JSON:
		return env.Out.Object("deleted", map[string]string{"id": string(id)})
	}
	env.Out.Println(fmt.Sprintf("✓ Project %s deleted", id))
	return nil
}
