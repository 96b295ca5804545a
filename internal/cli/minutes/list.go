package minutes

import (
	"context"
	"sort"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
)

// ListCmd returns the minutes list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's minutes, newest meeting first",
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
	minutes, err := env.Coordinator().ListMinutes(ctx, projectID)
	if err != nil {
		return err
	}
	sort.SliceStable(minutes, func(i, j int) bool {
		return minutes[i].Date > minutes[j].Date
	})

	if env.Out.Quiet {
		for _, m := range minutes {
			if err := env.Out.IDs(string(m.ID)); err != nil {
				return err
			}
		}
		return nil
	}
	if env.Out.JSON {
		return env.Out.Object("minutes", minutes)
	}

	if len(minutes) == 0 {
		env.Out.Println("No minutes found")
		return nil
	}
	env.Out.Printf("Found %d minutes:\n\n", len(minutes))
	for _, m := range minutes {
		env.Out.Printf("  [%s] %s  %s\n", m.ID, m.Date, m.Title)
	}
	return nil
}
