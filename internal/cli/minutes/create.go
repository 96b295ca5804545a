package minutes

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli"
	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/coordinator"
	"github.com/thenoetrevino/scope/internal/types"
)

// CreateCmd returns the minutes create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Record the minutes of a meeting",
		Long: `Record the minutes of a meeting. The date defaults to today.

Examples:
  scope minutes create --project=P1 --title="Kickoff" --content="# Decisions"
  scope minutes create --project=P1 --title="Retro" --date=2025-01-17 --file=retro.md
  cat notes.md | scope minutes create --project=P1 --title="Standup" --file=-
`,
		RunE: handler.Command(runCreate),
	}
	handler.AddProjectFlag(cmd)
	cmd.Flags().String("title", "", "Meeting title (required)")
	cmd.Flags().String("date", "", "Meeting date (YYYY-MM-DD, default today)")
	addContentFlags(cmd)
	cmd.Flags().String("id", "", "Explicit minutes ID (allocated when empty)")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runCreate(ctx context.Context, env *handler.Env) error {
	flags := env.Flags()
	projectID, err := flags.ProjectID()
	if err != nil {
		return err
	}
	title, err := flags.String("title")
	if err != nil {
		return err
	}
	date, err := flags.Date("date")
	if err != nil {
		return err
	}
	if date == "" {
		date = env.Coordinator().Today()
	}
	content, _, err := cli.ReadContent(env.Cmd())
	if err != nil {
		return err
	}

	m, err := env.Coordinator().CreateMinutes(ctx, coordinator.CreateMinutesRequest{
		ID:        types.MinutesID(flags.StringOptional("id")),
		ProjectID: projectID,
		Title:     title,
		Date:      date,
		Content:   content,
	})
	if err != nil {
		return err
	}
	return printMinutes(env, m, "created successfully")
}
