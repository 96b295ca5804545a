package minutes

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli"
	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/coordinator"
	"github.com/thenoetrevino/scope/internal/types"
)

// UpdateCmd returns the minutes update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <minutes-id>",
		Short: "Update minutes",
		Long: `Update minutes. Only the flags you pass are changed.

Examples:
  scope minutes update M1 --title="Kickoff (final)"
  scope minutes update M1 --file=kickoff.md
`,
		Args: cobra.ExactArgs(1),
		RunE: handler.Command(runUpdate),
	}
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("date", "", "New date (YYYY-MM-DD)")
	addContentFlags(cmd)
	handler.AddOutputFlags(cmd)
	return cmd
}

func runUpdate(ctx context.Context, env *handler.Env) error {
	flags := env.Flags()
	date, err := flags.OptionalDate("date")
	if err != nil {
		return err
	}
	req := coordinator.UpdateMinutesRequest{
		Title: flags.OptionalString("title"),
		Date:  date,
	}
	content, ok, err := cli.ReadContent(env.Cmd())
	if err != nil {
		return err
	}
	if ok {
		req.Content = &content
	}
	if req == (coordinator.UpdateMinutesRequest{}) {
		return env.Out.Usage(errors.New("nothing to update"), "Pass --title, --date, --content or --file")
	}

	m, err := env.Coordinator().UpdateMinutes(ctx, types.MinutesID(env.Args[0]), req)
	if err != nil {
		return err
	}
	return printMinutes(env, m, "updated")
}
