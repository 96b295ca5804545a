package data

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/cli/styles"
	"github.com/thenoetrevino/scope/internal/coordinator"
)

// InfoCmd returns the data info subcommand
func InfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show entity counts and when the cache was last written",
		Args:  cobra.NoArgs,
		RunE:  handler.Command(runInfo),
	}
	handler.AddOutputFlags(cmd)
	return cmd
}

func runInfo(ctx context.Context, env *handler.Env) error {
	info, err := env.Coordinator().Info(ctx)
	if err != nil {
		return err
	}
	switch {
	case env.Out.Quiet:
		env.Out.Println(info.Counts.Projects)
		return nil
	case env.Out.JSON:
		return env.Out.Object("info", info)
	}
	env.Out.Println(RenderInfo("Local data", env.CLI.Config.Cache.Backend, info))
	return nil
}

// RenderInfo draws the counts card shared by data info and status.
func RenderInfo(title, backend string, info coordinator.Info) string {
	lastModified := "never"
	if !info.LastModified.IsZero() {
		lastModified = info.LastModified.Local().Format("2006-01-02 15:04:05")
	}
	c := info.Counts
	return styles.Card(title, "cache: "+backend, []styles.Field{
		{Label: "Projects", Value: fmt.Sprint(c.Projects)},
		{Label: "Tasks", Value: fmt.Sprint(c.Tasks)},
		{Label: "Sprints", Value: fmt.Sprint(c.Sprints)},
		{Label: "Columns", Value: fmt.Sprint(c.Columns)},
		{Label: "Risks", Value: fmt.Sprint(c.Risks)},
		{Label: "Minutes", Value: fmt.Sprint(c.Minutes)},
		{Label: "Last modified", Value: lastModified},
	})
}
