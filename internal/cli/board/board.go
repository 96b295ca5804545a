// Package board holds the cli command that draws a project's kanban board
//
// e.g., scope board --project=P1
package board

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/board"
	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/cli/styles"
	"github.com/thenoetrevino/scope/internal/models"
	"github.com/thenoetrevino/scope/internal/types"
)

// BoardCmd returns the board command
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show a project's kanban board",
		Long: `Show a project's tasks laid out in its columns.

Examples:
  scope board --project=P1
  scope board --project=P1 --sprint=S2
  scope board --project=P1 --json
`,
		Args: cobra.NoArgs,
		RunE: handler.Command(runBoard),
	}
	handler.AddProjectFlag(cmd)
	cmd.Flags().String("sprint", "", "Only show this sprint's tasks")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runBoard(ctx context.Context, env *handler.Env) error {
	flags := env.Flags()
	projectID, err := flags.ProjectID()
	if err != nil {
		return err
	}
	lanes, err := env.Coordinator().Board(ctx, projectID, types.SprintID(flags.StringOptional("sprint")))
	if err != nil {
		return err
	}

	switch {
	case env.Out.Quiet:
		for _, lane := range lanes {
			for _, t := range lane.Tasks {
				if err := env.Out.IDs(string(t.ID)); err != nil {
					return err
				}
			}
		}
		return nil
	case env.Out.JSON:
		return env.Out.Object("lanes", lanes)
	}

	rendered := make([]string, len(lanes))
	for i, lane := range lanes {
		rendered[i] = renderLane(lane)
	}
	env.Out.Println(styles.Lanes(rendered))
	return nil
}

func renderLane(lane board.Lane) string {
	inner := styles.LaneWidth - 4
	var b strings.Builder
	b.WriteString(styles.LaneHeader.Render(truncate(fmt.Sprintf("%s (%d)", lane.Column.Name, len(lane.Tasks)), inner)))
	for _, t := range lane.Tasks {
		b.WriteString("\n\n")
		b.WriteString(renderTask(t, inner))
	}
	return styles.LaneStyle.Render(b.String())
}

func renderTask(t models.Task, width int) string {
	title := truncate(string(t.ID)+" "+t.Title, width)
	meta := styles.Priority(t.Priority)
	if t.Assignee != "" {
		meta += " · " + truncate(t.Assignee, width/2)
	}
	if t.Status == models.StatusBlocked {
		title = styles.BlockedStyle.Render(title)
	}
	return title + "\n" + meta
}

// truncate shortens s to width display cells with a trailing ellipsis.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r)) > width-1 {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
