// Package task holds all cli commands related to tasks
//
// e.g., scope task ...
package task

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/styles"
	"github.com/thenoetrevino/scope/internal/models"
)

// TaskCmd returns the task parent command
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(MoveCmd())
	cmd.AddCommand(StatusCmd("start", "Move a task to the in-progress column", models.StatusInProgress))
	cmd.AddCommand(StatusCmd("block", "Move a task to the blocked column", models.StatusBlocked))
	cmd.AddCommand(StatusCmd("done", "Move a task to the done column", models.StatusDone))
	cmd.AddCommand(CommentCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

func render(t models.Task) string {
	dates := t.StartDate
	if t.EndDate != "" {
		dates += " → " + t.EndDate
	}
	return styles.Card(t.Title, string(t.ID)+" · "+string(t.ProjectID), []styles.Field{
		{Label: "Status", Value: t.Status},
		{Label: "Priority", Value: styles.Priority(t.Priority)},
		{Label: "Assignee", Value: t.Assignee},
		{Label: "Dates", Value: dates},
	},
		styles.Field{Label: "Description", Value: styles.Markdown(t.Description, styles.MarkdownWidth)},
		styles.Field{Label: "Comments", Value: t.Comments},
	)
}
