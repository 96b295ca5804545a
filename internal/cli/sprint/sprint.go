// Package sprint holds all cli commands related to sprints
//
// e.g., scope sprint ...
package sprint

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/styles"
	"github.com/thenoetrevino/scope/internal/coordinator"
)

// SprintCmd returns the sprint parent command
func SprintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sprint",
		Short: "Manage sprints and their tasks",
		Long: `Manage sprints. Sprint IDs are numbered per project, so every sprint
command needs a project (--project or $SCOPE_PROJECT).`,
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(CurrentCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(AddCmd())
	cmd.AddCommand(RemoveCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

func render(r coordinator.SprintReport) string {
	s := r.Sprint
	dates := s.StartDate
	if s.EndDate != "" {
		dates += " → " + s.EndDate
	}
	m := r.Metrics
	ids := make([]string, len(r.TaskIDs))
	for i, id := range r.TaskIDs {
		ids[i] = string(id)
	}
	return styles.Card(s.Name, string(s.ID)+" · "+string(s.ProjectID), []styles.Field{
		{Label: "Status", Value: s.Status},
		{Label: "Dates", Value: dates},
		{Label: "Time elapsed", Value: fmt.Sprintf("%d%%", r.Progress)},
		{Label: "Completion", Value: fmt.Sprintf("%d%% (%d of %d done)", m.CompletionRate(), m.Completed, m.Total)},
		{Label: "In progress", Value: fmt.Sprint(m.InProgress)},
		{Label: "Blocked", Value: fmt.Sprint(m.Blocked)},
		{Label: "Pending", Value: fmt.Sprint(m.Pending)},
	}, styles.Field{Label: "Tasks", Value: strings.Join(ids, ", ")})
}
