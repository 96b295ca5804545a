// Package project holds all cli commands related to projects
//
// e.g., scope project ...
package project

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/styles"
	"github.com/thenoetrevino/scope/internal/models"
)

// ProjectCmd returns the project parent command
func ProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

func render(p models.Project) string {
	return styles.Card(p.Name, string(p.ID), []styles.Field{
		{Label: "Created", Value: p.CreatedAt.Format("2006-01-02 15:04")},
	}, styles.Field{Label: "Description", Value: p.Description})
}
