// Package column holds the cli commands that shape a project's board
//
// e.g., scope column ...
package column

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/models"
)

// ColumnCmd returns the column parent command
func ColumnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "column",
		Short: "Manage board columns",
		Long: `Manage board columns. Every project starts with four default columns
(todo, in progress, blocked, done) that can be renamed and reordered but not
deleted. Custom columns hold tasks whose status is the column's name.`,
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(ReorderCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

func printColumn(env *handler.Env, col models.Column, verb string) error {
	switch {
	case env.Out.Quiet:
		return env.Out.IDs(string(col.ID))
	case env.Out.JSON:
		return env.Out.Object("column", col)
	}
	env.Out.Printf("✓ Column '%s' %s (ID: %s)\n", col.Name, verb, col.ID)
	return nil
}
