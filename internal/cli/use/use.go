// Package use holds all cli commands related to setting contextual information
// e.g., scope use ...
package use

import (
	"github.com/spf13/cobra"
)

// UseCmd returns the use parent command
func UseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use",
		Short: "Set context for the current shell session",
		Long: `Print shell exports that set the default project, so later commands
can omit --project.

Examples:
  eval $(scope use project P1)        # Use project P1
  eval $(scope use project --clear)   # Forget the default project
  scope use project --show            # Show the current default`,
	}

	cmd.AddCommand(ProjectCmd())

	return cmd
}
