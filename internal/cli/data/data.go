// Package data holds the cli commands that move the whole data set around
//
// e.g., scope data export, scope data import backup.json
package data

import (
	"bufio"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
)

// DataCmd returns the data parent command
func DataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Export, import and inspect the local data set",
	}

	cmd.AddCommand(ExportCmd())
	cmd.AddCommand(ImportCmd())
	cmd.AddCommand(InfoCmd())
	cmd.AddCommand(ClearCmd())
	cmd.AddCommand(RefreshCmd())
	cmd.AddCommand(SeedCmd())
	cmd.AddCommand(NextIDCmd())

	return cmd
}

// confirm asks on stdin unless --force, --json or --quiet was given.
func confirm(env *handler.Env, prompt string) bool {
	if env.Flags().Bool("force") || env.Out.JSON || env.Out.Quiet {
		return true
	}
	env.Out.Printf("%s [y/N]: ", prompt)
	answer, _ := bufio.NewReader(env.Cmd().InOrStdin()).ReadString('\n')
	a := strings.ToLower(strings.TrimSpace(answer))
	if a == "y" || a == "yes" {
		return true
	}
	env.Out.Println("Cancelled")
	return false
}
