// Package minutes holds the cli commands for meeting minutes
//
// e.g., scope minutes ...
package minutes

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/cli/styles"
	"github.com/thenoetrevino/scope/internal/models"
)

// MinutesCmd returns the minutes parent command
func MinutesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "minutes",
		Aliases: []string{"minute"},
		Short:   "Record meeting minutes",
		Long: `Record meeting minutes. Content is markdown and is rendered by
'scope minutes show'.`,
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

// addContentFlags adds --content and --file.
func addContentFlags(cmd *cobra.Command) {
	cmd.Flags().String("content", "", "Markdown content")
	cmd.Flags().String("file", "", "Read content from a file (- for stdin)")
	cmd.MarkFlagsMutuallyExclusive("content", "file")
}

func render(m models.Minutes) string {
	return styles.Card(m.Title, string(m.ID)+" · "+string(m.ProjectID), []styles.Field{
		{Label: "Date", Value: m.Date},
	}, styles.Field{Label: "Content", Value: styles.Markdown(m.Content, styles.MarkdownWidth)})
}

func printMinutes(env *handler.Env, m models.Minutes, verb string) error {
	switch {
	case env.Out.Quiet:
		return env.Out.IDs(string(m.ID))
	case env.Out.JSON:
		return env.Out.Object("minutes", m)
	}
	env.Out.Printf("✓ Minutes '%s' %s (ID: %s, %s)\n", m.Title, verb, m.ID, m.Date)
	return nil
}
