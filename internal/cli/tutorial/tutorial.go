// Package tutorial prints the scope workflow guide
package tutorial

import (
	_ "embed"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/styles"
)

//go:embed tutorial.md
var tutorialContent string

// TutorialCmd returns the tutorial command
func TutorialCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tutorial",
		Short: "Print the scope workflow guide",
		Long: `Print the scope workflow guide as markdown.

The raw markdown is meant for agents and scripts (for example a session
start hook); --render formats it for reading in a terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			render, _ := cmd.Flags().GetBool("render")
			out := tutorialContent
			if render {
				out = styles.Markdown(tutorialContent, styles.MarkdownWidth) + "\n"
			}
			_, err := cmd.OutOrStdout().Write([]byte(out))
			return err
		},
	}
	cmd.Flags().Bool("render", false, "Render the markdown for the terminal")
	return cmd
}
