package data

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli"
	"github.com/thenoetrevino/scope/internal/cli/handler"
)

// ExportCmd returns the data export subcommand
func ExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every project to an export file",
		Long: `Write every project with its tasks, sprints, columns, risks and minutes
to a JSON export file. In remote mode the data is refreshed first.

Examples:
  scope data export                      # project-scope-backup-YYYY-MM-DD.json
  scope data export --output=backup.json
  scope data export --output=- | jq .projects
`,
		Args: cobra.NoArgs,
		RunE: handler.Command(runExport),
	}
	cmd.Flags().StringP("output", "o", "", "Output file (- for stdout)")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runExport(ctx context.Context, env *handler.Env) error {
	doc, err := env.Coordinator().Export(ctx)
	if err != nil {
		return err
	}

	path := env.Flags().StringOptional("output")
	if path == "-" {
		_, err := env.Cmd().OutOrStdout().Write(doc)
		return err
	}
	if path == "" {
		path = env.Coordinator().ExportFileName()
	}
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return cli.Exit(cli.ExitDataErr, fmt.Errorf("write %s: %w", path, err))
	}

	switch {
	case env.Out.Quiet:
		env.Out.Println(path)
		return nil
	case env.Out.JSON:
		return env.Out.Object("export", map[string]any{"path": path, "bytes": len(doc)})
	}
	env.Out.Printf("✓ Exported to %s (%d bytes)\n", path, len(doc))
	return nil
}
