package data

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli"
	"github.com/thenoetrevino/scope/internal/cli/handler"
)

// ImportCmd returns the data import subcommand
func ImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the local data set with an export file",
		Long: `Replace the local data set with the contents of an export file. The
file is validated before anything changes. The remote store is not modified.

Examples:
  scope data import backup.json
  scope data import - --force < backup.json
`,
		Args: cobra.ExactArgs(1),
		RunE: handler.Command(runImport),
	}
	cmd.Flags().Bool("force", false, "Skip confirmation")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runImport(ctx context.Context, env *handler.Env) error {
	path := env.Args[0]
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(env.Cmd().InOrStdin())
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return cli.Exit(cli.ExitDataErr, fmt.Errorf("read %s: %w", path, err))
	}

	// stdin already holds the document, so there is nothing left to answer with
	if path != "-" && !confirm(env, "Replace all local data with "+path+"?") {
		return nil
	}

	meta, err := env.Coordinator().Import(ctx, raw)
	if err != nil {
		return err
	}
	info, err := env.Coordinator().Info(ctx)
	if err != nil {
		return err
	}

	switch {
	case env.Out.Quiet:
		return nil
	case env.Out.JSON:
		return env.Out.Object("import", map[string]any{"meta": meta, "counts": info.Counts})
	}
	env.Out.Printf("✓ Imported %s export from %s\n", meta.Version, meta.ExportDate.Format("2006-01-02 15:04"))
	env.Out.Printf("  %d projects, %d tasks, %d sprints, %d risks, %d minutes\n",
		info.Counts.Projects, info.Counts.Tasks, info.Counts.Sprints, info.Counts.Risks, info.Counts.Minutes)
	return nil
}
