package data

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/relations"
	"github.com/thenoetrevino/scope/internal/types"
)

// NextIDCmd returns the data next-id subcommand
func NextIDCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next-id <P|T|S|R|M|C>",
		Short: "Reserve the next identifier for an entity kind",
		Long: `Reserve the next identifier for an entity kind. Sprint (S) and custom
column (C) identifiers are numbered per project and need --project.

Examples:
  scope data next-id T
  scope data next-id S --project=P1
`,
		Args: cobra.ExactArgs(1),
		RunE: handler.Command(runNextID),
	}
	handler.AddProjectFlag(cmd)
	handler.AddOutputFlags(cmd)
	return cmd
}

func runNextID(ctx context.Context, env *handler.Env) error {
	prefix := strings.ToUpper(env.Args[0])
	var projectID types.ProjectID
	switch prefix {
	case types.ProjectPrefix, types.TaskPrefix, types.RiskPrefix, types.MinutesPrefix:
	case types.SprintPrefix, types.ColumnPrefix:
		var err error
		if projectID, err = env.Flags().ProjectID(); err != nil {
			return err
		}
		if prefix == types.ColumnPrefix {
			prefix = relations.CustomColumnPrefix(projectID)
		}
	default:
		return env.Out.Usage(fmt.Errorf("unknown identifier prefix %q", env.Args[0]), "Use one of P, T, S, R, M or C")
	}
	id, err := env.Coordinator().NextID(ctx, prefix, projectID)
	if err != nil {
		return err
	}
	if env.Out.JSON {
		return env.Out.Object("id", id)
	}
	return env.Out.IDs(id)
}
