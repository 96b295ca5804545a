// Package handler removes the boilerplate shared by scope commands: it
// fetches the CLI from the command context, builds the output formatter and
// reports failures with their exit codes.
package handler

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli"
	"github.com/thenoetrevino/scope/internal/coordinator"
)

// Func is the body of a command.
type Func func(ctx context.Context, env *Env) error

// Env is what a command body works with.
type Env struct {
	CLI  *cli.CLI
	Out  *cli.OutputFormatter
	Args []string
	cmd  *cobra.Command
}

// Coordinator returns the sync layer.
func (e *Env) Coordinator() *coordinator.Coordinator {
	return e.CLI.Coordinator()
}

// Cmd returns the cobra command for access to flag parsing utilities
func (e *Env) Cmd() *cobra.Command {
	return e.cmd
}

// Flags returns a parser over the command's flags.
func (e *Env) Flags() *FlagParser {
	return NewFlagParser(e.cmd, e.Out)
}

// Command wraps fn into a cobra RunE function.
func Command(fn Func) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		formatter := cli.NewFormatter(cmd)

		c, err := cli.GetCLIFromContext(ctx)
		if err != nil {
			return formatter.Fail(err)
		}

		err = fn(ctx, &Env{CLI: c, Out: formatter, Args: args, cmd: cmd})
		c.DrainNotices(cmd.ErrOrStderr())
		if err != nil {
			return formatter.Fail(err)
		}
		return nil
	}
}

// AddOutputFlags adds the agent-friendly --json and --quiet flags.
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")
}

// AddProjectFlag adds --project, which defaults to $SCOPE_PROJECT.
func AddProjectFlag(cmd *cobra.Command) {
	cmd.Flags().String("project", "", "Project ID (defaults to $"+cli.EnvProject+")")
}
