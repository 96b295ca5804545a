// Package cmd assembles the scope command tree.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cli"
	"github.com/thenoetrevino/scope/internal/cli/auth"
	"github.com/thenoetrevino/scope/internal/cli/board"
	"github.com/thenoetrevino/scope/internal/cli/column"
	"github.com/thenoetrevino/scope/internal/cli/data"
	"github.com/thenoetrevino/scope/internal/cli/minutes"
	"github.com/thenoetrevino/scope/internal/cli/project"
	"github.com/thenoetrevino/scope/internal/cli/risk"
	"github.com/thenoetrevino/scope/internal/cli/sprint"
	"github.com/thenoetrevino/scope/internal/cli/status"
	"github.com/thenoetrevino/scope/internal/cli/task"
	"github.com/thenoetrevino/scope/internal/cli/tutorial"
	"github.com/thenoetrevino/scope/internal/cli/use"
	"github.com/thenoetrevino/scope/internal/config"
	"github.com/thenoetrevino/scope/internal/logging"
)

// standalone commands run without loading the config or opening the cache.
var standalone = map[string]bool{
	"tutorial":                      true,
	"help":                          true,
	"completion":                    true,
	cobra.ShellCompRequestCmd:       true,
	cobra.ShellCompNoDescRequestCmd: true,
}

// SetupFunc builds the CLI a command runs against.
type SetupFunc func(ctx context.Context) (*cli.CLI, error)

// NewRootCmd builds the scope command tree. A nil setup uses the config
// file. The returned cleanup closes the CLI once the command has run.
func NewRootCmd(setup SetupFunc) (*cobra.Command, func() error) {
	if setup == nil {
		setup = configuredCLI
	}

	var instance *cli.CLI
	cleanup := func() error {
		if instance == nil {
			return nil
		}
		err := instance.Close()
		instance = nil
		return err
	}
	root := &cobra.Command{
		Use:   "scope",
		Short: "Scope - project scope management from the terminal",
		Long: `Scope tracks projects, tasks, sprints, risks and meeting minutes.

Data lives in a local cache and is kept in step with a remote store when
remote.url is configured. Run "scope tutorial" for a walkthrough.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if isStandalone(cmd) {
				return nil
			}
			ctx := cmd.Context()
			if _, err := cli.GetCLIFromContext(ctx); err == nil {
				return nil
			}
			c, err := setup(ctx)
			if err != nil {
				return err
			}
			instance = c
			cmd.SetContext(cli.WithCLI(ctx, c))
			return nil
		},
	}

	root.AddCommand(
		project.ProjectCmd(),
		task.TaskCmd(),
		sprint.SprintCmd(),
		column.ColumnCmd(),
		risk.RiskCmd(),
		minutes.MinutesCmd(),
		board.BoardCmd(),
		data.DataCmd(),
		status.StatusCmd(),
		auth.LoginCmd(),
		auth.LogoutCmd(),
		auth.WhoAmICmd(),
		use.UseCmd(),
		tutorial.TutorialCmd(),
	)
	return root, cleanup
}

func isStandalone(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if standalone[c.Name()] {
			return true
		}
	}
	return false
}

// configuredCLI loads the config file, opens the log file and builds the
// CLI.
func configuredCLI(ctx context.Context) (*cli.CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	closer, err := logging.Init(cfg.Log.Dir, cfg.Log.SlogLevel())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	c, err := cli.NewCLI(ctx, cfg)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	c.SetLogCloser(closer)
	return c, nil
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return run(ctx, nil, os.Args[1:], os.Stdout, os.Stderr)
}

func run(ctx context.Context, setup SetupFunc, args []string, stdout, stderr io.Writer) int {
	root, cleanup := NewRootCmd(setup)
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if cerr := cleanup(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil && !cli.Reported(err) {
		fmt.Fprintln(stderr, "Error:", err)
	}
	return cli.ExitCode(err)
}
