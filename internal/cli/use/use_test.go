package use

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/scope/internal/cli"
	"github.com/thenoetrevino/scope/internal/coordinator"
	clitest "github.com/thenoetrevino/scope/internal/testutil/cli"
)

func setup(t *testing.T) *cli.CLI {
	t.Helper()
	t.Setenv(cli.EnvProject, "")
	c := clitest.SetupCLITest(t)
	_, err := c.Coordinator().CreateProject(context.Background(), coordinator.CreateProjectRequest{Name: "Website"})
	require.NoError(t, err)
	return c
}

func TestUseProject_Export(t *testing.T) {
	c := setup(t)

	res := clitest.Run(t, c, ProjectCmd(), []string{"P1"})
	require.NoError(t, res.Err)
	assert.Equal(t, "export SCOPE_PROJECT=P1\n", res.Stdout)
	assert.Contains(t, res.Stderr, "Now using project P1: Website")
}

func TestUseProject_DryRunAndClear(t *testing.T) {
	c := setup(t)

	res := clitest.Run(t, c, ProjectCmd(), []string{"P1", "--dry-run"})
	require.NoError(t, res.Err)
	assert.Empty(t, res.Stdout)
	assert.Contains(t, res.Stderr, "Would set SCOPE_PROJECT=P1")

	res = clitest.Run(t, c, ProjectCmd(), []string{"--clear"})
	require.NoError(t, res.Err)
	assert.Equal(t, "unset SCOPE_PROJECT\n", res.Stdout)
}

func TestUseProject_Show(t *testing.T) {
	c := setup(t)

	output, err := clitest.ExecuteCLICommand(t, c, ProjectCmd(), []string{"--show"})
	require.NoError(t, err)
	assert.Contains(t, output, "No project context set")

	t.Setenv(cli.EnvProject, "P1")
	output, err = clitest.ExecuteCLICommand(t, c, ProjectCmd(), []string{"--show"})
	require.NoError(t, err)
	assert.Contains(t, output, "Current project: P1 (Website)")

	t.Setenv(cli.EnvProject, "P9")
	output, err = clitest.ExecuteCLICommand(t, c, ProjectCmd(), []string{"--show"})
	require.NoError(t, err)
	assert.Contains(t, output, "project not found")
}

func TestUseProject_Negative(t *testing.T) {
	c := setup(t)

	res := clitest.Run(t, c, ProjectCmd(), nil)
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(res.Err))

	res = clitest.Run(t, c, ProjectCmd(), []string{"P9"})
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(res.Err))
	assert.Contains(t, res.Stderr, "P9")
}
