package handler

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/scope/internal/apperr"
	"github.com/thenoetrevino/scope/internal/cli"
	clitest "github.com/thenoetrevino/scope/internal/testutil/cli"
)

func newParser(t *testing.T, args ...string) (*FlagParser, *bytes.Buffer) {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	AddProjectFlag(cmd)
	AddOutputFlags(cmd)
	cmd.Flags().String("name", "", "")
	cmd.Flags().String("start", "", "")
	cmd.Flags().String("priority", "", "")
	cmd.Flags().Int("impact", 0, "")
	require.NoError(t, cmd.ParseFlags(args))

	var errOut bytes.Buffer
	cmd.SetErr(&errOut)
	return NewFlagParser(cmd, cli.NewFormatter(cmd)), &errOut
}

// ============================================================================
// FlagParser
// ============================================================================

func TestFlagParser_String(t *testing.T) {
	p, _ := newParser(t, "--name", "  Sprint 1 ")
	name, err := p.String("name")
	require.NoError(t, err)
	assert.Equal(t, "Sprint 1", name)

	p, _ = newParser(t, "--name", "   ")
	_, err = p.String("name")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	assert.Contains(t, err.Error(), "name is required")
}

func TestFlagParser_ProjectID(t *testing.T) {
	t.Setenv(cli.EnvProject, "")

	p, errOut := newParser(t)
	_, err := p.ProjectID()
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
	assert.Contains(t, errOut.String(), "scope use project")

	p, _ = newParser(t, "--project", "P3")
	id, err := p.ProjectID()
	require.NoError(t, err)
	assert.EqualValues(t, "P3", id)
}

func TestFlagParser_Optionals(t *testing.T) {
	p, _ := newParser(t)
	start, err := p.OptionalDate("start")
	require.NoError(t, err)
	assert.Nil(t, start)
	impact, err := p.OptionalRiskScore("impact")
	require.NoError(t, err)
	assert.Nil(t, impact)

	p, _ = newParser(t, "--start", "2025-03-01", "--priority", "LOW", "--impact", "3")
	start, err = p.OptionalDate("start")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", *start)
	priority, err := p.OptionalPriority("priority")
	require.NoError(t, err)
	assert.Equal(t, "low", *priority)
	impact, err = p.OptionalRiskScore("impact")
	require.NoError(t, err)
	assert.Equal(t, 3, *impact)

	p, _ = newParser(t, "--start", "03/01/2025", "--impact", "9")
	_, err = p.OptionalDate("start")
	assert.Error(t, err)
	_, err = p.OptionalRiskScore("impact")
	assert.Error(t, err)
}

// ============================================================================
// Command
// ============================================================================

func TestCommand_MapsErrorsToExitCodes(t *testing.T) {
	c := clitest.SetupCLITest(t)

	cmd := &cobra.Command{
		Use: "boom",
		RunE: Command(func(ctx context.Context, env *Env) error {
			return apperr.NotFound("task", "T1")
		}),
	}
	AddOutputFlags(cmd)
	res := clitest.Run(t, c, cmd, []string{"--json"})
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(res.Err))
	assert.Contains(t, res.Stdout, `"NOT_FOUND"`)
}

func TestCommand_NoCLIInContext(t *testing.T) {
	cmd := &cobra.Command{
		Use:  "orphan",
		RunE: Command(func(context.Context, *Env) error { return nil }),
	}
	var errOut bytes.Buffer
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{})
	err := cmd.ExecuteContext(context.Background())
	assert.True(t, errors.Is(err, cli.ErrNoCLI))
	assert.Equal(t, cli.ExitError, cli.ExitCode(err))
}
