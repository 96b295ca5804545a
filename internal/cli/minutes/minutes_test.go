package minutes

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/scope/internal/cli"
	"github.com/thenoetrevino/scope/internal/coordinator"
	clitest "github.com/thenoetrevino/scope/internal/testutil/cli"
)

// ============================================================================
// Test Helpers
// ============================================================================

func setup(t *testing.T) *cli.CLI {
	t.Helper()
	t.Setenv(cli.EnvProject, "P1")
	c := clitest.SetupCLITest(t)
	_, err := c.Coordinator().CreateProject(context.Background(), coordinator.CreateProjectRequest{Name: "Meetings"})
	require.NoError(t, err)
	return c
}

// ============================================================================
// Create
// ============================================================================

func TestCreateMinutes_DefaultsToToday(t *testing.T) {
	c := setup(t)

	output, err := clitest.ExecuteCLICommand(t, c, CreateCmd(), []string{"--title", "Kickoff", "--content", "# Goals", "--json"})
	require.NoError(t, err)

	m := clitest.ParseJSON(t, output)["minutes"].(map[string]any)
	assert.Equal(t, "M1", m["id"])
	assert.Equal(t, clitest.FixedNow.Format("2006-01-02"), m["date"])
	assert.Equal(t, "# Goals", m["content"])
}

func TestCreateMinutes_FromFileAndStdin(t *testing.T) {
	c := setup(t)
	path := filepath.Join(t.TempDir(), "retro.md")
	require.NoError(t, os.WriteFile(path, []byte("## Went well\n- demo"), 0o644))

	_, err := clitest.ExecuteCLICommand(t, c, CreateCmd(), []string{"--title", "Retro", "--date", "2025-01-03", "--file", path})
	require.NoError(t, err)

	m, err := c.Coordinator().GetMinutes(context.Background(), "M1")
	require.NoError(t, err)
	assert.Equal(t, "## Went well\n- demo", m.Content)

	cmd := CreateCmd()
	cmd.SetIn(strings.NewReader("piped notes"))
	_, err = clitest.ExecuteCLICommand(t, c, cmd, []string{"--title", "Standup", "--file", "-"})
	require.NoError(t, err)

	m, err = c.Coordinator().GetMinutes(context.Background(), "M2")
	require.NoError(t, err)
	assert.Equal(t, "piped notes", m.Content)
}

func TestCreateMinutes_Negative(t *testing.T) {
	c := setup(t)

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{"no title", []string{"--content", "x"}, cli.ExitValidation},
		{"bad date", []string{"--title", "x", "--date", "2025-13-01"}, cli.ExitValidation},
		{"missing file", []string{"--title", "x", "--file", "/nonexistent/notes.md"}, cli.ExitDataErr},
		{"unknown project", []string{"--title", "x", "--project", "P8"}, cli.ExitNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := clitest.Run(t, c, CreateCmd(), tt.args)
			require.Error(t, res.Err)
			assert.Equal(t, tt.wantCode, cli.ExitCode(res.Err))
		})
	}
}

// ============================================================================
// List / Show / Update / Delete
// ============================================================================

func TestListMinutes_NewestFirst(t *testing.T) {
	c := setup(t)
	for _, date := range []string{"2025-01-02", "2025-01-04", "2025-01-03"} {
		_, err := clitest.ExecuteCLICommand(t, c, CreateCmd(), []string{"--title", "Standup " + date, "--date", date})
		require.NoError(t, err)
	}

	output, err := clitest.ExecuteCLICommand(t, c, ListCmd(), []string{"--quiet"})
	require.NoError(t, err)
	assert.Equal(t, "M2\nM3\nM1\n", output)
}

func TestShowMinutes_RendersMarkdown(t *testing.T) {
	c := setup(t)
	_, err := clitest.ExecuteCLICommand(t, c, CreateCmd(), []string{"--title", "Kickoff", "--content", "Agree on **scope**"})
	require.NoError(t, err)

	output, err := clitest.ExecuteCLICommand(t, c, ShowCmd(), []string{"M1"})
	require.NoError(t, err)
	assert.Contains(t, output, "Kickoff")
	assert.Contains(t, output, "Agree on")

	output, err = clitest.ExecuteCLICommand(t, c, ShowCmd(), []string{"M1", "--raw"})
	require.NoError(t, err)
	assert.Equal(t, "Agree on **scope**\n", output)
}

func TestUpdateMinutes(t *testing.T) {
	c := setup(t)
	_, err := clitest.ExecuteCLICommand(t, c, CreateCmd(), []string{"--title", "Draft", "--content", "old"})
	require.NoError(t, err)

	_, err = clitest.ExecuteCLICommand(t, c, UpdateCmd(), []string{"M1", "--content", "new", "--title", "Final"})
	require.NoError(t, err)

	m, err := c.Coordinator().GetMinutes(context.Background(), "M1")
	require.NoError(t, err)
	assert.Equal(t, "Final", m.Title)
	assert.Equal(t, "new", m.Content)

	res := clitest.Run(t, c, UpdateCmd(), []string{"M1"})
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(res.Err))
}

func TestDeleteMinutes(t *testing.T) {
	c := setup(t)
	_, err := clitest.ExecuteCLICommand(t, c, CreateCmd(), []string{"--title", "Gone"})
	require.NoError(t, err)

	output, err := clitest.ExecuteCLICommand(t, c, DeleteCmd(), []string{"M1"})
	require.NoError(t, err)
	assert.Contains(t, output, "Minutes M1 deleted")

	res := clitest.Run(t, c, DeleteCmd(), []string{"M1"})
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(res.Err))
}
