package project

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/scope/internal/cli"
	"github.com/thenoetrevino/scope/internal/coordinator"
	clitest "github.com/thenoetrevino/scope/internal/testutil/cli"
)

// ============================================================================
// Create
// ============================================================================

func TestCreateProject_Positive(t *testing.T) {
	c := clitest.SetupCLITest(t)

	t.Run("Create project with name only", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, c, CreateCmd(), []string{
			"--name", "New Project",
			"--quiet",
		})
		require.NoError(t, err)
		assert.Equal(t, "P1", strings.TrimSpace(output))

		p, err := c.Coordinator().GetProject(context.Background(), "P1")
		require.NoError(t, err)
		assert.Equal(t, "New Project", p.Name)

		cols, err := c.Coordinator().ListColumns(context.Background(), "P1")
		require.NoError(t, err)
		assert.Len(t, cols, 4)
	})

	t.Run("Create project with description as JSON", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, c, CreateCmd(), []string{
			"--name", "Detailed Project",
			"--description", "This is a detailed project",
			"--json",
		})
		require.NoError(t, err)

		result := clitest.ParseJSON(t, output)
		assert.Equal(t, true, result["success"])
		project := result["project"].(map[string]any)
		assert.Equal(t, "P2", project["id"])
		assert.Equal(t, "This is a detailed project", project["description"])
	})

	t.Run("Human-readable output", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, c, CreateCmd(), []string{"--name", "Third"})
		require.NoError(t, err)
		assert.Contains(t, output, "Project 'Third' created successfully (ID: P3)")
	})
}

func TestCreateProject_Negative(t *testing.T) {
	c := clitest.SetupCLITest(t)

	t.Run("Missing name", func(t *testing.T) {
		res := clitest.Run(t, c, CreateCmd(), []string{"--description", "no name"})
		require.Error(t, res.Err)
		assert.Equal(t, cli.ExitValidation, cli.ExitCode(res.Err))
		assert.Contains(t, res.Stderr, "name is required")
	})

	t.Run("Name too long as JSON", func(t *testing.T) {
		res := clitest.Run(t, c, CreateCmd(), []string{"--name", strings.Repeat("x", coordinator.MaxTitleLength+1), "--json"})
		require.Error(t, res.Err)
		assert.Equal(t, cli.ExitValidation, cli.ExitCode(res.Err))
		result := clitest.ParseJSON(t, res.Stdout)
		assert.Equal(t, false, result["success"])
		assert.Equal(t, "VALIDATION_ERROR", result["error"].(map[string]any)["code"])
	})

	t.Run("Explicit ID is idempotent", func(t *testing.T) {
		_, err := clitest.ExecuteCLICommand(t, c, CreateCmd(), []string{"--name", "A", "--id", "P7"})
		require.NoError(t, err)

		output, err := clitest.ExecuteCLICommand(t, c, CreateCmd(), []string{"--name", "B", "--id", "P7", "--json"})
		require.NoError(t, err)
		project := clitest.ParseJSON(t, output)["project"].(map[string]any)
		assert.Equal(t, "A", project["name"])
	})
}

// ============================================================================
// List / Show / Update / Delete
// ============================================================================

func TestListProjects(t *testing.T) {
	c := clitest.SetupCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, c, ListCmd(), nil)
	require.NoError(t, err)
	assert.Contains(t, output, "No projects found")

	for _, name := range []string{"Alpha", "Beta"} {
		_, err := c.Coordinator().CreateProject(context.Background(), coordinator.CreateProjectRequest{Name: name})
		require.NoError(t, err)
	}

	output, err = clitest.ExecuteCLICommand(t, c, ListCmd(), []string{"--quiet"})
	require.NoError(t, err)
	assert.Equal(t, "P1\nP2\n", output)

	output, err = clitest.ExecuteCLICommand(t, c, ListCmd(), nil)
	require.NoError(t, err)
	assert.Contains(t, output, "Found 2 projects")
	assert.Contains(t, output, "[P2] Beta")
}

func TestShowProject(t *testing.T) {
	c := clitest.SetupCLITest(t)
	_, err := c.Coordinator().CreateProject(context.Background(), coordinator.CreateProjectRequest{
		Name: "Alpha", Description: "First project",
	})
	require.NoError(t, err)

	output, err := clitest.ExecuteCLICommand(t, c, ShowCmd(), []string{"P1"})
	require.NoError(t, err)
	assert.Contains(t, output, "Alpha")
	assert.Contains(t, output, "First project")

	res := clitest.Run(t, c, ShowCmd(), []string{"P9"})
	require.Error(t, res.Err)
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(res.Err))
}

func TestUpdateProject(t *testing.T) {
	c := clitest.SetupCLITest(t)
	_, err := c.Coordinator().CreateProject(context.Background(), coordinator.CreateProjectRequest{
		Name: "Alpha", Description: "keep",
	})
	require.NoError(t, err)

	_, err = clitest.ExecuteCLICommand(t, c, UpdateCmd(), []string{"P1", "--name", "Renamed"})
	require.NoError(t, err)

	p, err := c.Coordinator().GetProject(context.Background(), "P1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", p.Name)
	assert.Equal(t, "keep", p.Description)

	res := clitest.Run(t, c, UpdateCmd(), []string{"P1"})
	require.Error(t, res.Err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(res.Err))
}

func TestDeleteProject(t *testing.T) {
	c := clitest.SetupCLITest(t)
	ctx := context.Background()
	_, err := c.Coordinator().CreateProject(ctx, coordinator.CreateProjectRequest{Name: "Doomed"})
	require.NoError(t, err)

	t.Run("Declined confirmation keeps the project", func(t *testing.T) {
		cmd := DeleteCmd()
		cmd.SetIn(strings.NewReader("n\n"))
		output, err := clitest.ExecuteCLICommand(t, c, cmd, []string{"P1"})
		require.NoError(t, err)
		assert.Contains(t, output, "Cancelled")

		_, err = c.Coordinator().GetProject(ctx, "P1")
		assert.NoError(t, err)
	})

	t.Run("Forced delete", func(t *testing.T) {
		_, err := clitest.ExecuteCLICommand(t, c, DeleteCmd(), []string{"P1", "--force"})
		require.NoError(t, err)

		projects, err := c.Coordinator().ListProjects(ctx)
		require.NoError(t, err)
		assert.Empty(t, projects)
	})
}
