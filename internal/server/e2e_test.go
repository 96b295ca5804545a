package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/scope/internal/coordinator"
	"github.com/thenoetrevino/scope/internal/models"
	"github.com/thenoetrevino/scope/internal/remote"
	"github.com/thenoetrevino/scope/internal/store"
	"github.com/thenoetrevino/scope/internal/types"
)

// ============================================================================
// COORDINATOR OVER HTTP
// ============================================================================

func newCoordinator(t *testing.T, client *remote.Client) *coordinator.Coordinator {
	t.Helper()
	c := coordinator.New(store.New(),
		coordinator.WithRemote(client),
		coordinator.WithClock(func() time.Time { return fixedNow }),
	)
	require.NoError(t, c.Open(context.Background()))
	return c
}

func TestCoordinator_RemoteRoundTrip(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	c := newCoordinator(t, h.client)
	require.True(t, c.RemoteEnabled())

	p, err := c.CreateProject(ctx, coordinator.CreateProjectRequest{Name: "Website"})
	require.NoError(t, err)
	assert.Equal(t, types.ProjectID("P1"), p.ID)

	task, err := c.CreateTask(ctx, coordinator.CreateTaskRequest{ProjectID: p.ID, Title: "Landing page"})
	require.NoError(t, err)
	assert.Equal(t, types.TaskID("T1"), task.ID)

	sprint, err := c.CreateSprint(ctx, coordinator.CreateSprintRequest{ProjectID: p.ID, Name: "Sprint 1"})
	require.NoError(t, err)
	require.NoError(t, c.AttachTask(ctx, p.ID, sprint.ID, task.ID))
	require.NoError(t, c.AttachTask(ctx, p.ID, sprint.ID, task.ID), "attach is idempotent")

	col, err := c.CreateColumn(ctx, coordinator.CreateColumnRequest{ProjectID: p.ID, Name: "Review"})
	require.NoError(t, err)
	assert.Equal(t, types.ColumnID("P1_C1"), col.ID)
	_, err = c.MoveTask(ctx, task.ID, col.ID)
	require.NoError(t, err)

	// the server holds the same state
	remoteTask, err := h.client.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Review", remoteTask.Status)
	rec, err := h.client.GetSprint(ctx, p.ID, sprint.ID)
	require.NoError(t, err)
	assert.Equal(t, []types.TaskID{task.ID}, rec.TaskIDs)

	// a second client sees it after refresh
	other := newCoordinator(t, h.client)
	lanes, err := other.Board(ctx, p.ID, sprint.ID)
	require.NoError(t, err)
	require.Len(t, lanes, 5)
	assert.Equal(t, "Review", lanes[4].Column.Name)
	require.Len(t, lanes[4].Tasks, 1)
	assert.Equal(t, task.ID, lanes[4].Tasks[0].ID)

	moved, err := c.DeleteColumn(ctx, p.ID, col.ID)
	require.NoError(t, err)
	assert.Equal(t, []types.TaskID{task.ID}, moved)
	remoteTask, err = h.client.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusTodo, remoteTask.Status)
}

func TestCoordinator_FallsBackWhenServerGoesAway(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	c := newCoordinator(t, h.client)

	p, err := c.CreateProject(ctx, coordinator.CreateProjectRequest{Name: "Website"})
	require.NoError(t, err)

	h.http.Close()

	task, err := c.CreateTask(ctx, coordinator.CreateTaskRequest{ProjectID: p.ID, Title: "Offline work"})
	require.NoError(t, err)
	assert.False(t, c.RemoteEnabled())
	assert.Equal(t, types.TaskID("T1"), task.ID)

	tasks, err := c.ListTasks(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}
