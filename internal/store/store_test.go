package store

import (
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/scope/internal/models"
	"github.com/thenoetrevino/scope/internal/types"
)

var fixedNow = time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(WithClock(func() time.Time { return fixedNow }))
	err := s.Write(func(tx *Tx) error {
		tx.PutProject(models.Project{ID: "P1", Name: "Alpha", CreatedAt: tx.Now()})
		for _, c := range models.DefaultColumns("P1") {
			tx.PutColumn(c)
		}
		tx.PutTask(models.Task{ID: "T1", ProjectID: "P1", Title: "one", Status: models.StatusTodo, CreatedAt: tx.Now()})
		tx.PutTask(models.Task{ID: "T2", ProjectID: "P1", Title: "two", Status: models.StatusDone, CreatedAt: tx.Now()})
		tx.PutSprint(models.Sprint{ID: "S1", ProjectID: "P1", Name: "first", CreatedAt: tx.Now()})
		tx.Link(models.Association{ProjectID: "P1", SprintID: "S1", TaskID: "T1"})
		tx.PutRisk(models.Risk{ID: "R1", ProjectID: "P1", Name: "r", Impact: 3, Probability: 4})
		tx.PutMinutes(models.Minutes{ID: "M1", ProjectID: "P1", Title: "kickoff", Date: "2025-01-02"})
		return nil
	})
	require.NoError(t, err)
	return s
}

// ============================================================================
// Transaction Tests
// ============================================================================

func TestWrite_ErrorLeavesStateUntouched(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	before := s.Snapshot()

	boom := errors.New("boom")
	err := s.Write(func(tx *Tx) error {
		tx.DeleteProject("P1")
		tx.PutTask(models.Task{ID: "T9", ProjectID: "P1"})
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, before, s.Snapshot())
}

func TestWrite_TxSeesOwnChanges(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	err := s.Write(func(tx *Tx) error {
		tx.PutTask(models.Task{ID: "T3", ProjectID: "P1"})
		_, ok := tx.Task("T3")
		assert.True(t, ok)
		_, ok = s.View().Task("T3")
		assert.False(t, ok, "uncommitted task must not be visible outside the transaction")
		return nil
	})
	require.NoError(t, err)

	_, ok := s.View().Task("T3")
	assert.True(t, ok)
}

func TestView_StableAcrossCommits(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	v := s.View()

	require.NoError(t, s.Write(func(tx *Tx) error {
		tx.DeleteTask("T1")
		return nil
	}))

	_, ok := v.Task("T1")
	assert.True(t, ok, "an old view keeps its state")
	_, ok = s.View().Task("T1")
	assert.False(t, ok)
}

func TestWrite_ConcurrentWritersSerialized(t *testing.T) {
	t.Parallel()
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Write(func(tx *Tx) error {
				id := types.TaskID("T" + strconv.Itoa(len(tx.TaskIDs())+1))
				tx.PutTask(models.Task{ID: id, ProjectID: "P1"})
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Len(t, s.View().Tasks("P1"), 50)
}

// ============================================================================
// Cascade Tests
// ============================================================================

func TestDeleteProject_Cascades(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	require.NoError(t, s.Write(func(tx *Tx) error {
		tx.PutProject(models.Project{ID: "P2"})
		tx.PutTask(models.Task{ID: "T3", ProjectID: "P2"})
		tx.DeleteProject("P1")
		return nil
	}))

	v := s.View()
	assert.Equal(t, Counts{Projects: 1, Tasks: 1}, v.Counts())
	assert.Empty(t, v.Members("P1", "S1"))
}

func TestDeleteSprint_KeepsTasks(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	require.NoError(t, s.Write(func(tx *Tx) error {
		tx.DeleteSprint("P1", "S1")
		return nil
	}))

	v := s.View()
	_, ok := v.Task("T1")
	assert.True(t, ok)
	assert.False(t, v.HasAssociation(models.Association{ProjectID: "P1", SprintID: "S1", TaskID: "T1"}))
}

func TestDeleteTask_RemovesAssociations(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	require.NoError(t, s.Write(func(tx *Tx) error {
		tx.DeleteTask("T1")
		return nil
	}))

	assert.Empty(t, s.View().Members("P1", "S1"))
}

// ============================================================================
// Snapshot Tests
// ============================================================================

func TestSnapshot_RoundTrip(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	snap := s.Snapshot()

	require.Len(t, snap.Sprints, 1)
	assert.Equal(t, []types.TaskID{"T1"}, snap.Sprints[0].TaskIDs)

	other := New()
	other.Replace(snap)
	assert.Equal(t, snap, other.Snapshot())
}

func TestSnapshot_EmptyCollectionsNonNil(t *testing.T) {
	t.Parallel()
	snap := New().Snapshot()

	assert.NotNil(t, snap.Projects)
	assert.NotNil(t, snap.Tasks)
	assert.NotNil(t, snap.Sprints)
	assert.NotNil(t, snap.Risks)
	assert.NotNil(t, snap.Minutes)
	assert.NotNil(t, snap.Columns)
}

func TestReplace_RecomputesRiskAndDropsForeignMembers(t *testing.T) {
	t.Parallel()
	snap := EmptySnapshot()
	snap.Tasks = []models.Task{{ID: "T1", ProjectID: "P2"}}
	snap.Sprints = []SprintRecord{{
		Sprint:  models.Sprint{ID: "S1", ProjectID: "P1"},
		TaskIDs: []types.TaskID{"T1", "T404"},
	}}
	snap.Risks = []models.Risk{{ID: "R1", ProjectID: "P1", Impact: 4, Probability: 4, RiskFactor: 1, Appetite: "stale"}}

	s := New()
	s.Replace(snap)
	v := s.View()

	assert.Empty(t, v.Members("P1", "S1"))
	r, _ := v.Risk("R1")
	assert.Equal(t, 16, r.RiskFactor)
	assert.Equal(t, models.AppetiteExtreme, r.Appetite)
}

func TestReplaceProject_OnlyTouchesThatProject(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	require.NoError(t, s.Write(func(tx *Tx) error {
		tx.PutProject(models.Project{ID: "P2"})
		tx.PutTask(models.Task{ID: "T5", ProjectID: "P2"})
		return nil
	}))

	require.NoError(t, s.Write(func(tx *Tx) error {
		tx.ReplaceProject(Scope{
			Project: models.Project{ID: "P1", Name: "Alpha v2"},
			Tasks:   []models.Task{{ID: "T7", Status: models.StatusTodo}},
			Sprints: []SprintRecord{{Sprint: models.Sprint{ID: "S2"}, TaskIDs: []types.TaskID{"T7"}}},
		})
		return nil
	}))

	v := s.View()
	p, _ := v.Project("P1")
	assert.Equal(t, "Alpha v2", p.Name)
	assert.Len(t, v.Tasks("P1"), 1)
	assert.Empty(t, v.Columns("P1"))
	assert.Empty(t, v.Risks("P1"))
	assert.Equal(t, []types.TaskID{"T7"}, v.Members("P1", "S2"))
	assert.Len(t, v.Tasks("P2"), 1)
}

func TestColumns_OrderedByIndex(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	cols := s.View().Columns("P1")
	for i, c := range cols {
		assert.Equal(t, i, c.OrderIndex)
	}
	assert.Equal(t, types.ColumnID("P1_todo"), cols[0].ID)
}
