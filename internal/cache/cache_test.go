package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/scope/internal/database"
	"github.com/thenoetrevino/scope/internal/models"
	"github.com/thenoetrevino/scope/internal/store"
	"github.com/thenoetrevino/scope/internal/types"
)

var stamp = time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)

func sampleSnapshot() store.Snapshot {
	s := store.New(store.WithClock(func() time.Time { return stamp }))
	_ = s.Write(func(tx *store.Tx) error {
		tx.PutProject(models.Project{ID: "P1", Name: "Alpha", CreatedAt: tx.Now()})
		for _, c := range models.DefaultColumns("P1") {
			tx.PutColumn(c)
		}
		tx.PutTask(models.Task{ID: "T1", ProjectID: "P1", Title: "one", Status: models.StatusTodo, Priority: models.PriorityHigh, CreatedAt: tx.Now()})
		tx.PutSprint(models.Sprint{ID: "S1", ProjectID: "P1", Name: "s", StartDate: "2025-01-01", EndDate: "2025-01-10", Status: models.SprintActive, CreatedAt: tx.Now()})
		tx.Link(models.Association{ProjectID: "P1", SprintID: "S1", TaskID: "T1"})
		tx.PutRisk(models.Risk{ID: "R1", ProjectID: "P1", Impact: 3, Probability: 4, CreatedAt: tx.Now()})
		tx.PutMinutes(models.Minutes{ID: "M1", ProjectID: "P1", Title: "kickoff", Date: "2025-01-02", Content: "# notes", CreatedAt: tx.Now()})
		return nil
	})
	return s.Snapshot()
}

// ============================================================================
// Backend Helpers
// ============================================================================

func sqliteBackend(t *testing.T) Backend {
	t.Helper()
	db, err := database.Open(context.Background(), database.MemoryPath)
	require.NoError(t, err)
	b, err := NewSQLiteBackend(context.Background(), db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func redisBackend(t *testing.T) (Backend, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	b := NewRedisBackend(client, "scope:")
	t.Cleanup(func() { _ = b.Close() })
	return b, mr
}

func backends(t *testing.T) map[string]Backend {
	rb, _ := redisBackend(t)
	return map[string]Backend{
		"sqlite": sqliteBackend(t),
		"redis":  rb,
		"memory": NewMemoryBackend(),
	}
}

// ============================================================================
// Cache Tests
// ============================================================================

func TestCache_RoundTrip(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			c := New(b, WithClock(func() time.Time { return stamp }))

			_, _, found, err := c.Load(ctx)
			require.NoError(t, err)
			assert.False(t, found)

			snap := sampleSnapshot()
			saved, err := c.Save(ctx, snap)
			require.NoError(t, err)
			assert.Equal(t, stamp, saved)

			got, lm, found, err := c.Load(ctx)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, snap, got)
			assert.Equal(t, stamp, lm)
			assert.Equal(t, []types.TaskID{"T1"}, got.Sprints[0].TaskIDs)
		})
	}
}

func TestCache_Clear(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			c := New(b)
			_, err := c.Save(ctx, sampleSnapshot())
			require.NoError(t, err)

			require.NoError(t, c.Clear(ctx))
			_, _, found, err := c.Load(ctx)
			require.NoError(t, err)
			assert.False(t, found)

			lm, err := c.LastModified(ctx)
			require.NoError(t, err)
			assert.True(t, lm.IsZero())
		})
	}
}

func TestCache_LastModifiedAdvances(t *testing.T) {
	ctx := context.Background()
	now := stamp
	c := New(sqliteBackend(t), WithClock(func() time.Time { return now }))

	_, err := c.Save(ctx, store.EmptySnapshot())
	require.NoError(t, err)
	now = now.Add(time.Minute)
	_, err = c.Save(ctx, store.EmptySnapshot())
	require.NoError(t, err)

	lm, err := c.LastModified(ctx)
	require.NoError(t, err)
	assert.Equal(t, stamp.Add(time.Minute), lm)
}

func TestCache_RedisUsesFixedKeys(t *testing.T) {
	b, mr := redisBackend(t)
	c := New(b, WithClock(func() time.Time { return stamp }))
	_, err := c.Save(context.Background(), store.EmptySnapshot())
	require.NoError(t, err)

	assert.True(t, mr.Exists("scope:"+DataKey))
	got, err := mr.Get("scope:" + LastModifiedKey)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01T10:30:00Z", got)
}

func TestCache_CorruptBlob(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	require.NoError(t, b.Save(ctx, Record{Data: []byte("{not json"), LastModified: stamp}))

	_, _, _, err := New(b).Load(ctx)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestCache_MissingArraysLoadEmpty(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	require.NoError(t, b.Save(ctx, Record{Data: []byte(`{"projects":[]}`)}))

	snap, _, found, err := New(b).Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.NotNil(t, snap.Tasks)
	assert.NotNil(t, snap.Columns)
}

func TestOpenBackend(t *testing.T) {
	ctx := context.Background()
	b, err := OpenBackend(ctx, Settings{Backend: BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryBackend{}, b)

	_, err = OpenBackend(ctx, Settings{Backend: "etcd"})
	assert.Error(t, err)

	path := t.TempDir() + "/cache/scope.db"
	b, err = OpenBackend(ctx, Settings{Backend: BackendSQLite, SQLitePath: path})
	require.NoError(t, err)
	require.NoError(t, b.Close())
}
