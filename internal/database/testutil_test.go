package database

import (
	"context"
	"database/sql"
	"log"
	"testing"
	"time"

	"github.com/thenoetrevino/scope/internal/models"
	"github.com/thenoetrevino/scope/internal/types"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

var testNow = time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)

// setupTestDB creates an in-memory database with the server schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := InitServerDB(context.Background(), MemoryPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	})
	return db
}

func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	return NewRepository(setupTestDB(t))
}

// ============================================================================
// FIXTURE HELPERS
// ============================================================================

func createTestProject(t *testing.T, repo *Repository, id types.ProjectID) models.Project {
	t.Helper()
	p := models.Project{ID: id, Name: "Project " + string(id), CreatedAt: testNow}
	if err := repo.CreateProject(context.Background(), p); err != nil {
		t.Fatalf("Failed to create project %s: %v", id, err)
	}
	return p
}

func createTestTask(t *testing.T, repo *Repository, pid types.ProjectID, id types.TaskID, status string) models.Task {
	t.Helper()
	task := models.Task{
		ID:        id,
		ProjectID: pid,
		Title:     "Task " + string(id),
		Priority:  models.DefaultPriority,
		Status:    status,
		CreatedAt: testNow,
	}
	if err := repo.CreateTask(context.Background(), task); err != nil {
		t.Fatalf("Failed to create task %s: %v", id, err)
	}
	return task
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}
