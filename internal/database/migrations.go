package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied in order. Every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		assignee TEXT NOT NULL DEFAULT '',
		priority TEXT NOT NULL DEFAULT 'medium',
		status TEXT NOT NULL DEFAULT 'todo',
		start_date TEXT NOT NULL DEFAULT '',
		end_date TEXT NOT NULL DEFAULT '',
		comments TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,

	// Sprint IDs are unique per project.
	`CREATE TABLE IF NOT EXISTS sprints (
		project_id TEXT NOT NULL,
		id TEXT NOT NULL,
		name TEXT NOT NULL,
		start_date TEXT NOT NULL DEFAULT '',
		end_date TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'planning',
		created_at TEXT NOT NULL,
		PRIMARY KEY (project_id, id),
		FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS sprint_tasks (
		project_id TEXT NOT NULL,
		sprint_id TEXT NOT NULL,
		task_id TEXT NOT NULL,
		PRIMARY KEY (project_id, sprint_id, task_id),
		FOREIGN KEY (project_id, sprint_id) REFERENCES sprints(project_id, id) ON DELETE CASCADE,
		FOREIGN KEY (task_id) REFERENCES tasks(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sprint_tasks_task ON sprint_tasks(task_id)`,

	`CREATE TABLE IF NOT EXISTS columns (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		name TEXT NOT NULL,
		order_index INTEGER NOT NULL,
		is_default INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_columns_project ON columns(project_id, order_index)`,

	`CREATE TABLE IF NOT EXISTS risks (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		impact INTEGER NOT NULL CHECK (impact BETWEEN 1 AND 4),
		probability INTEGER NOT NULL CHECK (probability BETWEEN 1 AND 4),
		mitigation TEXT NOT NULL DEFAULT '',
		strategy TEXT NOT NULL DEFAULT 'mitigate',
		status TEXT NOT NULL DEFAULT 'open',
		created_at TEXT NOT NULL,
		FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_risks_project ON risks(project_id)`,

	`CREATE TABLE IF NOT EXISTS minutes (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		title TEXT NOT NULL,
		date TEXT NOT NULL,
		content TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_minutes_project ON minutes(project_id)`,

	// Last allocated sequence number per (prefix, scope). scope is '' for
	// global prefixes and the project ID for per-project ones.
	`CREATE TABLE IF NOT EXISTS sequences (
		prefix TEXT NOT NULL,
		scope TEXT NOT NULL DEFAULT '',
		value INTEGER NOT NULL,
		PRIMARY KEY (prefix, scope)
	)`,

	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL DEFAULT '',
		full_name TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
}

// runMigrations creates the reference server schema.
func runMigrations(ctx context.Context, db *sql.DB) error {
	return WithTx(ctx, db, func(tx *sql.Tx) error {
		for i, stmt := range schema {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("migration %d failed: %w", i, err)
			}
		}
		return nil
	})
}
