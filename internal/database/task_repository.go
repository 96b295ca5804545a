package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/scope/internal/models"
	"github.com/thenoetrevino/scope/internal/types"
)

// TaskRepo handles all task-related database operations.
type TaskRepo struct {
	db *sql.DB
}

const taskColumns = `id, project_id, title, description, assignee, priority, status, start_date, end_date, comments, created_at`

func scanTask(s scanner) (models.Task, error) {
	var t models.Task
	var created string
	err := s.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Assignee, &t.Priority,
		&t.Status, &t.StartDate, &t.EndDate, &t.Comments, &created)
	if err != nil {
		return models.Task{}, err
	}
	t.CreatedAt = parseTime(created)
	return t, nil
}

func (r *TaskRepo) CreateTask(ctx context.Context, t models.Task) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO tasks (`+taskColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.ProjectID, t.Title, t.Description, t.Assignee, t.Priority,
			t.Status, t.StartDate, t.EndDate, t.Comments, formatTime(t.CreatedAt),
		)
		if err != nil {
			return classifyWrite(err, "task", string(t.ID))
		}
		return bumpSequence(ctx, tx, types.TaskPrefix, types.GlobalScope, string(t.ID))
	})
}

func (r *TaskRepo) GetTask(ctx context.Context, id types.TaskID) (models.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err != nil {
		return models.Task{}, classifyRead(err, "task", string(id))
	}
	return t, nil
}

// ListTasks returns a project's tasks, or every task when projectID is empty.
func (r *TaskRepo) ListTasks(ctx context.Context, projectID types.ProjectID) ([]models.Task, error) {
	var rows *sql.Rows
	var err error
	if projectID == "" {
		rows, err = r.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY created_at, id`)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+taskColumns+` FROM tasks WHERE project_id = ? ORDER BY created_at, id`, projectID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	return collect(rows, scanTask)
}

// UpdateTask overwrites a task's editable fields. The project is immutable.
func (r *TaskRepo) UpdateTask(ctx context.Context, t models.Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks SET title = ?, description = ?, assignee = ?, priority = ?, status = ?,
			start_date = ?, end_date = ?, comments = ?
		WHERE id = ?`,
		t.Title, t.Description, t.Assignee, t.Priority, t.Status,
		t.StartDate, t.EndDate, t.Comments, t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task %s: %w", t.ID, err)
	}
	return expectAffected(res, "task", string(t.ID))
}

func (r *TaskRepo) DeleteTask(ctx context.Context, id types.TaskID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	return expectAffected(res, "task", string(id))
}
