package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/scope/internal/apperr"
	"github.com/thenoetrevino/scope/internal/models"
	"github.com/thenoetrevino/scope/internal/store"
	"github.com/thenoetrevino/scope/internal/types"
)

// SprintRepo handles sprints and their task memberships.
type SprintRepo struct {
	db *sql.DB
}

const sprintColumns = `project_id, id, name, start_date, end_date, status, created_at`

func scanSprint(s scanner) (models.Sprint, error) {
	var sp models.Sprint
	var created string
	if err := s.Scan(&sp.ProjectID, &sp.ID, &sp.Name, &sp.StartDate, &sp.EndDate, &sp.Status, &created); err != nil {
		return models.Sprint{}, err
	}
	sp.CreatedAt = parseTime(created)
	return sp, nil
}

// CreateSprint inserts a sprint and its initial members in one transaction.
// Every member must be a task of the sprint's project.
func (r *SprintRepo) CreateSprint(ctx context.Context, rec store.SprintRecord) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO sprints (`+sprintColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rec.ProjectID, rec.ID, rec.Name, rec.StartDate, rec.EndDate, rec.Status, formatTime(rec.CreatedAt),
		)
		if err != nil {
			return classifyWrite(err, "sprint", string(rec.ID))
		}
		for _, tid := range rec.TaskIDs {
			if err := checkTaskProject(ctx, tx, rec.ProjectID, tid, "task_ids"); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO sprint_tasks (project_id, sprint_id, task_id) VALUES (?, ?, ?)`,
				rec.ProjectID, rec.ID, tid,
			)
			if err != nil {
				return fmt.Errorf("failed to add task %s to sprint %s: %w", tid, rec.ID, err)
			}
		}
		return bumpSequence(ctx, tx, types.SprintPrefix, string(rec.ProjectID), string(rec.ID))
	})
}

// checkTaskProject verifies that a task exists and belongs to projectID.
func checkTaskProject(ctx context.Context, q querier, projectID types.ProjectID, taskID types.TaskID, field string) error {
	var owner types.ProjectID
	err := q.QueryRowContext(ctx, `SELECT project_id FROM tasks WHERE id = ?`, taskID).Scan(&owner)
	if err != nil {
		return classifyRead(err, "task", string(taskID))
	}
	if owner != projectID {
		return apperr.Validation(field, "task "+string(taskID)+" belongs to a different project")
	}
	return nil
}

func (r *SprintRepo) GetSprint(ctx context.Context, projectID types.ProjectID, id types.SprintID) (store.SprintRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sprintColumns+` FROM sprints WHERE project_id = ? AND id = ?`, projectID, id)
	sp, err := scanSprint(row)
	if err != nil {
		return store.SprintRecord{}, classifyRead(err, "sprint", string(id))
	}
	members, err := r.members(ctx, projectID)
	if err != nil {
		return store.SprintRecord{}, err
	}
	return store.SprintRecord{Sprint: sp, TaskIDs: nonNil(members[id])}, nil
}

// ListSprints returns a project's sprints with their members.
func (r *SprintRepo) ListSprints(ctx context.Context, projectID types.ProjectID) ([]store.SprintRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sprintColumns+` FROM sprints WHERE project_id = ? ORDER BY created_at, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sprints: %w", err)
	}
	sprints, err := collect(rows, scanSprint)
	if err != nil {
		return nil, err
	}
	members, err := r.members(ctx, projectID)
	if err != nil {
		return nil, err
	}
	out := make([]store.SprintRecord, 0, len(sprints))
	for _, sp := range sprints {
		out = append(out, store.SprintRecord{Sprint: sp, TaskIDs: nonNil(members[sp.ID])})
	}
	return out, nil
}

func (r *SprintRepo) members(ctx context.Context, projectID types.ProjectID) (map[types.SprintID][]types.TaskID, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT sprint_id, task_id FROM sprint_tasks WHERE project_id = ? ORDER BY sprint_id, task_id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sprint members: %w", err)
	}
	defer closeRows(rows)

	out := make(map[types.SprintID][]types.TaskID)
	for rows.Next() {
		var sid types.SprintID
		var tid types.TaskID
		if err := rows.Scan(&sid, &tid); err != nil {
			return nil, err
		}
		out[sid] = append(out[sid], tid)
	}
	return out, rows.Err()
}

func (r *SprintRepo) UpdateSprint(ctx context.Context, sp models.Sprint) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE sprints SET name = ?, start_date = ?, end_date = ?, status = ?
		WHERE project_id = ? AND id = ?`,
		sp.Name, sp.StartDate, sp.EndDate, sp.Status, sp.ProjectID, sp.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update sprint %s: %w", sp.ID, err)
	}
	return expectAffected(res, "sprint", string(sp.ID))
}

// DeleteSprint removes a sprint and its memberships. Tasks are kept.
func (r *SprintRepo) DeleteSprint(ctx context.Context, projectID types.ProjectID, id types.SprintID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sprints WHERE project_id = ? AND id = ?`, projectID, id)
	if err != nil {
		return fmt.Errorf("failed to delete sprint %s: %w", id, err)
	}
	return expectAffected(res, "sprint", string(id))
}

// AttachTask adds a task to a sprint of the same project.
func (r *SprintRepo) AttachTask(ctx context.Context, projectID types.ProjectID, sprintID types.SprintID, taskID types.TaskID) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx,
			`SELECT 1 FROM sprints WHERE project_id = ? AND id = ?`, projectID, sprintID).Scan(&exists)
		if err != nil {
			return classifyRead(err, "sprint", string(sprintID))
		}
		if err := checkTaskProject(ctx, tx, projectID, taskID, "task_id"); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO sprint_tasks (project_id, sprint_id, task_id) VALUES (?, ?, ?)`,
			projectID, sprintID, taskID,
		)
		if isUniqueViolation(err) {
			return apperr.Newf(apperr.KindDuplicateAssociation, "task %s is already in sprint %s", taskID, sprintID)
		}
		if err != nil {
			return fmt.Errorf("failed to attach task %s: %w", taskID, err)
		}
		return nil
	})
}

// DetachTask removes a task from a sprint.
func (r *SprintRepo) DetachTask(ctx context.Context, projectID types.ProjectID, sprintID types.SprintID, taskID types.TaskID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM sprint_tasks WHERE project_id = ? AND sprint_id = ? AND task_id = ?`,
		projectID, sprintID, taskID,
	)
	if err != nil {
		return fmt.Errorf("failed to detach task %s: %w", taskID, err)
	}
	return expectAffected(res, "sprint membership", string(sprintID)+"/"+string(taskID))
}

func nonNil(ids []types.TaskID) []types.TaskID {
	if ids == nil {
		return []types.TaskID{}
	}
	return ids
}
