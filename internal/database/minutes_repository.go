package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/scope/internal/models"
	"github.com/thenoetrevino/scope/internal/types"
)

// MinutesRepo handles meeting minutes.
type MinutesRepo struct {
	db *sql.DB
}

const minutesColumns = `id, project_id, title, date, content, created_at`

func scanMinutes(s scanner) (models.Minutes, error) {
	var m models.Minutes
	var created string
	if err := s.Scan(&m.ID, &m.ProjectID, &m.Title, &m.Date, &m.Content, &created); err != nil {
		return models.Minutes{}, err
	}
	m.CreatedAt = parseTime(created)
	return m, nil
}

func (r *MinutesRepo) CreateMinutes(ctx context.Context, m models.Minutes) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO minutes (`+minutesColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
			m.ID, m.ProjectID, m.Title, m.Date, m.Content, formatTime(m.CreatedAt),
		)
		if err != nil {
			return classifyWrite(err, "minutes", string(m.ID))
		}
		return bumpSequence(ctx, tx, types.MinutesPrefix, types.GlobalScope, string(m.ID))
	})
}

func (r *MinutesRepo) GetMinutes(ctx context.Context, id types.MinutesID) (models.Minutes, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+minutesColumns+` FROM minutes WHERE id = ?`, id)
	m, err := scanMinutes(row)
	if err != nil {
		return models.Minutes{}, classifyRead(err, "minutes", string(id))
	}
	return m, nil
}

// ListMinutes returns a project's minutes newest meeting first, or every
// record when projectID is empty.
func (r *MinutesRepo) ListMinutes(ctx context.Context, projectID types.ProjectID) ([]models.Minutes, error) {
	query := `SELECT ` + minutesColumns + ` FROM minutes`
	args := []any{}
	if projectID != "" {
		query += ` WHERE project_id = ?`
		args = append(args, projectID)
	}
	rows, err := r.db.QueryContext(ctx, query+` ORDER BY date DESC, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query minutes: %w", err)
	}
	return collect(rows, scanMinutes)
}

func (r *MinutesRepo) UpdateMinutes(ctx context.Context, m models.Minutes) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE minutes SET title = ?, date = ?, content = ? WHERE id = ?`,
		m.Title, m.Date, m.Content, m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update minutes %s: %w", m.ID, err)
	}
	return expectAffected(res, "minutes", string(m.ID))
}

func (r *MinutesRepo) DeleteMinutes(ctx context.Context, id types.MinutesID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM minutes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete minutes %s: %w", id, err)
	}
	return expectAffected(res, "minutes", string(id))
}
