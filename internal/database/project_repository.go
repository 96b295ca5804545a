package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/scope/internal/models"
	"github.com/thenoetrevino/scope/internal/types"
)

// ProjectRepo handles all project-related database operations.
type ProjectRepo struct {
	db *sql.DB
}

const projectColumns = `id, name, description, created_at`

func scanProject(s scanner) (models.Project, error) {
	var p models.Project
	var created string
	if err := s.Scan(&p.ID, &p.Name, &p.Description, &created); err != nil {
		return models.Project{}, err
	}
	p.CreatedAt = parseTime(created)
	return p, nil
}

// CreateProject inserts a project together with its four default columns in
// one transaction.
func (r *ProjectRepo) CreateProject(ctx context.Context, p models.Project) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO projects (id, name, description, created_at) VALUES (?, ?, ?, ?)`,
			p.ID, p.Name, p.Description, formatTime(p.CreatedAt),
		)
		if err != nil {
			return classifyWrite(err, "project", string(p.ID))
		}

		for _, c := range models.DefaultColumns(p.ID) {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO columns (id, project_id, name, order_index, is_default) VALUES (?, ?, ?, ?, 1)`,
				c.ID, c.ProjectID, c.Name, c.OrderIndex,
			)
			if err != nil {
				return fmt.Errorf("failed to create default column %s: %w", c.ID, err)
			}
		}
		return bumpSequence(ctx, tx, types.ProjectPrefix, types.GlobalScope, string(p.ID))
	})
}

// GetProject retrieves a project by its ID.
func (r *ProjectRepo) GetProject(ctx context.Context, id types.ProjectID) (models.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if err != nil {
		return models.Project{}, classifyRead(err, "project", string(id))
	}
	return p, nil
}

// ListProjects retrieves all projects ordered by creation.
func (r *ProjectRepo) ListProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	return collect(rows, scanProject)
}

// UpdateProject changes a project's name and description.
func (r *ProjectRepo) UpdateProject(ctx context.Context, p models.Project) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE projects SET name = ?, description = ? WHERE id = ?`,
		p.Name, p.Description, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project %s: %w", p.ID, err)
	}
	return expectAffected(res, "project", string(p.ID))
}

// DeleteProject removes a project; foreign keys cascade to everything in
// its scope.
func (r *ProjectRepo) DeleteProject(ctx context.Context, id types.ProjectID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project %s: %w", id, err)
	}
	return expectAffected(res, "project", string(id))
}
