package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/thenoetrevino/scope/internal/apperr"
	"github.com/thenoetrevino/scope/internal/models"
	"github.com/thenoetrevino/scope/internal/relations"
	"github.com/thenoetrevino/scope/internal/types"
)

// ColumnRepo handles kanban column operations. Every multi-row change runs
// in a single transaction so order_index stays dense and unique.
type ColumnRepo struct {
	db *sql.DB
}

const columnColumns = `id, project_id, name, order_index, is_default`

func scanColumn(s scanner) (models.Column, error) {
	var c models.Column
	if err := s.Scan(&c.ID, &c.ProjectID, &c.Name, &c.OrderIndex, &c.IsDefault); err != nil {
		return models.Column{}, err
	}
	return c, nil
}

func loadColumns(ctx context.Context, q querier, projectID types.ProjectID) ([]models.Column, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+columnColumns+` FROM columns WHERE project_id = ? ORDER BY order_index, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	return collect(rows, scanColumn)
}

func loadColumn(ctx context.Context, q querier, id types.ColumnID) (models.Column, error) {
	row := q.QueryRowContext(ctx, `SELECT `+columnColumns+` FROM columns WHERE id = ?`, id)
	c, err := scanColumn(row)
	if err != nil {
		return models.Column{}, classifyRead(err, "column", string(id))
	}
	return c, nil
}

// ListColumns returns a project's columns in board order.
func (r *ColumnRepo) ListColumns(ctx context.Context, projectID types.ProjectID) ([]models.Column, error) {
	return loadColumns(ctx, r.db, projectID)
}

func (r *ColumnRepo) GetColumn(ctx context.Context, id types.ColumnID) (models.Column, error) {
	return loadColumn(ctx, r.db, id)
}

// CreateColumn appends a custom column after the project's last column and
// returns it as stored.
func (r *ColumnRepo) CreateColumn(ctx context.Context, col models.Column) (models.Column, error) {
	err := WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM projects WHERE id = ?`, col.ProjectID).Scan(&exists)
		if err != nil {
			return classifyRead(err, "project", string(col.ProjectID))
		}
		cols, err := loadColumns(ctx, tx, col.ProjectID)
		if err != nil {
			return err
		}
		col.Name = strings.TrimSpace(col.Name)
		if err := relations.CheckCustomColumnName(cols, col.Name, ""); err != nil {
			return err
		}

		col.OrderIndex = 0
		for _, c := range cols {
			if c.OrderIndex >= col.OrderIndex {
				col.OrderIndex = c.OrderIndex + 1
			}
		}
		col.IsDefault = false
		_, err = tx.ExecContext(ctx,
			`INSERT INTO columns (`+columnColumns+`) VALUES (?, ?, ?, ?, 0)`,
			col.ID, col.ProjectID, col.Name, col.OrderIndex,
		)
		if err != nil {
			return classifyWrite(err, "column", string(col.ID))
		}
		return bumpSequence(ctx, tx, relations.CustomColumnPrefix(col.ProjectID), string(col.ProjectID), string(col.ID))
	})
	if err != nil {
		return models.Column{}, err
	}
	return col, nil
}

// RenameColumn renames a column. Tasks of a renamed custom column are moved
// to the new status value in the same transaction.
func (r *ColumnRepo) RenameColumn(ctx context.Context, id types.ColumnID, name string) (models.Column, error) {
	var col models.Column
	err := WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		col, err = loadColumn(ctx, tx, id)
		if err != nil {
			return err
		}
		cols, err := loadColumns(ctx, tx, col.ProjectID)
		if err != nil {
			return err
		}
		name = strings.TrimSpace(name)
		check := relations.CheckCustomColumnName
		if col.IsDefault {
			check = relations.CheckColumnName
		}
		if err := check(cols, name, id); err != nil {
			return err
		}

		if !col.IsDefault {
			_, err := tx.ExecContext(ctx,
				`UPDATE tasks SET status = ? WHERE project_id = ? AND status = ?`,
				name, col.ProjectID, col.Status(),
			)
			if err != nil {
				return fmt.Errorf("failed to move tasks of column %s: %w", id, err)
			}
		}
		if _, err := tx.ExecContext(ctx, `UPDATE columns SET name = ? WHERE id = ?`, name, id); err != nil {
			return fmt.Errorf("failed to rename column %s: %w", id, err)
		}
		col.Name = name
		return nil
	})
	if err != nil {
		return models.Column{}, err
	}
	return col, nil
}

// DeleteColumn removes a custom column, moves its tasks to todo and
// renumbers the remaining columns. It returns the number of moved tasks.
func (r *ColumnRepo) DeleteColumn(ctx context.Context, id types.ColumnID) (int64, error) {
	var moved int64
	err := WithTx(ctx, r.db, func(tx *sql.Tx) error {
		col, err := loadColumn(ctx, tx, id)
		if err != nil {
			return err
		}
		if col.IsDefault {
			return apperr.Newf(apperr.KindImmutableColumn, "column %s is a default column and cannot be deleted", id)
		}

		res, err := tx.ExecContext(ctx,
			`UPDATE tasks SET status = ? WHERE project_id = ? AND status = ?`,
			models.DefaultStatus, col.ProjectID, col.Status(),
		)
		if err != nil {
			return fmt.Errorf("failed to reassign tasks of column %s: %w", id, err)
		}
		if moved, err = res.RowsAffected(); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM columns WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete column %s: %w", id, err)
		}
		return densify(ctx, tx, col.ProjectID)
	})
	return moved, err
}

// ReorderColumns assigns order_index 0..n-1 following ordered, which must
// list every column of the project exactly once.
func (r *ColumnRepo) ReorderColumns(ctx context.Context, projectID types.ProjectID, ordered []types.ColumnID) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		cols, err := loadColumns(ctx, tx, projectID)
		if err != nil {
			return err
		}
		if len(cols) == 0 {
			return apperr.NotFound("project", string(projectID))
		}
		if err := relations.CheckOrder(projectID, cols, ordered); err != nil {
			return err
		}
		return setOrder(ctx, tx, ordered)
	})
}

func densify(ctx context.Context, tx *sql.Tx, projectID types.ProjectID) error {
	cols, err := loadColumns(ctx, tx, projectID)
	if err != nil {
		return err
	}
	ids := make([]types.ColumnID, len(cols))
	for i, c := range cols {
		ids[i] = c.ID
	}
	return setOrder(ctx, tx, ids)
}

func setOrder(ctx context.Context, tx *sql.Tx, ordered []types.ColumnID) error {
	stmt, err := tx.PrepareContext(ctx, `UPDATE columns SET order_index = ? WHERE id = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare reorder: %w", err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			slogError("failed to close statement", err)
		}
	}()
	for i, id := range ordered {
		if _, err := stmt.ExecContext(ctx, i, id); err != nil {
			return fmt.Errorf("failed to move column %s: %w", id, err)
		}
	}
	return nil
}
