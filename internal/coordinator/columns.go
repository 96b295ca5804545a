package coordinator

import (
	"context"

	"github.com/thenoetrevino/scope/internal/apperr"
	"github.com/thenoetrevino/scope/internal/models"
	"github.com/thenoetrevino/scope/internal/relations"
	"github.com/thenoetrevino/scope/internal/store"
	"github.com/thenoetrevino/scope/internal/types"
)

// ListColumns returns a project's columns in board order.
func (c *Coordinator) ListColumns(ctx context.Context, projectID types.ProjectID) ([]models.Column, error) {
	v, err := c.scopeView(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return v.Columns(projectID), nil
}

// CreateColumn appends a custom column to a project's board.
func (c *Coordinator) CreateColumn(ctx context.Context, req CreateColumnRequest) (models.Column, error) {
	if err := c.ensureProject(ctx, req.ProjectID); err != nil {
		return models.Column{}, err
	}
	if existing, ok := c.store.View().Column(req.ID); ok && req.ID != "" {
		return existing, nil
	}

	col := models.Column{ID: req.ID, ProjectID: req.ProjectID, Name: req.Name}
	var planned models.Column
	err := c.check(func(tx *store.Tx) error {
		var err error
		planned, err = relations.AddColumn(tx, col)
		return err
	})
	if err != nil {
		return models.Column{}, err
	}
	if col.ID == "" {
		id, err := c.allocate(ctx, relations.CustomColumnPrefix(col.ProjectID), string(col.ProjectID), c.store.View().ColumnIDs(col.ProjectID))
		if err != nil {
			return models.Column{}, err
		}
		col.ID = types.ColumnID(id)
		planned.ID = col.ID
	}

	var added models.Column
	add := func(tx *store.Tx) error {
		var err error
		added, err = relations.AddColumn(tx, col)
		return err
	}

	err = c.viaRemote(ctx, "create_column", func(rctx context.Context) error {
		return c.remote.CreateColumn(rctx, planned)
	})
	switch {
	case err == nil, localOnly(err):
		if err := c.apply(ctx, add); err != nil {
			return models.Column{}, err
		}
		return added, nil
	case isDuplicate(err):
		err = c.reconcile(ctx, "create_column", add, func(rctx context.Context) (func(tx *store.Tx) error, error) {
			remote, err := c.remote.GetColumn(rctx, col.ID)
			if err != nil {
				return nil, err
			}
			return func(tx *store.Tx) error {
				tx.PutColumn(remote)
				return nil
			}, nil
		})
		if err != nil {
			return models.Column{}, err
		}
		added, _ = c.store.View().Column(col.ID)
		return added, nil
	default:
		return models.Column{}, err
	}
}

// RenameColumn renames a column. Tasks in a renamed custom column keep
// their place on the board.
func (c *Coordinator) RenameColumn(ctx context.Context, id types.ColumnID, name string) (models.Column, error) {
	var planned models.Column
	err := c.check(func(tx *store.Tx) error {
		var err error
		planned, err = relations.RenameColumn(tx, id, name)
		return err
	})
	if err != nil {
		return models.Column{}, err
	}

	err = c.viaRemote(ctx, "update_column", func(rctx context.Context) error {
		return c.remote.UpdateColumn(rctx, planned)
	})
	if err != nil && !localOnly(err) {
		return models.Column{}, err
	}

	var renamed models.Column
	err = c.apply(ctx, func(tx *store.Tx) error {
		var err error
		renamed, err = relations.RenameColumn(tx, id, name)
		return err
	})
	return renamed, err
}

// ReorderColumns sets a project's column order. ordered must list every
// column of the project exactly once.
func (c *Coordinator) ReorderColumns(ctx context.Context, projectID types.ProjectID, ordered []types.ColumnID) error {
	if err := c.ensureProject(ctx, projectID); err != nil {
		return err
	}
	reorder := func(tx *store.Tx) error {
		return relations.ReorderColumns(tx, projectID, ordered)
	}
	if err := c.check(reorder); err != nil {
		return err
	}

	err := c.viaRemote(ctx, "reorder_columns", func(rctx context.Context) error {
		return c.remote.ReorderColumns(rctx, projectID, ordered)
	})
	if err != nil && !localOnly(err) {
		return err
	}
	return c.apply(ctx, reorder)
}

// DeleteColumn removes a custom column and moves its tasks to todo. Default
// columns cannot be deleted. It returns the IDs of the moved tasks.
func (c *Coordinator) DeleteColumn(ctx context.Context, projectID types.ProjectID, columnID types.ColumnID) ([]types.TaskID, error) {
	if col, ok := c.store.View().Column(columnID); ok && col.IsDefault {
		return nil, apperr.Newf(apperr.KindImmutableColumn, "column %s is a default column and cannot be deleted", columnID)
	}
	del := func(tx *store.Tx) ([]types.TaskID, error) {
		return relations.DeleteColumn(tx, projectID, columnID)
	}
	if err := c.check(func(tx *store.Tx) error {
		_, err := del(tx)
		return err
	}); err != nil {
		return nil, err
	}

	err := c.viaRemote(ctx, "delete_column", func(rctx context.Context) error {
		return c.remote.DeleteColumn(rctx, columnID)
	})
	if err != nil && !localOnly(err) {
		return nil, err
	}

	var moved []types.TaskID
	err = c.apply(ctx, func(tx *store.Tx) error {
		var err error
		moved, err = del(tx)
		return err
	})
	return moved, err
}
