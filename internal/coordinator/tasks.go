package coordinator

import (
	"context"
	"strings"

	"github.com/thenoetrevino/scope/internal/apperr"
	"github.com/thenoetrevino/scope/internal/idgen"
	"github.com/thenoetrevino/scope/internal/models"
	"github.com/thenoetrevino/scope/internal/relations"
	"github.com/thenoetrevino/scope/internal/store"
	"github.com/thenoetrevino/scope/internal/types"
)

// ListTasks returns a project's tasks.
func (c *Coordinator) ListTasks(ctx context.Context, projectID types.ProjectID) ([]models.Task, error) {
	v, err := c.scopeView(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return v.Tasks(projectID), nil
}

// GetTask returns a task, refreshed from the remote store when it is reachable.
func (c *Coordinator) GetTask(ctx context.Context, id types.TaskID) (models.Task, error) {
	var t models.Task
	err := c.fetch(ctx, "get_task", func(rctx context.Context) error {
		var err error
		t, err = c.remote.GetTask(rctx, id)
		return err
	})
	switch {
	case localOnly(err):
	case apperr.IsKind(err, apperr.KindNotFound):
		c.forget(ctx, func(tx *store.Tx) { tx.DeleteTask(id) })
		return models.Task{}, err
	case err != nil:
		return models.Task{}, err
	default:
		if err := c.apply(ctx, func(tx *store.Tx) error {
			tx.PutTask(t)
			return nil
		}); err != nil {
			return models.Task{}, err
		}
	}

	t, ok := c.store.View().Task(id)
	if !ok {
		return models.Task{}, apperr.NotFound("task", string(id))
	}
	return t, nil
}

// CreateTask creates a task, optionally attaching it to a sprint.
func (c *Coordinator) CreateTask(ctx context.Context, req CreateTaskRequest) (models.Task, error) {
	t := models.Task{
		ID:          req.ID,
		ProjectID:   req.ProjectID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Assignee:    strings.TrimSpace(req.Assignee),
		Priority:    orDefault(req.Priority, models.DefaultPriority),
		Status:      orDefault(req.Status, models.DefaultStatus),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Comments:    req.Comments,
	}
	if err := validTask(t); err != nil {
		return models.Task{}, err
	}
	if err := c.ensureProject(ctx, t.ProjectID); err != nil {
		return models.Task{}, err
	}
	v := c.store.View()
	if !relations.StatusAllowed(v, t.ProjectID, t.Status) {
		return models.Task{}, apperr.Validation("status", "no column of the project holds status "+t.Status)
	}
	if req.SprintID != "" {
		if _, ok := v.Sprint(t.ProjectID, req.SprintID); !ok {
			return models.Task{}, apperr.NotFound("sprint", string(req.SprintID))
		}
	}
	if existing, ok := v.Task(t.ID); ok && t.ID != "" {
		return existing, nil
	}
	if t.ID == "" {
		id, err := c.allocate(ctx, types.TaskPrefix, types.GlobalScope, v.TaskIDs())
		if err != nil {
			return models.Task{}, err
		}
		t.ID = types.TaskID(id)
	}
	t.CreatedAt = c.now()

	put := func(tx *store.Tx) error {
		if t.ID == "" {
			id, err := idgen.Next(types.TaskPrefix, tx.TaskIDs())
			if err != nil {
				return err
			}
			t.ID = types.TaskID(id)
		}
		if existing, ok := tx.Task(t.ID); ok {
			t = existing
			return nil
		}
		tx.PutTask(t)
		return nil
	}

	err := c.viaRemote(ctx, "create_task", func(rctx context.Context) error {
		return c.remote.CreateTask(rctx, t)
	})
	switch {
	case localOnly(err):
		err = c.apply(ctx, func(tx *store.Tx) error {
			if err := put(tx); err != nil {
				return err
			}
			if req.SprintID == "" {
				return nil
			}
			return relations.Attach(tx, t.ProjectID, t.ID, req.SprintID)
		})
		if err != nil {
			return models.Task{}, err
		}
		return t, nil
	case err == nil:
		if err := c.apply(ctx, put); err != nil {
			return models.Task{}, err
		}
	case isDuplicate(err):
		err = c.reconcile(ctx, "create_task", put, func(rctx context.Context) (func(tx *store.Tx) error, error) {
			remote, err := c.remote.GetTask(rctx, t.ID)
			if err != nil {
				return nil, err
			}
			return func(tx *store.Tx) error {
				tx.PutTask(remote)
				return nil
			}, nil
		})
		if err != nil {
			return models.Task{}, err
		}
		t, _ = c.store.View().Task(t.ID)
	default:
		return models.Task{}, err
	}

	if req.SprintID != "" {
		if err := c.AttachTask(ctx, t.ProjectID, req.SprintID, t.ID); err != nil {
			return t, err
		}
	}
	return t, nil
}

// UpdateTask applies the non-nil fields of req to a task.
func (c *Coordinator) UpdateTask(ctx context.Context, id types.TaskID, req UpdateTaskRequest) (models.Task, error) {
	t, err := c.currentTask(ctx, id)
	if err != nil {
		return models.Task{}, err
	}
	setString(&t.Title, req.Title)
	setString(&t.Description, req.Description)
	setString(&t.Assignee, req.Assignee)
	setString(&t.Priority, req.Priority)
	setString(&t.Status, req.Status)
	setString(&t.StartDate, req.StartDate)
	setString(&t.EndDate, req.EndDate)
	setString(&t.Comments, req.Comments)
	t.Title = strings.TrimSpace(t.Title)
	if err := validTask(t); err != nil {
		return models.Task{}, err
	}
	if req.Status != nil && !relations.StatusAllowed(c.store.View(), t.ProjectID, t.Status) {
		return models.Task{}, apperr.Validation("status", "no column of the project holds status "+t.Status)
	}

	err = c.viaRemote(ctx, "update_task", func(rctx context.Context) error {
		return c.remote.UpdateTask(rctx, t)
	})
	if err != nil && !localOnly(err) {
		return models.Task{}, err
	}
	err = c.apply(ctx, func(tx *store.Tx) error {
		if _, ok := tx.Task(id); !ok {
			return apperr.NotFound("task", string(id))
		}
		tx.PutTask(t)
		return nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// MoveTask places a task in a column by giving it the column's status.
func (c *Coordinator) MoveTask(ctx context.Context, id types.TaskID, columnID types.ColumnID) (models.Task, error) {
	t, err := c.currentTask(ctx, id)
	if err != nil {
		return models.Task{}, err
	}
	col, ok := c.store.View().Column(columnID)
	if !ok || col.ProjectID != t.ProjectID {
		return models.Task{}, apperr.NotFound("column", string(columnID))
	}
	status := col.Status()
	return c.UpdateTask(ctx, id, UpdateTaskRequest{Status: &status})
}

// DeleteTask removes a task and its sprint memberships.
func (c *Coordinator) DeleteTask(ctx context.Context, id types.TaskID) error {
	err := c.viaRemote(ctx, "delete_task", func(rctx context.Context) error {
		return c.remote.DeleteTask(rctx, id)
	})
	if err != nil && !localOnly(err) && !apperr.IsKind(err, apperr.KindNotFound) {
		return err
	}
	remoteErr := err
	return c.apply(ctx, func(tx *store.Tx) error {
		if _, ok := tx.Task(id); !ok {
			if apperr.IsKind(remoteErr, apperr.KindNotFound) {
				return remoteErr
			}
			return apperr.NotFound("task", string(id))
		}
		tx.DeleteTask(id)
		return nil
	})
}

// currentTask returns the local copy of a task, fetching it in remote mode
// when it is not cached.
func (c *Coordinator) currentTask(ctx context.Context, id types.TaskID) (models.Task, error) {
	if t, ok := c.store.View().Task(id); ok {
		return t, nil
	}
	return c.GetTask(ctx, id)
}

// forget applies a local removal of something the remote store reported
// missing. Failures are only logged.
func (c *Coordinator) forget(ctx context.Context, fn func(tx *store.Tx)) {
	if err := c.apply(ctx, func(tx *store.Tx) error {
		fn(tx)
		return nil
	}); err != nil {
		c.logger.Warn("failed to drop record removed remotely", "error", err)
	}
}
