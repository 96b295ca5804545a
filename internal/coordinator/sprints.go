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

// ListSprints returns a project's sprints with their members.
func (c *Coordinator) ListSprints(ctx context.Context, projectID types.ProjectID) ([]store.SprintRecord, error) {
	v, err := c.scopeView(ctx, projectID)
	if err != nil {
		return nil, err
	}
	sprints := v.Sprints(projectID)
	out := make([]store.SprintRecord, 0, len(sprints))
	for _, s := range sprints {
		out = append(out, store.SprintRecord{Sprint: s, TaskIDs: v.Members(projectID, s.ID)})
	}
	return out, nil
}

// GetSprint returns a sprint with its members.
func (c *Coordinator) GetSprint(ctx context.Context, projectID types.ProjectID, id types.SprintID) (store.SprintRecord, error) {
	var rec store.SprintRecord
	err := c.fetch(ctx, "get_sprint", func(rctx context.Context) error {
		var err error
		rec, err = c.remote.GetSprint(rctx, projectID, id)
		return err
	})
	switch {
	case localOnly(err):
	case apperr.IsKind(err, apperr.KindNotFound):
		c.forget(ctx, func(tx *store.Tx) { tx.DeleteSprint(projectID, id) })
		return store.SprintRecord{}, err
	case err != nil:
		return store.SprintRecord{}, err
	default:
		if err := c.apply(ctx, func(tx *store.Tx) error {
			tx.PutSprintRecord(rec)
			return nil
		}); err != nil {
			return store.SprintRecord{}, err
		}
	}

	v := c.store.View()
	s, ok := v.Sprint(projectID, id)
	if !ok {
		return store.SprintRecord{}, apperr.NotFound("sprint", string(id))
	}
	return store.SprintRecord{Sprint: s, TaskIDs: v.Members(projectID, id)}, nil
}

// CreateSprint creates a sprint with an initial member list. Sprint IDs are
// unique per project.
func (c *Coordinator) CreateSprint(ctx context.Context, req CreateSprintRequest) (store.SprintRecord, error) {
	s := models.Sprint{
		ID:        req.ID,
		ProjectID: req.ProjectID,
		Name:      strings.TrimSpace(req.Name),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    orDefault(req.Status, models.SprintPlanning),
	}
	if err := validSprint(s); err != nil {
		return store.SprintRecord{}, err
	}
	if err := c.ensureProject(ctx, s.ProjectID); err != nil {
		return store.SprintRecord{}, err
	}
	v := c.store.View()
	for _, tid := range req.TaskIDs {
		t, ok := v.Task(tid)
		if !ok {
			return store.SprintRecord{}, apperr.NotFound("task", string(tid))
		}
		if t.ProjectID != s.ProjectID {
			return store.SprintRecord{}, apperr.Validation("task_ids", "task "+string(tid)+" belongs to a different project")
		}
	}
	if existing, ok := v.Sprint(s.ProjectID, s.ID); ok && s.ID != "" {
		return store.SprintRecord{Sprint: existing, TaskIDs: v.Members(s.ProjectID, s.ID)}, nil
	}
	if s.ID == "" {
		id, err := c.allocate(ctx, types.SprintPrefix, string(s.ProjectID), v.SprintIDs(s.ProjectID))
		if err != nil {
			return store.SprintRecord{}, err
		}
		s.ID = types.SprintID(id)
	}
	s.CreatedAt = c.now()

	put := func(tx *store.Tx) error {
		if s.ID == "" {
			id, err := idgen.Next(types.SprintPrefix, tx.SprintIDs(s.ProjectID))
			if err != nil {
				return err
			}
			s.ID = types.SprintID(id)
		}
		if _, ok := tx.Sprint(s.ProjectID, s.ID); ok {
			return nil
		}
		tx.PutSprint(s)
		return relations.SetMembers(tx, s.ProjectID, s.ID, req.TaskIDs)
	}

	err := c.viaRemote(ctx, "create_sprint", func(rctx context.Context) error {
		return c.remote.CreateSprint(rctx, store.SprintRecord{Sprint: s, TaskIDs: req.TaskIDs})
	})
	switch {
	case err == nil, localOnly(err):
		err = c.apply(ctx, put)
	case isDuplicate(err):
		err = c.reconcile(ctx, "create_sprint", put, func(rctx context.Context) (func(tx *store.Tx) error, error) {
			rec, err := c.remote.GetSprint(rctx, s.ProjectID, s.ID)
			if err != nil {
				return nil, err
			}
			return func(tx *store.Tx) error {
				tx.PutSprintRecord(rec)
				return nil
			}, nil
		})
	}
	if err != nil {
		return store.SprintRecord{}, err
	}

	v = c.store.View()
	current, _ := v.Sprint(s.ProjectID, s.ID)
	return store.SprintRecord{Sprint: current, TaskIDs: v.Members(s.ProjectID, s.ID)}, nil
}

// UpdateSprint applies the non-nil fields of req to a sprint.
func (c *Coordinator) UpdateSprint(ctx context.Context, projectID types.ProjectID, id types.SprintID, req UpdateSprintRequest) (models.Sprint, error) {
	s, ok := c.store.View().Sprint(projectID, id)
	if !ok {
		rec, err := c.GetSprint(ctx, projectID, id)
		if err != nil {
			return models.Sprint{}, err
		}
		s = rec.Sprint
	}
	setString(&s.Name, req.Name)
	setString(&s.StartDate, req.StartDate)
	setString(&s.EndDate, req.EndDate)
	setString(&s.Status, req.Status)
	s.Name = strings.TrimSpace(s.Name)
	if err := validSprint(s); err != nil {
		return models.Sprint{}, err
	}

	err := c.viaRemote(ctx, "update_sprint", func(rctx context.Context) error {
		return c.remote.UpdateSprint(rctx, s)
	})
	if err != nil && !localOnly(err) {
		return models.Sprint{}, err
	}
	err = c.apply(ctx, func(tx *store.Tx) error {
		if _, ok := tx.Sprint(projectID, id); !ok {
			return apperr.NotFound("sprint", string(id))
		}
		tx.PutSprint(s)
		return nil
	})
	if err != nil {
		return models.Sprint{}, err
	}
	return s, nil
}

// DeleteSprint removes a sprint. Its tasks are kept.
func (c *Coordinator) DeleteSprint(ctx context.Context, projectID types.ProjectID, id types.SprintID) error {
	err := c.viaRemote(ctx, "delete_sprint", func(rctx context.Context) error {
		return c.remote.DeleteSprint(rctx, projectID, id)
	})
	if err != nil && !localOnly(err) && !apperr.IsKind(err, apperr.KindNotFound) {
		return err
	}
	remoteErr := err
	return c.apply(ctx, func(tx *store.Tx) error {
		if _, ok := tx.Sprint(projectID, id); !ok {
			if apperr.IsKind(remoteErr, apperr.KindNotFound) {
				return remoteErr
			}
			return apperr.NotFound("sprint", string(id))
		}
		tx.DeleteSprint(projectID, id)
		return nil
	})
}

// AttachTask adds a task to a sprint. Attaching a task that is already a
// member succeeds without changes.
func (c *Coordinator) AttachTask(ctx context.Context, projectID types.ProjectID, sprintID types.SprintID, taskID types.TaskID) error {
	if err := c.ensureProject(ctx, projectID); err != nil {
		return err
	}
	err := c.check(func(tx *store.Tx) error {
		return relations.Attach(tx, projectID, taskID, sprintID)
	})
	if apperr.IsKind(err, apperr.KindDuplicateAssociation) {
		return nil
	}
	if err != nil {
		return err
	}

	attach := func(tx *store.Tx) error {
		err := relations.Attach(tx, projectID, taskID, sprintID)
		if apperr.IsKind(err, apperr.KindDuplicateAssociation) {
			return nil
		}
		return err
	}

	err = c.viaRemote(ctx, "attach_task", func(rctx context.Context) error {
		return c.remote.AttachTask(rctx, projectID, sprintID, taskID)
	})
	switch {
	case err == nil, localOnly(err):
		return c.apply(ctx, attach)
	case isDuplicate(err):
		return c.reconcile(ctx, "attach_task", attach, func(rctx context.Context) (func(tx *store.Tx) error, error) {
			rec, err := c.remote.GetSprint(rctx, projectID, sprintID)
			if err != nil {
				return nil, err
			}
			return func(tx *store.Tx) error {
				tx.PutSprintRecord(rec)
				return nil
			}, nil
		})
	default:
		return err
	}
}

// DetachTask removes a task from a sprint.
func (c *Coordinator) DetachTask(ctx context.Context, projectID types.ProjectID, sprintID types.SprintID, taskID types.TaskID) error {
	err := c.check(func(tx *store.Tx) error {
		return relations.Detach(tx, projectID, taskID, sprintID)
	})
	if err != nil && !c.RemoteEnabled() {
		return err
	}

	err = c.viaRemote(ctx, "detach_task", func(rctx context.Context) error {
		return c.remote.DetachTask(rctx, projectID, sprintID, taskID)
	})
	if err != nil && !localOnly(err) {
		return err
	}
	return c.apply(ctx, func(tx *store.Tx) error {
		err := relations.Detach(tx, projectID, taskID, sprintID)
		if err != nil && c.RemoteEnabled() {
			// Already gone locally; the remote store was the one to update.
			return nil
		}
		return err
	})
}

// TasksInSprint returns the sorted IDs of a sprint's tasks.
func (c *Coordinator) TasksInSprint(ctx context.Context, projectID types.ProjectID, sprintID types.SprintID) ([]types.TaskID, error) {
	v, err := c.scopeView(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return relations.TasksInSprint(v, projectID, sprintID)
}
