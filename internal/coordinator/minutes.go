package coordinator

import (
	"context"
	"strings"

	"github.com/thenoetrevino/scope/internal/apperr"
	"github.com/thenoetrevino/scope/internal/idgen"
	"github.com/thenoetrevino/scope/internal/models"
	"github.com/thenoetrevino/scope/internal/store"
	"github.com/thenoetrevino/scope/internal/types"
)

// ListMinutes returns a project's meeting minutes.
func (c *Coordinator) ListMinutes(ctx context.Context, projectID types.ProjectID) ([]models.Minutes, error) {
	v, err := c.scopeView(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return v.MinutesList(projectID), nil
}

func (c *Coordinator) GetMinutes(ctx context.Context, id types.MinutesID) (models.Minutes, error) {
	var m models.Minutes
	err := c.fetch(ctx, "get_minutes", func(rctx context.Context) error {
		var err error
		m, err = c.remote.GetMinutes(rctx, id)
		return err
	})
	switch {
	case localOnly(err):
	case apperr.IsKind(err, apperr.KindNotFound):
		c.forget(ctx, func(tx *store.Tx) { tx.DeleteMinutes(id) })
		return models.Minutes{}, err
	case err != nil:
		return models.Minutes{}, err
	default:
		if err := c.apply(ctx, func(tx *store.Tx) error {
			tx.PutMinutes(m)
			return nil
		}); err != nil {
			return models.Minutes{}, err
		}
	}

	m, ok := c.store.View().Minutes(id)
	if !ok {
		return models.Minutes{}, apperr.NotFound("minutes", string(id))
	}
	return m, nil
}

func (c *Coordinator) CreateMinutes(ctx context.Context, req CreateMinutesRequest) (models.Minutes, error) {
	m := models.Minutes{
		ID:        req.ID,
		ProjectID: req.ProjectID,
		Title:     strings.TrimSpace(req.Title),
		Date:      req.Date,
		Content:   req.Content,
	}
	if err := validMinutes(m); err != nil {
		return models.Minutes{}, err
	}
	if err := c.ensureProject(ctx, m.ProjectID); err != nil {
		return models.Minutes{}, err
	}
	v := c.store.View()
	if existing, ok := v.Minutes(m.ID); ok && m.ID != "" {
		return existing, nil
	}
	if m.ID == "" {
		id, err := c.allocate(ctx, types.MinutesPrefix, types.GlobalScope, v.MinutesIDs())
		if err != nil {
			return models.Minutes{}, err
		}
		m.ID = types.MinutesID(id)
	}
	m.CreatedAt = c.now()

	put := func(tx *store.Tx) error {
		if m.ID == "" {
			id, err := idgen.Next(types.MinutesPrefix, tx.MinutesIDs())
			if err != nil {
				return err
			}
			m.ID = types.MinutesID(id)
		}
		if existing, ok := tx.Minutes(m.ID); ok {
			m = existing
			return nil
		}
		tx.PutMinutes(m)
		return nil
	}

	err := c.viaRemote(ctx, "create_minutes", func(rctx context.Context) error {
		return c.remote.CreateMinutes(rctx, m)
	})
	switch {
	case err == nil, localOnly(err):
		err = c.apply(ctx, put)
	case isDuplicate(err):
		err = c.reconcile(ctx, "create_minutes", put, func(rctx context.Context) (func(tx *store.Tx) error, error) {
			remote, err := c.remote.GetMinutes(rctx, m.ID)
			if err != nil {
				return nil, err
			}
			return func(tx *store.Tx) error {
				tx.PutMinutes(remote)
				return nil
			}, nil
		})
	}
	if err != nil {
		return models.Minutes{}, err
	}
	current, _ := c.store.View().Minutes(m.ID)
	return current, nil
}

func (c *Coordinator) UpdateMinutes(ctx context.Context, id types.MinutesID, req UpdateMinutesRequest) (models.Minutes, error) {
	m, ok := c.store.View().Minutes(id)
	if !ok {
		var err error
		if m, err = c.GetMinutes(ctx, id); err != nil {
			return models.Minutes{}, err
		}
	}
	setString(&m.Title, req.Title)
	setString(&m.Date, req.Date)
	setString(&m.Content, req.Content)
	m.Title = strings.TrimSpace(m.Title)
	if err := validMinutes(m); err != nil {
		return models.Minutes{}, err
	}

	err := c.viaRemote(ctx, "update_minutes", func(rctx context.Context) error {
		return c.remote.UpdateMinutes(rctx, m)
	})
	if err != nil && !localOnly(err) {
		return models.Minutes{}, err
	}
	err = c.apply(ctx, func(tx *store.Tx) error {
		if _, ok := tx.Minutes(id); !ok {
			return apperr.NotFound("minutes", string(id))
		}
		tx.PutMinutes(m)
		return nil
	})
	if err != nil {
		return models.Minutes{}, err
	}
	return m, nil
}

func (c *Coordinator) DeleteMinutes(ctx context.Context, id types.MinutesID) error {
	err := c.viaRemote(ctx, "delete_minutes", func(rctx context.Context) error {
		return c.remote.DeleteMinutes(rctx, id)
	})
	if err != nil && !localOnly(err) && !apperr.IsKind(err, apperr.KindNotFound) {
		return err
	}
	remoteErr := err
	return c.apply(ctx, func(tx *store.Tx) error {
		if _, ok := tx.Minutes(id); !ok {
			if apperr.IsKind(remoteErr, apperr.KindNotFound) {
				return remoteErr
			}
			return apperr.NotFound("minutes", string(id))
		}
		tx.DeleteMinutes(id)
		return nil
	})
}
