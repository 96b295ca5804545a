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

// ListProjects returns every project. In remote mode the local list is
// replaced by the remote one first.
func (c *Coordinator) ListProjects(ctx context.Context) ([]models.Project, error) {
	var remote []models.Project
	err := c.fetch(ctx, "list_projects", func(rctx context.Context) error {
		var err error
		remote, err = c.remote.ListProjects(rctx)
		return err
	})
	switch {
	case localOnly(err):
	case err != nil:
		return nil, err
	default:
		err = c.apply(ctx, func(tx *store.Tx) error {
			keep := make(map[types.ProjectID]bool, len(remote))
			for _, p := range remote {
				keep[p.ID] = true
				tx.PutProject(p)
			}
			for _, p := range tx.Projects() {
				if !keep[p.ID] {
					tx.DeleteProject(p.ID)
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return c.store.View().Projects(), nil
}

// GetProject returns a project, refreshed from the remote store when it is
// reachable.
func (c *Coordinator) GetProject(ctx context.Context, id types.ProjectID) (models.Project, error) {
	var p models.Project
	err := c.fetch(ctx, "get_project", func(rctx context.Context) error {
		var err error
		p, err = c.remote.GetProject(rctx, id)
		return err
	})
	switch {
	case localOnly(err):
	case apperr.IsKind(err, apperr.KindNotFound):
		c.forgetProject(ctx, id)
		return models.Project{}, err
	case err != nil:
		return models.Project{}, err
	default:
		if err := c.apply(ctx, func(tx *store.Tx) error {
			tx.PutProject(p)
			return nil
		}); err != nil {
			return models.Project{}, err
		}
	}

	p, ok := c.store.View().Project(id)
	if !ok {
		return models.Project{}, apperr.NotFound("project", string(id))
	}
	return p, nil
}

// CreateProject creates a project together with its four default columns.
// Creating an ID that already exists returns the existing project.
func (c *Coordinator) CreateProject(ctx context.Context, req CreateProjectRequest) (models.Project, error) {
	p := models.Project{
		ID:          req.ID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	}
	if err := requireText("name", p.Name); err != nil {
		return models.Project{}, err
	}
	if existing, ok := c.store.View().Project(p.ID); ok && p.ID != "" {
		return existing, nil
	}
	if p.ID == "" {
		id, err := c.allocate(ctx, types.ProjectPrefix, types.GlobalScope, c.store.View().ProjectIDs())
		if err != nil {
			return models.Project{}, err
		}
		p.ID = types.ProjectID(id)
	}
	p.CreatedAt = c.now()

	local := func(tx *store.Tx) error {
		if p.ID == "" {
			id, err := idgen.Next(types.ProjectPrefix, tx.ProjectIDs())
			if err != nil {
				return err
			}
			p.ID = types.ProjectID(id)
		}
		if existing, ok := tx.Project(p.ID); ok {
			p = existing
			return nil
		}
		tx.PutProject(p)
		for _, col := range models.DefaultColumns(p.ID) {
			tx.PutColumn(col)
		}
		return nil
	}

	err := c.viaRemote(ctx, "create_project", func(rctx context.Context) error {
		return c.remote.CreateProject(rctx, p)
	})
	switch {
	case err == nil, localOnly(err):
		if err := c.apply(ctx, local); err != nil {
			return models.Project{}, err
		}
		return p, nil
	case isDuplicate(err):
		err = c.reconcile(ctx, "create_project", local, func(rctx context.Context) (func(tx *store.Tx) error, error) {
			sc, err := c.remote.FetchScope(rctx, p.ID)
			if err != nil {
				return nil, err
			}
			return func(tx *store.Tx) error {
				tx.ReplaceProject(sc)
				return nil
			}, nil
		})
		if err != nil {
			return models.Project{}, err
		}
		current, _ := c.store.View().Project(p.ID)
		return current, nil
	default:
		return models.Project{}, err
	}
}

// UpdateProject changes a project's name or description.
func (c *Coordinator) UpdateProject(ctx context.Context, id types.ProjectID, req UpdateProjectRequest) (models.Project, error) {
	if err := c.ensureProject(ctx, id); err != nil {
		return models.Project{}, err
	}
	p, _ := c.store.View().Project(id)
	setString(&p.Name, req.Name)
	setString(&p.Description, req.Description)
	p.Name = strings.TrimSpace(p.Name)
	if err := requireText("name", p.Name); err != nil {
		return models.Project{}, err
	}

	err := c.viaRemote(ctx, "update_project", func(rctx context.Context) error {
		return c.remote.UpdateProject(rctx, p)
	})
	if err != nil && !localOnly(err) {
		return models.Project{}, err
	}
	err = c.apply(ctx, func(tx *store.Tx) error {
		if _, ok := tx.Project(id); !ok {
			return apperr.NotFound("project", string(id))
		}
		tx.PutProject(p)
		return nil
	})
	if err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// DeleteProject removes a project and everything in its scope.
func (c *Coordinator) DeleteProject(ctx context.Context, id types.ProjectID) error {
	if err := requireProject(id); err != nil {
		return err
	}
	err := c.viaRemote(ctx, "delete_project", func(rctx context.Context) error {
		return c.remote.DeleteProject(rctx, id)
	})
	if err != nil && !localOnly(err) && !apperr.IsKind(err, apperr.KindNotFound) {
		return err
	}
	remoteMissing := apperr.IsKind(err, apperr.KindNotFound)

	return c.apply(ctx, func(tx *store.Tx) error {
		if _, ok := tx.Project(id); !ok {
			if remoteMissing {
				return err
			}
			return apperr.NotFound("project", string(id))
		}
		tx.DeleteProject(id)
		return nil
	})
}

// forgetProject drops a project the remote store no longer has.
func (c *Coordinator) forgetProject(ctx context.Context, id types.ProjectID) {
	if _, ok := c.store.View().Project(id); !ok {
		return
	}
	if err := c.apply(ctx, func(tx *store.Tx) error {
		tx.DeleteProject(id)
		return nil
	}); err != nil {
		c.logger.Warn("failed to drop project removed remotely", "project_id", id, "error", err)
	}
}
