package coordinator

import (
	"context"
	"errors"

	"github.com/thenoetrevino/scope/internal/apperr"
	"github.com/thenoetrevino/scope/internal/store"
	"github.com/thenoetrevino/scope/internal/types"
)

var errDryRun = errors.New("coordinator: dry run")

// check runs fn against a throwaway transaction so business rules are
// enforced before anything is sent to the remote store.
func (c *Coordinator) check(fn func(tx *store.Tx) error) error {
	err := c.store.Write(func(tx *store.Tx) error {
		if err := fn(tx); err != nil {
			return err
		}
		return errDryRun
	})
	if errors.Is(err, errDryRun) {
		return nil
	}
	return err
}

// refreshProject replaces one project's collections with the remote copy.
// A project the remote store no longer knows is removed locally and the
// NotFound error is returned. In local mode it is a no-op.
func (c *Coordinator) refreshProject(ctx context.Context, id types.ProjectID) error {
	var sc store.Scope
	err := c.fetch(ctx, "fetch_scope", func(rctx context.Context) error {
		var err error
		sc, err = c.remote.FetchScope(rctx, id)
		return err
	})
	switch {
	case localOnly(err):
		return nil
	case apperr.IsKind(err, apperr.KindNotFound):
		c.forgetProject(ctx, id)
		return err
	case err != nil:
		return err
	}
	return c.apply(ctx, func(tx *store.Tx) error {
		tx.ReplaceProject(sc)
		return nil
	})
}

// ensureProject makes sure a project is present locally before an operation
// on its scope is validated.
func (c *Coordinator) ensureProject(ctx context.Context, id types.ProjectID) error {
	if err := requireProject(id); err != nil {
		return err
	}
	if _, ok := c.store.View().Project(id); ok {
		return nil
	}
	if err := c.refreshProject(ctx, id); err != nil {
		return err
	}
	if _, ok := c.store.View().Project(id); !ok {
		return apperr.NotFound("project", string(id))
	}
	return nil
}

// scopeView refreshes a project in remote mode and returns the resulting view.
func (c *Coordinator) scopeView(ctx context.Context, id types.ProjectID) (store.View, error) {
	if err := c.ensureProject(ctx, id); err != nil {
		return store.View{}, err
	}
	if c.RemoteEnabled() {
		if err := c.refreshProject(ctx, id); err != nil {
			return store.View{}, err
		}
	}
	return c.store.View(), nil
}

// reconcile adopts the remote copy of a record whose create collided with
// an existing one. If the remote store drops out while fetching it, local
// is applied instead.
func (c *Coordinator) reconcile(ctx context.Context, op string, local func(tx *store.Tx) error, adopt func(ctx context.Context) (func(tx *store.Tx) error, error)) error {
	c.metrics.IncReconcile()
	c.logger.Info("create collided with an existing record, adopting the remote copy", "op", op)

	var put func(tx *store.Tx) error
	err := c.fetch(ctx, op+"_reconcile", func(rctx context.Context) error {
		var err error
		put, err = adopt(rctx)
		return err
	})
	if localOnly(err) {
		return c.apply(ctx, local)
	}
	if err != nil {
		return err
	}
	return c.apply(ctx, put)
}
