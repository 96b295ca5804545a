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

// ListRisks returns a project's risk register.
func (c *Coordinator) ListRisks(ctx context.Context, projectID types.ProjectID) ([]models.Risk, error) {
	v, err := c.scopeView(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return v.Risks(projectID), nil
}

// GetRisk returns a risk.
func (c *Coordinator) GetRisk(ctx context.Context, id types.RiskID) (models.Risk, error) {
	var r models.Risk
	err := c.fetch(ctx, "get_risk", func(rctx context.Context) error {
		var err error
		r, err = c.remote.GetRisk(rctx, id)
		return err
	})
	switch {
	case localOnly(err):
	case apperr.IsKind(err, apperr.KindNotFound):
		c.forget(ctx, func(tx *store.Tx) { tx.DeleteRisk(id) })
		return models.Risk{}, err
	case err != nil:
		return models.Risk{}, err
	default:
		if err := c.apply(ctx, func(tx *store.Tx) error {
			tx.PutRisk(r)
			return nil
		}); err != nil {
			return models.Risk{}, err
		}
	}

	r, ok := c.store.View().Risk(id)
	if !ok {
		return models.Risk{}, apperr.NotFound("risk", string(id))
	}
	return r, nil
}

// CreateRisk adds a risk. Risk factor and appetite are derived from impact
// and probability.
func (c *Coordinator) CreateRisk(ctx context.Context, req CreateRiskRequest) (models.Risk, error) {
	r := models.Risk{
		ID:          req.ID,
		ProjectID:   req.ProjectID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Impact:      req.Impact,
		Probability: req.Probability,
		Mitigation:  req.Mitigation,
		Strategy:    orDefault(req.Strategy, models.DefaultRiskStrategy),
		Status:      orDefault(req.Status, models.DefaultRiskStatus),
	}
	r.Recalculate()
	if err := validRisk(r); err != nil {
		return models.Risk{}, err
	}
	if err := c.ensureProject(ctx, r.ProjectID); err != nil {
		return models.Risk{}, err
	}
	v := c.store.View()
	if existing, ok := v.Risk(r.ID); ok && r.ID != "" {
		return existing, nil
	}
	if r.ID == "" {
		id, err := c.allocate(ctx, types.RiskPrefix, types.GlobalScope, v.RiskIDs())
		if err != nil {
			return models.Risk{}, err
		}
		r.ID = types.RiskID(id)
	}
	r.CreatedAt = c.now()

	put := func(tx *store.Tx) error {
		if r.ID == "" {
			id, err := idgen.Next(types.RiskPrefix, tx.RiskIDs())
			if err != nil {
				return err
			}
			r.ID = types.RiskID(id)
		}
		if existing, ok := tx.Risk(r.ID); ok {
			r = existing
			return nil
		}
		tx.PutRisk(r)
		return nil
	}

	err := c.viaRemote(ctx, "create_risk", func(rctx context.Context) error {
		return c.remote.CreateRisk(rctx, r)
	})
	switch {
	case err == nil, localOnly(err):
		err = c.apply(ctx, put)
	case isDuplicate(err):
		err = c.reconcile(ctx, "create_risk", put, func(rctx context.Context) (func(tx *store.Tx) error, error) {
			remote, err := c.remote.GetRisk(rctx, r.ID)
			if err != nil {
				return nil, err
			}
			return func(tx *store.Tx) error {
				tx.PutRisk(remote)
				return nil
			}, nil
		})
	}
	if err != nil {
		return models.Risk{}, err
	}
	current, _ := c.store.View().Risk(r.ID)
	return current, nil
}

// UpdateRisk applies the non-nil fields of req to a risk.
func (c *Coordinator) UpdateRisk(ctx context.Context, id types.RiskID, req UpdateRiskRequest) (models.Risk, error) {
	r, ok := c.store.View().Risk(id)
	if !ok {
		var err error
		if r, err = c.GetRisk(ctx, id); err != nil {
			return models.Risk{}, err
		}
	}
	setString(&r.Name, req.Name)
	setString(&r.Description, req.Description)
	setString(&r.Mitigation, req.Mitigation)
	setString(&r.Strategy, req.Strategy)
	setString(&r.Status, req.Status)
	if req.Impact != nil {
		r.Impact = *req.Impact
	}
	if req.Probability != nil {
		r.Probability = *req.Probability
	}
	r.Name = strings.TrimSpace(r.Name)
	r.Recalculate()
	if err := validRisk(r); err != nil {
		return models.Risk{}, err
	}

	err := c.viaRemote(ctx, "update_risk", func(rctx context.Context) error {
		return c.remote.UpdateRisk(rctx, r)
	})
	if err != nil && !localOnly(err) {
		return models.Risk{}, err
	}
	err = c.apply(ctx, func(tx *store.Tx) error {
		if _, ok := tx.Risk(id); !ok {
			return apperr.NotFound("risk", string(id))
		}
		tx.PutRisk(r)
		return nil
	})
	if err != nil {
		return models.Risk{}, err
	}
	return r, nil
}

// DeleteRisk removes a risk.
func (c *Coordinator) DeleteRisk(ctx context.Context, id types.RiskID) error {
	err := c.viaRemote(ctx, "delete_risk", func(rctx context.Context) error {
		return c.remote.DeleteRisk(rctx, id)
	})
	if err != nil && !localOnly(err) && !apperr.IsKind(err, apperr.KindNotFound) {
		return err
	}
	remoteErr := err
	return c.apply(ctx, func(tx *store.Tx) error {
		if _, ok := tx.Risk(id); !ok {
			if apperr.IsKind(remoteErr, apperr.KindNotFound) {
				return remoteErr
			}
			return apperr.NotFound("risk", string(id))
		}
		tx.DeleteRisk(id)
		return nil
	})
}

// RiskStats summarizes a project's risk register. The remote store computes
// it when reachable.
func (c *Coordinator) RiskStats(ctx context.Context, projectID types.ProjectID) (models.RiskStats, error) {
	if err := c.ensureProject(ctx, projectID); err != nil {
		return models.RiskStats{}, err
	}
	var stats models.RiskStats
	err := c.fetch(ctx, "risk_stats", func(rctx context.Context) error {
		var err error
		stats, err = c.remote.RiskStats(rctx, projectID)
		return err
	})
	switch {
	case localOnly(err):
		return models.ComputeRiskStats(c.store.View().Risks(projectID)), nil
	case err != nil:
		return models.RiskStats{}, err
	}
	return stats, nil
}
