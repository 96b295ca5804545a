package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/scope/internal/models"
	"github.com/thenoetrevino/scope/internal/types"
)

// RiskRepo handles the risk register. Risk factor and appetite are not
// stored; they are derived on every read.
type RiskRepo struct {
	db *sql.DB
}

const riskColumns = `id, project_id, name, description, impact, probability, mitigation, strategy, status, created_at`

func scanRisk(s scanner) (models.Risk, error) {
	var r models.Risk
	var created string
	err := s.Scan(&r.ID, &r.ProjectID, &r.Name, &r.Description, &r.Impact, &r.Probability,
		&r.Mitigation, &r.Strategy, &r.Status, &created)
	if err != nil {
		return models.Risk{}, err
	}
	r.CreatedAt = parseTime(created)
	r.Recalculate()
	return r, nil
}

func (r *RiskRepo) CreateRisk(ctx context.Context, risk models.Risk) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO risks (`+riskColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			risk.ID, risk.ProjectID, risk.Name, risk.Description, risk.Impact, risk.Probability,
			risk.Mitigation, risk.Strategy, risk.Status, formatTime(risk.CreatedAt),
		)
		if err != nil {
			return classifyWrite(err, "risk", string(risk.ID))
		}
		return bumpSequence(ctx, tx, types.RiskPrefix, types.GlobalScope, string(risk.ID))
	})
}

func (r *RiskRepo) GetRisk(ctx context.Context, id types.RiskID) (models.Risk, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+riskColumns+` FROM risks WHERE id = ?`, id)
	risk, err := scanRisk(row)
	if err != nil {
		return models.Risk{}, classifyRead(err, "risk", string(id))
	}
	return risk, nil
}

// ListRisks returns a project's risks, or every risk when projectID is empty.
func (r *RiskRepo) ListRisks(ctx context.Context, projectID types.ProjectID) ([]models.Risk, error) {
	query := `SELECT ` + riskColumns + ` FROM risks`
	args := []any{}
	if projectID != "" {
		query += ` WHERE project_id = ?`
		args = append(args, projectID)
	}
	rows, err := r.db.QueryContext(ctx, query+` ORDER BY created_at, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query risks: %w", err)
	}
	return collect(rows, scanRisk)
}

func (r *RiskRepo) UpdateRisk(ctx context.Context, risk models.Risk) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE risks SET name = ?, description = ?, impact = ?, probability = ?,
			mitigation = ?, strategy = ?, status = ?
		WHERE id = ?`,
		risk.Name, risk.Description, risk.Impact, risk.Probability,
		risk.Mitigation, risk.Strategy, risk.Status, risk.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update risk %s: %w", risk.ID, err)
	}
	return expectAffected(res, "risk", string(risk.ID))
}

func (r *RiskRepo) DeleteRisk(ctx context.Context, id types.RiskID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM risks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete risk %s: %w", id, err)
	}
	return expectAffected(res, "risk", string(id))
}

// RiskStats summarizes a project's risk register.
func (r *RiskRepo) RiskStats(ctx context.Context, projectID types.ProjectID) (models.RiskStats, error) {
	risks, err := r.ListRisks(ctx, projectID)
	if err != nil {
		return models.RiskStats{}, err
	}
	return models.ComputeRiskStats(risks), nil
}
