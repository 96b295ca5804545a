package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/scope/internal/apperr"
)

// Repository is the reference server's persistence layer. It composes the
// per-entity repositories by embedding, so every method is reachable from
// one value.
type Repository struct {
	*ProjectRepo
	*TaskRepo
	*SprintRepo
	*ColumnRepo
	*RiskRepo
	*MinutesRepo
	*SequenceRepo
	*UserRepo

	db *sql.DB
}

// NewRepository creates a Repository over db. The schema must already exist
// (see InitServerDB).
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		ProjectRepo:  &ProjectRepo{db: db},
		TaskRepo:     &TaskRepo{db: db},
		SprintRepo:   &SprintRepo{db: db},
		ColumnRepo:   &ColumnRepo{db: db},
		RiskRepo:     &RiskRepo{db: db},
		MinutesRepo:  &MinutesRepo{db: db},
		SequenceRepo: &SequenceRepo{db: db},
		UserRepo:     &UserRepo{db: db},
		db:           db,
	}
}

// Ping checks the database connection.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

// classifyWrite maps constraint failures of an insert to apperr kinds.
func classifyWrite(err error, entity, id string) error {
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return apperr.Newf(apperr.KindDuplicateKey, "%s %s already exists", entity, id)
	case isForeignKeyViolation(err):
		return apperr.Wrap(apperr.KindNotFound, err, "referenced project does not exist")
	default:
		return fmt.Errorf("failed to write %s %s: %w", entity, id, err)
	}
}

// classifyRead maps sql.ErrNoRows to a NotFound error.
func classifyRead(err error, entity, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(entity, id)
	}
	if err != nil {
		return fmt.Errorf("failed to get %s %s: %w", entity, id, err)
	}
	return nil
}

// expectAffected returns NotFound when an update or delete touched no row.
func expectAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return apperr.NotFound(entity, id)
	}
	return nil
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		slogError("failed to close rows", err)
	}
}

func slogError(msg string, err error) {
	slog.Error(msg, "error", err)
}

// collect scans every row with scan.
func collect[T any](rows *sql.Rows, scan func(scanner) (T, error)) ([]T, error) {
	defer closeRows(rows)
	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
