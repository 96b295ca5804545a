package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/thenoetrevino/scope/internal/apperr"
	"github.com/thenoetrevino/scope/internal/idgen"
)

// SequenceRepo allocates identifier sequence numbers.
type SequenceRepo struct {
	db *sql.DB
}

// NextID allocates the next identifier for (prefix, scope). The increment
// and read happen in one statement, so concurrent callers never receive the
// same number. An exhausted sequence is a validation error.
func (r *SequenceRepo) NextID(ctx context.Context, prefix, scope string) (string, error) {
	var value int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO sequences (prefix, scope, value) VALUES (?, ?, 1)
		ON CONFLICT (prefix, scope) DO UPDATE SET value = value + 1
		WHERE value < ?
		RETURNING value`,
		prefix, scope, int64(idgen.MaxSequence),
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperr.Validation("id", fmt.Sprintf("identifier sequence %s is exhausted", prefix))
	}
	if err != nil {
		return "", fmt.Errorf("failed to allocate %s id in scope %q: %w", prefix, scope, err)
	}
	return prefix + strconv.FormatInt(value, 10), nil
}

// bumpSequence raises the stored sequence to at least the number in id, so
// IDs supplied by clients are never handed out again.
func bumpSequence(ctx context.Context, q querier, prefix, scope, id string) error {
	n, ok := idgen.Sequence(prefix, id)
	if !ok {
		return nil
	}
	_, err := q.ExecContext(ctx, `
		INSERT INTO sequences (prefix, scope, value) VALUES (?, ?, ?)
		ON CONFLICT (prefix, scope) DO UPDATE SET value = MAX(value, excluded.value)`,
		prefix, scope, n,
	)
	if err != nil {
		return fmt.Errorf("failed to advance %s sequence: %w", prefix, err)
	}
	return nil
}
