package cache

import (
	"context"
	"database/sql"
	"errors"

	"github.com/thenoetrevino/scope/internal/database"
)

// SQLiteBackend keeps the two keys in a key/value table.
type SQLiteBackend struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the cache database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteBackend, error) {
	db, err := database.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	b, err := NewSQLiteBackend(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return b, nil
}

// NewSQLiteBackend uses an already opened database.
func NewSQLiteBackend(ctx context.Context, db *sql.DB) (*SQLiteBackend, error) {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL
		)
	`)
	if err != nil {
		return nil, err
	}
	return &SQLiteBackend{db: db}, nil
}

func (b *SQLiteBackend) Load(ctx context.Context) (Record, bool, error) {
	var data []byte
	err := b.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", DataKey).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}

	var stamp string
	err = b.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", LastModifiedKey).Scan(&stamp)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, err
	}
	rec := Record{Data: data}
	if stamp != "" {
		if rec.LastModified, err = parseStamp(stamp); err != nil {
			return Record{}, false, err
		}
	}
	return rec, true, nil
}

func (b *SQLiteBackend) Save(ctx context.Context, rec Record) error {
	return database.WithTx(ctx, b.db, func(tx *sql.Tx) error {
		const upsert = `INSERT INTO kv (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`
		if _, err := tx.ExecContext(ctx, upsert, DataKey, rec.Data); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, upsert, LastModifiedKey, formatStamp(rec.LastModified))
		return err
	})
}

func (b *SQLiteBackend) Clear(ctx context.Context) error {
	_, err := b.db.ExecContext(ctx, "DELETE FROM kv WHERE key IN (?, ?)", DataKey, LastModifiedKey)
	return err
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
