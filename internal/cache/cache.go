// Package cache persists the whole entity store as one serialized blob with a
// last-modified timestamp, the durable half of local mode.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bytedance/sonic"

	"github.com/thenoetrevino/scope/internal/store"
)

// Fixed storage keys.
const (
	DataKey         = "projectScopeData"
	LastModifiedKey = "projectScopeLastModified"
)

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// ErrCorrupt is returned when the stored blob cannot be decoded.
var ErrCorrupt = errors.New("cache: stored data is corrupt")

// Record is what a backend stores under the two keys.
type Record struct {
	Data         []byte
	LastModified time.Time
}

// Backend stores a Record. Save must write both keys atomically.
type Backend interface {
	Load(ctx context.Context) (Record, bool, error)
	Save(ctx context.Context, rec Record) error
	Clear(ctx context.Context) error
	Close() error
}

// Cache encodes store snapshots onto a Backend.
type Cache struct {
	backend Backend
	nowFn   func() time.Time
	logger  *slog.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the time source for last-modified stamps.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.nowFn = now }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) { c.logger = logger }
}

// New wraps a backend.
func New(backend Backend, opts ...Option) *Cache {
	c := &Cache{
		backend: backend,
		nowFn:   time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load returns the persisted snapshot. found is false when nothing was saved.
func (c *Cache) Load(ctx context.Context) (snap store.Snapshot, lastModified time.Time, found bool, err error) {
	rec, found, err := c.backend.Load(ctx)
	if err != nil || !found {
		return store.EmptySnapshot(), time.Time{}, found, err
	}

	snap = store.EmptySnapshot()
	if err := sonic.ConfigStd.Unmarshal(rec.Data, &snap); err != nil {
		return store.EmptySnapshot(), time.Time{}, false, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	fillNil(&snap)
	return snap, rec.LastModified, true, nil
}

// Save persists snap and stamps the current time, which it returns.
func (c *Cache) Save(ctx context.Context, snap store.Snapshot) (time.Time, error) {
	data, err := sonic.ConfigStd.Marshal(snap)
	if err != nil {
		return time.Time{}, fmt.Errorf("encode snapshot: %w", err)
	}
	now := c.nowFn().UTC().Truncate(time.Millisecond)
	if err := c.backend.Save(ctx, Record{Data: data, LastModified: now}); err != nil {
		return time.Time{}, fmt.Errorf("save cache: %w", err)
	}
	c.logger.Debug("cache saved", "bytes", len(data), "last_modified", now)
	return now, nil
}

// LastModified returns the stored timestamp, zero if nothing was saved.
func (c *Cache) LastModified(ctx context.Context) (time.Time, error) {
	rec, found, err := c.backend.Load(ctx)
	if err != nil || !found {
		return time.Time{}, err
	}
	return rec.LastModified, nil
}

// Clear removes both keys.
func (c *Cache) Clear(ctx context.Context) error {
	return c.backend.Clear(ctx)
}

// Close releases the backend.
func (c *Cache) Close() error {
	return c.backend.Close()
}

func fillNil(s *store.Snapshot) {
	empty := store.EmptySnapshot()
	if s.Projects == nil {
		s.Projects = empty.Projects
	}
	if s.Tasks == nil {
		s.Tasks = empty.Tasks
	}
	if s.Sprints == nil {
		s.Sprints = empty.Sprints
	}
	if s.Risks == nil {
		s.Risks = empty.Risks
	}
	if s.Minutes == nil {
		s.Minutes = empty.Minutes
	}
	if s.Columns == nil {
		s.Columns = empty.Columns
	}
}

func formatStamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseStamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad %s: %v", ErrCorrupt, LastModifiedKey, err)
	}
	return t.UTC(), nil
}
