// Package coordinator routes every operation to the remote authoritative
// store or the local cache and keeps the entity store consistent with
// whichever one served it.
//
// The coordinator starts in remote mode when a remote store is configured.
// A failed health check or any connectivity failure switches it to local mode for
// the rest of the session; it never switches back on its own.
package coordinator

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/thenoetrevino/scope/internal/apperr"
	"github.com/thenoetrevino/scope/internal/cache"
	"github.com/thenoetrevino/scope/internal/idgen"
	"github.com/thenoetrevino/scope/internal/metrics"
	"github.com/thenoetrevino/scope/internal/models"
	"github.com/thenoetrevino/scope/internal/store"
)

// errLocal tells an operation to continue on the local path.
var errLocal = errors.New("coordinator: serve locally")

// NoticeBuffer is the capacity of the notice channel. Notices are dropped
// when nobody drains it.
const NoticeBuffer = 16

// Notice is a non-fatal event the caller may show to the user.
type Notice struct {
	Op      string
	Message string
	Err     error
	At      time.Time
}

// Coordinator is the sync layer's entry point.
type Coordinator struct {
	store   *store.Store
	cache   *cache.Cache
	remote  Remote
	ids     *idgen.Generator
	session SessionResetter
	logger  *slog.Logger
	metrics *metrics.Sync
	nowFn   func() time.Time

	remoteEnabled atomic.Bool
	notices       chan Notice
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithRemote attaches the authoritative store. Without it the coordinator
// is local-only.
func WithRemote(r Remote) Option {
	return func(c *Coordinator) { c.remote = r }
}

// WithCache attaches the durable local cache.
func WithCache(ch *cache.Cache) Option {
	return func(c *Coordinator) { c.cache = ch }
}

// WithSession sets the hook invoked when the remote store rejects the session.
func WithSession(s SessionResetter) Option {
	return func(c *Coordinator) { c.session = s }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

// WithMetrics sets the collectors.
func WithMetrics(m *metrics.Sync) Option {
	return func(c *Coordinator) { c.metrics = m }
}

// WithClock overrides the time source used for createdAt and progress.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.nowFn = now }
}

// New creates a coordinator over st.
func New(st *store.Store, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:   st,
		logger:  slog.Default(),
		nowFn:   time.Now,
		notices: make(chan Notice, NoticeBuffer),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.remote != nil {
		c.ids = idgen.New(c.remote)
	} else {
		c.ids = idgen.Local()
	}
	c.remoteEnabled.Store(c.remote != nil)
	c.metrics.SetRemoteEnabled(c.remote != nil)
	return c
}

// Store returns the entity store.
func (c *Coordinator) Store() *store.Store {
	return c.store
}

// Notices delivers fallback notices. Reading is optional.
func (c *Coordinator) Notices() <-chan Notice {
	return c.notices
}

// RemoteEnabled reports whether mutations are routed to the remote store.
func (c *Coordinator) RemoteEnabled() bool {
	return c.remoteEnabled.Load()
}

// Open loads the local cache into the store, then checks the remote store health.
func (c *Coordinator) Open(ctx context.Context) error {
	if c.cache != nil {
		snap, lastModified, found, err := c.cache.Load(ctx)
		switch {
		case errors.Is(err, cache.ErrCorrupt):
			c.logger.Warn("local cache is corrupt, starting empty", "error", err)
		case err != nil:
			return err
		case found:
			c.store.Replace(snap)
			c.logger.Info("local cache loaded", "last_modified", lastModified, "projects", len(snap.Projects))
		}
	}
	c.CheckHealth(ctx)
	return nil
}

// CheckHealth checks the remote store. A failure switches to local mode; success
// never switches back.
func (c *Coordinator) CheckHealth(ctx context.Context) bool {
	if c.remote == nil {
		return false
	}
	err := c.remote.Health(ctx)
	c.metrics.ObserveRemote("health", err)
	if err != nil {
		c.fallback("health", err)
		return false
	}
	return true
}

func (c *Coordinator) now() time.Time {
	return c.nowFn().UTC()
}

// Today returns the current date in YYYY-MM-DD form.
func (c *Coordinator) Today() string {
	return c.now().Format(models.DateLayout)
}

// fallback switches to local mode once and emits a notice.
func (c *Coordinator) fallback(op string, err error) {
	if !c.remoteEnabled.CompareAndSwap(true, false) {
		return
	}
	c.metrics.IncFallback()
	c.metrics.SetRemoteEnabled(false)
	c.logger.Warn("remote store unreachable, continuing with local cache", "op", op, "error", err)
	c.notify(Notice{
		Op:      op,
		Message: "Remote store unreachable; working offline with the local cache",
		Err:     err,
	})
}

func (c *Coordinator) notify(n Notice) {
	n.At = c.now()
	select {
	case c.notices <- n:
	default:
	}
}

func (c *Coordinator) resetSession(op string) {
	c.metrics.IncSessionReset()
	c.logger.Warn("remote store rejected the session", "op", op)
	if c.session == nil {
		return
	}
	if err := c.session.Reset(); err != nil {
		c.logger.Error("failed to reset session", "error", err)
	}
}

// viaRemote runs call against the remote store when remote mode is on.
// It returns errLocal when the operation must be served locally, nil on
// success and the classified error otherwise. The call is detached from the
// caller's cancellation: an issued mutation runs to completion.
func (c *Coordinator) viaRemote(ctx context.Context, op string, call func(context.Context) error) error {
	if !c.RemoteEnabled() {
		return errLocal
	}
	err := call(context.WithoutCancel(ctx))
	c.metrics.ObserveRemote(op, err)
	switch {
	case err == nil:
		return nil
	case apperr.IsKind(err, apperr.KindConnectivity):
		c.fallback(op, err)
		return errLocal
	case apperr.IsKind(err, apperr.KindAuth):
		c.resetSession(op)
		return err
	default:
		return err
	}
}

// fetch runs a remote read. Reads keep the caller's context.
func (c *Coordinator) fetch(ctx context.Context, op string, call func(context.Context) error) error {
	if !c.RemoteEnabled() {
		return errLocal
	}
	err := call(ctx)
	c.metrics.ObserveRemote(op, err)
	switch {
	case err == nil:
		return nil
	case apperr.IsKind(err, apperr.KindConnectivity):
		c.fallback(op, err)
		return errLocal
	case apperr.IsKind(err, apperr.KindAuth):
		c.resetSession(op)
		return err
	default:
		return err
	}
}

// apply commits fn to the store and persists the new snapshot. In local
// mode a failed persist aborts the write; in remote mode the remote store
// already holds the change, so a persist failure is only logged.
func (c *Coordinator) apply(ctx context.Context, fn func(tx *store.Tx) error) error {
	local := !c.RemoteEnabled()
	err := c.store.Write(func(tx *store.Tx) error {
		if err := fn(tx); err != nil {
			return err
		}
		if c.cache == nil {
			return nil
		}
		if _, err := c.cache.Save(context.WithoutCancel(ctx), tx.Snapshot()); err != nil {
			if local {
				return err
			}
			c.logger.Warn("failed to update local cache", "error", err)
		}
		return nil
	})
	if err == nil && local {
		c.metrics.IncLocalWrite()
	}
	return err
}

// allocate asks the remote allocator for an ID in remote mode. It returns ""
// when the ID has to be derived locally inside the write transaction.
func (c *Coordinator) allocate(ctx context.Context, prefix, scope string, existing []string) (string, error) {
	var id string
	err := c.viaRemote(ctx, "generate_id", func(rctx context.Context) error {
		var err error
		id, err = c.ids.Generate(rctx, prefix, existing, scope)
		return err
	})
	if errors.Is(err, errLocal) {
		return "", nil
	}
	return id, err
}

// localOnly reports whether err means "continue on the local path".
func localOnly(err error) bool {
	return errors.Is(err, errLocal)
}

func isDuplicate(err error) bool {
	return apperr.IsKind(err, apperr.KindDuplicateKey) || apperr.IsKind(err, apperr.KindDuplicateAssociation)
}
