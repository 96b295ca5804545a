// Package app wires the configured cache, remote client and coordinator
// into one container for the CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/thenoetrevino/scope/internal/apperr"
	"github.com/thenoetrevino/scope/internal/cache"
	"github.com/thenoetrevino/scope/internal/config"
	"github.com/thenoetrevino/scope/internal/coordinator"
	"github.com/thenoetrevino/scope/internal/metrics"
	"github.com/thenoetrevino/scope/internal/remote"
	"github.com/thenoetrevino/scope/internal/store"
)

// ErrNoRemote is returned by session operations when no remote store is configured.
var ErrNoRemote = errors.New("no remote store configured")

// App holds the sync layer and the resources it owns.
type App struct {
	Config      *config.Config
	Coordinator *coordinator.Coordinator
	Metrics     *metrics.Sync
	Registry    *prometheus.Registry

	remote  *remote.Client
	session *remote.FileSession
	cache   *cache.Cache
	logger  *slog.Logger
}

// New builds the container from cfg, loads the local cache and checks the
// remote store.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	ac := appConfig{logger: slog.Default(), nowFn: time.Now}
	for _, opt := range opts {
		opt(&ac)
	}
	if ac.registry == nil {
		ac.registry = prometheus.NewRegistry()
	}

	backend := ac.backend
	if backend == nil {
		var err error
		backend, err = cache.OpenBackend(ctx, cache.Settings{
			Backend:     cfg.Cache.Backend,
			SQLitePath:  cfg.Cache.Path,
			RedisURL:    cfg.Cache.RedisURL,
			RedisPrefix: cfg.Cache.RedisPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("open local cache: %w", err)
		}
	}

	a := &App{
		Config:   cfg,
		Metrics:  metrics.NewSync(ac.registry),
		Registry: ac.registry,
		cache:    cache.New(backend, cache.WithLogger(ac.logger), cache.WithClock(ac.nowFn)),
		logger:   ac.logger,
	}

	coordOpts := []coordinator.Option{
		coordinator.WithCache(a.cache),
		coordinator.WithLogger(ac.logger),
		coordinator.WithMetrics(a.Metrics),
		coordinator.WithClock(ac.nowFn),
	}
	if cfg.RemoteEnabled() {
		a.session = remote.NewFileSession(cfg.Remote.SessionFile)
		clientOpts := []remote.Option{
			remote.WithSession(a.session),
			remote.WithLogger(ac.logger),
		}
		if ac.httpClient != nil {
			clientOpts = append(clientOpts, remote.WithHTTPClient(ac.httpClient))
		} else {
			clientOpts = append(clientOpts, remote.WithTimeout(cfg.Remote.Timeout))
		}
		a.remote = remote.New(cfg.Remote.URL, clientOpts...)
		coordOpts = append(coordOpts, coordinator.WithRemote(a.remote), coordinator.WithSession(a.session))
	}

	a.Coordinator = coordinator.New(store.New(store.WithClock(ac.nowFn)), coordOpts...)
	if err := a.Coordinator.Open(ctx); err != nil {
		_ = a.cache.Close()
		return nil, fmt.Errorf("open coordinator: %w", err)
	}
	return a, nil
}

// Remote returns the remote client, or nil in local-only mode.
func (a *App) Remote() *remote.Client {
	return a.remote
}

// Login exchanges credentials for a token and stores it in the session file.
func (a *App) Login(ctx context.Context, username, password string) (remote.User, error) {
	if a.remote == nil {
		return remote.User{}, ErrNoRemote
	}
	resp, err := a.remote.Login(ctx, username, password)
	if err != nil {
		return remote.User{}, err
	}
	if resp.Token == "" {
		return remote.User{}, apperr.New(apperr.KindAuth, "server returned an empty token")
	}
	if err := a.session.Save(resp.Token); err != nil {
		return remote.User{}, fmt.Errorf("save session: %w", err)
	}
	a.logger.Info("logged in", "user", resp.User.Username)
	return resp.User, nil
}

// Logout forgets the stored token.
func (a *App) Logout() error {
	if a.session == nil {
		return ErrNoRemote
	}
	return a.session.Reset()
}

// WhoAmI returns the user the stored token belongs to.
func (a *App) WhoAmI(ctx context.Context) (remote.User, error) {
	if a.remote == nil {
		return remote.User{}, ErrNoRemote
	}
	return a.remote.Verify(ctx)
}

// Close performs cleanup of application resources.
func (a *App) Close() error {
	return a.cache.Close()
}
