package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/thenoetrevino/scope/internal/cache"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	logger     *slog.Logger
	backend    cache.Backend
	httpClient *http.Client
	registry   *prometheus.Registry
	nowFn      func() time.Time
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithCacheBackend replaces the backend named in the config file.
func WithCacheBackend(b cache.Backend) Option {
	return func(cfg *appConfig) {
		cfg.backend = b
	}
}

// WithHTTPClient sets the client used to reach the remote store.
func WithHTTPClient(hc *http.Client) Option {
	return func(cfg *appConfig) {
		cfg.httpClient = hc
	}
}

// WithRegistry registers the sync collectors on reg instead of a private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(cfg *appConfig) {
		cfg.registry = reg
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(cfg *appConfig) {
		cfg.nowFn = now
	}
}
