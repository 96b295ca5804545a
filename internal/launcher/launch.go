// Package launcher wires the reference server together from configuration
// and runs it until its context is cancelled.
package launcher

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/thenoetrevino/scope/internal/config"
	"github.com/thenoetrevino/scope/internal/database"
	"github.com/thenoetrevino/scope/internal/metrics"
	"github.com/thenoetrevino/scope/internal/server"
)

// DrainTimeout bounds how long Serve waits for in-flight requests.
const DrainTimeout = 5 * time.Second

// Instance is an opened server with its database.
type Instance struct {
	Server *server.Server
	db     *sql.DB
	addr   string
	logger *slog.Logger
}

// Open initializes the server database and builds the server. Metrics are
// registered on a private registry exposed at /metrics.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Instance, error) {
	if logger == nil {
		logger = slog.Default()
	}

	auth, err := server.NewAuth(cfg.Server.JWTSecret, server.WithTokenTTL(cfg.Server.TokenTTL))
	if err != nil {
		return nil, fmt.Errorf("failed to configure auth: %w", err)
	}

	db, err := database.InitServerDB(ctx, cfg.Server.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv := server.New(database.NewRepository(db), auth,
		server.WithLogger(logger),
		server.WithMetrics(metrics.NewHTTP(reg), reg),
	)
	return &Instance{Server: srv, db: db, addr: cfg.Server.ListenAddr, logger: logger}, nil
}

// Serve listens until ctx is done, then drains in-flight requests.
func (i *Instance) Serve(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		errChan <- i.Server.Start(i.addr)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
		i.logger.Info("shutdown signal received, draining requests")
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), DrainTimeout)
	defer cancel()
	if err := i.Server.Shutdown(drainCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return <-errChan
}

// AddUser registers an account on the server database.
func (i *Instance) AddUser(ctx context.Context, username, password, email, fullName string) (database.User, error) {
	return i.Server.RegisterUser(ctx, username, password, email, fullName)
}

// Close releases the database.
func (i *Instance) Close() error {
	if err := i.db.Close(); err != nil {
		i.logger.Error("error closing database", "error", err)
		return err
	}
	return nil
}
