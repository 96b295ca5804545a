// Package server is the reference implementation of the authoritative REST
// store. It persists to SQLite through internal/database and speaks the wire
// format defined by internal/remote.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thenoetrevino/scope/internal/database"
	"github.com/thenoetrevino/scope/internal/metrics"
)

// MaxBodySize bounds request bodies.
const MaxBodySize = "1M"

// Server serves the REST API.
type Server struct {
	echo     *echo.Echo
	repo     *database.Repository
	auth     *Auth
	logger   *slog.Logger
	metrics  *metrics.HTTP
	gatherer prometheus.Gatherer
	nowFn    func() time.Time
}

// Option configures a Server.
type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithMetrics records request metrics into m and exposes g on /metrics.
func WithMetrics(m *metrics.HTTP, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = g
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.nowFn = now }
}

// New builds the server and registers every route.
func New(repo *database.Repository, auth *Auth, opts ...Option) *Server {
	s := &Server{
		repo:   repo,
		auth:   auth,
		logger: slog.Default(),
		nowFn:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = sonicSerializer{}
	e.HTTPErrorHandler = s.handleError
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.BodyLimit(MaxBodySize))
	e.Use(s.observe)
	s.echo = e
	s.routes()
	return s
}

func (s *Server) routes() {
	e := s.echo
	e.GET("/api/health", s.health)
	e.POST("/api/auth/login", s.login)
	if s.gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}

	api := e.Group("/api", s.requireAuth)
	api.GET("/auth/verify", s.verify)
	api.GET("/generate-id/:prefix", s.generateID)

	api.GET("/projects", s.listProjects)
	api.POST("/projects", s.createProject)
	api.GET("/projects/:id", s.getProject)
	api.PUT("/projects/:id", s.updateProject)
	api.DELETE("/projects/:id", s.deleteProject)

	api.GET("/tasks", s.listTasks)
	api.POST("/tasks", s.createTask)
	api.GET("/tasks/:id", s.getTask)
	api.PUT("/tasks/:id", s.updateTask)
	api.DELETE("/tasks/:id", s.deleteTask)

	api.GET("/projects/:pid/sprints", s.listSprints)
	api.POST("/projects/:pid/sprints", s.createSprint)
	api.GET("/projects/:pid/sprints/:id", s.getSprint)
	api.PUT("/projects/:pid/sprints/:id", s.updateSprint)
	api.DELETE("/projects/:pid/sprints/:id", s.deleteSprint)
	api.POST("/projects/:pid/sprints/:id/tasks", s.attachTasks)
	api.DELETE("/projects/:pid/sprints/:id/tasks/:task_id", s.detachTask)

	api.GET("/columns", s.listColumns)
	api.POST("/columns", s.createColumn)
	api.PUT("/columns/reorder", s.reorderColumns)
	api.GET("/columns/:id", s.getColumn)
	api.PUT("/columns/:id", s.updateColumn)
	api.DELETE("/columns/:id", s.deleteColumn)

	api.GET("/risks", s.listRisks)
	api.POST("/risks", s.createRisk)
	api.GET("/risks/stats/:project_id", s.riskStats)
	api.GET("/risks/:id", s.getRisk)
	api.PUT("/risks/:id", s.updateRisk)
	api.DELETE("/risks/:id", s.deleteRisk)

	api.GET("/minutes", s.listMinutes)
	api.POST("/minutes", s.createMinutes)
	api.GET("/minutes/:id", s.getMinutes)
	api.PUT("/minutes/:id", s.updateMinutes)
	api.DELETE("/minutes/:id", s.deleteMinutes)
}

// Handler returns the HTTP handler, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.logger.Info("server listening", "addr", addr)
	err := s.echo.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) now() time.Time {
	return s.nowFn().UTC()
}

func (s *Server) health(c echo.Context) error {
	if err := s.repo.Ping(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
