package server

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/thenoetrevino/scope/internal/apperr"
	"github.com/thenoetrevino/scope/internal/models"
	"github.com/thenoetrevino/scope/internal/remote"
	"github.com/thenoetrevino/scope/internal/types"
)

// MaxTitleLength bounds names and titles.
const MaxTitleLength = 200

// validPrefix accepts the entity prefixes and per-project custom column
// prefixes ("P3_C").
var validPrefix = regexp.MustCompile(`^([PTSRM]|P[0-9]+_C)$`)

func created(c echo.Context, id string) error {
	return c.JSON(http.StatusCreated, remote.CreatedDTO{ID: id, Message: "created"})
}

func done(c echo.Context, msg string) error {
	return c.JSON(http.StatusOK, map[string]string{"message": msg})
}

func requireText(field, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return apperr.Validation(field, field+" is required")
	}
	if len(value) > MaxTitleLength {
		return apperr.Validation(field, field+" is too long")
	}
	return nil
}

func projectParam(c echo.Context) (types.ProjectID, error) {
	pid := strings.TrimSpace(c.QueryParam("project_id"))
	if pid == "" {
		return "", apperr.Validation("project_id", "project_id is required")
	}
	return types.ProjectID(pid), nil
}

// allocate returns id unchanged, or the next ID of prefix when it is empty.
func (s *Server) allocate(c echo.Context, id, prefix, scope string) (string, error) {
	if id != "" {
		return id, nil
	}
	return s.repo.NextID(c.Request().Context(), prefix, scope)
}

func (s *Server) generateID(c echo.Context) error {
	prefix := c.Param("prefix")
	if !validPrefix.MatchString(prefix) {
		return apperr.Validation("prefix", "unknown identifier prefix "+prefix)
	}
	id, err := s.repo.NextID(c.Request().Context(), prefix, c.QueryParam("scope"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, remote.IDDTO{ID: id})
}

// ============================================================================
// PROJECTS
// ============================================================================

func (s *Server) listProjects(c echo.Context) error {
	projects, err := s.repo.ListProjects(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]remote.ProjectDTO, len(projects))
	for i, p := range projects {
		out[i] = remote.ProjectToWire(p)
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getProject(c echo.Context) error {
	p, err := s.repo.GetProject(c.Request().Context(), types.ProjectID(c.Param("id")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, remote.ProjectToWire(p))
}

func (s *Server) createProject(c echo.Context) error {
	var dto remote.ProjectDTO
	if err := bind(c, &dto); err != nil {
		return err
	}
	if err := requireText("name", dto.Name); err != nil {
		return err
	}
	p := remote.ProjectFromWire(dto)
	id, err := s.allocate(c, dto.ID, types.ProjectPrefix, types.GlobalScope)
	if err != nil {
		return err
	}
	p.ID = types.ProjectID(id)
	p.Name = strings.TrimSpace(p.Name)
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
	}
	if err := s.repo.CreateProject(c.Request().Context(), p); err != nil {
		return err
	}
	return created(c, id)
}

func (s *Server) updateProject(c echo.Context) error {
	var dto remote.ProjectDTO
	if err := bind(c, &dto); err != nil {
		return err
	}
	if err := requireText("name", dto.Name); err != nil {
		return err
	}
	p := remote.ProjectFromWire(dto)
	p.ID = types.ProjectID(c.Param("id"))
	if err := s.repo.UpdateProject(c.Request().Context(), p); err != nil {
		return err
	}
	return done(c, "project updated")
}

func (s *Server) deleteProject(c echo.Context) error {
	if err := s.repo.DeleteProject(c.Request().Context(), types.ProjectID(c.Param("id"))); err != nil {
		return err
	}
	return done(c, "project deleted")
}

// ============================================================================
// TASKS
// ============================================================================

func (s *Server) listTasks(c echo.Context) error {
	tasks, err := s.repo.ListTasks(c.Request().Context(), types.ProjectID(c.QueryParam("project_id")))
	if err != nil {
		return err
	}
	out := make([]remote.TaskDTO, len(tasks))
	for i, t := range tasks {
		out[i] = remote.TaskToWire(t)
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getTask(c echo.Context) error {
	t, err := s.repo.GetTask(c.Request().Context(), types.TaskID(c.Param("id")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, remote.TaskToWire(t))
}

// checkTask validates the fields shared by create and update.
func (s *Server) checkTask(c echo.Context, t models.Task) error {
	if err := requireText("title", t.Title); err != nil {
		return err
	}
	if !models.ValidPriority(t.Priority) {
		return apperr.Validation("priority", "unknown priority "+t.Priority)
	}
	if models.IsReservedStatus(t.Status) {
		return nil
	}
	cols, err := s.repo.ListColumns(c.Request().Context(), t.ProjectID)
	if err != nil {
		return err
	}
	for _, col := range cols {
		if col.Status() == t.Status {
			return nil
		}
	}
	return apperr.Validation("status", "status "+t.Status+" matches no column of project "+string(t.ProjectID))
}

func (s *Server) createTask(c echo.Context) error {
	var dto remote.TaskDTO
	if err := bind(c, &dto); err != nil {
		return err
	}
	t := remote.TaskFromWire(dto)
	if t.ProjectID == "" {
		return apperr.Validation("project_id", "project_id is required")
	}
	if t.Priority == "" {
		t.Priority = models.DefaultPriority
	}
	if t.Status == "" {
		t.Status = models.DefaultStatus
	}
	if err := s.checkTask(c, t); err != nil {
		return err
	}
	id, err := s.allocate(c, dto.ID, types.TaskPrefix, types.GlobalScope)
	if err != nil {
		return err
	}
	t.ID = types.TaskID(id)
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.now()
	}
	if err := s.repo.CreateTask(c.Request().Context(), t); err != nil {
		return err
	}
	return created(c, id)
}

// updateTask overwrites a task. The owning project cannot change.
func (s *Server) updateTask(c echo.Context) error {
	ctx := c.Request().Context()
	current, err := s.repo.GetTask(ctx, types.TaskID(c.Param("id")))
	if err != nil {
		return err
	}
	var dto remote.TaskDTO
	if err := bind(c, &dto); err != nil {
		return err
	}
	t := remote.TaskFromWire(dto)
	t.ID = current.ID
	t.ProjectID = current.ProjectID
	if err := s.checkTask(c, t); err != nil {
		return err
	}
	if err := s.repo.UpdateTask(ctx, t); err != nil {
		return err
	}
	return done(c, "task updated")
}

func (s *Server) deleteTask(c echo.Context) error {
	if err := s.repo.DeleteTask(c.Request().Context(), types.TaskID(c.Param("id"))); err != nil {
		return err
	}
	return done(c, "task deleted")
}
