package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/thenoetrevino/scope/internal/apperr"
	"github.com/thenoetrevino/scope/internal/models"
	"github.com/thenoetrevino/scope/internal/relations"
	"github.com/thenoetrevino/scope/internal/remote"
	"github.com/thenoetrevino/scope/internal/types"
)

// ============================================================================
// SPRINTS
// ============================================================================

func sprintParams(c echo.Context) (types.ProjectID, types.SprintID) {
	return types.ProjectID(c.Param("pid")), types.SprintID(c.Param("id"))
}

func (s *Server) listSprints(c echo.Context) error {
	recs, err := s.repo.ListSprints(c.Request().Context(), types.ProjectID(c.Param("pid")))
	if err != nil {
		return err
	}
	out := make([]remote.SprintDTO, len(recs))
	for i, rec := range recs {
		out[i] = remote.SprintToWire(rec)
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getSprint(c echo.Context) error {
	pid, id := sprintParams(c)
	rec, err := s.repo.GetSprint(c.Request().Context(), pid, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, remote.SprintToWire(rec))
}

func checkSprint(sp models.Sprint) error {
	if err := requireText("name", sp.Name); err != nil {
		return err
	}
	if !models.ValidSprintStatus(sp.Status) {
		return apperr.Validation("status", "unknown sprint status "+sp.Status)
	}
	return nil
}

// createSprint stores the sprint and its task_ids in one transaction.
func (s *Server) createSprint(c echo.Context) error {
	var dto remote.SprintDTO
	if err := bind(c, &dto); err != nil {
		return err
	}
	rec := remote.SprintFromWire(dto)
	rec.ProjectID = types.ProjectID(c.Param("pid"))
	if rec.Status == "" {
		rec.Status = models.SprintPlanning
	}
	if err := checkSprint(rec.Sprint); err != nil {
		return err
	}
	id, err := s.allocate(c, dto.ID, types.SprintPrefix, string(rec.ProjectID))
	if err != nil {
		return err
	}
	rec.ID = types.SprintID(id)
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now()
	}
	if err := s.repo.CreateSprint(c.Request().Context(), rec); err != nil {
		return err
	}
	return created(c, id)
}

func (s *Server) updateSprint(c echo.Context) error {
	var dto remote.SprintDTO
	if err := bind(c, &dto); err != nil {
		return err
	}
	sp := remote.SprintFromWire(dto).Sprint
	sp.ProjectID, sp.ID = sprintParams(c)
	if err := checkSprint(sp); err != nil {
		return err
	}
	if err := s.repo.UpdateSprint(c.Request().Context(), sp); err != nil {
		return err
	}
	return done(c, "sprint updated")
}

func (s *Server) deleteSprint(c echo.Context) error {
	pid, id := sprintParams(c)
	if err := s.repo.DeleteSprint(c.Request().Context(), pid, id); err != nil {
		return err
	}
	return done(c, "sprint deleted")
}

// attachTasks adds each listed task to the sprint. Any task already present
// answers 409.
func (s *Server) attachTasks(c echo.Context) error {
	var dto remote.AttachDTO
	if err := bind(c, &dto); err != nil {
		return err
	}
	if len(dto.TaskIDs) == 0 {
		return apperr.Validation("task_ids", "task_ids must not be empty")
	}
	pid, sid := sprintParams(c)
	for _, tid := range dto.TaskIDs {
		if err := s.repo.AttachTask(c.Request().Context(), pid, sid, types.TaskID(tid)); err != nil {
			return err
		}
	}
	return done(c, "tasks added to sprint")
}

func (s *Server) detachTask(c echo.Context) error {
	pid, sid := sprintParams(c)
	if err := s.repo.DetachTask(c.Request().Context(), pid, sid, types.TaskID(c.Param("task_id"))); err != nil {
		return err
	}
	return done(c, "task removed from sprint")
}

// ============================================================================
// COLUMNS
// ============================================================================

func (s *Server) listColumns(c echo.Context) error {
	pid, err := projectParam(c)
	if err != nil {
		return err
	}
	cols, err := s.repo.ListColumns(c.Request().Context(), pid)
	if err != nil {
		return err
	}
	out := make([]remote.ColumnDTO, len(cols))
	for i, col := range cols {
		out[i] = remote.ColumnToWire(col)
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getColumn(c echo.Context) error {
	col, err := s.repo.GetColumn(c.Request().Context(), types.ColumnID(c.Param("id")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, remote.ColumnToWire(col))
}

func (s *Server) createColumn(c echo.Context) error {
	var dto remote.ColumnDTO
	if err := bind(c, &dto); err != nil {
		return err
	}
	col := remote.ColumnFromWire(dto)
	if col.ProjectID == "" {
		return apperr.Validation("project_id", "project_id is required")
	}
	if strings.TrimSpace(col.Name) == "" {
		return apperr.Validation("name", "name cannot be empty")
	}
	id, err := s.allocate(c, dto.ID, relations.CustomColumnPrefix(col.ProjectID), string(col.ProjectID))
	if err != nil {
		return err
	}
	col.ID = types.ColumnID(id)
	if _, err := s.repo.CreateColumn(c.Request().Context(), col); err != nil {
		return err
	}
	return created(c, id)
}

// updateColumn renames a column. Order changes go through reorder.
func (s *Server) updateColumn(c echo.Context) error {
	var dto remote.ColumnDTO
	if err := bind(c, &dto); err != nil {
		return err
	}
	if _, err := s.repo.RenameColumn(c.Request().Context(), types.ColumnID(c.Param("id")), dto.Name); err != nil {
		return err
	}
	return done(c, "column updated")
}

func (s *Server) deleteColumn(c echo.Context) error {
	moved, err := s.repo.DeleteColumn(c.Request().Context(), types.ColumnID(c.Param("id")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "column deleted", "tasks_moved": moved})
}

func (s *Server) reorderColumns(c echo.Context) error {
	var dto remote.ReorderDTO
	if err := bind(c, &dto); err != nil {
		return err
	}
	if dto.ProjectID == "" {
		return apperr.Validation("project_id", "project_id is required")
	}
	ordered := make([]types.ColumnID, len(dto.ColumnIDs))
	for i, id := range dto.ColumnIDs {
		ordered[i] = types.ColumnID(id)
	}
	if err := s.repo.ReorderColumns(c.Request().Context(), types.ProjectID(dto.ProjectID), ordered); err != nil {
		return err
	}
	return done(c, "columns reordered")
}

// ============================================================================
// RISKS
// ============================================================================

func (s *Server) listRisks(c echo.Context) error {
	risks, err := s.repo.ListRisks(c.Request().Context(), types.ProjectID(c.QueryParam("project_id")))
	if err != nil {
		return err
	}
	out := make([]remote.RiskDTO, len(risks))
	for i, r := range risks {
		out[i] = remote.RiskToWire(r)
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getRisk(c echo.Context) error {
	r, err := s.repo.GetRisk(c.Request().Context(), types.RiskID(c.Param("id")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, remote.RiskToWire(r))
}

func checkRisk(r models.Risk) error {
	if err := requireText("name", r.Name); err != nil {
		return err
	}
	if !models.ValidRiskScore(r.Impact) {
		return apperr.Validation("impact", "impact must be between 1 and 4")
	}
	if !models.ValidRiskScore(r.Probability) {
		return apperr.Validation("probability", "probability must be between 1 and 4")
	}
	return nil
}

func (s *Server) createRisk(c echo.Context) error {
	var dto remote.RiskDTO
	if err := bind(c, &dto); err != nil {
		return err
	}
	r := remote.RiskFromWire(dto)
	if r.ProjectID == "" {
		return apperr.Validation("project_id", "project_id is required")
	}
	if r.Strategy == "" {
		r.Strategy = models.DefaultRiskStrategy
	}
	if r.Status == "" {
		r.Status = models.DefaultRiskStatus
	}
	if err := checkRisk(r); err != nil {
		return err
	}
	id, err := s.allocate(c, dto.ID, types.RiskPrefix, types.GlobalScope)
	if err != nil {
		return err
	}
	r.ID = types.RiskID(id)
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now()
	}
	if err := s.repo.CreateRisk(c.Request().Context(), r); err != nil {
		return err
	}
	return created(c, id)
}

func (s *Server) updateRisk(c echo.Context) error {
	var dto remote.RiskDTO
	if err := bind(c, &dto); err != nil {
		return err
	}
	r := remote.RiskFromWire(dto)
	r.ID = types.RiskID(c.Param("id"))
	if err := checkRisk(r); err != nil {
		return err
	}
	if err := s.repo.UpdateRisk(c.Request().Context(), r); err != nil {
		return err
	}
	return done(c, "risk updated")
}

func (s *Server) deleteRisk(c echo.Context) error {
	if err := s.repo.DeleteRisk(c.Request().Context(), types.RiskID(c.Param("id"))); err != nil {
		return err
	}
	return done(c, "risk deleted")
}

func (s *Server) riskStats(c echo.Context) error {
	stats, err := s.repo.RiskStats(c.Request().Context(), types.ProjectID(c.Param("project_id")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, remote.RiskStatsToWire(stats))
}

// ============================================================================
// MINUTES
// ============================================================================

func (s *Server) listMinutes(c echo.Context) error {
	list, err := s.repo.ListMinutes(c.Request().Context(), types.ProjectID(c.QueryParam("project_id")))
	if err != nil {
		return err
	}
	out := make([]remote.MinutesDTO, len(list))
	for i, m := range list {
		out[i] = remote.MinutesToWire(m)
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getMinutes(c echo.Context) error {
	m, err := s.repo.GetMinutes(c.Request().Context(), types.MinutesID(c.Param("id")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, remote.MinutesToWire(m))
}

func checkMinutes(m models.Minutes) error {
	if err := requireText("title", m.Title); err != nil {
		return err
	}
	if strings.TrimSpace(m.Date) == "" {
		return apperr.Validation("meeting_date", "meeting_date is required")
	}
	return nil
}

func (s *Server) createMinutes(c echo.Context) error {
	var dto remote.MinutesDTO
	if err := bind(c, &dto); err != nil {
		return err
	}
	m := remote.MinutesFromWire(dto)
	if m.ProjectID == "" {
		return apperr.Validation("project_id", "project_id is required")
	}
	if err := checkMinutes(m); err != nil {
		return err
	}
	id, err := s.allocate(c, dto.ID, types.MinutesPrefix, types.GlobalScope)
	if err != nil {
		return err
	}
	m.ID = types.MinutesID(id)
	if m.CreatedAt.IsZero() {
		m.CreatedAt = s.now()
	}
	if err := s.repo.CreateMinutes(c.Request().Context(), m); err != nil {
		return err
	}
	return created(c, id)
}

func (s *Server) updateMinutes(c echo.Context) error {
	var dto remote.MinutesDTO
	if err := bind(c, &dto); err != nil {
		return err
	}
	m := remote.MinutesFromWire(dto)
	m.ID = types.MinutesID(c.Param("id"))
	if err := checkMinutes(m); err != nil {
		return err
	}
	if err := s.repo.UpdateMinutes(c.Request().Context(), m); err != nil {
		return err
	}
	return done(c, "minutes updated")
}

func (s *Server) deleteMinutes(c echo.Context) error {
	if err := s.repo.DeleteMinutes(c.Request().Context(), types.MinutesID(c.Param("id"))); err != nil {
		return err
	}
	return done(c, "minutes deleted")
}
