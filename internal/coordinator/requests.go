package coordinator

import (
	"strings"
	"time"

	"github.com/thenoetrevino/scope/internal/apperr"
	"github.com/thenoetrevino/scope/internal/models"
	"github.com/thenoetrevino/scope/internal/types"
)

// MaxTitleLength bounds names and titles of every entity.
const MaxTitleLength = 200

// Create requests carry an optional ID. An empty ID is allocated; a supplied
// one makes the create idempotent.

type CreateProjectRequest struct {
	ID          types.ProjectID
	Name        string
	Description string
}

type UpdateProjectRequest struct {
	Name        *string
	Description *string
}

type CreateTaskRequest struct {
	ID          types.TaskID
	ProjectID   types.ProjectID
	Title       string
	Description string
	Assignee    string
	Priority    string
	Status      string
	StartDate   string
	EndDate     string
	Comments    string
	// SprintID optionally attaches the new task to a sprint.
	SprintID types.SprintID
}

type UpdateTaskRequest struct {
	Title       *string
	Description *string
	Assignee    *string
	Priority    *string
	Status      *string
	StartDate   *string
	EndDate     *string
	Comments    *string
}

type CreateSprintRequest struct {
	ID        types.SprintID
	ProjectID types.ProjectID
	Name      string
	StartDate string
	EndDate   string
	Status    string
	TaskIDs   []types.TaskID
}

type UpdateSprintRequest struct {
	Name      *string
	StartDate *string
	EndDate   *string
	Status    *string
}

type CreateColumnRequest struct {
	ID        types.ColumnID
	ProjectID types.ProjectID
	Name      string
}

type CreateRiskRequest struct {
	ID          types.RiskID
	ProjectID   types.ProjectID
	Name        string
	Description string
	Impact      int
	Probability int
	Mitigation  string
	Strategy    string
	Status      string
}

type UpdateRiskRequest struct {
	Name        *string
	Description *string
	Impact      *int
	Probability *int
	Mitigation  *string
	Strategy    *string
	Status      *string
}

type CreateMinutesRequest struct {
	ID        types.MinutesID
	ProjectID types.ProjectID
	Title     string
	Date      string
	Content   string
}

type UpdateMinutesRequest struct {
	Title   *string
	Date    *string
	Content *string
}

// ============================================================================
// VALIDATION HELPERS
// ============================================================================

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

func requireProject(projectID types.ProjectID) error {
	if strings.TrimSpace(string(projectID)) == "" {
		return apperr.Validation("project_id", "project_id is required")
	}
	return nil
}

func validDate(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(models.DateLayout, value); err != nil {
		return apperr.Validation(field, field+" must be a YYYY-MM-DD date")
	}
	return nil
}

func validDateRange(start, end string) error {
	if err := validDate("start_date", start); err != nil {
		return err
	}
	if err := validDate("end_date", end); err != nil {
		return err
	}
	if start != "" && end != "" && end < start {
		return apperr.Validation("end_date", "end_date cannot be before start_date")
	}
	return nil
}

func validRisk(r models.Risk) error {
	if err := requireText("name", r.Name); err != nil {
		return err
	}
	if !models.ValidRiskScore(r.Impact) {
		return apperr.Validation("impact", "impact must be between 1 and 4")
	}
	if !models.ValidRiskScore(r.Probability) {
		return apperr.Validation("probability", "probability must be between 1 and 4")
	}
	switch r.Strategy {
	case models.StrategyAvoid, models.StrategyMitigate, models.StrategyTransfer, models.StrategyAccept:
	default:
		return apperr.Validation("strategy", "unknown strategy "+r.Strategy)
	}
	switch r.Status {
	case models.RiskOpen, models.RiskMonitoring, models.RiskClosed:
	default:
		return apperr.Validation("status", "unknown risk status "+r.Status)
	}
	return nil
}

func validTask(t models.Task) error {
	if err := requireText("title", t.Title); err != nil {
		return err
	}
	if !models.ValidPriority(t.Priority) {
		return apperr.Validation("priority", "unknown priority "+t.Priority)
	}
	return validDateRange(t.StartDate, t.EndDate)
}

func validSprint(s models.Sprint) error {
	if err := requireText("name", s.Name); err != nil {
		return err
	}
	if !models.ValidSprintStatus(s.Status) {
		return apperr.Validation("status", "unknown sprint status "+s.Status)
	}
	return validDateRange(s.StartDate, s.EndDate)
}

func validMinutes(m models.Minutes) error {
	if err := requireText("title", m.Title); err != nil {
		return err
	}
	if m.Date == "" {
		return apperr.Validation("date", "date is required")
	}
	return validDate("date", m.Date)
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
