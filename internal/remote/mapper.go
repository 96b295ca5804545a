package remote

import (
	"time"

	"github.com/thenoetrevino/scope/internal/models"
	"github.com/thenoetrevino/scope/internal/store"
	"github.com/thenoetrevino/scope/internal/types"
)

// Wire shapes of the REST API. The remote store speaks snake_case and a few
// legacy field names; everything is translated to the canonical models here
// and nowhere else.

type ProjectDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at,omitempty"`
}

type TaskDTO struct {
	ID          string   `json:"id"`
	ProjectID   string   `json:"project_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Responsible string   `json:"responsible"`
	Priority    string   `json:"priority"`
	Status      string   `json:"status"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Comments    string   `json:"comments"`
	CreatedAt   string   `json:"created_at,omitempty"`
	SprintIDs   []string `json:"sprint_ids,omitempty"`
}

type SprintDTO struct {
	ID        string   `json:"id"`
	ProjectID string   `json:"project_id"`
	Name      string   `json:"name"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Status    string   `json:"status"`
	CreatedAt string   `json:"created_at,omitempty"`
	TaskIDs   []string `json:"task_ids"`
}

type ColumnDTO struct {
	ID         string `json:"id"`
	ProjectID  string `json:"project_id"`
	Name       string `json:"name"`
	OrderIndex int    `json:"order_index"`
	IsDefault  bool   `json:"is_default"`
}

type RiskDTO struct {
	ID             string `json:"id"`
	ProjectID      string `json:"project_id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Impact         int    `json:"impact"`
	Probability    int    `json:"probability"`
	RiskFactor     int    `json:"risk_factor"`
	Appetite       string `json:"appetite"`
	MitigationPlan string `json:"mitigation_plan"`
	Strategy       string `json:"strategy"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at,omitempty"`
}

type MinutesDTO struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Title     string `json:"title"`
	Date      string `json:"meeting_date"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at,omitempty"`
}

type RiskStatsDTO struct {
	Total      int            `json:"total"`
	ByStatus   map[string]int `json:"by_status"`
	ByAppetite map[string]int `json:"by_appetite"`
	ByStrategy map[string]int `json:"by_strategy"`
}

// ReorderDTO is the body of PUT /api/columns/reorder.
type ReorderDTO struct {
	ProjectID string   `json:"project_id"`
	ColumnIDs []string `json:"column_ids"`
}

// AttachDTO is the body of POST .../sprints/:id/tasks.
type AttachDTO struct {
	TaskIDs []string `json:"task_ids"`
}

// CreatedDTO is returned by every create endpoint.
type CreatedDTO struct {
	ID      string `json:"id"`
	Message string `json:"message,omitempty"`
}

// ErrorDTO is the body of every error response.
type ErrorDTO struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// IDDTO is returned by the sequence endpoint.
type IDDTO struct {
	ID string `json:"id"`
}

// ============================================================================
// TIMESTAMPS
// ============================================================================

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02T15:04:05"}

// FormatTime renders a timestamp for the wire.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTime accepts RFC 3339 and the SQL datetime layout; anything else is
// the zero time.
func ParseTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// ============================================================================
// PROJECTS
// ============================================================================

func ProjectToWire(p models.Project) ProjectDTO {
	return ProjectDTO{
		ID:          string(p.ID),
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   FormatTime(p.CreatedAt),
	}
}

func ProjectFromWire(d ProjectDTO) models.Project {
	return models.Project{
		ID:          types.ProjectID(d.ID),
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   ParseTime(d.CreatedAt),
	}
}

// ============================================================================
// TASKS
// ============================================================================

func TaskToWire(t models.Task) TaskDTO {
	return TaskDTO{
		ID:          string(t.ID),
		ProjectID:   string(t.ProjectID),
		Title:       t.Title,
		Description: t.Description,
		Responsible: t.Assignee,
		Priority:    t.Priority,
		Status:      t.Status,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		Comments:    t.Comments,
		CreatedAt:   FormatTime(t.CreatedAt),
	}
}

// TaskFromWire drops sprint_ids: membership comes from the sprint side.
func TaskFromWire(d TaskDTO) models.Task {
	return models.Task{
		ID:          types.TaskID(d.ID),
		ProjectID:   types.ProjectID(d.ProjectID),
		Title:       d.Title,
		Description: d.Description,
		Assignee:    d.Responsible,
		Priority:    d.Priority,
		Status:      d.Status,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Comments:    d.Comments,
		CreatedAt:   ParseTime(d.CreatedAt),
	}
}

// ============================================================================
// SPRINTS
// ============================================================================

func SprintToWire(rec store.SprintRecord) SprintDTO {
	ids := make([]string, len(rec.TaskIDs))
	for i, id := range rec.TaskIDs {
		ids[i] = string(id)
	}
	return SprintDTO{
		ID:        string(rec.ID),
		ProjectID: string(rec.ProjectID),
		Name:      rec.Name,
		StartDate: rec.StartDate,
		EndDate:   rec.EndDate,
		Status:    rec.Status,
		CreatedAt: FormatTime(rec.CreatedAt),
		TaskIDs:   ids,
	}
}

func SprintFromWire(d SprintDTO) store.SprintRecord {
	ids := make([]types.TaskID, len(d.TaskIDs))
	for i, id := range d.TaskIDs {
		ids[i] = types.TaskID(id)
	}
	return store.SprintRecord{
		Sprint: models.Sprint{
			ID:        types.SprintID(d.ID),
			ProjectID: types.ProjectID(d.ProjectID),
			Name:      d.Name,
			StartDate: d.StartDate,
			EndDate:   d.EndDate,
			Status:    d.Status,
			CreatedAt: ParseTime(d.CreatedAt),
		},
		TaskIDs: ids,
	}
}

// ============================================================================
// COLUMNS
// ============================================================================

func ColumnToWire(c models.Column) ColumnDTO {
	return ColumnDTO{
		ID:         string(c.ID),
		ProjectID:  string(c.ProjectID),
		Name:       c.Name,
		OrderIndex: c.OrderIndex,
		IsDefault:  c.IsDefault,
	}
}

func ColumnFromWire(d ColumnDTO) models.Column {
	return models.Column{
		ID:         types.ColumnID(d.ID),
		ProjectID:  types.ProjectID(d.ProjectID),
		Name:       d.Name,
		OrderIndex: d.OrderIndex,
		IsDefault:  d.IsDefault,
	}
}

// ============================================================================
// RISKS
// ============================================================================

func RiskToWire(r models.Risk) RiskDTO {
	r.Recalculate()
	return RiskDTO{
		ID:             string(r.ID),
		ProjectID:      string(r.ProjectID),
		Name:           r.Name,
		Description:    r.Description,
		Impact:         r.Impact,
		Probability:    r.Probability,
		RiskFactor:     r.RiskFactor,
		Appetite:       r.Appetite,
		MitigationPlan: r.Mitigation,
		Strategy:       r.Strategy,
		Status:         r.Status,
		CreatedAt:      FormatTime(r.CreatedAt),
	}
}

// RiskFromWire recomputes the derived fields instead of trusting the wire.
func RiskFromWire(d RiskDTO) models.Risk {
	r := models.Risk{
		ID:          types.RiskID(d.ID),
		ProjectID:   types.ProjectID(d.ProjectID),
		Name:        d.Name,
		Description: d.Description,
		Impact:      d.Impact,
		Probability: d.Probability,
		Mitigation:  d.MitigationPlan,
		Strategy:    d.Strategy,
		Status:      d.Status,
		CreatedAt:   ParseTime(d.CreatedAt),
	}
	r.Recalculate()
	return r
}

func RiskStatsFromWire(d RiskStatsDTO) models.RiskStats {
	return models.RiskStats{
		Total:      d.Total,
		ByStatus:   nonNil(d.ByStatus),
		ByAppetite: nonNil(d.ByAppetite),
		ByStrategy: nonNil(d.ByStrategy),
	}
}

func RiskStatsToWire(s models.RiskStats) RiskStatsDTO {
	return RiskStatsDTO{
		Total:      s.Total,
		ByStatus:   nonNil(s.ByStatus),
		ByAppetite: nonNil(s.ByAppetite),
		ByStrategy: nonNil(s.ByStrategy),
	}
}

func nonNil(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return m
}

// ============================================================================
// MINUTES
// ============================================================================

func MinutesToWire(m models.Minutes) MinutesDTO {
	return MinutesDTO{
		ID:        string(m.ID),
		ProjectID: string(m.ProjectID),
		Title:     m.Title,
		Date:      m.Date,
		Content:   m.Content,
		CreatedAt: FormatTime(m.CreatedAt),
	}
}

func MinutesFromWire(d MinutesDTO) models.Minutes {
	return models.Minutes{
		ID:        types.MinutesID(d.ID),
		ProjectID: types.ProjectID(d.ProjectID),
		Title:     d.Title,
		Date:      d.Date,
		Content:   d.Content,
		CreatedAt: ParseTime(d.CreatedAt),
	}
}

// mapSlice converts a slice with fn.
func mapSlice[S, T any](in []S, fn func(S) T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}
