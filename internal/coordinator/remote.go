package coordinator

import (
	"context"

	"github.com/thenoetrevino/scope/internal/models"
	"github.com/thenoetrevino/scope/internal/remote"
	"github.com/thenoetrevino/scope/internal/store"
	"github.com/thenoetrevino/scope/internal/types"
)

// Remote is the authoritative store as seen by the coordinator. Errors must
// be classified with apperr kinds; *remote.Client satisfies it.
type Remote interface {
	Health(ctx context.Context) error
	NextID(ctx context.Context, prefix, scope string) (string, error)
	FetchScope(ctx context.Context, projectID types.ProjectID) (store.Scope, error)

	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id types.ProjectID) (models.Project, error)
	CreateProject(ctx context.Context, p models.Project) error
	UpdateProject(ctx context.Context, p models.Project) error
	DeleteProject(ctx context.Context, id types.ProjectID) error

	GetTask(ctx context.Context, id types.TaskID) (models.Task, error)
	CreateTask(ctx context.Context, t models.Task) error
	UpdateTask(ctx context.Context, t models.Task) error
	DeleteTask(ctx context.Context, id types.TaskID) error

	GetSprint(ctx context.Context, projectID types.ProjectID, id types.SprintID) (store.SprintRecord, error)
	CreateSprint(ctx context.Context, rec store.SprintRecord) error
	UpdateSprint(ctx context.Context, s models.Sprint) error
	DeleteSprint(ctx context.Context, projectID types.ProjectID, id types.SprintID) error
	AttachTask(ctx context.Context, projectID types.ProjectID, sprintID types.SprintID, taskID types.TaskID) error
	DetachTask(ctx context.Context, projectID types.ProjectID, sprintID types.SprintID, taskID types.TaskID) error

	GetColumn(ctx context.Context, id types.ColumnID) (models.Column, error)
	CreateColumn(ctx context.Context, c models.Column) error
	UpdateColumn(ctx context.Context, c models.Column) error
	DeleteColumn(ctx context.Context, id types.ColumnID) error
	ReorderColumns(ctx context.Context, projectID types.ProjectID, ordered []types.ColumnID) error

	GetRisk(ctx context.Context, id types.RiskID) (models.Risk, error)
	CreateRisk(ctx context.Context, r models.Risk) error
	UpdateRisk(ctx context.Context, r models.Risk) error
	DeleteRisk(ctx context.Context, id types.RiskID) error
	RiskStats(ctx context.Context, projectID types.ProjectID) (models.RiskStats, error)

	GetMinutes(ctx context.Context, id types.MinutesID) (models.Minutes, error)
	CreateMinutes(ctx context.Context, m models.Minutes) error
	UpdateMinutes(ctx context.Context, m models.Minutes) error
	DeleteMinutes(ctx context.Context, id types.MinutesID) error
}

// SessionResetter invalidates the credential after the remote store answers 401.
type SessionResetter interface {
	Reset() error
}

var _ Remote = (*remote.Client)(nil)
