package models

import (
	"time"

	"github.com/thenoetrevino/scope/internal/types"
)

// Sprint is a time box within a project. Its identity is (ProjectID, ID).
type Sprint struct {
	ID        types.SprintID  `json:"id"`
	ProjectID types.ProjectID `json:"projectId"`
	Name      string          `json:"name"`
	StartDate string          `json:"startDate"`
	EndDate   string          `json:"endDate"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
}

// SprintKey identifies a sprint across projects.
type SprintKey struct {
	ProjectID types.ProjectID
	SprintID  types.SprintID
}

// Key returns the sprint's composite identity.
func (s Sprint) Key() SprintKey {
	return SprintKey{ProjectID: s.ProjectID, SprintID: s.ID}
}

// Association links a task to a sprint of the same project.
type Association struct {
	ProjectID types.ProjectID
	SprintID  types.SprintID
	TaskID    types.TaskID
}

// SprintKey returns the sprint side of the association.
func (a Association) SprintKey() SprintKey {
	return SprintKey{ProjectID: a.ProjectID, SprintID: a.SprintID}
}
