package models

import (
	"time"

	"github.com/thenoetrevino/scope/internal/types"
)

// Task is a unit of work on the board. Sprint membership is not stored on
// the task; see the association set in the store.
type Task struct {
	ID          types.TaskID    `json:"id"`
	ProjectID   types.ProjectID `json:"projectId"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Assignee    string          `json:"assignee"`
	Priority    string          `json:"priority"`
	Status      string          `json:"status"`
	StartDate   string          `json:"startDate"`
	EndDate     string          `json:"endDate"`
	Comments    string          `json:"comments"`
	CreatedAt   time.Time       `json:"createdAt"`
}
