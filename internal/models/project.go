package models

import (
	"time"

	"github.com/thenoetrevino/scope/internal/types"
)

// Project is the root aggregate. Tasks, sprints, risks, minutes and columns
// reference it through their ProjectID.
type Project struct {
	ID          types.ProjectID `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
}
