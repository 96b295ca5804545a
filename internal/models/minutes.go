package models

import (
	"time"

	"github.com/thenoetrevino/scope/internal/types"
)

// Minutes records a meeting. Content is rich text (markdown).
type Minutes struct {
	ID        types.MinutesID `json:"id"`
	ProjectID types.ProjectID `json:"projectId"`
	Title     string          `json:"title"`
	Date      string          `json:"date"`
	Content   string          `json:"content"`
	CreatedAt time.Time       `json:"createdAt"`
}
