package models

import (
	"strings"

	"github.com/thenoetrevino/scope/internal/types"
)

// Column represents a kanban board column. OrderIndex values are dense
// (0..n-1) and unique within a project.
type Column struct {
	ID         types.ColumnID  `json:"id"`
	ProjectID  types.ProjectID `json:"projectId"`
	Name       string          `json:"name"`
	OrderIndex int             `json:"order_index"`
	IsDefault  bool            `json:"is_default"`
}

// DefaultColumnID returns the ID of a project's default column.
func DefaultColumnID(projectID types.ProjectID, key string) types.ColumnID {
	return types.ColumnID(string(projectID) + "_" + key)
}

// DefaultColumns builds the four default columns of a new project.
func DefaultColumns(projectID types.ProjectID) []Column {
	cols := make([]Column, len(DefaultColumnKeys))
	for i, key := range DefaultColumnKeys {
		cols[i] = Column{
			ID:         DefaultColumnID(projectID, key),
			ProjectID:  projectID,
			Name:       DefaultColumnNames[key],
			OrderIndex: i,
			IsDefault:  true,
		}
	}
	return cols
}

// Key returns the default column key ("todo", "progress", ...) or "" for
// custom columns.
func (c Column) Key() string {
	if !c.IsDefault {
		return ""
	}
	return strings.TrimPrefix(string(c.ID), string(c.ProjectID)+"_")
}

// Status returns the task status that places a task in this column.
func (c Column) Status() string {
	if s, ok := StatusForColumnKey(c.Key()); ok {
		return s
	}
	return c.Name
}
