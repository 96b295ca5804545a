package relations

import (
	"github.com/thenoetrevino/scope/internal/models"
	"github.com/thenoetrevino/scope/internal/store"
	"github.com/thenoetrevino/scope/internal/types"
)

// Manager applies the relation rules to a store, one transaction per call.
type Manager struct {
	store *store.Store
}

// NewManager creates a Manager bound to s.
func NewManager(s *store.Store) *Manager {
	return &Manager{store: s}
}

func (m *Manager) Attach(projectID types.ProjectID, taskID types.TaskID, sprintID types.SprintID) error {
	return m.store.Write(func(tx *store.Tx) error {
		return Attach(tx, projectID, taskID, sprintID)
	})
}

func (m *Manager) Detach(projectID types.ProjectID, taskID types.TaskID, sprintID types.SprintID) error {
	return m.store.Write(func(tx *store.Tx) error {
		return Detach(tx, projectID, taskID, sprintID)
	})
}

func (m *Manager) TasksInSprint(projectID types.ProjectID, sprintID types.SprintID) ([]types.TaskID, error) {
	return TasksInSprint(m.store.View(), projectID, sprintID)
}

func (m *Manager) AddColumn(col models.Column) (models.Column, error) {
	var out models.Column
	err := m.store.Write(func(tx *store.Tx) error {
		var err error
		out, err = AddColumn(tx, col)
		return err
	})
	return out, err
}

func (m *Manager) ReorderColumns(projectID types.ProjectID, ordered []types.ColumnID) error {
	return m.store.Write(func(tx *store.Tx) error {
		return ReorderColumns(tx, projectID, ordered)
	})
}

func (m *Manager) DeleteColumn(projectID types.ProjectID, columnID types.ColumnID) ([]types.TaskID, error) {
	var moved []types.TaskID
	err := m.store.Write(func(tx *store.Tx) error {
		var err error
		moved, err = DeleteColumn(tx, projectID, columnID)
		return err
	})
	return moved, err
}
