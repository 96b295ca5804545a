package store

import (
	"time"

	"github.com/thenoetrevino/scope/internal/models"
	"github.com/thenoetrevino/scope/internal/types"
)

type state struct {
	projects map[types.ProjectID]models.Project
	tasks    map[types.TaskID]models.Task
	sprints  map[models.SprintKey]models.Sprint
	columns  map[types.ColumnID]models.Column
	risks    map[types.RiskID]models.Risk
	minutes  map[types.MinutesID]models.Minutes
	members  map[models.Association]struct{}
}

func newState() *state {
	return &state{
		projects: make(map[types.ProjectID]models.Project),
		tasks:    make(map[types.TaskID]models.Task),
		sprints:  make(map[models.SprintKey]models.Sprint),
		columns:  make(map[types.ColumnID]models.Column),
		risks:    make(map[types.RiskID]models.Risk),
		minutes:  make(map[types.MinutesID]models.Minutes),
		members:  make(map[models.Association]struct{}),
	}
}

// Entities are plain value structs, so copying the maps is a deep clone.
func (s *state) clone() *state {
	c := &state{
		projects: make(map[types.ProjectID]models.Project, len(s.projects)),
		tasks:    make(map[types.TaskID]models.Task, len(s.tasks)),
		sprints:  make(map[models.SprintKey]models.Sprint, len(s.sprints)),
		columns:  make(map[types.ColumnID]models.Column, len(s.columns)),
		risks:    make(map[types.RiskID]models.Risk, len(s.risks)),
		minutes:  make(map[types.MinutesID]models.Minutes, len(s.minutes)),
		members:  make(map[models.Association]struct{}, len(s.members)),
	}
	for k, v := range s.projects {
		c.projects[k] = v
	}
	for k, v := range s.tasks {
		c.tasks[k] = v
	}
	for k, v := range s.sprints {
		c.sprints[k] = v
	}
	for k, v := range s.columns {
		c.columns[k] = v
	}
	for k, v := range s.risks {
		c.risks[k] = v
	}
	for k, v := range s.minutes {
		c.minutes[k] = v
	}
	for k := range s.members {
		c.members[k] = struct{}{}
	}
	return c
}

// normalizeTime drops the monotonic reading and location so timestamps
// compare equal after a round trip through the cache.
func normalizeTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return t.UTC().Round(0)
}

// lessID orders IDs naturally within a prefix ("T2" before "T10").
func lessID(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
