package store

import (
	"sort"

	"github.com/thenoetrevino/scope/internal/models"
	"github.com/thenoetrevino/scope/internal/types"
)

// View is a read-only window onto one published state. A View obtained from
// Store.View stays consistent even while writers commit new states.
type View struct {
	s *state
}

// ============================================================================
// PROJECTS
// ============================================================================

func (v View) Project(id types.ProjectID) (models.Project, bool) {
	p, ok := v.s.projects[id]
	return p, ok
}

func (v View) Projects() []models.Project {
	out := make([]models.Project, 0, len(v.s.projects))
	for _, p := range v.s.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return lessID(string(out[i].ID), string(out[j].ID)) })
	return out
}

func (v View) ProjectIDs() []string {
	ids := make([]string, 0, len(v.s.projects))
	for id := range v.s.projects {
		ids = append(ids, string(id))
	}
	return ids
}

// ============================================================================
// TASKS
// ============================================================================

func (v View) Task(id types.TaskID) (models.Task, bool) {
	t, ok := v.s.tasks[id]
	return t, ok
}

// Tasks returns a project's tasks. An empty projectID returns every task.
func (v View) Tasks(projectID types.ProjectID) []models.Task {
	out := make([]models.Task, 0)
	for _, t := range v.s.tasks {
		if projectID == "" || t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return lessID(string(out[i].ID), string(out[j].ID)) })
	return out
}

// TaskIDs returns every task ID. Task IDs are global, so the identifier
// generator scans all of them.
func (v View) TaskIDs() []string {
	ids := make([]string, 0, len(v.s.tasks))
	for id := range v.s.tasks {
		ids = append(ids, string(id))
	}
	return ids
}

// ============================================================================
// SPRINTS
// ============================================================================

func (v View) Sprint(projectID types.ProjectID, id types.SprintID) (models.Sprint, bool) {
	s, ok := v.s.sprints[models.SprintKey{ProjectID: projectID, SprintID: id}]
	return s, ok
}

// Sprints returns a project's sprints. An empty projectID returns every sprint.
func (v View) Sprints(projectID types.ProjectID) []models.Sprint {
	out := make([]models.Sprint, 0)
	for _, s := range v.s.sprints {
		if projectID == "" || s.ProjectID == projectID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProjectID != out[j].ProjectID {
			return lessID(string(out[i].ProjectID), string(out[j].ProjectID))
		}
		return lessID(string(out[i].ID), string(out[j].ID))
	})
	return out
}

// SprintIDs returns the sprint IDs of one project; sprint sequences are
// scoped per project.
func (v View) SprintIDs(projectID types.ProjectID) []string {
	ids := make([]string, 0)
	for k := range v.s.sprints {
		if k.ProjectID == projectID {
			ids = append(ids, string(k.SprintID))
		}
	}
	return ids
}

// Members returns the sorted task IDs associated with a sprint.
func (v View) Members(projectID types.ProjectID, sprintID types.SprintID) []types.TaskID {
	out := make([]types.TaskID, 0)
	for a := range v.s.members {
		if a.ProjectID == projectID && a.SprintID == sprintID {
			out = append(out, a.TaskID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return lessID(string(out[i]), string(out[j])) })
	return out
}

// SprintsOfTask returns the sprints a task belongs to.
func (v View) SprintsOfTask(taskID types.TaskID) []models.SprintKey {
	out := make([]models.SprintKey, 0)
	for a := range v.s.members {
		if a.TaskID == taskID {
			out = append(out, a.SprintKey())
		}
	}
	sort.Slice(out, func(i, j int) bool { return lessID(string(out[i].SprintID), string(out[j].SprintID)) })
	return out
}

func (v View) HasAssociation(a models.Association) bool {
	_, ok := v.s.members[a]
	return ok
}

// ============================================================================
// COLUMNS
// ============================================================================

func (v View) Column(id types.ColumnID) (models.Column, bool) {
	c, ok := v.s.columns[id]
	return c, ok
}

// Columns returns a project's columns ordered by order_index.
func (v View) Columns(projectID types.ProjectID) []models.Column {
	out := make([]models.Column, 0)
	for _, c := range v.s.columns {
		if projectID == "" || c.ProjectID == projectID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ProjectID != out[j].ProjectID {
			return lessID(string(out[i].ProjectID), string(out[j].ProjectID))
		}
		if out[i].OrderIndex != out[j].OrderIndex {
			return out[i].OrderIndex < out[j].OrderIndex
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (v View) ColumnIDs(projectID types.ProjectID) []string {
	ids := make([]string, 0)
	for id, c := range v.s.columns {
		if c.ProjectID == projectID {
			ids = append(ids, string(id))
		}
	}
	return ids
}

// ============================================================================
// RISKS
// ============================================================================

func (v View) Risk(id types.RiskID) (models.Risk, bool) {
	r, ok := v.s.risks[id]
	return r, ok
}

func (v View) Risks(projectID types.ProjectID) []models.Risk {
	out := make([]models.Risk, 0)
	for _, r := range v.s.risks {
		if projectID == "" || r.ProjectID == projectID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return lessID(string(out[i].ID), string(out[j].ID)) })
	return out
}

func (v View) RiskIDs() []string {
	ids := make([]string, 0, len(v.s.risks))
	for id := range v.s.risks {
		ids = append(ids, string(id))
	}
	return ids
}

// ============================================================================
// MINUTES
// ============================================================================

func (v View) Minutes(id types.MinutesID) (models.Minutes, bool) {
	m, ok := v.s.minutes[id]
	return m, ok
}

func (v View) MinutesList(projectID types.ProjectID) []models.Minutes {
	out := make([]models.Minutes, 0)
	for _, m := range v.s.minutes {
		if projectID == "" || m.ProjectID == projectID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return lessID(string(out[i].ID), string(out[j].ID)) })
	return out
}

func (v View) MinutesIDs() []string {
	ids := make([]string, 0, len(v.s.minutes))
	for id := range v.s.minutes {
		ids = append(ids, string(id))
	}
	return ids
}

// ============================================================================
// COUNTS
// ============================================================================

// Counts holds the number of entities of each kind.
type Counts struct {
	Projects int `json:"projects"`
	Tasks    int `json:"tasks"`
	Sprints  int `json:"sprints"`
	Risks    int `json:"risks"`
	Minutes  int `json:"minutes"`
	Columns  int `json:"columns"`
}

func (v View) Counts() Counts {
	return Counts{
		Projects: len(v.s.projects),
		Tasks:    len(v.s.tasks),
		Sprints:  len(v.s.sprints),
		Risks:    len(v.s.risks),
		Minutes:  len(v.s.minutes),
		Columns:  len(v.s.columns),
	}
}
