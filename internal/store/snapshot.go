package store

import (
	"sort"

	"github.com/thenoetrevino/scope/internal/models"
	"github.com/thenoetrevino/scope/internal/types"
)

// SprintRecord is the persisted shape of a sprint: the sprint plus the task
// IDs materialized from the association set.
type SprintRecord struct {
	models.Sprint
	TaskIDs []types.TaskID `json:"taskIds"`
}

// Snapshot is the persisted layout of the whole store. Collections are
// always non-nil and sorted by ID so encodings are deterministic.
type Snapshot struct {
	Projects []models.Project `json:"projects"`
	Tasks    []models.Task    `json:"tasks"`
	Sprints  []SprintRecord   `json:"sprints"`
	Risks    []models.Risk    `json:"risks"`
	Minutes  []models.Minutes `json:"minutes"`
	Columns  []models.Column  `json:"columns"`
}

// EmptySnapshot returns a snapshot with every collection present and empty.
func EmptySnapshot() Snapshot {
	return Snapshot{
		Projects: []models.Project{},
		Tasks:    []models.Task{},
		Sprints:  []SprintRecord{},
		Risks:    []models.Risk{},
		Minutes:  []models.Minutes{},
		Columns:  []models.Column{},
	}
}

// Scope holds the collections belonging to a single project, as fetched
// from the remote store on refresh.
type Scope struct {
	Project models.Project
	Tasks   []models.Task
	Sprints []SprintRecord
	Columns []models.Column
	Risks   []models.Risk
	Minutes []models.Minutes
}

// Snapshot materializes the view into the persisted layout.
func (v View) Snapshot() Snapshot {
	snap := EmptySnapshot()
	snap.Projects = append(snap.Projects, v.Projects()...)
	snap.Tasks = append(snap.Tasks, v.Tasks("")...)
	for _, s := range v.Sprints("") {
		snap.Sprints = append(snap.Sprints, SprintRecord{
			Sprint:  s,
			TaskIDs: v.Members(s.ProjectID, s.ID),
		})
	}
	snap.Risks = append(snap.Risks, v.Risks("")...)
	snap.Minutes = append(snap.Minutes, v.MinutesList("")...)
	snap.Columns = append(snap.Columns, v.Columns("")...)
	sort.SliceStable(snap.Columns, func(i, j int) bool {
		return lessID(string(snap.Columns[i].ID), string(snap.Columns[j].ID))
	})
	return snap
}

// ProjectScope returns one project's collections.
func (v View) ProjectScope(projectID types.ProjectID) (Scope, bool) {
	p, ok := v.Project(projectID)
	if !ok {
		return Scope{}, false
	}
	sc := Scope{
		Project: p,
		Tasks:   v.Tasks(projectID),
		Columns: v.Columns(projectID),
		Risks:   v.Risks(projectID),
		Minutes: v.MinutesList(projectID),
	}
	for _, s := range v.Sprints(projectID) {
		sc.Sprints = append(sc.Sprints, SprintRecord{Sprint: s, TaskIDs: v.Members(projectID, s.ID)})
	}
	return sc, true
}

// stateFromSnapshot rebuilds a state. Derived risk fields are recomputed and
// associations that do not link a task and sprint of the same project are
// dropped.
func stateFromSnapshot(snap Snapshot) *state {
	s := newState()
	for _, p := range snap.Projects {
		p.CreatedAt = normalizeTime(p.CreatedAt)
		s.projects[p.ID] = p
	}
	for _, t := range snap.Tasks {
		t.CreatedAt = normalizeTime(t.CreatedAt)
		s.tasks[t.ID] = t
	}
	for _, c := range snap.Columns {
		s.columns[c.ID] = c
	}
	for _, r := range snap.Risks {
		r.CreatedAt = normalizeTime(r.CreatedAt)
		r.Recalculate()
		s.risks[r.ID] = r
	}
	for _, m := range snap.Minutes {
		m.CreatedAt = normalizeTime(m.CreatedAt)
		s.minutes[m.ID] = m
	}
	for _, rec := range snap.Sprints {
		s.putSprintRecord(rec)
	}
	return s
}

func (s *state) putSprintRecord(rec SprintRecord) {
	sp := rec.Sprint
	sp.CreatedAt = normalizeTime(sp.CreatedAt)
	s.sprints[sp.Key()] = sp
	for _, tid := range rec.TaskIDs {
		t, ok := s.tasks[tid]
		if !ok || t.ProjectID != sp.ProjectID {
			continue
		}
		s.members[models.Association{ProjectID: sp.ProjectID, SprintID: sp.ID, TaskID: tid}] = struct{}{}
	}
}
