package store

import (
	"time"

	"github.com/thenoetrevino/scope/internal/models"
	"github.com/thenoetrevino/scope/internal/types"
)

// Tx is a write transaction. Reads through the embedded View observe the
// transaction's own uncommitted changes.
type Tx struct {
	View
	now time.Time
}

// Now returns the transaction timestamp (UTC).
func (tx *Tx) Now() time.Time {
	return tx.now
}

// ============================================================================
// PROJECTS
// ============================================================================

func (tx *Tx) PutProject(p models.Project) {
	p.CreatedAt = normalizeTime(p.CreatedAt)
	tx.s.projects[p.ID] = p
}

// DeleteProject removes a project and every entity referencing it.
func (tx *Tx) DeleteProject(id types.ProjectID) {
	delete(tx.s.projects, id)
	tx.dropProjectScope(id)
}

func (tx *Tx) dropProjectScope(id types.ProjectID) {
	for k, t := range tx.s.tasks {
		if t.ProjectID == id {
			delete(tx.s.tasks, k)
		}
	}
	for k := range tx.s.sprints {
		if k.ProjectID == id {
			delete(tx.s.sprints, k)
		}
	}
	for a := range tx.s.members {
		if a.ProjectID == id {
			delete(tx.s.members, a)
		}
	}
	for k, c := range tx.s.columns {
		if c.ProjectID == id {
			delete(tx.s.columns, k)
		}
	}
	for k, r := range tx.s.risks {
		if r.ProjectID == id {
			delete(tx.s.risks, k)
		}
	}
	for k, m := range tx.s.minutes {
		if m.ProjectID == id {
			delete(tx.s.minutes, k)
		}
	}
}

// ============================================================================
// TASKS
// ============================================================================

func (tx *Tx) PutTask(t models.Task) {
	t.CreatedAt = normalizeTime(t.CreatedAt)
	tx.s.tasks[t.ID] = t
}

// DeleteTask removes a task and its sprint associations.
func (tx *Tx) DeleteTask(id types.TaskID) {
	delete(tx.s.tasks, id)
	for a := range tx.s.members {
		if a.TaskID == id {
			delete(tx.s.members, a)
		}
	}
}

// ============================================================================
// SPRINTS
// ============================================================================

func (tx *Tx) PutSprint(s models.Sprint) {
	s.CreatedAt = normalizeTime(s.CreatedAt)
	tx.s.sprints[s.Key()] = s
}

// DeleteSprint removes a sprint and its associations; member tasks are kept.
func (tx *Tx) DeleteSprint(projectID types.ProjectID, id types.SprintID) {
	delete(tx.s.sprints, models.SprintKey{ProjectID: projectID, SprintID: id})
	for a := range tx.s.members {
		if a.ProjectID == projectID && a.SprintID == id {
			delete(tx.s.members, a)
		}
	}
}

// PutSprintRecord stores a sprint and replaces its membership with the
// record's task IDs. Tasks that are unknown or belong to another project are
// skipped.
func (tx *Tx) PutSprintRecord(rec SprintRecord) {
	for _, tid := range tx.Members(rec.ProjectID, rec.ID) {
		tx.Unlink(models.Association{ProjectID: rec.ProjectID, SprintID: rec.ID, TaskID: tid})
	}
	tx.s.putSprintRecord(rec)
}

// Link adds an association without validation. Use the relations package
// for the checked operation.
func (tx *Tx) Link(a models.Association) {
	tx.s.members[a] = struct{}{}
}

// Unlink removes an association.
func (tx *Tx) Unlink(a models.Association) {
	delete(tx.s.members, a)
}

// ============================================================================
// COLUMNS
// ============================================================================

func (tx *Tx) PutColumn(c models.Column) {
	tx.s.columns[c.ID] = c
}

func (tx *Tx) RemoveColumn(id types.ColumnID) {
	delete(tx.s.columns, id)
}

// ============================================================================
// RISKS
// ============================================================================

// PutRisk stores a risk with its derived fields recomputed.
func (tx *Tx) PutRisk(r models.Risk) {
	r.CreatedAt = normalizeTime(r.CreatedAt)
	r.Recalculate()
	tx.s.risks[r.ID] = r
}

func (tx *Tx) DeleteRisk(id types.RiskID) {
	delete(tx.s.risks, id)
}

// ============================================================================
// MINUTES
// ============================================================================

func (tx *Tx) PutMinutes(m models.Minutes) {
	m.CreatedAt = normalizeTime(m.CreatedAt)
	tx.s.minutes[m.ID] = m
}

func (tx *Tx) DeleteMinutes(id types.MinutesID) {
	delete(tx.s.minutes, id)
}

// ============================================================================
// BULK REPLACEMENT
// ============================================================================

// ReplaceAll discards the transaction state and loads snap instead.
func (tx *Tx) ReplaceAll(snap Snapshot) {
	*tx.s = *stateFromSnapshot(snap)
}

// ReplaceProject swaps every collection of one project for the supplied
// scope. Other projects are untouched.
func (tx *Tx) ReplaceProject(sc Scope) {
	id := sc.Project.ID
	tx.dropProjectScope(id)
	tx.PutProject(sc.Project)
	for _, t := range sc.Tasks {
		t.ProjectID = id
		tx.PutTask(t)
	}
	for _, c := range sc.Columns {
		c.ProjectID = id
		tx.PutColumn(c)
	}
	for _, r := range sc.Risks {
		r.ProjectID = id
		tx.PutRisk(r)
	}
	for _, m := range sc.Minutes {
		m.ProjectID = id
		tx.PutMinutes(m)
	}
	for _, rec := range sc.Sprints {
		rec.ProjectID = id
		tx.s.putSprintRecord(rec)
	}
}
