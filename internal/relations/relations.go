// Package relations owns the task-sprint association set and the kanban
// column ordering rules. The functions operate on a store transaction so
// callers can compose them with other writes; Manager wraps each one in its
// own transaction for standalone use.
package relations

import (
	"sort"
	"strings"

	"github.com/thenoetrevino/scope/internal/apperr"
	"github.com/thenoetrevino/scope/internal/idgen"
	"github.com/thenoetrevino/scope/internal/models"
	"github.com/thenoetrevino/scope/internal/store"
	"github.com/thenoetrevino/scope/internal/types"
)

// MaxColumnNameLength bounds custom column names.
const MaxColumnNameLength = 50

// ============================================================================
// TASK <-> SPRINT ASSOCIATIONS
// ============================================================================

// Attach links a task to a sprint of the same project.
func Attach(tx *store.Tx, projectID types.ProjectID, taskID types.TaskID, sprintID types.SprintID) error {
	if _, ok := tx.Sprint(projectID, sprintID); !ok {
		return apperr.NotFound("sprint", string(sprintID))
	}
	task, ok := tx.Task(taskID)
	if !ok {
		return apperr.NotFound("task", string(taskID))
	}
	if task.ProjectID != projectID {
		return apperr.Validation("task_id", "task "+string(taskID)+" belongs to a different project")
	}
	a := models.Association{ProjectID: projectID, SprintID: sprintID, TaskID: taskID}
	if tx.HasAssociation(a) {
		return apperr.Newf(apperr.KindDuplicateAssociation, "task %s is already in sprint %s", taskID, sprintID)
	}
	tx.Link(a)
	return nil
}

// Detach removes a task from a sprint.
func Detach(tx *store.Tx, projectID types.ProjectID, taskID types.TaskID, sprintID types.SprintID) error {
	a := models.Association{ProjectID: projectID, SprintID: sprintID, TaskID: taskID}
	if !tx.HasAssociation(a) {
		return apperr.Newf(apperr.KindNotFound, "task %s is not in sprint %s", taskID, sprintID)
	}
	tx.Unlink(a)
	return nil
}

// SetMembers replaces a sprint's membership with taskIDs, validating each.
func SetMembers(tx *store.Tx, projectID types.ProjectID, sprintID types.SprintID, taskIDs []types.TaskID) error {
	for _, tid := range tx.Members(projectID, sprintID) {
		tx.Unlink(models.Association{ProjectID: projectID, SprintID: sprintID, TaskID: tid})
	}
	seen := make(map[types.TaskID]bool, len(taskIDs))
	for _, tid := range taskIDs {
		if seen[tid] {
			continue
		}
		seen[tid] = true
		if err := Attach(tx, projectID, tid, sprintID); err != nil {
			return err
		}
	}
	return nil
}

// TasksInSprint returns the sorted IDs of a sprint's tasks.
func TasksInSprint(v store.View, projectID types.ProjectID, sprintID types.SprintID) ([]types.TaskID, error) {
	if _, ok := v.Sprint(projectID, sprintID); !ok {
		return nil, apperr.NotFound("sprint", string(sprintID))
	}
	return v.Members(projectID, sprintID), nil
}

// ============================================================================
// COLUMNS
// ============================================================================

// ValidateColumnName checks a column name against the project's existing
// columns. exclude is skipped so a rename can keep its own name.
func ValidateColumnName(v store.View, projectID types.ProjectID, name string, exclude types.ColumnID) error {
	return CheckColumnName(v.Columns(projectID), name, exclude)
}

// CheckColumnName applies the naming rules to a project's column list.
func CheckColumnName(columns []models.Column, name string, exclude types.ColumnID) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperr.Validation("name", "name cannot be empty")
	}
	if len(name) > MaxColumnNameLength {
		return apperr.Validation("name", "name cannot exceed 50 characters")
	}
	for _, c := range columns {
		if c.ID != exclude && strings.EqualFold(c.Name, name) {
			return apperr.Validation("name", "a column named "+name+" already exists")
		}
		if c.ID != exclude && strings.EqualFold(c.Status(), name) {
			return apperr.Validation("name", name+" is already used as a column status")
		}
	}
	return nil
}

// CheckCustomColumnName is CheckColumnName plus the rule that a custom
// column may not take a reserved status as its name.
func CheckCustomColumnName(columns []models.Column, name string, exclude types.ColumnID) error {
	if models.IsReservedStatus(strings.ToLower(strings.TrimSpace(name))) {
		return apperr.Validation("name", name+" is a reserved status")
	}
	return CheckColumnName(columns, name, exclude)
}

func validateCustomName(v store.View, projectID types.ProjectID, name string, exclude types.ColumnID) error {
	return CheckCustomColumnName(v.Columns(projectID), name, exclude)
}

// NextColumnID returns the next custom column ID for a project ("P1_C3").
func NextColumnID(v store.View, projectID types.ProjectID) (types.ColumnID, error) {
	id, err := idgen.Next(CustomColumnPrefix(projectID), v.ColumnIDs(projectID))
	return types.ColumnID(id), err
}

// CustomColumnPrefix is the identifier prefix of a project's custom columns.
func CustomColumnPrefix(projectID types.ProjectID) string {
	return string(projectID) + "_" + types.ColumnPrefix
}

// AddColumn appends a custom column after the project's last column. If
// col.ID is empty a new ID is derived.
func AddColumn(tx *store.Tx, col models.Column) (models.Column, error) {
	if _, ok := tx.Project(col.ProjectID); !ok {
		return models.Column{}, apperr.NotFound("project", string(col.ProjectID))
	}
	col.Name = strings.TrimSpace(col.Name)
	if err := validateCustomName(tx.View, col.ProjectID, col.Name, ""); err != nil {
		return models.Column{}, err
	}
	if col.ID == "" {
		id, err := NextColumnID(tx.View, col.ProjectID)
		if err != nil {
			return models.Column{}, err
		}
		col.ID = id
	}
	if _, exists := tx.Column(col.ID); exists {
		return models.Column{}, apperr.Newf(apperr.KindDuplicateKey, "column %s already exists", col.ID)
	}

	next := 0
	for _, c := range tx.Columns(col.ProjectID) {
		if c.OrderIndex >= next {
			next = c.OrderIndex + 1
		}
	}
	col.OrderIndex = next
	col.IsDefault = false
	tx.PutColumn(col)
	return col, nil
}

// RenameColumn renames a column. Tasks of a renamed custom column follow it
// to the new status value.
func RenameColumn(tx *store.Tx, columnID types.ColumnID, name string) (models.Column, error) {
	col, ok := tx.Column(columnID)
	if !ok {
		return models.Column{}, apperr.NotFound("column", string(columnID))
	}
	name = strings.TrimSpace(name)
	if col.IsDefault {
		if err := ValidateColumnName(tx.View, col.ProjectID, name, columnID); err != nil {
			return models.Column{}, err
		}
		col.Name = name
		tx.PutColumn(col)
		return col, nil
	}

	if err := validateCustomName(tx.View, col.ProjectID, name, columnID); err != nil {
		return models.Column{}, err
	}
	oldStatus := col.Status()
	col.Name = name
	for _, t := range tx.Tasks(col.ProjectID) {
		if t.Status == oldStatus {
			t.Status = col.Status()
			tx.PutTask(t)
		}
	}
	tx.PutColumn(col)
	return col, nil
}

// ReorderColumns assigns order_index 0..n-1 following ordered, which must
// name every column of the project exactly once.
func ReorderColumns(tx *store.Tx, projectID types.ProjectID, ordered []types.ColumnID) error {
	current := tx.Columns(projectID)
	if err := CheckOrder(projectID, current, ordered); err != nil {
		return err
	}
	known := make(map[types.ColumnID]models.Column, len(current))
	for _, c := range current {
		known[c.ID] = c
	}
	for i, id := range ordered {
		c := known[id]
		c.OrderIndex = i
		tx.PutColumn(c)
	}
	return nil
}

// CheckOrder verifies that ordered is a permutation of current's IDs.
func CheckOrder(projectID types.ProjectID, current []models.Column, ordered []types.ColumnID) error {
	if len(ordered) != len(current) {
		return apperr.Validation("column_ids", "column list must include every column of the project exactly once")
	}
	known := make(map[types.ColumnID]bool, len(current))
	for _, c := range current {
		known[c.ID] = true
	}
	seen := make(map[types.ColumnID]bool, len(ordered))
	for _, id := range ordered {
		if !known[id] {
			return apperr.Validation("column_ids", "column "+string(id)+" does not belong to project "+string(projectID))
		}
		if seen[id] {
			return apperr.Validation("column_ids", "column "+string(id)+" listed twice")
		}
		seen[id] = true
	}
	return nil
}

// DeleteColumn removes a custom column. Tasks whose status matches the column
// are moved to todo and the remaining columns are renumbered densely.
// It returns the IDs of the reassigned tasks.
func DeleteColumn(tx *store.Tx, projectID types.ProjectID, columnID types.ColumnID) ([]types.TaskID, error) {
	col, ok := tx.Column(columnID)
	if !ok || col.ProjectID != projectID {
		return nil, apperr.NotFound("column", string(columnID))
	}
	if col.IsDefault {
		return nil, apperr.Newf(apperr.KindImmutableColumn, "column %s is a default column and cannot be deleted", columnID)
	}

	status := col.Status()
	var moved []types.TaskID
	for _, t := range tx.Tasks(projectID) {
		if t.Status == status {
			t.Status = models.DefaultStatus
			tx.PutTask(t)
			moved = append(moved, t.ID)
		}
	}
	tx.RemoveColumn(columnID)
	densify(tx, projectID)
	return moved, nil
}

// densify renumbers a project's columns 0..n-1 keeping their relative order.
func densify(tx *store.Tx, projectID types.ProjectID) {
	cols := tx.Columns(projectID)
	sort.SliceStable(cols, func(i, j int) bool { return cols[i].OrderIndex < cols[j].OrderIndex })
	for i, c := range cols {
		if c.OrderIndex != i {
			c.OrderIndex = i
			tx.PutColumn(c)
		}
	}
}

// StatusAllowed reports whether status places a task in one of the
// project's columns.
func StatusAllowed(v store.View, projectID types.ProjectID, status string) bool {
	for _, c := range v.Columns(projectID) {
		if c.Status() == status {
			return true
		}
	}
	return models.IsReservedStatus(status)
}
