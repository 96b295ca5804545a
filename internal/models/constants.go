package models

// ============================================================================
// TASK STATUS CONSTANTS
// ============================================================================

// Status values for tasks sitting in default columns. Tasks in custom
// columns carry the column name as their status.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusBlocked    = "blocked"
	StatusDone       = "done"
)

// DefaultStatus is the status assigned to new tasks and to tasks whose
// column is deleted.
const DefaultStatus = StatusTodo

// ============================================================================
// DEFAULT COLUMN KEYS
// ============================================================================

// Keys of the four default columns. A default column's ID is
// "<projectID>_<key>".
const (
	ColumnKeyTodo     = "todo"
	ColumnKeyProgress = "progress"
	ColumnKeyBlocked  = "blocked"
	ColumnKeyDone     = "done"
)

// DefaultColumnKeys lists the default columns in their initial order.
var DefaultColumnKeys = []string{ColumnKeyTodo, ColumnKeyProgress, ColumnKeyBlocked, ColumnKeyDone}

// DefaultColumnNames are the display names the default columns are created with.
var DefaultColumnNames = map[string]string{
	ColumnKeyTodo:     "Por Hacer",
	ColumnKeyProgress: "En Progreso",
	ColumnKeyBlocked:  "Impedimento",
	ColumnKeyDone:     "Terminado",
}

var columnKeyToStatus = map[string]string{
	ColumnKeyTodo:     StatusTodo,
	ColumnKeyProgress: StatusInProgress,
	ColumnKeyBlocked:  StatusBlocked,
	ColumnKeyDone:     StatusDone,
}

var statusToColumnKey = map[string]string{
	StatusTodo:       ColumnKeyTodo,
	StatusInProgress: ColumnKeyProgress,
	StatusBlocked:    ColumnKeyBlocked,
	StatusDone:       ColumnKeyDone,
}

// StatusForColumnKey returns the status mapped to a default column key.
func StatusForColumnKey(key string) (string, bool) {
	s, ok := columnKeyToStatus[key]
	return s, ok
}

// ColumnKeyForStatus returns the default column key mapped to a status.
func ColumnKeyForStatus(status string) (string, bool) {
	k, ok := statusToColumnKey[status]
	return k, ok
}

// IsReservedStatus reports whether status is one of the default statuses.
func IsReservedStatus(status string) bool {
	_, ok := statusToColumnKey[status]
	return ok
}

// ============================================================================
// PRIORITY CONSTANTS
// ============================================================================

const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// DefaultPriority is used when a task is created without one.
const DefaultPriority = PriorityMedium

// ValidPriority reports whether p is a known priority.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// ============================================================================
// SPRINT STATUS CONSTANTS
// ============================================================================

const (
	SprintPlanning  = "planning"
	SprintActive    = "active"
	SprintCompleted = "completed"
)

// ValidSprintStatus reports whether s is a known sprint status.
func ValidSprintStatus(s string) bool {
	switch s {
	case SprintPlanning, SprintActive, SprintCompleted:
		return true
	}
	return false
}

// DateLayout is the civil date format used by start/end dates and minutes dates.
const DateLayout = "2006-01-02"
