// Package board derives the kanban view and sprint figures from raw entity
// state. Everything here is a pure function of its arguments.
package board

import (
	"math"
	"sort"
	"time"

	"github.com/thenoetrevino/scope/internal/models"
	"github.com/thenoetrevino/scope/internal/types"
)

// Lane is one column of the board with the tasks it shows.
type Lane struct {
	Column models.Column `json:"column"`
	Tasks  []models.Task `json:"tasks"`
}

// StatusForColumn returns the status value that places a task in column.
func StatusForColumn(column models.Column) string {
	return column.Status()
}

// ColumnKeyForStatus returns the default column key for a status, or "" when
// the status belongs to a custom column.
func ColumnKeyForStatus(status string) string {
	key, _ := models.ColumnKeyForStatus(status)
	return key
}

// Layout places tasks into columns ordered by order_index. When members is
// non-nil only those tasks are considered (a sprint's board). A task lands in
// the first lane whose status matches and never in more than one.
func Layout(columns []models.Column, tasks []models.Task, members []types.TaskID) []Lane {
	cols := make([]models.Column, len(columns))
	copy(cols, columns)
	sort.SliceStable(cols, func(i, j int) bool { return cols[i].OrderIndex < cols[j].OrderIndex })

	var allowed map[types.TaskID]bool
	if members != nil {
		allowed = make(map[types.TaskID]bool, len(members))
		for _, id := range members {
			allowed[id] = true
		}
	}

	lanes := make([]Lane, len(cols))
	laneByStatus := make(map[string]int, len(cols))
	for i, c := range cols {
		lanes[i] = Lane{Column: c, Tasks: []models.Task{}}
		status := StatusForColumn(c)
		if _, taken := laneByStatus[status]; !taken {
			laneByStatus[status] = i
		}
	}

	placed := make(map[types.TaskID]bool, len(tasks))
	for _, t := range tasks {
		if allowed != nil && !allowed[t.ID] {
			continue
		}
		if placed[t.ID] {
			continue
		}
		if i, ok := laneByStatus[t.Status]; ok {
			lanes[i].Tasks = append(lanes[i].Tasks, t)
			placed[t.ID] = true
		}
	}
	return lanes
}

// Progress returns how far today is through [start, end] as a percentage
// rounded to the nearest integer, at day granularity. A zero-length window is
// 100 once today reaches start and 0 before.
func Progress(start, end, today time.Time) int {
	s, e, n := civil(start), civil(end), civil(today)
	if !n.After(s) {
		if !e.After(s) && !n.Before(s) {
			return 100
		}
		return 0
	}
	if !n.Before(e) {
		return 100
	}
	total := e.Sub(s).Hours() / 24
	if total <= 0 {
		return 100
	}
	elapsed := n.Sub(s).Hours() / 24
	pct := int(math.Round(elapsed / total * 100))
	return max(0, min(100, pct))
}

// ProgressDates is Progress for YYYY-MM-DD strings. Unparseable dates yield 0.
func ProgressDates(start, end string, today time.Time) int {
	s, err := time.Parse(models.DateLayout, start)
	if err != nil {
		return 0
	}
	e, err := time.Parse(models.DateLayout, end)
	if err != nil {
		return 0
	}
	return Progress(s, e, today)
}

func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SprintMetrics counts a sprint's tasks by state. Tasks in custom columns
// count as pending.
type SprintMetrics struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"inProgress"`
	Blocked    int `json:"blocked"`
	Pending    int `json:"pending"`
}

// CompletionRate is the completed share of tasks as a rounded percentage.
func (m SprintMetrics) CompletionRate() int {
	if m.Total == 0 {
		return 0
	}
	return int(math.Round(float64(m.Completed) / float64(m.Total) * 100))
}

// Metrics counts tasks by status.
func Metrics(tasks []models.Task) SprintMetrics {
	var m SprintMetrics
	for _, t := range tasks {
		m.Total++
		switch t.Status {
		case models.StatusDone:
			m.Completed++
		case models.StatusInProgress:
			m.InProgress++
		case models.StatusBlocked:
			m.Blocked++
		default:
			m.Pending++
		}
	}
	return m
}

// CurrentSprint returns the most recently created sprint, breaking ties by
// the higher ID.
func CurrentSprint(sprints []models.Sprint) (models.Sprint, bool) {
	if len(sprints) == 0 {
		return models.Sprint{}, false
	}
	best := sprints[0]
	for _, s := range sprints[1:] {
		if s.CreatedAt.After(best.CreatedAt) ||
			(s.CreatedAt.Equal(best.CreatedAt) && laterID(string(s.ID), string(best.ID))) {
			best = s
		}
	}
	return best, true
}

func laterID(a, b string) bool {
	if len(a) != len(b) {
		return len(a) > len(b)
	}
	return a > b
}
