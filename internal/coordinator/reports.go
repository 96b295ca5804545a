package coordinator

import (
	"context"

	"github.com/thenoetrevino/scope/internal/apperr"
	"github.com/thenoetrevino/scope/internal/board"
	"github.com/thenoetrevino/scope/internal/models"
	"github.com/thenoetrevino/scope/internal/types"
)

// Board lays out a project's tasks in its columns. A non-empty sprintID
// restricts the board to that sprint's members.
func (c *Coordinator) Board(ctx context.Context, projectID types.ProjectID, sprintID types.SprintID) ([]board.Lane, error) {
	v, err := c.scopeView(ctx, projectID)
	if err != nil {
		return nil, err
	}
	var members []types.TaskID
	if sprintID != "" {
		if _, ok := v.Sprint(projectID, sprintID); !ok {
			return nil, apperr.NotFound("sprint", string(sprintID))
		}
		members = v.Members(projectID, sprintID)
	}
	return board.Layout(v.Columns(projectID), v.Tasks(projectID), members), nil
}

// SprintReport is the progress summary of one sprint.
type SprintReport struct {
	Sprint   models.Sprint       `json:"sprint"`
	TaskIDs  []types.TaskID      `json:"taskIds"`
	Progress int                 `json:"progress"`
	Metrics  board.SprintMetrics `json:"metrics"`
}

// SprintReport computes time progress and task metrics for a sprint.
func (c *Coordinator) SprintReport(ctx context.Context, projectID types.ProjectID, sprintID types.SprintID) (SprintReport, error) {
	v, err := c.scopeView(ctx, projectID)
	if err != nil {
		return SprintReport{}, err
	}
	s, ok := v.Sprint(projectID, sprintID)
	if !ok {
		return SprintReport{}, apperr.NotFound("sprint", string(sprintID))
	}
	members := v.Members(projectID, sprintID)
	tasks := make([]models.Task, 0, len(members))
	for _, id := range members {
		if t, ok := v.Task(id); ok {
			tasks = append(tasks, t)
		}
	}
	return SprintReport{
		Sprint:   s,
		TaskIDs:  members,
		Progress: board.ProgressDates(s.StartDate, s.EndDate, c.now()),
		Metrics:  board.Metrics(tasks),
	}, nil
}

// CurrentSprint returns the most recently created sprint of a project.
func (c *Coordinator) CurrentSprint(ctx context.Context, projectID types.ProjectID) (models.Sprint, error) {
	v, err := c.scopeView(ctx, projectID)
	if err != nil {
		return models.Sprint{}, err
	}
	s, ok := board.CurrentSprint(v.Sprints(projectID))
	if !ok {
		return models.Sprint{}, apperr.Newf(apperr.KindNotFound, "project %s has no sprints", projectID)
	}
	return s, nil
}
