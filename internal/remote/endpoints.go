package remote

import (
	"context"
	"net/url"

	"github.com/thenoetrevino/scope/internal/models"
	"github.com/thenoetrevino/scope/internal/store"
	"github.com/thenoetrevino/scope/internal/types"
)

// ============================================================================
// SESSION AND SEQUENCES
// ============================================================================

// Health checks the store. It never sends the bearer credential.
func (c *Client) Health(ctx context.Context) error {
	return c.get(ctx, "/api/health", nil, nil)
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// User describes the authenticated account.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	var out LoginResponse
	err := c.post(ctx, "/api/auth/login", LoginRequest{Username: username, Password: password}, &out)
	return out, err
}

// Verify checks the current token and returns its user.
func (c *Client) Verify(ctx context.Context) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	err := c.get(ctx, "/api/auth/verify", nil, &out)
	return out.User, err
}

// NextID asks the store for the next identifier of prefix within scope.
func (c *Client) NextID(ctx context.Context, prefix, scope string) (string, error) {
	var q url.Values
	if scope != "" {
		q = url.Values{"scope": []string{scope}}
	}
	var out IDDTO
	if err := c.get(ctx, "/api/generate-id/"+seg(prefix), q, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// ============================================================================
// PROJECTS
// ============================================================================

func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	var out []ProjectDTO
	if err := c.get(ctx, "/api/projects", nil, &out); err != nil {
		return nil, err
	}
	return mapSlice(out, ProjectFromWire), nil
}

func (c *Client) GetProject(ctx context.Context, id types.ProjectID) (models.Project, error) {
	var out ProjectDTO
	err := c.get(ctx, "/api/projects/"+seg(string(id)), nil, &out)
	return ProjectFromWire(out), err
}

// CreateProject creates the project; the store adds its default columns.
func (c *Client) CreateProject(ctx context.Context, p models.Project) error {
	return c.post(ctx, "/api/projects", ProjectToWire(p), &CreatedDTO{})
}

func (c *Client) UpdateProject(ctx context.Context, p models.Project) error {
	return c.put(ctx, "/api/projects/"+seg(string(p.ID)), ProjectToWire(p))
}

func (c *Client) DeleteProject(ctx context.Context, id types.ProjectID) error {
	return c.del(ctx, "/api/projects/"+seg(string(id)))
}

// ============================================================================
// TASKS
// ============================================================================

func (c *Client) ListTasks(ctx context.Context, projectID types.ProjectID) ([]models.Task, error) {
	var out []TaskDTO
	if err := c.get(ctx, "/api/tasks", projectQuery(string(projectID)), &out); err != nil {
		return nil, err
	}
	return mapSlice(out, TaskFromWire), nil
}

func (c *Client) GetTask(ctx context.Context, id types.TaskID) (models.Task, error) {
	var out TaskDTO
	err := c.get(ctx, "/api/tasks/"+seg(string(id)), nil, &out)
	return TaskFromWire(out), err
}

func (c *Client) CreateTask(ctx context.Context, t models.Task) error {
	return c.post(ctx, "/api/tasks", TaskToWire(t), &CreatedDTO{})
}

func (c *Client) UpdateTask(ctx context.Context, t models.Task) error {
	return c.put(ctx, "/api/tasks/"+seg(string(t.ID)), TaskToWire(t))
}

func (c *Client) DeleteTask(ctx context.Context, id types.TaskID) error {
	return c.del(ctx, "/api/tasks/"+seg(string(id)))
}

// ============================================================================
// SPRINTS
// ============================================================================

func sprintsPath(projectID types.ProjectID) string {
	return "/api/projects/" + seg(string(projectID)) + "/sprints"
}

func sprintPath(projectID types.ProjectID, id types.SprintID) string {
	return sprintsPath(projectID) + "/" + seg(string(id))
}

func (c *Client) ListSprints(ctx context.Context, projectID types.ProjectID) ([]store.SprintRecord, error) {
	var out []SprintDTO
	if err := c.get(ctx, sprintsPath(projectID), nil, &out); err != nil {
		return nil, err
	}
	return mapSlice(out, SprintFromWire), nil
}

func (c *Client) GetSprint(ctx context.Context, projectID types.ProjectID, id types.SprintID) (store.SprintRecord, error) {
	var out SprintDTO
	err := c.get(ctx, sprintPath(projectID, id), nil, &out)
	return SprintFromWire(out), err
}

// CreateSprint creates the sprint together with its initial members.
func (c *Client) CreateSprint(ctx context.Context, rec store.SprintRecord) error {
	return c.post(ctx, sprintsPath(rec.ProjectID), SprintToWire(rec), &CreatedDTO{})
}

func (c *Client) UpdateSprint(ctx context.Context, s models.Sprint) error {
	dto := SprintToWire(store.SprintRecord{Sprint: s})
	dto.TaskIDs = nil
	return c.put(ctx, sprintPath(s.ProjectID, s.ID), dto)
}

func (c *Client) DeleteSprint(ctx context.Context, projectID types.ProjectID, id types.SprintID) error {
	return c.del(ctx, sprintPath(projectID, id))
}

func (c *Client) AttachTask(ctx context.Context, projectID types.ProjectID, sprintID types.SprintID, taskID types.TaskID) error {
	return c.post(ctx, sprintPath(projectID, sprintID)+"/tasks", AttachDTO{TaskIDs: []string{string(taskID)}}, nil)
}

func (c *Client) DetachTask(ctx context.Context, projectID types.ProjectID, sprintID types.SprintID, taskID types.TaskID) error {
	return c.del(ctx, sprintPath(projectID, sprintID)+"/tasks/"+seg(string(taskID)))
}

// ============================================================================
// COLUMNS
// ============================================================================

func (c *Client) ListColumns(ctx context.Context, projectID types.ProjectID) ([]models.Column, error) {
	var out []ColumnDTO
	if err := c.get(ctx, "/api/columns", projectQuery(string(projectID)), &out); err != nil {
		return nil, err
	}
	return mapSlice(out, ColumnFromWire), nil
}

func (c *Client) GetColumn(ctx context.Context, id types.ColumnID) (models.Column, error) {
	var out ColumnDTO
	err := c.get(ctx, "/api/columns/"+seg(string(id)), nil, &out)
	return ColumnFromWire(out), err
}

func (c *Client) CreateColumn(ctx context.Context, col models.Column) error {
	return c.post(ctx, "/api/columns", ColumnToWire(col), &CreatedDTO{})
}

func (c *Client) UpdateColumn(ctx context.Context, col models.Column) error {
	return c.put(ctx, "/api/columns/"+seg(string(col.ID)), ColumnToWire(col))
}

func (c *Client) DeleteColumn(ctx context.Context, id types.ColumnID) error {
	return c.del(ctx, "/api/columns/"+seg(string(id)))
}

// ReorderColumns sends the full ordered column list of a project.
func (c *Client) ReorderColumns(ctx context.Context, projectID types.ProjectID, ordered []types.ColumnID) error {
	return c.put(ctx, "/api/columns/reorder", ReorderDTO{
		ProjectID: string(projectID),
		ColumnIDs: types.Strings(ordered),
	})
}

// ============================================================================
// RISKS
// ============================================================================

func (c *Client) ListRisks(ctx context.Context, projectID types.ProjectID) ([]models.Risk, error) {
	var out []RiskDTO
	if err := c.get(ctx, "/api/risks", projectQuery(string(projectID)), &out); err != nil {
		return nil, err
	}
	return mapSlice(out, RiskFromWire), nil
}

func (c *Client) GetRisk(ctx context.Context, id types.RiskID) (models.Risk, error) {
	var out RiskDTO
	err := c.get(ctx, "/api/risks/"+seg(string(id)), nil, &out)
	return RiskFromWire(out), err
}

func (c *Client) CreateRisk(ctx context.Context, r models.Risk) error {
	return c.post(ctx, "/api/risks", RiskToWire(r), &CreatedDTO{})
}

func (c *Client) UpdateRisk(ctx context.Context, r models.Risk) error {
	return c.put(ctx, "/api/risks/"+seg(string(r.ID)), RiskToWire(r))
}

func (c *Client) DeleteRisk(ctx context.Context, id types.RiskID) error {
	return c.del(ctx, "/api/risks/"+seg(string(id)))
}

func (c *Client) RiskStats(ctx context.Context, projectID types.ProjectID) (models.RiskStats, error) {
	var out RiskStatsDTO
	if err := c.get(ctx, "/api/risks/stats/"+seg(string(projectID)), nil, &out); err != nil {
		return models.RiskStats{}, err
	}
	return RiskStatsFromWire(out), nil
}

// ============================================================================
// MINUTES
// ============================================================================

func (c *Client) ListMinutes(ctx context.Context, projectID types.ProjectID) ([]models.Minutes, error) {
	var out []MinutesDTO
	if err := c.get(ctx, "/api/minutes", projectQuery(string(projectID)), &out); err != nil {
		return nil, err
	}
	return mapSlice(out, MinutesFromWire), nil
}

func (c *Client) GetMinutes(ctx context.Context, id types.MinutesID) (models.Minutes, error) {
	var out MinutesDTO
	err := c.get(ctx, "/api/minutes/"+seg(string(id)), nil, &out)
	return MinutesFromWire(out), err
}

func (c *Client) CreateMinutes(ctx context.Context, m models.Minutes) error {
	return c.post(ctx, "/api/minutes", MinutesToWire(m), &CreatedDTO{})
}

func (c *Client) UpdateMinutes(ctx context.Context, m models.Minutes) error {
	return c.put(ctx, "/api/minutes/"+seg(string(m.ID)), MinutesToWire(m))
}

func (c *Client) DeleteMinutes(ctx context.Context, id types.MinutesID) error {
	return c.del(ctx, "/api/minutes/"+seg(string(id)))
}

// ============================================================================
// PROJECT SCOPE
// ============================================================================

// FetchScope downloads every collection of one project.
func (c *Client) FetchScope(ctx context.Context, projectID types.ProjectID) (store.Scope, error) {
	var sc store.Scope
	var err error
	if sc.Project, err = c.GetProject(ctx, projectID); err != nil {
		return store.Scope{}, err
	}
	if sc.Tasks, err = c.ListTasks(ctx, projectID); err != nil {
		return store.Scope{}, err
	}
	if sc.Sprints, err = c.ListSprints(ctx, projectID); err != nil {
		return store.Scope{}, err
	}
	if sc.Columns, err = c.ListColumns(ctx, projectID); err != nil {
		return store.Scope{}, err
	}
	if sc.Risks, err = c.ListRisks(ctx, projectID); err != nil {
		return store.Scope{}, err
	}
	if sc.Minutes, err = c.ListMinutes(ctx, projectID); err != nil {
		return store.Scope{}, err
	}
	return sc, nil
}
