package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/thenoetrevino/scope/internal/apperr"
	"github.com/thenoetrevino/scope/internal/database"
	"github.com/thenoetrevino/scope/internal/metrics"
	"github.com/thenoetrevino/scope/internal/models"
	"github.com/thenoetrevino/scope/internal/remote"
	"github.com/thenoetrevino/scope/internal/store"
	"github.com/thenoetrevino/scope/internal/types"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

var fixedNow = time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)

const (
	testSecret   = "test-secret"
	testUser     = "alice"
	testPassword = "correct-horse"
)

type harness struct {
	srv    *Server
	http   *httptest.Server
	client *remote.Client
	reg    *prometheus.Registry
}

// newHarness starts a server over an in-memory database with one registered
// user and returns a client already logged in.
func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := context.Background()

	db, err := database.InitServerDB(ctx, database.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	auth, err := NewAuth(testSecret, WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	srv := New(database.NewRepository(db), auth,
		WithMetrics(metrics.NewHTTP(reg), reg),
		WithClock(func() time.Time { return fixedNow }),
	)
	_, err = srv.RegisterUser(ctx, testUser, testPassword, "alice@example.com", "Alice")
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	resp, err := remote.New(ts.URL).Login(ctx, testUser, testPassword)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	client := remote.New(ts.URL, remote.WithSession(remote.NewStaticSession(resp.Token)))

	return &harness{srv: srv, http: ts, client: client, reg: reg}
}

func (h *harness) project(t *testing.T, id types.ProjectID) {
	t.Helper()
	require.NoError(t, h.client.CreateProject(context.Background(), models.Project{ID: id, Name: "Project " + string(id)}))
}

func (h *harness) task(t *testing.T, pid types.ProjectID, id types.TaskID, status string) {
	t.Helper()
	require.NoError(t, h.client.CreateTask(context.Background(), models.Task{
		ID: id, ProjectID: pid, Title: "Task " + string(id), Status: status,
	}))
}

// ============================================================================
// AUTH TESTS
// ============================================================================

func TestHealth_NoAuth(t *testing.T) {
	h := newHarness(t)
	resp, err := http.Get(h.http.URL + "/api/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMissingToken_Unauthorized(t *testing.T) {
	h := newHarness(t)
	resp, err := http.Get(h.http.URL + "/api/projects")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"error"`)

	anon := remote.New(h.http.URL)
	_, err = anon.ListProjects(context.Background())
	assert.True(t, errors.Is(err, apperr.ErrAuth), "got %v", err)
}

func TestLogin_WrongPassword(t *testing.T) {
	h := newHarness(t)
	_, err := remote.New(h.http.URL).Login(context.Background(), testUser, "nope")
	assert.True(t, errors.Is(err, apperr.ErrAuth), "got %v", err)

	_, err = remote.New(h.http.URL).Login(context.Background(), "mallory", testPassword)
	assert.True(t, errors.Is(err, apperr.ErrAuth), "got %v", err)
}

func TestVerify_ReturnsUser(t *testing.T) {
	h := newHarness(t)
	u, err := h.client.Verify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testUser, u.Username)
	assert.Equal(t, "Alice", u.FullName)
}

func TestRegisterUser_DuplicateAndValidation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.srv.RegisterUser(ctx, testUser, "another-pass", "", "")
	assert.True(t, errors.Is(err, apperr.ErrDuplicateKey), "got %v", err)

	_, err = h.srv.RegisterUser(ctx, "bob", "123", "", "")
	assert.True(t, errors.Is(err, apperr.ErrValidation), "got %v", err)
}

func TestAuth_RejectsForeignAndExpiredTokens(t *testing.T) {
	t.Parallel()

	auth, err := NewAuth(testSecret, WithAuthClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	token, err := auth.Issue(database.User{ID: 7, Username: "alice"})
	require.NoError(t, err)

	id, err := auth.UserIDFromAuthHeader("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	other, err := NewAuth("another-secret", WithAuthClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	_, err = other.UserIDFromAuthHeader("Bearer " + token)
	assert.Error(t, err)

	later, err := NewAuth(testSecret, WithAuthClock(func() time.Time { return fixedNow.Add(25 * time.Hour) }))
	require.NoError(t, err)
	_, err = later.UserIDFromAuthHeader("Bearer " + token)
	assert.Error(t, err)

	for _, h := range []string{"", "Basic abc", "Bearer "} {
		_, err := auth.UserIDFromAuthHeader(h)
		assert.Error(t, err, "header %q", h)
	}
}

func TestAuth_ValidationFollowsInjectedClock(t *testing.T) {
	t.Parallel()

	future := time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)
	auth, err := NewAuth(testSecret, WithAuthClock(func() time.Time { return future }))
	require.NoError(t, err)
	token, err := auth.Issue(database.User{ID: 3, Username: "bob"})
	require.NoError(t, err)

	id, err := auth.UserIDFromAuthHeader("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)

	earlier, err := NewAuth(testSecret, WithAuthClock(func() time.Time { return future.Add(-time.Hour) }))
	require.NoError(t, err)
	_, err = earlier.UserIDFromAuthHeader("Bearer " + token)
	assert.Error(t, err, "a token issued after the clock's now is not valid yet")
}

func TestNewAuth_EmptySecret(t *testing.T) {
	t.Parallel()
	_, err := NewAuth("")
	assert.Error(t, err)
}

// ============================================================================
// IDENTIFIER TESTS
// ============================================================================

func TestGenerateID_SequentialAndBumped(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	first, err := h.client.NextID(ctx, types.ProjectPrefix, "")
	require.NoError(t, err)
	second, err := h.client.NextID(ctx, types.ProjectPrefix, "")
	require.NoError(t, err)
	assert.Equal(t, "P1", first)
	assert.Equal(t, "P2", second)

	h.project(t, "P9")
	next, err := h.client.NextID(ctx, types.ProjectPrefix, "")
	require.NoError(t, err)
	assert.Equal(t, "P10", next)

	s1, err := h.client.NextID(ctx, types.SprintPrefix, "P9")
	require.NoError(t, err)
	s2, err := h.client.NextID(ctx, types.SprintPrefix, "P10")
	require.NoError(t, err)
	assert.Equal(t, "S1", s1)
	assert.Equal(t, "S1", s2, "sprint sequences are per project")

	_, err = h.client.NextID(ctx, "X", "")
	assert.True(t, errors.Is(err, apperr.ErrValidation), "got %v", err)
}

// ============================================================================
// PROJECT AND TASK TESTS
// ============================================================================

func TestCreateProject_DefaultColumnsAndConflict(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.project(t, "P1")

	cols, err := h.client.ListColumns(ctx, "P1")
	require.NoError(t, err)
	require.Len(t, cols, 4)
	for i, c := range cols {
		assert.Equal(t, i, c.OrderIndex)
		assert.True(t, c.IsDefault)
	}

	err = h.client.CreateProject(ctx, models.Project{ID: "P1", Name: "Again"})
	assert.True(t, errors.Is(err, apperr.ErrDuplicateKey), "got %v", err)

	p, err := h.client.GetProject(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, "Project P1", p.Name)
	assert.Equal(t, fixedNow, p.CreatedAt)
}

func TestCreateProject_RequiresName(t *testing.T) {
	h := newHarness(t)
	err := h.client.CreateProject(context.Background(), models.Project{ID: "P1", Name: "  "})
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae), "got %v", err)
	assert.Equal(t, apperr.KindValidation, ae.Kind)
	assert.Equal(t, "name", ae.Field)
}

func TestTasks_DefaultsAndStatusCheck(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.project(t, "P1")
	h.task(t, "P1", "T1", "")

	task, err := h.client.GetTask(ctx, "T1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusTodo, task.Status)
	assert.Equal(t, models.PriorityMedium, task.Priority)

	err = h.client.CreateTask(ctx, models.Task{ID: "T2", ProjectID: "P1", Title: "x", Status: "Review"})
	assert.True(t, errors.Is(err, apperr.ErrValidation), "got %v", err)

	err = h.client.CreateTask(ctx, models.Task{ID: "T3", ProjectID: "P404", Title: "x"})
	assert.True(t, errors.Is(err, apperr.ErrNotFound), "got %v", err)

	task.Status = models.StatusDone
	task.ProjectID = "P404"
	require.NoError(t, h.client.UpdateTask(ctx, task))
	task, err = h.client.GetTask(ctx, "T1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, task.Status)
	assert.Equal(t, types.ProjectID("P1"), task.ProjectID, "project is immutable")
}

func TestDeleteProject_Cascades(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.project(t, "P1")
	h.task(t, "P1", "T1", "")
	require.NoError(t, h.client.CreateRisk(ctx, models.Risk{ID: "R1", ProjectID: "P1", Name: "r", Impact: 2, Probability: 2}))

	require.NoError(t, h.client.DeleteProject(ctx, "P1"))

	tasks, err := h.client.ListTasks(ctx, "P1")
	require.NoError(t, err)
	assert.Empty(t, tasks)
	risks, err := h.client.ListRisks(ctx, "P1")
	require.NoError(t, err)
	assert.Empty(t, risks)

	err = h.client.DeleteProject(ctx, "P1")
	assert.True(t, errors.Is(err, apperr.ErrNotFound), "got %v", err)
}

// ============================================================================
// SPRINT TESTS
// ============================================================================

func TestSprints_MembershipRules(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.project(t, "P1")
	h.project(t, "P2")
	h.task(t, "P1", "T1", "")
	h.task(t, "P1", "T2", "")
	h.task(t, "P2", "T3", "")

	require.NoError(t, h.client.CreateSprint(ctx, store.SprintRecord{
		Sprint:  models.Sprint{ID: "S1", ProjectID: "P1", Name: "Sprint 1"},
		TaskIDs: []types.TaskID{"T1"},
	}))
	rec, err := h.client.GetSprint(ctx, "P1", "S1")
	require.NoError(t, err)
	assert.Equal(t, models.SprintPlanning, rec.Status)
	assert.Equal(t, []types.TaskID{"T1"}, rec.TaskIDs)

	err = h.client.AttachTask(ctx, "P1", "S1", "T1")
	assert.True(t, errors.Is(err, apperr.ErrDuplicateKey), "got %v", err)

	err = h.client.AttachTask(ctx, "P1", "S1", "T3")
	assert.True(t, errors.Is(err, apperr.ErrValidation), "got %v", err)

	require.NoError(t, h.client.AttachTask(ctx, "P1", "S1", "T2"))
	require.NoError(t, h.client.DetachTask(ctx, "P1", "S1", "T1"))
	rec, err = h.client.GetSprint(ctx, "P1", "S1")
	require.NoError(t, err)
	assert.Equal(t, []types.TaskID{"T2"}, rec.TaskIDs)

	err = h.client.DetachTask(ctx, "P1", "S1", "T1")
	assert.True(t, errors.Is(err, apperr.ErrNotFound), "got %v", err)

	// the same sprint ID in another project is a different sprint
	require.NoError(t, h.client.CreateSprint(ctx, store.SprintRecord{
		Sprint: models.Sprint{ID: "S1", ProjectID: "P2", Name: "Other"},
	}))

	err = h.client.CreateSprint(ctx, store.SprintRecord{
		Sprint:  models.Sprint{ID: "S2", ProjectID: "P1", Name: "Bad"},
		TaskIDs: []types.TaskID{"T3"},
	})
	assert.True(t, errors.Is(err, apperr.ErrValidation), "got %v", err)
	_, err = h.client.GetSprint(ctx, "P1", "S2")
	assert.True(t, errors.Is(err, apperr.ErrNotFound), "failed create must leave nothing behind")

	require.NoError(t, h.client.DeleteTask(ctx, "T2"))
	rec, err = h.client.GetSprint(ctx, "P1", "S1")
	require.NoError(t, err)
	assert.Empty(t, rec.TaskIDs)
}

// ============================================================================
// COLUMN TESTS
// ============================================================================

func TestColumns_Lifecycle(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.project(t, "P1")

	require.NoError(t, h.client.CreateColumn(ctx, models.Column{ProjectID: "P1", Name: "Review"}))
	cols, err := h.client.ListColumns(ctx, "P1")
	require.NoError(t, err)
	require.Len(t, cols, 5)
	review := cols[4]
	assert.Equal(t, types.ColumnID("P1_C1"), review.ID)
	assert.Equal(t, 4, review.OrderIndex)
	assert.False(t, review.IsDefault)

	err = h.client.CreateColumn(ctx, models.Column{ProjectID: "P1", Name: "review"})
	assert.True(t, errors.Is(err, apperr.ErrValidation), "duplicate name: %v", err)
	err = h.client.CreateColumn(ctx, models.Column{ProjectID: "P1", Name: "done"})
	assert.True(t, errors.Is(err, apperr.ErrValidation), "reserved name: %v", err)

	h.task(t, "P1", "T1", "Review")
	review.Name = "QA"
	require.NoError(t, h.client.UpdateColumn(ctx, review))
	task, err := h.client.GetTask(ctx, "T1")
	require.NoError(t, err)
	assert.Equal(t, "QA", task.Status, "tasks follow a renamed column")

	err = h.client.DeleteColumn(ctx, "P1_todo")
	assert.True(t, errors.Is(err, apperr.ErrValidation), "default column: %v", err)

	require.NoError(t, h.client.DeleteColumn(ctx, review.ID))
	task, err = h.client.GetTask(ctx, "T1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusTodo, task.Status)

	cols, err = h.client.ListColumns(ctx, "P1")
	require.NoError(t, err)
	assert.Len(t, cols, 4)
}

func TestColumns_Reorder(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.project(t, "P1")

	order := []types.ColumnID{"P1_done", "P1_todo", "P1_blocked", "P1_progress"}
	require.NoError(t, h.client.ReorderColumns(ctx, "P1", order))
	cols, err := h.client.ListColumns(ctx, "P1")
	require.NoError(t, err)
	for i, c := range cols {
		assert.Equal(t, order[i], c.ID)
		assert.Equal(t, i, c.OrderIndex)
	}

	err = h.client.ReorderColumns(ctx, "P1", order[:3])
	assert.True(t, errors.Is(err, apperr.ErrValidation), "got %v", err)
	err = h.client.ReorderColumns(ctx, "P1", []types.ColumnID{"P1_done", "P1_done", "P1_todo", "P1_blocked"})
	assert.True(t, errors.Is(err, apperr.ErrValidation), "got %v", err)

	cols, err = h.client.ListColumns(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, order[0], cols[0].ID, "rejected reorder changes nothing")
}

// ============================================================================
// RISK AND MINUTES TESTS
// ============================================================================

func TestRisks_DerivedFieldsAndStats(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.project(t, "P1")

	require.NoError(t, h.client.CreateRisk(ctx, models.Risk{ID: "R1", ProjectID: "P1", Name: "Vendor", Impact: 3, Probability: 4}))
	require.NoError(t, h.client.CreateRisk(ctx, models.Risk{ID: "R2", ProjectID: "P1", Name: "Outage", Impact: 4, Probability: 4, Status: models.RiskClosed}))

	r, err := h.client.GetRisk(ctx, "R1")
	require.NoError(t, err)
	assert.Equal(t, 12, r.RiskFactor)
	assert.Equal(t, models.AppetiteHigh, r.Appetite)
	assert.Equal(t, models.DefaultRiskStrategy, r.Strategy)

	err = h.client.CreateRisk(ctx, models.Risk{ID: "R3", ProjectID: "P1", Name: "Bad", Impact: 5, Probability: 1})
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae), "got %v", err)
	assert.Equal(t, "impact", ae.Field)

	stats, err := h.client.RiskStats(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.ByStatus[models.RiskOpen])
	assert.Equal(t, 1, stats.ByAppetite[models.AppetiteExtreme])
}

func TestMinutes_CRUD(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.project(t, "P1")

	require.NoError(t, h.client.CreateMinutes(ctx, models.Minutes{ID: "M1", ProjectID: "P1", Title: "Kickoff", Date: "2025-01-02", Content: "# Notes"}))
	require.NoError(t, h.client.CreateMinutes(ctx, models.Minutes{ID: "M2", ProjectID: "P1", Title: "Review", Date: "2025-01-09"}))

	list, err := h.client.ListMinutes(ctx, "P1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, types.MinutesID("M2"), list[0].ID, "newest meeting first")

	err = h.client.CreateMinutes(ctx, models.Minutes{ID: "M3", ProjectID: "P1", Title: "No date"})
	assert.True(t, errors.Is(err, apperr.ErrValidation), "got %v", err)

	m := list[1]
	m.Content = "# Updated"
	require.NoError(t, h.client.UpdateMinutes(ctx, m))
	got, err := h.client.GetMinutes(ctx, "M1")
	require.NoError(t, err)
	assert.Equal(t, "# Updated", got.Content)

	require.NoError(t, h.client.DeleteMinutes(ctx, "M1"))
	_, err = h.client.GetMinutes(ctx, "M1")
	assert.True(t, errors.Is(err, apperr.ErrNotFound), "got %v", err)
}

// ============================================================================
// METRICS TESTS
// ============================================================================

func TestMetricsEndpoint(t *testing.T) {
	h := newHarness(t)
	_, err := h.client.ListProjects(context.Background())
	require.NoError(t, err)

	resp, err := http.Get(h.http.URL + "/metrics")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), `scope_server_requests_total{method="GET",route="/api/projects",status="200"}`),
		"metrics output:\n%s", body)
}

func TestErrorResponse_Mapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err    error
		status int
	}{
		{apperr.Validation("name", "bad"), http.StatusBadRequest},
		{apperr.New(apperr.KindImmutableColumn, "default"), http.StatusBadRequest},
		{apperr.NotFound("task", "T1"), http.StatusNotFound},
		{apperr.New(apperr.KindDuplicateKey, "dup"), http.StatusConflict},
		{apperr.New(apperr.KindDuplicateAssociation, "dup"), http.StatusConflict},
		{apperr.New(apperr.KindAuth, "denied"), http.StatusUnauthorized},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		status, body := errorResponse(tt.err)
		assert.Equal(t, tt.status, status, "%v", tt.err)
		assert.NotEmpty(t, body.Error)
	}

	_, body := errorResponse(errors.New("secret detail"))
	assert.NotContains(t, body.Error, "secret", "internal errors are not leaked")
}
