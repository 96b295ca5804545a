package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/scope/internal/apperr"
	"github.com/thenoetrevino/scope/internal/models"
	"github.com/thenoetrevino/scope/internal/store"
	"github.com/thenoetrevino/scope/internal/types"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	data, _ := sonic.ConfigStd.Marshal(v)
	_, _ = w.Write(data)
}

// ============================================================================
// Error Classification Tests
// ============================================================================

func TestClient_StatusClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		want   apperr.Kind
	}{
		{http.StatusUnauthorized, apperr.KindAuth},
		{http.StatusConflict, apperr.KindDuplicateKey},
		{http.StatusBadRequest, apperr.KindValidation},
		{http.StatusNotFound, apperr.KindNotFound},
		{http.StatusBadGateway, apperr.KindConnectivity},
		{http.StatusServiceUnavailable, apperr.KindConnectivity},
		{http.StatusGatewayTimeout, apperr.KindConnectivity},
		{http.StatusInternalServerError, apperr.KindRemote},
		{http.StatusTeapot, apperr.KindRemote},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, ErrorDTO{Error: "nope", Field: "title"})
			}))
			defer srv.Close()

			_, err := New(srv.URL).ListTasks(context.Background(), "P1")
			require.Error(t, err)
			assert.Equal(t, tt.want, apperr.KindOf(err))
		})
	}
}

func TestClient_ValidationKeepsField(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, ErrorDTO{Error: "must be between 1 and 4", Field: "impact"})
	}))
	defer srv.Close()

	err := New(srv.URL).CreateRisk(context.Background(), models.Risk{ID: "R1"})
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "impact", ae.Field)
	assert.Equal(t, "impact: must be between 1 and 4", ae.Error())
}

func TestClient_Unreachable(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := New(url).Health(context.Background())
	assert.ErrorIs(t, err, apperr.ErrConnectivity)
}

func TestClient_TimeoutIsConnectivity(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	err := New(srv.URL, WithTimeout(50*time.Millisecond)).Health(context.Background())
	assert.ErrorIs(t, err, apperr.ErrConnectivity)
}

func TestClient_CancelledIsNotConnectivity(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := New(srv.URL).Health(ctx)
	require.Error(t, err)
	assert.NotEqual(t, apperr.KindConnectivity, apperr.KindOf(err))
}

// ============================================================================
// Header Tests
// ============================================================================

func TestClient_BearerHeader(t *testing.T) {
	t.Parallel()

	seen := map[string]string{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen[r.URL.Path] = r.Header.Get("Authorization")
		assert.NotEmpty(t, r.Header.Get(RequestIDHeader))
		switch r.URL.Path {
		case "/api/auth/login":
			writeJSON(w, http.StatusOK, LoginResponse{Token: "fresh"})
		case "/api/projects":
			writeJSON(w, http.StatusOK, []ProjectDTO{})
		default:
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		}
	}))
	defer srv.Close()

	c := New(srv.URL, WithSession(NewStaticSession("secret")))
	ctx := context.Background()
	require.NoError(t, c.Health(ctx))
	_, err := c.Login(ctx, "ana", "pw")
	require.NoError(t, err)
	_, err = c.ListProjects(ctx)
	require.NoError(t, err)

	assert.Empty(t, seen["/api/health"])
	assert.Empty(t, seen["/api/auth/login"])
	assert.Equal(t, "Bearer secret", seen["/api/projects"])
}

// ============================================================================
// Endpoint Tests
// ============================================================================

func TestClient_NextIDAndSprintRoutes(t *testing.T) {
	t.Parallel()

	var gotPath, gotScope string
	var attached AttachDTO
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/generate-id/S":
			gotScope = r.URL.Query().Get("scope")
			writeJSON(w, http.StatusOK, IDDTO{ID: "S4"})
		case r.Method == http.MethodPost:
			gotPath = r.URL.Path
			_ = sonic.ConfigStd.NewDecoder(r.Body).Decode(&attached)
			writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
		default:
			writeJSON(w, http.StatusNotFound, ErrorDTO{Error: "no route"})
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	id, err := c.NextID(context.Background(), "S", "P1")
	require.NoError(t, err)
	assert.Equal(t, "S4", id)
	assert.Equal(t, "P1", gotScope)

	require.NoError(t, c.AttachTask(context.Background(), "P1", "S4", "T9"))
	assert.Equal(t, "/api/projects/P1/sprints/S4/tasks", gotPath)
	assert.Equal(t, []string{"T9"}, attached.TaskIDs)
}

func TestClient_FetchScopeMapsWireNames(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/projects/P1":
			writeJSON(w, http.StatusOK, ProjectDTO{ID: "P1", Name: "Alpha", CreatedAt: "2025-01-01 08:00:00"})
		case "/api/tasks":
			writeJSON(w, http.StatusOK, []TaskDTO{{ID: "T1", ProjectID: "P1", Responsible: "ana", Status: "todo", StartDate: "2025-01-02", SprintIDs: []string{"S1"}}})
		case "/api/projects/P1/sprints":
			writeJSON(w, http.StatusOK, []SprintDTO{{ID: "S1", ProjectID: "P1", TaskIDs: []string{"T1"}}})
		case "/api/columns":
			writeJSON(w, http.StatusOK, []ColumnDTO{{ID: "P1_todo", ProjectID: "P1", OrderIndex: 0, IsDefault: true}})
		case "/api/risks":
			writeJSON(w, http.StatusOK, []RiskDTO{{ID: "R1", ProjectID: "P1", Impact: 3, Probability: 4, RiskFactor: 99, MitigationPlan: "watch"}})
		case "/api/minutes":
			writeJSON(w, http.StatusOK, []MinutesDTO{{ID: "M1", ProjectID: "P1", Date: "2025-01-03"}})
		default:
			writeJSON(w, http.StatusNotFound, ErrorDTO{Error: "no route"})
		}
	}))
	defer srv.Close()

	sc, err := New(srv.URL).FetchScope(context.Background(), "P1")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC), sc.Project.CreatedAt)
	require.Len(t, sc.Tasks, 1)
	assert.Equal(t, "ana", sc.Tasks[0].Assignee)
	assert.Equal(t, "2025-01-02", sc.Tasks[0].StartDate)
	require.Len(t, sc.Sprints, 1)
	assert.Equal(t, []types.TaskID{"T1"}, sc.Sprints[0].TaskIDs)
	assert.True(t, sc.Columns[0].IsDefault)
	assert.Equal(t, 12, sc.Risks[0].RiskFactor, "derived fields are recomputed")
	assert.Equal(t, models.AppetiteHigh, sc.Risks[0].Appetite)
	assert.Equal(t, "watch", sc.Risks[0].Mitigation)
	assert.Equal(t, "2025-01-03", sc.Minutes[0].Date)
}

// ============================================================================
// Mapper Tests
// ============================================================================

func TestMapper_TaskRoundTrip(t *testing.T) {
	t.Parallel()
	task := models.Task{
		ID: "T1", ProjectID: "P1", Title: "t", Description: "d", Assignee: "ana",
		Priority: models.PriorityCritical, Status: "Review", StartDate: "2025-01-01",
		EndDate: "2025-01-05", Comments: "c", CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, task, TaskFromWire(TaskToWire(task)))
}

func TestMapper_SprintRoundTrip(t *testing.T) {
	t.Parallel()
	rec := store.SprintRecord{
		Sprint:  models.Sprint{ID: "S1", ProjectID: "P1", Name: "s", Status: models.SprintPlanning},
		TaskIDs: []types.TaskID{"T1", "T2"},
	}
	assert.Equal(t, rec, SprintFromWire(SprintToWire(rec)))
}

// ============================================================================
// Session Tests
// ============================================================================

func TestFileSession(t *testing.T) {
	t.Parallel()
	s := NewFileSession(filepath.Join(t.TempDir(), "auth", "token"))

	assert.Empty(t, s.Token())
	require.NoError(t, s.Save("abc"))
	assert.Equal(t, "abc", s.Token())
	require.NoError(t, s.Reset())
	assert.Empty(t, s.Token())
	require.NoError(t, s.Reset(), "resetting twice is fine")
}
