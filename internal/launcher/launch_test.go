package launcher

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/scope/internal/apperr"
	"github.com/thenoetrevino/scope/internal/config"
	"github.com/thenoetrevino/scope/internal/database"
	"github.com/thenoetrevino/scope/internal/logging"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Server.DBPath = database.MemoryPath
	cfg.Server.JWTSecret = "launcher-secret"
	cfg.Server.ListenAddr = "127.0.0.1:0"
	return cfg
}

func openInstance(t *testing.T) *Instance {
	t.Helper()
	inst, err := Open(context.Background(), testConfig(), logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = inst.Close() })
	return inst
}

// ============================================================================
// Open
// ============================================================================

func TestOpen_RequiresSecret(t *testing.T) {
	cfg := testConfig()
	cfg.Server.JWTSecret = ""

	_, err := Open(context.Background(), cfg, logging.Discard())
	assert.ErrorContains(t, err, "jwt secret")
}

func TestOpen_ExposesMetrics(t *testing.T) {
	inst := openInstance(t)
	ts := httptest.NewServer(inst.Server.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "go_goroutines")
}

// ============================================================================
// Users
// ============================================================================

func TestAddUser(t *testing.T) {
	inst := openInstance(t)
	ctx := context.Background()

	u, err := inst.AddUser(ctx, "bob", "secret-pass", "bob@example.com", "Bob")
	require.NoError(t, err)
	assert.Equal(t, "bob", u.Username)
	assert.NotZero(t, u.ID)

	_, err = inst.AddUser(ctx, "bob", "secret-pass", "", "")
	assert.Equal(t, apperr.KindDuplicateKey, apperr.KindOf(err))

	_, err = inst.AddUser(ctx, "carol", "123", "", "")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

// ============================================================================
// Serve
// ============================================================================

func TestServe_StopsOnCancel(t *testing.T) {
	inst := openInstance(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- inst.Serve(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(DrainTimeout + time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
