// Package cli sets up CLI instances for command tests. It is separate from
// testutil so that server-side tests do not pull in the command packages.
package cli

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/thenoetrevino/scope/internal/app"
	"github.com/thenoetrevino/scope/internal/cache"
	scopecli "github.com/thenoetrevino/scope/internal/cli"
	"github.com/thenoetrevino/scope/internal/config"
	"github.com/thenoetrevino/scope/internal/logging"
	"github.com/thenoetrevino/scope/internal/testutil"
)

// FixedNow is the clock of every test CLI.
var FixedNow = time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)

// TestConfig returns defaults rooted in a temp directory.
func TestConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Cache.Backend = cache.BackendMemory
	cfg.Cache.Path = filepath.Join(dir, "cache.db")
	cfg.Remote.SessionFile = filepath.Join(dir, "session")
	cfg.Log.Dir = dir
	return cfg
}

// SetupCLITest creates a local-only CLI over an in-memory cache.
func SetupCLITest(t *testing.T) *scopecli.CLI {
	t.Helper()
	return NewTestCLI(t, TestConfig(t))
}

// SetupRemoteCLITest creates a CLI talking to a fresh reference server and
// logged in as the test user.
func SetupRemoteCLITest(t *testing.T) *scopecli.CLI {
	t.Helper()
	ts := testutil.StartServer(t)
	cfg := TestConfig(t)
	cfg.Remote.URL = ts.URL

	c := NewTestCLI(t, cfg)
	if _, err := c.App.Login(context.Background(), testutil.TestUser, testutil.TestPassword); err != nil {
		t.Fatalf("Failed to log in: %v", err)
	}
	return c
}

// NewTestCLI builds a CLI from cfg with a fixed clock and a silent logger.
func NewTestCLI(t *testing.T, cfg *config.Config) *scopecli.CLI {
	t.Helper()
	c, err := scopecli.NewCLI(context.Background(), cfg,
		app.WithLogger(logging.Discard()),
		app.WithClock(func() time.Time { return FixedNow }),
	)
	if err != nil {
		t.Fatalf("Failed to create CLI: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}
