// Package testutil starts the reference server for tests of the packages
// that talk to it.
package testutil

import (
	"context"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/thenoetrevino/scope/internal/database"
	"github.com/thenoetrevino/scope/internal/logging"
	"github.com/thenoetrevino/scope/internal/server"
)

// Credentials of the user every test server is seeded with.
const (
	TestUser     = "alice"
	TestPassword = "correct-horse"
	TestFullName = "Alice"
	TestSecret   = "testutil-secret"
)

// StartServer runs the reference server over an in-memory database. The
// server is shut down when the test ends; call Close earlier to simulate an
// outage.
func StartServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()

	db, err := database.InitServerDB(ctx, database.MemoryPath)
	if err != nil {
		t.Fatalf("Failed to create server database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	auth, err := server.NewAuth(TestSecret, server.WithBcryptCost(bcrypt.MinCost))
	if err != nil {
		t.Fatalf("Failed to create auth: %v", err)
	}
	srv := server.New(database.NewRepository(db), auth, server.WithLogger(logging.Discard()))
	if _, err := srv.RegisterUser(ctx, TestUser, TestPassword, "alice@example.com", TestFullName); err != nil {
		t.Fatalf("Failed to register test user: %v", err)
	}

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}
