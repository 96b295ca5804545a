package user

import (
	"testing"
)

func TestLoginName_PrefersOverride(t *testing.T) {
	t.Setenv(EnvUser, "  alice ")

	if got := LoginName(); got != "alice" {
		t.Errorf("LoginName() = %q, want %q", got, "alice")
	}
}

func TestLoginName_FallsBackToSystemUser(t *testing.T) {
	t.Setenv(EnvUser, "")
	t.Setenv("USER", "fallback")

	// user.Current normally succeeds; either answer is a real name.
	if got := LoginName(); got == "" {
		t.Error("LoginName() returned an empty name")
	}
}
