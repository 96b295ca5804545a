// Package user resolves the account name login uses when none is given.
package user

import (
	"os"
	"os/user"
	"strings"
)

// EnvUser overrides the login name.
const EnvUser = "SCOPE_USER"

// LoginName returns the default remote username. It tries, in order:
//  1. $SCOPE_USER
//  2. user.Current()
//  3. $USER, for restricted environments where the OS lookup fails
//
// It returns "" when none yields a name.
func LoginName() string {
	if name := strings.TrimSpace(os.Getenv(EnvUser)); name != "" {
		return name
	}
	if current, err := user.Current(); err == nil && current.Username != "" {
		return current.Username
	}
	return strings.TrimSpace(os.Getenv("USER"))
}
