// Package auth holds the commands that manage the remote session
//
// e.g., scope login, scope logout, scope whoami
package auth

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/thenoetrevino/scope/internal/app"
	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/remote"
)

// requireRemote reports a usage error when no remote store is configured.
func requireRemote(env *handler.Env) error {
	if env.CLI.App.Remote() == nil {
		return env.Out.Usage(app.ErrNoRemote, "Set remote.url in the config file or export SCOPE_REMOTE_URL")
	}
	return nil
}

// readPassword reads a password without echo from a terminal, or a single
// line from anything else.
func readPassword(env *handler.Env) (string, error) {
	in := env.Cmd().InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(env.Cmd().ErrOrStderr(), "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(env.Cmd().ErrOrStderr())
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func printUser(env *handler.Env, u remote.User, headline string) error {
	switch {
	case env.Out.Quiet:
		return env.Out.IDs(u.Username)
	case env.Out.JSON:
		return env.Out.Object("user", u)
	}
	env.Out.Println(headline)
	if u.FullName != "" {
		env.Out.Printf("  Name:  %s\n", u.FullName)
	}
	if u.Email != "" {
		env.Out.Printf("  Email: %s\n", u.Email)
	}
	env.Out.Printf("  Server: %s\n", env.CLI.Config.Remote.URL)
	return nil
}
