package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/scope/internal/cli"
	"github.com/thenoetrevino/scope/internal/testutil"
	clitest "github.com/thenoetrevino/scope/internal/testutil/cli"
	"github.com/thenoetrevino/scope/internal/user"
)

func setupRemote(t *testing.T) *cli.CLI {
	t.Helper()
	ts := testutil.StartServer(t)
	cfg := clitest.TestConfig(t)
	cfg.Remote.URL = ts.URL
	return clitest.NewTestCLI(t, cfg)
}

// ============================================================================
// Login
// ============================================================================

func TestLogin_WithPasswordFlag(t *testing.T) {
	c := setupRemote(t)

	output, err := clitest.ExecuteCLICommand(t, c, LoginCmd(), []string{
		"--username", testutil.TestUser, "--password", testutil.TestPassword, "--json",
	})
	require.NoError(t, err)

	account := clitest.ParseJSON(t, output)["user"].(map[string]any)
	assert.Equal(t, testutil.TestUser, account["username"])
	assert.Equal(t, testutil.TestFullName, account["full_name"])
}

func TestLogin_PasswordFromStdin(t *testing.T) {
	c := setupRemote(t)

	cmd := LoginCmd()
	cmd.SetIn(strings.NewReader(testutil.TestPassword + "\n"))
	output, err := clitest.ExecuteCLICommand(t, c, cmd, []string{"-u", testutil.TestUser})
	require.NoError(t, err)
	assert.Contains(t, output, "Logged in as "+testutil.TestUser)
}

func TestLogin_DefaultUsername(t *testing.T) {
	c := setupRemote(t)
	t.Setenv(user.EnvUser, testutil.TestUser)

	output, err := clitest.ExecuteCLICommand(t, c, LoginCmd(), []string{"--password", testutil.TestPassword})
	require.NoError(t, err)
	assert.Contains(t, output, "Logged in as "+testutil.TestUser)
}

func TestLogin_Negative(t *testing.T) {
	c := setupRemote(t)

	res := clitest.Run(t, c, LoginCmd(), []string{"--username", testutil.TestUser, "--password", "wrong"})
	assert.Equal(t, cli.ExitAuth, cli.ExitCode(res.Err))

	t.Setenv(user.EnvUser, "mallory")
	res = clitest.Run(t, c, LoginCmd(), []string{"--password", "x"})
	assert.Equal(t, cli.ExitAuth, cli.ExitCode(res.Err))

	local := clitest.SetupCLITest(t)
	res = clitest.Run(t, local, LoginCmd(), []string{"--username", "a", "--password", "b"})
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(res.Err))
	assert.Contains(t, res.Stderr, "SCOPE_REMOTE_URL")
}

// ============================================================================
// WhoAmI / Logout
// ============================================================================

func TestWhoAmI_AndLogout(t *testing.T) {
	c := setupRemote(t)

	res := clitest.Run(t, c, WhoAmICmd(), nil)
	assert.Equal(t, cli.ExitAuth, cli.ExitCode(res.Err))

	_, err := clitest.ExecuteCLICommand(t, c, LoginCmd(), []string{
		"--username", testutil.TestUser, "--password", testutil.TestPassword,
	})
	require.NoError(t, err)

	output, err := clitest.ExecuteCLICommand(t, c, WhoAmICmd(), []string{"--quiet"})
	require.NoError(t, err)
	assert.Equal(t, testutil.TestUser+"\n", output)

	output, err = clitest.ExecuteCLICommand(t, c, LogoutCmd(), nil)
	require.NoError(t, err)
	assert.Contains(t, output, "Logged out")

	res = clitest.Run(t, c, WhoAmICmd(), nil)
	assert.Equal(t, cli.ExitAuth, cli.ExitCode(res.Err))
}
