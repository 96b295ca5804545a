package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/scope/internal/cache"
	"github.com/thenoetrevino/scope/internal/testutil"
	clitest "github.com/thenoetrevino/scope/internal/testutil/cli"
)

func TestStatus_Local(t *testing.T) {
	c := clitest.SetupCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, c, StatusCmd(), []string{"--json"})
	require.NoError(t, err)

	status := clitest.ParseJSON(t, output)["status"].(map[string]any)
	assert.Equal(t, ModeLocal, status["mode"])
	assert.Equal(t, cache.BackendMemory, status["cacheBackend"])
	assert.NotContains(t, status, "user")
}

func TestStatus_Remote(t *testing.T) {
	c := clitest.SetupRemoteCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, c, StatusCmd(), nil)
	require.NoError(t, err)
	assert.Contains(t, output, ModeRemote)
	assert.Contains(t, output, testutil.TestUser)
}

func TestStatus_Fallback(t *testing.T) {
	cfg := clitest.TestConfig(t)
	cfg.Remote.URL = "http://127.0.0.1:1"
	c := clitest.NewTestCLI(t, cfg)

	output, err := clitest.ExecuteCLICommand(t, c, StatusCmd(), []string{"--quiet"})
	require.NoError(t, err)
	assert.Equal(t, ModeFallback+"\n", output)
}
