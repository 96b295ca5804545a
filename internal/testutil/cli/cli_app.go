package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"

	scopecli "github.com/thenoetrevino/scope/internal/cli"
)

// Result is the captured output of one command run.
type Result struct {
	Stdout string
	Stderr string
	Err    error
}

// ExecuteCLICommand executes a CLI command with a test CLI instance and
// returns its standard output.
func ExecuteCLICommand(t *testing.T, c *scopecli.CLI, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()
	res := Run(t, c, cmd, args)
	return res.Stdout, res.Err
}

// Run executes cmd with c injected into its context and captures both streams.
func Run(t *testing.T, c *scopecli.CLI, cmd *cobra.Command, args []string) Result {
	t.Helper()

	if c == nil {
		t.Fatal("test CLI cannot be nil - SetupCLITest must be called first")
	}

	if args == nil {
		// cobra falls back to os.Args on nil
		args = []string{}
	}
	var stdout, stderr bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	// Disable usage output on error for cleaner test output
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(scopecli.WithCLI(context.Background(), c))
	return Result{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}

// ParseJSON parses JSON output from CLI commands
func ParseJSON(t *testing.T, output string) map[string]any {
	t.Helper()

	var result map[string]any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
	}
	return result
}
