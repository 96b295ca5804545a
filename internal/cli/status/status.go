// Package status holds the command that reports the CLI's mode and data
//
// e.g., scope status
package status

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/cache"
	"github.com/thenoetrevino/scope/internal/cli/data"
	"github.com/thenoetrevino/scope/internal/cli/handler"
	"github.com/thenoetrevino/scope/internal/cli/styles"
	"github.com/thenoetrevino/scope/internal/coordinator"
)

// Report is the JSON shape of scope status.
type Report struct {
	Mode         string           `json:"mode"`
	RemoteURL    string           `json:"remoteUrl,omitempty"`
	User         string           `json:"user,omitempty"`
	CacheBackend string           `json:"cacheBackend"`
	CachePath    string           `json:"cachePath,omitempty"`
	Info         coordinator.Info `json:"info"`
}

// Modes reported by scope status
const (
	ModeRemote   = "remote"
	ModeFallback = "local (remote unreachable)"
	ModeLocal    = "local"
)

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether the remote store is in use and what is cached",
		Args:  cobra.NoArgs,
		RunE:  handler.Command(runStatus),
	}
	handler.AddOutputFlags(cmd)
	return cmd
}

func runStatus(ctx context.Context, env *handler.Env) error {
	cfg := env.CLI.Config
	coord := env.Coordinator()

	info, err := coord.Info(ctx)
	if err != nil {
		return err
	}
	report := Report{
		Mode:         ModeLocal,
		RemoteURL:    cfg.Remote.URL,
		CacheBackend: cfg.Cache.Backend,
		Info:         info,
	}
	switch cfg.Cache.Backend {
	case cache.BackendSQLite:
		report.CachePath = cfg.Cache.Path
	case cache.BackendRedis:
		report.CachePath = cfg.Cache.RedisURL
	}
	if cfg.RemoteEnabled() {
		report.Mode = ModeFallback
		if coord.RemoteEnabled() {
			report.Mode = ModeRemote
			// Status is informational; an expired session is not an error here
			if user, err := env.CLI.App.WhoAmI(ctx); err == nil {
				report.User = user.Username
			}
		}
	}

	switch {
	case env.Out.Quiet:
		env.Out.Println(report.Mode)
		return nil
	case env.Out.JSON:
		return env.Out.Object("status", report)
	}

	fields := []styles.Field{
		{Label: "Mode", Value: report.Mode},
		{Label: "Remote", Value: report.RemoteURL},
		{Label: "User", Value: report.User},
		{Label: "Cache", Value: report.CachePath},
	}
	env.Out.Println(styles.Card("scope", "", fields))
	env.Out.Println(data.RenderInfo("Local data", report.CacheBackend, info))
	return nil
}
