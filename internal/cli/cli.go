// Package cli holds the pieces shared by every scope command: the CLI
// container, output formatting, exit codes and flag helpers.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/thenoetrevino/scope/internal/app"
	"github.com/thenoetrevino/scope/internal/cli/styles"
	"github.com/thenoetrevino/scope/internal/config"
	"github.com/thenoetrevino/scope/internal/coordinator"
)

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Application container with the coordinator
	Config *config.Config
	ctx    context.Context
	closer io.Closer
}

// NewCLI builds the application container from cfg.
func NewCLI(ctx context.Context, cfg *config.Config, opts ...app.Option) (*CLI, error) {
	application, err := app.New(ctx, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}
	styles.Init(cfg.ColorScheme)
	return &CLI{App: application, Config: cfg, ctx: ctx}, nil
}

// Coordinator is a shortcut for c.App.Coordinator.
func (c *CLI) Coordinator() *coordinator.Coordinator {
	return c.App.Coordinator
}

// SetLogCloser hands the log file to the CLI so Close releases it.
func (c *CLI) SetLogCloser(closer io.Closer) {
	c.closer = closer
}

// DrainNotices writes pending fallback notices to w.
func (c *CLI) DrainNotices(w io.Writer) {
	for {
		select {
		case n := <-c.App.Coordinator.Notices():
			fmt.Fprintln(w, styles.WarningStyle.Render("! "+n.Message))
		default:
			return
		}
	}
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	err := c.App.Close()
	if c.closer != nil {
		if cerr := c.closer.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
