// Command scope-server runs the reference remote store.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/scope/internal/config"
	"github.com/thenoetrevino/scope/internal/launcher"
	"github.com/thenoetrevino/scope/internal/logging"
)

func main() {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("scope-server failed", "error", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "scope-server",
		Short:         "Reference remote store for scope",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("db", "", "Server database path (overrides server.db_path)")
	root.AddCommand(serveCmd(), userCmd())
	return root
}

// loadConfig reads the config file and applies the command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		cfg.Server.DBPath = db
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.ListenAddr = addr
	}
	logging.InitWriter(os.Stderr, cfg.Log.SlogLevel())
	return cfg, nil
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the REST API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			inst, err := launcher.Open(cmd.Context(), cfg, slog.Default())
			if err != nil {
				return err
			}
			defer func() { _ = inst.Close() }()

			slog.Info("scope-server starting", "addr", cfg.Server.ListenAddr, "db", cfg.Server.DBPath, "pid", os.Getpid())
			if err := inst.Serve(cmd.Context()); err != nil {
				return err
			}
			slog.Info("scope-server shut down gracefully")
			return nil
		},
	}
	cmd.Flags().String("addr", "", "Listen address (overrides server.listen_addr)")
	return cmd
}

func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage server accounts",
	}
	add := &cobra.Command{
		Use:   "add <username>",
		Short: "Register an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			password, _ := cmd.Flags().GetString("password")
			if password == "" {
				password = os.Getenv("SCOPE_USER_PASSWORD")
			}
			email, _ := cmd.Flags().GetString("email")
			fullName, _ := cmd.Flags().GetString("full-name")

			inst, err := launcher.Open(cmd.Context(), cfg, slog.Default())
			if err != nil {
				return err
			}
			defer func() { _ = inst.Close() }()

			u, err := inst.AddUser(cmd.Context(), args[0], password, email, fullName)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (id %d)\n", u.Username, u.ID)
			return nil
		},
	}
	add.Flags().String("password", "", "Password (defaults to $SCOPE_USER_PASSWORD)")
	add.Flags().String("email", "", "Email address")
	add.Flags().String("full-name", "", "Display name")
	cmd.AddCommand(add)
	return cmd
}
