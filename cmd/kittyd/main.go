// Command kittyd serves the kitty ledger over Connect RPC.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/mmynk/kitty/internal/auth"
	"github.com/mmynk/kitty/internal/config"
	"github.com/mmynk/kitty/internal/ledger"
	"github.com/mmynk/kitty/internal/metrics"
	"github.com/mmynk/kitty/internal/server"
	"github.com/mmynk/kitty/internal/storage/sqlite"
	"github.com/mmynk/kitty/pkg/logging"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "kittyd",
		Short:        "kittyd - shared kitty and consumption ledger",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to YAML config file")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newMigrateCommand(opts))
	return cmd
}

// loadConfig reads the config and installs the logger it asks for.
func loadConfig(opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	level, err := config.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	logging.Setup(level)
	return cfg, nil
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the RPC server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if cfg.Auth.JWTSecret == "" {
				return errors.New("auth.jwt_secret (or JWT_SECRET) must be set")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	store, err := sqlite.New(cfg.Database.Path, sqlite.Options{
		MaxAttempts: cfg.Database.MaxAttempts,
		Metrics:     m,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.Database.Path)

	l := ledger.New(store, ledger.WithMetrics(m))
	handler := server.NewHandler(server.Options{
		Ledger:         l,
		Authenticator:  auth.NewPasswordAuthenticator(l),
		JWTManager:     auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Gatherer:       reg,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	return server.ListenAndServe(ctx, cfg.Server.ListenAddr, handler, cfg.Server.ShutdownTimeout)
}

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			version, err := sqlite.Migrate(cfg.Database.Path)
			if err != nil {
				return err
			}
			slog.Info("Database migrated", "database", cfg.Database.Path, "version", version)
			return nil
		},
	}
}
