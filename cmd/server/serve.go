package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/iudanet/medsync/internal/server"
	"github.com/iudanet/medsync/internal/server/handlers"
	"github.com/iudanet/medsync/internal/server/ledger"
	"github.com/iudanet/medsync/internal/server/middleware"
	"github.com/iudanet/medsync/internal/server/retention"
	syncsvc "github.com/iudanet/medsync/internal/server/sync"
	"github.com/iudanet/medsync/internal/telemetry"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the sync HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}

	flags := cmd.Flags()
	flags.String("server-address", ":8080", "HTTP listen address")
	flags.Int("sync-page-size", 100, "maximum entities per type in one pull")
	flags.Bool("tracing-enabled", false, "export traces to Jaeger")

	return cmd
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg
	logger := a.logger

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Options{
		Enabled:        cfg.Tracing.Enabled,
		Endpoint:       cfg.Tracing.Endpoint,
		ServiceName:    cfg.Tracing.ServiceName,
		ServiceVersion: Version,
		SampleRatio:    cfg.Tracing.SampleRatio,
	}, logger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Error("Failed to flush traces", "error", err)
		}
	}()

	store, err := a.openStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close storage", "error", err)
		}
	}()

	registry, err := a.newRegistry(store)
	if err != nil {
		return err
	}

	journal := ledger.New(store, logger)
	service := syncsvc.NewService(registry, journal, store, logger,
		syncsvc.WithPageSize(cfg.Sync.PageSize))

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Requests > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window, logger)
		defer limiter.Stop()
	}

	router := server.NewRouter(server.RouterDeps{
		Logger:  logger,
		Service: service,
		DB:      store,
		Limiter: limiter,
		JWT: handlers.JWTConfig{
			Secret: []byte(cfg.JWT.Secret),
			Issuer: cfg.JWT.Issuer,
		},
		Version: Version,
	})

	srv := server.New(router, server.Options{
		Address:         cfg.Server.Address,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, logger)

	worker := retention.NewWorker(journal, cfg.Retention.Window, cfg.Retention.Interval, logger)

	logger.Info("Starting MedSync server",
		"version", Version,
		"driver", cfg.Database.Driver,
		"entity_types", registry.Types())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	g.Go(func() error {
		worker.Run(gctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("Server stopped")
	return nil
}
