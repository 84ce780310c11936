// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/reelsight/internal/api"
	"github.com/tomtom215/reelsight/internal/config"
	"github.com/tomtom215/reelsight/internal/dashboard"
	"github.com/tomtom215/reelsight/internal/database"
	"github.com/tomtom215/reelsight/internal/logging"
	"github.com/tomtom215/reelsight/internal/metrics"
	"github.com/tomtom215/reelsight/internal/supervisor"
	"github.com/tomtom215/reelsight/internal/supervisor/services"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// Supervisor and HTTP timings.
const (
	restartThreshold = 5
	restartBackoff   = 15 * time.Second
	stopTimeout      = 10 * time.Second
	drainTimeout     = 10 * time.Second
	uptimeInterval   = 15 * time.Second
)

func main() {
	started := time.Now()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
		Output: os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, started); err != nil {
		logging.Fatal().Err(err).Msg("Reelsight stopped")
	}
	logging.Info().Msg("Application stopped gracefully")
}

// run loads the datasets, starts the supervisor tree and blocks until ctx
// is canceled or the tree gives up.
func run(ctx context.Context, cfg *config.Config, started time.Time) error {
	logging.Info().
		Str("version", version).
		Str("addr", cfg.Server.Addr()).
		Msg("Starting Reelsight")

	// The six dataset files are read from the working directory.
	db, err := database.Open(ctx, &cfg.Database, ".")
	if err != nil {
		return fmt.Errorf("load datasets: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close database")
		}
	}()

	svc := dashboard.NewService(db, &cfg.Dashboard)
	defer svc.Close()

	server, err := newServer(cfg, svc, db)
	if err != nil {
		return err
	}
	metrics.SetAppInfo(version)

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: restartThreshold,
		FailureBackoff:   restartBackoff,
		ShutdownTimeout:  stopTimeout,
	})
	if err != nil {
		return fmt.Errorf("build supervisor tree: %w", err)
	}
	tree.AddDataService(services.NewCacheWarmerService(svc, services.CacheWarmerConfig{
		WarmOnStartup: true,
		Interval:      cfg.Dashboard.CacheTTL,
	}, logging.WithComponent("cache-warmer")))
	tree.AddAPIService(services.NewHTTPServerService(server, drainTimeout))
	tree.AddAPIService(services.NewUptimeService(started, uptimeInterval))

	logging.Info().
		Str("addr", server.Addr).
		Dur("startup", time.Since(started)).
		Msg("Supervisor tree starting")

	err = <-tree.ServeBackground(ctx)
	if ctx.Err() != nil {
		logging.Info().Msg("Shutting down")
	}
	reportUnstopped(tree)

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}
	return nil
}

func newServer(cfg *config.Config, svc *dashboard.Service, db *database.DB) (*http.Server, error) {
	handler, err := api.NewHandler(svc, db, cfg, version)
	if err != nil {
		return nil, fmt.Errorf("create API handler: %w", err)
	}
	return &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           api.NewRouter(handler, &cfg.Security).SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}, nil
}

// reportUnstopped logs services that outlived the shutdown timeout.
func reportUnstopped(tree *supervisor.SupervisorTree) {
	unstopped, err := tree.UnstoppedServiceReport()
	if err != nil || len(unstopped) == 0 {
		return
	}
	logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
	for _, s := range unstopped {
		logging.Warn().Str("service", s.Name).Msg("Service failed to stop")
	}
}
