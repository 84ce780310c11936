// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

/*
Package supervisor provides process supervision for the Reelsight server
using suture v4.

# Overview

The long-running parts of the server are organized into two layers:

	RootSupervisor ("reelsight")
	├── DataSupervisor ("data-layer")
	│   └── CacheWarmerService
	└── APISupervisor ("api-layer")
	    ├── HTTPServerService
	    └── UptimeService

Crashed services are restarted with suture's backoff. Each layer counts its
failures independently, so a warm-up that keeps failing against DuckDB backs
off without restarting the HTTP server.

Supervisor events (service start, failure, restart, backoff) are logged
through sutureslog into the zerolog-backed slog.Logger returned by
logging.NewSlogLogger.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: 10 * time.Second,
	})
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddDataService(services.NewCacheWarmerService(svc, services.CacheWarmerConfig{
	    WarmOnStartup: true,
	    Interval:      cfg.Dashboard.CacheTTL,
	}, logging.WithComponent("cache-warmer")))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	errCh := tree.ServeBackground(ctx)

# Shutdown

Canceling the context passed to Serve or ServeBackground stops every layer.
Services that do not return within ShutdownTimeout are listed by
UnstoppedServiceReport.
*/
package supervisor
