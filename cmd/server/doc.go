// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

/*
Package main is the entry point for the Reelsight server.

Reelsight is a read-only dashboard over a set of precomputed movie
recommendation datasets: MovieLens-style ratings with KMeans cluster labels,
a 2-D PCA projection, per-cluster summaries, and three recommendation tables
(user-based, item-based and cluster-based). The datasets are loaded into an
in-memory DuckDB once at startup and served as HTML pages with go-echarts
charts plus a JSON API.

# Application Architecture

	RootSupervisor ("reelsight")
	├── DataSupervisor ("data-layer")
	│   └── CacheWarmerService
	└── APISupervisor ("api-layer")
	    ├── HTTPServerService
	    └── UptimeService

Startup order:

 1. Configuration: Koanf v2 with defaults, optional YAML file and environment
 2. Logging: zerolog with json or console output
 3. Datasets: six CSV files read from the working directory into DuckDB
 4. Dashboard service: cached aggregates and recommendation lookups
 5. Supervisor tree: suture v4
 6. HTTP server: chi router with the middleware stack

A missing or malformed dataset file aborts startup with a non-zero exit.

# Configuration

	HTTP_HOST=0.0.0.0
	HTTP_PORT=8501
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console
	DUCKDB_MAX_MEMORY=1GB
	DASHBOARD_CACHE_TTL=1h
	DASHBOARD_HISTOGRAM_BINS=50
	ECHARTS_ASSETS_HOST=https://go-echarts.github.io/go-echarts-assets/assets/
	RATE_LIMIT_REQUESTS=100
	RATE_LIMIT_WINDOW=1m
	CORS_ORIGINS=*

A YAML file named by CONFIG_PATH (or config.yaml in the working directory)
is applied below the environment.

# Endpoints

	GET  /                                  dashboard page
	POST /surprise                          redirect to a random user
	GET  /api/v1/overview                   dataset overview
	GET  /api/v1/clusters                   cluster scatter data
	GET  /api/v1/clusters/summary           cluster summary and top movies
	GET  /api/v1/recommendations/users      users with recommendations
	GET  /api/v1/recommendations/{userID}   recommendation tabs for a user
	POST /api/v1/recommendations/surprise   random user pick
	GET  /api/v1/health[/live|/ready]       health probes
	GET  /metrics                           Prometheus metrics

# Graceful Shutdown

SIGINT or SIGTERM cancels the root context. The HTTP server drains in-flight
requests for up to 10 seconds before the supervisor tree returns.
*/
package main
