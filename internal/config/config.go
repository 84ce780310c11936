// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

// Package config loads Reelsight runtime configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in values from defaultConfig()
//  2. Config File: optional YAML file (config.yaml, or CONFIG_PATH)
//  3. Environment Variables: override any mapped setting
//
// The six input datasets are deliberately absent: they are always read from
// fixed file names in the working directory (see DatasetFiles).
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
//	srv := &http.Server{Addr: cfg.Server.Addr()}
package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Dashboard DashboardConfig `koanf:"dashboard"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host    string        `koanf:"host" env:"HTTP_HOST"`
	Port    int           `koanf:"port" env:"HTTP_PORT" validate:"min=1,max=65535"`
	Timeout time.Duration `koanf:"timeout" env:"HTTP_TIMEOUT" validate:"gt=0"` // read/write timeout for the HTTP server
}

// Addr returns host:port suitable for http.Server.Addr.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// DatabaseConfig tunes the in-memory DuckDB instance that holds the datasets.
type DatabaseConfig struct {
	MaxMemory string `koanf:"max_memory" env:"DUCKDB_MAX_MEMORY" validate:"required"`
	Threads   int    `koanf:"threads" env:"DUCKDB_THREADS" validate:"min=0"` // 0 = runtime.NumCPU()
}

// DashboardConfig controls chart and table shaping.
type DashboardConfig struct {
	// AssetsHost is the base URL the echarts JavaScript is loaded from.
	AssetsHost string `koanf:"assets_host" env:"ECHARTS_ASSETS_HOST" validate:"http_url"`

	// CacheTTL bounds how long overview and cluster aggregates are memoised.
	// The datasets never change after load, so this only limits memory.
	CacheTTL time.Duration `koanf:"cache_ttl" env:"DASHBOARD_CACHE_TTL" validate:"gt=0"`

	HistogramBins int `koanf:"histogram_bins" env:"DASHBOARD_HISTOGRAM_BINS" validate:"min=1"`
	UserTopN      int `koanf:"user_top_n" env:"DASHBOARD_USER_TOP_N" validate:"min=1"`       // user-based recommendations shown
	ClusterTopN   int `koanf:"cluster_top_n" env:"DASHBOARD_CLUSTER_TOP_N" validate:"min=1"` // most-rated movies in the cluster summary
	TopMoviesN    int `koanf:"top_movies_n" env:"DASHBOARD_TOP_MOVIES_N" validate:"min=1"`   // most-rated movies on the overview
}

// SecurityConfig holds CORS and rate limiting for the JSON API. The rate
// limit bounds are only checked while rate limiting is enabled.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins" env:"CORS_ORIGINS"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs" env:"RATE_LIMIT_REQUESTS"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" env:"RATE_LIMIT_WINDOW"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled" env:"DISABLE_RATE_LIMIT"`
}

// LoggingConfig mirrors logging.Config for the koanf layer.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level" env:"LOG_LEVEL" validate:"oneof=trace debug info warn error"`

	// Format is json or console.
	Format string `koanf:"format" env:"LOG_FORMAT" validate:"omitempty,oneof=json console"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller" env:"LOG_CALLER"`
}

// Dataset file names, resolved relative to the working directory.
const (
	RatingsFile         = "merged_df_clustered_KMeans.csv"
	ProjectionFile      = "clustered_pca.csv"
	ClusterSummaryFile  = "movies_with_clusters_summary.csv"
	UserUserRecsFile    = "user_user_recommendations.csv"
	ItemItemRecsFile    = "item_item_recommendations.csv"
	ClusterRecsFile     = "cluster_recommendations.csv"
	defaultAssetsHost   = "https://go-echarts.github.io/go-echarts-assets/assets/"
	defaultServerPort   = 8501
	defaultDuckDBMemory = "1GB"
)

// DatasetFiles lists the six input files in load order.
func DatasetFiles() []string {
	return []string{
		RatingsFile,
		ProjectionFile,
		ClusterSummaryFile,
		UserUserRecsFile,
		ItemItemRecsFile,
		ClusterRecsFile,
	}
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, then validates it.
func Load() (*Config, error) {
	cfg, err := LoadWithKoanf()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
