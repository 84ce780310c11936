// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package metrics

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/duckdb/duckdb-go/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "reelsight"

func counter(subsystem, name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: subsystem, Name: name, Help: help,
	}, labels)
}

func histogram(subsystem, name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Subsystem: subsystem, Name: name, Help: help, Buckets: buckets,
	}, labels)
}

// Datasets loaded at startup.
var (
	DatasetRows = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "dataset", Name: "rows",
		Help: "Rows loaded per dataset table.",
	}, []string{"table"})

	DatasetLoadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace, Subsystem: "dataset", Name: "load_duration_seconds",
		Help:    "Time taken to load all six datasets.",
		Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
	})

	DatasetLoadErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "dataset", Name: "load_errors_total",
		Help: "Failed dataset loads.",
	})
)

// DuckDB queries.
var (
	DBQueryDuration = histogram("duckdb", "query_duration_seconds",
		"DuckDB query latency.", prometheus.DefBuckets, "operation", "table")
	DBQueryErrors = counter("duckdb", "query_errors_total",
		"Failed DuckDB queries by error class.", "operation", "table", "error_type")
)

// HTTP traffic.
var (
	APIRequestsTotal = counter("api", "requests_total",
		"HTTP requests by route pattern and status.", "method", "endpoint", "status_code")
	APIRequestDuration = histogram("api", "request_duration_seconds",
		"HTTP request latency by route pattern.",
		[]float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}, "method", "endpoint")
	APIActiveRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "api", Name: "active_requests",
		Help: "Requests currently being served.",
	})
	APIRateLimitHits = counter("api", "rate_limit_hits_total",
		"Requests rejected by a rate limiter, by route group.", "endpoint")
)

// Dashboard caches and views.
var (
	CacheHits   = counter("cache", "hits_total", "Dashboard cache hits.", "cache")
	CacheMisses = counter("cache", "misses_total", "Dashboard cache misses.", "cache")

	ViewRenders = counter("dashboard", "view_renders_total",
		"Dashboard views rendered.", "view")
	EmptyRecommendationTabs = counter("dashboard", "empty_recommendation_tabs_total",
		"Recommendation tabs served without rows.", "method")
	SurprisePicks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "dashboard", Name: "surprise_picks_total",
		Help: "Random user picks.",
	})
)

// Process.
var (
	AppInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace, Name: "build_info",
		Help: "Always 1, labelled with the build version.",
	}, []string{"version", "go_version"})

	AppUptime = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Name: "uptime_seconds",
		Help: "Seconds since the process started.",
	})
)

// errorClass keeps the error_type label bounded.
func errorClass(err error) string {
	var dErr *duckdb.Error
	switch {
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &dErr):
		return "duckdb"
	default:
		return "other"
	}
}

// RecordDBQuery observes one query and counts it as failed when err is
// non-nil.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table, errorClass(err)).Inc()
	}
}

// RecordDatasetLoad records the startup load and, on success, the row count
// of every table.
func RecordDatasetLoad(duration time.Duration, rows map[string]int, err error) {
	DatasetLoadDuration.Observe(duration.Seconds())
	if err != nil {
		DatasetLoadErrors.Inc()
		return
	}
	for table, n := range rows {
		DatasetRows.WithLabelValues(table).Set(float64(n))
	}
}

// RecordAPIRequest counts a finished request. endpoint is the chi route
// pattern, not the raw path.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest moves the in-flight gauge up or down.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
		return
	}
	APIActiveRequests.Dec()
}

func RecordRateLimitHit(group string) { APIRateLimitHits.WithLabelValues(group).Inc() }

// RecordCacheLookup counts a hit or miss on the named cache.
func RecordCacheLookup(cache string, hit bool) {
	c := CacheMisses
	if hit {
		c = CacheHits
	}
	c.WithLabelValues(cache).Inc()
}

func RecordViewRender(view string) { ViewRenders.WithLabelValues(view).Inc() }

func RecordEmptyTab(method string) { EmptyRecommendationTabs.WithLabelValues(method).Inc() }

func RecordSurprisePick() { SurprisePicks.Inc() }

// SetAppInfo publishes the build version.
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}

// UpdateUptime sets the uptime gauge from the process start time.
func UpdateUptime(start time.Time) {
	AppUptime.Set(time.Since(start).Seconds())
}
