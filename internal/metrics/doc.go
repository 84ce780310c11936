// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

/*
Package metrics provides Prometheus metrics collection and export for observability.

Collectors are registered on the default registry through promauto and are
exposed at /metrics in Prometheus text format:

	curl http://localhost:8501/metrics

# Available Metrics

Every name carries the reelsight_ prefix.

Datasets:
  - reelsight_dataset_rows: rows per loaded table (gauge, label: table)
  - reelsight_dataset_load_duration_seconds: startup load time (histogram)
  - reelsight_dataset_load_errors_total: failed loads (counter)

DuckDB:
  - reelsight_duckdb_query_duration_seconds (histogram, labels: operation, table)
  - reelsight_duckdb_query_errors_total (counter, labels: operation, table, error_type)

error_type is one of canceled, timeout, duckdb or other.

HTTP:
  - reelsight_api_requests_total (counter, labels: method, endpoint, status_code)
  - reelsight_api_request_duration_seconds (histogram, labels: method, endpoint)
  - reelsight_api_active_requests (gauge)
  - reelsight_api_rate_limit_hits_total (counter, label: endpoint)

The endpoint label is the chi route pattern, so /api/v1/recommendations/{userID}
counts as one series regardless of the user.

Dashboard:
  - reelsight_cache_hits_total, reelsight_cache_misses_total (counter, label: cache)
  - reelsight_dashboard_view_renders_total (counter, label: view)
  - reelsight_dashboard_empty_recommendation_tabs_total (counter, label: method)
  - reelsight_dashboard_surprise_picks_total (counter)

Process:
  - reelsight_build_info: version and Go version (gauge, always 1)
  - reelsight_uptime_seconds (gauge)

# Usage

	start := time.Now()
	err := db.LoadDatasets(ctx, ".")
	metrics.RecordDatasetLoad(time.Since(start), db.RowCounts(), err)

	metrics.RecordDBQuery("overview_metrics", "ratings", elapsed, err)
	metrics.RecordCacheLookup("overview", hit)

# Thread Safety

All recording functions are safe for concurrent use.
*/
package metrics
