// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

/*
Package middleware provides HTTP middleware components for the dashboard server.

Key Components:

  - PrometheusMetrics: request count, latency and in-flight instrumentation
    labelled by chi route pattern
  - Compression: chi's gzip/deflate compressor, limited to the text and
    JSON content types the dashboard serves

Both take and return http.Handler, so they plug straight into a chi router:

	r := chi.NewRouter()
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression)

PrometheusMetrics reads the route pattern after the request has been routed,
so it works when registered with r.Use at the top level.

Thread Safety:

All middleware components are safe for concurrent use.
*/
package middleware
