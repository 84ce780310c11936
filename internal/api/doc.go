// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

/*
Package api serves the Reelsight dashboard over HTTP.

Two surfaces share one dashboard.Service:

  - Server-rendered pages: GET / renders the overview, clustering or
    recommendations view with embedded echarts snippets, and POST /surprise
    draws a random user and redirects to their recommendations.
  - A JSON API under /api/v1 returning the same data in the
    models.APIResponse envelope.

# Routes

	GET  /                                   dashboard page (?view=&cluster=&summary_cluster=&user=)
	POST /surprise                           random user, 303 to the recommendations view
	GET  /api/v1/health                      health with dataset row counts
	GET  /api/v1/health/live                 liveness probe
	GET  /api/v1/health/ready                readiness probe (datasets loaded, DuckDB pingable)
	GET  /api/v1/overview                    overview metrics and chart series
	GET  /api/v1/clusters                    projection points (?cluster=)
	GET  /api/v1/clusters/summary            cluster summary (?cluster=)
	GET  /api/v1/recommendations/users       canonical user ids
	GET  /api/v1/recommendations/{userID}    the three recommendation tabs
	POST /api/v1/recommendations/surprise    random user with recommendations
	GET  /metrics                            Prometheus

# Selection state

The page view is fully described by its query string, so every view and
filter combination is a plain link. The two cluster filters are independent.
The selected user is also stored in the reelsight_user session cookie and is
used when a request names no user.

# Middleware

Every route gets request IDs wired into the logging context, real-IP
extraction, panic recovery, security headers and Prometheus instrumentation.
Pages and the API are gzip compressed and rate limited per client IP with
go-chi/httprate; the JSON API also answers CORS preflights through
go-chi/cors.

# Errors

Query and path parameters are validated with go-playground/validator.
Invalid input answers 400 VALIDATION_ERROR, unknown users or clusters 404
NOT_FOUND and query failures 500 QUERY_ERROR. Pages render the same
statuses as an HTML error page.
*/
package api
