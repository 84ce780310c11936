// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package models

import (
	"time"
)

// APIResponse wraps every JSON API payload.
//
// Status is "success" (see Data) or "error" (see Error).
//
//	{
//	  "status": "success",
//	  "data": {"user_id": 7, "user_based": {...}},
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z", "query_time_ms": 3}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata describes how a response was produced.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError is a machine-readable failure.
//
// Codes:
//   - VALIDATION_ERROR: malformed query or path parameter
//   - NOT_FOUND: unknown user or cluster
//   - QUERY_ERROR: DuckDB query failure
//   - METHOD_NOT_ALLOWED: wrong HTTP method
//   - RATE_LIMIT_EXCEEDED: too many requests
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is returned by the health endpoints.
type HealthStatus struct {
	Status            string         `json:"status"`
	Version           string         `json:"version"`
	DatabaseConnected bool           `json:"database_connected"`
	DatasetsLoaded    bool           `json:"datasets_loaded"`
	Datasets          map[string]int `json:"datasets,omitempty"` // row counts by table
	Uptime            float64        `json:"uptime_seconds"`
}
