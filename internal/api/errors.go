// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/reelsight/internal/dashboard"
)

// API error codes.
const (
	codeValidation       = "VALIDATION_ERROR"
	codeNotFound         = "NOT_FOUND"
	codeQuery            = "QUERY_ERROR"
	codeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	codeRateLimited      = "RATE_LIMIT_EXCEEDED"
)

// serviceErrorStatus maps a dashboard error to an HTTP status, error code and
// client-facing message. Internal failures never expose the underlying error.
func serviceErrorStatus(err error) (status int, code, message string) {
	switch {
	case errors.Is(err, dashboard.ErrUnknownView):
		return http.StatusBadRequest, codeValidation, "Unknown view"
	case errors.Is(err, dashboard.ErrUnknownUser):
		return http.StatusNotFound, codeNotFound, "User not found"
	case errors.Is(err, dashboard.ErrUnknownCluster):
		return http.StatusNotFound, codeNotFound, "Cluster not found"
	case errors.Is(err, dashboard.ErrNoUsers):
		return http.StatusNotFound, codeNotFound, "No users with recommendations"
	default:
		return http.StatusInternalServerError, codeQuery, "Failed to query datasets"
	}
}

// respondServiceError writes a JSON error for err.
func respondServiceError(w http.ResponseWriter, err error) {
	status, code, message := serviceErrorStatus(err)
	if status == http.StatusInternalServerError {
		respondError(w, status, code, message, err)
		return
	}
	respondError(w, status, code, message, nil)
}
