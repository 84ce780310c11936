// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package api

import (
	"fmt"
	"hash/fnv"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelsight/internal/logging"
	"github.com/tomtom215/reelsight/internal/models"
	"github.com/tomtom215/reelsight/internal/validation"
)

// defaultCacheControl applies to successful JSON responses unless a handler
// set its own policy. The datasets do not change while the server runs.
const defaultCacheControl = "public, max-age=60"

// sanitizeLogValue escapes control characters so a client-supplied value
// cannot forge log lines.
func sanitizeLogValue(s string) string {
	if strings.IndexFunc(s, isControl) < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		if isControl(r) {
			fmt.Fprintf(&b, `\x%02x`, r)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isControl(r rune) bool {
	return r < 0x20 || r == 0x7f
}

// respondJSON writes response as JSON with an ETag over the encoded body.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	body, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to encode JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Vary", "Accept-Encoding")
	h.Set("ETag", etag(body))
	if h.Get("Cache-Control") == "" {
		h.Set("Cache-Control", defaultCacheControl)
	}

	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logging.Warn().Err(err).Msg("Failed to write JSON response")
	}
}

// etag is the FNV-1a hash of body in hex.
func etag(body []byte) string {
	h := fnv.New32a()
	_, _ = h.Write(body)
	return fmt.Sprintf("%x", h.Sum32())
}

// respondData writes a success envelope. start is when the handler began,
// cached whether the service answered from its cache.
func respondData(w http.ResponseWriter, data interface{}, start time.Time, cached bool) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			Cached:      cached,
		},
	})
}

// respondAPIError writes an uncacheable error envelope.
func respondAPIError(w http.ResponseWriter, status int, apiErr *models.APIError) {
	w.Header().Set("Cache-Control", "no-store")
	respondJSON(w, status, &models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now()},
		Error:    apiErr,
	})
}

// respondError writes an error envelope. A non-nil err is logged and never
// sent to the client.
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		logging.Error().
			Str("code", code).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API request failed")
	}
	respondAPIError(w, status, &models.APIError{Code: code, Message: message})
}

// validateRequest runs the validator over a bound request struct.
//
//	req := ClusterRequest{Cluster: r.URL.Query().Get("cluster")}
//	if apiErr := validateRequest(&req); apiErr != nil {
//	    respondValidationError(w, apiErr)
//	    return
//	}
func validateRequest(v interface{}) *models.APIError {
	errs := validation.ValidateStruct(v)
	if errs == nil {
		return nil
	}
	e := errs.ToAPIError()
	return &models.APIError{Code: e.Code, Message: e.Message, Details: e.Details}
}

// respondValidationError writes a 400 carrying the validator's details.
func respondValidationError(w http.ResponseWriter, apiErr *models.APIError) {
	respondAPIError(w, http.StatusBadRequest, apiErr)
}
