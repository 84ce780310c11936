// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/reelsight/internal/dashboard"
	"github.com/tomtom215/reelsight/internal/logging"
)

// Overview returns the overview metrics and chart series.
// GET /api/v1/overview
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ov, cached, err := h.svc.Overview(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, ov, start, cached)
}

// Clusters returns the cluster labels and the projection points of the
// selected cluster.
// GET /api/v1/clusters?cluster=
func (h *Handler) Clusters(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := ClusterRequest{Cluster: r.URL.Query().Get("cluster")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	view, cached, err := h.svc.Clusters(r.Context(), req.Cluster)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, view, start, cached)
}

// ClusterSummary returns the summary panel of the selected cluster.
// GET /api/v1/clusters/summary?cluster=
func (h *Handler) ClusterSummary(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := ClusterRequest{Cluster: r.URL.Query().Get("cluster")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	summary, cached, err := h.svc.ClusterSummary(r.Context(), req.Cluster)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, summary, start, cached)
}

// RecommendationUsers returns the canonical user ids in ascending order.
// GET /api/v1/recommendations/users
func (h *Handler) RecommendationUsers(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	users, err := h.svc.Users(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, users, start, false)
}

// Recommendations returns the three recommendation tabs of one user.
// GET /api/v1/recommendations/{userID}
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := parseUserRequest(r)
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}
	userID, err := dashboard.ParseUserID(req.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	recs, cached, err := h.svc.Recommendations(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, recs, start, cached)
}

// Surprise draws a random user and returns their recommendations.
// POST /api/v1/recommendations/surprise
func (h *Handler) Surprise(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	res, err := h.svc.Surprise(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	logging.Ctx(r.Context()).Info().Int64("user_id", res.UserID).Msg("Surprise user drawn")

	w.Header().Set("Cache-Control", "no-store")
	respondData(w, res, start, false)
}
