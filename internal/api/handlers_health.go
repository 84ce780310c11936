// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/reelsight/internal/models"
)

// probe is the state every health endpoint reports from.
type probe struct {
	dbConnected bool
	loaded      bool
	uptime      float64
}

func (p probe) ready() bool { return p.dbConnected && p.loaded }

// currentProbe pings DuckDB with the request context.
func (h *Handler) currentProbe(r *http.Request) probe {
	p := probe{uptime: time.Since(h.startTime).Seconds()}
	if h.datasets != nil {
		p.dbConnected = h.datasets.Ping(r.Context()) == nil
		p.loaded = h.datasets.Loaded()
	}
	return p
}

// healthHandler rejects anything but GET and marks the response uncacheable.
func healthHandler(fn func(r *http.Request) (int, string, interface{})) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			respondError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "Method not allowed", nil)
			return
		}
		code, status, data := fn(r)
		w.Header().Set("Cache-Control", "no-store")
		respondJSON(w, code, &models.APIResponse{
			Status:   status,
			Data:     data,
			Metadata: models.Metadata{Timestamp: time.Now()},
		})
	}
}

// Health reports DuckDB connectivity, per-dataset row counts, version and
// uptime. It always answers 200; a missing piece shows as "degraded".
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	healthHandler(func(r *http.Request) (int, string, interface{}) {
		p := h.currentProbe(r)
		st := models.HealthStatus{
			Status:            "healthy",
			Version:           h.version,
			DatabaseConnected: p.dbConnected,
			DatasetsLoaded:    p.loaded,
			Uptime:            p.uptime,
		}
		if !p.ready() {
			st.Status = "degraded"
		}
		if h.datasets != nil {
			st.Datasets = h.datasets.RowCounts()
		}
		return http.StatusOK, "success", st
	})(w, r)
}

// HealthLive answers 200 while the process is up.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	healthHandler(func(*http.Request) (int, string, interface{}) {
		return http.StatusOK, "success", map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		}
	})(w, r)
}

// HealthReady answers 200 once all six datasets are loaded and DuckDB
// answers a ping, and 503 before that.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	healthHandler(func(r *http.Request) (int, string, interface{}) {
		p := h.currentProbe(r)
		code, status := http.StatusOK, "ready"
		if !p.ready() {
			code, status = http.StatusServiceUnavailable, "not_ready"
		}
		return code, status, map[string]interface{}{
			"database_connected": p.dbConnected,
			"datasets_loaded":    p.loaded,
			"ready_to_serve":     p.ready(),
			"uptime":             p.uptime,
		}
	})(w, r)
}
