// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/reelsight/internal/config"
	"github.com/tomtom215/reelsight/internal/middleware"
)

// Router wires handlers to routes.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. sec may be nil for the secure defaults.
func NewRouter(handler *Handler, sec *config.SecurityConfig) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddlewareFromConfig(sec),
	}
}

// SetupChi configures all HTTP routes using Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(SecurityHeaders())
	r.Use(middleware.PrometheusMetrics)

	// ========================
	// Dashboard Pages
	// ========================
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitPages())
		r.Use(middleware.Compression)
		r.Get("/", router.handler.Dashboard)
		r.With(router.chiMiddleware.RateLimitSurprise()).Post("/surprise", router.handler.SurprisePage)
	})

	// ========================
	// Health Endpoints
	// ========================
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// ========================
	// Dashboard API
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.CORS())
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.Compression)

		r.Get("/overview", router.handler.Overview)

		r.Get("/clusters", router.handler.Clusters)
		r.Get("/clusters/summary", router.handler.ClusterSummary)

		r.Get("/recommendations/users", router.handler.RecommendationUsers)
		r.Get("/recommendations/{userID}", router.handler.Recommendations)
		r.With(router.chiMiddleware.RateLimitSurprise()).Post("/recommendations/surprise", router.handler.Surprise)
	})

	// ========================
	// Prometheus
	// ========================
	// promhttp negotiates its own compression.
	r.Handle("/metrics", promhttp.Handler())

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "Method not allowed", nil)
	})

	return r
}
