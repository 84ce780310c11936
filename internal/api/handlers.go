// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package api

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/reelsight/internal/charts"
	"github.com/tomtom215/reelsight/internal/config"
	"github.com/tomtom215/reelsight/internal/dashboard"
)

// DatasetStatus reports on the loaded datasets for the health endpoints.
// *database.DB implements it.
type DatasetStatus interface {
	Ping(ctx context.Context) error
	Loaded() bool
	RowCounts() map[string]int
}

// Handler contains dependencies for API and page handlers.
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: JSON envelope and validation helpers
//   - handlers_health.go: health and probe endpoints
//   - handlers_dashboard.go: JSON dashboard endpoints
//   - handlers_pages.go: server-rendered dashboard and Surprise Me
type Handler struct {
	svc       *dashboard.Service
	datasets  DatasetStatus
	charts    *charts.Builder
	pages     *PageRenderer
	version   string
	startTime time.Time
}

// NewHandler creates a handler serving svc. datasets may be nil, in which
// case the health endpoints report the datasets as unavailable.
//
// Example:
//
//	svc := dashboard.NewService(db, &cfg.Dashboard)
//	handler, err := api.NewHandler(svc, db, cfg, version)
//	router := api.NewRouter(handler, &cfg.Security)
//	http.ListenAndServe(cfg.Server.Addr(), router.SetupChi())
func NewHandler(svc *dashboard.Service, datasets DatasetStatus, cfg *config.Config, version string) (*Handler, error) {
	pages, err := NewPageRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}

	assetsHost := ""
	if cfg != nil {
		assetsHost = cfg.Dashboard.AssetsHost
	}

	return &Handler{
		svc:       svc,
		datasets:  datasets,
		charts:    charts.NewBuilder(assetsHost),
		pages:     pages,
		version:   version,
		startTime: time.Now(),
	}, nil
}
