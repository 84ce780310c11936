// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package services

import (
	"context"
	"time"

	"github.com/tomtom215/reelsight/internal/metrics"
)

// UptimeService refreshes the reelsight_uptime_seconds gauge.
type UptimeService struct {
	start    time.Time
	interval time.Duration
	update   func(start time.Time)
}

// NewUptimeService reports uptime since start every interval (default 15s).
func NewUptimeService(start time.Time, interval time.Duration) *UptimeService {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &UptimeService{start: start, interval: interval, update: metrics.UpdateUptime}
}

// Serve implements suture.Service.
func (u *UptimeService) Serve(ctx context.Context) error {
	u.update(u.start)

	ticker := time.NewTicker(u.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			u.update(u.start)
		}
	}
}

// String names the service in supervisor events.
func (u *UptimeService) String() string {
	return "uptime"
}
