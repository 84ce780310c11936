// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Warmer precomputes the default dashboard views. Implemented by
// *dashboard.Service.
type Warmer interface {
	Warm(ctx context.Context) error
}

// CacheWarmerConfig holds configuration for the cache warmer.
type CacheWarmerConfig struct {
	// WarmOnStartup warms as soon as the service starts.
	WarmOnStartup bool

	// Interval between warm-ups. Set it to the dashboard cache TTL so the
	// default views are recomputed close to expiry. Default: 1h
	Interval time.Duration

	// Timeout bounds one warm-up. Default: 2m
	Timeout time.Duration
}

// CacheWarmerService keeps the overview, the "all" cluster views and the
// default user's recommendations in cache so the first visitor after startup
// or expiry does not wait for the aggregates.
type CacheWarmerService struct {
	warmer Warmer
	config CacheWarmerConfig
	logger zerolog.Logger
	name   string
}

// NewCacheWarmerService creates a new cache warmer.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCacheWarmerService(warmer Warmer, cfg CacheWarmerConfig, logger zerolog.Logger) *CacheWarmerService {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	return &CacheWarmerService{
		warmer: warmer,
		config: cfg,
		logger: logger.With().Str("service", "cache-warmer").Logger(),
		name:   "cache-warmer",
	}
}

// Serve implements suture.Service. Failed warm-ups are logged and retried on
// the next tick; they never stop the service.
func (s *CacheWarmerService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("warm_on_startup", s.config.WarmOnStartup).
		Dur("interval", s.config.Interval).
		Msg("cache warmer starting")

	if s.config.WarmOnStartup {
		if err := s.warm(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("initial cache warm-up failed (will retry on schedule)")
		}
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("cache warmer shutting down")
			return ctx.Err()

		case <-ticker.C:
			if err := s.warm(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("scheduled cache warm-up failed")
			}
		}
	}
}

func (s *CacheWarmerService) warm(ctx context.Context) error {
	warmCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	if err := s.warmer.Warm(warmCtx); err != nil {
		return err
	}
	s.logger.Debug().Dur("duration", time.Since(start)).Msg("dashboard caches warmed")
	return nil
}

// String names the service in supervisor events.
func (s *CacheWarmerService) String() string {
	return s.name
}
