// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package api

import (
	"context"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/reelsight/internal/config"
	"github.com/tomtom215/reelsight/internal/logging"
	"github.com/tomtom215/reelsight/internal/metrics"
)

const requestIDHeader = "X-Request-ID"

// RateLimitConfig is a request budget per client IP.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// Per-route budgets. The JSON API budget comes from configuration; the
// others are fixed.
var (
	RateLimitAPI      = RateLimitConfig{Requests: 100, Window: time.Minute}
	RateLimitHealth   = RateLimitConfig{Requests: 1000, Window: time.Minute} // monitoring probes
	RateLimitPages    = RateLimitConfig{Requests: 300, Window: time.Minute}  // each selector change reloads the page
	RateLimitSurprise = RateLimitConfig{Requests: 30, Window: time.Minute}
)

// ChiMiddlewareConfig configures CORS for the JSON API and the rate
// limiters of every route group.
type ChiMiddlewareConfig struct {
	CORSAllowedOrigins   []string
	CORSAllowedMethods   []string
	CORSAllowedHeaders   []string
	CORSExposedHeaders   []string
	CORSAllowCredentials bool
	CORSMaxAge           int // seconds

	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool
	RateLimitKeyFunc  httprate.KeyFunc // defaults to httprate.KeyByIP
}

// DefaultChiMiddlewareConfig allows no cross-origin callers until origins
// are configured.
func DefaultChiMiddlewareConfig() *ChiMiddlewareConfig {
	return &ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{},
		CORSAllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		CORSAllowedHeaders: []string{"Content-Type", requestIDHeader},
		CORSExposedHeaders: []string{requestIDHeader},
		CORSMaxAge:         86400,
		RateLimitRequests:  RateLimitAPI.Requests,
		RateLimitWindow:    RateLimitAPI.Window,
	}
}

// ChiMiddleware hands out the CORS handler and the per-group limiters.
type ChiMiddleware struct {
	config *ChiMiddlewareConfig
	cors   func(http.Handler) http.Handler
}

// NewChiMiddleware builds the middleware set. A nil config selects
// DefaultChiMiddlewareConfig.
func NewChiMiddleware(cfg *ChiMiddlewareConfig) *ChiMiddleware {
	if cfg == nil {
		cfg = DefaultChiMiddlewareConfig()
	}
	return &ChiMiddleware{
		config: cfg,
		cors: cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSAllowedOrigins,
			AllowedMethods:   cfg.CORSAllowedMethods,
			AllowedHeaders:   cfg.CORSAllowedHeaders,
			ExposedHeaders:   cfg.CORSExposedHeaders,
			AllowCredentials: cfg.CORSAllowCredentials,
			MaxAge:           cfg.CORSMaxAge,
		}),
	}
}

// NewChiMiddlewareFromConfig applies the security section of the
// application config over the defaults. Non-positive limits keep the
// default API budget.
func NewChiMiddlewareFromConfig(sec *config.SecurityConfig) *ChiMiddleware {
	cfg := DefaultChiMiddlewareConfig()
	if sec != nil {
		cfg.CORSAllowedOrigins = sec.CORSOrigins
		cfg.RateLimitDisabled = sec.RateLimitDisabled
		if sec.RateLimitReqs > 0 {
			cfg.RateLimitRequests = sec.RateLimitReqs
		}
		if sec.RateLimitWindow > 0 {
			cfg.RateLimitWindow = sec.RateLimitWindow
		}
	}
	return NewChiMiddleware(cfg)
}

// CORS guards the JSON API.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// RateLimit limits the JSON API to the configured budget.
func (m *ChiMiddleware) RateLimit() func(http.Handler) http.Handler {
	return m.limit("api", RateLimitConfig{Requests: m.config.RateLimitRequests, Window: m.config.RateLimitWindow})
}

// RateLimitHealth limits the health probes.
func (m *ChiMiddleware) RateLimitHealth() func(http.Handler) http.Handler {
	return m.limit("health", RateLimitHealth)
}

// RateLimitPages limits the HTML dashboard.
func (m *ChiMiddleware) RateLimitPages() func(http.Handler) http.Handler {
	return m.limit("pages", RateLimitPages)
}

// RateLimitSurprise limits random user draws.
func (m *ChiMiddleware) RateLimitSurprise() func(http.Handler) http.Handler {
	return m.limit("surprise", RateLimitSurprise)
}

func passthrough(next http.Handler) http.Handler { return next }

// limit returns an httprate limiter whose rejections are logged and
// counted under group.
func (m *ChiMiddleware) limit(group string, budget RateLimitConfig) func(http.Handler) http.Handler {
	if m.config.RateLimitDisabled {
		return passthrough
	}
	key := m.config.RateLimitKeyFunc
	if key == nil {
		key = httprate.KeyByIP
	}

	rejected := func(w http.ResponseWriter, r *http.Request) {
		metrics.RecordRateLimitHit(group)
		logging.Ctx(r.Context()).Warn().
			Str("group", group).
			Str("remote_addr", sanitizeLogValue(r.RemoteAddr)).
			Msg("Rate limit exceeded")
		respondError(w, http.StatusTooManyRequests, codeRateLimited, "Too many requests", nil)
	}
	return httprate.Limit(budget.Requests, budget.Window,
		httprate.WithKeyFuncs(key),
		httprate.WithLimitHandler(rejected),
	)
}

// RequestIDWithLogging tags every request with an ID, reusing the
// client's X-Request-ID when present, and a fresh correlation ID. Both
// reach logging.Ctx; the request ID is also visible to chi's GetReqID and
// echoed in the response.
func RequestIDWithLogging() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(requestIDHeader)
			if id == "" {
				id = logging.GenerateRequestID()
			}
			w.Header().Set(requestIDHeader, id)

			ctx := context.WithValue(r.Context(), chimiddleware.RequestIDKey, id)
			ctx = logging.ContextWithNewCorrelationID(logging.ContextWithRequestID(ctx, id))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

var securityHeaders = [][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Referrer-Policy", "strict-origin-when-cross-origin"},
}

// SecurityHeaders sets the static hardening headers, plus HSTS when the
// request came in over TLS directly or through a proxy.
func SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for _, kv := range securityHeaders {
				h.Set(kv[0], kv[1])
			}
			if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
				h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}
