// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// traceIDs are the identifiers a request carries through its context.
type traceIDs struct {
	correlation string
	request     string
}

type traceKey struct{}

func idsFrom(ctx context.Context) traceIDs {
	ids, _ := ctx.Value(traceKey{}).(traceIDs)
	return ids
}

func withIDs(ctx context.Context, update func(*traceIDs)) context.Context {
	ids := idsFrom(ctx)
	update(&ids)
	return context.WithValue(ctx, traceKey{}, ids)
}

// GenerateCorrelationID returns a short random ID for grouping log lines.
func GenerateCorrelationID() string {
	return uuid.NewString()[:8]
}

// GenerateRequestID returns a random UUID.
func GenerateRequestID() string {
	return uuid.NewString()
}

// ContextWithCorrelationID returns ctx carrying id as its correlation ID.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return withIDs(ctx, func(ids *traceIDs) { ids.correlation = id })
}

// ContextWithNewCorrelationID returns ctx carrying a fresh correlation ID.
func ContextWithNewCorrelationID(ctx context.Context) context.Context {
	return ContextWithCorrelationID(ctx, GenerateCorrelationID())
}

// CorrelationIDFromContext returns the correlation ID, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	return idsFrom(ctx).correlation
}

// ContextWithRequestID returns ctx carrying id as its HTTP request ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return withIDs(ctx, func(ids *traceIDs) { ids.request = id })
}

// RequestIDFromContext returns the request ID, or "".
func RequestIDFromContext(ctx context.Context) string {
	return idsFrom(ctx).request
}

// Ctx returns the global logger tagged with the IDs stored in ctx.
//
//	logging.Ctx(r.Context()).Info().Int64("user_id", id).Msg("Surprise pick")
func Ctx(ctx context.Context) *zerolog.Logger {
	ids := idsFrom(ctx)
	lc := With()
	if ids.correlation != "" {
		lc = lc.Str("correlation_id", ids.correlation)
	}
	if ids.request != "" {
		lc = lc.Str("request_id", ids.request)
	}
	l := lc.Logger()
	return &l
}

// WithComponent returns a child of the global logger tagged with component.
func WithComponent(component string) zerolog.Logger {
	return With().Str("component", component).Logger()
}
