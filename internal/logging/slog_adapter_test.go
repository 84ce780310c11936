// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestNewSlogHandlerWithLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	slogger := slog.New(NewSlogHandlerWithLogger(zerolog.New(&buf)))
	slogger.Info("test message", "rows", 42, "ok", true, "took", time.Second)

	output := buf.String()
	for _, want := range []string{"test message", `"rows":42`, `"ok":true`, `"level":"info"`} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output: %s", want, output)
		}
	}
}

func TestSlogHandler_WithAttrsAndGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := NewSlogHandlerWithLogger(zerolog.New(&buf)).
		WithAttrs([]slog.Attr{slog.String("service", "http")}).
		WithGroup("supervisor")

	slog.New(handler).Warn("restarting", "attempt", 2)

	output := buf.String()
	if !strings.Contains(output, `"service":"http"`) || strings.Contains(output, `"supervisor.service"`) {
		t.Errorf("attrs added before WithGroup should stay ungrouped: %s", output)
	}
	if !strings.Contains(output, `"supervisor.attempt":2`) {
		t.Errorf("expected grouped record attr in output: %s", output)
	}
	if !strings.Contains(output, `"level":"warn"`) {
		t.Errorf("expected warn level in output: %s", output)
	}
}

func TestSlogHandler_NestedGroupAttr(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	slog.New(NewSlogHandlerWithLogger(zerolog.New(&buf))).
		Info("grouped", slog.Group("cluster", slog.Int("id", 3)))

	if !strings.Contains(buf.String(), `"cluster.id":3`) {
		t.Errorf("expected nested group key in output: %s", buf.String())
	}
}

func TestSlogHandler_GroupThenAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := NewSlogHandlerWithLogger(zerolog.New(&buf)).
		WithGroup("supervisor").
		WithAttrs([]slog.Attr{slog.String("service", "cache-warmer")})

	slog.New(handler).Info("started")

	if !strings.Contains(buf.String(), `"supervisor.service":"cache-warmer"`) {
		t.Errorf("expected grouped attr in output: %s", buf.String())
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	t.Parallel()

	handler := NewSlogHandlerWithLogger(zerolog.New(nil).Level(zerolog.WarnLevel))
	if handler.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled for a warn-level logger")
	}
	if !handler.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled for a warn-level logger")
	}
}

func TestSlogToZerologLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   slog.Level
		want zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		if got := slogToZerologLevel(tt.in); got != tt.want {
			t.Errorf("slogToZerologLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
