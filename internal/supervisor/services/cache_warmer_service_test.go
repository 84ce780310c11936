// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

type fakeWarmer struct {
	mu    sync.Mutex
	calls int
	err   error
	delay time.Duration
}

func (f *fakeWarmer) Warm(ctx context.Context) error {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(f.delay):
		}
	}
	return f.err
}

func (f *fakeWarmer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

var _ suture.Service = (*CacheWarmerService)(nil)

func TestNewCacheWarmerService_Defaults(t *testing.T) {
	t.Parallel()
	svc := NewCacheWarmerService(&fakeWarmer{}, CacheWarmerConfig{}, zerolog.Nop())

	if svc.config.Interval != time.Hour || svc.config.Timeout != 2*time.Minute {
		t.Errorf("config = %+v, want 1h interval and 2m timeout", svc.config)
	}
	if svc.String() != "cache-warmer" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestCacheWarmerService_Serve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		cfg       CacheWarmerConfig
		warmerErr error
		runFor    time.Duration
		wantMin   int
		wantMax   int
	}{
		{"startup only", CacheWarmerConfig{WarmOnStartup: true, Interval: time.Hour}, nil, 100 * time.Millisecond, 1, 1},
		{"no startup warm", CacheWarmerConfig{Interval: time.Hour}, nil, 100 * time.Millisecond, 0, 0},
		{"scheduled", CacheWarmerConfig{Interval: 40 * time.Millisecond}, nil, 130 * time.Millisecond, 2, 4},
		{"failures keep running", CacheWarmerConfig{WarmOnStartup: true, Interval: 40 * time.Millisecond}, errors.New("duckdb: interrupted"), 130 * time.Millisecond, 3, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			warmer := &fakeWarmer{err: tt.warmerErr}
			svc := NewCacheWarmerService(warmer, tt.cfg, zerolog.Nop())

			ctx, cancel := context.WithTimeout(context.Background(), tt.runFor)
			defer cancel()

			if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
				t.Errorf("Serve() = %v, want context.DeadlineExceeded", err)
			}
			if got := warmer.count(); got < tt.wantMin || got > tt.wantMax {
				t.Errorf("Warm() called %d times, want %d..%d", got, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestCacheWarmerService_WarmTimeout(t *testing.T) {
	t.Parallel()
	warmer := &fakeWarmer{delay: time.Second}
	svc := NewCacheWarmerService(warmer, CacheWarmerConfig{Timeout: 20 * time.Millisecond}, zerolog.Nop())

	start := time.Now()
	if err := svc.warm(context.Background()); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("warm() = %v, want context.DeadlineExceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("warm() took %v, timeout not applied", elapsed)
	}
}

func TestCacheWarmerService_GracefulShutdown(t *testing.T) {
	t.Parallel()
	warmer := &fakeWarmer{delay: 50 * time.Millisecond}
	svc := NewCacheWarmerService(warmer, CacheWarmerConfig{WarmOnStartup: true}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- svc.Serve(ctx)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve() did not return after cancellation")
	}
}
