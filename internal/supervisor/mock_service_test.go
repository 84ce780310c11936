// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package supervisor

import (
	"context"
	"errors"
	"sync/atomic"
)

// mockService runs until canceled, optionally failing its first few starts.
type mockService struct {
	name       string
	starts     atomic.Int32
	failsLeft  atomic.Int32
	stopSignal chan struct{}
}

func newMockService(name string) *mockService {
	return &mockService{name: name, stopSignal: make(chan struct{}, 1)}
}

func (m *mockService) Serve(ctx context.Context) error {
	m.starts.Add(1)
	if m.failsLeft.Add(-1) >= 0 {
		return errors.New("simulated failure")
	}
	<-ctx.Done()
	select {
	case m.stopSignal <- struct{}{}:
	default:
	}
	return ctx.Err()
}

func (m *mockService) String() string {
	return m.name
}
