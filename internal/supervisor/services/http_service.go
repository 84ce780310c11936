// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelsight/internal/logging"
)

const (
	httpServiceName = "http-server"
	defaultDrain    = 10 * time.Second
)

// HTTPServer is the lifecycle subset of *http.Server.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPServerService runs the dashboard server in the api layer.
//
//	server := &http.Server{Addr: cfg.Server.Addr(), Handler: router.SetupChi()}
//	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
type HTTPServerService struct {
	srv   HTTPServer
	drain time.Duration
	log   zerolog.Logger
}

// NewHTTPServerService wraps srv. drain bounds how long in-flight page
// renders may take once the supervisor stops the service; non-positive
// means 10s.
func NewHTTPServerService(srv HTTPServer, drain time.Duration) *HTTPServerService {
	if drain <= 0 {
		drain = defaultDrain
	}
	return &HTTPServerService{
		srv:   srv,
		drain: drain,
		log:   logging.Logger().With().Str("service", httpServiceName).Logger(),
	}
}

// Serve implements suture.Service. A listen failure is returned so the api
// layer restarts the server. A server closed from elsewhere returns nil.
func (s *HTTPServerService) Serve(ctx context.Context) error {
	done := s.listen()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
	}

	if err := s.shutdown(); err != nil {
		return err
	}
	<-done
	return ctx.Err()
}

// listen runs ListenAndServe. The channel yields a listen error, or closes
// without a value once the server has been shut down.
func (s *HTTPServerService) listen() <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		s.log.Info().Msg("Dashboard server listening")
		err := s.srv.ListenAndServe()
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return
		}
		done <- fmt.Errorf("dashboard server: %w", err)
	}()
	return done
}

func (s *HTTPServerService) shutdown() error {
	// The Serve context is already done; draining gets its own deadline.
	ctx, cancel := context.WithTimeout(context.Background(), s.drain)
	defer cancel()

	start := time.Now()
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("dashboard server drain: %w", err)
	}
	s.log.Info().Dur("drained_in", time.Since(start)).Msg("Dashboard server stopped")
	return nil
}

// String names the service in supervisor events.
func (s *HTTPServerService) String() string {
	return httpServiceName
}
