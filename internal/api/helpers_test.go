// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelsight/internal/config"
	"github.com/tomtom215/reelsight/internal/dashboard"
	"github.com/tomtom215/reelsight/internal/models"
)

// stubStore is a small in-memory dataset: users 1, 4 and 9 have user-based
// rows, only user 1 has item-based rows and only user 4 cluster-based rows.
type stubStore struct {
	err    error
	pingOK bool
	loaded bool
}

func newStubStore() *stubStore {
	return &stubStore{pingOK: true, loaded: true}
}

func (s *stubStore) OverviewMetrics(context.Context) (models.OverviewMetrics, error) {
	mean, perUser := 3.53, 165.3
	return models.OverviewMetrics{Users: 3, Movies: 4, MeanRating: &mean, Clusters: 2, AvgMoviesPerUser: &perUser}, s.err
}

func (s *stubStore) RatingsPerUser(context.Context) ([]int64, error) {
	return []int64{20, 120, 356}, s.err
}

func (s *stubStore) RatingsPerMovie(context.Context) ([]int64, error) {
	return []int64{1, 3, 3, 9}, s.err
}

func (s *stubStore) GenreRatings(context.Context) ([]models.GenreRating, error) {
	return []models.GenreRating{{Genre: "Crime", MeanRating: 4.1}, {Genre: "Horror", MeanRating: 3.2}}, s.err
}

func (s *stubStore) TopRatedMovies(context.Context, int) ([]models.MovieRatingCount, error) {
	return []models.MovieRatingCount{
		{MovieID: 356, Title: "Forrest Gump (1994)", Count: 9},
		{MovieID: 318, Title: "Shawshank Redemption, The (1994)", Count: 3},
	}, s.err
}

func (s *stubStore) UserActivity(context.Context) ([]models.UserActivity, error) {
	return []models.UserActivity{{UserID: 1, Count: 20, MeanRating: 3.9}}, s.err
}

func (s *stubStore) ProjectionClusters(context.Context) ([]string, error) {
	return []string{"0", "1"}, s.err
}

func (s *stubStore) SummaryClusters(context.Context) ([]string, error) {
	return []string{"0", "1"}, s.err
}

func (s *stubStore) Projection(_ context.Context, cluster string) ([]models.ProjectionPoint, error) {
	points := []models.ProjectionPoint{
		{Title: "Heat (1995)", Cluster: "0", PC1: 0.4, PC2: 1.1},
		{Title: "Babe (1995)", Cluster: "1", PC1: -0.7, PC2: 0.2},
	}
	if cluster == models.AllClusters {
		return points, s.err
	}
	out := []models.ProjectionPoint{}
	for _, p := range points {
		if p.Cluster == cluster {
			out = append(out, p)
		}
	}
	return out, s.err
}

func (s *stubStore) ClusterSummary(_ context.Context, cluster string, _ int) (models.ClusterSummary, error) {
	mean := 3.75
	summary := models.ClusterSummary{MovieCount: 2, MeanRating: &mean, TopGenre: "Crime"}
	if cluster != models.AllClusters {
		summary.MovieCount = 1
		summary.TopMovies = []models.ClusterMovie{{Cluster: cluster, MovieID: 6, Title: "Heat (1995)", Genres: "Crime", AvgRating: 3.9, RatingCount: 102}}
	}
	return summary, s.err
}

func (s *stubStore) RecommendationUsers(context.Context) ([]int64, error) {
	return []int64{1, 4, 9}, s.err
}

func (s *stubStore) UserUserRecommendations(_ context.Context, userID int64, _ int) ([]models.UserUserRecommendation, error) {
	return []models.UserUserRecommendation{
		{UserID: userID, Title: "Casino (1995)", Genres: "Crime|Drama", Rating: 5, AdjustedRating: 4.8125},
	}, s.err
}

func (s *stubStore) ItemItemRecommendations(_ context.Context, userID int64) ([]models.ItemItemRecommendation, error) {
	if userID != 1 {
		return []models.ItemItemRecommendation{}, s.err
	}
	return []models.ItemItemRecommendation{{UserID: 1, Title: "Se7en (1995)", Genres: "Mystery|Thriller", Score: 0.9321}}, s.err
}

func (s *stubStore) ClusterRecommendations(_ context.Context, userID int64) ([]models.ClusterRecommendation, error) {
	if userID != 4 {
		return []models.ClusterRecommendation{}, s.err
	}
	return []models.ClusterRecommendation{{UserID: 4, Title: "Sabrina (1995)", Genres: "Comedy|Romance", Cluster: "1", Mean: 3.41, Count: 54}}, s.err
}

func (s *stubStore) Ping(context.Context) error {
	if !s.pingOK {
		return errors.New("connection closed")
	}
	return nil
}

func (s *stubStore) Loaded() bool { return s.loaded }

func (s *stubStore) RowCounts() map[string]int {
	return map[string]int{"ratings": 12, "projection": 2}
}

// testStore serves both the dashboard queries and the health checks.
type testStore interface {
	dashboard.Store
	DatasetStatus
}

// newTestHandler builds a handler over store.
func newTestHandler(t *testing.T, store testStore, opts ...dashboard.Option) *Handler {
	t.Helper()

	svc := dashboard.NewService(store, &config.DashboardConfig{CacheTTL: time.Minute, HistogramBins: 5}, opts...)
	t.Cleanup(svc.Close)

	cfg := &config.Config{Dashboard: config.DashboardConfig{AssetsHost: "https://assets.example.com/"}}
	h, err := NewHandler(svc, store, cfg, "test")
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	return h
}

// newTestServer routes through the full middleware stack without rate limits.
func newTestServer(t *testing.T, h *Handler) http.Handler {
	t.Helper()
	return NewRouter(h, &config.SecurityConfig{RateLimitDisabled: true}).SetupChi()
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decodeEnvelope decodes an API response, with data into out when non-nil.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) models.APIResponse {
	t.Helper()

	var raw struct {
		Status   string           `json:"status"`
		Data     json.RawMessage  `json:"data"`
		Metadata models.Metadata  `json:"metadata"`
		Error    *models.APIError `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	if out != nil {
		if err := json.Unmarshal(raw.Data, out); err != nil {
			t.Fatalf("failed to decode data %s: %v", raw.Data, err)
		}
	}
	return models.APIResponse{Status: raw.Status, Metadata: raw.Metadata, Error: raw.Error}
}
