// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package dashboard

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/reelsight/internal/config"
	"github.com/tomtom215/reelsight/internal/models"
)

// fakeStore serves fixed tables and counts calls per method.
type fakeStore struct {
	mu    sync.Mutex
	calls map[string]int
	err   error

	metrics      models.OverviewMetrics
	perUser      []int64
	perMovie     []int64
	genres       []models.GenreRating
	top          []models.MovieRatingCount
	activity     []models.UserActivity
	projection   []models.ProjectionPoint
	summaryRows  []models.ClusterMovie
	userUser     []models.UserUserRecommendation
	itemItem     []models.ItemItemRecommendation
	clusterBased []models.ClusterRecommendation
}

func newFakeStore() *fakeStore {
	mean := 3.44
	perUser := 5.3
	return &fakeStore{
		calls: map[string]int{},
		metrics: models.OverviewMetrics{
			Users: 3, Movies: 9, MeanRating: &mean, Clusters: 3, AvgMoviesPerUser: &perUser,
		},
		perUser:  []int64{5, 2, 9},
		perMovie: []int64{3, 3, 2, 2, 2, 1, 1, 1, 1},
		genres: []models.GenreRating{
			{Genre: "Action", MeanRating: 3.58},
			{Genre: "Comedy", MeanRating: 3.0},
		},
		top: []models.MovieRatingCount{
			{MovieID: 10, Title: "Toy Story", Count: 3},
			{MovieID: 11, Title: "Jumanji", Count: 3},
		},
		activity: []models.UserActivity{{UserID: 1, Count: 5, MeanRating: 3.7}},
		projection: []models.ProjectionPoint{
			{Title: "Toy Story", Cluster: "0", PC1: 0.1, PC2: 0.2},
			{Title: "Jumanji", Cluster: "1", PC1: -0.3, PC2: 0.5},
			{Title: "Heat", Cluster: "2", PC1: 1.2, PC2: -0.4},
			{Title: "Sabrina", Cluster: "0", PC1: 0, PC2: 0},
		},
		summaryRows: []models.ClusterMovie{
			{Cluster: "0", MovieID: 10, AvgRating: 4.0, Genres: "Action", Title: "Toy Story", RatingCount: 3},
			{Cluster: "0", MovieID: 13, AvgRating: 2.0, Genres: "Action", Title: "Sabrina", RatingCount: 2},
			{Cluster: "1", MovieID: 11, AvgRating: 3.0, Genres: "Comedy", Title: "Jumanji", RatingCount: 3},
		},
		userUser: []models.UserUserRecommendation{
			{UserID: 1, Title: "Heat", Genres: "Drama", Rating: 4, AdjustedRating: 4.5},
			{UserID: 2, Title: "Babe", Genres: "Comedy", Rating: 3, AdjustedRating: 3.5},
			{UserID: 7, Title: "Speed", Genres: "Action", Rating: 4, AdjustedRating: 4.1},
		},
		itemItem: []models.ItemItemRecommendation{
			{UserID: 1, Title: "Casino", Genres: "Drama", Score: 0.9},
		},
		clusterBased: []models.ClusterRecommendation{
			{UserID: 2, Title: "Jumanji", Genres: "Comedy", Cluster: "1", Mean: 3.2, Count: 30},
		},
	}
}

func (f *fakeStore) record(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	return f.err
}

func (f *fakeStore) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeStore) OverviewMetrics(context.Context) (models.OverviewMetrics, error) {
	return f.metrics, f.record("OverviewMetrics")
}

func (f *fakeStore) RatingsPerUser(context.Context) ([]int64, error) {
	return f.perUser, f.record("RatingsPerUser")
}

func (f *fakeStore) RatingsPerMovie(context.Context) ([]int64, error) {
	return f.perMovie, f.record("RatingsPerMovie")
}

func (f *fakeStore) GenreRatings(context.Context) ([]models.GenreRating, error) {
	return f.genres, f.record("GenreRatings")
}

func (f *fakeStore) TopRatedMovies(_ context.Context, limit int) ([]models.MovieRatingCount, error) {
	return f.top[:min(limit, len(f.top))], f.record("TopRatedMovies")
}

func (f *fakeStore) UserActivity(context.Context) ([]models.UserActivity, error) {
	return f.activity, f.record("UserActivity")
}

func (f *fakeStore) ProjectionClusters(context.Context) ([]string, error) {
	labels := map[string]bool{}
	for _, p := range f.projection {
		labels[p.Cluster] = true
	}
	return sortedKeys(labels), f.record("ProjectionClusters")
}

func (f *fakeStore) SummaryClusters(context.Context) ([]string, error) {
	labels := map[string]bool{}
	for _, m := range f.summaryRows {
		labels[m.Cluster] = true
	}
	return sortedKeys(labels), f.record("SummaryClusters")
}

func (f *fakeStore) Projection(_ context.Context, cluster string) ([]models.ProjectionPoint, error) {
	out := []models.ProjectionPoint{}
	for _, p := range f.projection {
		if cluster == models.AllClusters || p.Cluster == cluster {
			out = append(out, p)
		}
	}
	return out, f.record("Projection")
}

func (f *fakeStore) ClusterSummary(_ context.Context, cluster string, topN int) (models.ClusterSummary, error) {
	var s models.ClusterSummary
	var rows []models.ClusterMovie
	for _, m := range f.summaryRows {
		if cluster == models.AllClusters || m.Cluster == cluster {
			rows = append(rows, m)
		}
	}
	s.MovieCount = int64(len(rows))
	if cluster != models.AllClusters {
		slices.SortFunc(rows, func(a, b models.ClusterMovie) int { return cmp.Compare(b.RatingCount, a.RatingCount) })
		s.TopMovies = rows[:min(topN, len(rows))]
	}
	return s, f.record("ClusterSummary")
}

func (f *fakeStore) RecommendationUsers(context.Context) ([]int64, error) {
	ids := map[int64]bool{}
	for _, r := range f.userUser {
		ids[r.UserID] = true
	}
	out := make([]int64, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out, f.record("RecommendationUsers")
}

func (f *fakeStore) UserUserRecommendations(_ context.Context, userID int64, limit int) ([]models.UserUserRecommendation, error) {
	out := []models.UserUserRecommendation{}
	for _, r := range f.userUser {
		if r.UserID == userID && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, f.record("UserUserRecommendations")
}

func (f *fakeStore) ItemItemRecommendations(_ context.Context, userID int64) ([]models.ItemItemRecommendation, error) {
	out := []models.ItemItemRecommendation{}
	for _, r := range f.itemItem {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, f.record("ItemItemRecommendations")
}

func (f *fakeStore) ClusterRecommendations(_ context.Context, userID int64) ([]models.ClusterRecommendation, error) {
	out := []models.ClusterRecommendation{}
	for _, r := range f.clusterBased {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, f.record("ClusterRecommendations")
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func testConfig() *config.DashboardConfig {
	return &config.DashboardConfig{
		CacheTTL:      time.Minute,
		HistogramBins: 4,
		UserTopN:      10,
		ClusterTopN:   5,
		TopMoviesN:    10,
	}
}

func newTestService(t *testing.T, store Store, opts ...Option) *Service {
	t.Helper()
	svc := NewService(store, testConfig(), opts...)
	t.Cleanup(svc.Close)
	return svc
}
