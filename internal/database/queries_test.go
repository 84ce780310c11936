// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package database

import (
	"context"
	"math"
	"reflect"
	"testing"

	"github.com/tomtom215/reelsight/internal/config"
	"github.com/tomtom215/reelsight/internal/models"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestOverviewMetrics(t *testing.T) {
	db := setupLoadedDB(t)

	m, err := db.OverviewMetrics(context.Background())
	if err != nil {
		t.Fatalf("OverviewMetrics() error = %v", err)
	}
	if m.Users != 3 {
		t.Errorf("Users = %d, want 3", m.Users)
	}
	if m.Movies != 9 {
		t.Errorf("Movies = %d, want 9", m.Movies)
	}
	if m.Clusters != 3 {
		t.Errorf("Clusters = %d, want 3", m.Clusters)
	}
	// 55 / 16 = 3.4375
	if m.MeanRating == nil || !approx(*m.MeanRating, 3.44) {
		t.Errorf("MeanRating = %v, want 3.44", m.MeanRating)
	}
	// mean([5, 2, 9]) = 5.33
	if m.AvgMoviesPerUser == nil || !approx(*m.AvgMoviesPerUser, 5.3) {
		t.Errorf("AvgMoviesPerUser = %v, want 5.3", m.AvgMoviesPerUser)
	}
	if *m.MeanRating < 1.0 || *m.MeanRating > 5.0 {
		t.Errorf("MeanRating %v outside observed rating range", *m.MeanRating)
	}
}

func TestOverviewMetrics_EmptyRatings(t *testing.T) {
	db := setupTestDB(t)
	files := fixtureFiles()
	files[config.RatingsFile] = "userId,movieId,rating,genres,title,cluster\n"

	if err := db.LoadDatasets(context.Background(), writeFixtures(t, files)); err != nil {
		t.Fatalf("LoadDatasets() error = %v", err)
	}
	m, err := db.OverviewMetrics(context.Background())
	if err != nil {
		t.Fatalf("OverviewMetrics() error = %v", err)
	}
	if m.Users != 0 || m.MeanRating != nil || m.AvgMoviesPerUser != nil {
		t.Errorf("empty metrics = %+v, want zero counts and nil means", m)
	}
}

func TestRatingCounts(t *testing.T) {
	db := setupLoadedDB(t)
	ctx := context.Background()

	perUser, err := db.RatingsPerUser(ctx)
	if err != nil {
		t.Fatalf("RatingsPerUser() error = %v", err)
	}
	if want := []int64{5, 2, 9}; !reflect.DeepEqual(perUser, want) {
		t.Errorf("RatingsPerUser() = %v, want %v", perUser, want)
	}

	perMovie, err := db.RatingsPerMovie(ctx)
	if err != nil {
		t.Fatalf("RatingsPerMovie() error = %v", err)
	}
	if want := []int64{3, 3, 2, 2, 2, 1, 1, 1, 1}; !reflect.DeepEqual(perMovie, want) {
		t.Errorf("RatingsPerMovie() = %v, want %v", perMovie, want)
	}
}

func TestGenreRatings(t *testing.T) {
	db := setupLoadedDB(t)

	genres, err := db.GenreRatings(context.Background())
	if err != nil {
		t.Fatalf("GenreRatings() error = %v", err)
	}
	want := []models.GenreRating{
		{Genre: "Action", MeanRating: 21.5 / 6},
		{Genre: "Comedy", MeanRating: 3.0},
		{Genre: "Drama", MeanRating: 14.0 / 3},
		{Genre: "Horror", MeanRating: 1.5},
	}
	if len(genres) != len(want) {
		t.Fatalf("GenreRatings() returned %d genres, want %d: %+v", len(genres), len(want), genres)
	}
	for i := range want {
		if genres[i].Genre != want[i].Genre || !approx(genres[i].MeanRating, want[i].MeanRating) {
			t.Errorf("genre[%d] = %+v, want %+v", i, genres[i], want[i])
		}
	}
}

func TestTopRatedMovies(t *testing.T) {
	db := setupLoadedDB(t)
	ctx := context.Background()

	top, err := db.TopRatedMovies(ctx, 3)
	if err != nil {
		t.Fatalf("TopRatedMovies() error = %v", err)
	}
	want := []models.MovieRatingCount{
		{MovieID: 10, Title: "Toy Story", Count: 3},
		{MovieID: 11, Title: "Jumanji", Count: 3},
		{MovieID: 12, Title: "Heat", Count: 2},
	}
	if !reflect.DeepEqual(top, want) {
		t.Errorf("TopRatedMovies(3) = %+v, want %+v", top, want)
	}

	// The smallest chosen count is at least every excluded count.
	perMovie, err := db.RatingsPerMovie(ctx)
	if err != nil {
		t.Fatalf("RatingsPerMovie() error = %v", err)
	}
	chosen := map[int64]bool{}
	minChosen := int64(math.MaxInt64)
	for _, m := range top {
		chosen[m.MovieID] = true
		minChosen = min(minChosen, m.Count)
	}
	for i, n := range perMovie {
		movieID := int64(10 + i)
		if !chosen[movieID] && n > minChosen {
			t.Errorf("excluded movie %d has %d ratings, more than chosen minimum %d", movieID, n, minChosen)
		}
	}
}

func TestUserActivity(t *testing.T) {
	db := setupLoadedDB(t)

	users, err := db.UserActivity(context.Background())
	if err != nil {
		t.Fatalf("UserActivity() error = %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("UserActivity() returned %d users, want 3", len(users))
	}
	if users[1].UserID != 2 || users[1].Count != 2 || !approx(users[1].MeanRating, 3.0) {
		t.Errorf("user 2 activity = %+v, want count 2 mean 3.0", users[1])
	}
}

func TestProjection(t *testing.T) {
	db := setupLoadedDB(t)
	ctx := context.Background()

	all, err := db.Projection(ctx, models.AllClusters)
	if err != nil {
		t.Fatalf("Projection(all) error = %v", err)
	}
	if len(all) != 6 {
		t.Fatalf("Projection(all) returned %d rows, want 6", len(all))
	}
	if all[0].Title != "Toy Story" || all[5].Title != "Casino" {
		t.Errorf("Projection(all) should keep file order, got first %q last %q", all[0].Title, all[5].Title)
	}

	labels, err := db.ProjectionClusters(ctx)
	if err != nil {
		t.Fatalf("ProjectionClusters() error = %v", err)
	}
	if want := []string{"0", "1", "2", "10"}; !reflect.DeepEqual(labels, want) {
		t.Errorf("ProjectionClusters() = %v, want %v", labels, want)
	}

	// Filtering each cluster partitions the full table.
	total := 0
	for _, label := range labels {
		points, err := db.Projection(ctx, label)
		if err != nil {
			t.Fatalf("Projection(%s) error = %v", label, err)
		}
		for _, p := range points {
			if p.Cluster != label {
				t.Errorf("Projection(%s) returned a point of cluster %s", label, p.Cluster)
			}
		}
		total += len(points)
	}
	if total != len(all) {
		t.Errorf("per-cluster rows sum to %d, want %d", total, len(all))
	}

	none, err := db.Projection(ctx, "99")
	if err != nil {
		t.Fatalf("Projection(99) error = %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("Projection(99) = %v, want empty non-nil slice", none)
	}
}

func TestClusterSummary(t *testing.T) {
	db := setupLoadedDB(t)
	ctx := context.Background()

	labels, err := db.SummaryClusters(ctx)
	if err != nil {
		t.Fatalf("SummaryClusters() error = %v", err)
	}
	if want := []string{"0", "1", "2"}; !reflect.DeepEqual(labels, want) {
		t.Errorf("SummaryClusters() = %v, want %v", labels, want)
	}

	all, err := db.ClusterSummary(ctx, models.AllClusters, 5)
	if err != nil {
		t.Fatalf("ClusterSummary(all) error = %v", err)
	}
	if all.MovieCount != 9 {
		t.Errorf("MovieCount = %d, want 9", all.MovieCount)
	}
	if all.MeanRating == nil || !approx(*all.MeanRating, 3.44) {
		t.Errorf("MeanRating = %v, want 3.44", all.MeanRating)
	}
	// Action and Comedy both lead with three movies; alphabetical wins.
	if all.TopGenre != "Action" {
		t.Errorf("TopGenre = %q, want Action", all.TopGenre)
	}
	if all.TopMovies != nil {
		t.Errorf("TopMovies = %+v, want nil for all clusters", all.TopMovies)
	}

	two, err := db.ClusterSummary(ctx, "2", 5)
	if err != nil {
		t.Fatalf("ClusterSummary(2) error = %v", err)
	}
	if two.MovieCount != 3 || two.TopGenre != "Drama" {
		t.Errorf("cluster 2 = %+v, want 3 movies with top genre Drama", two)
	}
	if two.MeanRating == nil || !approx(*two.MeanRating, 3.67) {
		t.Errorf("cluster 2 MeanRating = %v, want 3.67", two.MeanRating)
	}
	titles := make([]string, 0, len(two.TopMovies))
	for _, m := range two.TopMovies {
		titles = append(titles, m.Title)
	}
	if want := []string{"Heat", "Casino", "Se7en"}; !reflect.DeepEqual(titles, want) {
		t.Errorf("cluster 2 top movies = %v, want %v", titles, want)
	}

	capped, err := db.ClusterSummary(ctx, "0", 2)
	if err != nil {
		t.Fatalf("ClusterSummary(0) error = %v", err)
	}
	if len(capped.TopMovies) != 2 || capped.TopMovies[0].RatingCount != 3 {
		t.Errorf("cluster 0 top 2 = %+v", capped.TopMovies)
	}
}

func TestRecommendationUsers(t *testing.T) {
	db := setupLoadedDB(t)

	users, err := db.RecommendationUsers(context.Background())
	if err != nil {
		t.Fatalf("RecommendationUsers() error = %v", err)
	}
	if want := []int64{1, 2, 3}; !reflect.DeepEqual(users, want) {
		t.Errorf("RecommendationUsers() = %v, want %v", users, want)
	}
}

func TestUserUserRecommendations(t *testing.T) {
	db := setupLoadedDB(t)

	recs, err := db.UserUserRecommendations(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("UserUserRecommendations() error = %v", err)
	}
	if len(recs) != 10 {
		t.Fatalf("got %d recommendations, want 10", len(recs))
	}
	if recs[0].Title != "Movie L" || !approx(recs[0].AdjustedRating, 12) {
		t.Errorf("first recommendation = %+v, want Movie L at 12", recs[0])
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].AdjustedRating > recs[i-1].AdjustedRating {
			t.Errorf("recommendations not sorted by adjusted rating at %d", i)
		}
		if recs[i].UserID != 1 {
			t.Errorf("recommendation for user %d leaked into user 1", recs[i].UserID)
		}
	}
}

func TestItemItemRecommendations(t *testing.T) {
	db := setupLoadedDB(t)
	ctx := context.Background()

	recs, err := db.ItemItemRecommendations(ctx, 1)
	if err != nil {
		t.Fatalf("ItemItemRecommendations() error = %v", err)
	}
	if len(recs) != 2 || recs[0].Title != "Casino" || recs[1].Title != "Heat" {
		t.Errorf("user 1 item recommendations = %+v, want Casino then Heat", recs)
	}

	empty, err := db.ItemItemRecommendations(ctx, 2)
	if err != nil {
		t.Fatalf("ItemItemRecommendations(2) error = %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("user 2 item recommendations = %v, want empty", empty)
	}
}

func TestClusterRecommendations(t *testing.T) {
	db := setupLoadedDB(t)

	recs, err := db.ClusterRecommendations(context.Background(), 1)
	if err != nil {
		t.Fatalf("ClusterRecommendations() error = %v", err)
	}
	want := []models.ClusterRecommendation{
		{UserID: 1, Title: "Sabrina", Genres: "Action", Cluster: "0", Mean: 4.1, Count: 7},
		{UserID: 1, Title: "Speed", Genres: "Action|Thriller", Cluster: "0", Mean: 3.8, Count: 12},
	}
	if !reflect.DeepEqual(recs, want) {
		t.Errorf("ClusterRecommendations(1) = %+v, want %+v", recs, want)
	}
}

func TestSortClusterLabels(t *testing.T) {
	t.Parallel()

	labels := []string{"10", "b", "2", "a", "1", "1.5"}
	SortClusterLabels(labels)
	if want := []string{"1", "1.5", "2", "10", "a", "b"}; !reflect.DeepEqual(labels, want) {
		t.Errorf("SortClusterLabels() = %v, want %v", labels, want)
	}
}
