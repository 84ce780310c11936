// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package models

// AllClusters selects every cluster in the projection and summary panels.
const AllClusters = "all"

// OverviewMetrics are the five headline numbers of the overview page.
// MeanRating and AvgMoviesPerUser are nil when the ratings table is empty.
type OverviewMetrics struct {
	Users            int64    `json:"users"`
	Movies           int64    `json:"movies"`
	MeanRating       *float64 `json:"mean_rating"`
	Clusters         int64    `json:"clusters"`
	AvgMoviesPerUser *float64 `json:"avg_movies_per_user"`
}

// HistogramBin counts values in [Start, End). The last bin of a histogram
// also includes End.
type HistogramBin struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Count int64   `json:"count"`
}

// GenreRating is the mean rating of movies sharing a primary genre.
type GenreRating struct {
	Genre      string  `json:"genre"`
	MeanRating float64 `json:"mean_rating"`
}

// MovieRatingCount is how many ratings a movie received.
type MovieRatingCount struct {
	MovieID int64  `json:"movie_id"`
	Title   string `json:"title"`
	Count   int64  `json:"count"`
}

// UserActivity relates how much a user rates to how generously.
type UserActivity struct {
	UserID     int64   `json:"user_id"`
	Count      int64   `json:"count"`
	MeanRating float64 `json:"mean_rating"`
}

// Overview is the complete data behind the overview page.
// GenreRatings is nil when the ratings file has no genres column, and
// TopMovies is nil when it has no title column.
type Overview struct {
	Metrics         OverviewMetrics    `json:"metrics"`
	RatingsPerUser  []HistogramBin     `json:"ratings_per_user"`
	RatingsPerMovie []HistogramBin     `json:"ratings_per_movie"`
	GenreRatings    []GenreRating      `json:"genre_ratings"`
	TopMovies       []MovieRatingCount `json:"top_movies"`
	UserActivity    []UserActivity     `json:"user_activity"`
}

// ClusterView is the projection scatter for one cluster or all of them.
type ClusterView struct {
	Clusters []string          `json:"clusters"`
	Selected string            `json:"selected"`
	Points   []ProjectionPoint `json:"points"`
}

// ClusterSummary describes the movies of one cluster or all of them.
// TopMovies is only populated when a specific cluster is selected.
type ClusterSummary struct {
	Clusters   []string       `json:"clusters"`
	Selected   string         `json:"selected"`
	MovieCount int64          `json:"movie_count"`
	MeanRating *float64       `json:"mean_rating"`
	TopGenre   string         `json:"top_genre"`
	TopMovies  []ClusterMovie `json:"top_movies,omitempty"`
}

// Recommendation methods.
const (
	MethodUserBased    = "user_based"
	MethodItemBased    = "item_based"
	MethodClusterBased = "cluster_based"
)

// RecommendationTab holds the rows of one recommendation method for a user.
// When Available is false, Rows is empty and Message explains why.
type RecommendationTab[T any] struct {
	Method    string `json:"method"`
	Available bool   `json:"available"`
	Message   string `json:"message,omitempty"`
	Rows      []T    `json:"rows"`
}

// Recommendations gathers the three methods for one user.
type Recommendations struct {
	UserID       int64                                    `json:"user_id"`
	UserBased    RecommendationTab[UserUserRecommendation] `json:"user_based"`
	ItemBased    RecommendationTab[ItemItemRecommendation] `json:"item_based"`
	ClusterBased RecommendationTab[ClusterRecommendation]  `json:"cluster_based"`
}

// SurpriseResult is the outcome of a random user pick.
type SurpriseResult struct {
	UserID          int64           `json:"user_id"`
	Recommendations Recommendations `json:"recommendations"`
}
