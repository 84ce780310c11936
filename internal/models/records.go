// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package models

import "strings"

// GenreSeparator joins the genres of a movie in every dataset.
const GenreSeparator = "|"

// Rating is one user's rating of one movie, with the movie's cluster.
type Rating struct {
	UserID  int64   `json:"user_id"`
	MovieID int64   `json:"movie_id"`
	Rating  float64 `json:"rating"`
	Genres  string  `json:"genres,omitempty"`
	Title   string  `json:"title,omitempty"`
	Cluster string  `json:"cluster"`
}

// ProjectionPoint places a movie in the 2-D PCA space.
type ProjectionPoint struct {
	Title   string  `json:"title"`
	Cluster string  `json:"cluster"`
	PC1     float64 `json:"pc1"`
	PC2     float64 `json:"pc2"`
}

// ClusterMovie is a movie's membership in a cluster with its rating summary.
type ClusterMovie struct {
	Cluster     string  `json:"cluster"`
	MovieID     int64   `json:"movie_id"`
	AvgRating   float64 `json:"avg_rating"`
	Genres      string  `json:"genres"`
	Title       string  `json:"title"`
	RatingCount int64   `json:"rating_count"`
}

// UserUserRecommendation is a user-based collaborative filtering result.
type UserUserRecommendation struct {
	UserID         int64   `json:"user_id"`
	Title          string  `json:"title"`
	Genres         string  `json:"genres"`
	Rating         float64 `json:"rating"`
	AdjustedRating float64 `json:"adjusted_rating"`
}

// ItemItemRecommendation is an item-based collaborative filtering result.
type ItemItemRecommendation struct {
	UserID int64   `json:"user_id"`
	Title  string  `json:"title"`
	Genres string  `json:"genres"`
	Score  float64 `json:"score"`
}

// ClusterRecommendation is a genre-cluster based result.
type ClusterRecommendation struct {
	UserID  int64   `json:"user_id"`
	Title   string  `json:"title"`
	Genres  string  `json:"genres"`
	Cluster string  `json:"cluster"`
	Mean    float64 `json:"mean"`
	Count   int64   `json:"count"`
}

// PrimaryGenre returns the first token of a genre string, or "" when empty.
func PrimaryGenre(genres string) string {
	first, _, _ := strings.Cut(genres, GenreSeparator)
	return first
}
