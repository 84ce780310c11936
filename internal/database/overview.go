// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tomtom215/reelsight/internal/models"
)

// OverviewMetrics computes the five headline numbers from the ratings table.
// The mean rating is rounded to 2 decimals and the mean number of distinct
// movies per user to 1; both are nil for an empty table.
func (db *DB) OverviewMetrics(ctx context.Context) (models.OverviewMetrics, error) {
	ctx, cancel, err := db.begin(ctx)
	if err != nil {
		return models.OverviewMetrics{}, err
	}
	defer cancel()

	var m models.OverviewMetrics
	var meanRating, moviesPerUser sql.NullFloat64

	err = db.conn.QueryRowContext(ctx, `
	SELECT
		COUNT(DISTINCT user_id),
		COUNT(DISTINCT movie_id),
		AVG(rating),
		COUNT(DISTINCT cluster)
	FROM ratings`).Scan(&m.Users, &m.Movies, &meanRating, &m.Clusters)
	if err != nil {
		return models.OverviewMetrics{}, fmt.Errorf("failed to query overview metrics: %w", err)
	}

	err = db.conn.QueryRowContext(ctx, `
	SELECT AVG(movies)
	FROM (
		SELECT COUNT(DISTINCT movie_id) AS movies
		FROM ratings
		GROUP BY user_id
	)`).Scan(&moviesPerUser)
	if err != nil {
		return models.OverviewMetrics{}, fmt.Errorf("failed to query movies per user: %w", err)
	}

	m.MeanRating = roundedPtr(meanRating, 2)
	m.AvgMoviesPerUser = roundedPtr(moviesPerUser, 1)
	return m, nil
}

// RatingsPerUser returns the number of ratings of every user, ordered by user id.
func (db *DB) RatingsPerUser(ctx context.Context) ([]int64, error) {
	return db.groupCounts(ctx, `
	SELECT COUNT(movie_id) FROM ratings GROUP BY user_id ORDER BY user_id`)
}

// RatingsPerMovie returns the number of ratings of every movie, ordered by movie id.
func (db *DB) RatingsPerMovie(ctx context.Context) ([]int64, error) {
	return db.groupCounts(ctx, `
	SELECT COUNT(rating) FROM ratings GROUP BY movie_id ORDER BY movie_id`)
}

func (db *DB) groupCounts(ctx context.Context, query string) ([]int64, error) {
	ctx, cancel, err := db.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	counts, err := queryAndScan(ctx, db.conn, query, nil, func(rows *sql.Rows) (int64, error) {
		var n int64
		err := rows.Scan(&n)
		return n, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query rating counts: %w", err)
	}
	return counts, nil
}

// GenreRatings returns the mean rating per primary genre, ordered by genre.
// Rows without genres are skipped. The result is nil when the ratings file
// has no genres column.
func (db *DB) GenreRatings(ctx context.Context) ([]models.GenreRating, error) {
	if !db.HasGenres() {
		return nil, nil
	}
	ctx, cancel, err := db.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	query := `
	SELECT
		split_part(genres, '|', 1) AS genre,
		AVG(rating) AS mean_rating
	FROM ratings
	WHERE genres IS NOT NULL
	GROUP BY genre
	ORDER BY genre`

	genres, err := queryAndScan(ctx, db.conn, query, nil, func(rows *sql.Rows) (models.GenreRating, error) {
		var g models.GenreRating
		err := rows.Scan(&g.Genre, &g.MeanRating)
		return g, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query genre ratings: %w", err)
	}
	return genres, nil
}

// TopRatedMovies returns the limit movies with the most ratings, most rated
// first. Ties are broken by ascending movie id. The result is nil when the
// ratings file has no title column.
func (db *DB) TopRatedMovies(ctx context.Context, limit int) ([]models.MovieRatingCount, error) {
	if !db.HasTitles() {
		return nil, nil
	}
	ctx, cancel, err := db.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	query, args := newQueryBuilder(`
	SELECT
		movie_id,
		COALESCE(MIN(title), '') AS title,
		COUNT(*) AS rating_count
	FROM ratings
	WHERE 1=1`).
		addLimit(limit).
		build("GROUP BY movie_id ORDER BY rating_count DESC, movie_id ASC LIMIT ?")

	movies, err := queryAndScan(ctx, db.conn, query, args, func(rows *sql.Rows) (models.MovieRatingCount, error) {
		var m models.MovieRatingCount
		err := rows.Scan(&m.MovieID, &m.Title, &m.Count)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query top rated movies: %w", err)
	}
	return movies, nil
}

// UserActivity returns rating count and mean rating per user, ordered by user id.
func (db *DB) UserActivity(ctx context.Context) ([]models.UserActivity, error) {
	ctx, cancel, err := db.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	query := `
	SELECT
		user_id,
		COUNT(rating) AS rating_count,
		AVG(rating) AS mean_rating
	FROM ratings
	GROUP BY user_id
	ORDER BY user_id`

	users, err := queryAndScan(ctx, db.conn, query, nil, func(rows *sql.Rows) (models.UserActivity, error) {
		var u models.UserActivity
		err := rows.Scan(&u.UserID, &u.Count, &u.MeanRating)
		return u, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query user activity: %w", err)
	}
	return users, nil
}
