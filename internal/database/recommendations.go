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

// RecommendationUsers returns the distinct user ids of the user-user
// recommendation table in ascending order. This is the canonical set of
// selectable users.
func (db *DB) RecommendationUsers(ctx context.Context) ([]int64, error) {
	ctx, cancel, err := db.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	users, err := queryAndScan(ctx, db.conn, `
	SELECT DISTINCT user_id FROM user_user_recs ORDER BY user_id`, nil,
		func(rows *sql.Rows) (int64, error) {
			var id int64
			err := rows.Scan(&id)
			return id, err
		})
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendation users: %w", err)
	}
	return users, nil
}

// UserUserRecommendations returns up to limit user-based recommendations,
// highest adjusted rating first.
func (db *DB) UserUserRecommendations(ctx context.Context, userID int64, limit int) ([]models.UserUserRecommendation, error) {
	ctx, cancel, err := db.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	query, args := newQueryBuilder(`
	SELECT user_id, COALESCE(title, ''), COALESCE(genres, ''), rating, adjusted_rating
	FROM user_user_recs
	WHERE 1=1`).
		addUserFilter(userID).
		addLimit(limit).
		build("ORDER BY adjusted_rating DESC, title ASC LIMIT ?")

	recs, err := queryAndScan(ctx, db.conn, query, args, func(rows *sql.Rows) (models.UserUserRecommendation, error) {
		var r models.UserUserRecommendation
		err := rows.Scan(&r.UserID, &r.Title, &r.Genres, &r.Rating, &r.AdjustedRating)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query user-user recommendations: %w", err)
	}
	return recs, nil
}

// ItemItemRecommendations returns every item-based recommendation for the
// user, highest score first.
func (db *DB) ItemItemRecommendations(ctx context.Context, userID int64) ([]models.ItemItemRecommendation, error) {
	ctx, cancel, err := db.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	query, args := newQueryBuilder(`
	SELECT user_id, COALESCE(title, ''), COALESCE(genres, ''), score
	FROM item_item_recs
	WHERE 1=1`).
		addUserFilter(userID).
		build("ORDER BY score DESC, title ASC")

	recs, err := queryAndScan(ctx, db.conn, query, args, func(rows *sql.Rows) (models.ItemItemRecommendation, error) {
		var r models.ItemItemRecommendation
		err := rows.Scan(&r.UserID, &r.Title, &r.Genres, &r.Score)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query item-item recommendations: %w", err)
	}
	return recs, nil
}

// ClusterRecommendations returns every cluster-based recommendation for the
// user, highest mean first.
func (db *DB) ClusterRecommendations(ctx context.Context, userID int64) ([]models.ClusterRecommendation, error) {
	ctx, cancel, err := db.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	query, args := newQueryBuilder(`
	SELECT user_id, COALESCE(title, ''), COALESCE(genres, ''), COALESCE(cluster, ''), mean, "count"
	FROM cluster_recs
	WHERE 1=1`).
		addUserFilter(userID).
		build("ORDER BY mean DESC, title ASC")

	recs, err := queryAndScan(ctx, db.conn, query, args, func(rows *sql.Rows) (models.ClusterRecommendation, error) {
		var r models.ClusterRecommendation
		err := rows.Scan(&r.UserID, &r.Title, &r.Genres, &r.Cluster, &r.Mean, &r.Count)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query cluster recommendations: %w", err)
	}
	return recs, nil
}
