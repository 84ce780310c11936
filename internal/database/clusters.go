// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package database

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/tomtom215/reelsight/internal/models"
)

// ProjectionClusters returns the distinct cluster labels of the projection table.
func (db *DB) ProjectionClusters(ctx context.Context) ([]string, error) {
	return db.clusterLabels(ctx, TableProjection)
}

// SummaryClusters returns the distinct cluster labels of the cluster summary table.
func (db *DB) SummaryClusters(ctx context.Context) ([]string, error) {
	return db.clusterLabels(ctx, TableClusterSummary)
}

func (db *DB) clusterLabels(ctx context.Context, table string) ([]string, error) {
	ctx, cancel, err := db.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	query := fmt.Sprintf("SELECT DISTINCT cluster FROM %s WHERE cluster IS NOT NULL", quoteIdent(table))
	labels, err := queryAndScan(ctx, db.conn, query, nil, func(rows *sql.Rows) (string, error) {
		var s string
		err := rows.Scan(&s)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query cluster labels of %s: %w", table, err)
	}
	SortClusterLabels(labels)
	return labels, nil
}

// SortClusterLabels orders labels numerically when both parse as numbers and
// lexically otherwise, with numbers first.
func SortClusterLabels(labels []string) {
	slices.SortFunc(labels, func(a, b string) int {
		fa, errA := strconv.ParseFloat(a, 64)
		fb, errB := strconv.ParseFloat(b, 64)
		switch {
		case errA == nil && errB == nil:
			if c := cmp.Compare(fa, fb); c != 0 {
				return c
			}
			return cmp.Compare(a, b)
		case errA == nil:
			return -1
		case errB == nil:
			return 1
		default:
			return cmp.Compare(a, b)
		}
	})
}

// Projection returns the PCA points of one cluster, or of every movie when
// cluster is models.AllClusters. Rows keep file order and are never
// deduplicated.
func (db *DB) Projection(ctx context.Context, cluster string) ([]models.ProjectionPoint, error) {
	ctx, cancel, err := db.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	query, args := newQueryBuilder(`
	SELECT COALESCE(title, ''), cluster, pc1, pc2
	FROM projection
	WHERE 1=1`).
		addClusterFilter(cluster).
		build("ORDER BY rowid")

	points, err := queryAndScan(ctx, db.conn, query, args, func(rows *sql.Rows) (models.ProjectionPoint, error) {
		var p models.ProjectionPoint
		err := rows.Scan(&p.Title, &p.Cluster, &p.PC1, &p.PC2)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query projection: %w", err)
	}
	return points, nil
}

// ClusterSummary computes the summary panel for one cluster, or for every
// row when cluster is models.AllClusters.
//
// The top genre is the most frequent primary genre; ties go to the
// alphabetically first genre. TopMovies holds the topN rows with the highest
// rating_count (ties by title) and is only filled for a specific cluster.
// Clusters and Selected are left for the caller.
func (db *DB) ClusterSummary(ctx context.Context, cluster string, topN int) (models.ClusterSummary, error) {
	ctx, cancel, err := db.begin(ctx)
	if err != nil {
		return models.ClusterSummary{}, err
	}
	defer cancel()

	var summary models.ClusterSummary
	var meanRating sql.NullFloat64

	query, args := newQueryBuilder(`
	SELECT COUNT(DISTINCT movie_id), AVG(avg_rating)
	FROM cluster_summary
	WHERE 1=1`).
		addClusterFilter(cluster).
		build("")
	if err := db.conn.QueryRowContext(ctx, query, args...).Scan(&summary.MovieCount, &meanRating); err != nil {
		return models.ClusterSummary{}, fmt.Errorf("failed to query cluster summary: %w", err)
	}
	summary.MeanRating = roundedPtr(meanRating, 2)

	query, args = newQueryBuilder(`
	SELECT split_part(genres, '|', 1) AS genre, COUNT(*) AS n
	FROM cluster_summary
	WHERE genres IS NOT NULL`).
		addClusterFilter(cluster).
		build("GROUP BY genre ORDER BY n DESC, genre ASC LIMIT 1")
	var n int64
	err = db.conn.QueryRowContext(ctx, query, args...).Scan(&summary.TopGenre, &n)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return models.ClusterSummary{}, fmt.Errorf("failed to query top genre: %w", err)
	}

	if cluster == models.AllClusters || cluster == "" {
		return summary, nil
	}

	query, args = newQueryBuilder(`
	SELECT cluster, movie_id, avg_rating, COALESCE(genres, ''), COALESCE(title, ''), rating_count
	FROM cluster_summary
	WHERE 1=1`).
		addClusterFilter(cluster).
		addLimit(topN).
		build("ORDER BY rating_count DESC, title ASC LIMIT ?")
	summary.TopMovies, err = queryAndScan(ctx, db.conn, query, args, func(rows *sql.Rows) (models.ClusterMovie, error) {
		var m models.ClusterMovie
		err := rows.Scan(&m.Cluster, &m.MovieID, &m.AvgRating, &m.Genres, &m.Title, &m.RatingCount)
		return m, err
	})
	if err != nil {
		return models.ClusterSummary{}, fmt.Errorf("failed to query cluster top movies: %w", err)
	}
	return summary, nil
}
