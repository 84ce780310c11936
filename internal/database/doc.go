// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

// Package database holds Reelsight's six datasets in an in-memory DuckDB
// instance and answers every dashboard question with SQL.
//
// # Overview
//
// At startup LoadDatasets reads the six CSV files with DuckDB's
// read_csv_auto, casts them into typed tables and verifies the required
// columns. The tables are never written again; every later call is a
// read-only filter, aggregate or sort.
//
// # Organization
//
//   - database.go: connection lifecycle (New, Close, Ping)
//   - loader.go: dataset definitions and CSV loading
//   - overview.go: headline metrics and overview chart aggregates
//   - clusters.go: PCA projection and cluster summary queries
//   - recommendations.go: per-user recommendation lookups
//   - query_helpers.go: query builder and generic row scanning
//   - errors.go: sentinel errors and close helpers
//
// # Tables
//
//	ratings          user_id, movie_id, rating, genres, title, cluster
//	projection       title, cluster, pc1, pc2
//	cluster_summary  cluster, movie_id, avg_rating, genres, title, rating_count
//	user_user_recs   user_id, title, genres, rating, adjusted_rating
//	item_item_recs   user_id, title, genres, score
//	cluster_recs     user_id, title, genres, cluster, mean, count
//
// Cluster labels are VARCHAR in every table.
//
// # Concurrency
//
// DB is safe for concurrent use once LoadDatasets has returned. Queries run
// on the database/sql pool against immutable tables, so no locking is
// needed beyond the pool itself.
package database
