// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package database

import (
	"context"
	"database/sql"
	"math"
	"strings"

	"github.com/tomtom215/reelsight/internal/models"
)

// queryBuilder narrows a base query whose WHERE clause is already open
// (typically "WHERE 1=1") by the dashboard's selections.
type queryBuilder struct {
	sql   strings.Builder
	args  []interface{}
	limit *int
}

func newQueryBuilder(base string) *queryBuilder {
	qb := &queryBuilder{}
	qb.sql.WriteString(base)
	return qb
}

func (qb *queryBuilder) and(cond string, arg interface{}) *queryBuilder {
	qb.sql.WriteString(" AND ")
	qb.sql.WriteString(cond)
	qb.args = append(qb.args, arg)
	return qb
}

// addClusterFilter keeps one cluster's rows. "" and models.AllClusters keep
// every row.
func (qb *queryBuilder) addClusterFilter(cluster string) *queryBuilder {
	if cluster == "" || cluster == models.AllClusters {
		return qb
	}
	return qb.and("cluster = ?", cluster)
}

// addUserFilter keeps one user's rows.
func (qb *queryBuilder) addUserFilter(userID int64) *queryBuilder {
	return qb.and("user_id = ?", userID)
}

// addLimit binds the LIMIT ? placeholder that the build suffix must end
// with. It is bound after every filter argument.
func (qb *queryBuilder) addLimit(n int) *queryBuilder {
	qb.limit = &n
	return qb
}

// build appends suffix (GROUP BY, ORDER BY, LIMIT) and returns the query
// with its positional arguments.
func (qb *queryBuilder) build(suffix string) (string, []interface{}) {
	if suffix != "" {
		qb.sql.WriteByte(' ')
		qb.sql.WriteString(suffix)
	}
	args := qb.args
	if qb.limit != nil {
		args = append(args, *qb.limit)
	}
	return qb.sql.String(), args
}

// queryAndScan runs query and scans every row with scan. A query that
// matches nothing yields an empty, non-nil slice.
func queryAndScan[T any](ctx context.Context, db *sql.DB, query string, args []interface{}, scan func(*sql.Rows) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeWithLog(rows, "rows")

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// roundedPtr rounds a nullable aggregate to decimals places, ties to even
// (5.25 -> 5.2). NULL and NaN become nil.
func roundedPtr(v sql.NullFloat64, decimals int) *float64 {
	if !v.Valid || math.IsNaN(v.Float64) {
		return nil
	}
	pow := math.Pow10(decimals)
	r := math.RoundToEven(v.Float64*pow) / pow
	return &r
}
