// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/reelsight/internal/config"
	"github.com/tomtom215/reelsight/internal/logging"
)

// Table names.
const (
	TableRatings        = "ratings"
	TableProjection     = "projection"
	TableClusterSummary = "cluster_summary"
	TableUserUserRecs   = "user_user_recs"
	TableItemItemRecs   = "item_item_recs"
	TableClusterRecs    = "cluster_recs"
)

// column maps a CSV header to a typed table column.
type column struct {
	header   string // matched case-insensitively
	name     string
	sqlType  string
	optional bool // absent header becomes an all-NULL column
	notNull  bool // every row must carry a value
}

// dataset describes one input file and the table it becomes.
type dataset struct {
	table   string
	file    string
	columns []column
}

// datasets is the fixed input set, in config.DatasetFiles order.
var datasets = []dataset{
	{
		table: TableRatings,
		file:  config.RatingsFile,
		columns: []column{
			{header: "userId", name: "user_id", sqlType: "BIGINT", notNull: true},
			{header: "movieId", name: "movie_id", sqlType: "BIGINT", notNull: true},
			{header: "rating", name: "rating", sqlType: "DOUBLE", notNull: true},
			{header: "genres", name: "genres", sqlType: "VARCHAR", optional: true},
			{header: "title", name: "title", sqlType: "VARCHAR", optional: true},
			{header: "cluster", name: "cluster", sqlType: "VARCHAR"},
		},
	},
	{
		table: TableProjection,
		file:  config.ProjectionFile,
		columns: []column{
			{header: "Title", name: "title", sqlType: "VARCHAR"},
			{header: "Cluster", name: "cluster", sqlType: "VARCHAR", notNull: true},
			{header: "PC1", name: "pc1", sqlType: "DOUBLE", notNull: true},
			{header: "PC2", name: "pc2", sqlType: "DOUBLE", notNull: true},
		},
	},
	{
		table: TableClusterSummary,
		file:  config.ClusterSummaryFile,
		columns: []column{
			{header: "cluster", name: "cluster", sqlType: "VARCHAR", notNull: true},
			{header: "movieId", name: "movie_id", sqlType: "BIGINT", notNull: true},
			{header: "avg_rating", name: "avg_rating", sqlType: "DOUBLE", notNull: true},
			{header: "genres", name: "genres", sqlType: "VARCHAR"},
			{header: "title", name: "title", sqlType: "VARCHAR"},
			{header: "rating_count", name: "rating_count", sqlType: "BIGINT", notNull: true},
		},
	},
	{
		table: TableUserUserRecs,
		file:  config.UserUserRecsFile,
		columns: []column{
			{header: "userId", name: "user_id", sqlType: "BIGINT", notNull: true},
			{header: "title", name: "title", sqlType: "VARCHAR"},
			{header: "genres", name: "genres", sqlType: "VARCHAR"},
			{header: "rating", name: "rating", sqlType: "DOUBLE", notNull: true},
			{header: "adjusted_rating", name: "adjusted_rating", sqlType: "DOUBLE", notNull: true},
		},
	},
	{
		table: TableItemItemRecs,
		file:  config.ItemItemRecsFile,
		columns: []column{
			{header: "userId", name: "user_id", sqlType: "BIGINT", notNull: true},
			{header: "title", name: "title", sqlType: "VARCHAR"},
			{header: "genres", name: "genres", sqlType: "VARCHAR"},
			{header: "score", name: "score", sqlType: "DOUBLE", notNull: true},
		},
	},
	{
		table: TableClusterRecs,
		file:  config.ClusterRecsFile,
		columns: []column{
			{header: "userId", name: "user_id", sqlType: "BIGINT", notNull: true},
			{header: "title", name: "title", sqlType: "VARCHAR"},
			{header: "genres", name: "genres", sqlType: "VARCHAR"},
			{header: "cluster", name: "cluster", sqlType: "VARCHAR"},
			{header: "mean", name: "mean", sqlType: "DOUBLE", notNull: true},
			{header: "count", name: "count", sqlType: "BIGINT", notNull: true},
		},
	},
}

// loadResult is what loading one dataset reports back.
type loadResult struct {
	rows    int
	missing []string // optional headers that were absent
}

// LoadDatasets reads the six input files from dir into typed tables.
// Any failure is returned wrapped around one of the sentinel errors and
// leaves the DB unloaded; callers treat it as fatal.
func (db *DB) LoadDatasets(ctx context.Context, dir string) error {
	for _, ds := range datasets {
		path := filepath.Join(dir, ds.file)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("%w: %s", ErrDatasetMissing, path)
			}
			return fmt.Errorf("stat %s: %w", path, err)
		}
	}

	start := time.Now()
	results := make([]loadResult, len(datasets))

	g, gctx := errgroup.WithContext(ctx)
	for i, ds := range datasets {
		g.Go(func() error {
			res, err := db.loadDataset(gctx, ds, filepath.Join(dir, ds.file))
			if err != nil {
				return fmt.Errorf("load %s: %w", ds.file, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	for i, ds := range datasets {
		db.rowCounts[ds.table] = results[i].rows
		logging.Info().
			Str("dataset", ds.file).
			Str("table", ds.table).
			Int("rows", results[i].rows).
			Strs("absent_optional_columns", results[i].missing).
			Msg("Dataset loaded")
	}
	ratingsMissing := results[0].missing
	db.hasGenres = !slices.Contains(ratingsMissing, "genres")
	db.hasTitles = !slices.Contains(ratingsMissing, "title")
	db.loaded = true

	logging.Info().Dur("took", time.Since(start)).Msg("All datasets loaded")
	return nil
}

// loadDataset reads one CSV into raw_<table>, casts it into <table> and
// checks required values.
func (db *DB) loadDataset(ctx context.Context, ds dataset, path string) (loadResult, error) {
	raw := "raw_" + ds.table

	// read_csv_auto takes the path as a literal, not a parameter.
	createRaw := fmt.Sprintf("CREATE OR REPLACE TABLE %s AS SELECT * FROM read_csv_auto(%s, header = true)",
		quoteIdent(raw), quoteLiteral(path))
	if _, err := db.conn.ExecContext(ctx, createRaw); err != nil {
		return loadResult{}, fmt.Errorf("%w: read csv: %v", ErrMalformedDataset, err)
	}
	defer func() {
		if _, err := db.conn.ExecContext(context.WithoutCancel(ctx), "DROP TABLE IF EXISTS "+quoteIdent(raw)); err != nil {
			logging.Warn().Err(err).Str("table", raw).Msg("Failed to drop staging table")
		}
	}()

	headers, err := db.tableColumns(ctx, raw)
	if err != nil {
		return loadResult{}, err
	}

	var res loadResult
	selects := make([]string, 0, len(ds.columns))
	for _, col := range ds.columns {
		actual, ok := headers[strings.ToLower(col.header)]
		switch {
		case ok:
			selects = append(selects, fmt.Sprintf("CAST(%s AS %s) AS %s", quoteIdent(actual), col.sqlType, quoteIdent(col.name)))
		case col.optional:
			res.missing = append(res.missing, col.name)
			selects = append(selects, fmt.Sprintf("CAST(NULL AS %s) AS %s", col.sqlType, quoteIdent(col.name)))
		default:
			return loadResult{}, fmt.Errorf("%w: %q", ErrMissingColumn, col.header)
		}
	}

	createTyped := fmt.Sprintf("CREATE OR REPLACE TABLE %s AS SELECT %s FROM %s",
		quoteIdent(ds.table), strings.Join(selects, ", "), quoteIdent(raw))
	if _, err := db.conn.ExecContext(ctx, createTyped); err != nil {
		return loadResult{}, fmt.Errorf("%w: cast columns: %v", ErrMalformedDataset, err)
	}

	if err := db.checkNotNull(ctx, ds); err != nil {
		return loadResult{}, err
	}

	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+quoteIdent(ds.table)).Scan(&res.rows); err != nil {
		return loadResult{}, fmt.Errorf("count rows: %w", err)
	}
	return res, nil
}

// tableColumns returns the columns of table keyed by lower-cased name.
func (db *DB) tableColumns(ctx context.Context, table string) (map[string]string, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT column_name FROM information_schema.columns WHERE table_name = ? ORDER BY ordinal_position", table)
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}
	defer closeWithLog(rows, "rows")

	cols := make(map[string]string)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan column name: %w", err)
		}
		cols[strings.ToLower(name)] = name
	}
	return cols, rows.Err()
}

// checkNotNull rejects rows where a required column is null.
func (db *DB) checkNotNull(ctx context.Context, ds dataset) error {
	for _, col := range ds.columns {
		if !col.notNull {
			continue
		}
		var nulls int
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s IS NULL", quoteIdent(ds.table), quoteIdent(col.name))
		if err := db.conn.QueryRowContext(ctx, query).Scan(&nulls); err != nil {
			return fmt.Errorf("check nulls in %s: %w", col.name, err)
		}
		if nulls > 0 {
			return fmt.Errorf("%w: %d rows without %s", ErrMalformedDataset, nulls, col.header)
		}
	}
	return nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
