// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"net/url"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/reelsight/internal/config"
	"github.com/tomtom215/reelsight/internal/logging"
	"github.com/tomtom215/reelsight/internal/metrics"
)

const (
	// defaultQueryTimeout bounds queries issued without a deadline.
	defaultQueryTimeout = 30 * time.Second
	pingTimeout         = 10 * time.Second
)

// DB is the in-memory DuckDB instance holding the six datasets.
type DB struct {
	connector *duckdb.Connector
	conn      *sql.DB

	mu        sync.RWMutex
	loaded    bool
	hasGenres bool // ratings file carried a genres column
	hasTitles bool // ratings file carried a title column
	rowCounts map[string]int
}

// dsn builds the in-memory DSN. Extensions are never fetched at runtime;
// read_csv_auto is built in.
func dsn(cfg *config.DatabaseConfig) string {
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	q := url.Values{}
	q.Set("threads", strconv.Itoa(threads))
	q.Set("max_memory", cfg.MaxMemory)
	q.Set("autoinstall_known_extensions", "false")
	q.Set("autoload_known_extensions", "false")
	return ":memory:?" + q.Encode()
}

// New opens an empty in-memory DuckDB instance. Call LoadDatasets before
// issuing any query.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	connector, err := duckdb.NewConnector(dsn(cfg), nil)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	conn := sql.OpenDB(connector)
	// Queries are read-only once loaded; allow one per core.
	conn.SetMaxOpenConns(runtime.NumCPU())
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	db := &DB{connector: connector, conn: conn, rowCounts: map[string]int{}}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.Ping(ctx); err != nil {
		closeQuietly(db)
		return nil, fmt.Errorf("connect to duckdb: %w", err)
	}
	return db, nil
}

// Open creates a database and loads the six datasets from dir. The load is
// recorded in the dataset metrics; on failure the database is closed.
func Open(ctx context.Context, cfg *config.DatabaseConfig, dir string) (*DB, error) {
	db, err := New(cfg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	err = db.LoadDatasets(ctx, dir)
	metrics.RecordDatasetLoad(time.Since(start), db.RowCounts(), err)
	if err == nil {
		return db, nil
	}
	if closeErr := db.Close(); closeErr != nil {
		logging.Error().Err(closeErr).Msg("Failed to close database after a failed load")
	}
	return nil, err
}

// Conn returns the underlying pool.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Close closes the pool and then the DuckDB instance, discarding every
// table.
func (db *DB) Close() error {
	var errs []error
	if db.conn != nil {
		errs = append(errs, db.conn.Close())
	}
	if db.connector != nil {
		errs = append(errs, db.connector.Close())
	}
	return errors.Join(errs...)
}

// Ping checks that DuckDB answers.
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return errors.New("duckdb: not open")
	}
	return db.conn.PingContext(ctx)
}

// Loaded reports whether LoadDatasets has completed successfully.
func (db *DB) Loaded() bool {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.loaded
}

// HasGenres reports whether the ratings file carried a genres column.
func (db *DB) HasGenres() bool {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.hasGenres
}

// HasTitles reports whether the ratings file carried a title column.
func (db *DB) HasTitles() bool {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.hasTitles
}

// RowCounts returns a copy of the rows loaded per table.
func (db *DB) RowCounts() map[string]int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return maps.Clone(db.rowCounts)
}

// begin prepares a read query. It fails with ErrNotLoaded before the
// datasets are in, and bounds ctx by defaultQueryTimeout when it carries no
// deadline.
func (db *DB) begin(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if !db.Loaded() {
		return nil, nil, ErrNotLoaded
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	return ctx, cancel, nil
}
