// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/reelsight/internal/config"
	"github.com/tomtom215/reelsight/internal/models"
)

// testDBSemaphore serializes DuckDB usage across tests. Concurrent CGO
// calls from many parallel tests can hang under CI resource pressure, so
// each test holds the semaphore for its whole lifetime.
var testDBSemaphore = make(chan struct{}, 1)

// fixtureRatings gives users 1, 2 and 3 five, two and nine ratings.
var fixtureRatings = []models.Rating{
	{UserID: 1, MovieID: 10, Rating: 4.0, Genres: "Action|Adventure", Title: "Toy Story", Cluster: "0"},
	{UserID: 1, MovieID: 11, Rating: 3.0, Genres: "Comedy", Title: "Jumanji", Cluster: "1"},
	{UserID: 1, MovieID: 12, Rating: 5.0, Genres: "Drama|Romance", Title: "Heat", Cluster: "2"},
	{UserID: 1, MovieID: 13, Rating: 2.0, Genres: "Action", Title: "Sabrina", Cluster: "0"},
	{UserID: 1, MovieID: 14, Rating: 4.5, Genres: "Comedy|Drama", Title: "GoldenEye", Cluster: "1"},
	{UserID: 2, MovieID: 10, Rating: 5.0, Genres: "Action|Adventure", Title: "Toy Story", Cluster: "0"},
	{UserID: 2, MovieID: 11, Rating: 1.0, Genres: "Comedy", Title: "Jumanji", Cluster: "1"},
	{UserID: 3, MovieID: 10, Rating: 3.0, Genres: "Action|Adventure", Title: "Toy Story", Cluster: "0"},
	{UserID: 3, MovieID: 11, Rating: 4.0, Genres: "Comedy", Title: "Jumanji", Cluster: "1"},
	{UserID: 3, MovieID: 12, Rating: 4.0, Genres: "Drama|Romance", Title: "Heat", Cluster: "2"},
	{UserID: 3, MovieID: 13, Rating: 3.5, Genres: "Action", Title: "Sabrina", Cluster: "0"},
	{UserID: 3, MovieID: 14, Rating: 2.5, Genres: "Comedy|Drama", Title: "GoldenEye", Cluster: "1"},
	{UserID: 3, MovieID: 15, Rating: 5.0, Genres: "Drama", Title: "Casino", Cluster: "2"},
	{UserID: 3, MovieID: 16, Rating: 1.5, Genres: "Horror", Title: "Se7en", Cluster: "2"},
	{UserID: 3, MovieID: 17, Rating: 3.0, Genres: "Comedy", Title: "Babe", Cluster: "1"},
	{UserID: 3, MovieID: 18, Rating: 4.0, Genres: "Action|Thriller", Title: "Speed", Cluster: "0"},
}

func ratingsCSV(ratings []models.Rating) string {
	var b strings.Builder
	b.WriteString("userId,movieId,rating,genres,title,cluster\n")
	for _, r := range ratings {
		fmt.Fprintf(&b, "%d,%d,%.1f,%s,%s,%s\n", r.UserID, r.MovieID, r.Rating, r.Genres, r.Title, r.Cluster)
	}
	return b.String()
}

func userUserCSV() string {
	var b strings.Builder
	b.WriteString("userId,title,genres,rating,adjusted_rating\n")
	// User 1 has twelve candidates so the top-10 cap is visible.
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&b, "1,Movie %c,Drama,4.0,%d.0\n", 'A'+i, i+1)
	}
	b.WriteString("2,Heat,Drama|Romance,4.5,4.2\n")
	b.WriteString("3,Babe,Comedy,3.5,3.9\n")
	b.WriteString("3,Speed,Action|Thriller,4.0,4.4\n")
	return b.String()
}

// fixtureFiles returns the six dataset files keyed by file name.
func fixtureFiles() map[string]string {
	return map[string]string{
		config.RatingsFile: ratingsCSV(fixtureRatings),
		config.ProjectionFile: "Title,Cluster,PC1,PC2\n" +
			"Toy Story,0,0.1,0.2\n" +
			"Jumanji,1,-0.3,0.5\n" +
			"Heat,2,1.2,-0.4\n" +
			"Sabrina,0,0.0,0.0\n" +
			"GoldenEye,1,0.7,0.9\n" +
			"Casino,10,2.0,1.0\n",
		config.ClusterSummaryFile: "cluster,movieId,avg_rating,genres,title,rating_count\n" +
			"0,10,4.0,Action|Adventure,Toy Story,3\n" +
			"0,13,2.75,Action,Sabrina,2\n" +
			"0,18,4.0,Action|Thriller,Speed,1\n" +
			"1,11,2.67,Comedy,Jumanji,3\n" +
			"1,14,3.5,Comedy|Drama,GoldenEye,2\n" +
			"1,17,3.0,Comedy,Babe,1\n" +
			"2,12,4.5,Drama|Romance,Heat,2\n" +
			"2,15,5.0,Drama,Casino,1\n" +
			"2,16,1.5,Horror,Se7en,1\n",
		config.UserUserRecsFile: userUserCSV(),
		config.ItemItemRecsFile: "userId,title,genres,score\n" +
			"1,Heat,Drama|Romance,0.5\n" +
			"1,Casino,Drama,0.9\n" +
			"3,Babe,Comedy,0.7\n",
		config.ClusterRecsFile: "userId,title,genres,cluster,mean,count\n" +
			"1,Speed,Action|Thriller,0,3.8,12\n" +
			"1,Sabrina,Action,0,4.1,7\n" +
			"2,Jumanji,Comedy,1,3.2,30\n",
	}
}

// writeFixtures writes files into a fresh temp dir and returns it.
func writeFixtures(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("write fixture %s: %v", name, err)
		}
	}
	return dir
}

// setupTestDB creates an in-memory database without loading anything.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	db, err := New(&config.DatabaseConfig{MaxMemory: "512MB", Threads: 2})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return db
}

// setupLoadedDB creates a database with the standard fixtures loaded.
func setupLoadedDB(t *testing.T) *DB {
	t.Helper()
	db := setupTestDB(t)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	if err := db.LoadDatasets(ctx, writeFixtures(t, fixtureFiles())); err != nil {
		t.Fatalf("LoadDatasets() error = %v", err)
	}
	return db
}
