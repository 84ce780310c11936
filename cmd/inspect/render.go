// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/tomtom215/reelsight/internal/models"
)

var accent = lipgloss.Color("#6C5CE7")

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent).MarginTop(1)
	labelStyle  = lipgloss.NewStyle().Width(22)
	valueStyle  = lipgloss.NewStyle().Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F4A261"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F45E6E"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

type metric struct {
	label string
	value string
}

func renderTitle(s string) string {
	return titleStyle.Render(s) + "\n"
}

func renderMetrics(ms ...metric) string {
	var b strings.Builder
	for _, m := range ms {
		b.WriteString(labelStyle.Render(m.label))
		b.WriteString(valueStyle.Render(m.value))
		b.WriteByte('\n')
	}
	return b.String()
}

func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(accent)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.String() + "\n"
}

// renderTab prints a recommendation tab, or its warning when it has no rows.
func renderTab[T any](title string, tab models.RecommendationTab[T], headers []string, row func(T) []string) string {
	var b strings.Builder
	b.WriteString(renderTitle(title))
	if !tab.Available {
		b.WriteString(warnStyle.Render(tab.Message))
		b.WriteByte('\n')
		return b.String()
	}
	rows := make([][]string, 0, len(tab.Rows))
	for _, r := range tab.Rows {
		rows = append(rows, row(r))
	}
	b.WriteString(renderTable(headers, rows))
	return b.String()
}

func renderOverview(ov models.Overview) string {
	var b strings.Builder

	b.WriteString(renderTitle("Overview"))
	b.WriteString(renderMetrics(
		metric{"Users", strconv.FormatInt(ov.Metrics.Users, 10)},
		metric{"Movies", strconv.FormatInt(ov.Metrics.Movies, 10)},
		metric{"Mean rating", optFloat(ov.Metrics.MeanRating, 2)},
		metric{"Clusters", strconv.FormatInt(ov.Metrics.Clusters, 10)},
		metric{"Avg movies per user", optFloat(ov.Metrics.AvgMoviesPerUser, 1)},
	))

	if len(ov.TopMovies) > 0 {
		rows := make([][]string, 0, len(ov.TopMovies))
		for _, m := range ov.TopMovies {
			rows = append(rows, []string{m.Title, strconv.FormatInt(m.Count, 10)})
		}
		b.WriteString(renderTitle("Most rated movies"))
		b.WriteString(renderTable([]string{"Title", "Ratings"}, rows))
	}

	if len(ov.GenreRatings) > 0 {
		rows := make([][]string, 0, len(ov.GenreRatings))
		for _, g := range ov.GenreRatings {
			rows = append(rows, []string{g.Genre, formatFloat(g.MeanRating, 2)})
		}
		b.WriteString(renderTitle("Mean rating by genre"))
		b.WriteString(renderTable([]string{"Genre", "Mean rating"}, rows))
	}

	return b.String()
}

func renderClusters(view models.ClusterView, summary models.ClusterSummary) string {
	var b strings.Builder

	b.WriteString(renderTitle("Cluster " + clusterName(summary.Selected)))
	b.WriteString(renderMetrics(
		metric{"Available clusters", strings.Join(view.Clusters, ", ")},
		metric{"Projected movies", strconv.Itoa(len(view.Points))},
		metric{"Movies", strconv.FormatInt(summary.MovieCount, 10)},
		metric{"Mean rating", optFloat(summary.MeanRating, 2)},
		metric{"Top genre", orNA(summary.TopGenre)},
	))

	if len(summary.TopMovies) > 0 {
		rows := make([][]string, 0, len(summary.TopMovies))
		for _, m := range summary.TopMovies {
			rows = append(rows, []string{
				m.Title,
				m.Genres,
				formatFloat(m.AvgRating, 2),
				strconv.FormatInt(m.RatingCount, 10),
			})
		}
		b.WriteString(renderTitle("Top movies"))
		b.WriteString(renderTable([]string{"Title", "Genres", "Avg rating", "Ratings"}, rows))
	}

	return b.String()
}

func renderRecommendations(recs models.Recommendations) string {
	var b strings.Builder

	b.WriteString(renderTitle(fmt.Sprintf("Recommendations for user %d", recs.UserID)))
	b.WriteString(renderTab("User-based", recs.UserBased,
		[]string{"Title", "Genres", "Rating", "Adjusted rating"},
		func(r models.UserUserRecommendation) []string {
			return []string{r.Title, r.Genres, formatFloat(r.Rating, 2), formatFloat(r.AdjustedRating, 2)}
		}))
	b.WriteString(renderTab("Item-based", recs.ItemBased,
		[]string{"Title", "Genres", "Score"},
		func(r models.ItemItemRecommendation) []string {
			return []string{r.Title, r.Genres, formatFloat(r.Score, 3)}
		}))
	b.WriteString(renderTab("Cluster-based", recs.ClusterBased,
		[]string{"Title", "Genres", "Cluster", "Mean", "Count"},
		func(r models.ClusterRecommendation) []string {
			return []string{r.Title, r.Genres, r.Cluster, formatFloat(r.Mean, 2), strconv.FormatInt(r.Count, 10)}
		}))

	return b.String()
}

func renderSurprise(res models.SurpriseResult) string {
	return renderMetrics(metric{"Surprise pick", "user " + strconv.FormatInt(res.UserID, 10)}) +
		renderRecommendations(res.Recommendations)
}

func formatFloat(v float64, digits int) string {
	return strconv.FormatFloat(v, 'f', digits, 64)
}

func optFloat(v *float64, digits int) string {
	if v == nil {
		return "n/a"
	}
	return formatFloat(*v, digits)
}

func orNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}

func clusterName(c string) string {
	if c == models.AllClusters || c == "" {
		return "All Clusters"
	}
	return c
}
