// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

/*
Package charts turns dashboard view models into go-echarts chart snippets.

Each builder method returns a template.HTML fragment: a sized div and the
script that draws an echarts instance into it. Pages embed the fragments
directly and must load the echarts library once, from Builder.ScriptURL,
before the first fragment.

Charts:
  - Histogram: ratings per user and ratings per movie
  - GenreRatings: mean rating by primary genre
  - TopMovies: the most rated movies as horizontal bars, largest on top
  - UserActivity: rating count against mean rating, one point per user
  - ClusterScatter: the PCA projection, one series per cluster
  - ClusterTopMovies: the most rated movies of a selected cluster

Single-series charts are drawn in Colour.

Usage:

	b := charts.NewBuilder(cfg.Dashboard.AssetsHost)
	data := struct {
		Script string
		Genres template.HTML
	}{b.ScriptURL(), b.GenreRatings(ov.GenreRatings)}
*/
package charts
