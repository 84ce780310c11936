// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package charts

import (
	"html/template"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/render"
)

// Colour is the bar and marker colour of every single-series chart.
const Colour = "#6C5CE7"

// Chart heights in pixels.
const (
	histogramHeight   = "300px"
	genreHeight       = "350px"
	topMoviesHeight   = "400px"
	activityHeight    = "350px"
	projectionHeight  = "500px"
	clusterTopsHeight = "400px"
)

// echartsScript is the library file under the assets host.
const echartsScript = "echarts.min.js"

// Chart titles.
const (
	TitleGenreRatings     = "Average Rating by Genre"
	TitleTopMovies        = "Top 10 Most Rated Movies"
	TitleUserActivity     = "User Rating Count vs Average Score"
	TitleClusterScatter   = "Movie Clusters (PCA View)"
	TitleClusterTopMovies = "Most Rated Movies in This Cluster"
)

// Builder renders chart snippets that load echarts from one assets host.
type Builder struct {
	assetsHost string
}

// NewBuilder creates a Builder. assetsHost is the base URL of the echarts
// assets; a missing trailing slash is added.
func NewBuilder(assetsHost string) *Builder {
	if assetsHost != "" && !strings.HasSuffix(assetsHost, "/") {
		assetsHost += "/"
	}
	return &Builder{assetsHost: assetsHost}
}

// ScriptURL is the echarts library URL pages must load before any snippet.
func (b *Builder) ScriptURL() string {
	return b.assetsHost + echartsScript
}

// snippeter is implemented by every go-echarts chart type.
type snippeter interface {
	RenderSnippet() render.ChartSnippet
}

// snippet renders c as a div followed by the script that draws into it.
func snippet(c snippeter) template.HTML {
	s := c.RenderSnippet()
	return template.HTML(s.Element + s.Script) //nolint:gosec // generated by go-echarts from sanitised labels
}

// baseOptions are shared by every chart.
func (b *Builder) baseOptions(title, height string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Width:      "100%",
			Height:     height,
			AssetsHost: b.assetsHost,
		}),
		charts.WithTitleOpts(opts.Title{Title: title, Left: "center"}),
	}
}

// labelReplacer keeps data labels from closing the surrounding script element.
var labelReplacer = strings.NewReplacer("<", "‹", ">", "›")

func label(s string) string {
	return labelReplacer.Replace(s)
}
