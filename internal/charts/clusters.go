// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package charts

import (
	"html/template"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/tomtom215/reelsight/internal/models"
)

// clusterTooltip names the hovered movie and its cluster. ECharts fills {b}
// with the data item name and {a} with the series name.
const clusterTooltip = "Title: {b}<br/>Cluster: {a}"

// ClusterScatter renders the projection with one series per cluster, in the
// label order of view.Clusters. Clusters with no points are left out, so a
// filtered view shows a single series.
func (b *Builder) ClusterScatter(view models.ClusterView) template.HTML {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(append(b.baseOptions(TitleClusterScatter, projectionHeight),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "item", Formatter: clusterTooltip}),
		charts.WithLegendOpts(opts.Legend{Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "PC1", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "PC2", Type: "value"}),
	)...)

	byCluster := make(map[string][]opts.ScatterData, len(view.Clusters))
	for _, p := range view.Points {
		byCluster[p.Cluster] = append(byCluster[p.Cluster], opts.ScatterData{
			Name:       label(p.Title),
			Value:      []interface{}{p.PC1, p.PC2},
			SymbolSize: 8,
		})
	}
	for _, c := range view.Clusters {
		if data, ok := byCluster[c]; ok {
			scatter.AddSeries(label(c), data)
		}
	}
	return snippet(scatter)
}

// ClusterTopMovies renders the most rated movies of one cluster, largest on
// top. movies is expected in descending rating_count order.
func (b *Builder) ClusterTopMovies(movies []models.ClusterMovie) template.HTML {
	titles := make([]string, 0, len(movies))
	counts := make([]int64, 0, len(movies))
	for i := len(movies) - 1; i >= 0; i-- {
		titles = append(titles, movies[i].Title)
		counts = append(counts, movies[i].RatingCount)
	}
	return b.horizontalBar(TitleClusterTopMovies, clusterTopsHeight, titles, counts)
}
