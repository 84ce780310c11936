// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package charts

import (
	"html/template"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/tomtom215/reelsight/internal/models"
)

// Histogram renders binned counts as a bar per bin. Bars are labelled by
// their lower edge; the tooltip shows the full range.
func (b *Builder) Histogram(bins []models.HistogramBin, xName string) template.HTML {
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(b.baseOptions("", histogramHeight),
		charts.WithColorsOpts(opts.Colors{Colour}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: xName, Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "count", Type: "value"}),
	)...)

	xs := make([]string, 0, len(bins))
	data := make([]opts.BarData, 0, len(bins))
	for _, bin := range bins {
		xs = append(xs, formatEdge(bin.Start))
		data = append(data, opts.BarData{
			Name:  formatEdge(bin.Start) + "-" + formatEdge(bin.End),
			Value: bin.Count,
		})
	}
	bar.SetXAxis(xs).AddSeries("count", data)
	return snippet(bar)
}

func formatEdge(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// GenreRatings renders the mean rating per primary genre in the order given.
func (b *Builder) GenreRatings(genres []models.GenreRating) template.HTML {
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(b.baseOptions(TitleGenreRatings, genreHeight),
		charts.WithColorsOpts(opts.Colors{Colour}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "genre", Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "rating", Type: "value"}),
	)...)

	xs := make([]string, 0, len(genres))
	data := make([]opts.BarData, 0, len(genres))
	for _, g := range genres {
		xs = append(xs, label(g.Genre))
		data = append(data, opts.BarData{Value: round2(g.MeanRating)})
	}
	bar.SetXAxis(xs).AddSeries("rating", data)
	return snippet(bar)
}

// TopMovies renders the most rated movies as horizontal bars with the
// largest on top. movies is expected in descending count order.
func (b *Builder) TopMovies(movies []models.MovieRatingCount) template.HTML {
	titles := make([]string, 0, len(movies))
	counts := make([]int64, 0, len(movies))
	for i := len(movies) - 1; i >= 0; i-- {
		titles = append(titles, movies[i].Title)
		counts = append(counts, movies[i].Count)
	}
	return b.horizontalBar(TitleTopMovies, topMoviesHeight, titles, counts)
}

// UserActivity renders one point per user: ratings given against mean rating.
func (b *Builder) UserActivity(users []models.UserActivity) template.HTML {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(append(b.baseOptions(TitleUserActivity, activityHeight),
		charts.WithColorsOpts(opts.Colors{Colour}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "item"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "rating_count", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "rating", Type: "value"}),
	)...)

	data := make([]opts.ScatterData, 0, len(users))
	for _, u := range users {
		data = append(data, opts.ScatterData{
			Name:       "user " + strconv.FormatInt(u.UserID, 10),
			Value:      []interface{}{u.Count, round2(u.MeanRating)},
			SymbolSize: 6,
		})
	}
	scatter.AddSeries("users", data)
	return snippet(scatter)
}

// horizontalBar draws counts against category labels, first label at the
// bottom.
func (b *Builder) horizontalBar(title, height string, labels []string, counts []int64) template.HTML {
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(b.baseOptions(title, height),
		charts.WithColorsOpts(opts.Colors{Colour}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "rating_count", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category"}),
	)...)

	ys := make([]string, 0, len(labels))
	data := make([]opts.BarData, 0, len(counts))
	for i := range labels {
		ys = append(ys, label(labels[i]))
		data = append(data, opts.BarData{Value: counts[i]})
	}
	bar.SetXAxis(ys).AddSeries("rating_count", data)
	bar.XYReversal()
	return snippet(bar)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
