// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package dashboard

import (
	"slices"

	"github.com/tomtom215/reelsight/internal/models"
)

// Histogram splits values into bins equal-width bins spanning [min, max].
// Each bin covers [Start, End) except the last, which also includes max.
// A constant input yields a single bin. Empty input yields an empty slice.
func Histogram(values []int64, bins int) []models.HistogramBin {
	if len(values) == 0 || bins <= 0 {
		return []models.HistogramBin{}
	}

	lo := float64(slices.Min(values))
	hi := float64(slices.Max(values))
	if lo == hi {
		return []models.HistogramBin{{Start: lo, End: hi, Count: int64(len(values))}}
	}

	width := (hi - lo) / float64(bins)
	out := make([]models.HistogramBin, bins)
	for i := range out {
		out[i].Start = lo + float64(i)*width
		out[i].End = lo + float64(i+1)*width
	}
	out[bins-1].End = hi

	for _, v := range values {
		idx := int((float64(v) - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		out[idx].Count++
	}
	return out
}
