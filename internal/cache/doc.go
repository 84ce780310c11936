// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

/*
Package cache provides the in-memory caches behind the dashboard service.

The datasets are immutable once loaded, so every view computed from them can
be memoised. Two caches cover the two access patterns:

  - Cache: a TTL cache for the handful of global results (overview metrics,
    chart series, cluster labels, the canonical user list).
  - LRU: a bounded least-recently-used cache for per-selection results
    (one entry per cluster label or per user id), so browsing many users
    cannot grow memory without limit.

# Usage Example

	overview := cache.New(time.Hour)
	defer overview.Close()

	v, cached, err := cache.GetOrLoad(ctx, overview, "overview", func(ctx context.Context) (models.Overview, error) {
	    return svc.computeOverview(ctx)
	})

	perUser := cache.NewLRU[models.Recommendations](256, time.Hour)
	perUser.Add(cache.GenerateKey("recommendations", userID), recs)

# Thread Safety

Both caches are safe for concurrent use by multiple goroutines.
*/
package cache
