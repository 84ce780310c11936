// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

/*
Package dashboard composes the three dashboard views from the loaded datasets.

A Service sits between the transports (HTML pages, JSON API, the inspect CLI)
and a Store, which the DuckDB-backed database.DB implements. It owns:

  - view state: the View enumeration and the State context struct passed to
    every rendering routine
  - selection checks against the canonical sets (cluster labels per table,
    user ids of the user-user recommendation table)
  - histogram binning of the per-user and per-movie rating counts
  - the three recommendation tabs, including their empty-state messages
  - Surprise Me, a uniform random draw from the canonical user set

Results are memoised: global aggregates in a TTL cache and per-selection
results in bounded LRU caches. The datasets never change after load, so
cached values are never stale.

# Usage

	svc := dashboard.NewService(db, &cfg.Dashboard)
	defer svc.Close()

	overview, cached, err := svc.Overview(ctx)
	recs, _, err := svc.Recommendations(ctx, 42)
	pick, err := svc.Surprise(ctx)
*/
package dashboard
