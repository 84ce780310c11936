// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

/*
Package services provides suture.Service wrappers for the Reelsight server.

Each wrapper implements suture v4's context-aware Serve method and a String
method naming it in supervisor events.

# Available Services

HTTPServerService (api layer):
  - Runs *http.Server, restarting on listen failures
  - Graceful Shutdown with a configurable drain timeout on cancellation

UptimeService (api layer):
  - Refreshes the reelsight_uptime_seconds gauge on a ticker

CacheWarmerService (data layer):
  - Calls dashboard.Service.Warm on startup and then every interval
  - A failed warm-up is logged and retried on the next tick
*/
package services
