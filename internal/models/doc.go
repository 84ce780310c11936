// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

/*
Package models defines the data structures shared by Reelsight's layers.

Model Categories:

1. Dataset Records (records.go):
  - Rating: one row of merged_df_clustered_KMeans.csv
  - ProjectionPoint: one row of clustered_pca.csv
  - ClusterMovie: one row of movies_with_clusters_summary.csv
  - UserUserRecommendation, ItemItemRecommendation, ClusterRecommendation:
    rows of the three precomputed recommendation files

2. View Models (dashboard.go):
  - Overview, ClusterView, ClusterSummary, Recommendations
  - RecommendationTab: one recommendation method with its empty-state message

3. API Models (api_responses.go):
  - APIResponse, Metadata, APIError, HealthStatus

Cluster labels are kept as strings. The upstream files carry integers today,
but nothing in the dashboard does arithmetic on them and a string survives
any future relabelling.
*/
package models
