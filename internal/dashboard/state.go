// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package dashboard

import (
	"fmt"

	"github.com/tomtom215/reelsight/internal/models"
)

// View is one of the three mutually exclusive dashboard pages.
type View string

const (
	ViewOverview        View = "overview"
	ViewClustering      View = "clustering"
	ViewRecommendations View = "recommendations"
)

// Views returns the views in navigation order.
func Views() []View {
	return []View{ViewOverview, ViewClustering, ViewRecommendations}
}

// ParseView maps a view name to a View. The empty string selects the overview.
func ParseView(s string) (View, error) {
	switch View(s) {
	case "":
		return ViewOverview, nil
	case ViewOverview, ViewClustering, ViewRecommendations:
		return View(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
	}
}

// Label is the navigation caption of the view.
func (v View) Label() string {
	switch v {
	case ViewOverview:
		return "Overview"
	case ViewClustering:
		return "Clustering"
	case ViewRecommendations:
		return "Recommendations"
	default:
		return string(v)
	}
}

// State is the complete UI selection: the current view, the two independent
// cluster filters and the selected user. Every combination is reachable.
type State struct {
	View View

	// Cluster filters the projection scatter.
	Cluster string

	// SummaryCluster filters the cluster summary panel. It is not linked
	// to Cluster.
	SummaryCluster string

	// UserID is the selected user. It is meaningful only when
	// UserSelected is set, since 0 is a valid user id.
	UserID       int64
	UserSelected bool
}

// WithUser returns a copy of s with id selected.
func (s State) WithUser(id int64) State {
	s.UserID, s.UserSelected = id, true
	return s
}

// DefaultState is the state of a first visit.
func DefaultState() State {
	return State{
		View:           ViewOverview,
		Cluster:        models.AllClusters,
		SummaryCluster: models.AllClusters,
	}
}

// normalizeCluster maps an empty filter to models.AllClusters.
func normalizeCluster(cluster string) string {
	if cluster == "" {
		return models.AllClusters
	}
	return cluster
}
