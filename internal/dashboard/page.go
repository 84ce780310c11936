// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package dashboard

import (
	"context"
	"errors"

	"github.com/tomtom215/reelsight/internal/metrics"
	"github.com/tomtom215/reelsight/internal/models"
)

// Page is everything needed to render one view. Only the fields of the
// selected view are set.
type Page struct {
	State State

	Overview *models.Overview

	Clusters *models.ClusterView
	Summary  *models.ClusterSummary

	// Users is the recommendation selector. It is empty when the user-user
	// table has no rows, in which case Recommendations is nil.
	Users           []int64
	Recommendations *models.Recommendations
}

// Page resolves st and computes its view. Empty cluster filters become
// models.AllClusters and a missing user becomes the smallest user id. The
// returned Page carries the resolved state.
func (s *Service) Page(ctx context.Context, st State) (Page, error) {
	if st.View == "" {
		st.View = ViewOverview
	}
	st.Cluster = normalizeCluster(st.Cluster)
	st.SummaryCluster = normalizeCluster(st.SummaryCluster)

	page := Page{State: st}

	switch st.View {
	case ViewOverview:
		ov, _, err := s.Overview(ctx)
		if err != nil {
			return Page{}, err
		}
		page.Overview = &ov

	case ViewClustering:
		view, _, err := s.Clusters(ctx, st.Cluster)
		if err != nil {
			return Page{}, err
		}
		summary, _, err := s.ClusterSummary(ctx, st.SummaryCluster)
		if err != nil {
			return Page{}, err
		}
		page.Clusters = &view
		page.Summary = &summary

	case ViewRecommendations:
		users, err := s.Users(ctx)
		if err != nil {
			return Page{}, err
		}
		page.Users = users

		if !st.UserSelected {
			id, err := s.DefaultUser(ctx)
			if errors.Is(err, ErrNoUsers) {
				break
			}
			if err != nil {
				return Page{}, err
			}
			st = st.WithUser(id)
			page.State = page.State.WithUser(id)
		}

		recs, _, err := s.Recommendations(ctx, st.UserID)
		if err != nil {
			return Page{}, err
		}
		page.Recommendations = &recs

	default:
		return Page{}, ErrUnknownView
	}

	metrics.RecordViewRender(string(st.View))
	return page, nil
}
