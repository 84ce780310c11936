// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/reelsight/internal/dashboard"
)

// PageRequest is the query string of the dashboard page.
type PageRequest struct {
	View           string `query:"view" validate:"omitempty,oneof=overview clustering recommendations"`
	Cluster        string `query:"cluster" validate:"omitempty,cluster_label"`
	SummaryCluster string `query:"summary_cluster" validate:"omitempty,cluster_label"`
	User           string `query:"user" validate:"omitempty,number,max=19"`
}

func parsePageRequest(r *http.Request) PageRequest {
	q := r.URL.Query()
	return PageRequest{
		View:           q.Get("view"),
		Cluster:        q.Get("cluster"),
		SummaryCluster: q.Get("summary_cluster"),
		User:           q.Get("user"),
	}
}

// State converts a validated request into dashboard state.
func (p PageRequest) State() (dashboard.State, error) {
	view, err := dashboard.ParseView(p.View)
	if err != nil {
		return dashboard.State{}, err
	}
	st := dashboard.State{
		View:           view,
		Cluster:        p.Cluster,
		SummaryCluster: p.SummaryCluster,
	}
	if p.User != "" {
		id, err := dashboard.ParseUserID(p.User)
		if err != nil {
			return dashboard.State{}, err
		}
		st = st.WithUser(id)
	}
	return st, nil
}

// ClusterRequest selects a cluster filter. Empty means all clusters.
type ClusterRequest struct {
	Cluster string `query:"cluster" validate:"omitempty,cluster_label"`
}

// UserRequest selects a user by path parameter.
type UserRequest struct {
	UserID string `query:"userID" validate:"required,number,max=19"`
}

func parseUserRequest(r *http.Request) UserRequest {
	return UserRequest{UserID: chi.URLParam(r, "userID")}
}
