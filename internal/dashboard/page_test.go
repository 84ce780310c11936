// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/tomtom215/reelsight/internal/models"
)

func TestParseView(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    View
		wantErr bool
	}{
		{"", ViewOverview, false},
		{"overview", ViewOverview, false},
		{"clustering", ViewClustering, false},
		{"recommendations", ViewRecommendations, false},
		{"Overview", "", true},
		{"admin", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseView(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseView(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnknownView) {
				t.Errorf("error = %v, want ErrUnknownView", err)
			}
			if got != tt.want {
				t.Errorf("ParseView(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestViewLabels(t *testing.T) {
	t.Parallel()

	want := []string{"Overview", "Clustering", "Recommendations"}
	for i, v := range Views() {
		if v.Label() != want[i] {
			t.Errorf("Views()[%d].Label() = %q, want %q", i, v.Label(), want[i])
		}
	}
}

func TestDefaultState(t *testing.T) {
	t.Parallel()

	st := DefaultState()
	if st.View != ViewOverview || st.Cluster != models.AllClusters || st.SummaryCluster != models.AllClusters || st.UserSelected {
		t.Errorf("DefaultState() = %+v", st)
	}
}

func TestPage(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, newFakeStore())
	ctx := context.Background()

	t.Run("overview", func(t *testing.T) {
		page, err := svc.Page(ctx, State{})
		if err != nil {
			t.Fatalf("Page() error = %v", err)
		}
		if page.State.View != ViewOverview || page.Overview == nil {
			t.Errorf("page = %+v, want overview", page.State)
		}
		if page.Clusters != nil || page.Recommendations != nil {
			t.Error("overview page carries other views")
		}
	})

	t.Run("clustering with independent filters", func(t *testing.T) {
		page, err := svc.Page(ctx, State{View: ViewClustering, Cluster: "2", SummaryCluster: ""})
		if err != nil {
			t.Fatalf("Page() error = %v", err)
		}
		if page.Clusters.Selected != "2" || page.Summary.Selected != models.AllClusters {
			t.Errorf("selected %q/%q, want 2/all", page.Clusters.Selected, page.Summary.Selected)
		}
		if page.State.SummaryCluster != models.AllClusters {
			t.Errorf("resolved SummaryCluster = %q, want all", page.State.SummaryCluster)
		}
	})

	t.Run("recommendations default user", func(t *testing.T) {
		page, err := svc.Page(ctx, State{View: ViewRecommendations})
		if err != nil {
			t.Fatalf("Page() error = %v", err)
		}
		if !page.State.UserSelected || page.State.UserID != 1 || page.Recommendations == nil || page.Recommendations.UserID != 1 {
			t.Errorf("page state %+v, want default user 1", page.State)
		}
		if len(page.Users) != 3 {
			t.Errorf("Users = %v, want three users", page.Users)
		}
	})

	t.Run("recommendations selected user", func(t *testing.T) {
		page, err := svc.Page(ctx, State{View: ViewRecommendations}.WithUser(7))
		if err != nil {
			t.Fatalf("Page() error = %v", err)
		}
		if page.Recommendations.UserID != 7 {
			t.Errorf("UserID = %d, want 7", page.Recommendations.UserID)
		}
	})

	t.Run("unknown selections", func(t *testing.T) {
		if _, err := svc.Page(ctx, State{View: ViewRecommendations}.WithUser(99)); !errors.Is(err, ErrUnknownUser) {
			t.Errorf("unknown user error = %v", err)
		}
		if _, err := svc.Page(ctx, State{View: ViewClustering, Cluster: "x"}); !errors.Is(err, ErrUnknownCluster) {
			t.Errorf("unknown cluster error = %v", err)
		}
		if _, err := svc.Page(ctx, State{View: "bogus"}); !errors.Is(err, ErrUnknownView) {
			t.Errorf("unknown view error = %v", err)
		}
	})
}

func TestPage_NoUsers(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	store.userUser = nil
	svc := newTestService(t, store)

	page, err := svc.Page(context.Background(), State{View: ViewRecommendations})
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	if page.Recommendations != nil || len(page.Users) != 0 {
		t.Errorf("page = %+v, want no recommendations", page)
	}
}
