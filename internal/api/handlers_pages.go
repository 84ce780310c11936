// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package api

import (
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/reelsight/internal/dashboard"
	"github.com/tomtom215/reelsight/internal/logging"
	"github.com/tomtom215/reelsight/internal/models"
)

// userCookie keeps the selected user for the browser session.
const userCookie = "reelsight_user"

// allClustersLabel is the first entry of both cluster selectors.
const allClustersLabel = "All Clusters"

type navLink struct {
	Label  string
	URL    string
	Active bool
}

type selectOption struct {
	Value    string
	Label    string
	Selected bool
}

// chartSet holds the rendered charts of the current view. Empty fields are
// not shown.
type chartSet struct {
	RatingsPerUser   template.HTML
	RatingsPerMovie  template.HTML
	GenreRatings     template.HTML
	TopMovies        template.HTML
	UserActivity     template.HTML
	ClusterScatter   template.HTML
	ClusterTopMovies template.HTML
}

// dashboardPage is the data of the dashboard template.
type dashboardPage struct {
	ScriptURL string
	Nav       []navLink
	State     dashboard.State
	Page      dashboard.Page
	Charts    chartSet

	ClusterOptions []selectOption
	SummaryOptions []selectOption
	UserOptions    []selectOption

	// FilterActive is set when the projection shows a single cluster.
	FilterActive bool
}

// errorPage is the data of the error template.
type errorPage struct {
	Status  int
	Title   string
	Message string
}

// Dashboard renders the selected view.
// GET /?view=&cluster=&summary_cluster=&user=
//
// Without a user parameter the user stored in the session cookie is used,
// and without either the smallest user id.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	req := parsePageRequest(r)
	if apiErr := validateRequest(&req); apiErr != nil {
		h.renderError(w, r, http.StatusBadRequest, apiErr.Message)
		return
	}

	st, err := req.State()
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	if !st.UserSelected {
		if id, ok := h.cookieUser(r); ok {
			st = st.WithUser(id)
		}
	}

	page, err := h.svc.Page(r.Context(), st)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	if req.User != "" {
		setUserCookie(w, page.State.UserID)
	}

	data := h.buildDashboardPage(page)
	if err := h.pages.Render(w, http.StatusOK, templateDashboard, data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to render dashboard")
		http.Error(w, "Failed to render dashboard", http.StatusInternalServerError)
	}
}

// SurprisePage draws a random user, remembers it in the session cookie and
// redirects to their recommendations. The cluster filters posted with the
// form are carried over.
// POST /surprise
func (h *Handler) SurprisePage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Malformed form")
		return
	}

	res, err := h.svc.Surprise(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	logging.Ctx(r.Context()).Info().Int64("user_id", res.UserID).Msg("Surprise user drawn")

	st := dashboard.State{View: dashboard.ViewRecommendations}.WithUser(res.UserID)
	filters := PageRequest{
		Cluster:        r.PostForm.Get("cluster"),
		SummaryCluster: r.PostForm.Get("summary_cluster"),
	}
	if validateRequest(&filters) == nil {
		st.Cluster = filters.Cluster
		st.SummaryCluster = filters.SummaryCluster
	}

	setUserCookie(w, res.UserID)
	http.Redirect(w, r, stateURL(st), http.StatusSeeOther)
}

// cookieUser returns the session user if it is still a canonical user.
func (h *Handler) cookieUser(r *http.Request) (int64, bool) {
	c, err := r.Cookie(userCookie)
	if err != nil {
		return 0, false
	}
	id, err := dashboard.ParseUserID(c.Value)
	if err != nil {
		return 0, false
	}
	ok, err := h.svc.HasUser(r.Context(), id)
	if err != nil || !ok {
		return 0, false
	}
	return id, true
}

func setUserCookie(w http.ResponseWriter, userID int64) {
	http.SetCookie(w, &http.Cookie{
		Name:     userCookie,
		Value:    strconv.FormatInt(userID, 10),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// stateURL encodes st as a dashboard link. Defaults are omitted.
func stateURL(st dashboard.State) string {
	view := st.View
	if view == "" {
		view = dashboard.ViewOverview
	}

	var b strings.Builder
	b.WriteString("/?view=")
	b.WriteString(url.QueryEscape(string(view)))
	if st.Cluster != "" && st.Cluster != models.AllClusters {
		b.WriteString("&cluster=")
		b.WriteString(url.QueryEscape(st.Cluster))
	}
	if st.SummaryCluster != "" && st.SummaryCluster != models.AllClusters {
		b.WriteString("&summary_cluster=")
		b.WriteString(url.QueryEscape(st.SummaryCluster))
	}
	if st.UserSelected {
		b.WriteString("&user=")
		b.WriteString(strconv.FormatInt(st.UserID, 10))
	}
	return b.String()
}

func (h *Handler) buildDashboardPage(page dashboard.Page) dashboardPage {
	st := page.State
	data := dashboardPage{
		ScriptURL: h.charts.ScriptURL(),
		State:     st,
		Page:      page,
	}

	for _, v := range dashboard.Views() {
		linked := st
		linked.View = v
		data.Nav = append(data.Nav, navLink{Label: v.Label(), URL: stateURL(linked), Active: v == st.View})
	}

	switch st.View {
	case dashboard.ViewOverview:
		ov := page.Overview
		data.Charts.RatingsPerUser = h.charts.Histogram(ov.RatingsPerUser, "rating_count")
		data.Charts.RatingsPerMovie = h.charts.Histogram(ov.RatingsPerMovie, "rating_count")
		if ov.GenreRatings != nil {
			data.Charts.GenreRatings = h.charts.GenreRatings(ov.GenreRatings)
		}
		if ov.TopMovies != nil {
			data.Charts.TopMovies = h.charts.TopMovies(ov.TopMovies)
		}
		data.Charts.UserActivity = h.charts.UserActivity(ov.UserActivity)

	case dashboard.ViewClustering:
		data.Charts.ClusterScatter = h.charts.ClusterScatter(*page.Clusters)
		data.ClusterOptions = clusterOptions(page.Clusters.Clusters, page.Clusters.Selected)
		data.FilterActive = page.Clusters.Selected != models.AllClusters

		data.SummaryOptions = clusterOptions(page.Summary.Clusters, page.Summary.Selected)
		if page.Summary.Selected != models.AllClusters && len(page.Summary.TopMovies) > 0 {
			data.Charts.ClusterTopMovies = h.charts.ClusterTopMovies(page.Summary.TopMovies)
		}

	case dashboard.ViewRecommendations:
		for _, id := range page.Users {
			v := strconv.FormatInt(id, 10)
			data.UserOptions = append(data.UserOptions, selectOption{Value: v, Label: v, Selected: st.UserSelected && id == st.UserID})
		}
	}

	return data
}

// clusterOptions lists "All Clusters" followed by labels in their given order.
func clusterOptions(labels []string, selected string) []selectOption {
	opts := make([]selectOption, 0, len(labels)+1)
	opts = append(opts, selectOption{
		Value:    models.AllClusters,
		Label:    allClustersLabel,
		Selected: selected == models.AllClusters,
	})
	for _, l := range labels {
		opts = append(opts, selectOption{Value: l, Label: l, Selected: l == selected})
	}
	return opts
}

func (h *Handler) renderServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, _, message := serviceErrorStatus(err)
	if status == http.StatusInternalServerError {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to build dashboard page")
	}
	h.renderError(w, r, status, message)
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	data := errorPage{Status: status, Title: http.StatusText(status), Message: message}
	if err := h.pages.Render(w, status, templateError, data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to render error page")
		http.Error(w, message, status)
	}
}
