// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package dashboard

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/reelsight/internal/cache"
	"github.com/tomtom215/reelsight/internal/config"
	"github.com/tomtom215/reelsight/internal/database"
	"github.com/tomtom215/reelsight/internal/logging"
	"github.com/tomtom215/reelsight/internal/metrics"
	"github.com/tomtom215/reelsight/internal/models"
)

// Empty-state messages of the recommendation tabs.
const (
	NoUserBasedMessage    = "No user-user recommendations available for this user."
	NoItemBasedMessage    = "No item-item recommendations available for this user."
	NoClusterBasedMessage = "No cluster-based recommendations available for this user."
)

// selectionCacheSize bounds each per-selection LRU.
const selectionCacheSize = 256

// Store is the read side of the loaded datasets.
type Store interface {
	OverviewMetrics(ctx context.Context) (models.OverviewMetrics, error)
	RatingsPerUser(ctx context.Context) ([]int64, error)
	RatingsPerMovie(ctx context.Context) ([]int64, error)
	GenreRatings(ctx context.Context) ([]models.GenreRating, error)
	TopRatedMovies(ctx context.Context, limit int) ([]models.MovieRatingCount, error)
	UserActivity(ctx context.Context) ([]models.UserActivity, error)

	ProjectionClusters(ctx context.Context) ([]string, error)
	SummaryClusters(ctx context.Context) ([]string, error)
	Projection(ctx context.Context, cluster string) ([]models.ProjectionPoint, error)
	ClusterSummary(ctx context.Context, cluster string, topN int) (models.ClusterSummary, error)

	RecommendationUsers(ctx context.Context) ([]int64, error)
	UserUserRecommendations(ctx context.Context, userID int64, limit int) ([]models.UserUserRecommendation, error)
	ItemItemRecommendations(ctx context.Context, userID int64) ([]models.ItemItemRecommendation, error)
	ClusterRecommendations(ctx context.Context, userID int64) ([]models.ClusterRecommendation, error)
}

var _ Store = (*database.DB)(nil)

// Option customises a Service.
type Option func(*Service)

// WithPicker replaces the uniform random index source used by Surprise.
// pick(n) must return a value in [0, n).
func WithPicker(pick func(n int) int) Option {
	return func(s *Service) {
		s.pick = pick
	}
}

// Service builds dashboard views from a Store.
type Service struct {
	store Store
	cfg   config.DashboardConfig
	pick  func(n int) int

	global         *cache.Cache
	clusterViews   *cache.LRU[models.ClusterView]
	summaries      *cache.LRU[models.ClusterSummary]
	recommendation *cache.LRU[models.Recommendations]
}

// NewService creates a Service. Non-positive sizes in cfg fall back to the
// dashboard defaults.
func NewService(store Store, cfg *config.DashboardConfig, opts ...Option) *Service {
	c := *cfg
	if c.HistogramBins <= 0 {
		c.HistogramBins = 50
	}
	if c.UserTopN <= 0 {
		c.UserTopN = 10
	}
	if c.ClusterTopN <= 0 {
		c.ClusterTopN = 5
	}
	if c.TopMoviesN <= 0 {
		c.TopMoviesN = 10
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = time.Hour
	}

	s := &Service{
		store:          store,
		cfg:            c,
		pick:           rand.IntN,
		global:         cache.New(c.CacheTTL),
		clusterViews:   cache.NewLRU[models.ClusterView](selectionCacheSize, c.CacheTTL),
		summaries:      cache.NewLRU[models.ClusterSummary](selectionCacheSize, c.CacheTTL),
		recommendation: cache.NewLRU[models.Recommendations](selectionCacheSize, c.CacheTTL),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close releases the cache cleanup goroutine.
func (s *Service) Close() {
	s.global.Close()
}

// Config returns the effective dashboard configuration.
func (s *Service) Config() config.DashboardConfig {
	return s.cfg
}

// observe times one store call.
func observe[T any](operation, table string, fn func() (T, error)) (T, error) {
	start := time.Now()
	v, err := fn()
	metrics.RecordDBQuery(operation, table, time.Since(start), err)
	return v, err
}

// cached memoises a global value in the TTL cache. load receives the
// context of the shared load, not of the request that started it.
func cached[T any](ctx context.Context, s *Service, key string, load func(context.Context) (T, error)) (T, bool, error) {
	v, hit, err := cache.GetOrLoad(ctx, s.global, key, load)
	if err == nil {
		metrics.RecordCacheLookup(key, hit)
	}
	return v, hit, err
}

// Overview computes the metrics and chart series of the overview page.
// The six aggregates run in parallel.
func (s *Service) Overview(ctx context.Context) (models.Overview, bool, error) {
	return cached(ctx, s, "overview", func(ctx context.Context) (models.Overview, error) {
		var (
			ov       models.Overview
			perUser  []int64
			perMovie []int64
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			ov.Metrics, err = observe("overview_metrics", database.TableRatings, func() (models.OverviewMetrics, error) {
				return s.store.OverviewMetrics(gctx)
			})
			return err
		})
		g.Go(func() (err error) {
			perUser, err = observe("ratings_per_user", database.TableRatings, func() ([]int64, error) {
				return s.store.RatingsPerUser(gctx)
			})
			return err
		})
		g.Go(func() (err error) {
			perMovie, err = observe("ratings_per_movie", database.TableRatings, func() ([]int64, error) {
				return s.store.RatingsPerMovie(gctx)
			})
			return err
		})
		g.Go(func() (err error) {
			ov.GenreRatings, err = observe("genre_ratings", database.TableRatings, func() ([]models.GenreRating, error) {
				return s.store.GenreRatings(gctx)
			})
			return err
		})
		g.Go(func() (err error) {
			ov.TopMovies, err = observe("top_rated_movies", database.TableRatings, func() ([]models.MovieRatingCount, error) {
				return s.store.TopRatedMovies(gctx, s.cfg.TopMoviesN)
			})
			return err
		})
		g.Go(func() (err error) {
			ov.UserActivity, err = observe("user_activity", database.TableRatings, func() ([]models.UserActivity, error) {
				return s.store.UserActivity(gctx)
			})
			return err
		})
		if err := g.Wait(); err != nil {
			return models.Overview{}, fmt.Errorf("failed to build overview: %w", err)
		}

		ov.RatingsPerUser = Histogram(perUser, s.cfg.HistogramBins)
		ov.RatingsPerMovie = Histogram(perMovie, s.cfg.HistogramBins)
		return ov, nil
	})
}

// ProjectionClusters returns the cluster labels of the projection table.
func (s *Service) ProjectionClusters(ctx context.Context) ([]string, error) {
	labels, _, err := cached(ctx, s, "projection_clusters", func(ctx context.Context) ([]string, error) {
		return observe("projection_clusters", database.TableProjection, func() ([]string, error) {
			return s.store.ProjectionClusters(ctx)
		})
	})
	return labels, err
}

// SummaryClusters returns the cluster labels of the cluster summary table.
func (s *Service) SummaryClusters(ctx context.Context) ([]string, error) {
	labels, _, err := cached(ctx, s, "summary_clusters", func(ctx context.Context) ([]string, error) {
		return observe("summary_clusters", database.TableClusterSummary, func() ([]string, error) {
			return s.store.SummaryClusters(ctx)
		})
	})
	return labels, err
}

// Clusters returns the projection scatter for cluster, or for every movie
// when cluster is empty or models.AllClusters.
func (s *Service) Clusters(ctx context.Context, cluster string) (models.ClusterView, bool, error) {
	cluster = normalizeCluster(cluster)

	labels, err := s.ProjectionClusters(ctx)
	if err != nil {
		return models.ClusterView{}, false, err
	}
	if cluster != models.AllClusters && !slices.Contains(labels, cluster) {
		return models.ClusterView{}, false, fmt.Errorf("%w: %q", ErrUnknownCluster, cluster)
	}

	key := cache.GenerateKey("clusters", cluster)
	if v, ok := s.clusterViews.Get(key); ok {
		metrics.RecordCacheLookup("clusters", true)
		return v, true, nil
	}
	metrics.RecordCacheLookup("clusters", false)

	points, err := observe("projection", database.TableProjection, func() ([]models.ProjectionPoint, error) {
		return s.store.Projection(ctx, cluster)
	})
	if err != nil {
		return models.ClusterView{}, false, fmt.Errorf("failed to build cluster view: %w", err)
	}

	view := models.ClusterView{Clusters: labels, Selected: cluster, Points: points}
	s.clusterViews.Add(key, view)
	return view, false, nil
}

// ClusterSummary returns the summary panel for cluster. The filter is
// independent of the one used by Clusters.
func (s *Service) ClusterSummary(ctx context.Context, cluster string) (models.ClusterSummary, bool, error) {
	cluster = normalizeCluster(cluster)

	labels, err := s.SummaryClusters(ctx)
	if err != nil {
		return models.ClusterSummary{}, false, err
	}
	if cluster != models.AllClusters && !slices.Contains(labels, cluster) {
		return models.ClusterSummary{}, false, fmt.Errorf("%w: %q", ErrUnknownCluster, cluster)
	}

	key := cache.GenerateKey("summary", cluster)
	if v, ok := s.summaries.Get(key); ok {
		metrics.RecordCacheLookup("summary", true)
		return v, true, nil
	}
	metrics.RecordCacheLookup("summary", false)

	summary, err := observe("cluster_summary", database.TableClusterSummary, func() (models.ClusterSummary, error) {
		return s.store.ClusterSummary(ctx, cluster, s.cfg.ClusterTopN)
	})
	if err != nil {
		return models.ClusterSummary{}, false, fmt.Errorf("failed to build cluster summary: %w", err)
	}
	summary.Clusters = labels
	summary.Selected = cluster

	s.summaries.Add(key, summary)
	return summary, false, nil
}

// Users returns the canonical user ids in ascending order.
func (s *Service) Users(ctx context.Context) ([]int64, error) {
	users, _, err := cached(ctx, s, "users", func(ctx context.Context) ([]int64, error) {
		return observe("recommendation_users", database.TableUserUserRecs, func() ([]int64, error) {
			return s.store.RecommendationUsers(ctx)
		})
	})
	return users, err
}

// DefaultUser is the smallest canonical user id.
func (s *Service) DefaultUser(ctx context.Context) (int64, error) {
	users, err := s.Users(ctx)
	if err != nil {
		return 0, err
	}
	if len(users) == 0 {
		return 0, ErrNoUsers
	}
	return users[0], nil
}

// HasUser reports whether userID is in the canonical set.
func (s *Service) HasUser(ctx context.Context, userID int64) (bool, error) {
	users, err := s.Users(ctx)
	if err != nil {
		return false, err
	}
	_, found := slices.BinarySearch(users, userID)
	return found, nil
}

// Recommendations looks up the three recommendation tabs for userID. The
// three tables are queried in parallel and independently: an empty result
// in one table never affects the others.
func (s *Service) Recommendations(ctx context.Context, userID int64) (models.Recommendations, bool, error) {
	ok, err := s.HasUser(ctx, userID)
	if err != nil {
		return models.Recommendations{}, false, err
	}
	if !ok {
		return models.Recommendations{}, false, fmt.Errorf("%w: %d", ErrUnknownUser, userID)
	}

	key := cache.GenerateKey("recommendations", userID)
	if v, ok := s.recommendation.Get(key); ok {
		metrics.RecordCacheLookup("recommendations", true)
		return v, true, nil
	}
	metrics.RecordCacheLookup("recommendations", false)

	var (
		userBased    []models.UserUserRecommendation
		itemBased    []models.ItemItemRecommendation
		clusterBased []models.ClusterRecommendation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		userBased, err = observe("user_user_recommendations", database.TableUserUserRecs, func() ([]models.UserUserRecommendation, error) {
			return s.store.UserUserRecommendations(gctx, userID, s.cfg.UserTopN)
		})
		return err
	})
	g.Go(func() (err error) {
		itemBased, err = observe("item_item_recommendations", database.TableItemItemRecs, func() ([]models.ItemItemRecommendation, error) {
			return s.store.ItemItemRecommendations(gctx, userID)
		})
		return err
	})
	g.Go(func() (err error) {
		clusterBased, err = observe("cluster_recommendations", database.TableClusterRecs, func() ([]models.ClusterRecommendation, error) {
			return s.store.ClusterRecommendations(gctx, userID)
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return models.Recommendations{}, false, fmt.Errorf("failed to look up recommendations for user %d: %w", userID, err)
	}

	recs := models.Recommendations{
		UserID:       userID,
		UserBased:    newTab(models.MethodUserBased, userBased, NoUserBasedMessage),
		ItemBased:    newTab(models.MethodItemBased, itemBased, NoItemBasedMessage),
		ClusterBased: newTab(models.MethodClusterBased, clusterBased, NoClusterBasedMessage),
	}
	s.recommendation.Add(key, recs)
	return recs, false, nil
}

// newTab wraps rows, substituting the empty-state message when there are none.
func newTab[T any](method string, rows []T, emptyMessage string) models.RecommendationTab[T] {
	if len(rows) == 0 {
		metrics.RecordEmptyTab(method)
		return models.RecommendationTab[T]{
			Method:  method,
			Message: emptyMessage,
			Rows:    []T{},
		}
	}
	return models.RecommendationTab[T]{Method: method, Available: true, Rows: rows}
}

// Surprise draws a user uniformly at random from the canonical set and
// returns their recommendations. Every call draws again.
func (s *Service) Surprise(ctx context.Context) (models.SurpriseResult, error) {
	users, err := s.Users(ctx)
	if err != nil {
		return models.SurpriseResult{}, err
	}
	if len(users) == 0 {
		return models.SurpriseResult{}, ErrNoUsers
	}

	userID := users[s.pick(len(users))]
	metrics.RecordSurprisePick()
	logging.Ctx(ctx).Debug().Int64("user_id", userID).Msg("Surprise pick")

	recs, _, err := s.Recommendations(ctx, userID)
	if err != nil {
		return models.SurpriseResult{}, err
	}
	return models.SurpriseResult{UserID: userID, Recommendations: recs}, nil
}

// Warm fills the caches behind the first page load of every view: the
// overview, both "all" cluster views and the default user's
// recommendations. Entries that are still fresh are not recomputed.
func (s *Service) Warm(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, _, err := s.Overview(gctx)
		return err
	})
	g.Go(func() error {
		_, _, err := s.Clusters(gctx, models.AllClusters)
		return err
	})
	g.Go(func() error {
		_, _, err := s.ClusterSummary(gctx, models.AllClusters)
		return err
	})
	g.Go(func() error {
		userID, err := s.DefaultUser(gctx)
		if errors.Is(err, ErrNoUsers) {
			return nil
		}
		if err != nil {
			return err
		}
		_, _, err = s.Recommendations(gctx, userID)
		return err
	})
	return g.Wait()
}

// ParseUserID parses a user id selection.
func ParseUserID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUser, s)
	}
	return id, nil
}
