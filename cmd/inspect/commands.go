// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tomtom215/reelsight/internal/config"
	"github.com/tomtom215/reelsight/internal/dashboard"
	"github.com/tomtom215/reelsight/internal/database"
	"github.com/tomtom215/reelsight/internal/logging"
	"github.com/tomtom215/reelsight/internal/models"
)

// app holds the state shared by every subcommand. The datasets are only
// loaded once a subcommand has validated its flags.
type app struct {
	out    io.Writer
	errOut io.Writer

	db  *database.DB
	svc *dashboard.Service
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "reelsight-inspect",
		Short: "Inspect the Reelsight datasets from the terminal",
		Long: `Inspect the Reelsight datasets from the terminal.

Loads the ratings, projection, cluster summary and recommendation files
from the working directory into DuckDB and prints the same views the
dashboard serves.

Examples:
  reelsight-inspect overview
  reelsight-inspect clusters --cluster 3
  reelsight-inspect recommend --user 42
  reelsight-inspect surprise`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.AddCommand(
		a.overviewCmd(),
		a.clustersCmd(),
		a.recommendCmd(),
		a.surpriseCmd(),
	)
	return root
}

func (a *app) overviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Print dataset metrics, top movies and genre ratings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd.Context(), func(ctx context.Context) error {
				ov, _, err := a.svc.Overview(ctx)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(a.out, renderOverview(ov))
				return err
			})
		},
	}
}

func (a *app) clustersCmd() *cobra.Command {
	var cluster string

	cmd := &cobra.Command{
		Use:   "clusters",
		Short: "Print the summary of one cluster or of all clusters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd.Context(), func(ctx context.Context) error {
				view, _, err := a.svc.Clusters(ctx, cluster)
				if err != nil {
					return err
				}
				summary, _, err := a.svc.ClusterSummary(ctx, cluster)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(a.out, renderClusters(view, summary))
				return err
			})
		},
	}
	cmd.Flags().StringVar(&cluster, "cluster", models.AllClusters, "Cluster label, or \"all\"")
	return cmd
}

func (a *app) recommendCmd() *cobra.Command {
	var userID int64

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Print the three recommendation tabs of a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("user") {
				return errors.New("--user is required")
			}
			if userID < 0 {
				return fmt.Errorf("invalid user id %d", userID)
			}
			return a.run(cmd.Context(), func(ctx context.Context) error {
				recs, _, err := a.svc.Recommendations(ctx, userID)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(a.out, renderRecommendations(recs))
				return err
			})
		},
	}
	cmd.Flags().Int64Var(&userID, "user", 0, "User ID")
	return cmd
}

func (a *app) surpriseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "surprise",
		Short: "Pick a random user and print their recommendations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd.Context(), func(ctx context.Context) error {
				res, err := a.svc.Surprise(ctx)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(a.out, renderSurprise(res))
				return err
			})
		},
	}
}

// run loads the datasets, calls fn and releases everything afterwards.
func (a *app) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := a.open(ctx); err != nil {
		return err
	}
	defer a.close()
	return fn(ctx)
}

func (a *app) open(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: "console",
		Caller: cfg.Logging.Caller,
		Output: a.errOut,
	})

	db, err := database.Open(ctx, &cfg.Database, ".")
	if err != nil {
		return err
	}
	a.db = db
	a.svc = dashboard.NewService(db, &cfg.Dashboard)
	return nil
}

func (a *app) close() {
	if a.svc != nil {
		a.svc.Close()
		a.svc = nil
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close database")
		}
		a.db = nil
	}
}
