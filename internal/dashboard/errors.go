// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package dashboard

import "errors"

var (
	// ErrUnknownUser is returned for a user id outside the user-user
	// recommendation table.
	ErrUnknownUser = errors.New("unknown user")

	// ErrUnknownCluster is returned for a cluster label the filtered table
	// does not contain.
	ErrUnknownCluster = errors.New("unknown cluster")

	// ErrNoUsers is returned when the user-user recommendation table is empty.
	ErrNoUsers = errors.New("no users with recommendations")

	// ErrUnknownView is returned for a view name outside the three views.
	ErrUnknownView = errors.New("unknown view")
)
