// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package database

import (
	"errors"
	"io"

	"github.com/tomtom215/reelsight/internal/logging"
)

var (
	// ErrDatasetMissing means one of the six input files does not exist.
	ErrDatasetMissing = errors.New("dataset file missing")

	// ErrMissingColumn means a required column is absent from a dataset header.
	ErrMissingColumn = errors.New("required column missing")

	// ErrMalformedDataset means a dataset could not be parsed or typed, or a
	// required value is null.
	ErrMalformedDataset = errors.New("malformed dataset")

	// ErrNotLoaded is returned by queries issued before LoadDatasets succeeded.
	ErrNotLoaded = errors.New("datasets not loaded")
)

// closeWithLog closes a resource and logs any error.
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource and explicitly ignores any error.
// Use in error paths where Close() errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
