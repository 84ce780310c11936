// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

// Package validation provides struct validation using go-playground/validator v10.
//
// A thread-safe singleton validator checks the query parameters of dashboard
// requests before they reach the data layer. Error field names come from the
// `query` struct tag, and errors convert to the API's VALIDATION_ERROR format.
//
// # Custom Validators
//
//   - cluster_label: a non-empty printable label of at most 64 characters with
//     no surrounding whitespace. "all" passes; existence is checked later
//     against the loaded clusters.
//
// # Example
//
//	type ClusterQuery struct {
//	    Cluster string `query:"cluster" validate:"omitempty,cluster_label"`
//	}
//
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
package validation
