// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package middleware

import (
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// compressionLevel is the gzip/deflate level handed to chi's compressor.
const compressionLevel = 5

// compressibleTypes are the content types the dashboard serves that are
// worth compressing. Anything else is written as-is.
var compressibleTypes = []string{
	"text/html",
	"text/plain",
	"text/css",
	"application/json",
	"application/javascript",
	"image/svg+xml",
}

var compress = chimiddleware.Compress(compressionLevel, compressibleTypes...)

// Compression compresses HTML pages and JSON for clients that accept it.
// HEAD requests bypass the compressor so their headers match a plain GET.
func Compression(next http.Handler) http.Handler {
	compressed := compress(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}
		compressed.ServeHTTP(w, r)
	})
}
