// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package api

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/tomtom215/reelsight/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page template names.
const (
	templateDashboard = "dashboard"
	templateError     = "error"
)

// PageRenderer executes the embedded dashboard templates.
type PageRenderer struct {
	tmpl *template.Template
}

// NewPageRenderer parses the embedded templates with the page functions.
func NewPageRenderer() (*PageRenderer, error) {
	tmpl, err := template.New("pages").Funcs(pageFuncs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &PageRenderer{tmpl: tmpl}, nil
}

// Render executes the named template into a buffer and writes it with status.
// Nothing is written when execution fails.
func (p *PageRenderer) Render(w http.ResponseWriter, status int, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// pageFuncs are the formatting helpers available to page templates.
func pageFuncs() template.FuncMap {
	return template.FuncMap{
		// Numbers
		"float": func(v float64, digits int) string {
			return strconv.FormatFloat(v, 'f', digits, 64)
		},
		"num": func(v float64) string {
			return strconv.FormatFloat(v, 'f', -1, 64)
		},
		"optFloat": func(v *float64, digits int) string {
			if v == nil {
				return "n/a"
			}
			return strconv.FormatFloat(*v, 'f', digits, 64)
		},

		// Text
		"orNA": func(s string) string {
			if s == "" {
				return "n/a"
			}
			return s
		},
		"clusterLabel": func(c string) string {
			if c == models.AllClusters {
				return allClustersLabel
			}
			return c
		},
	}
}
