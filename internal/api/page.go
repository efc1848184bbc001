// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
)

//go:embed templates/index.html
var templatesFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// pageData configures the WebAssembly front end through the page's body
// data attributes. An empty BaseURL means the page's own origin.
type pageData struct {
	BaseURL            string
	RecommendPath      string
	SearchPath         string
	VisualizationsPath string
	DebounceMillis     int64
	MinQueryLength     int
}

func newPageData(cfg *config.Config) pageData {
	return pageData{
		RecommendPath:      "/recommend",
		SearchPath:         "/search",
		VisualizationsPath: "/visualizations",
		DebounceMillis:     cfg.Client.Debounce.Milliseconds(),
		MinQueryLength:     cfg.Client.MinQueryLength,
	}
}

// Index handles GET /
// Serves the front-end page.
func (router *Router) Index(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, router.page); err != nil {
		logging.Error().Err(err).Msg("Failed to render index page")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	if _, err := w.Write(buf.Bytes()); err != nil {
		logging.Debug().Err(err).Msg("Failed to write index page")
	}
}

// assetsHandler serves the WebAssembly build from dir.
func assetsHandler(dir string) http.Handler {
	fs := http.StripPrefix("/assets/", http.FileServer(http.Dir(filepath.Clean(dir))))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		if strings.HasSuffix(r.URL.Path, ".wasm") {
			w.Header().Set("Content-Type", "application/wasm")
		}
		w.Header().Set("Cache-Control", "public, max-age=3600")
		fs.ServeHTTP(w, r)
	})
}
