// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

//go:build js && wasm

// Command web is the browser front end, compiled to WebAssembly and loaded by
// the page served at "/":
//
//	GOOS=js GOARCH=wasm go build -o web/assets/cinematch.wasm ./cmd/web
//	cp "$(go env GOROOT)/lib/wasm/wasm_exec.js" web/assets/
//
// Client settings come from the data attributes of the page's <body>.
package main

import (
	"context"
	"os"
	"strconv"
	"syscall/js"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/client"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/ui"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, NoColor: true, TimeFormat: time.TimeOnly}).
		With().Timestamp().Str("component", "web").Logger()

	doc := js.Global().Get("document")
	cfg := pageConfig(doc.Get("body"))

	api, err := client.New(cfg, client.WithLogger(logger))
	if err != nil {
		logger.Error().Err(err).Msg("Invalid client configuration")
		return
	}

	ctx := context.Background()
	page := newPage(doc)
	app := ui.NewApp(ctx, api, page.views(), ui.Options{
		Delay:          cfg.Debounce,
		MinQueryLength: cfg.MinQueryLength,
	}, logger)
	page.bind(app)

	app.Start()
	if err := app.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("Event loop stopped")
	}
}

// pageConfig reads the client settings the server rendered into the page.
func pageConfig(body js.Value) config.ClientConfig {
	cfg := config.Default().Client
	cfg.Breaker.Enabled = false

	cfg.BaseURL = dataAttr(body, "baseUrl", "")
	if cfg.BaseURL == "" {
		cfg.BaseURL = js.Global().Get("location").Get("origin").String()
	}
	cfg.RecommendPath = dataAttr(body, "recommendPath", cfg.RecommendPath)
	cfg.SearchPath = dataAttr(body, "searchPath", cfg.SearchPath)
	cfg.VisualizationsPath = dataAttr(body, "visualizationsPath", cfg.VisualizationsPath)

	if ms, err := strconv.Atoi(dataAttr(body, "debounceMs", "")); err == nil && ms > 0 {
		cfg.Debounce = time.Duration(ms) * time.Millisecond
	}
	if n, err := strconv.Atoi(dataAttr(body, "minQueryLength", "")); err == nil && n > 0 {
		cfg.MinQueryLength = n
	}
	return cfg
}

func dataAttr(el js.Value, name, def string) string {
	v := el.Get("dataset").Get(name)
	if v.IsUndefined() || v.IsNull() || v.String() == "" {
		return def
	}
	return v.String()
}
