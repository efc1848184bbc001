// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package logging provides the zerolog-based logger shared by the Cinematch
// server, the terminal client and the browser front end.
//
// The package keeps one global logger for process-level messages and hands
// out child loggers for components. Components that need to be observable in
// tests (the UI core, the API client, the catalog loader) take a
// zerolog.Logger as a constructor argument instead of reaching for the
// global; tests pass NewTestLogger(&buf) and assert on the captured JSON.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("dataset", path).Msg("Catalog loaded")
//	logging.Ctx(ctx).Warn().Msg("Title not found")
//
// # Configuration
//
// Environment Variables (mapped through internal/config):
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false (default: false)
//
// Always terminate event chains with .Msg() or .Send(); an unterminated chain
// is never written.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum log level: trace, debug, info, warn, error, fatal, panic.
	Level string

	// Format is the output format: json or console.
	Format string

	// Caller includes caller file and line number in logs.
	Caller bool

	// Timestamp enables timestamps in log output.
	Timestamp bool

	// Output is the writer for log output. Default: os.Stderr
	Output io.Writer
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:     "info",
		Format:    "json",
		Timestamp: true,
		Output:    os.Stderr,
	}
}

// global is swapped as a whole by Init; readers never see a partial update.
var global atomic.Pointer[zerolog.Logger]

//nolint:gochecknoinits // logging must work before Init is called
func init() {
	cfg := DefaultConfig()
	if os.Getenv("CINEMATCH_QUIET") == "1" {
		cfg.Level = "fatal"
	}
	Init(cfg)
}

// Init configures the global logger. Later calls replace it.
func Init(cfg Config) {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "time"
	zerolog.MessageFieldName = "message"

	var out io.Writer = cfg.Output
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: time.TimeOnly}
	}

	ctx := zerolog.New(out).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	logger := ctx.Logger()
	global.Store(&logger)
}

// parseLevel maps a level name to zerolog, accepting "warning" and falling
// back to info for unknown names.
func parseLevel(level string) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		return zerolog.WarnLevel
	}
	if level == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// ValidLevel reports whether level names a known log level.
func ValidLevel(level string) bool {
	level = strings.ToLower(level)
	if level == "warning" {
		return true
	}
	lvl, err := zerolog.ParseLevel(level)
	return err == nil && lvl != zerolog.NoLevel
}

// Logger returns the global logger.
func Logger() zerolog.Logger {
	return *global.Load()
}

// With creates a child logger context from the global logger.
func With() zerolog.Context {
	return Logger().With()
}

func Debug() *zerolog.Event { return global.Load().Debug() }

func Info() *zerolog.Event { return global.Load().Info() }

func Warn() *zerolog.Event { return global.Load().Warn() }

func Error() *zerolog.Event { return global.Load().Error() }

// Fatal logs and then calls os.Exit(1).
func Fatal() *zerolog.Event { return global.Load().Fatal() }

// Err starts an error-level event for err; a nil err logs at info.
//
//	logging.Err(err).Msg("Catalog reload failed")
func Err(err error) *zerolog.Event { return global.Load().Err(err) }

// NewTestLogger creates a logger that writes JSON to w.
//
//	var buf bytes.Buffer
//	flow := ui.NewRecommendationFlow(ctx, api, input, results, sched, logging.NewTestLogger(&buf))
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
