// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Level != "info" {
		t.Errorf("expected default level 'info', got '%s'", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("expected default format 'json', got '%s'", cfg.Format)
	}
	if !cfg.Timestamp {
		t.Error("expected default timestamp to be true")
	}
}

func TestInit(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	Info().Str("dataset", "titles.csv").Msg("catalog loaded")

	output := buf.String()
	if !strings.Contains(output, "catalog loaded") {
		t.Errorf("expected message in output, got: %s", output)
	}
	if !strings.Contains(output, `"dataset":"titles.csv"`) {
		t.Errorf("expected dataset field in output, got: %s", output)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.expected {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestValidLevel(t *testing.T) {
	t.Parallel()

	if !ValidLevel("Info") {
		t.Error("expected Info to be valid")
	}
	if ValidLevel("verbose") {
		t.Error("expected verbose to be invalid")
	}
}

func TestCtxCarriesRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))
	ctx = ContextWithRequestID(ctx, "req-1")

	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Errorf("RequestIDFromContext() = %q", got)
	}
	Ctx(ctx).Info().Msg("served")

	if !strings.Contains(buf.String(), `"request_id":"req-1"`) {
		t.Errorf("missing request_id: %s", buf.String())
	}
	if RequestIDFromContext(context.Background()) != "" {
		t.Error("empty context should have no request ID")
	}
}

func TestSlogLoggerWritesThroughZerolog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	slogger := NewSlogLogger(NewTestLogger(&buf)).WithGroup("supervisor")
	slogger.Warn("service restarted", slog.String("service", "http"), slog.Int("attempt", 2))

	output := buf.String()
	if !strings.Contains(output, `"level":"warn"`) {
		t.Errorf("expected warn level, got: %s", output)
	}
	if !strings.Contains(output, `"supervisor.service":"http"`) {
		t.Errorf("expected grouped key, got: %s", output)
	}
	if !strings.Contains(output, `"supervisor.attempt":2`) {
		t.Errorf("expected grouped int, got: %s", output)
	}
}
