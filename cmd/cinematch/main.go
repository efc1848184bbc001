// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Command cinematch is the terminal front end for a Cinematch server.
//
//	cinematch recommend "Stranger Things" --limit 5
//	cinematch search dark
//	cinematch insights -o yaml
//	cinematch shell
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tomtom215/cinematch/internal/client"
	"github.com/tomtom215/cinematch/internal/config"
)

// version is set via ldflags at build time
var version = "dev"

func main() {
	ctx := context.Background()

	rootCmd := NewRootCmd(version, newApp())
	if err := fang.Execute(ctx, rootCmd); err != nil {
		os.Exit(1)
	}
}

type app struct {
	httpClient *http.Client
}

func newApp() *app {
	return &app{}
}

// settings loads the configuration and applies the persistent flag overrides.
func (a *app) settings(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("base-url") {
		cfg.Client.BaseURL, _ = cmd.Flags().GetString("base-url")
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Client.Timeout, _ = cmd.Flags().GetDuration("timeout")
	}
	if err := cfg.ValidateClient(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// api builds an API client for the command.
func (a *app) api(cmd *cobra.Command) (*client.Client, *config.Config, error) {
	cfg, err := a.settings(cmd)
	if err != nil {
		return nil, nil, err
	}
	c, err := client.New(cfg.Client,
		client.WithHTTPClient(a.httpClient),
		client.WithLogger(commandLogger(cmd)))
	if err != nil {
		return nil, nil, err
	}
	return c, cfg, nil
}

// commandLogger writes human-readable logs to stderr; --verbose enables debug.
func commandLogger(cmd *cobra.Command) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}

func requestFailed(what string, err error) error {
	return fmt.Errorf("%s: %w", what, err)
}
