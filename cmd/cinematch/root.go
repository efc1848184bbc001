// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"github.com/spf13/cobra"

	"github.com/tomtom215/cinematch/internal/client"
	"github.com/tomtom215/cinematch/internal/config"
)

// apiFunc returns a client configured from the command's flags.
type apiFunc func(cmd *cobra.Command) (*client.Client, *config.Config, error)

func NewRootCmd(version string, a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cinematch",
		Short:         "Movie recommendations from the terminal",
		Long:          `Ask a Cinematch server for similar titles, search the catalog and view catalog insights.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	addPersistentFlags(rootCmd)

	if a != nil {
		addSubcommands(rootCmd, a)
	}

	return rootCmd
}

func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", "", "Config file (default: config.yaml if present)")
	cmd.PersistentFlags().String("base-url", "", "API base URL (overrides client.base_url)")
	cmd.PersistentFlags().Duration("timeout", 0, "Per-request timeout, 0 for none")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug details to stderr")
}

func addSubcommands(root *cobra.Command, a *app) {
	api := apiFunc(a.api)

	root.AddCommand(
		NewRecommendCmd(api),
		NewSearchCmd(api),
		NewInsightsCmd(api),
		NewShellCmd(api),
	)
}
