// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func NewSearchCmd(api apiFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search catalog titles",
		Long:  `List catalog titles containing the query, case-insensitively.`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  makeSearchRunner(api),
	}
}

func makeSearchRunner(api apiFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		c, _, err := api(cmd)
		if err != nil {
			return err
		}

		titles, err := c.FetchAutocomplete(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return requestFailed("search", err)
		}

		if asJSON {
			return outputJSON(cmd.OutOrStdout(), titles)
		}
		for _, title := range titles {
			fmt.Fprintln(cmd.OutOrStdout(), title)
		}
		return nil
	}
}
