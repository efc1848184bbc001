// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/cinematch/internal/client"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/ui"
)

func NewRecommendCmd(api apiFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend <title>",
		Short: "Recommend titles similar to a title",
		Long:  `Print the titles most similar to the given title, best match first.`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  makeRecommendRunner(api),
	}

	cmd.Flags().IntP("limit", "n", 0, "Maximum results (server default when 0)")
	cmd.Flags().Int("offset", 0, "Skip this many results")
	cmd.Flags().StringP("type", "t", "", "Only recommend titles of this type (Movie, TV Show)")
	cmd.Flags().StringSliceP("fields", "f", nil, "Extra fields to include (director, cast, country, ...)")
	return cmd
}

func makeRecommendRunner(api apiFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")
		kind, _ := cmd.Flags().GetString("type")
		fields, _ := cmd.Flags().GetStringSlice("fields")
		asJSON, _ := cmd.Flags().GetBool("json")

		c, _, err := api(cmd)
		if err != nil {
			return err
		}

		res, err := c.Recommend(cmd.Context(), client.RecommendQuery{
			Title:  strings.Join(args, " "),
			Limit:  limit,
			Offset: offset,
			Type:   kind,
			Fields: fields,
		})
		if err != nil {
			return requestFailed("recommend", err)
		}

		if asJSON {
			return outputJSON(cmd.OutOrStdout(), res)
		}
		if len(res.Recommendations) == 0 {
			return errors.New(res.Message)
		}
		printRecommendations(cmd.OutOrStdout(), res, offset)
		return nil
	}
}

func printRecommendations(w io.Writer, res *models.RecommendationResult, offset int) {
	fmt.Fprintln(w, res.Message)
	for i, rec := range res.Recommendations {
		line := fmt.Sprintf("%3d. %s", offset+i+1, rec.Title)
		if rec.Similarity != 0 {
			line += fmt.Sprintf("  (%s)", ui.FormatSimilarity(rec.Similarity))
		}
		fmt.Fprintln(w, line)
		for _, detail := range recommendationDetails(&rec) {
			fmt.Fprintf(w, "       %s\n", detail)
		}
	}
	if res.Total > offset+len(res.Recommendations) {
		fmt.Fprintf(w, "showing %d of %d\n", len(res.Recommendations), res.Total)
	}
}

func recommendationDetails(rec *models.Recommendation) []string {
	var out []string
	add := func(name, value string) {
		if value != "" {
			out = append(out, name+": "+value)
		}
	}
	add("type", rec.Type)
	add("director", rec.Director)
	add("cast", rec.Cast)
	add("country", rec.Country)
	add("date added", rec.DateAdded)
	if rec.ReleaseYear != 0 {
		add("released", fmt.Sprint(rec.ReleaseYear))
	}
	add("rating", rec.Rating)
	add("duration", rec.Duration)
	add("genres", rec.ListedIn)
	add("description", rec.Description)
	return out
}

func outputJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
