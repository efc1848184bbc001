// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/ui"
)

const barWidth = 30

var chartTitles = map[string]string{
	ui.CanvasGenre:   "Top genres",
	ui.CanvasType:    "Content types",
	ui.CanvasCountry: "Top countries",
}

func NewInsightsCmd(api apiFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Show catalog insights",
		Long:  `Print the genre, type and country distributions of the catalog.`,
		Args:  cobra.NoArgs,
		RunE:  makeInsightsRunner(api),
	}

	cmd.Flags().StringP("output", "o", "table", "Output format (table|json|yaml)")
	return cmd
}

func makeInsightsRunner(api apiFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		format, _ := cmd.Flags().GetString("output")
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			format = "json"
		}
		switch format {
		case "table", "json", "yaml":
		default:
			return fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
		}

		c, _, err := api(cmd)
		if err != nil {
			return err
		}

		ds, err := c.FetchVisualizations(cmd.Context())
		if err != nil {
			return requestFailed("insights", err)
		}

		out := cmd.OutOrStdout()
		switch format {
		case "json":
			return outputJSON(out, ds)
		case "yaml":
			return outputYAML(out, ds)
		default:
			printCharts(out, ui.InsightsHeading, ui.BuildCharts(ds))
			return nil
		}
	}
}

// printCharts renders charts as labelled text bars.
func printCharts(w io.Writer, heading string, charts []ui.Chart) {
	fmt.Fprintln(w, heading)
	for _, chart := range charts {
		fmt.Fprintf(w, "\n%s\n", chartTitles[chart.CanvasID])

		width, peak := 0, 0
		for i, label := range chart.Labels {
			width = max(width, len(label))
			peak = max(peak, chart.Values[i])
		}
		for i, label := range chart.Labels {
			n := chart.Values[i]
			bar := 0
			if peak > 0 {
				bar = n * barWidth / peak
			}
			fmt.Fprintf(w, "  %-*s %6d %s\n", width, label, n, strings.Repeat("#", bar))
		}
	}
}

// outputYAML writes the dataset with each distribution as an ordered mapping.
func outputYAML(w io.Writer, ds *models.VisualizationDataset) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, section := range []struct {
		key  string
		dist models.Distribution
	}{
		{"genre_distribution", ds.GenreDistribution},
		{"type_distribution", ds.TypeDistribution},
		{"top_countries", ds.TopCountries},
	} {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for _, b := range section.dist {
			m.Content = append(m.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: b.Label},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(b.Count)},
			)
		}
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: section.key}, m)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
