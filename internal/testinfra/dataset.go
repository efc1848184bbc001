// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package testinfra

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleCSV is a small titles dataset in the catalog's CSV layout. The
// detective dramas share vocabulary so they recommend each other; "Cosmos
// Kitchen" shares almost nothing with the rest. "Sherlock" appears twice and
// the second row must be dropped.
const SampleCSV = `show_id,type,title,director,cast,country,date_added,release_year,rating,duration,listed_in,description
s1,TV Show,Sherlock,Paul McGuigan,Benedict Cumberbatch,United Kingdom,"July 1, 2017",2010,TV-14,4 Seasons,"British TV Shows, Crime TV Shows",A brilliant detective solves baffling crimes in modern London with his loyal friend.
s2,TV Show,Luther,,Idris Elba,United Kingdom,"May 1, 2018",2010,TV-MA,5 Seasons,"British TV Shows, Crime TV Shows",A brilliant but obsessive detective solves crimes in London while battling his demons.
s3,Movie,Enola Holmes,Harry Bradbeer,Millie Bobby Brown,United Kingdom,"September 23, 2020",2020,PG-13,124 min,"Dramas, Mysteries",The teenage sister of a famous detective solves crimes in London to find her missing mother.
s4,Movie,Cosmos Kitchen,Ana Ruiz,Marta Gil,Spain,"March 3, 2021",2021,TV-G,95 min,Documentaries,Chefs cook recipes inspired by planets.
s5,Movie,Knives Out & Secrets,Rian Johnson,Daniel Craig,United States,"April 1, 2021",2019,PG-13,131 min,"Comedies, Mysteries",A detective investigates the death of a crime novelist at his family estate.
s6,TV Show,Sherlock,Someone Else,Nobody,Canada,"July 1, 2019",2019,TV-14,1 Season,Kids' TV,A duplicate row with a different description.
s7,TV Show,Dark,Baran bo Odar,Louis Hofmann,Germany,"December 1, 2017",2017,TV-MA,3 Seasons,"Crime TV Shows, International TV Shows, TV Mysteries",A missing child sets four families on a search through time in a small town.
`

// WriteDataset writes content to a file in a fresh temp dir and returns its path.
func WriteDataset(t testing.TB, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "titles.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}
