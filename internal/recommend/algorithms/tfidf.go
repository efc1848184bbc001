// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package algorithms

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"
)

var (
	// ErrEmptyVocabulary is returned by Fit when no term survives pruning.
	ErrEmptyVocabulary = errors.New("empty vocabulary: documents contain only stop words or rare terms")
	// ErrNotTrained is returned when querying a model that was never fitted.
	ErrNotTrained = errors.New("model not trained")
	// ErrUnknownDocument is returned for a document index outside the corpus.
	ErrUnknownDocument = errors.New("unknown document")
)

// ModelFormatVersion identifies the layout of ModelData.
const ModelFormatVersion = 1

// TFIDFConfig contains configuration for the TF-IDF vectorizer.
type TFIDFConfig struct {
	// MinDF drops terms that appear in fewer documents.
	MinDF int
	// MaxNgram is the longest word n-gram extracted (1 = unigrams only).
	MaxNgram int
}

// posting is one non-zero entry of a term's column.
type posting struct {
	doc    int32
	weight float64
}

// TFIDF vectorizes a corpus with English stop words removed, word n-grams,
// smoothed inverse document frequency and L2-normalized rows. Similarity
// between two documents is the dot product of their rows (cosine).
//
// The idf of a term is:
//
//	idf(t) = ln((1 + n) / (1 + df(t))) + 1
//
// where n is the number of documents.
type TFIDF struct {
	BaseAlgorithm

	minDF    int
	maxNgram int

	// Trained model
	terms    []string
	vocab    map[string]int
	idf      []float64
	rows     []SparseRow
	postings [][]posting
}

// SparseRow is one normalized document vector, sorted by term index.
type SparseRow struct {
	Terms   []int32   `json:"t"`
	Weights []float64 `json:"w"`
}

// ModelData is the serializable form of a fitted model.
type ModelData struct {
	Format   int         `json:"format"`
	MinDF    int         `json:"min_df"`
	MaxNgram int         `json:"max_ngram"`
	Terms    []string    `json:"terms"`
	IDF      []float64   `json:"idf"`
	Rows     []SparseRow `json:"rows"`
}

// NewTFIDF creates an untrained vectorizer.
func NewTFIDF(cfg TFIDFConfig) *TFIDF {
	if cfg.MinDF <= 0 {
		cfg.MinDF = 2
	}
	if cfg.MaxNgram <= 0 {
		cfg.MaxNgram = 2
	}
	return &TFIDF{
		BaseAlgorithm: NewBaseAlgorithm("tfidf"),
		minDF:         cfg.MinDF,
		maxNgram:      cfg.MaxNgram,
	}
}

// Config returns the vectorizer settings.
func (m *TFIDF) Config() TFIDFConfig {
	return TFIDFConfig{MinDF: m.minDF, MaxNgram: m.maxNgram}
}

// Fit learns the vocabulary and idf from docs and stores their vectors.
// Document i of the corpus is addressed as i in Similar.
func (m *TFIDF) Fit(ctx context.Context, docs []string) error {
	counts := make([]map[string]int, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		if i%256 == 0 && ContextCancelled(ctx) {
			return ctx.Err()
		}
		tc := make(map[string]int)
		for _, term := range m.Analyze(doc) {
			tc[term]++
		}
		for term := range tc {
			df[term]++
		}
		counts[i] = tc
	}

	terms := make([]string, 0, len(df))
	for term, n := range df {
		if n >= m.minDF {
			terms = append(terms, term)
		}
	}
	if len(terms) == 0 {
		return ErrEmptyVocabulary
	}
	sort.Strings(terms)

	vocab := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	n := float64(len(docs))
	for i, term := range terms {
		vocab[term] = i
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	rows := make([]SparseRow, len(docs))
	for i, tc := range counts {
		if i%256 == 0 && ContextCancelled(ctx) {
			return ctx.Err()
		}
		rows[i] = buildRow(tc, vocab, idf)
	}

	m.acquireTrainLock()
	defer m.releaseTrainLock()

	m.terms = terms
	m.vocab = vocab
	m.idf = idf
	m.rows = rows
	m.postings = buildPostings(rows, len(terms))
	m.markTrained()
	return nil
}

func buildRow(tc map[string]int, vocab map[string]int, idf []float64) SparseRow {
	type entry struct {
		idx   int32
		count int
	}
	entries := make([]entry, 0, len(tc))
	for term, count := range tc {
		if idx, ok := vocab[term]; ok {
			entries = append(entries, entry{idx: int32(idx), count: count}) //nolint:gosec // vocabulary size fits in int32
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].idx < entries[j].idx })

	row := SparseRow{
		Terms:   make([]int32, len(entries)),
		Weights: make([]float64, len(entries)),
	}
	var norm float64
	for i, e := range entries {
		w := float64(e.count) * idf[e.idx]
		row.Terms[i] = e.idx
		row.Weights[i] = w
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range row.Weights {
			row.Weights[i] /= norm
		}
	}
	return row
}

func buildPostings(rows []SparseRow, vocabSize int) [][]posting {
	postings := make([][]posting, vocabSize)
	for doc, row := range rows {
		for i, idx := range row.Terms {
			postings[idx] = append(postings[idx], posting{doc: int32(doc), weight: row.Weights[i]}) //nolint:gosec // corpus size fits in int32
		}
	}
	return postings
}

// Similar returns every other document with a positive similarity to doc,
// highest first. Ties keep corpus order.
func (m *TFIDF) Similar(ctx context.Context, doc int) ([]Score, error) {
	m.acquirePredictLock()
	defer m.releasePredictLock()

	if !m.trained {
		return nil, ErrNotTrained
	}
	if doc < 0 || doc >= len(m.rows) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDocument, doc)
	}

	acc := make([]float64, len(m.rows))
	row := m.rows[doc]
	for i, idx := range row.Terms {
		if ContextCancelled(ctx) {
			return nil, ctx.Err()
		}
		w := row.Weights[i]
		for _, p := range m.postings[idx] {
			acc[p.doc] += w * p.weight
		}
	}

	scores := make([]Score, 0, 64)
	for d, v := range acc {
		if d == doc || v <= 0 {
			continue
		}
		scores = append(scores, Score{Doc: d, Value: math.Min(v, 1)})
	}
	rankScores(scores)
	return scores, nil
}

// Documents returns the number of fitted documents.
func (m *TFIDF) Documents() int {
	m.acquirePredictLock()
	defer m.releasePredictLock()
	return len(m.rows)
}

// VocabularySize returns the number of terms kept after pruning.
func (m *TFIDF) VocabularySize() int {
	m.acquirePredictLock()
	defer m.releasePredictLock()
	return len(m.terms)
}

// Analyze lowercases text, extracts word tokens of two or more characters,
// drops stop words and returns the 1..MaxNgram word n-grams, unigrams first.
func (m *TFIDF) Analyze(text string) []string {
	tokens := tokenize(text)
	if m.maxNgram <= 1 || len(tokens) < 2 {
		return tokens
	}

	grams := make([]string, 0, len(tokens)*m.maxNgram)
	grams = append(grams, tokens...)
	for n := 2; n <= m.maxNgram; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			grams = append(grams, strings.Join(tokens[i:i+n], " "))
		}
	}
	return grams
}

func tokenize(text string) []string {
	var tokens []string
	for _, word := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	}) {
		if len([]rune(word)) < 2 || IsStopWord(word) {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// Export returns a copy of the fitted model.
func (m *TFIDF) Export() (*ModelData, error) {
	m.acquirePredictLock()
	defer m.releasePredictLock()

	if !m.trained {
		return nil, ErrNotTrained
	}
	return &ModelData{
		Format:   ModelFormatVersion,
		MinDF:    m.minDF,
		MaxNgram: m.maxNgram,
		Terms:    append([]string(nil), m.terms...),
		IDF:      append([]float64(nil), m.idf...),
		Rows:     append([]SparseRow(nil), m.rows...),
	}, nil
}

// Import replaces the model with data exported from a vectorizer with the
// same settings.
func (m *TFIDF) Import(data *ModelData) error {
	if data == nil || data.Format != ModelFormatVersion {
		return fmt.Errorf("unsupported model format")
	}
	if data.MinDF != m.minDF || data.MaxNgram != m.maxNgram {
		return fmt.Errorf("model settings min_df=%d max_ngram=%d do not match min_df=%d max_ngram=%d",
			data.MinDF, data.MaxNgram, m.minDF, m.maxNgram)
	}
	if len(data.Terms) == 0 || len(data.Terms) != len(data.IDF) {
		return fmt.Errorf("model vocabulary is inconsistent")
	}
	for _, row := range data.Rows {
		if len(row.Terms) != len(row.Weights) {
			return fmt.Errorf("model row is inconsistent")
		}
		for _, idx := range row.Terms {
			if idx < 0 || int(idx) >= len(data.Terms) {
				return fmt.Errorf("model row references term %d of %d", idx, len(data.Terms))
			}
		}
	}

	vocab := make(map[string]int, len(data.Terms))
	for i, term := range data.Terms {
		vocab[term] = i
	}

	m.acquireTrainLock()
	defer m.releaseTrainLock()

	m.terms = data.Terms
	m.vocab = vocab
	m.idf = data.IDF
	m.rows = data.Rows
	m.postings = buildPostings(data.Rows, len(data.Terms))
	m.markTrained()
	return nil
}
