// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/cache"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/recommend/algorithms"
)

// Recommendation outcomes recorded in metrics.
const (
	outcomeOK       = "ok"
	outcomeEmpty    = "empty"
	outcomeNotFound = "not_found"
	outcomeInvalid  = "invalid"
	outcomeNotReady = "not_ready"
	outcomeError    = "error"
)

// Engine answers "titles similar to X" queries over the current catalog.
// It is safe for concurrent use: Rebuild swaps in a complete snapshot while
// queries keep using the one they started with.
type Engine struct {
	config *Config
	logger zerolog.Logger

	// models is optional; nil disables the persistent model cache.
	models  *ModelStore
	results *cache.LRU[*models.RecommendationResult]

	current atomic.Pointer[snapshot]
	buildMu sync.Mutex
}

// snapshot is one immutable catalog and the model fitted on it.
type snapshot struct {
	titles   []models.Title
	index    map[string]int
	model    *algorithms.TFIDF
	checksum string
	version  int
}

// NewEngine creates an engine. store may be nil.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, store *ModelStore, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
		models: store,
	}
	if cfg.ResultCacheTTL > 0 {
		e.results = cache.NewLRU[*models.RecommendationResult](cfg.ResultCacheMax, cfg.ResultCacheTTL)
	}
	return e, nil
}

// Ready reports whether a model has been built.
func (e *Engine) Ready() bool {
	return e.current.Load() != nil
}

// Status describes the current model.
func (e *Engine) Status() Status {
	snap := e.current.Load()
	if snap == nil {
		return Status{}
	}
	return Status{
		Ready:      true,
		Titles:     len(snap.titles),
		Vocabulary: snap.model.VocabularySize(),
		Checksum:   snap.checksum,
		Version:    snap.version,
	}
}

// Rebuild fits a model on titles, or loads the one cached for checksum,
// and makes it current. On error the previous model stays in place.
func (e *Engine) Rebuild(ctx context.Context, titles []models.Title, checksum string) error {
	e.buildMu.Lock()
	defer e.buildMu.Unlock()

	model, err := e.loadOrFit(ctx, titles, checksum)
	if err != nil {
		return err
	}

	index := make(map[string]int, len(titles))
	for i := range titles {
		key := NormalizeTitle(titles[i].Title)
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	version := 1
	if prev := e.current.Load(); prev != nil {
		version = prev.version + 1
	}
	e.current.Store(&snapshot{
		titles:   titles,
		index:    index,
		model:    model,
		checksum: checksum,
		version:  version,
	})
	if e.results != nil {
		e.results.Purge()
	}

	e.logger.Info().
		Int("titles", len(titles)).
		Int("vocabulary", model.VocabularySize()).
		Int("version", version).
		Msg("Recommendation model ready")
	return nil
}

func (e *Engine) loadOrFit(ctx context.Context, titles []models.Title, checksum string) (*algorithms.TFIDF, error) {
	vcfg := e.config.vectorizer()
	model := algorithms.NewTFIDF(vcfg)

	if e.models != nil && checksum != "" {
		data, found, err := e.models.Get(checksum, vcfg)
		switch {
		case err != nil:
			metrics.ModelCacheLookups.WithLabelValues("error").Inc()
			e.logger.Warn().Err(err).Msg("Model cache read failed, refitting")
		case found && len(data.Rows) == len(titles):
			err := model.Import(data)
			if err == nil {
				metrics.ModelCacheLookups.WithLabelValues("hit").Inc()
				e.logger.Debug().Str("checksum", checksum).Msg("Loaded cached model")
				return model, nil
			}
			metrics.ModelCacheLookups.WithLabelValues("error").Inc()
			e.logger.Warn().Err(err).Msg("Cached model unusable, refitting")
		default:
			metrics.ModelCacheLookups.WithLabelValues("miss").Inc()
		}
	}

	docs := make([]string, len(titles))
	for i := range titles {
		docs[i] = Features(&titles[i])
	}

	start := time.Now()
	if err := model.Fit(ctx, docs); err != nil {
		return nil, fmt.Errorf("fit model: %w", err)
	}
	metrics.RecordModelBuild(time.Since(start), model.VocabularySize())

	if e.models != nil && checksum != "" {
		data, err := model.Export()
		if err == nil {
			err = e.models.Put(checksum, vcfg, data)
		}
		if err != nil {
			e.logger.Warn().Err(err).Msg("Failed to cache model")
		}
	}
	return model, nil
}

// Recommend returns a page of the titles most similar to q.Title.
//
// Titles are ranked by cosine similarity, highest first, ties in catalog
// order; the title itself and titles with no similarity are left out. When
// q.Type is set only titles of that type are kept. Total counts the ranked
// titles up to Offset+Limit.
//
// The returned result may be shared with other callers and must not be
// modified.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, q Query) (*models.RecommendationResult, error) {
	start := time.Now()

	key := NormalizeTitle(q.Title)
	if strings.TrimSpace(key) == "" {
		metrics.RecordRecommendation(outcomeInvalid, 0)
		return nil, ErrTitleRequired
	}

	snap := e.current.Load()
	if snap == nil {
		metrics.RecordRecommendation(outcomeNotReady, 0)
		return nil, ErrNotReady
	}

	q = e.prepareQuery(q)
	cacheKey := snap.checksum + "\x00" + q.cacheKey(key)
	if e.results != nil {
		res, hit := e.results.Get(cacheKey)
		metrics.ResultCacheLookups.WithLabelValues(metrics.CacheResult(hit)).Inc()
		if hit {
			metrics.RecordRecommendation(outcomeOK, time.Since(start))
			return res, nil
		}
	}

	doc, ok := snap.index[key]
	if !ok {
		metrics.RecordRecommendation(outcomeNotFound, time.Since(start))
		return nil, fmt.Errorf("%w: %q", ErrTitleNotFound, q.Title)
	}

	scores, err := snap.model.Similar(ctx, doc)
	if err != nil {
		metrics.RecordRecommendation(outcomeError, time.Since(start))
		return nil, fmt.Errorf("rank titles: %w", err)
	}

	ranked := snap.rank(scores, q, q.Limit+q.Offset)
	if len(ranked) == 0 {
		metrics.RecordRecommendation(outcomeEmpty, time.Since(start))
		return nil, fmt.Errorf("%w: no similar titles for %q", ErrTitleNotFound, q.Title)
	}

	page := ranked[min(q.Offset, len(ranked)):]
	res := &models.RecommendationResult{
		Message:         MessageSimilar,
		Recommendations: page,
		Total:           len(ranked),
	}
	if e.results != nil {
		e.results.Add(cacheKey, res)
	}

	metrics.RecordRecommendation(outcomeOK, time.Since(start))
	e.logger.Debug().
		Str("title", key).
		Int("total", res.Total).
		Int("returned", len(page)).
		Msg("recommendation complete")
	return res, nil
}

// prepareQuery applies the default page size and clamps the paging values.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func (e *Engine) prepareQuery(q Query) Query {
	if q.Limit <= 0 {
		q.Limit = e.config.DefaultLimit
	}
	if q.Limit > e.config.MaxLimit {
		q.Limit = e.config.MaxLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	q.Type = strings.TrimSpace(q.Type)
	return q
}

// rank turns scores into at most n recommendations of the requested type.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func (s *snapshot) rank(scores []algorithms.Score, q Query, n int) []models.Recommendation {
	recs := make([]models.Recommendation, 0, min(n, len(scores)))
	for _, sc := range scores {
		if len(recs) >= n {
			break
		}
		t := &s.titles[sc.Doc]
		if q.Type != "" && !strings.EqualFold(t.Type, q.Type) {
			continue
		}
		recs = append(recs, models.NewRecommendation(t, sc.Value, q.Fields))
	}
	return recs
}
