// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package client is the front ends' HTTP client for the Cinematch API.
//
// It issues exactly three kinds of GET request, each a single attempt with no
// retry:
//
//	rec, err := c.FetchRecommendations(ctx, "Sherlock")   // GET /recommend?title=Sherlock
//	titles, err := c.FetchAutocomplete(ctx, "sher")       // GET /search?q=sher
//	ds, err := c.FetchVisualizations(ctx)                  // GET /visualizations
//
// Failures (transport errors, 5xx statuses, malformed bodies) are returned
// wrapped; errors.Is and errors.As reach the cause (context.Canceled,
// *StatusError, ErrDecode). A 4xx whose body has the expected shape is a
// normal result: the recommend endpoint answers unknown titles with 404 and
// an empty list, which the UI renders as "no recommendations".
//
// Every call honours its context. A configured timeout bounds each call in
// addition to the caller's context; zero means no timeout. When enabled, a
// circuit breaker fails calls fast while the API keeps failing.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/models"
)

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 8 << 20

// Endpoint names used in errors, logs and metrics.
const (
	EndpointRecommend      = "recommend"
	EndpointSearch         = "search"
	EndpointVisualizations = "visualizations"
)

// ErrDecode reports a response body that does not have the expected shape.
var ErrDecode = errors.New("malformed response")

// StatusError reports an HTTP status the client could not treat as a result.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// Client talks to the Cinematch API.
type Client struct {
	baseURL *url.URL
	paths   map[string]string
	http    *http.Client
	timeout time.Duration
	breaker *breaker
	logger  zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used for breaker transitions and request failures.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Client from the client configuration section.
func New(cfg config.ClientConfig, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", cfg.BaseURL)
	}

	c := &Client{
		baseURL: base,
		paths: map[string]string{
			EndpointRecommend:      cfg.RecommendPath,
			EndpointSearch:         cfg.SearchPath,
			EndpointVisualizations: cfg.VisualizationsPath,
		},
		http:    &http.Client{},
		timeout: cfg.Timeout,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if cfg.Breaker.Enabled {
		c.breaker = newBreaker("cinematch-api", cfg.Breaker, c.logger)
	}
	return c, nil
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// RecommendQuery holds the optional recommend parameters. Zero values are
// not sent, so the server defaults apply.
type RecommendQuery struct {
	Title  string
	Limit  int
	Offset int
	Type   string
	Fields []string
}

func (q RecommendQuery) values() url.Values {
	v := url.Values{"title": {q.Title}}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}
	if q.Type != "" {
		v.Set("type", q.Type)
	}
	if len(q.Fields) > 0 {
		v.Set("fields", strings.Join(q.Fields, ","))
	}
	return v
}

// FetchRecommendations asks for titles similar to title.
func (c *Client) FetchRecommendations(ctx context.Context, title string) (*models.RecommendationResult, error) {
	return c.Recommend(ctx, RecommendQuery{Title: title})
}

// Recommend asks for recommendations with paging, a type filter and field
// selection.
func (c *Client) Recommend(ctx context.Context, q RecommendQuery) (*models.RecommendationResult, error) {
	status, body, err := c.get(ctx, EndpointRecommend, q.values())
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) || !gjson.ParseBytes(body).IsObject() {
		return nil, decodeFailure(EndpointRecommend, status, body, errors.New("expected a JSON object"))
	}
	var result models.RecommendationResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, decodeFailure(EndpointRecommend, status, body, err)
	}
	return &result, nil
}

// FetchAutocomplete asks for titles matching the partial query.
func (c *Client) FetchAutocomplete(ctx context.Context, query string) ([]string, error) {
	status, body, err := c.get(ctx, EndpointSearch, url.Values{"q": {query}})
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) || !gjson.ParseBytes(body).IsArray() {
		return nil, decodeFailure(EndpointSearch, status, body, errors.New("expected a JSON array"))
	}
	titles := []string{}
	if err := json.Unmarshal(body, &titles); err != nil {
		return nil, decodeFailure(EndpointSearch, status, body, err)
	}
	return titles, nil
}

// FetchVisualizations fetches the aggregate chart dataset.
func (c *Client) FetchVisualizations(ctx context.Context) (*models.VisualizationDataset, error) {
	status, body, err := c.get(ctx, EndpointVisualizations, nil)
	if err != nil {
		return nil, err
	}

	for _, field := range []string{"genre_distribution", "type_distribution", "top_countries"} {
		if !gjson.GetBytes(body, field).IsObject() {
			return nil, decodeFailure(EndpointVisualizations, status, body, fmt.Errorf("missing %s object", field))
		}
	}
	var ds models.VisualizationDataset
	if err := json.Unmarshal(body, &ds); err != nil {
		return nil, decodeFailure(EndpointVisualizations, status, body, err)
	}
	return &ds, nil
}

// get performs one GET and returns the status and body. Transport errors and
// 5xx statuses are errors; other statuses are left to the caller.
func (c *Client) get(ctx context.Context, endpoint string, query url.Values) (int, []byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	reqURL := c.endpointURL(endpoint, query)
	start := time.Now()

	do := func() (*response, error) {
		return c.do(ctx, endpoint, reqURL)
	}
	var (
		resp *response
		err  error
	)
	if c.breaker != nil {
		resp, err = c.breaker.execute(do)
	} else {
		resp, err = do()
	}

	metrics.RecordClientRequest(endpoint, time.Since(start), err)
	if err != nil {
		if ctx.Err() == nil {
			c.logger.Debug().Err(err).Str("endpoint", endpoint).Msg("API request failed")
		}
		return 0, nil, fmt.Errorf("%s request failed: %w", endpoint, err)
	}
	return resp.status, resp.body, nil
}

type response struct {
	status int
	body   []byte
}

func (c *Client) do(ctx context.Context, endpoint, reqURL string) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: snippet(body)}
	}
	return &response{status: resp.StatusCode, body: body}, nil
}

func (c *Client) endpointURL(endpoint string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + c.paths[endpoint]
	u.RawQuery = ""
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// decodeFailure turns an undecodable body into an error. Non-2xx statuses
// are reported as a StatusError; 2xx bodies as ErrDecode.
func decodeFailure(endpoint string, status int, body []byte, cause error) error {
	if status < 200 || status > 299 {
		return &StatusError{Endpoint: endpoint, StatusCode: status, Body: snippet(body)}
	}
	return fmt.Errorf("%s: %w: %v", endpoint, ErrDecode, cause)
}

func snippet(body []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		s = s[:limit] + "..."
	}
	return s
}
