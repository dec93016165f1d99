package tvmaze

//go:generate go run go.uber.org/mock/mockgen -package mocks -destination mocks/mock_catalog.go github.com/kasuboski/showfinder/pkg/tvmaze Catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	mhttp "github.com/kasuboski/showfinder/pkg/http"
	"github.com/kasuboski/showfinder/pkg/logger"
	"github.com/kasuboski/showfinder/pkg/metrics"
	"go.uber.org/zap"
)

const (
	DefaultURI = "https://api.tvmaze.com"

	endpointSearch   = "search"
	endpointEpisodes = "episodes"
)

// Catalog is the show-catalog service as seen by the front end
type Catalog interface {
	SearchShows(ctx context.Context, query string) ([]ShowSummary, error)
	FetchEpisodes(ctx context.Context, showID int) ([]EpisodeSummary, error)
}

// RequestEditorFn is called on every outgoing request before it is sent
type RequestEditorFn func(ctx context.Context, req *http.Request) error

type Client struct {
	server         *url.URL
	client         mhttp.HTTPClient
	requestEditors []RequestEditorFn
}

type ClientOption func(*Client) error

// WithHTTPClient sets the client used to reach the catalog
func WithHTTPClient(doer mhttp.HTTPClient) ClientOption {
	return func(c *Client) error {
		c.client = doer
		return nil
	}
}

// WithRequestEditorFn adds an editor applied to every request
func WithRequestEditorFn(fn RequestEditorFn) ClientOption {
	return func(c *Client) error {
		c.requestEditors = append(c.requestEditors, fn)
		return nil
	}
}

// AcceptJSON sets the Accept header
func AcceptJSON(ctx context.Context, req *http.Request) error {
	req.Header.Set("Accept", "application/json")
	return nil
}

// New creates a catalog client for the server at uri
func New(uri string, opts ...ClientOption) (*Client, error) {
	server, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog uri %q: %w", uri, err)
	}
	if server.Scheme == "" || server.Host == "" {
		return nil, fmt.Errorf("invalid catalog uri %q: scheme and host are required", uri)
	}

	c := &Client{
		server:         server,
		client:         http.DefaultClient,
		requestEditors: []RequestEditorFn{AcceptJSON},
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// SearchShows returns the shows matching query in the order the catalog ranks them
func (c *Client) SearchShows(ctx context.Context, query string) ([]ShowSummary, error) {
	var results []searchResult
	err := c.get(ctx, endpointSearch, "search/shows", url.Values{"q": []string{query}}, &results)
	if err != nil {
		return nil, err
	}

	shows := make([]ShowSummary, 0, len(results))
	for _, r := range results {
		shows = append(shows, r.Show.summary())
	}

	return shows, nil
}

// FetchEpisodes returns every episode of the show in catalog order
func (c *Client) FetchEpisodes(ctx context.Context, showID int) ([]EpisodeSummary, error) {
	var results []episode
	err := c.get(ctx, endpointEpisodes, "shows/"+strconv.Itoa(showID)+"/episodes", nil, &results)
	if err != nil {
		return nil, err
	}

	episodes := make([]EpisodeSummary, 0, len(results))
	for _, e := range results {
		episodes = append(episodes, e.summary())
	}

	return episodes, nil
}

func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values, out any) (err error) {
	log := logger.FromCtx(ctx)

	start := time.Now()
	defer func() {
		outcome := metrics.OutcomeSuccess
		if err != nil {
			outcome = metrics.OutcomeError
		}
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
		metrics.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	u := c.server.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return &NetworkError{Endpoint: endpoint, Err: err}
	}

	for _, edit := range c.requestEditors {
		if err := edit(ctx, req); err != nil {
			return &NetworkError{Endpoint: endpoint, Err: err}
		}
	}

	log.Debugw("requesting catalog", zap.String("endpoint", endpoint), zap.String("url", u.String()))

	resp, err := c.client.Do(req)
	if err != nil {
		return &NetworkError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &ServiceError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ServiceError{Endpoint: endpoint, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return nil
}
