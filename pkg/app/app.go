// Package app wires the search form and episode buttons of a page to the show catalog.
package app

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/kasuboski/showfinder/pkg/dom"
	"github.com/kasuboski/showfinder/pkg/logger"
	"github.com/kasuboski/showfinder/pkg/metrics"
	"github.com/kasuboski/showfinder/pkg/tvmaze"
	"github.com/kasuboski/showfinder/pkg/view"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// Element ids of the regions a page must provide
const (
	ShowsListID    = "shows-list"
	EpisodesAreaID = "episodes-area"
	EpisodesListID = "episodes-list"
)

// Pipeline names used in errors and metrics
const (
	PipelineSearch   = "search"
	PipelineEpisodes = "episodes"
)

// PipelineError is returned when a catalog call made on behalf of the page fails.
// The page is left as it was before the call.
type PipelineError struct {
	Pipeline string
	Err      error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Pipeline, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Surfaces are the regions the page renders into
type Surfaces struct {
	ShowsList    *dom.Region
	EpisodesArea *dom.Region
	EpisodesList *dom.Region
}

// SurfacesFrom looks up the standard regions in doc
func SurfacesFrom(doc *dom.Document) (Surfaces, error) {
	var s Surfaces
	var err error

	if s.ShowsList, err = doc.Region(ShowsListID); err != nil {
		return s, err
	}
	if s.EpisodesArea, err = doc.Region(EpisodesAreaID); err != nil {
		return s, err
	}
	if s.EpisodesList, err = doc.Region(EpisodesListID); err != nil {
		return s, err
	}

	return s, nil
}

// sequence hands out increasing tokens so a result can tell whether a newer request was issued
type sequence struct {
	latest atomic.Uint64
}

func (s *sequence) next() uint64 {
	return s.latest.Add(1)
}

func (s *sequence) isLatest(token uint64) bool {
	return s.latest.Load() == token
}

// Page reacts to search submissions and episode button activations
type Page struct {
	catalog    tvmaze.Catalog
	doc        *dom.Document
	surfaces   Surfaces
	latestWins bool

	searches sequence
	episodes sequence
}

type Option func(*Page)

// WithLatestWins drops results of requests that were superseded before they resolved.
// Without it, whichever request resolves last is rendered.
func WithLatestWins(enabled bool) Option {
	return func(p *Page) {
		p.latestWins = enabled
	}
}

// New creates a page rendering into surfaces of doc
func New(catalog tvmaze.Catalog, doc *dom.Document, surfaces Surfaces, opts ...Option) *Page {
	p := &Page{
		catalog:  catalog,
		doc:      doc,
		surfaces: surfaces,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// NormalizeQuery trims and NFC-normalizes a search query
func NormalizeQuery(query string) string {
	return norm.NFC.String(strings.TrimSpace(query))
}

// Search handles a search form submission. An empty query does nothing.
func (p *Page) Search(ctx context.Context, query string) error {
	query = NormalizeQuery(query)
	if query == "" {
		return nil
	}

	log := logger.FromCtx(ctx)
	token := p.searches.next()

	p.doc.Mutate(func() {
		p.surfaces.EpisodesArea.Hide()
	})

	shows, err := p.catalog.SearchShows(ctx, query)
	if err != nil {
		return &PipelineError{Pipeline: PipelineSearch, Err: err}
	}

	p.doc.Mutate(func() {
		if p.latestWins && !p.searches.isLatest(token) {
			log.Debugw("dropping superseded search results", zap.String("query", query))
			metrics.StaleResultsTotal.WithLabelValues(PipelineSearch).Inc()
			return
		}
		view.RenderShowList(p.surfaces.ShowsList, shows, p.episodesHandler)
	})

	log.Debugw("rendered search results", zap.String("query", query), zap.Int("count", len(shows)))
	return nil
}

// ShowEpisodes reveals the episode area and fills it with the episodes of showID
func (p *Page) ShowEpisodes(ctx context.Context, showID int) error {
	log := logger.FromCtx(ctx)
	token := p.episodes.next()

	p.doc.Mutate(func() {
		p.surfaces.EpisodesArea.Show()
	})

	episodes, err := p.catalog.FetchEpisodes(ctx, showID)
	if err != nil {
		return &PipelineError{Pipeline: PipelineEpisodes, Err: err}
	}

	p.doc.Mutate(func() {
		if p.latestWins && !p.episodes.isLatest(token) {
			log.Debugw("dropping superseded episode results", zap.Int("show_id", showID))
			metrics.StaleResultsTotal.WithLabelValues(PipelineEpisodes).Inc()
			return
		}
		view.RenderEpisodeList(p.surfaces.EpisodesList, episodes)
	})

	return nil
}

func (p *Page) episodesHandler(showID int) dom.Handler {
	return func(ctx context.Context) error {
		return p.ShowEpisodes(ctx, showID)
	}
}
