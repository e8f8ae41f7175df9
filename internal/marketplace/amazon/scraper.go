// Package amazon implements the scraped search adapter: it drives a headless
// browser against the Amazon search results page and reduces the first few
// product cards to the common result shape.
package amazon

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/marketlens/marketlens-backend/internal/domain/pricing"
	"github.com/marketlens/marketlens-backend/internal/marketplace"
)

const (
	// DefaultBaseURL is the Amazon storefront searched by default.
	DefaultBaseURL = "https://www.amazon.com"

	defaultMaxResults    = 5
	defaultTimeout       = 60 * time.Second
	defaultMaxConcurrent = 2
)

// ProductCard is the raw text/attribute tuple extracted from one rendered
// search result node.
type ProductCard struct {
	Title string `json:"title"`
	Price string `json:"price"`
	Link  string `json:"link"`
	Image string `json:"image"`
}

// Renderer loads a results page in a browser and returns at most limit
// product cards. Implementations own browser acquisition and release.
type Renderer interface {
	ProductCards(ctx context.Context, pageURL string, limit int) ([]ProductCard, error)
}

// Config controls the scrape adapter. Zero values fall back to defaults.
type Config struct {
	BaseURL       string
	MaxResults    int
	Timeout       time.Duration
	MaxConcurrent int
}

// Scraper is the scraped-marketplace search adapter. Launching a browser per
// request is expensive, so concurrent searches are bounded by a semaphore and
// each request carries an explicit deadline: a hung navigation surfaces as a
// ScrapeError instead of blocking forever.
type Scraper struct {
	cfg      Config
	renderer Renderer
	logger   *slog.Logger
	sem      chan struct{}
}

// NewScraper creates a scrape adapter. A nil renderer gets the chromedp
// implementation.
func NewScraper(cfg Config, renderer Renderer, logger *slog.Logger) *Scraper {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaultMaxResults
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = defaultMaxConcurrent
	}
	if logger == nil {
		logger = slog.Default()
	}
	if renderer == nil {
		renderer = NewBrowserRenderer(logger)
	}
	return &Scraper{
		cfg:      cfg,
		renderer: renderer,
		logger:   logger.With(slog.String("marketplace", "amazon")),
		sem:      make(chan struct{}, cfg.MaxConcurrent),
	}
}

// Search renders the search results page for query and aggregates the cards
// whose price text parses. Cards with unparseable prices are dropped before
// aggregation.
func (s *Scraper) Search(ctx context.Context, query string) (pricing.SearchResult, error) {
	if query == "" {
		return pricing.SearchResult{}, marketplace.ErrMissingQuery
	}

	select {
	case s.sem <- struct{}{}:
		defer func() { <-s.sem }()
	case <-ctx.Done():
		return pricing.SearchResult{}, &marketplace.ScrapeError{Cause: ctx.Err()}
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	searchURL := fmt.Sprintf("%s/s?k=%s", s.cfg.BaseURL, url.QueryEscape(query))
	cards, err := s.renderer.ProductCards(ctx, searchURL, s.cfg.MaxResults)
	if err != nil {
		return pricing.SearchResult{}, &marketplace.ScrapeError{Cause: err}
	}

	listings := make([]pricing.Listing, 0, len(cards))
	for _, card := range cards {
		price, ok := ParsePrice(card.Price)
		if !ok {
			s.logger.Debug("dropping card with unparseable price",
				slog.String("title", card.Title),
				slog.String("raw_price", card.Price),
			)
			continue
		}
		listings = append(listings, pricing.Listing{
			Title:     card.Title,
			Price:     price,
			Thumbnail: card.Image,
			Permalink: card.Link,
		})
	}

	result := pricing.Aggregate(listings)
	s.logger.Info("scrape complete",
		slog.String("query", query),
		slog.Int("cards", len(cards)),
		slog.Int("comparable", len(result.Products)),
		slog.String("average_price", result.AveragePrice),
	)
	return result, nil
}
