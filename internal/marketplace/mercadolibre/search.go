package mercadolibre

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/marketlens/marketlens-backend/internal/domain/pricing"
	"github.com/marketlens/marketlens-backend/internal/marketplace"
)

const opSearch = "search"

// Search queries the site search endpoint with the caller's bearer token and
// reduces the raw results to the comparable set plus average price.
//
// An empty or fully rejected result set is a normal outcome: the caller gets
// an empty product list with a "0.00" average, not an error. A listing that
// fails to decode is skipped so one bad record never fails the batch.
func (c *Client) Search(ctx context.Context, query, accessToken string) (pricing.SearchResult, error) {
	if query == "" {
		return pricing.SearchResult{}, marketplace.ErrMissingQuery
	}
	if accessToken == "" {
		return pricing.SearchResult{}, marketplace.ErrMissingCredential
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("status", "active")
	params.Set("limit", strconv.Itoa(searchLimit))
	searchURL := fmt.Sprintf("%s/sites/%s/search?%s", c.cfg.BaseURL, c.cfg.Site, params.Encode())

	var payload struct {
		Results []json.RawMessage `json:"results"`
	}
	if err := c.getJSON(ctx, opSearch, searchURL, accessToken, &payload); err != nil {
		return pricing.SearchResult{}, err
	}

	accepted := make([]pricing.Listing, 0, len(payload.Results))
	for i, raw := range payload.Results {
		var listing pricing.RawListing
		if err := json.Unmarshal(raw, &listing); err != nil {
			c.logger.Warn("skipping malformed listing",
				slog.Int("index", i),
				slog.String("error", err.Error()),
			)
			continue
		}
		if !pricing.Accepts(listing) {
			continue
		}
		accepted = append(accepted, pricing.Normalize(listing))
	}

	result := pricing.Aggregate(accepted)
	c.logger.Info("search complete",
		slog.String("query", query),
		slog.Int("raw_results", len(payload.Results)),
		slog.Int("comparable", len(result.Products)),
		slog.String("average_price", result.AveragePrice),
	)
	return result, nil
}
