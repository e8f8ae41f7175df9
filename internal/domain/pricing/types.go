// Package pricing holds the listing normalization and price aggregation
// rules shared by every marketplace adapter.
//
// Adapters translate their source-specific payloads into these types; the
// inclusion rules and the average-price math live here so both entry points
// behave identically.
package pricing

import "encoding/json"

// RawListing is a product offer as returned by the MercadoLibre search API.
type RawListing struct {
	ID                   string          `json:"id"`
	Title                string          `json:"title"`
	Price                float64         `json:"price"`
	SalePrice            *SalePrice      `json:"sale_price,omitempty"`
	CurrencyID           string          `json:"currency_id"`
	AvailableQuantity    int             `json:"available_quantity"`
	Tags                 []string        `json:"tags"`
	Attributes           []Attribute     `json:"attributes"`
	Promotions           json.RawMessage `json:"promotions,omitempty"`
	PromotionDecorations json.RawMessage `json:"promotion_decorations,omitempty"`
	Thumbnail            string          `json:"thumbnail"`
	Permalink            string          `json:"permalink"`
}

// SalePrice is the discounted price block attached to promoted listings.
type SalePrice struct {
	Amount     float64 `json:"amount"`
	CurrencyID string  `json:"currency_id"`
}

// Attribute is a single name/value pair from a listing's attributes array.
type Attribute struct {
	Name      string `json:"name"`
	ValueName string `json:"value_name"`
}

// Listing is the normalized, source-independent shape returned to clients.
// ID and Currency are empty for scraped sources.
type Listing struct {
	ID        string  `json:"id,omitempty"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Currency  string  `json:"currency,omitempty"`
	Thumbnail string  `json:"thumbnail,omitempty"`
	Permalink string  `json:"permalink"`
}

// SearchResult is the uniform response shape produced by both adapters.
// Products keep the upstream response order; AveragePrice is a fixed
// two-decimal string, "0.00" when Products is empty.
type SearchResult struct {
	Products     []Listing `json:"products"`
	AveragePrice string    `json:"averagePrice"`
}
