// Package mercadolibre implements the authenticated REST adapter: OAuth2
// authorization-code exchange plus bearer-token search against the site
// search endpoint.
package mercadolibre

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/marketlens/marketlens-backend/internal/marketplace"
)

const (
	// DefaultBaseURL is the production MercadoLibre API host.
	DefaultBaseURL = "https://api.mercadolibre.com"
	// DefaultSite scopes searches to MercadoLibre Argentina.
	DefaultSite = "MLA"

	searchLimit  = 10
	maxErrorBody = 4 << 10
)

// Config holds the OAuth application credentials and endpoint settings.
// ClientID, ClientSecret and RedirectURI are opaque strings supplied by the
// config layer.
type Config struct {
	BaseURL      string
	Site         string
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

// Client talks to the MercadoLibre REST API. It is stateless and safe for
// concurrent use; credentials are passed explicitly per call, never stored.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a MercadoLibre client with sane defaults.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Site == "" {
		cfg.Site = DefaultSite
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger.With(slog.String("marketplace", "mercadolibre")),
	}
}

// getJSON issues a bearer-authenticated GET and decodes the JSON body into
// out. Non-2xx responses and transport failures surface as *UpstreamError.
func (c *Client) getJSON(ctx context.Context, op, url, accessToken string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &marketplace.UpstreamError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &marketplace.UpstreamError{Op: op, Status: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}
