package mercadolibre

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/marketlens/marketlens-backend/internal/marketplace"
)

const opTokenExchange = "token exchange"

// Exchange redeems a one-time authorization code for an access/refresh token
// pair via the authorization-code grant. An empty code fails before any
// network I/O; the credential fields come back verbatim from the identity
// provider, unvalidated.
func (c *Client) Exchange(ctx context.Context, code string) (marketplace.Credential, error) {
	if code == "" {
		return marketplace.Credential{}, marketplace.ErrMissingAuthorizationCode
	}

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("code", code)
	form.Set("redirect_uri", c.cfg.RedirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return marketplace.Credential{}, fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return marketplace.Credential{}, &marketplace.UpstreamError{Op: opTokenExchange, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return marketplace.Credential{}, &marketplace.UpstreamError{
			Op:     opTokenExchange,
			Status: resp.StatusCode,
			Body:   string(body),
		}
	}

	var cred marketplace.Credential
	if err := json.NewDecoder(resp.Body).Decode(&cred); err != nil {
		return marketplace.Credential{}, fmt.Errorf("decode token response: %w", err)
	}

	c.logger.Info("authorization code exchanged", slog.Int("expires_in", cred.ExpiresIn))
	return cred, nil
}
