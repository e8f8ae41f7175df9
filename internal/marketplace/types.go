// Package marketplace defines the contracts shared by all marketplace
// adapters: the search interfaces, the OAuth credential shape and the error
// taxonomy surfaced to handlers.
package marketplace

import (
	"context"

	"github.com/marketlens/marketlens-backend/internal/domain/pricing"
)

// Searcher fetches comparable listings for a free-text query.
type Searcher interface {
	Search(ctx context.Context, query string) (pricing.SearchResult, error)
}

// AuthenticatedSearcher fetches comparable listings on behalf of a bearer
// credential supplied by the caller.
type AuthenticatedSearcher interface {
	Search(ctx context.Context, query, accessToken string) (pricing.SearchResult, error)
}

// TokenExchanger redeems a one-time authorization code for a credential.
type TokenExchanger interface {
	Exchange(ctx context.Context, code string) (Credential, error)
}

// Credential is the OAuth2 token pair returned by the identity provider.
// The fields are passed through verbatim; lifetime tracking is the caller's
// responsibility.
type Credential struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int    `json:"expires_in"`
}
