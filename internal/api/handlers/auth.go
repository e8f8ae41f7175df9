package handlers

import (
	"log/slog"
	"net/http"

	"github.com/marketlens/marketlens-backend/internal/api/dto"
	"github.com/marketlens/marketlens-backend/internal/marketplace"
)

// AuthHandler handles the OAuth2 authorization-code redemption.
type AuthHandler struct {
	*Base
	exchanger marketplace.TokenExchanger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(exchanger marketplace.TokenExchanger, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		Base:      NewBase(logger),
		exchanger: exchanger,
	}
}

// Callback handles GET /auth/mercadolibre/callback - the identity provider's
// redirect target. The one-time code from the query string is exchanged for
// a credential returned to the caller; nothing is stored server-side.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("authorization code is required"))
		return
	}

	cred, err := h.exchanger.Exchange(r.Context(), code)
	if err != nil {
		h.WriteMarketplaceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.TokenResponse{
		AccessToken:  cred.AccessToken,
		RefreshToken: cred.RefreshToken,
		ExpiresIn:    cred.ExpiresIn,
	})
}
