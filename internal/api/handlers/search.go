package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/marketlens/marketlens-backend/internal/api/dto"
	"github.com/marketlens/marketlens-backend/internal/marketplace"
	"github.com/marketlens/marketlens-backend/internal/marketplace/mercadolibre"
)

// MercadoLibreClient is the slice of the REST adapter the handlers use.
type MercadoLibreClient interface {
	marketplace.AuthenticatedSearcher
	MyItems(ctx context.Context, accessToken string) (mercadolibre.UserItems, error)
}

// SearchHandler handles authenticated MercadoLibre search requests.
type SearchHandler struct {
	*Base
	client MercadoLibreClient
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(client MercadoLibreClient, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		Base:   NewBase(logger),
		client: client,
	}
}

// Search handles GET /api/search?q= - runs the bearer-authenticated site
// search and returns the comparable products plus average price.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("search query 'q' is required"))
		return
	}

	token := BearerToken(r)
	if token == "" {
		h.WriteError(w, http.StatusUnauthorized, dto.UnauthorizedError("bearer token is required"))
		return
	}

	result, err := h.client.Search(r.Context(), query, token)
	if err != nil {
		h.WriteMarketplaceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

// MyItems handles GET /api/my-items - lists the authenticated seller's
// published item IDs.
func (h *SearchHandler) MyItems(w http.ResponseWriter, r *http.Request) {
	token := BearerToken(r)
	if token == "" {
		h.WriteError(w, http.StatusUnauthorized, dto.UnauthorizedError("bearer token is required"))
		return
	}

	items, err := h.client.MyItems(r.Context(), token)
	if err != nil {
		h.WriteMarketplaceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.MyItemsResponse{
		SellerID: items.SellerID,
		ItemIDs:  items.Results,
		Total:    items.Paging.Total,
	})
}
