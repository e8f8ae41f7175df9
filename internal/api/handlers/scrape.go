package handlers

import (
	"log/slog"
	"net/http"

	"github.com/marketlens/marketlens-backend/internal/api/dto"
	"github.com/marketlens/marketlens-backend/internal/marketplace"
)

// ScrapeHandler handles scraped Amazon search requests.
type ScrapeHandler struct {
	*Base
	searcher marketplace.Searcher
}

// NewScrapeHandler creates a new scrape handler.
func NewScrapeHandler(searcher marketplace.Searcher, logger *slog.Logger) *ScrapeHandler {
	return &ScrapeHandler{
		Base:     NewBase(logger),
		searcher: searcher,
	}
}

// Search handles GET /api/search/amazon?query= - renders the Amazon results
// page and returns the comparable products plus average price.
func (h *ScrapeHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("search query 'query' is required"))
		return
	}

	result, err := h.searcher.Search(r.Context(), query)
	if err != nil {
		h.WriteMarketplaceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}
