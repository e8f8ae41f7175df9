package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/marketlens/marketlens-backend/internal/api/dto"
	"github.com/marketlens/marketlens-backend/internal/marketplace"
)

// Base provides shared functionality for all handlers.
type Base struct {
	logger *slog.Logger
}

// NewBase creates a new base handler with the given logger.
func NewBase(logger *slog.Logger) *Base {
	if logger == nil {
		logger = slog.Default()
	}
	return &Base{logger: logger}
}

// WriteJSON writes a JSON response with the given status code.
func (b *Base) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes an error response with the given status code.
func (b *Base) WriteError(w http.ResponseWriter, status int, err dto.APIError) {
	b.WriteJSON(w, status, err)
}

// WriteMarketplaceError maps an adapter error to the matching HTTP response.
func (b *Base) WriteMarketplaceError(w http.ResponseWriter, err error) {
	var upstreamErr *marketplace.UpstreamError
	var scrapeErr *marketplace.ScrapeError

	switch {
	case errors.Is(err, marketplace.ErrMissingQuery),
		errors.Is(err, marketplace.ErrMissingAuthorizationCode):
		b.WriteError(w, http.StatusBadRequest, dto.BadRequestError(err.Error()))
	case errors.Is(err, marketplace.ErrMissingCredential):
		b.WriteError(w, http.StatusUnauthorized, dto.UnauthorizedError(err.Error()))
	case errors.As(err, &upstreamErr):
		b.logger.Error("upstream request failed",
			slog.String("op", upstreamErr.Op),
			slog.Int("status", upstreamErr.Status),
			slog.String("error", upstreamErr.Error()),
		)
		b.WriteError(w, http.StatusBadGateway, dto.UpstreamFailedError(upstreamErr.Error()))
	case errors.As(err, &scrapeErr):
		b.logger.Error("scrape failed", slog.String("error", scrapeErr.Error()))
		b.WriteError(w, http.StatusBadGateway, dto.ScrapeFailedError(scrapeErr.Error()))
	default:
		b.logger.Error("request failed", slog.String("error", err.Error()))
		b.WriteError(w, http.StatusInternalServerError, dto.InternalError())
	}
}

// BearerToken extracts the bearer credential from the Authorization header.
// Both "Bearer <token>" and a bare token are accepted.
func BearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if len(auth) > 7 && (auth[:7] == "Bearer " || auth[:7] == "bearer ") {
		return auth[7:]
	}
	return auth
}
