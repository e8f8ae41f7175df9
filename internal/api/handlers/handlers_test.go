package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketlens/marketlens-backend/internal/api/dto"
	"github.com/marketlens/marketlens-backend/internal/api/handlers"
	"github.com/marketlens/marketlens-backend/internal/domain/pricing"
	"github.com/marketlens/marketlens-backend/internal/marketplace"
	"github.com/marketlens/marketlens-backend/internal/marketplace/mercadolibre"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeMercadoLibre implements handlers.MercadoLibreClient.
type fakeMercadoLibre struct {
	result pricing.SearchResult
	items  mercadolibre.UserItems
	err    error

	gotQuery string
	gotToken string
}

func (f *fakeMercadoLibre) Search(ctx context.Context, query, accessToken string) (pricing.SearchResult, error) {
	f.gotQuery = query
	f.gotToken = accessToken
	return f.result, f.err
}

func (f *fakeMercadoLibre) MyItems(ctx context.Context, accessToken string) (mercadolibre.UserItems, error) {
	f.gotToken = accessToken
	return f.items, f.err
}

// fakeExchanger implements marketplace.TokenExchanger.
type fakeExchanger struct {
	cred    marketplace.Credential
	err     error
	gotCode string
}

func (f *fakeExchanger) Exchange(ctx context.Context, code string) (marketplace.Credential, error) {
	f.gotCode = code
	return f.cred, f.err
}

// fakeSearcher implements marketplace.Searcher.
type fakeSearcher struct {
	result   pricing.SearchResult
	err      error
	gotQuery string
}

func (f *fakeSearcher) Search(ctx context.Context, query string) (pricing.SearchResult, error) {
	f.gotQuery = query
	return f.result, f.err
}

func TestHealthHandler(t *testing.T) {
	handler := handlers.NewHealthHandler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "healthy", response.Status)
}

func TestAuthHandler_Callback(t *testing.T) {
	t.Run("returns 400 when code is missing", func(t *testing.T) {
		exchanger := &fakeExchanger{}
		handler := handlers.NewAuthHandler(exchanger, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/auth/mercadolibre/callback", nil)
		rec := httptest.NewRecorder()

		handler.Callback(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, exchanger.gotCode)
	})

	t.Run("returns the exchanged credential", func(t *testing.T) {
		exchanger := &fakeExchanger{cred: marketplace.Credential{
			AccessToken:  "APP_USR-token",
			RefreshToken: "TG-refresh",
			ExpiresIn:    21600,
		}}
		handler := handlers.NewAuthHandler(exchanger, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/auth/mercadolibre/callback?code=the-code", nil)
		rec := httptest.NewRecorder()

		handler.Callback(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "the-code", exchanger.gotCode)

		var response dto.TokenResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, "APP_USR-token", response.AccessToken)
		assert.Equal(t, "TG-refresh", response.RefreshToken)
		assert.Equal(t, 21600, response.ExpiresIn)
	})

	t.Run("maps upstream failure to 502", func(t *testing.T) {
		exchanger := &fakeExchanger{err: &marketplace.UpstreamError{
			Op: "token exchange", Status: 400, Body: `{"error":"invalid_grant"}`,
		}}
		handler := handlers.NewAuthHandler(exchanger, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/auth/mercadolibre/callback?code=expired", nil)
		rec := httptest.NewRecorder()

		handler.Callback(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)

		var response dto.APIError
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, dto.ErrCodeUpstreamFailed, response.Code)
		assert.Contains(t, response.Detail, "invalid_grant")
	})
}

func TestSearchHandler_Search(t *testing.T) {
	t.Run("returns 400 when query is missing", func(t *testing.T) {
		handler := handlers.NewSearchHandler(&fakeMercadoLibre{}, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
		req.Header.Set("Authorization", "Bearer token")
		rec := httptest.NewRecorder()

		handler.Search(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("returns 401 when the bearer token is missing", func(t *testing.T) {
		handler := handlers.NewSearchHandler(&fakeMercadoLibre{}, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/api/search?q=shoes", nil)
		rec := httptest.NewRecorder()

		handler.Search(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var response dto.APIError
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, dto.ErrCodeUnauthorized, response.Code)
	})

	t.Run("passes query and token through and returns the result", func(t *testing.T) {
		client := &fakeMercadoLibre{result: pricing.SearchResult{
			Products: []pricing.Listing{
				{ID: "MLA3", Title: "Disponible", Price: 100, Currency: "ARS", Permalink: "p3"},
			},
			AveragePrice: "100.00",
		}}
		handler := handlers.NewSearchHandler(client, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/api/search?q=zapatillas", nil)
		req.Header.Set("Authorization", "Bearer the-token")
		rec := httptest.NewRecorder()

		handler.Search(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "zapatillas", client.gotQuery)
		assert.Equal(t, "the-token", client.gotToken)

		var response pricing.SearchResult
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		require.Len(t, response.Products, 1)
		assert.Equal(t, "MLA3", response.Products[0].ID)
		assert.Equal(t, "100.00", response.AveragePrice)
	})
}

func TestSearchHandler_MyItems(t *testing.T) {
	t.Run("returns the seller's item ids", func(t *testing.T) {
		client := &fakeMercadoLibre{items: mercadolibre.UserItems{
			SellerID: 42,
			Results:  []string{"MLA1", "MLA2"},
			Paging:   mercadolibre.Paging{Total: 2},
		}}
		handler := handlers.NewSearchHandler(client, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/api/my-items", nil)
		req.Header.Set("Authorization", "Bearer the-token")
		rec := httptest.NewRecorder()

		handler.MyItems(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var response dto.MyItemsResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, int64(42), response.SellerID)
		assert.Equal(t, []string{"MLA1", "MLA2"}, response.ItemIDs)
		assert.Equal(t, 2, response.Total)
	})

	t.Run("returns 401 without a token", func(t *testing.T) {
		handler := handlers.NewSearchHandler(&fakeMercadoLibre{}, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/api/my-items", nil)
		rec := httptest.NewRecorder()

		handler.MyItems(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestScrapeHandler_Search(t *testing.T) {
	t.Run("returns 400 when query is missing", func(t *testing.T) {
		handler := handlers.NewScrapeHandler(&fakeSearcher{}, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/api/search/amazon", nil)
		rec := httptest.NewRecorder()

		handler.Search(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("returns the scraped result", func(t *testing.T) {
		searcher := &fakeSearcher{result: pricing.SearchResult{
			Products: []pricing.Listing{
				{Title: "Hub A", Price: 25, Permalink: "https://www.amazon.com/a"},
			},
			AveragePrice: "25.00",
		}}
		handler := handlers.NewScrapeHandler(searcher, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/api/search/amazon?query=usb+hub", nil)
		rec := httptest.NewRecorder()

		handler.Search(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "usb hub", searcher.gotQuery)

		var response pricing.SearchResult
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		require.Len(t, response.Products, 1)
		assert.Equal(t, "25.00", response.AveragePrice)
	})

	t.Run("maps a scrape failure to 502", func(t *testing.T) {
		searcher := &fakeSearcher{err: &marketplace.ScrapeError{Cause: errors.New("browser crashed")}}
		handler := handlers.NewScrapeHandler(searcher, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/api/search/amazon?query=usb", nil)
		rec := httptest.NewRecorder()

		handler.Search(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)

		var response dto.APIError
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, dto.ErrCodeScrapeFailed, response.Code)
	})
}
