// Package api wires the HTTP surface: routing, middleware and handlers.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/marketlens/marketlens-backend/internal/api/handlers"
	"github.com/marketlens/marketlens-backend/internal/api/middleware"
	"github.com/marketlens/marketlens-backend/internal/marketplace"
)

// Config holds API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults for the API server.
func DefaultConfig() Config {
	return Config{
		Port:           5000,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
	}
}

// Server is the HTTP API server.
type Server struct {
	config     Config
	router     chi.Router
	httpServer *http.Server
	logger     *slog.Logger

	mercadolibre handlers.MercadoLibreClient
	exchanger    marketplace.TokenExchanger
	amazon       marketplace.Searcher
}

// NewServer creates a new API server around the two marketplace adapters and
// the token exchanger.
func NewServer(cfg Config, ml handlers.MercadoLibreClient, exchanger marketplace.TokenExchanger, amazon marketplace.Searcher, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config:       cfg,
		router:       chi.NewRouter(),
		logger:       logger,
		mercadolibre: ml,
		exchanger:    exchanger,
		amazon:       amazon,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	s.router.Use(middleware.Logging(s.logger))
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check (no /api prefix - for load balancers)
	healthHandler := handlers.NewHealthHandler()
	s.router.Get("/health", healthHandler.ServeHTTP)

	// OAuth redirect target, outside /api to match the registered redirect URI
	authHandler := handlers.NewAuthHandler(s.exchanger, s.logger)
	s.router.Get("/auth/mercadolibre/callback", authHandler.Callback)

	s.router.Route("/api", func(r chi.Router) {
		searchHandler := handlers.NewSearchHandler(s.mercadolibre, s.logger)
		r.Get("/search", searchHandler.Search)
		r.Get("/my-items", searchHandler.MyItems)

		scrapeHandler := handlers.NewScrapeHandler(s.amazon, s.logger)
		r.Get("/search/amazon", scrapeHandler.Search)
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // scrape requests hold the connection while the browser runs
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting API server", "addr", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")

	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}
