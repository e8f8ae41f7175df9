package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/marketlens/marketlens-backend/internal/api"
	"github.com/marketlens/marketlens-backend/internal/config"
	"github.com/marketlens/marketlens-backend/internal/marketplace/amazon"
	"github.com/marketlens/marketlens-backend/internal/marketplace/mercadolibre"
	"github.com/marketlens/marketlens-backend/internal/observability"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.LoadOrEnv()
	logger := observability.NewLogger(cfg.Observability.Logging)

	mlClient := mercadolibre.NewClient(mercadolibre.Config{
		BaseURL:      cfg.MercadoLibre.BaseURL,
		Site:         cfg.MercadoLibre.Site,
		ClientID:     cfg.MercadoLibre.ClientID,
		ClientSecret: cfg.MercadoLibre.ClientSecret,
		RedirectURI:  cfg.MercadoLibre.RedirectURI,
	}, logger)

	amazonScraper := amazon.NewScraper(amazon.Config{
		BaseURL:       cfg.Amazon.BaseURL,
		MaxResults:    cfg.Amazon.MaxResults,
		Timeout:       time.Duration(cfg.Amazon.TimeoutSeconds) * time.Second,
		MaxConcurrent: cfg.Amazon.MaxConcurrent,
	}, nil, logger)

	server := api.NewServer(api.Config{
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, mlClient, mlClient, amazonScraper, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
}
