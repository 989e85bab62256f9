// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/ps-vitor/boliga-prices/internal/api/handlers"
	"github.com/ps-vitor/boliga-prices/internal/config"
	"github.com/ps-vitor/boliga-prices/internal/repositories"
	"github.com/ps-vitor/boliga-prices/internal/scrapers/boliga"
	"github.com/ps-vitor/boliga-prices/internal/services/prediction"
	"github.com/ps-vitor/boliga-prices/internal/services/scraping"
	"github.com/ps-vitor/boliga-prices/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configDir := flag.String("config", "configs", "directory holding app.yaml and scraping.yaml")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.New(logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Setup dependencies
	repo, err := repositories.Create(ctx, cfg.Data.Path)
	if err != nil {
		return fmt.Errorf("failed to open sales store %s: %w", cfg.Data.Path, err)
	}
	defer repo.Close()

	client, err := boliga.NewClient(cfg.Scraping.Boliga)
	if err != nil {
		return fmt.Errorf("failed to create scraper: %w", err)
	}

	predictionSvc := prediction.NewPredictionService(repo)
	scraperSvc := scraping.NewScraperService(client, repo, log.With("component", "scraper"))

	r := mux.NewRouter()
	handlers.NewAPIHandler(predictionSvc, log.With("component", "api")).RegisterRoutes(r)
	handlers.NewScrapingHandler(scraperSvc, log.With("component", "scraping")).RegisterRoutes(r)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("Server shutdown incomplete", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr, "data", cfg.Data.Path, "env", cfg.App.Env)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	<-stopped
	log.Info("Server stopped")
	return nil
}
