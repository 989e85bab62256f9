// cmd/scraping/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/ps-vitor/boliga-prices/internal/config"
	"github.com/ps-vitor/boliga-prices/internal/repositories"
	"github.com/ps-vitor/boliga-prices/internal/scrapers/boliga"
	"github.com/ps-vitor/boliga-prices/internal/services/scraping"
	"github.com/ps-vitor/boliga-prices/pkg/logger"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configDir := flag.String("config", "configs", "directory holding app.yaml and scraping.yaml")
	out := flag.String("out", "", "output csv (defaults to the streets file name with a .csv extension)")
	dbPath := flag.String("db", "", "also store the sales in this SQLite database")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <streets.txt> <zip>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		return errUsage
	}
	streetsPath, zip := flag.Arg(0), flag.Arg(1)
	if *out == "" {
		*out = boliga.OutputFileName(streetsPath)
	}

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.New(logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	streets, err := scraping.ReadStreets(streetsPath)
	if err != nil {
		return fmt.Errorf("failed to read streets: %w", err)
	}

	client, err := boliga.NewClient(cfg.Scraping.Boliga)
	if err != nil {
		return fmt.Errorf("failed to create scraper: %w", err)
	}

	repos := []repositories.SaleRepository{repositories.NewCSVSaleRepository(*out)}
	if *dbPath != "" {
		db, err := repositories.NewSQLiteSaleRepository(ctx, *dbPath)
		if err != nil {
			return fmt.Errorf("failed to open database %s: %w", *dbPath, err)
		}
		defer db.Close()
		repos = append(repos, db)
	}

	svc := scraping.NewScraperService(client, repos[0], log)
	sales, summary, err := svc.Scrape(ctx, zip, streets)
	if err != nil {
		return fmt.Errorf("scraping failed: %w", err)
	}

	for _, repo := range repos {
		if err := repo.Save(ctx, sales); err != nil {
			return fmt.Errorf("failed to save sales: %w", err)
		}
	}
	log.Info("Saved sales",
		"file", *out,
		"rows", summary.Sales,
		"streets", summary.Streets,
		"skipped", len(summary.Skipped))
	return nil
}
