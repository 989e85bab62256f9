// cmd/predict/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/ps-vitor/boliga-prices/internal/config"
	"github.com/ps-vitor/boliga-prices/internal/pricing"
	"github.com/ps-vitor/boliga-prices/internal/repositories"
	"github.com/ps-vitor/boliga-prices/internal/services/prediction"
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
	def := pricing.DefaultQuery(0)

	configDir := flag.String("config", "configs", "directory holding app.yaml")
	minSalesYear := flag.Int("min-sales-year", def.MinSaleYear, "earliest sale year to include")
	maxSalesYear := flag.Int("max-sales-year", def.MaxSaleYear, "latest sale year to include")
	minArea := flag.Float64("min-area", def.MinArea, "smallest area in m2 to include")
	maxArea := flag.Float64("max-area", def.MaxArea, "largest area in m2 to include")
	minSamples := flag.Int("min-samples", def.MinSamples, "fail unless at least this many sales remain")
	minBuilt := flag.Int("min-built", -1, "earliest build year to include (off when negative)")
	maxBuilt := flag.Int("max-built", -1, "latest build year to include (off when negative)")
	counts := flag.Bool("counts", false, "print the number of sales per year before predicting")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <sales.csv|sales.db> <house_area>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		return errUsage
	}
	path := flag.Arg(0)
	houseArea, err := strconv.ParseFloat(flag.Arg(1), 64)
	if err != nil || houseArea <= 0 {
		fmt.Fprintf(os.Stderr, "house_area must be a positive number, got %q\n", flag.Arg(1))
		return errUsage
	}

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		cfg = config.Default()
	}
	log := logger.New(logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format, Output: os.Stderr})
	if err != nil {
		log.Warn("Failed to load config, using defaults", "error", err)
	}

	ctx := context.Background()
	repo, err := repositories.Open(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to open sales: %w", err)
	}
	defer repo.Close()

	table, err := repo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load sales: %w", err)
	}
	log.Debug("Loaded sales", "path", path, "rows", table.Len())

	if *counts {
		for _, c := range pricing.CountBySaleYear(table) {
			fmt.Printf("%d: %d\n", c.Year, c.Count)
		}
	}

	req := prediction.Request{Query: pricing.Query{
		TargetArea:  houseArea,
		MinSaleYear: *minSalesYear,
		MaxSaleYear: *maxSalesYear,
		MinArea:     *minArea,
		MaxArea:     *maxArea,
		MinSamples:  *minSamples,
	}}
	if *minBuilt >= 0 || *maxBuilt >= 0 {
		years := prediction.YearRange{Min: 0, Max: pricing.CurrentYear()}
		if *minBuilt >= 0 {
			years.Min = *minBuilt
		}
		if *maxBuilt >= 0 {
			years.Max = *maxBuilt
		}
		req.BuildYear = &years
	}

	estimate, err := prediction.EstimateFrom(table, req)
	if err != nil {
		return fmt.Errorf("failed to predict price: %w", err)
	}

	fmt.Printf("Suggested price for house of size %g situated in %s: %s\n",
		houseArea, estimate.ZipCode, estimate.Formatted)
	return nil
}
