package scraping

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ps-vitor/boliga-prices/internal/domain"
	"github.com/ps-vitor/boliga-prices/internal/repositories"
	"github.com/ps-vitor/boliga-prices/internal/scrapers/boliga"
	"github.com/ps-vitor/boliga-prices/pkg/logger"
)

// SoldListScraper fetches the latest sales on one street.
type SoldListScraper interface {
	SoldList(ctx context.Context, street, zip string) (domain.SaleTable, error)
}

// Summary describes one scrape run.
type Summary struct {
	Streets int      `json:"streets"`
	Sales   int      `json:"sales"`
	Skipped []string `json:"skipped,omitempty"`
}

type ScraperService struct {
	scraper SoldListScraper
	repo    repositories.SaleRepository
	log     *logger.Logger
}

func NewScraperService(scraper SoldListScraper, repo repositories.SaleRepository, log *logger.Logger) *ScraperService {
	return &ScraperService{scraper: scraper, repo: repo, log: log}
}

// Scrape collects the sold lists of streets within zip. Streets without a
// sold list are logged and skipped; any other failure stops the run.
func (s *ScraperService) Scrape(ctx context.Context, zip string, streets []string) (domain.SaleTable, Summary, error) {
	var (
		sales   domain.SaleTable
		summary Summary
	)
	for _, street := range streets {
		if err := ctx.Err(); err != nil {
			return nil, summary, err
		}
		summary.Streets++
		s.log.Info("Scraping street", "street", street, "zip", zip)

		rows, err := s.scraper.SoldList(ctx, street, zip)
		if errors.Is(err, boliga.ErrNoSoldList) {
			s.log.Error("No sold list found", "street", street, "zip", zip)
			summary.Skipped = append(summary.Skipped, street)
			continue
		}
		if err != nil {
			return nil, summary, fmt.Errorf("scraping %s: %w", street, err)
		}

		s.log.Info("Got new rows", "street", street, "rows", len(rows))
		sales = append(sales, rows...)
	}
	summary.Sales = len(sales)
	return sales, summary, nil
}

// ScrapeAndStore scrapes streets and replaces the repository contents with
// the result.
func (s *ScraperService) ScrapeAndStore(ctx context.Context, zip string, streets []string) (Summary, error) {
	sales, summary, err := s.Scrape(ctx, zip, streets)
	if err != nil {
		return summary, err
	}

	s.log.Info("Saving sales", "rows", len(sales))
	if err := s.repo.Save(ctx, sales); err != nil {
		return summary, fmt.Errorf("saving sales: %w", err)
	}
	return summary, nil
}

// ReadStreets reads one street name per line, skipping blank lines.
func ReadStreets(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var streets []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if street := strings.TrimSpace(scanner.Text()); street != "" {
			streets = append(streets, street)
		}
	}
	return streets, scanner.Err()
}
