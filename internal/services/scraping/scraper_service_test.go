package scraping

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ps-vitor/boliga-prices/internal/domain"
	"github.com/ps-vitor/boliga-prices/internal/repositories"
	"github.com/ps-vitor/boliga-prices/internal/scrapers/boliga"
	"github.com/ps-vitor/boliga-prices/pkg/logger"
)

type fakeScraper struct {
	results map[string]domain.SaleTable
	errs    map[string]error
	calls   []string
}

func (f *fakeScraper) SoldList(_ context.Context, street, zip string) (domain.SaleTable, error) {
	f.calls = append(f.calls, street+"/"+zip)
	if err, ok := f.errs[street]; ok {
		return nil, err
	}
	return f.results[street], nil
}

func sale(address string, m2Price float64) domain.SaleRecord {
	return domain.SaleRecord{
		Address:      address,
		ZipCode:      "2300",
		Price:        m2Price * 80,
		SaleDate:     time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC),
		Rooms:        "3",
		BuildYear:    1935,
		Area:         80,
		PricePerArea: m2Price,
	}
}

func TestScraperService_ScrapeAndStore(t *testing.T) {
	scraper := &fakeScraper{
		results: map[string]domain.SaleTable{
			"Ingolfs Allé": {sale("Ingolfs Allé 25", 50000), sale("Ingolfs Allé 27", 52000)},
			"Gimles Allé":  {sale("Gimles Allé 2B", 48000)},
		},
		errs: map[string]error{
			"Tom Vej": boliga.ErrNoSoldList,
		},
	}
	path := filepath.Join(t.TempDir(), "amager.csv")
	repo := repositories.NewCSVSaleRepository(path)
	svc := NewScraperService(scraper, repo, logger.Nop())

	summary, err := svc.ScrapeAndStore(context.Background(), "2300", []string{"Ingolfs Allé", "Tom Vej", "Gimles Allé"})
	require.NoError(t, err)
	assert.Equal(t, Summary{Streets: 3, Sales: 3, Skipped: []string{"Tom Vej"}}, summary)
	assert.Equal(t, []string{"Ingolfs Allé/2300", "Tom Vej/2300", "Gimles Allé/2300"}, scraper.calls)

	stored, err := repositories.LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	assert.Equal(t, "Gimles Allé 2B", stored[2].Address)
	assert.Equal(t, 48000.0, stored[2].PricePerArea)
}

func TestScraperService_StopsOnOtherErrors(t *testing.T) {
	boom := errors.New("connection reset")
	scraper := &fakeScraper{
		results: map[string]domain.SaleTable{"Ingolfs Allé": {sale("Ingolfs Allé 25", 50000)}},
		errs:    map[string]error{"Gimles Allé": boom},
	}
	path := filepath.Join(t.TempDir(), "out.csv")
	svc := NewScraperService(scraper, repositories.NewCSVSaleRepository(path), logger.Nop())

	_, err := svc.ScrapeAndStore(context.Background(), "2300", []string{"Ingolfs Allé", "Gimles Allé", "Tyge Krabbes Vej"})
	assert.ErrorIs(t, err, boom)
	assert.Len(t, scraper.calls, 2)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "nothing is stored after a failed run")
}

func TestScraperService_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scraper := &fakeScraper{}
	svc := NewScraperService(scraper, repositories.NewCSVSaleRepository(filepath.Join(t.TempDir(), "x.csv")), logger.Nop())

	_, _, err := svc.Scrape(ctx, "2300", []string{"Ingolfs Allé"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, scraper.calls)
}

func TestReadStreets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "streets.txt")
	require.NoError(t, os.WriteFile(path, []byte("Ingolfs Allé\n\n  Gimles Allé  \nTyge Krabbes Vej"), 0o644))

	streets, err := ReadStreets(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ingolfs Allé", "Gimles Allé", "Tyge Krabbes Vej"}, streets)

	_, err = ReadStreets(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
