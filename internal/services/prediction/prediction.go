package prediction

import (
	"context"
	"fmt"

	"github.com/ps-vitor/boliga-prices/internal/domain"
	"github.com/ps-vitor/boliga-prices/internal/pricing"
	"github.com/ps-vitor/boliga-prices/internal/repositories"
)

// YearRange is an inclusive range of years.
type YearRange struct {
	Min int
	Max int
}

// Request is a price prediction with an optional build-year restriction
// applied before the prediction's own filters.
type Request struct {
	pricing.Query
	BuildYear *YearRange
}

// Estimate is the outcome of a prediction.
type Estimate struct {
	ZipCode    string  `json:"zip_code"`
	TargetArea float64 `json:"target_area"`
	Price      float64 `json:"price"`
	Formatted  string  `json:"formatted"`
	Samples    int     `json:"samples"`
}

type PredictionService struct {
	repo repositories.SaleRepository
}

func NewPredictionService(repo repositories.SaleRepository) *PredictionService {
	return &PredictionService{repo: repo}
}

// Estimate loads the sale table and predicts a price for req. The zip code
// reported is the one of the first stored sale.
func (s *PredictionService) Estimate(ctx context.Context, req Request) (Estimate, error) {
	table, err := s.repo.FindAll(ctx)
	if err != nil {
		return Estimate{}, err
	}
	return EstimateFrom(table, req)
}

// EstimateFrom predicts a price for req from an already loaded table.
func EstimateFrom(table domain.SaleTable, req Request) (Estimate, error) {
	zip := table.ZipCode()

	if req.BuildYear != nil {
		table = pricing.FilterByBuildYear(table, req.BuildYear.Min, req.BuildYear.Max)
	}

	price, err := pricing.Predict(table, req.Query)
	if err != nil {
		return Estimate{}, fmt.Errorf("predicting price for %g m2: %w", req.TargetArea, err)
	}

	samples := pricing.Apply(table,
		pricing.SaleYear(req.MinSaleYear, req.MaxSaleYear),
		pricing.Area(req.MinArea, req.MaxArea),
	).Len()

	return Estimate{
		ZipCode:    zip,
		TargetArea: req.TargetArea,
		Price:      price,
		Formatted:  pricing.FormatPrice(price),
		Samples:    samples,
	}, nil
}

// SaleYears counts stored sales per sale year, newest first.
func (s *PredictionService) SaleYears(ctx context.Context) ([]pricing.YearCount, error) {
	table, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return pricing.CountBySaleYear(table), nil
}
