package pricing

import (
	"github.com/ps-vitor/boliga-prices/internal/domain"
)

// DefaultMaxArea is the default upper area bound in m2.
const DefaultMaxArea = 9999

// Query holds the inputs of a price prediction.
type Query struct {
	TargetArea  float64
	MinSaleYear int
	MaxSaleYear int
	MinArea     float64
	MaxArea     float64
	MinSamples  int
}

// DefaultQuery returns a query for targetArea that accepts every sale up to
// the current year with an area between 0 and DefaultMaxArea.
func DefaultQuery(targetArea float64) Query {
	return Query{
		TargetArea:  targetArea,
		MinSaleYear: EarliestYear,
		MaxSaleYear: CurrentYear(),
		MinArea:     0,
		MaxArea:     DefaultMaxArea,
		MinSamples:  0,
	}
}

// Predict estimates the total price of a home of q.TargetArea m2.
//
// The table is narrowed by sale year and area. If fewer than q.MinSamples
// sales remain the result is an *InsufficientSamplesError; if none remain it
// is ErrEmptyDataset. Otherwise the estimate is the median price per m2 of
// the remaining sales times the target area.
func Predict(table domain.SaleTable, q Query) (float64, error) {
	filtered := Apply(table,
		SaleYear(q.MinSaleYear, q.MaxSaleYear),
		Area(q.MinArea, q.MaxArea),
	)

	if filtered.Len() < q.MinSamples {
		return 0, &InsufficientSamplesError{Required: q.MinSamples, Actual: filtered.Len()}
	}

	median, err := Median(filtered.PricesPerArea())
	if err != nil {
		return 0, err
	}
	return median * q.TargetArea, nil
}
