package pricing

import (
	"sort"

	"github.com/ps-vitor/boliga-prices/internal/domain"
)

// Median returns the middle value of values, or the mean of the two middle
// values when there is an even number of them. values is not modified.
func Median(values []float64) (float64, error) {
	n := len(values)
	if n == 0 {
		return 0, ErrEmptyDataset
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	if n%2 == 1 {
		return sorted[n/2], nil
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2, nil
}

// YearCount is the number of sales in one calendar year.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// CountBySaleYear counts sales per sale year, newest year first.
func CountBySaleYear(table domain.SaleTable) []YearCount {
	counts := make(map[int]int)
	for _, r := range table {
		counts[r.SaleDate.Year()]++
	}

	out := make([]YearCount, 0, len(counts))
	for year, n := range counts {
		out = append(out, YearCount{Year: year, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	return out
}
