// Package pricing narrows sale tables and estimates prices from them.
//
// Every filter is a pure function from table to table. Filters look at
// disjoint fields, so they can be applied in any order with the same result,
// and applying one twice with the same bounds changes nothing. Bounds are
// inclusive; an inverted range (min > max) matches no records.
package pricing

import (
	"time"

	"github.com/ps-vitor/boliga-prices/internal/domain"
)

// EarliestYear is the default lower sale-year bound.
const EarliestYear = 1

// CurrentYear is the default upper bound for sale and build years.
func CurrentYear() int {
	return time.Now().Year()
}

// Filter narrows a table.
type Filter func(domain.SaleTable) domain.SaleTable

// Apply runs filters left to right.
func Apply(table domain.SaleTable, filters ...Filter) domain.SaleTable {
	for _, f := range filters {
		table = f(table)
	}
	return table
}

// SaleYear returns FilterBySaleYear bound to min and max.
func SaleYear(min, max int) Filter {
	return func(t domain.SaleTable) domain.SaleTable { return FilterBySaleYear(t, min, max) }
}

// BuildYear returns FilterByBuildYear bound to min and max.
func BuildYear(min, max int) Filter {
	return func(t domain.SaleTable) domain.SaleTable { return FilterByBuildYear(t, min, max) }
}

// Area returns FilterByArea bound to min and max.
func Area(min, max float64) Filter {
	return func(t domain.SaleTable) domain.SaleTable { return FilterByArea(t, min, max) }
}

// FilterBySaleYear keeps sales dated from 1 January of minYear up to and
// including 31 December of maxYear.
func FilterBySaleYear(table domain.SaleTable, minYear, maxYear int) domain.SaleTable {
	from := yearStart(minYear)
	until := yearStart(maxYear + 1)
	return keep(table, func(r domain.SaleRecord) bool {
		return !r.SaleDate.Before(from) && r.SaleDate.Before(until)
	})
}

// FilterByBuildYear keeps records built in [minYear, maxYear].
func FilterByBuildYear(table domain.SaleTable, minYear, maxYear int) domain.SaleTable {
	return keep(table, func(r domain.SaleRecord) bool {
		return r.BuildYear > minYear-1 && r.BuildYear < maxYear+1
	})
}

// FilterByArea keeps records whose area is in [minArea, maxArea].
func FilterByArea(table domain.SaleTable, minArea, maxArea float64) domain.SaleTable {
	return keep(table, func(r domain.SaleRecord) bool {
		return r.Area >= minArea && r.Area <= maxArea
	})
}

func keep(table domain.SaleTable, pred func(domain.SaleRecord) bool) domain.SaleTable {
	out := make(domain.SaleTable, 0, len(table))
	for _, r := range table {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// yearStart is midnight UTC on 1 January. Sale dates are parsed as UTC.
func yearStart(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}
