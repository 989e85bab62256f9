package boliga

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ps-vitor/boliga-prices/internal/domain"
)

// ErrNoSoldList is returned when a results page has no sold-list table,
// which is how the site answers a search without results.
var ErrNoSoldList = errors.New("no sold list found")

var leadingDigits = regexp.MustCompile(`^\d+`)

// ParseSoldList reads every row of the sold-list table in doc.
func ParseSoldList(doc *goquery.Selection) (domain.SaleTable, error) {
	list := doc.Find("app-sold-list-table")
	if list.Length() == 0 {
		return nil, ErrNoSoldList
	}

	var (
		sales domain.SaleTable
		err   error
	)
	list.First().Find("table tr").EachWithBreak(func(i int, tr *goquery.Selection) bool {
		cells := tr.Find("td")
		if cells.Length() == 0 {
			return true
		}
		var sale domain.SaleRecord
		if sale, err = parseRow(cells); err != nil {
			err = fmt.Errorf("row %d: %w", i, err)
			return false
		}
		sales = append(sales, sale)
		return true
	})
	if err != nil {
		return nil, err
	}

	return sales, nil
}

func parseRow(cells *goquery.Selection) (domain.SaleRecord, error) {
	var sale domain.SaleRecord
	if cells.Length() < 6 {
		return sale, fmt.Errorf("expected 6 columns, got %d", cells.Length())
	}

	address, err := ParseAddress(cells.Eq(0).Find(`[data-gtm="sales_address"]`).First().Text())
	if err != nil {
		return sale, err
	}
	sale.Address = address.StreetAddress()
	sale.ZipCode = address.ZipCode

	if sale.Price, err = parsePrice(nowrapText(cells.Eq(1))); err != nil {
		return sale, err
	}

	if sale.SaleDate, err = NormalizeDate(nowrapText(cells.Eq(2))); err != nil {
		return sale, err
	}

	area := strings.TrimSpace(cells.Eq(3).Find("span").First().Text())
	digits := leadingDigits.FindString(area)
	if digits == "" {
		return sale, fmt.Errorf("malformed area: %q", area)
	}
	m2, err := strconv.Atoi(digits)
	if err != nil || m2 == 0 {
		return sale, fmt.Errorf("malformed area: %q", area)
	}
	sale.Area = float64(m2)

	sale.Rooms = strings.TrimSpace(cells.Eq(4).Text())

	built := strings.TrimSpace(cells.Eq(5).Find("span:not([class])").First().Text())
	if sale.BuildYear, err = strconv.Atoi(built); err != nil {
		return sale, fmt.Errorf("malformed build year: %q", built)
	}

	sale.PricePerArea = sale.Price / sale.Area
	return sale, nil
}

func nowrapText(cell *goquery.Selection) string {
	return strings.TrimSpace(cell.Find("span.text-nowrap").First().Text())
}

// parsePrice turns "4.250.000 kr." into 4250000.
func parsePrice(raw string) (float64, error) {
	cleaned := strings.NewReplacer("\u00a0", "", " ", "", ".", "", "kr", "").Replace(raw)
	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || price < 0 {
		return 0, fmt.Errorf("malformed price: %q", raw)
	}
	return price, nil
}
