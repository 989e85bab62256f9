package boliga

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ps-vitor/boliga-prices/internal/domain"
)

func loadDocument(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc.Selection
}

func loadFixture(t *testing.T, name string) *goquery.Selection {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return loadDocument(t, string(data))
}

func TestParseSoldList(t *testing.T) {
	sales, err := ParseSoldList(loadFixture(t, "sold_list.html"))
	require.NoError(t, err)
	require.Len(t, sales, 2)

	assert.Equal(t, domain.SaleRecord{
		Address:      "Ingolfs Allé 25",
		ZipCode:      "2300",
		Price:        4250000,
		SaleDate:     time.Date(2021, time.May, 17, 0, 0, 0, 0, time.UTC),
		Rooms:        "3",
		BuildYear:    1935,
		Area:         85,
		PricePerArea: 50000,
	}, sales[0])

	assert.Equal(t, "Gimles Allé 2B", sales[1].Address)
	assert.Equal(t, time.Date(2020, time.February, 3, 0, 0, 0, 0, time.UTC), sales[1].SaleDate)
	assert.Equal(t, 1938, sales[1].BuildYear)
	assert.Equal(t, 50000.0, sales[1].PricePerArea)
}

func TestParseSoldList_NoResults(t *testing.T) {
	_, err := ParseSoldList(loadFixture(t, "no_results.html"))
	assert.ErrorIs(t, err, ErrNoSoldList)
}

func TestParseSoldList_MalformedRow(t *testing.T) {
	row := func(address, price, date, area, built string) string {
		return `<app-sold-list-table><table><tr>` +
			`<td><a data-gtm="sales_address">` + address + `</a></td>` +
			`<td><span class="text-nowrap">` + price + `</span></td>` +
			`<td><span class="text-nowrap">` + date + `</span></td>` +
			`<td><span>` + area + `</span></td>` +
			`<td>3</td>` +
			`<td><span>` + built + `</span></td>` +
			`</tr></table></app-sold-list-table>`
	}

	tests := map[string]string{
		"address": row("Somewhere", "1.000 kr.", "01-01-2020", "80 m²", "1950"),
		"price":   row("Ingolfs Allé 25, 2300 København S", "n/a", "01-01-2020", "80 m²", "1950"),
		"date":    row("Ingolfs Allé 25, 2300 København S", "1.000 kr.", "sidste år", "80 m²", "1950"),
		"area":    row("Ingolfs Allé 25, 2300 København S", "1.000 kr.", "01-01-2020", "- m²", "1950"),
		"zero":    row("Ingolfs Allé 25, 2300 København S", "1.000 kr.", "01-01-2020", "0 m²", "1950"),
		"huge":    row("Ingolfs Allé 25, 2300 København S", "1.000 kr.", "01-01-2020", "99999999999999999999 m²", "1950"),
		"built":   row("Ingolfs Allé 25, 2300 København S", "1.000 kr.", "01-01-2020", "80 m²", "ukendt"),
	}
	for name, html := range tests {
		t.Run(name, func(t *testing.T) {
			sales, err := ParseSoldList(loadDocument(t, html))
			assert.Error(t, err)
			assert.NotErrorIs(t, err, ErrNoSoldList)
			assert.Nil(t, sales)
		})
	}
}

func TestParsePrice(t *testing.T) {
	got, err := parsePrice("1.995.000 kr.")
	require.NoError(t, err)
	assert.Equal(t, 1995000.0, got)

	_, err = parsePrice("kr.")
	assert.Error(t, err)
}

func TestOutputFileName(t *testing.T) {
	assert.Equal(t, "sundby_nord.csv", OutputFileName("data/Sundby Nord.txt"))
	assert.Equal(t, "streets.csv", OutputFileName("streets.txt"))
	assert.Equal(t, "amager.csv", OutputFileName("/tmp/Amager"))
}
