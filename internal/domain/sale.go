// internal/domain/sale.go
package domain

import "time"

// DateLayout is the only date format accepted in stored sale tables (DD-MM-YYYY).
const DateLayout = "02-01-2006"

// Column names shared by every reader and writer of sale tables.
const (
	ColumnAddress      = "address"
	ColumnZipCode      = "zip_code"
	ColumnZip          = "zip"
	ColumnPrice        = "price"
	ColumnDate         = "date"
	ColumnRooms        = "rooms"
	ColumnArea         = "m2"
	ColumnBuildYear    = "built"
	ColumnPricePerArea = "m2_price"
)

// Header is the column order written for sale tables.
var Header = []string{
	ColumnAddress,
	ColumnZip,
	ColumnPrice,
	ColumnDate,
	ColumnRooms,
	ColumnArea,
	ColumnBuildYear,
	ColumnPricePerArea,
}

// SaleRecord is one historical property sale.
// Address, Price and Rooms are only filled when the source carries them.
type SaleRecord struct {
	Address      string    `json:"address,omitempty"`
	ZipCode      string    `json:"zip_code"`
	Price        float64   `json:"price,omitempty"`
	SaleDate     time.Time `json:"sale_date"`
	Rooms        string    `json:"rooms,omitempty"`
	BuildYear    int       `json:"built"`
	Area         float64   `json:"m2"`
	PricePerArea float64   `json:"m2_price"`
}

// SaleTable is a set of sale records. Filters return new tables and never
// modify the one they were given.
type SaleTable []SaleRecord

// Len returns the number of records.
func (t SaleTable) Len() int { return len(t) }

// ZipCode returns the zip code of the first record, or "" for an empty table.
func (t SaleTable) ZipCode() string {
	if len(t) == 0 {
		return ""
	}
	return t[0].ZipCode
}

// PricesPerArea returns the price-per-area column in table order.
func (t SaleTable) PricesPerArea() []float64 {
	out := make([]float64, len(t))
	for i, r := range t {
		out[i] = r.PricePerArea
	}
	return out
}
