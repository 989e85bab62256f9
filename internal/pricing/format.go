package pricing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var pricePrinter = message.NewPrinter(language.English)

// FormatPrice renders a price in kroner with thousands separators and two
// decimals, e.g. "4,250,000.00 kr.".
func FormatPrice(price float64) string {
	return pricePrinter.Sprintf("%.2f kr.", price)
}
