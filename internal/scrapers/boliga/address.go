package boliga

import (
	"fmt"
	"regexp"
	"strings"
)

// addressPattern matches sold-list addresses such as
// "Gimles Allé 2B, 2. th 2300 København S". The floor part is optional.
var addressPattern = regexp.MustCompile(
	`^(?P<street>[\p{L}][\p{L} .'-]*?) ` +
		`(?P<number>\d+[A-Z]?),?` +
		`(?: (?P<floor>.+?))? ` +
		`(?P<zip>\d{4}) ` +
		`(?P<city>[\p{L}][\p{L} .-]*)$`,
)

// Address is a parsed Danish street address.
type Address struct {
	Street  string
	Number  string
	Floor   string // "" when the address has no floor
	ZipCode string
	City    string
}

// StreetAddress returns street name and house number, e.g. "Ingolfs Allé 25".
func (a Address) StreetAddress() string {
	return a.Street + " " + a.Number
}

// ParseAddress splits a sold-list address into its parts.
func ParseAddress(raw string) (Address, error) {
	raw = strings.Join(strings.Fields(raw), " ")
	m := addressPattern.FindStringSubmatch(raw)
	if m == nil {
		return Address{}, fmt.Errorf("malformed address: %q", raw)
	}
	group := func(name string) string {
		return strings.TrimSpace(m[addressPattern.SubexpIndex(name)])
	}
	return Address{
		Street:  group("street"),
		Number:  group("number"),
		Floor:   group("floor"),
		ZipCode: group("zip"),
		City:    group("city"),
	}, nil
}
