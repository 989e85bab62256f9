package boliga

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrUnrecognizedDate is returned for sale dates in none of the known formats.
var ErrUnrecognizedDate = errors.New("unrecognized sale date")

var numericLayouts = []string{
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"2.1.2006",
	"02/01/2006",
	"2/1/2006",
	"2006-01-02",
}

// "17. maj 2021", "3. feb. 2020", "3 februar 2020"
var textDatePattern = regexp.MustCompile(`^(\d{1,2})\.?\s+(\p{L}+)\.?\s+(\d{4})$`)

var danishMonths = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"maj": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"okt": time.October,
	"nov": time.November,
	"dec": time.December,
}

// NormalizeDate parses a sale date as shown on the site. Numeric day-first
// dates, ISO dates and Danish month names are understood. The result is
// midnight UTC, ready to be written in domain.DateLayout.
func NormalizeDate(raw string) (time.Time, error) {
	s := strings.ToLower(strings.Join(strings.Fields(raw), " "))

	for _, layout := range numericLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	if m := textDatePattern.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[3])
		name := []rune(m[2])
		if len(name) >= 3 {
			if month, ok := danishMonths[string(name[:3])]; ok {
				t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
				if t.Day() == day && t.Month() == month {
					return t, nil
				}
			}
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrUnrecognizedDate, raw)
}
