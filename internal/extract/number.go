package extract

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NormalizeDecimal converts an Italian-locale number (thousands dot,
// decimal comma) to its canonical form: "1.234,56" -> "1234.56",
// "12,5" -> "12.5".
func NormalizeDecimal(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	return s
}

// ParseDecimal normalizes an Italian-locale number and parses it.
func ParseDecimal(s string) (float64, error) {
	normalized := NormalizeDecimal(s)
	f, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, fmt.Errorf("parse decimal %q: %w", s, err)
	}
	return f, nil
}

// dateLayouts are tried in order; the page writes dates day-first.
// Two-digit years follow Go windowing (NN < 69 parses as 20NN), which is
// where the maturity wraparound ambiguity comes from.
var dateLayouts = []string{
	"02/01/2006",
	"02/01/06",
	"02.01.2006",
	"02-01-2006",
}

// ParseDateDayFirst parses a day-first calendar date.
func ParseDateDayFirst(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse date %q: no known day-first layout", s)
}
