package signup

import (
	"fmt"
	"strings"
	"time"
)

// DateOrder selects how ambiguous slash dates such as "03/04/2024" are read.
type DateOrder string

const (
	DayFirst   DateOrder = "dmy"
	MonthFirst DateOrder = "mdy"
)

// ParseDateOrder parses a DateOrder; empty defaults to DayFirst.
func ParseDateOrder(s string) (DateOrder, error) {
	switch DateOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", DayFirst:
		return DayFirst, nil
	case MonthFirst:
		return MonthFirst, nil
	}
	return "", fmt.Errorf("unknown date order %q (want dmy or mdy)", s)
}

var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var (
	dayFirstLayouts   = []string{"2/1/2006 15:04:05", "2/1/2006 15:04", "2/1/2006"}
	monthFirstLayouts = []string{"1/2/2006 15:04:05", "1/2/2006 15:04", "1/2/2006"}
)

// Layouts returns the ordered parse layouts for order: ISO first, then slash dates.
func Layouts(order DateOrder) []string {
	slash := dayFirstLayouts
	if order == MonthFirst {
		slash = monthFirstLayouts
	}
	out := make([]string, 0, len(isoLayouts)+len(slash))
	out = append(out, isoLayouts...)
	return append(out, slash...)
}

// ParseTimestamp parses raw with the first matching layout for order. Blank or
// unparseable input yields fallback.
func ParseTimestamp(raw string, order DateOrder, fallback time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	for _, layout := range Layouts(order) {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return fallback
}
