package dataprocessing

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// monthLayout matches the dominant "2023년 05월" form of the source export.
// The month verb is unpadded so "2023년 5월" parses as well.
const monthLayout = "2006년 1월"

// fallbackLayouts are tried in order when the localized month form fails.
var fallbackLayouts = []string{
	"2006년 1월 2일",
	"2006-01-02",
	"2006-01",
	"2006.01.02",
	"2006/01/02",
	"2006.01",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006",
}

// CleanPrice normalizes a price cell to an integer amount of currency units.
// It strips thousands separators and a trailing "원" marker; already-numeric
// strings pass through unchanged. Any non-numeric residue after stripping is
// an error so the caller can fail the field rather than keep a wrong number.
func CleanPrice(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "원")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty price value %q", raw)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("malformed price %q: %w", raw, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative price %q", raw)
	}
	return n, nil
}

// ParseDate attempts the localized year-month form first and then a set of
// lenient fallbacks. It never returns an error: an unparsable date is simply
// reported as absent so a single malformed row cannot abort a catalog load.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(monthLayout, s); err == nil {
		return t, true
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseOptionalFloat coerces a numeric cell, returning nil for empty or
// non-numeric values. Missing means missing, not zero: averages over the
// column must skip these rows entirely.
func ParseOptionalFloat(raw string) *float64 {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// ParseSalesIndex coerces the sales index cell. Unlike the other numeric
// columns a missing or malformed sales index becomes a hard 0, because the
// ranking views treat "no index" as "ranks lowest" rather than "unknown".
func ParseSalesIndex(raw string) float64 {
	if v := ParseOptionalFloat(raw); v != nil {
		return *v
	}
	return 0
}

// MonthKey derives the month-granularity grouping key used by trend charts.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
