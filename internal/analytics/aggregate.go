package analytics

import (
	"sort"
	"strings"

	"bookdash/pkg/contracts/domain"
)

// MonthCount is one point of a monthly publishing trend.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// MonthlyCounts groups the table by YearMonth and counts rows per bucket,
// ordered lexicographically by month key. Rows without a YearMonth (missing
// publishing date) drop out of the grouping.
func MonthlyCounts(books []domain.BookRecord) []MonthCount {
	counts := make(map[string]int)
	for _, b := range books {
		if b.YearMonth == "" {
			continue
		}
		counts[b.YearMonth]++
	}
	out := make([]MonthCount, 0, len(counts))
	for month, n := range counts {
		out = append(out, MonthCount{Month: month, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// TopNBy returns up to n rows sorted descending by the given value, stable on
// ties so equal rows keep their original order. Rows where the value is
// missing are ranked below every present value.
func TopNBy(books []domain.BookRecord, n int, value func(domain.BookRecord) (float64, bool)) []domain.BookRecord {
	ranked := make([]domain.BookRecord, len(books))
	copy(ranked, books)
	sort.SliceStable(ranked, func(i, j int) bool {
		vi, oki := value(ranked[i])
		vj, okj := value(ranked[j])
		if oki != okj {
			return oki
		}
		return vi > vj
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// TopNBySalesIndex ranks rows by sales index, descending and stable.
func TopNBySalesIndex(books []domain.BookRecord, n int) []domain.BookRecord {
	return TopNBy(books, n, domain.BookRecord.SalesIndexValue)
}

// TopPublishersByVolume returns the n publisher names with the highest row
// counts, ordered by count descending with name ascending on ties. Rows with
// an empty publisher are excluded.
func TopPublishersByVolume(books []domain.BookRecord, n int) []string {
	counts := make(map[string]int)
	for _, b := range books {
		if b.Publisher == "" {
			continue
		}
		counts[b.Publisher]++
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	if n < len(names) {
		names = names[:n]
	}
	return names
}

// FilterByPublisher returns the rows published by the given publisher.
func FilterByPublisher(books []domain.BookRecord, publisher string) []domain.BookRecord {
	out := make([]domain.BookRecord, 0)
	for _, b := range books {
		if b.Publisher == publisher {
			out = append(out, b)
		}
	}
	return out
}

// GroupMean computes the mean of present values per group. Rows where the
// value is missing are skipped; groups whose values are all missing do not
// appear in the result at all.
func GroupMean(books []domain.BookRecord, groupKey func(domain.BookRecord) string, value func(domain.BookRecord) (float64, bool)) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, b := range books {
		v, ok := value(b)
		if !ok {
			continue
		}
		key := groupKey(b)
		sums[key] += v
		counts[key]++
	}
	means := make(map[string]float64, len(counts))
	for key, n := range counts {
		means[key] = sums[key] / float64(n)
	}
	return means
}

// BinLabel assigns a value the label of the half-open interval (edges[i],
// edges[i+1]] containing it. Values at or below the first edge, or above the
// last, fall outside every bin and report ok=false (the missing category).
// len(labels) must equal len(edges)-1.
func BinLabel(value float64, edges []float64, labels []string) (string, bool) {
	for i := 0; i+1 < len(edges); i++ {
		if value > edges[i] && value <= edges[i+1] {
			return labels[i], true
		}
	}
	return "", false
}

// Price band breakpoints and labels used by the price/rating view. The labels
// come from the source dashboard and are in units of 10,000 won.
var (
	priceBandEdges  = []float64{0, 15000, 25000, 35000, 50000, 100000}
	priceBandLabels = []string{"~1.5만", "1.5~2.5만", "2.5~3.5만", "3.5~5.0만", "5.0만+"}
)

// PriceBandLabels returns the band labels in display order.
func PriceBandLabels() []string {
	out := make([]string, len(priceBandLabels))
	copy(out, priceBandLabels)
	return out
}

// PriceBand assigns a price to its fixed band; ok=false means the price falls
// outside every band and belongs to no category.
func PriceBand(price int) (string, bool) {
	return BinLabel(float64(price), priceBandEdges, priceBandLabels)
}

// KeywordFilter returns the rows whose Title or Subtitle contains the keyword,
// case-insensitively. A missing subtitle is treated as an empty string, never
// as a match failure. An empty keyword returns the input unfiltered.
func KeywordFilter(books []domain.BookRecord, keyword string) []domain.BookRecord {
	if keyword == "" {
		return books
	}
	needle := strings.ToLower(keyword)
	out := make([]domain.BookRecord, 0)
	for _, b := range books {
		if strings.Contains(strings.ToLower(b.Title), needle) ||
			strings.Contains(strings.ToLower(b.Subtitle), needle) {
			out = append(out, b)
		}
	}
	return out
}

// DistinctPublishers returns the set of non-empty publisher names, unsorted.
// Callers that present the list apply collation themselves.
func DistinctPublishers(books []domain.BookRecord) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, b := range books {
		if b.Publisher == "" {
			continue
		}
		if _, ok := seen[b.Publisher]; ok {
			continue
		}
		seen[b.Publisher] = struct{}{}
		out = append(out, b.Publisher)
	}
	return out
}
