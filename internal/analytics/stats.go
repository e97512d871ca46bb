package analytics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"bookdash/pkg/contracts/domain"
)

// Column pairs a display name with a numeric accessor, so callers can name
// the columns of a correlation matrix or a describe table.
type Column struct {
	Name  string
	Value func(domain.BookRecord) (float64, bool)
}

// NumericColumns returns the four numeric catalog columns in their canonical
// order: Price, Rating, Review Count, Sales Index.
func NumericColumns() []Column {
	return []Column{
		{Name: "Price", Value: domain.BookRecord.PriceValue},
		{Name: "Rating", Value: domain.BookRecord.RatingValue},
		{Name: "Review Count", Value: domain.BookRecord.ReviewCountValue},
		{Name: "Sales Index", Value: domain.BookRecord.SalesIndexValue},
	}
}

// CorrelationMatrix computes pairwise Pearson correlation over the given
// columns. For each pair only rows where both values are present are used
// (pairwise-complete observations, not rowwise-complete across all columns).
// Undefined entries (fewer than two complete pairs, or zero variance) are NaN.
func CorrelationMatrix(books []domain.BookRecord, cols []Column) [][]float64 {
	m := make([][]float64, len(cols))
	for i := range cols {
		m[i] = make([]float64, len(cols))
		for j := range cols {
			if j < i {
				m[i][j] = m[j][i]
				continue
			}
			m[i][j] = pairwiseCorrelation(books, cols[i].Value, cols[j].Value)
		}
	}
	return m
}

func pairwiseCorrelation(books []domain.BookRecord, fx, fy func(domain.BookRecord) (float64, bool)) float64 {
	var xs, ys []float64
	for _, b := range books {
		x, okx := fx(b)
		y, oky := fy(b)
		if !okx || !oky {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}

// Describe holds the descriptive statistics of one numeric column, matching
// the usual count/mean/std/min/quartiles/max summary.
type Describe struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// DescribeValues summarizes the given values. ok=false when the input is
// empty. Std is the sample standard deviation and is 0 for a single value.
func DescribeValues(values []float64) (Describe, bool) {
	if len(values) == 0 {
		return Describe{}, false
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	d := Describe{
		Count:  len(sorted),
		Mean:   stat.Mean(sorted, nil),
		Min:    sorted[0],
		Q1:     quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q3:     quantile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
	}
	if len(sorted) > 1 {
		d.Std = stat.StdDev(sorted, nil)
	}
	return d, true
}

// quantile interpolates linearly at position p*(n-1) of the sorted values,
// the convention of the usual describe tables. gonum's Quantile cumulant
// kinds follow the empirical CDF instead and land on different values.
func quantile(sorted []float64, p float64) float64 {
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// PresentValues collects the present values of a column over the table.
func PresentValues(books []domain.BookRecord, value func(domain.BookRecord) (float64, bool)) []float64 {
	out := make([]float64, 0, len(books))
	for _, b := range books {
		if v, ok := value(b); ok {
			out = append(out, v)
		}
	}
	return out
}

// MeanOf computes the mean of present values; ok=false when none are present.
func MeanOf(books []domain.BookRecord, value func(domain.BookRecord) (float64, bool)) (float64, bool) {
	vals := PresentValues(books, value)
	if len(vals) == 0 {
		return 0, false
	}
	return stat.Mean(vals, nil), true
}

// SumOf computes the sum of present values.
func SumOf(books []domain.BookRecord, value func(domain.BookRecord) (float64, bool)) float64 {
	var sum float64
	for _, b := range books {
		if v, ok := value(b); ok {
			sum += v
		}
	}
	return sum
}

// Histogram bins values into nbins equal-width intervals between the observed
// min and max. Intervals are [lo, hi) with the final bin closed on the right
// so the maximum lands in the last bin. A single distinct value yields one bin.
func Histogram(values []float64, nbins int) []domain.HistogramBin {
	if len(values) == 0 || nbins <= 0 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return HistogramRange(values, nbins, lo, hi)
}

// HistogramRange bins values into nbins equal-width intervals over [lo, hi].
// Values outside the range are ignored.
func HistogramRange(values []float64, nbins int, lo, hi float64) []domain.HistogramBin {
	if len(values) == 0 || nbins <= 0 || hi < lo {
		return nil
	}
	if hi == lo {
		bin := domain.HistogramBin{Lo: lo, Hi: hi}
		for _, v := range values {
			if v == lo {
				bin.Count++
			}
		}
		return []domain.HistogramBin{bin}
	}
	width := (hi - lo) / float64(nbins)
	bins := make([]domain.HistogramBin, nbins)
	for i := range bins {
		bins[i].Lo = lo + float64(i)*width
		bins[i].Hi = lo + float64(i+1)*width
	}
	bins[nbins-1].Hi = hi
	for _, v := range values {
		if v < lo || v > hi {
			continue
		}
		idx := int((v - lo) / width)
		if idx >= nbins {
			idx = nbins - 1
		}
		bins[idx].Count++
	}
	return bins
}

// BoxStatsFor computes the five-number summary of values for one box of a box
// plot. ok=false when values is empty.
func BoxStatsFor(group string, values []float64) (domain.BoxStats, bool) {
	d, ok := DescribeValues(values)
	if !ok {
		return domain.BoxStats{}, false
	}
	return domain.BoxStats{
		Group:  group,
		Min:    d.Min,
		Q1:     d.Q1,
		Median: d.Median,
		Q3:     d.Q3,
		Max:    d.Max,
		Count:  d.Count,
	}, true
}
