package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookdash/pkg/contracts/domain"
)

func TestCorrelationMatrix(t *testing.T) {
	// Price and rating move together perfectly; review count is missing on
	// most rows so the price/review pair has fewer than two observations.
	books := []domain.BookRecord{
		book("a", "p", intPtr(10000), fPtr(1), 100, ""),
		book("b", "p", intPtr(20000), fPtr(2), 200, ""),
		book("c", "p", intPtr(30000), fPtr(3), 300, ""),
	}
	books[0].ReviewCount = fPtr(50)

	cols := []Column{
		{Name: "Price", Value: domain.BookRecord.PriceValue},
		{Name: "Rating", Value: domain.BookRecord.RatingValue},
		{Name: "Review Count", Value: domain.BookRecord.ReviewCountValue},
	}
	m := CorrelationMatrix(books, cols)
	require.Len(t, m, 3)

	assert.InDelta(t, 1.0, m[0][0], 1e-9, "diagonal is 1 for varying columns")
	assert.InDelta(t, 1.0, m[0][1], 1e-9, "perfect linear relation")
	assert.InDelta(t, m[1][0], m[0][1], 1e-12, "matrix is symmetric")
	assert.True(t, math.IsNaN(m[0][2]), "single complete pair is undefined")
	assert.True(t, math.IsNaN(m[2][2]), "one observation has no variance")
}

func TestCorrelationMatrixPairwiseComplete(t *testing.T) {
	// Rows missing one column still contribute to pairs among the others.
	books := []domain.BookRecord{
		book("a", "p", intPtr(10), fPtr(5), 0, ""),
		book("b", "p", intPtr(20), fPtr(3), 0, ""),
		book("c", "p", nil, fPtr(4), 0, ""),
		book("d", "p", intPtr(30), fPtr(1), 0, ""),
	}
	cols := []Column{
		{Name: "Price", Value: domain.BookRecord.PriceValue},
		{Name: "Rating", Value: domain.BookRecord.RatingValue},
	}
	m := CorrelationMatrix(books, cols)
	assert.False(t, math.IsNaN(m[0][1]))
	assert.Less(t, m[0][1], 0.0, "price up, rating down")
}

func TestNumericColumnsOrder(t *testing.T) {
	names := make([]string, 0, 4)
	for _, c := range NumericColumns() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Price", "Rating", "Review Count", "Sales Index"}, names)
}

func TestDescribeValues(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, ok := DescribeValues(nil)
		assert.False(t, ok)
	})

	t.Run("single value has zero std", func(t *testing.T) {
		d, ok := DescribeValues([]float64{42})
		require.True(t, ok)
		assert.Equal(t, 1, d.Count)
		assert.Zero(t, d.Std)
		assert.InDelta(t, 42.0, d.Median, 1e-9)
	})

	t.Run("known quartiles", func(t *testing.T) {
		d, ok := DescribeValues([]float64{4, 1, 3, 2, 5})
		require.True(t, ok)
		assert.Equal(t, 5, d.Count)
		assert.InDelta(t, 3.0, d.Mean, 1e-9)
		assert.InDelta(t, 1.0, d.Min, 1e-9)
		assert.InDelta(t, 2.0, d.Q1, 1e-9)
		assert.InDelta(t, 3.0, d.Median, 1e-9)
		assert.InDelta(t, 4.0, d.Q3, 1e-9)
		assert.InDelta(t, 5.0, d.Max, 1e-9)
		assert.InDelta(t, math.Sqrt(2.5), d.Std, 1e-9, "sample standard deviation")
	})
}

func TestMeanOfAndSumOf(t *testing.T) {
	books := []domain.BookRecord{
		book("a", "p", intPtr(10000), nil, 100, ""),
		book("b", "p", intPtr(30000), nil, 0, ""),
		book("c", "p", nil, nil, 50, ""),
	}

	mean, ok := MeanOf(books, domain.BookRecord.PriceValue)
	require.True(t, ok)
	assert.InDelta(t, 20000.0, mean, 1e-9, "missing price skipped")

	_, ok = MeanOf(books, domain.BookRecord.RatingValue)
	assert.False(t, ok, "no ratings present")

	salesMean, ok := MeanOf(books, domain.BookRecord.SalesIndexValue)
	require.True(t, ok)
	assert.InDelta(t, 50.0, salesMean, 1e-9, "zero-filled sales index counts the zero")

	assert.InDelta(t, 150.0, SumOf(books, domain.BookRecord.SalesIndexValue), 1e-9)
}

func TestHistogram(t *testing.T) {
	t.Run("auto range", func(t *testing.T) {
		bins := Histogram([]float64{0, 1, 2, 3, 4, 5, 6, 7, 7, 10}, 5)
		require.Len(t, bins, 5)
		assert.InDelta(t, 0.0, bins[0].Lo, 1e-9)
		assert.InDelta(t, 10.0, bins[4].Hi, 1e-9)

		total := 0
		for _, b := range bins {
			total += b.Count
		}
		assert.Equal(t, 10, total, "every value lands in a bin")
		assert.Equal(t, 1, bins[4].Count, "maximum lands in the closed last bin")
	})

	t.Run("single distinct value", func(t *testing.T) {
		bins := Histogram([]float64{7, 7, 7}, 10)
		require.Len(t, bins, 1)
		assert.Equal(t, 3, bins[0].Count)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, Histogram(nil, 5))
	})
}

func TestHistogramRange(t *testing.T) {
	bins := HistogramRange([]float64{0, 5, 9.9, 10, 12}, 10, 0, 10)
	require.Len(t, bins, 10)

	total := 0
	for _, b := range bins {
		total += b.Count
	}
	assert.Equal(t, 4, total, "out-of-range value ignored")
	assert.Equal(t, 2, bins[9].Count, "9.9 and the inclusive max share the last bin")
}

func TestBoxStatsFor(t *testing.T) {
	box, ok := BoxStatsFor("한빛미디어", []float64{1, 2, 3, 4, 5})
	require.True(t, ok)
	assert.Equal(t, "한빛미디어", box.Group)
	assert.InDelta(t, 3.0, box.Median, 1e-9)
	assert.Equal(t, 5, box.Count)

	_, ok = BoxStatsFor("empty", nil)
	assert.False(t, ok)
}
