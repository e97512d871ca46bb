package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookdash/pkg/contracts/domain"
)

// fakeCatalog serves a fixed snapshot without touching the filesystem.
type fakeCatalog struct {
	books []domain.BookRecord
	err   error
}

func (f *fakeCatalog) Snapshot(ctx context.Context) ([]domain.BookRecord, error) {
	return f.books, f.err
}

func record(title, subtitle, publisher string, price int, rating float64, reviews float64, sales float64, month string) domain.BookRecord {
	b := domain.BookRecord{
		Title:      title,
		Subtitle:   subtitle,
		Publisher:  publisher,
		SalesIndex: sales,
		YearMonth:  month,
	}
	if price > 0 {
		b.Price = &price
	}
	if rating > 0 {
		b.Rating = &rating
	}
	if reviews > 0 {
		b.ReviewCount = &reviews
	}
	if month != "" {
		t, _ := time.Parse("2006-01", month)
		b.PublishedAt = &t
	}
	return b
}

func testBooks() []domain.BookRecord {
	return []domain.BookRecord{
		record("혼자 공부하는 머신러닝", "AI 입문", "한빛미디어", 26000, 9.6, 324, 12345, "2023-05"),
		record("클린 코드", "", "인사이트", 33000, 9.2, 110, 8800, "2022-03"),
		record("Go 언어 핵심", "", "골든래빗", 30800, 0, 88, 4100, "2022-08"),
		record("파이썬 입문서", "기초부터", "한빛미디어", 18000, 8.5, 0, 0, "2023-05"),
	}
}

func newTestDashboard(books []domain.BookRecord) *DashboardService {
	return NewDashboardService(&fakeCatalog{books: books}, nil)
}

func TestHomeView(t *testing.T) {
	payload, err := newTestDashboard(testBooks()).HomeView(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "home", payload.View)
	assert.False(t, payload.Empty)

	require.NotEmpty(t, payload.Metrics)
	assert.Equal(t, "Total Books", payload.Metrics[0].Label)
	assert.Equal(t, "4", payload.Metrics[0].Value)
	assert.Equal(t, "26,950원", payload.Metrics[1].Value, "average of the four priced rows")

	require.Len(t, payload.Sections, 2)
	trend := payload.Sections[0]
	require.NotNil(t, trend.Chart)
	assert.Equal(t, domain.ChartLine, trend.Chart.Type)
	require.Len(t, trend.Chart.Series, 1)
	points := trend.Chart.Series[0].Points
	require.Len(t, points, 3, "three distinct months")
	assert.Equal(t, "2022-03", points[0].Label)
	assert.Equal(t, "2023-05", points[2].Label)
	assert.InDelta(t, 2.0, points[2].Value, 1e-9)

	preview := payload.Sections[1]
	require.NotNil(t, preview.Table)
	assert.Len(t, preview.Table.Rows, 4)
}

func TestHomeViewPropagatesCatalogError(t *testing.T) {
	sentinel := errors.New("boom")
	svc := NewDashboardService(&fakeCatalog{err: sentinel}, nil)
	_, err := svc.HomeView(context.Background())
	assert.ErrorIs(t, err, sentinel)
}

func TestSalesView(t *testing.T) {
	payload, err := newTestDashboard(testBooks()).SalesView(context.Background())
	require.NoError(t, err)

	require.Len(t, payload.Sections, 3)

	top := payload.Sections[0]
	require.NotNil(t, top.Chart)
	assert.Equal(t, domain.ChartHorizontalBar, top.Chart.Type)
	points := top.Chart.Series[0].Points
	require.Len(t, points, 4, "fewer books than the cutoff keeps them all")
	assert.Equal(t, "혼자 공부하는 머신러닝", points[0].Label)
	assert.Equal(t, "파이썬 입문서", points[3].Label, "zero sales index ranks last")

	scatter := payload.Sections[1]
	require.NotNil(t, scatter.Chart)
	assert.Equal(t, domain.ChartScatter, scatter.Chart.Type)
	assert.Len(t, scatter.Chart.Points, 3, "rows without a review count are excluded")
	for _, p := range scatter.Chart.Points {
		if p.Label == "Go 언어 핵심" {
			assert.Nil(t, p.Color, "missing rating leaves the color encoding unset")
		}
	}

	pubs := payload.Sections[2]
	require.NotNil(t, pubs.Chart)
	require.NotEmpty(t, pubs.Chart.Series[0].Points)
	first := pubs.Chart.Series[0].Points[0]
	assert.Equal(t, "인사이트", first.Label, "highest average sales index first")
	assert.InDelta(t, 8800.0, first.Value, 1e-9)
}

func TestPublisherView(t *testing.T) {
	svc := newTestDashboard(testBooks())

	t.Run("unknown publisher", func(t *testing.T) {
		_, err := svc.PublisherView(context.Background(), "없는출판사")
		assert.ErrorIs(t, err, ErrPublisherNotFound)
	})

	t.Run("known publisher", func(t *testing.T) {
		payload, err := svc.PublisherView(context.Background(), "한빛미디어")
		require.NoError(t, err)

		require.NotEmpty(t, payload.Metrics)
		assert.Equal(t, "2", payload.Metrics[0].Value)

		require.Len(t, payload.Sections, 3)
		assert.Equal(t, domain.ChartHistogram, payload.Sections[0].Chart.Type)
		assert.Equal(t, domain.ChartHistogram, payload.Sections[1].Chart.Type)
		assert.Equal(t, domain.ChartBar, payload.Sections[2].Chart.Type)
	})

	t.Run("publisher with no dated rows warns instead of charting", func(t *testing.T) {
		books := []domain.BookRecord{
			record("미출간", "", "신생출판사", 12000, 7.0, 3, 10, ""),
		}
		payload, err := newTestDashboard(books).PublisherView(context.Background(), "신생출판사")
		require.NoError(t, err)

		activity := payload.Sections[2]
		assert.Nil(t, activity.Chart)
		assert.NotEmpty(t, activity.Warning)
	})
}

func TestPriceRatingView(t *testing.T) {
	payload, err := newTestDashboard(testBooks()).PriceRatingView(context.Background())
	require.NoError(t, err)

	require.Len(t, payload.Sections, 3)

	boxes := payload.Sections[0]
	require.NotNil(t, boxes.Chart)
	assert.Equal(t, domain.ChartBox, boxes.Chart.Type)
	assert.Len(t, boxes.Chart.Boxes, 3)

	heat := payload.Sections[1]
	require.NotNil(t, heat.Chart)
	require.NotNil(t, heat.Chart.Heatmap)
	assert.Equal(t, []string{"Price", "Rating", "Review Count", "Sales Index"}, heat.Chart.Heatmap.Labels)
	for _, row := range heat.Chart.Heatmap.Values {
		for _, v := range row {
			assert.False(t, v != v, "heatmap values are JSON-safe, never NaN")
		}
	}
	require.NotNil(t, heat.Table)

	bands := payload.Sections[2]
	require.NotNil(t, bands.Chart)
	points := bands.Chart.Series[0].Points
	require.Len(t, points, 2, "bands with no priced rows are omitted")
	assert.Equal(t, "1.5~2.5만", points[0].Label)
	assert.InDelta(t, 0.0, points[0].Value, 1e-9)
	assert.Equal(t, "2.5~3.5만", points[1].Label)
	assert.InDelta(t, (12345.0+8800.0+4100.0)/3, points[1].Value, 1e-9)
}

func TestSearchView(t *testing.T) {
	svc := newTestDashboard(testBooks())

	t.Run("no matches yields empty payload with warning", func(t *testing.T) {
		payload, err := svc.SearchView(context.Background(), "러스트")
		require.NoError(t, err)
		assert.True(t, payload.Empty)
		assert.NotEmpty(t, payload.Warning)
		assert.Empty(t, payload.Sections)
		assert.Equal(t, "0", payload.Metrics[0].Value)
	})

	t.Run("subtitle matches case-insensitively", func(t *testing.T) {
		payload, err := svc.SearchView(context.Background(), "ai")
		require.NoError(t, err)
		assert.False(t, payload.Empty)
		assert.Equal(t, "1", payload.Metrics[0].Value)

		require.Len(t, payload.Sections, 3)
		cloud := payload.Sections[0]
		require.NotNil(t, cloud.Chart)
		assert.Equal(t, domain.ChartWordCloud, cloud.Chart.Type)
		assert.NotEmpty(t, cloud.Chart.Words)

		listing := payload.Sections[1]
		require.NotNil(t, listing.Table)
		assert.Len(t, listing.Table.Rows, 1)

		stats := payload.Sections[2]
		require.NotNil(t, stats.Table)
		require.NotNil(t, stats.Chart)
		assert.Equal(t, domain.ChartHorizontalBar, stats.Chart.Type)
	})

	t.Run("empty keyword analyzes the whole catalog", func(t *testing.T) {
		payload, err := svc.SearchView(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, "4", payload.Metrics[0].Value)
	})
}

func TestPublishersSorted(t *testing.T) {
	publishers, err := newTestDashboard(testBooks()).Publishers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"골든래빗", "인사이트", "한빛미디어"}, publishers)
}
