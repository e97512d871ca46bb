package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"bookdash/internal/analytics"
	"bookdash/pkg/contracts/domain"
)

// DashboardService builds render specifications for the five dashboard views.
type DashboardService struct {
	catalog  CatalogReader
	logger   *slog.Logger
	collator *collate.Collator
}

// NewDashboardService creates a dashboard service over the given catalog.
func NewDashboardService(catalog CatalogReader, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		catalog:  catalog,
		logger:   logger.With(slog.String("component", "dashboard_service")),
		collator: collate.New(language.Korean),
	}
}

// Publishers returns the distinct publisher names, collated for display in
// the publisher drill-down select.
func (s *DashboardService) Publishers(ctx context.Context) ([]string, error) {
	books, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	names := analytics.DistinctPublishers(books)
	s.collator.SortStrings(names)
	return names, nil
}

// HomeView builds the whole-table summary and the monthly publishing trend.
func (s *DashboardService) HomeView(ctx context.Context) (*domain.ViewPayload, error) {
	books, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	payload := &domain.ViewPayload{
		View:    "home",
		Title:   "IT Book Analytics Dashboard",
		Metrics: summaryMetrics(books),
	}

	trend := analytics.MonthlyCounts(books)
	trendChart := &domain.ChartSpec{
		Type:   domain.ChartLine,
		Title:  "Monthly Publishing Trend",
		XField: "YearMonth",
		YField: "Count",
		Series: []domain.Series{monthSeries("Books", trend)},
	}
	payload.Sections = append(payload.Sections, domain.Section{
		Title: "Monthly Publishing Trend",
		Note:  "Publication volume per month; spikes hint at seasonality such as new-semester releases.",
		Chart: trendChart,
		Table: monthTable(trend),
	})

	preview := books
	if len(preview) > 20 {
		preview = preview[:20]
	}
	payload.Sections = append(payload.Sections, domain.Section{
		Title: "Data Preview",
		Table: listingTable("First 20 Rows", preview),
	})

	return payload, nil
}

// SalesView builds the sales-ranking view: top-20 by sales index, the sales
// vs review scatter, and the per-publisher average among the ten publishers
// with the most titles.
func (s *DashboardService) SalesView(ctx context.Context) (*domain.ViewPayload, error) {
	books, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	payload := &domain.ViewPayload{
		View:  "sales",
		Title: "Sales & Ranking",
	}

	top := analytics.TopNBySalesIndex(books, 20)
	bar := &domain.ChartSpec{
		Type:   domain.ChartHorizontalBar,
		Title:  "Top 20 Books by Sales Index",
		XField: "Sales Index",
		YField: "Title",
		Series: []domain.Series{{Name: "Sales Index", Points: titleSalesPoints(top)}},
	}
	payload.Sections = append(payload.Sections, domain.Section{
		Title: "Top 20 by Sales Index",
		Note:  "The sales index is the most direct popularity signal; the leaders show which topics carry the market.",
		Chart: bar,
		Table: rankingTable(top),
	})

	scatter := &domain.ChartSpec{
		Type:       domain.ChartScatter,
		Title:      "Sales Index vs Review Count",
		XField:     "Review Count",
		YField:     "Sales Index",
		ColorField: "Rating",
		SizeField:  "Price",
		Points:     salesReviewPoints(books),
	}
	payload.Sections = append(payload.Sections, domain.Section{
		Title: "Sales Index vs Review Count",
		Note:  "Outliers matter here: few reviews but a high index marks a quiet seller, many reviews with a low index the reverse.",
		Chart: scatter,
	})

	topPubs := analytics.TopPublishersByVolume(books, 10)
	means := analytics.GroupMean(books,
		func(b domain.BookRecord) string { return b.Publisher },
		domain.BookRecord.SalesIndexValue)
	points := publisherMeanPoints(topPubs, means)
	payload.Sections = append(payload.Sections, domain.Section{
		Title: "Average Sales Index by Top 10 Publishers",
		Note:  "Publishers are scoped to the ten with the most titles so the averages rest on meaningful volume.",
		Chart: &domain.ChartSpec{
			Type:   domain.ChartBar,
			Title:  "Average Sales Index by Top 10 Publishers",
			XField: "Publisher",
			YField: "Sales Index",
			Series: []domain.Series{{Name: "Average Sales Index", Points: points}},
		},
		Table: pointTable("Average Sales Index", "Publisher", "Average Sales Index", points),
	})

	return payload, nil
}

// PublisherView builds the drill-down for one publisher. An unknown name
// (no rows in the catalog) returns ErrPublisherNotFound.
func (s *DashboardService) PublisherView(ctx context.Context, publisher string) (*domain.ViewPayload, error) {
	books, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	pub := analytics.FilterByPublisher(books, publisher)
	if len(pub) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrPublisherNotFound, publisher)
	}

	payload := &domain.ViewPayload{
		View:  "publisher",
		Title: fmt.Sprintf("Publisher Insights: %s", publisher),
	}

	payload.Metrics = append(payload.Metrics,
		domain.Metric{Label: "Books Published", Value: groupThousands(int64(len(pub)))})
	if mean, ok := analytics.MeanOf(pub, domain.BookRecord.SalesIndexValue); ok {
		payload.Metrics = append(payload.Metrics,
			domain.Metric{Label: "Average Sales Index", Value: groupThousands(int64(math.Round(mean)))})
	}
	if mean, ok := analytics.MeanOf(pub, domain.BookRecord.RatingValue); ok {
		payload.Metrics = append(payload.Metrics,
			domain.Metric{Label: "Average Rating", Value: formatFloat(mean, 1)})
	}

	prices := analytics.PresentValues(pub, domain.BookRecord.PriceValue)
	priceSection := domain.Section{
		Title: "Price Distribution",
		Note:  "Whether the list clusters in one band or spans budget to premium shows the pricing policy.",
	}
	if bins := analytics.Histogram(prices, 20); len(bins) > 0 {
		priceSection.Chart = &domain.ChartSpec{
			Type:   domain.ChartHistogram,
			Title:  fmt.Sprintf("Price Distribution for %s", publisher),
			XField: "Price",
			Bins:   bins,
		}
		if d, ok := analytics.DescribeValues(prices); ok {
			priceSection.Table = describeTable("Price Summary", map[string]analytics.Describe{"Price": d})
		}
	} else {
		priceSection.Warning = "No priced rows to chart."
	}
	payload.Sections = append(payload.Sections, priceSection)

	ratings := analytics.PresentValues(pub, domain.BookRecord.RatingValue)
	ratingSection := domain.Section{
		Title: "Rating Distribution",
		Note:  "Consistently high ratings signal solid editorial quality control.",
	}
	if bins := analytics.HistogramRange(ratings, 10, 0, 10); len(bins) > 0 {
		ratingSection.Chart = &domain.ChartSpec{
			Type:   domain.ChartHistogram,
			Title:  fmt.Sprintf("Rating Distribution for %s", publisher),
			XField: "Rating",
			Bins:   bins,
		}
	} else {
		ratingSection.Warning = "No rated rows to chart."
	}
	payload.Sections = append(payload.Sections, ratingSection)

	trend := analytics.MonthlyCounts(pub)
	activitySection := domain.Section{
		Title: "Publishing Activity Over Time",
		Note:  "A steady stream of new titles matters for partnership and competition analysis.",
	}
	if len(trend) > 0 {
		activitySection.Chart = &domain.ChartSpec{
			Type:   domain.ChartBar,
			Title:  fmt.Sprintf("Publishing Activity Over Time (%s)", publisher),
			XField: "YearMonth",
			YField: "Count",
			Series: []domain.Series{monthSeries("Books", trend)},
		}
		activitySection.Table = monthTable(trend)
	} else {
		activitySection.Warning = "Not enough dated rows to chart publishing activity."
	}
	payload.Sections = append(payload.Sections, activitySection)

	return payload, nil
}

// PriceRatingView builds the price/rating correlation view: box plots over
// the top publishers, the correlation heatmap, and the price-band averages.
func (s *DashboardService) PriceRatingView(ctx context.Context) (*domain.ViewPayload, error) {
	books, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	payload := &domain.ViewPayload{
		View:  "price-rating",
		Title: "Price & Rating Correlation",
	}

	topPubs := analytics.TopPublishersByVolume(books, 10)
	var boxes []domain.BoxStats
	for _, name := range topPubs {
		prices := analytics.PresentValues(analytics.FilterByPublisher(books, name), domain.BookRecord.PriceValue)
		if box, ok := analytics.BoxStatsFor(name, prices); ok {
			boxes = append(boxes, box)
		}
	}
	payload.Sections = append(payload.Sections, domain.Section{
		Title: "Price Distribution by Top 10 Publishers",
		Note:  "Box position reads as pricing level, box length as pricing spread.",
		Chart: &domain.ChartSpec{
			Type:   domain.ChartBox,
			Title:  "Price Distribution by Top 10 Publishers",
			XField: "Publisher",
			YField: "Price",
			Boxes:  boxes,
		},
	})

	cols := analytics.NumericColumns()
	corr := analytics.CorrelationMatrix(books, cols)
	labels := make([]string, len(cols))
	for i, c := range cols {
		labels[i] = c.Name
	}
	payload.Sections = append(payload.Sections, domain.Section{
		Title: "Correlation Heatmap",
		Note:  "Pairwise Pearson correlation over present values; +1 is a strong positive relation, -1 a strong negative one.",
		Chart: &domain.ChartSpec{
			Type:    domain.ChartHeatmap,
			Title:   "Correlation Heatmap",
			Heatmap: &domain.HeatmapData{Labels: labels, Values: sanitizeMatrix(corr)},
		},
		Table: correlationTable(labels, corr),
	})

	bandMeans := analytics.GroupMean(books,
		func(b domain.BookRecord) string {
			p, ok := b.PriceValue()
			if !ok {
				return ""
			}
			band, ok := analytics.PriceBand(int(p))
			if !ok {
				return ""
			}
			return band
		},
		domain.BookRecord.SalesIndexValue)
	delete(bandMeans, "")

	var bandPoints []domain.Point
	for _, label := range analytics.PriceBandLabels() {
		if mean, ok := bandMeans[label]; ok {
			bandPoints = append(bandPoints, domain.Point{Label: label, Value: mean})
		}
	}
	payload.Sections = append(payload.Sections, domain.Section{
		Title: "Average Sales Index by Price Range",
		Note:  "Fixed won-denominated bands surface the price point readers actually favor.",
		Chart: &domain.ChartSpec{
			Type:   domain.ChartBar,
			Title:  "Average Sales Index by Price Range",
			XField: "Price Range",
			YField: "Sales Index",
			Series: []domain.Series{{Name: "Average Sales Index", Points: bandPoints}},
		},
		Table: pointTable("Average Sales Index by Price Range", "Price Range", "Average Sales Index", bandPoints),
	})

	return payload, nil
}

// SearchView builds the keyword-search view. An empty keyword analyzes the
// whole table; zero matches produce an empty payload with a warning instead
// of broken chart specs.
func (s *DashboardService) SearchView(ctx context.Context, keyword string) (*domain.ViewPayload, error) {
	books, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	matches := analytics.KeywordFilter(books, keyword)

	payload := &domain.ViewPayload{
		View:  "search",
		Title: "Keyword Search & Analysis",
		Metrics: []domain.Metric{
			{Label: "Matching Books", Value: groupThousands(int64(len(matches)))},
		},
	}

	if len(matches) == 0 {
		payload.Empty = true
		payload.Warning = fmt.Sprintf("No books matched %q.", keyword)
		return payload, nil
	}

	var sb strings.Builder
	for _, b := range matches {
		sb.WriteString(b.Title)
		sb.WriteByte(' ')
		sb.WriteString(b.Subtitle)
		sb.WriteByte(' ')
	}
	cloudSection := domain.Section{
		Title: "Title Word Cloud",
		Note:  "The most frequent words across matching titles; bigger means more common.",
	}
	if freq := analytics.WordFrequency(sb.String()); len(freq) > 0 {
		cloudSection.Chart = &domain.ChartSpec{
			Type:  domain.ChartWordCloud,
			Title: "Title Word Cloud",
			Words: analytics.TopWords(freq, 100),
		}
	} else {
		cloudSection.Warning = "Not enough text to build a word cloud."
	}
	payload.Sections = append(payload.Sections, cloudSection)

	payload.Sections = append(payload.Sections, domain.Section{
		Title: "Matching Books",
		Table: listingTable("Matching Books", matches),
	})

	stats := make(map[string]analytics.Describe)
	for _, col := range []analytics.Column{
		{Name: "Price", Value: domain.BookRecord.PriceValue},
		{Name: "Rating", Value: domain.BookRecord.RatingValue},
		{Name: "Sales Index", Value: domain.BookRecord.SalesIndexValue},
	} {
		if d, ok := analytics.DescribeValues(analytics.PresentValues(matches, col.Value)); ok {
			stats[col.Name] = d
		}
	}
	statsSection := domain.Section{
		Title: "Result Statistics",
		Note:  "Compare against the whole catalog to see whether these books run pricier or more popular.",
		Table: describeTable("Result Statistics", stats),
	}

	topFive := analytics.TopNBySalesIndex(matches, 5)
	statsSection.Chart = &domain.ChartSpec{
		Type:   domain.ChartHorizontalBar,
		Title:  "Top 5 Sales in Search Result",
		XField: "Sales Index",
		YField: "Title",
		Series: []domain.Series{{Name: "Sales Index", Points: titleSalesPoints(topFive)}},
	}
	payload.Sections = append(payload.Sections, statsSection)

	return payload, nil
}

// summaryMetrics builds the headline tiles of the home view.
func summaryMetrics(books []domain.BookRecord) []domain.Metric {
	metrics := []domain.Metric{
		{Label: "Total Books", Value: groupThousands(int64(len(books)))},
	}
	if mean, ok := analytics.MeanOf(books, domain.BookRecord.PriceValue); ok {
		metrics = append(metrics, domain.Metric{
			Label: "Average Price",
			Value: groupThousands(int64(math.Round(mean))) + "원",
		})
	}
	if mean, ok := analytics.MeanOf(books, domain.BookRecord.RatingValue); ok {
		metrics = append(metrics, domain.Metric{Label: "Average Rating", Value: formatFloat(mean, 1)})
	}
	total := analytics.SumOf(books, domain.BookRecord.ReviewCountValue)
	metrics = append(metrics, domain.Metric{Label: "Total Reviews", Value: groupThousands(int64(total))})
	return metrics
}

func monthSeries(name string, trend []analytics.MonthCount) domain.Series {
	points := make([]domain.Point, len(trend))
	for i, mc := range trend {
		points[i] = domain.Point{Label: mc.Month, Value: float64(mc.Count)}
	}
	return domain.Series{Name: name, Points: points}
}

func monthTable(trend []analytics.MonthCount) *domain.TableSpec {
	rows := make([][]string, len(trend))
	for i, mc := range trend {
		rows[i] = []string{mc.Month, strconv.Itoa(mc.Count)}
	}
	return &domain.TableSpec{
		Title:   "Monthly Counts",
		Columns: []string{"YearMonth", "Count"},
		Rows:    rows,
	}
}

func titleSalesPoints(books []domain.BookRecord) []domain.Point {
	points := make([]domain.Point, len(books))
	for i, b := range books {
		points[i] = domain.Point{Label: b.Title, Value: b.SalesIndex}
	}
	return points
}

func rankingTable(books []domain.BookRecord) *domain.TableSpec {
	rows := make([][]string, len(books))
	for i, b := range books {
		rows[i] = []string{b.Title, formatFloat(b.SalesIndex, 0), b.Publisher, b.Author}
	}
	return &domain.TableSpec{
		Title:   "Top Books",
		Columns: []string{"Title", "Sales Index", "Publisher", "Author"},
		Rows:    rows,
	}
}

// salesReviewPoints keeps only rows with a present review count; the sales
// index is always present by construction.
func salesReviewPoints(books []domain.BookRecord) []domain.ScatterPoint {
	points := make([]domain.ScatterPoint, 0, len(books))
	for _, b := range books {
		x, ok := b.ReviewCountValue()
		if !ok {
			continue
		}
		p := domain.ScatterPoint{X: x, Y: b.SalesIndex, Label: b.Title, Color: b.Rating}
		if b.Price != nil {
			size := float64(*b.Price)
			p.Size = &size
		}
		points = append(points, p)
	}
	return points
}

// publisherMeanPoints orders the given publishers by mean descending.
func publisherMeanPoints(publishers []string, means map[string]float64) []domain.Point {
	points := make([]domain.Point, 0, len(publishers))
	for _, name := range publishers {
		if mean, ok := means[name]; ok {
			points = append(points, domain.Point{Label: name, Value: mean})
		}
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Value > points[j].Value })
	return points
}

func pointTable(title, keyCol, valueCol string, points []domain.Point) *domain.TableSpec {
	rows := make([][]string, len(points))
	for i, p := range points {
		rows[i] = []string{p.Label, formatFloat(p.Value, 2)}
	}
	return &domain.TableSpec{
		Title:   title,
		Columns: []string{keyCol, valueCol},
		Rows:    rows,
	}
}

func correlationTable(labels []string, matrix [][]float64) *domain.TableSpec {
	rows := make([][]string, len(matrix))
	for i, row := range matrix {
		cells := make([]string, 0, len(row)+1)
		cells = append(cells, labels[i])
		for _, v := range row {
			if math.IsNaN(v) {
				cells = append(cells, "")
			} else {
				cells = append(cells, formatFloat(v, 3))
			}
		}
		rows[i] = cells
	}
	return &domain.TableSpec{
		Title:   "Correlation Matrix",
		Columns: append([]string{""}, labels...),
		Rows:    rows,
	}
}

var describeRows = []struct {
	label string
	value func(analytics.Describe) float64
}{
	{"count", func(d analytics.Describe) float64 { return float64(d.Count) }},
	{"mean", func(d analytics.Describe) float64 { return d.Mean }},
	{"std", func(d analytics.Describe) float64 { return d.Std }},
	{"min", func(d analytics.Describe) float64 { return d.Min }},
	{"25%", func(d analytics.Describe) float64 { return d.Q1 }},
	{"50%", func(d analytics.Describe) float64 { return d.Median }},
	{"75%", func(d analytics.Describe) float64 { return d.Q3 }},
	{"max", func(d analytics.Describe) float64 { return d.Max }},
}

func describeTable(title string, stats map[string]analytics.Describe) *domain.TableSpec {
	cols := make([]string, 0, len(stats))
	for name := range stats {
		cols = append(cols, name)
	}
	sort.Strings(cols)

	rows := make([][]string, 0, len(describeRows))
	for _, dr := range describeRows {
		row := []string{dr.label}
		for _, name := range cols {
			row = append(row, formatFloat(dr.value(stats[name]), 2))
		}
		rows = append(rows, row)
	}
	return &domain.TableSpec{
		Title:   title,
		Columns: append([]string{"stat"}, cols...),
		Rows:    rows,
	}
}

func listingTable(title string, books []domain.BookRecord) *domain.TableSpec {
	rows := make([][]string, len(books))
	for i, b := range books {
		price, rating, published := "", "", ""
		if b.Price != nil {
			price = groupThousands(int64(*b.Price))
		}
		if b.Rating != nil {
			rating = formatFloat(*b.Rating, 1)
		}
		if b.PublishedAt != nil {
			published = b.PublishedAt.Format("2006-01-02")
		}
		rows[i] = []string{b.Title, b.Publisher, price, rating, formatFloat(b.SalesIndex, 0), published}
	}
	return &domain.TableSpec{
		Title:   title,
		Columns: []string{"Title", "Publisher", "Price", "Rating", "Sales Index", "Publishing Date"},
		Rows:    rows,
	}
}

// sanitizeMatrix replaces NaN entries with 0 so the heatmap payload stays
// valid JSON; the table rendering keeps undefined cells blank instead.
func sanitizeMatrix(matrix [][]float64) [][]float64 {
	out := make([][]float64, len(matrix))
	for i, row := range matrix {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			if math.IsNaN(v) {
				out[i][j] = 0
			} else {
				out[i][j] = v
			}
		}
	}
	return out
}

// groupThousands formats n with comma separators.
func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var sb strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	if neg {
		return "-" + sb.String()
	}
	return sb.String()
}

func formatFloat(v float64, dec int) string {
	return strconv.FormatFloat(v, 'f', dec, 64)
}
