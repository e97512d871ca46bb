package dataprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"bookdash/pkg/contracts/domain"
)

// ErrDataFileNotFound signals that the configured catalog CSV is absent.
// This is fatal for the session: the views render a "file missing" state and
// nothing else.
var ErrDataFileNotFound = errors.New("book data file not found")

// Column names of the catalog export. Header mapping is by exact name.
const (
	colTitle          = "Title"
	colSubtitle       = "Subtitle"
	colAuthor         = "Author"
	colPublisher      = "Publisher"
	colPrice          = "Price"
	colRating         = "Rating"
	colReviewCount    = "Review Count"
	colSalesIndex     = "Sales Index"
	colPublishingDate = "Publishing Date"
)

var requiredColumns = []string{
	colTitle, colSubtitle, colAuthor, colPublisher,
	colPrice, colRating, colReviewCount, colSalesIndex, colPublishingDate,
}

// LoadCatalog reads the catalog CSV at path and returns the prepared table.
// Per-field parse failures leave the field missing and keep the row; only a
// missing file, an unreadable stream, or an incomplete header abort the load.
func LoadCatalog(path string, logger *slog.Logger) ([]domain.BookRecord, error) {
	if logger == nil {
		logger = slog.Default()
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDataFileNotFound, path)
		}
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("catalog header missing column %q", name)
		}
	}

	var (
		books         []domain.BookRecord
		priceFailures int
		dateFailures  int
		line          = 1
	)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog row %d: %w", line+1, err)
		}
		line++

		get := func(name string) string {
			if i := cols[name]; i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}

		b := domain.BookRecord{
			Title:     get(colTitle),
			Subtitle:  get(colSubtitle),
			Author:    get(colAuthor),
			Publisher: get(colPublisher),
		}

		if raw := get(colPrice); raw != "" {
			if p, err := CleanPrice(raw); err == nil {
				b.Price = &p
			} else {
				priceFailures++
				logger.Debug("price parse failed, field left missing",
					slog.Int("line", line),
					slog.String("value", raw))
			}
		}

		b.Rating = ParseOptionalFloat(get(colRating))
		if b.Rating != nil && (*b.Rating < 0 || *b.Rating > 10) {
			// Out-of-domain ratings are treated as missing, not clamped.
			b.Rating = nil
		}
		b.ReviewCount = ParseOptionalFloat(get(colReviewCount))
		b.SalesIndex = ParseSalesIndex(get(colSalesIndex))

		if raw := get(colPublishingDate); raw != "" {
			if t, ok := ParseDate(raw); ok {
				b.PublishedAt = &t
				b.YearMonth = MonthKey(t)
			} else {
				dateFailures++
				logger.Debug("date parse failed, field left missing",
					slog.Int("line", line),
					slog.String("value", raw))
			}
		}

		books = append(books, b)
	}

	logger.Info("catalog loaded",
		slog.String("path", path),
		slog.Int("rows", len(books)),
		slog.Int("price_parse_failures", priceFailures),
		slog.Int("date_parse_failures", dateFailures))

	return books, nil
}
