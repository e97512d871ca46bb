package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"bookdash/pkg/contracts/domain"
)

// utf8BOM helps Excel recognize UTF-8 encoded Korean text.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// catalogHeaders are the export columns, matching the source table layout.
var catalogHeaders = []string{
	"Title", "Subtitle", "Author", "Publisher",
	"Price", "Rating", "Review Count", "Sales Index", "Publishing Date",
}

// WriteCSV streams the given rows as BOM-prefixed CSV.
func WriteCSV(w io.Writer, books []domain.BookRecord) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(catalogHeaders); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	for i, b := range books {
		if err := cw.Write(bookRow(b)); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// bookRow renders one record as export cells. Missing values stay empty
// rather than being zero-filled, so the export round-trips the nullability
// of the source.
func bookRow(b domain.BookRecord) []string {
	row := make([]string, 0, len(catalogHeaders))
	row = append(row, b.Title, b.Subtitle, b.Author, b.Publisher)
	if b.Price != nil {
		row = append(row, formatInt(int64(*b.Price)))
	} else {
		row = append(row, "")
	}
	if b.Rating != nil {
		row = append(row, formatFloat(*b.Rating))
	} else {
		row = append(row, "")
	}
	if b.ReviewCount != nil {
		row = append(row, formatFloat(*b.ReviewCount))
	} else {
		row = append(row, "")
	}
	row = append(row, formatFloat(b.SalesIndex))
	if b.PublishedAt != nil {
		row = append(row, b.PublishedAt.Format("2006-01-02"))
	} else {
		row = append(row, "")
	}
	return row
}
