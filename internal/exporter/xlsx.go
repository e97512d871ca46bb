package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"bookdash/pkg/contracts/domain"
)

const xlsxSheet = "Books"

// WriteXLSX streams the given rows as an XLSX workbook with a single Books
// sheet. Numeric cells keep their native type so spreadsheet formulas work
// on the export; missing values become empty cells.
func WriteXLSX(w io.Writer, books []domain.BookRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	header := make([]interface{}, len(catalogHeaders))
	for i, h := range catalogHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}

	for i, b := range books {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		row := xlsxRow(b)
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func xlsxRow(b domain.BookRecord) []interface{} {
	row := make([]interface{}, 0, len(catalogHeaders))
	row = append(row, b.Title, b.Subtitle, b.Author, b.Publisher)
	if b.Price != nil {
		row = append(row, *b.Price)
	} else {
		row = append(row, nil)
	}
	if b.Rating != nil {
		row = append(row, *b.Rating)
	} else {
		row = append(row, nil)
	}
	if b.ReviewCount != nil {
		row = append(row, *b.ReviewCount)
	} else {
		row = append(row, nil)
	}
	row = append(row, b.SalesIndex)
	if b.PublishedAt != nil {
		row = append(row, b.PublishedAt.Format("2006-01-02"))
	} else {
		row = append(row, nil)
	}
	return row
}
