package exporter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookdash/pkg/contracts/domain"
)

func TestWriteCSV(t *testing.T) {
	price := 26000
	rating := 9.6
	reviews := 324.0
	published := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)

	books := []domain.BookRecord{
		{
			Title:       "혼자 공부하는 머신러닝",
			Subtitle:    "AI 입문",
			Author:      "박해선",
			Publisher:   "한빛미디어",
			Price:       &price,
			Rating:      &rating,
			ReviewCount: &reviews,
			SalesIndex:  12345,
			PublishedAt: &published,
		},
		{
			Title:      "클린 코드",
			Publisher:  "인사이트",
			SalesIndex: 0,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, books))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "\ufeff"), "BOM prefix for Excel")

	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, "\ufeff")))
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"Title", "Subtitle", "Author", "Publisher",
		"Price", "Rating", "Review Count", "Sales Index", "Publishing Date",
	}, rows[0])

	assert.Equal(t, []string{
		"혼자 공부하는 머신러닝", "AI 입문", "박해선", "한빛미디어",
		"26000", "9.60", "324.00", "12345.00", "2023-05-01",
	}, rows[1])

	// Missing fields export as empty cells, never as zeros.
	assert.Equal(t, []string{
		"클린 코드", "", "", "인사이트",
		"", "", "", "0.00", "",
	}, rows[2])
}

func TestWriteCSVEmptyCatalog(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	out := strings.TrimPrefix(buf.String(), "\ufeff")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 1, "header only")
}
