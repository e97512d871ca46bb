package exporter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"bookdash/pkg/contracts/domain"
)

func TestWriteXLSX(t *testing.T) {
	price := 30800
	books := []domain.BookRecord{
		{Title: "Go 언어 핵심", Publisher: "골든래빗", Price: &price, SalesIndex: 4100},
		{Title: "클린 코드", Publisher: "인사이트"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, books))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Books"}, f.GetSheetList())

	title, err := f.GetCellValue("Books", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Go 언어 핵심", title)

	cell, err := f.GetCellValue("Books", "E2")
	require.NoError(t, err)
	assert.Equal(t, "30800", cell)

	missing, err := f.GetCellValue("Books", "E3")
	require.NoError(t, err)
	assert.Empty(t, missing, "missing price stays an empty cell")
}
