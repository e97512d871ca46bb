package exporter

import "strconv"

// formatFloat renders a value with exactly 2 decimal places, so 13.4 exports
// as 13.40 and columns stay aligned in spreadsheet tools.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}
