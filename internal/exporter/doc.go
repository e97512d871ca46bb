// Package exporter serializes catalog rows for download. CSV output carries a
// UTF-8 BOM so Excel opens the Korean text correctly; XLSX goes through
// excelize. Both writers stream to an io.Writer and never touch the
// filesystem, so handlers can pipe them straight into the response body.
package exporter
