// Package dataprocessing turns the raw book-catalog CSV export into the
// prepared in-memory table the dashboard views consume.
//
// The package has two halves: field normalization (price strings like
// "15,000원", localized publishing dates, numeric coercion with explicit
// missing-value policy) and the catalog loader that applies the normalizers
// column by column and derives the YearMonth grouping key. Parse failures are
// recovered per field; only a missing file or a malformed header aborts a load.
package dataprocessing
