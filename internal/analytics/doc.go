// Package analytics provides the pure aggregation helpers the dashboard views
// are built from: month-bucketed counts, stable top-N rankings, group means
// with explicit missing-value policy, price banding, pairwise-complete Pearson
// correlation, keyword filtering and word-frequency extraction.
//
// Every function treats its input slice as read-only and returns fresh data;
// nothing here may mutate the shared catalog snapshot.
package analytics
