// Package services wires the prepared catalog table to the dashboard.
//
// CatalogService owns the load-once lifecycle of the catalog CSV;
// DashboardService builds the render specifications for the five views
// (home, sales, publisher, price/rating, search) from an immutable snapshot.
// View builders are pure with respect to the snapshot: every derived value is
// computed per call and nothing is written back to shared state.
package services
