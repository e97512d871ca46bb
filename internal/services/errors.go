package services

import "errors"

// Service-level sentinel errors. Transport maps these onto problem responses.
var (
	// ErrPublisherNotFound signals a publisher drill-down request for a name
	// that has no rows in the catalog.
	ErrPublisherNotFound = errors.New("publisher not found in catalog")
)
