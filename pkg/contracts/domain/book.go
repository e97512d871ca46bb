package domain

import "time"

// BookRecord is one row of the prepared catalog table. Numeric fields that can
// be absent in the source export are pointers; nil means the value was missing
// or failed to parse. SalesIndex is the one exception: a missing sales index
// ranks lowest, so it is filled with 0 at load time instead of staying nil.
type BookRecord struct {
	Title       string     `json:"title"`
	Subtitle    string     `json:"subtitle,omitempty"`
	Author      string     `json:"author"`
	Publisher   string     `json:"publisher"`
	Price       *int       `json:"price"`
	Rating      *float64   `json:"rating"`
	ReviewCount *float64   `json:"review_count"`
	SalesIndex  float64    `json:"sales_index"`
	PublishedAt *time.Time `json:"published_at"`
	YearMonth   string     `json:"year_month,omitempty"`
}

// PriceValue returns the price and whether it is present.
func (b BookRecord) PriceValue() (float64, bool) {
	if b.Price == nil {
		return 0, false
	}
	return float64(*b.Price), true
}

// RatingValue returns the rating and whether it is present.
func (b BookRecord) RatingValue() (float64, bool) {
	if b.Rating == nil {
		return 0, false
	}
	return *b.Rating, true
}

// ReviewCountValue returns the review count and whether it is present.
func (b BookRecord) ReviewCountValue() (float64, bool) {
	if b.ReviewCount == nil {
		return 0, false
	}
	return *b.ReviewCount, true
}

// SalesIndexValue always reports present: missing values were zero-filled at
// load time, and sales aggregations must count them as 0 rather than drop them.
func (b BookRecord) SalesIndexValue() (float64, bool) {
	return b.SalesIndex, true
}
