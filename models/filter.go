package models

import "time"

// FilterSpec is an immutable selection over the canonical dataset.
// An empty Locations set means "all locations". Rating and date bounds are
// inclusive; a zero From or To leaves that side of the date range open.
type FilterSpec struct {
	Locations []string
	MinRating int
	MaxRating int
	From      time.Time
	To        time.Time
}

// AllRecords selects the entire dataset: every location, full rating range,
// open date range.
func AllRecords() FilterSpec {
	return FilterSpec{MinRating: 1, MaxRating: 5}
}

// SpansMultipleLocations reports whether the spec covers more than one
// location. An empty set spans all of them.
func (s FilterSpec) SpansMultipleLocations() bool {
	return len(s.Locations) != 1
}
