package services

import "cafe-insights/models"

// ApplyFilter returns the subset of records matching the spec. The result
// shares the underlying records with the canonical dataset: it is a view,
// not a copy, and must be treated as read-only. An empty result is a valid
// subset, not an error.
//
// Inclusion rules: location must be in the spec's set (an empty set admits
// every location), rating and calendar date must fall within their inclusive
// ranges. A zero From or To leaves that side of the date range open.
func ApplyFilter(records []*models.Feedback, spec models.FilterSpec) []*models.Feedback {
	var locations map[string]struct{}
	if len(spec.Locations) > 0 {
		locations = make(map[string]struct{}, len(spec.Locations))
		for _, loc := range spec.Locations {
			locations[loc] = struct{}{}
		}
	}

	subset := make([]*models.Feedback, 0, len(records))
	for _, f := range records {
		if locations != nil {
			if _, ok := locations[f.Location]; !ok {
				continue
			}
		}
		if f.Rating < spec.MinRating || f.Rating > spec.MaxRating {
			continue
		}
		date := f.Date()
		if !spec.From.IsZero() && date.Before(spec.From) {
			continue
		}
		if !spec.To.IsZero() && date.After(spec.To) {
			continue
		}
		subset = append(subset, f)
	}
	return subset
}
