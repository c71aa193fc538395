package services

import "cafe-insights/models"

// ValidateRecord runs every field normalizer over one raw record. All four
// fields must normalize for the record to survive; on the first failure the
// record is rejected with that field's reason code and no partial result is
// kept. Evaluation order: location, rating, transaction value, timestamp.
func ValidateRecord(raw *models.RawFeedback) (*models.Feedback, models.ReasonCode) {
	location := NormalizeLocation(raw.Location)
	if location == "" {
		return nil, models.ReasonBadLocation
	}

	rating, reason := ParseRating(raw.Rating)
	if reason != "" {
		return nil, reason
	}

	value, reason := ParseTransactionValue(raw.TransactionValue)
	if reason != "" {
		return nil, reason
	}

	ts, reason := ParseTimestamp(raw.Timestamp)
	if reason != "" {
		return nil, reason
	}

	return &models.Feedback{
		Location:         location,
		Rating:           rating,
		TransactionValue: value,
		Timestamp:        ts,
		Comment:          raw.Comment,
	}, ""
}
