package models

import "time"

// RawFeedback holds one unprocessed row exactly as it arrived from the
// feedback export. Every field is free text and may be malformed or empty.
type RawFeedback struct {
	Location         string
	Rating           string
	TransactionValue string
	Timestamp        string
	Comment          string
}

// Feedback is the cleaned, validated record. A Feedback either satisfies
// every bound below or it does not exist; the pipeline never keeps a
// partially cleaned record.
//
// Bounds: Rating in [1,5], 0 < TransactionValue <= 500, Timestamp is a real
// calendar date-time, Location is trimmed with internal whitespace collapsed.
type Feedback struct {
	Location         string
	Rating           int
	TransactionValue float64
	Timestamp        time.Time
	Comment          string
}

// Date returns the calendar date of the feedback, truncated to midnight UTC.
func (f *Feedback) Date() time.Time {
	return time.Date(f.Timestamp.Year(), f.Timestamp.Month(), f.Timestamp.Day(), 0, 0, 0, 0, time.UTC)
}

// ReasonCode identifies which field check removed a record from the dataset.
type ReasonCode string

const (
	ReasonBadLocation         ReasonCode = "BAD_LOCATION"
	ReasonBadRating           ReasonCode = "BAD_RATING"
	ReasonBadTransactionValue ReasonCode = "BAD_TRANSACTION_VALUE"
	ReasonValueOutOfRange     ReasonCode = "TRANSACTION_OUT_OF_RANGE"
	ReasonBadTimestamp        ReasonCode = "BAD_TIMESTAMP"
)

// Rejection pairs a dropped raw record with the first reason that failed.
// Rejections are diagnostics only and never enter aggregate computations.
type Rejection struct {
	Raw    *RawFeedback
	Reason ReasonCode
}
