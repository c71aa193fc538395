package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"cafe-insights/models"
)

const (
	// MinTransactionValue and MaxTransactionValue bound a plausible single
	// cafe transaction. Values outside (0, 500] are bulk-entry errors.
	MinTransactionValue = 0.0
	MaxTransactionValue = 500.0
)

var (
	// valueRegexp captures a currency-like numeric token: optional sign and
	// dollar symbol, thousands commas, up to two decimals.
	valueRegexp = regexp.MustCompile(`-?\$?\s*(?:[0-9]{1,3}(?:,[0-9]{3})+|[0-9]+)(?:\.[0-9]{1,2})?`)
	// timeOfDayRegexp matches colon-separated clock times with an AM/PM marker.
	timeOfDayRegexp = regexp.MustCompile(`(?i)\d{1,2}:\d{2}(?::\d{2})?\s*[AP]M`)
	// slashDateRegexp matches slash-delimited dates such as 20/10/2020.
	slashDateRegexp = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}`)
)

// NormalizeLocation trims leading/trailing whitespace and collapses every
// internal whitespace run to a single space. Total and idempotent; an empty
// result is still a valid return value here; admissibility is the
// validator's call.
func NormalizeLocation(raw string) string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}

// ParseRating accepts integer-like values in [1,5]. "4" and "4.0" pass,
// "4.5", "five" and empty cells reject. The empty ReasonCode signals success.
func ParseRating(raw string) (int, models.ReasonCode) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, models.ReasonBadRating
	}

	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, models.ReasonBadRating
	}
	if val != math.Trunc(val) {
		return 0, models.ReasonBadRating
	}

	rating := int(val)
	if rating < 1 || rating > 5 {
		return 0, models.ReasonBadRating
	}
	return rating, ""
}

// ParseTransactionValue extracts the first currency-like numeric token and
// bounds-checks it. The upstream export conflates the money column with stray
// timestamp strings, so structurally date-like input is ruled out first:
//
//	"20/10/2020 8:24:00 AM" → BAD_TRANSACTION_VALUE (not coerced to 20)
//	"$42.50"                → 42.50
//	"$1,200.50"             → TRANSACTION_OUT_OF_RANGE
func ParseTransactionValue(raw string) (float64, models.ReasonCode) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, models.ReasonBadTransactionValue
	}

	if timeOfDayRegexp.MatchString(s) || slashDateRegexp.MatchString(s) {
		return 0, models.ReasonBadTransactionValue
	}

	match := valueRegexp.FindString(s)
	if match == "" {
		return 0, models.ReasonBadTransactionValue
	}

	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(match)
	val, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, models.ReasonBadTransactionValue
	}

	if val <= MinTransactionValue || val > MaxTransactionValue {
		return 0, models.ReasonValueOutOfRange
	}
	return val, ""
}

// timestampLayouts are tried in order. Slash and dash forms put the day
// first: for an ambiguous "03/04/2020" the first component is always the day.
var timestampLayouts = []string{
	"2/1/2006 3:04:05 PM",
	"2/1/2006 3:04 PM",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/2006",
	"2-1-2006 15:04:05",
	"2-1-2006",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a day-first date-time. Rejects with BAD_TIMESTAMP
// when no layout yields a valid calendar date-time.
func ParseTimestamp(raw string) (time.Time, models.ReasonCode) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, models.ReasonBadTimestamp
	}

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, ""
		}
	}
	return time.Time{}, models.ReasonBadTimestamp
}
