package models

import "time"

// Snapshot holds the fixed metric set computed over one filtered subset.
// It is built fresh for each FilterSpec application and never mutated after
// construction. When Count is zero every other field is meaningless and
// consumers must report "no data" instead of reading them.
type Snapshot struct {
	Count                  int
	MeanRating             float64
	MeanTransactionValue   float64
	MedianTransactionValue float64

	// SpendByRating maps each rating bucket present in the subset to its mean
	// transaction value. Absent buckets are omitted, not reported as zero.
	SpendByRating map[int]float64

	// DayStats is ordered ascending by date.
	DayStats []DayStat

	LocationCounts map[string]int

	// TopWords is ordered by descending frequency, ties broken by first
	// occurrence in the subset.
	TopWords []WordCount
}

// DayStat is the per-calendar-day rollup used for trend charts and the
// best/worst-day narrative facts.
type DayStat struct {
	Date       time.Time
	Count      int
	MeanRating float64
}

// WordCount is one entry of the comment word-frequency ranking.
type WordCount struct {
	Word  string
	Count int
}

// NarrativeFacts is the typed intermediate between a Snapshot and the
// rendered report text. Deriving facts separately keeps the decision logic
// testable independent of wording.
type NarrativeFacts struct {
	Count      int
	MeanRating float64
	RatingBand string // "strong", "mixed" or "concerning"

	MeanSpend   float64
	MedianSpend float64

	// Rating buckets ranked by mean spend. Valid when HasSpendBuckets.
	HasSpendBuckets  bool
	BestSpendRating  int
	BestSpendValue   float64
	WorstSpendRating int
	WorstSpendValue  float64

	// Location spread. Populated only when the selection spans more than one
	// location and the subset actually contains more than one.
	HasLocationSpread bool
	BusiestLocation   string
	BusiestCount      int
	QuietestLocation  string
	QuietestCount     int

	// Day extremes by mean rating. Valid when HasDays.
	HasDays        bool
	BestDay        time.Time
	BestDayRating  float64
	WorstDay       time.Time
	WorstDayRating float64

	TopWords []string
}
