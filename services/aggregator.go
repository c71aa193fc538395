package services

import (
	"math"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"

	"cafe-insights/models"
	"cafe-insights/utils"
)

// Aggregator computes metric snapshots over filtered subsets. The word
// analysis knobs (stop words, minimum token length, top-N) are injected
// configuration: business tuning, never hard-coded here.
type Aggregator struct {
	logger      *utils.Logger
	stopWords   map[string]struct{}
	minTokenLen int
	topN        int
}

// NewAggregator creates an Aggregator with the given word-analysis settings.
func NewAggregator(logger *utils.Logger, stopWords []string, minTokenLen, topN int) *Aggregator {
	set := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		set[strings.ToLower(w)] = struct{}{}
	}
	return &Aggregator{
		logger:      logger,
		stopWords:   set,
		minTokenLen: minTokenLen,
		topN:        topN,
	}
}

// Snapshot computes the full metric set over a subset view. A zero-length
// subset yields Count == 0 and consumers must report "no data" rather than
// read the remaining fields.
func (a *Aggregator) Snapshot(subset []*models.Feedback) *models.Snapshot {
	snap := &models.Snapshot{
		Count:          len(subset),
		SpendByRating:  make(map[int]float64),
		LocationCounts: make(map[string]int),
	}
	if len(subset) == 0 {
		return snap
	}
	a.logger.Debug("[aggregator] Building snapshot over %d records", len(subset))

	var ratingSum, valueSum float64
	values := make([]float64, 0, len(subset))

	type ratingBucket struct {
		sum   float64
		count int
	}
	byRating := make(map[int]*ratingBucket)

	type dayBucket struct {
		ratingSum float64
		count     int
	}
	byDay := make(map[time.Time]*dayBucket)

	for _, f := range subset {
		ratingSum += float64(f.Rating)
		valueSum += f.TransactionValue
		values = append(values, f.TransactionValue)

		rb := byRating[f.Rating]
		if rb == nil {
			rb = &ratingBucket{}
			byRating[f.Rating] = rb
		}
		rb.sum += f.TransactionValue
		rb.count++

		date := f.Date()
		db := byDay[date]
		if db == nil {
			db = &dayBucket{}
			byDay[date] = db
		}
		db.ratingSum += float64(f.Rating)
		db.count++

		snap.LocationCounts[f.Location]++
	}

	n := float64(len(subset))
	snap.MeanRating = round2(ratingSum / n)
	snap.MeanTransactionValue = round2(valueSum / n)
	snap.MedianTransactionValue = round2(median(values))

	for rating, rb := range byRating {
		snap.SpendByRating[rating] = round2(rb.sum / float64(rb.count))
	}

	snap.DayStats = make([]models.DayStat, 0, len(byDay))
	for date, db := range byDay {
		snap.DayStats = append(snap.DayStats, models.DayStat{
			Date:       date,
			Count:      db.count,
			MeanRating: round2(db.ratingSum / float64(db.count)),
		})
	}
	// Chronological order is load-bearing: trend consumers need the sequence.
	sort.Slice(snap.DayStats, func(i, j int) bool {
		return snap.DayStats[i].Date.Before(snap.DayStats[j].Date)
	})

	snap.TopWords = a.topWords(subset)
	return snap
}

// median returns the standard median: the middle value, or the average of
// the two middle values for an even count. Preferred over the mean for
// "typical spend" because residual high-end values inside the allowed range
// still skew a mean.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// topWords tokenizes every comment with Unicode word segmentation,
// case-folds, drops non-letter tokens, stop words and short tokens, then
// ranks by descending frequency. Ties break on first occurrence in the
// subset so the output is deterministic.
func (a *Aggregator) topWords(subset []*models.Feedback) []models.WordCount {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	position := 0

	for _, f := range subset {
		if f.Comment == "" {
			continue
		}
		tokens := words.FromString(f.Comment)
		for tokens.Next() {
			token := strings.ToLower(tokens.Value())
			if !isWordToken(token) {
				continue
			}
			if len([]rune(token)) < a.minTokenLen {
				continue
			}
			if _, stop := a.stopWords[token]; stop {
				continue
			}
			if _, ok := counts[token]; !ok {
				firstSeen[token] = position
			}
			counts[token]++
			position++
		}
	}

	ranked := make([]models.WordCount, 0, len(counts))
	for word, count := range counts {
		ranked = append(ranked, models.WordCount{Word: word, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return firstSeen[ranked[i].Word] < firstSeen[ranked[j].Word]
	})

	if a.topN > 0 && len(ranked) > a.topN {
		ranked = ranked[:a.topN]
	}
	return ranked
}

// isWordToken keeps segments that contain at least one letter, filtering
// out the punctuation and whitespace segments the segmenter also emits.
func isWordToken(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// round2 rounds to 2 decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
