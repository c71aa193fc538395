package services

import (
	"fmt"
	"sort"
	"strings"

	"cafe-insights/models"
)

// noDataNarrative is the entire report for an empty selection. Templates are
// never filled with undefined values.
const noDataNarrative = "No feedback records match this selection. Broaden the filters to see a summary."

// Narrator maps aggregate snapshots to report text. Fact derivation and
// wording are split so the decision logic stays testable independent of the
// sentence templates. Rendering is byte-deterministic: the same snapshot and
// filter always produce the same text.
type Narrator struct {
	strongThreshold float64
	mixedThreshold  float64
	topWordCount    int
}

// NewNarrator creates a Narrator. A mean rating at or above strongThreshold
// reads as "strong", at or above mixedThreshold as "mixed", anything below
// as "concerning".
func NewNarrator(strongThreshold, mixedThreshold float64, topWordCount int) *Narrator {
	return &Narrator{
		strongThreshold: strongThreshold,
		mixedThreshold:  mixedThreshold,
		topWordCount:    topWordCount,
	}
}

// Narrate is the full pipeline: facts, then wording.
func (n *Narrator) Narrate(snap *models.Snapshot, spec models.FilterSpec) string {
	return n.Render(n.BuildFacts(snap, spec))
}

// BuildFacts derives the typed narrative facts from a snapshot. Every
// extreme is resolved deterministically: spend-bucket ties go to the lower
// rating, location ties to the alphabetically first name, day ties to the
// earlier date.
func (n *Narrator) BuildFacts(snap *models.Snapshot, spec models.FilterSpec) models.NarrativeFacts {
	facts := models.NarrativeFacts{Count: snap.Count}
	if snap.Count == 0 {
		return facts
	}

	facts.MeanRating = snap.MeanRating
	facts.MeanSpend = snap.MeanTransactionValue
	facts.MedianSpend = snap.MedianTransactionValue

	switch {
	case snap.MeanRating >= n.strongThreshold:
		facts.RatingBand = "strong"
	case snap.MeanRating >= n.mixedThreshold:
		facts.RatingBand = "mixed"
	default:
		facts.RatingBand = "concerning"
	}

	for rating := 1; rating <= 5; rating++ {
		spend, ok := snap.SpendByRating[rating]
		if !ok {
			continue
		}
		if !facts.HasSpendBuckets {
			facts.HasSpendBuckets = true
			facts.BestSpendRating, facts.BestSpendValue = rating, spend
			facts.WorstSpendRating, facts.WorstSpendValue = rating, spend
			continue
		}
		if spend > facts.BestSpendValue {
			facts.BestSpendRating, facts.BestSpendValue = rating, spend
		}
		if spend < facts.WorstSpendValue {
			facts.WorstSpendRating, facts.WorstSpendValue = rating, spend
		}
	}

	if spec.SpansMultipleLocations() && len(snap.LocationCounts) > 1 {
		facts.HasLocationSpread = true
		for _, loc := range sortedLocations(snap.LocationCounts) {
			count := snap.LocationCounts[loc]
			if facts.BusiestLocation == "" || count > facts.BusiestCount {
				facts.BusiestLocation, facts.BusiestCount = loc, count
			}
			if facts.QuietestLocation == "" || count < facts.QuietestCount {
				facts.QuietestLocation, facts.QuietestCount = loc, count
			}
		}
	}

	if len(snap.DayStats) > 0 {
		facts.HasDays = true
		best, worst := snap.DayStats[0], snap.DayStats[0]
		for _, day := range snap.DayStats[1:] {
			if day.MeanRating > best.MeanRating {
				best = day
			}
			if day.MeanRating < worst.MeanRating {
				worst = day
			}
		}
		facts.BestDay, facts.BestDayRating = best.Date, best.MeanRating
		facts.WorstDay, facts.WorstDayRating = worst.Date, worst.MeanRating
	}

	limit := n.topWordCount
	if limit > len(snap.TopWords) {
		limit = len(snap.TopWords)
	}
	for _, wc := range snap.TopWords[:limit] {
		facts.TopWords = append(facts.TopWords, wc.Word)
	}

	return facts
}

// Render turns facts into the report text using fixed sentence templates.
func (n *Narrator) Render(facts models.NarrativeFacts) string {
	if facts.Count == 0 {
		return noDataNarrative
	}

	var sentences []string

	sentences = append(sentences, fmt.Sprintf(
		"This selection covers %d feedback records with a %s average rating of %.2f out of 5.",
		facts.Count, facts.RatingBand, facts.MeanRating))

	sentences = append(sentences, fmt.Sprintf(
		"Customers spend $%.2f on average, with a typical (median) transaction of $%.2f.",
		facts.MeanSpend, facts.MedianSpend))

	if facts.HasSpendBuckets {
		if facts.BestSpendRating == facts.WorstSpendRating {
			sentences = append(sentences, fmt.Sprintf(
				"All spending sits in the %d-star bucket at $%.2f per visit.",
				facts.BestSpendRating, facts.BestSpendValue))
		} else {
			sentences = append(sentences, fmt.Sprintf(
				"Spending peaks among %d-star reviewers at $%.2f per visit and bottoms out among %d-star reviewers at $%.2f.",
				facts.BestSpendRating, facts.BestSpendValue,
				facts.WorstSpendRating, facts.WorstSpendValue))
		}
	}

	if facts.HasLocationSpread {
		sentences = append(sentences, fmt.Sprintf(
			"%s generated the most feedback (%d records) while %s generated the least (%d).",
			facts.BusiestLocation, facts.BusiestCount,
			facts.QuietestLocation, facts.QuietestCount))
	}

	if facts.HasDays {
		if facts.BestDay.Equal(facts.WorstDay) {
			sentences = append(sentences, fmt.Sprintf(
				"All records fall on %s, with a mean rating of %.2f.",
				facts.BestDay.Format("2 Jan 2006"), facts.BestDayRating))
		} else {
			sentences = append(sentences, fmt.Sprintf(
				"The best day in range was %s with a mean rating of %.2f; the worst was %s at %.2f.",
				facts.BestDay.Format("2 Jan 2006"), facts.BestDayRating,
				facts.WorstDay.Format("2 Jan 2006"), facts.WorstDayRating))
		}
	}

	if len(facts.TopWords) > 0 {
		sentences = append(sentences, fmt.Sprintf(
			"Comments mention %s most often.", strings.Join(facts.TopWords, ", ")))
	}

	return strings.Join(sentences, " ")
}

// sortedLocations returns location names in alphabetical order so map
// iteration never leaks into the output.
func sortedLocations(counts map[string]int) []string {
	locs := make([]string, 0, len(counts))
	for loc := range counts {
		locs = append(locs, loc)
	}
	sort.Strings(locs)
	return locs
}
