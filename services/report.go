package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"cafe-insights/models"
)

// rejectionOrder fixes the display order of the reason breakdown.
var rejectionOrder = []models.ReasonCode{
	models.ReasonBadLocation,
	models.ReasonBadRating,
	models.ReasonBadTransactionValue,
	models.ReasonValueOutOfRange,
	models.ReasonBadTimestamp,
}

// Reporter renders the console report: KPI cards, the rejection breakdown,
// location bars and the narrative. Display convenience only; the structured
// data (snapshot, rejection log) remains the contract with other consumers.
type Reporter struct{}

// NewReporter creates a Reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Print writes the full report to stdout.
func (r *Reporter) Print(snap *models.Snapshot, narrative string, rejections []*models.Rejection) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  ☕ CAFE FEEDBACK REPORT\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Records            : \033[1m%d\033[0m\n", snap.Count)
	if snap.Count > 0 {
		fmt.Printf("  Avg rating         : \033[1;32m%.2f\033[0m\n", snap.MeanRating)
		fmt.Printf("  Avg transaction    : \033[1;32m$%.2f\033[0m\n", snap.MeanTransactionValue)
		fmt.Printf("  Median transaction : \033[1;32m$%.2f\033[0m\n", snap.MedianTransactionValue)
	} else {
		fmt.Printf("  No data for this selection\n")
	}
	fmt.Println()

	// Rejection breakdown
	fmt.Printf("\033[1;33m  Rejected Records\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(rejections) == 0 {
		fmt.Printf("  None — every record passed cleaning\n")
	} else {
		byReason := make(map[models.ReasonCode]int)
		for _, rej := range rejections {
			byReason[rej.Reason]++
		}
		fmt.Printf("  Total rejected : \033[1;31m%d\033[0m\n", len(rejections))
		for _, reason := range rejectionOrder {
			if count := byReason[reason]; count > 0 {
				fmt.Printf("  %s %d\n", padRight(string(reason), 26), count)
			}
		}
	}
	fmt.Println()

	// Location bars
	fmt.Printf("\033[1;33m  Feedback by Location\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(snap.LocationCounts) == 0 {
		fmt.Printf("  No location data\n")
	} else {
		type locCount struct {
			loc   string
			count int
		}
		locs := make([]locCount, 0, len(snap.LocationCounts))
		maxCount := 0
		for loc, count := range snap.LocationCounts {
			locs = append(locs, locCount{loc, count})
			if count > maxCount {
				maxCount = count
			}
		}
		sort.Slice(locs, func(i, j int) bool {
			if locs[i].count != locs[j].count {
				return locs[i].count > locs[j].count
			}
			return locs[i].loc < locs[j].loc
		})
		for _, lc := range locs {
			bar := strings.Repeat("█", scaleBar(lc.count, maxCount, 30))
			fmt.Printf("  %s %s (%d)\n", padRight(truncate(lc.loc, 28), 28), bar, lc.count)
		}
	}
	fmt.Println()

	// Top words
	fmt.Printf("\033[1;33m  Top Comment Words\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(snap.TopWords) == 0 {
		fmt.Printf("  No comment data\n")
	} else {
		limit := len(snap.TopWords)
		if limit > 10 {
			limit = 10
		}
		for i, wc := range snap.TopWords[:limit] {
			fmt.Printf("  \033[1m%2d.\033[0m %s %d\n", i+1, padRight(wc.Word, 20), wc.Count)
		}
	}
	fmt.Println()

	// Narrative
	fmt.Printf("\033[1;33m  Summary\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  %s\n", narrative)

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

// padRight pads by display width so wide runes in location names keep the
// columns aligned.
func padRight(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// scaleBar maps a count onto a bar of at most maxWidth cells, keeping at
// least one cell for any non-zero count.
func scaleBar(count, maxCount, maxWidth int) int {
	if count <= 0 || maxCount <= 0 {
		return 0
	}
	n := count * maxWidth / maxCount
	if n < 1 {
		n = 1
	}
	return n
}

// truncate shortens a string to max display cells with an ellipsis.
func truncate(s string, max int) string {
	if runewidth.StringWidth(s) <= max {
		return s
	}
	return runewidth.Truncate(s, max, "...")
}
