package services

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cafe-insights/models"
)

func TestBuildViewsMatchesSequentialEvaluation(t *testing.T) {
	records := sampleFeedback()
	agg := newTestAggregator()
	n := newTestNarrator()

	specs := []models.FilterSpec{
		models.AllRecords(),
		{Locations: []string{"Albany"}, MinRating: 1, MaxRating: 5},
		{MinRating: 4, MaxRating: 5},
		{Locations: []string{"Nowhere"}, MinRating: 1, MaxRating: 5},
	}

	views, err := BuildViews(context.Background(), records, specs, agg, n)
	if err != nil {
		t.Fatalf("BuildViews: %v", err)
	}
	if len(views) != len(specs) {
		t.Fatalf("expected %d views, got %d", len(specs), len(views))
	}

	for i, spec := range specs {
		subset := ApplyFilter(records, spec)
		snap := agg.Snapshot(subset)
		narrative := n.Narrate(snap, spec)

		if diff := cmp.Diff(snap, views[i].Snapshot); diff != "" {
			t.Errorf("spec %d: snapshot mismatch (-sequential +parallel):\n%s", i, diff)
		}
		if views[i].Narrative != narrative {
			t.Errorf("spec %d: narrative mismatch", i)
		}
	}
}

func TestBuildViewsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := BuildViews(ctx, sampleFeedback(), []models.FilterSpec{models.AllRecords()},
		newTestAggregator(), newTestNarrator())
	if err == nil {
		t.Error("expected an error from a cancelled context")
	}
}
