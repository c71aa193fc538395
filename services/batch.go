package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"cafe-insights/models"
)

// View pairs a filter selection with its computed snapshot and narrative.
type View struct {
	Spec      models.FilterSpec
	Subset    []*models.Feedback
	Snapshot  *models.Snapshot
	Narrative string
}

// BuildViews evaluates independent FilterSpecs concurrently. Filtering and
// aggregation are pure functions over the immutable canonical dataset, so the
// specs have no ordering dependency between them; results come back in input
// order regardless of completion order.
func BuildViews(ctx context.Context, records []*models.Feedback, specs []models.FilterSpec,
	aggregator *Aggregator, narrator *Narrator,
) ([]View, error) {
	views := make([]View, len(specs))

	g, ctx := errgroup.WithContext(ctx)
	for i, spec := range specs {
		i, spec := i, spec
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			subset := ApplyFilter(records, spec)
			snap := aggregator.Snapshot(subset)
			views[i] = View{
				Spec:      spec,
				Subset:    subset,
				Snapshot:  snap,
				Narrative: narrator.Narrate(snap, spec),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return views, nil
}
