package services

import (
	"context"
	"delivery-dispatch-service/internal/config"
	"delivery-dispatch-service/internal/domain"
	"fmt"

	"golang.org/x/sync/errgroup"
)

const maxConcurrentDepots = 5

// A depot and the jobs it is responsible for.
type DepotJobs struct {
	Depot domain.Coordinates
	Jobs  []domain.Job
}

// Plan several independent depots concurrently. Each depot gets its own pool,
// so a job key may appear under one depot only. Plans are returned in input
// order; the first failure cancels the rest.
func PlanDepots(ctx context.Context, depots []DepotJobs, cfg config.Planner) ([]*domain.Plan, error) {
	owner := make(map[string]int)
	for i, d := range depots {
		for _, j := range d.Jobs {
			if prev, ok := owner[j.Key()]; ok && prev != i {
				return nil, fmt.Errorf("plan depots: job %q assigned to depots %d and %d", j.Key(), prev, i)
			}
			owner[j.Key()] = i
		}
	}

	plans := make([]*domain.Plan, len(depots))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentDepots)

	for i, d := range depots {
		g.Go(func() error {
			plan, err := PlanFleet(ctx, d.Jobs, cfg.WithDepot(d.Depot))
			if err != nil {
				return fmt.Errorf("plan depots: depot %d: %w", i, err)
			}
			plans[i] = plan
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return plans, nil
}
