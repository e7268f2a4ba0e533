package services

import (
	"context"
	"delivery-dispatch-service/internal/config"
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/platform/obs"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Build routes from the depot until the pool is empty or no job can start a
// new route. Each route takes the full start time; vehicles are not modelled.
//
// Jobs left over are returned in Plan.Unassigned in input order. The input
// slice is never modified.
func PlanFleet(ctx context.Context, jobs []domain.Job, cfg config.Planner) (_ *domain.Plan, err error) {
	defer obs.Time(ctx, "services.PlanFleet")(&err)

	pool := NewJobPool(jobs)
	travel := cfg.TravelModel()
	limits := LimitsFromConfig(cfg)

	routes := []domain.RoutePlan{}
	for pool.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("plan fleet: %w", err)
		}

		route := BuildRoute(pool.View(), cfg.Depot, cfg.StartTime, limits, travel, cfg.MapBaseURL)
		if len(route.Stops) == 0 {
			break
		}

		pool.Remove(route.Jobs())
		routes = append(routes, *route)
	}

	for i := range routes {
		routes[i].Number = i + 1
	}

	return &domain.Plan{
		RunID:      uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		Depot:      cfg.Depot,
		Routes:     routes,
		Unassigned: append([]domain.Job{}, pool.View()...),
	}, nil
}
