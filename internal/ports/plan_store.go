package ports

import (
	"context"
	"delivery-dispatch-service/internal/domain"
	"errors"
)

var ErrCacheMiss = errors.New("plan cache miss")

// Contract for writing planned routes to a downstream format.
type RouteExporter interface {
	// Write the routes and return where they were written.
	ExportRoutes(ctx context.Context, routes []domain.RoutePlan) (string, error)
}

// Contract for persisting completed planning runs.
type PlanRepository interface {
	SavePlan(ctx context.Context, plan *domain.Plan) error
	// Return the most recently saved plan, or ErrNotFound.
	LatestPlan(ctx context.Context) (*domain.Plan, error)
}

// Optional memo of plans keyed by an input fingerprint.
type PlanCache interface {
	// Return the cached plan, or ErrCacheMiss.
	Get(ctx context.Context, fingerprint string) (*domain.Plan, error)
	Put(ctx context.Context, fingerprint string, plan *domain.Plan) error
}
