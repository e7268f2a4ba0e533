package services

import (
	"context"
	"delivery-dispatch-service/internal/config"
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/platform/metrics"
	"delivery-dispatch-service/internal/platform/obs"
	"delivery-dispatch-service/internal/ports"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Adapters used by OptimizeRoutes. Only Source is required.
type Dependencies struct {
	Source   ports.JobSource
	Exporter ports.RouteExporter
	Plans    ports.PlanRepository
	Cache    ports.PlanCache
}

type OptimizeResult struct {
	Plan       *domain.Plan
	Failures   []domain.RecordFailure
	ExportPath string
	// True when the plan came from the cache rather than a fresh run.
	Cached bool
}

// Load jobs, plan the fleet, then persist and export the result.
//
// A cached plan for identical input skips planning and persistence but is
// still exported. Cache failures are logged and otherwise ignored.
func OptimizeRoutes(ctx context.Context, cfg config.Planner, deps Dependencies) (_ *OptimizeResult, err error) {
	defer obs.Time(ctx, "services.OptimizeRoutes")(&err)
	defer func() {
		if err != nil {
			metrics.ObservePlanError()
		}
	}()
	started := time.Now()

	if deps.Source == nil {
		return nil, errors.New("optimize routes: job source is required")
	}

	jobs, failures, err := deps.Source.LoadJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("optimize routes: load jobs: %w", err)
	}
	res := &OptimizeResult{Failures: failures}

	var fingerprint string
	if deps.Cache != nil {
		fingerprint, err = Fingerprint(jobs, cfg)
		if err != nil {
			return nil, fmt.Errorf("optimize routes: %w", err)
		}
		res.Plan, res.Cached = lookupPlan(ctx, deps.Cache, fingerprint)
	}

	if res.Plan == nil {
		plan, err := PlanFleet(ctx, jobs, cfg)
		if err != nil {
			return nil, fmt.Errorf("optimize routes: %w", err)
		}
		res.Plan = plan

		if deps.Plans != nil {
			if err := deps.Plans.SavePlan(ctx, plan); err != nil {
				return nil, fmt.Errorf("optimize routes: save plan: %w", err)
			}
		}
		if deps.Cache != nil {
			if err := deps.Cache.Put(ctx, fingerprint, plan); err != nil {
				log.Warn().Str("req_id", obs.RequestID(ctx)).Err(err).Msg("plan cache write failed")
			}
		}
	}

	if deps.Exporter != nil {
		path, err := deps.Exporter.ExportRoutes(ctx, res.Plan.Routes)
		if err != nil {
			return nil, fmt.Errorf("optimize routes: export: %w", err)
		}
		res.ExportPath = path
	}

	metrics.ObservePlan(res.Plan, len(failures), time.Since(started))
	log.Info().
		Str("req_id", obs.RequestID(ctx)).
		Str("run_id", res.Plan.RunID).
		Int("routes", len(res.Plan.Routes)).
		Int("unassigned", len(res.Plan.Unassigned)).
		Int("rejected", len(failures)).
		Bool("cached", res.Cached).
		Msg("routes optimized")

	return res, nil
}

func lookupPlan(ctx context.Context, cache ports.PlanCache, fingerprint string) (*domain.Plan, bool) {
	plan, err := cache.Get(ctx, fingerprint)
	switch {
	case err == nil:
		metrics.PlanCacheLookups.WithLabelValues("hit").Inc()
		return plan, true
	case errors.Is(err, ports.ErrCacheMiss):
		metrics.PlanCacheLookups.WithLabelValues("miss").Inc()
	default:
		metrics.PlanCacheLookups.WithLabelValues("error").Inc()
		log.Warn().Str("req_id", obs.RequestID(ctx)).Err(err).Msg("plan cache read failed")
	}
	return nil, false
}
