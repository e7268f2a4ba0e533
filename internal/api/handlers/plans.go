package handlers

import (
	"delivery-dispatch-service/internal/api/dto"
	"delivery-dispatch-service/internal/config"
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/services"
	"net/http"
)

type PlanHandler struct {
	Planner config.Planner
	Deps    services.Dependencies
}

// Optimize runs a full planning pass over the configured job source and
// returns one map link per route, in route order.
func (h *PlanHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	res, err := services.OptimizeRoutes(r.Context(), h.Planner, h.Deps)
	if err != nil {
		writeSourceError(w, r, "job source", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.OptimizeResponse{MapLinks: res.Plan.MapLinks()})
}

// Latest returns the most recently persisted plan in full.
func (h *PlanHandler) Latest(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	if h.Deps.Plans == nil {
		writeError(w, r, http.StatusNotFound, "plan storage is not configured")
		return
	}

	plan, err := h.Deps.Plans.LatestPlan(r.Context())
	if err != nil {
		writeSourceError(w, r, "plan", err)
		return
	}

	writeJSON(w, r, http.StatusOK, toPlan(plan))
}

func toPlan(p *domain.Plan) dto.PlanResponse {
	res := dto.PlanResponse{
		RunID:      p.RunID,
		CreatedAt:  p.CreatedAt,
		Depot:      toCoordinates(p.Depot),
		Routes:     make([]dto.RouteResponse, 0, len(p.Routes)),
		Unassigned: toJobs(p.Unassigned),
	}

	for _, route := range p.Routes {
		stops := make([]dto.PlanStopResponse, 0, len(route.Stops))
		for i, s := range route.Stops {
			window := s.EstimatedArrivalWindow()
			stops = append(stops, dto.PlanStopResponse{
				JobNumber:                   i + 1,
				Job:                         toJob(s.Job),
				PickupArrival:               s.PickupArrival.String(),
				DropoffArrival:              s.DropoffArrival.String(),
				CompletionTime:              s.Completion.String(),
				EstimatedArrivalWindowStart: window.From.String(),
				EstimatedArrivalWindowEnd:   window.To.String(),
			})
		}

		res.Routes = append(res.Routes, dto.RouteResponse{
			RouteNumber:          route.Number,
			StartTime:            route.Start.String(),
			EndTime:              route.End.String(),
			TotalDistanceMiles:   route.DistanceMiles,
			TotalDurationMinutes: route.DurationMinutes,
			MapLink:              route.MapLink,
			Stops:                stops,
		})
	}

	return res
}
