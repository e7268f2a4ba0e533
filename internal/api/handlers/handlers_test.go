package handlers

import (
	"context"
	"delivery-dispatch-service/internal/api/dto"
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/ports"
	"delivery-dispatch-service/internal/services"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPlans struct {
	plan *domain.Plan
	err  error
}

func (s stubPlans) SavePlan(context.Context, *domain.Plan) error { return nil }

func (s stubPlans) LatestPlan(context.Context) (*domain.Plan, error) { return s.plan, s.err }

type stubSource struct{ err error }

func (s stubSource) LoadJobs(context.Context) ([]domain.Job, []domain.RecordFailure, error) {
	return nil, nil, s.err
}

type stubTable struct {
	header []string
	rows   [][]string
	err    error
}

func (s stubTable) ReadTable(context.Context) ([]string, [][]string, error) {
	return s.header, s.rows, s.err
}

func serve(h http.HandlerFunc, method string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(method, "/", nil))
	return rec
}

func TestMethodNotAllowed(t *testing.T) {
	rec := serve(Health, http.MethodPost)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
}

func TestJobsSourceErrors(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("load: %w", ports.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("load: %w", ports.ErrEmptySource), http.StatusBadRequest},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		h := &JobHandler{Source: stubSource{err: tt.err}}
		rec := serve(h.List, http.MethodGet)

		assert.Equal(t, tt.want, rec.Code, tt.err.Error())
	}
}

func TestOptimizeMissingSourceIs404(t *testing.T) {
	h := &PlanHandler{Deps: services.Dependencies{Source: stubSource{err: ports.ErrNotFound}}}

	rec := serve(h.Optimize, http.MethodGet)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"job source not found"}`, rec.Body.String())
}

func TestLatestPlan(t *testing.T) {
	start := domain.MustParseClock("10:00:00")
	plan := &domain.Plan{
		RunID:     "run-1",
		CreatedAt: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
		Routes: []domain.RoutePlan{{
			Number: 1,
			Stops: []domain.RouteStop{{
				Job:            domain.Job{DropoffAddress: "A St"},
				PickupArrival:  start,
				DropoffArrival: start.AddMinutes(1),
				Completion:     start.AddMinutes(6),
			}},
			Start: start,
			End:   start.AddMinutes(6),
		}},
	}
	h := &PlanHandler{Deps: services.Dependencies{Plans: stubPlans{plan: plan}}}

	rec := serve(h.Latest, http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.PlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "run-1", res.RunID)
	require.Len(t, res.Routes, 1)
	stop := res.Routes[0].Stops[0]
	assert.Equal(t, 1, stop.JobNumber)
	assert.Equal(t, "09:56:00", stop.EstimatedArrivalWindowStart)
	assert.Equal(t, "10:06:00", stop.EstimatedArrivalWindowEnd)
	assert.NotNil(t, res.Unassigned)
}

func TestLatestPlanNotFound(t *testing.T) {
	h := &PlanHandler{Deps: services.Dependencies{Plans: stubPlans{err: ports.ErrNotFound}}}

	assert.Equal(t, http.StatusNotFound, serve(h.Latest, http.MethodGet).Code)
}

func TestRouteTableSeparatesRoutes(t *testing.T) {
	h := &ViewHandler{Routes: stubTable{
		header: []string{"Route Number", "Job Number", "Map Link"},
		rows: [][]string{
			{"Route 1", "1", "https://maps.example/a/"},
			{"Route 1", "2", "https://maps.example/a/"},
			{"Route 2", "1", "https://maps.example/b/"},
		},
	}}

	rec := serve(h.RouteTable, http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Equal(t, 1, strings.Count(body, `class="route-break"`))
	assert.Equal(t, 3, strings.Count(body, ">View Route</a>"))
	assert.Contains(t, body, `href="https://maps.example/b/"`)
}

func TestDataSourceEscapesCells(t *testing.T) {
	h := &ViewHandler{Requests: stubTable{
		header: []string{"pickup_address_line_1"},
		rows:   [][]string{{"<script>alert(1)</script>"}},
	}}

	rec := serve(h.DataSource, http.MethodGet)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<script>")
}

func TestDataSourceEmpty(t *testing.T) {
	h := &ViewHandler{Requests: stubTable{err: ports.ErrEmptySource}}

	assert.Equal(t, http.StatusBadRequest, serve(h.DataSource, http.MethodGet).Code)
}
