package metrics

import (
	"delivery-dispatch-service/internal/domain"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry is the dedicated Prometheus registry for the service
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	PlanRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "plan_runs_total", Help: "Planning runs by outcome."},
		[]string{"outcome"},
	)
	PlanDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "plan_duration_seconds", Help: "Wall time of a planning run.", Buckets: prometheus.DefBuckets},
	)
	RoutesBuilt = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "routes_built_total", Help: "Routes produced across all runs."},
	)
	JobsAssigned = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "jobs_assigned_total", Help: "Jobs committed to a route."},
	)
	JobsUnassigned = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "jobs_unassigned", Help: "Jobs left without a route by the latest run."},
	)
	RecordsRejected = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "records_rejected_total", Help: "Input records rejected during ingestion."},
	)
	PlanCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "plan_cache_lookups_total", Help: "Plan cache lookups by result."},
		[]string{"result"},
	)
)

var regOnce sync.Once

// RegisterDefault registers all collectors on Registry. Safe to call repeatedly.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(
			HTTPRequests,
			HTTPDuration,
			PlanRuns,
			PlanDuration,
			RoutesBuilt,
			JobsAssigned,
			JobsUnassigned,
			RecordsRejected,
			PlanCacheLookups,
		)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

// Handler exposes Registry in the Prometheus text format.
func Handler() http.Handler {
	RegisterDefault()
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ObservePlan records the outcome of a finished planning run.
func ObservePlan(plan *domain.Plan, rejected int, dur time.Duration) {
	PlanRuns.WithLabelValues("ok").Inc()
	PlanDuration.Observe(dur.Seconds())
	RecordsRejected.Add(float64(rejected))
	RoutesBuilt.Add(float64(len(plan.Routes)))

	assigned := 0
	for _, r := range plan.Routes {
		assigned += len(r.Stops)
	}
	JobsAssigned.Add(float64(assigned))
	JobsUnassigned.Set(float64(len(plan.Unassigned)))
}

func ObservePlanError() {
	PlanRuns.WithLabelValues("error").Inc()
}
