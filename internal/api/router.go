package api

import (
	"delivery-dispatch-service/internal/api/handlers"
	"delivery-dispatch-service/internal/config"
	"delivery-dispatch-service/internal/platform/metrics"
	"delivery-dispatch-service/internal/ports"
	"delivery-dispatch-service/internal/services"
	"net/http"

	"golang.org/x/time/rate"
)

// Everything the HTTP layer needs, supplied by the composition root.
type Options struct {
	Planner  config.Planner
	Services services.Dependencies

	// Raw request rows and exported routes, rendered as HTML tables.
	Requests ports.TableReader
	Routes   ports.TableReader

	// Requests per second and burst allowed per client. Zero disables limiting.
	RateLimit rate.Limit
	Burst     int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(opts Options) http.Handler {
	mux := http.NewServeMux()

	jobHandler := &handlers.JobHandler{Source: opts.Services.Source}
	planHandler := &handlers.PlanHandler{
		Planner: opts.Planner,
		Deps:    opts.Services,
	}
	viewHandler := &handlers.ViewHandler{
		Requests: opts.Requests,
		Routes:   opts.Routes,
	}

	routes := map[string]http.HandlerFunc{
		"/health":         handlers.Health,
		"/jobs":           jobHandler.List,
		"/optimize-route": planHandler.Optimize,
		"/plans/latest":   planHandler.Latest,
		"/data-source":    viewHandler.DataSource,
		"/view-routes":    viewHandler.RouteTable,
	}
	known := make(map[string]bool, len(routes)+1)
	for path, h := range routes {
		mux.HandleFunc(path, h)
		known[path] = true
	}
	mux.Handle("/metrics", metrics.Handler())
	known["/metrics"] = true

	var h http.Handler = mux
	if opts.RateLimit > 0 {
		h = newRateLimiter(opts.RateLimit, max(opts.Burst, 1)).middleware(h)
	}
	h = loggingMiddleware(known, h)
	return requestIDMiddleware(h)
}
