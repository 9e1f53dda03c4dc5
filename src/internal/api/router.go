package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mergehosts/mergehosts/src/internal/log"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	// AllowPublic disables the private subnet restriction.
	AllowPublic bool
	// Gatherer is served on /metrics; nil disables the endpoint.
	Gatherer prometheus.Gatherer
	Logger   *log.Logger
}

// NewRouter creates a new HTTP router with all endpoints.
func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}

	r := chi.NewRouter()

	// Apply middleware
	r.Use(Recovery(logger))
	r.Use(Logger(logger))
	if !opts.AllowPublic {
		r.Use(PrivateSubnetOnly(logger))
	}

	r.Get("/hosts", h.GetHosts)
	r.Get("/health", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/summary", h.GetSummary)
	})

	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	registerPprof(r)

	return r
}
