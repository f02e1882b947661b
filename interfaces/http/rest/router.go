// Package rest wires the HTTP surface: routes, middleware and the
// operational endpoints.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"cadence-backend/application/services"
	"cadence-backend/interfaces/http/rest/handlers"
	"cadence-backend/interfaces/http/rest/middleware"
	"cadence-backend/pkg/errors"
	"cadence-backend/pkg/observability"
)

// Router creates and configures the HTTP router.
type Router struct {
	views        *services.ViewService
	logger       *zap.Logger
	errorHandler *errors.ErrorHandler
	metrics      *observability.Metrics
	gatherer     prometheus.Gatherer
	enableCORS   bool
}

// NewRouter creates a new router instance.
func NewRouter(
	views *services.ViewService,
	logger *zap.Logger,
	errorHandler *errors.ErrorHandler,
	metrics *observability.Metrics,
	gatherer prometheus.Gatherer,
	enableCORS bool,
) *Router {
	return &Router{
		views:        views,
		logger:       logger,
		errorHandler: errorHandler,
		metrics:      metrics,
		gatherer:     gatherer,
		enableCORS:   enableCORS,
	}
}

// Setup configures all routes and middleware.
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	router.Use(middleware.Metrics(rt.metrics))

	if rt.enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(rt.gatherer, promhttp.HandlerOpts{}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/graph", func(r chi.Router) {
			graphHandler := handlers.NewGraphHandler(rt.views, rt.logger, rt.errorHandler)
			r.Get("/view", graphHandler.GetView)
			r.Get("/filter", graphHandler.GetFilter)
			r.Get("/stats", graphHandler.GetStats)
			r.Get("/prune-preview", graphHandler.GetPrunePreview)
			r.Get("/path/{nodeID}", graphHandler.GetPath)
		})
	})

	return router
}

// healthCheck handles liveness probes.
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness probes. The graph is loaded before the
// server starts listening, so reaching this handler means we are ready.
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
