// Package di assembles the application object graph with Wire.
package di

import (
	"net/http"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"cadence-backend/application/services"
	"cadence-backend/domain/core/aggregates"
	"cadence-backend/infrastructure/config"
	"cadence-backend/infrastructure/dataset"
	"cadence-backend/infrastructure/persistence/memory"
	"cadence-backend/interfaces/http/rest"
	pkgerrors "cadence-backend/pkg/errors"
	"cadence-backend/pkg/observability"
)

// Application is the fully wired application: everything main needs to run.
type Application struct {
	Config  *config.Config
	Logger  *zap.Logger
	Store   *memory.GraphStore
	Views   *services.ViewService
	Handler http.Handler

	// Watcher is nil when dataset watching is disabled or the dataset is
	// the embedded seed.
	Watcher *dataset.Watcher
}

// Providers is the full provider set for the application.
var Providers = wire.NewSet(
	provideConfig,
	provideLogger,
	provideRegistry,
	provideMetrics,
	provideGraph,
	provideStore,
	provideViewService,
	provideErrorHandler,
	provideHandler,
	provideWatcher,
	newApplication,
)

func provideConfig() (*config.Config, error) {
	return config.Load()
}

func provideLogger(cfg *config.Config) (*zap.Logger, error) {
	return observability.NewLogger(cfg.Environment, cfg.LogLevel)
}

func provideRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

func provideMetrics(registry *prometheus.Registry) *observability.Metrics {
	return observability.NewMetrics(registry)
}

func provideGraph(cfg *config.Config, logger *zap.Logger) (*aggregates.Graph, error) {
	graph, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		return nil, err
	}
	logger.Info("dataset loaded",
		zap.String("path", cfg.DatasetPath),
		zap.Int("nodes", graph.NodeCount()),
		zap.Int("edges", graph.EdgeCount()),
	)
	return graph, nil
}

func provideStore(graph *aggregates.Graph) *memory.GraphStore {
	return memory.NewGraphStore(graph)
}

func provideViewService(
	store *memory.GraphStore,
	logger *zap.Logger,
	metrics *observability.Metrics,
	cfg *config.Config,
) *services.ViewService {
	return services.NewViewService(store, logger, metrics, cfg.EnableViewCache)
}

func provideErrorHandler(logger *zap.Logger) *pkgerrors.ErrorHandler {
	return pkgerrors.NewErrorHandler(logger)
}

func provideHandler(
	views *services.ViewService,
	logger *zap.Logger,
	errorHandler *pkgerrors.ErrorHandler,
	metrics *observability.Metrics,
	registry *prometheus.Registry,
	cfg *config.Config,
) http.Handler {
	return rest.NewRouter(views, logger, errorHandler, metrics, registry, cfg.EnableCORS).Setup()
}

// provideWatcher wires the dataset hot-reload pipeline: file change ->
// validated reload -> snapshot swap -> cache invalidation.
func provideWatcher(
	cfg *config.Config,
	logger *zap.Logger,
	store *memory.GraphStore,
	views *services.ViewService,
	metrics *observability.Metrics,
) (*dataset.Watcher, error) {
	if !cfg.WatchDataset || cfg.DatasetPath == "" {
		return nil, nil
	}

	watcher, err := dataset.NewWatcher(cfg.DatasetPath, logger)
	if err != nil {
		return nil, err
	}
	watcher.OnReload(func(graph *aggregates.Graph) {
		store.Replace(graph)
		views.InvalidateCache()
		metrics.RecordGraphReload()
	})
	return watcher, nil
}

func newApplication(
	cfg *config.Config,
	logger *zap.Logger,
	store *memory.GraphStore,
	views *services.ViewService,
	handler http.Handler,
	watcher *dataset.Watcher,
) *Application {
	return &Application{
		Config:  cfg,
		Logger:  logger,
		Store:   store,
		Views:   views,
		Handler: handler,
		Watcher: watcher,
	}
}
