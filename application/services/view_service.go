// Package services composes the pure analytics engine into the payloads the
// dashboard consumes: it sequences filter, optional prune, layout and
// metrics over the current graph snapshot and memoizes the results.
package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"cadence-backend/domain/core/entities"
	"cadence-backend/domain/core/valueobjects"
	domainservices "cadence-backend/domain/services"
	"cadence-backend/infrastructure/persistence/memory"
	pkgerrors "cadence-backend/pkg/errors"
	"cadence-backend/pkg/observability"
)

// minLearningsForPrune is the smallest learning population a view must have
// before a knowledge-loss simulation is meaningful. The engine itself prunes
// mechanically; this policy gate lives here.
const minLearningsForPrune = 5

// ViewOptions selects the variant of a composed view.
type ViewOptions struct {
	Direction domainservices.Direction
	Pruned    bool
}

type viewKey struct {
	month     int
	direction domainservices.Direction
	pruned    bool
}

// ViewService composes engine calls over the current graph snapshot.
// Composed views are memoized per (month, direction, pruned) until the
// snapshot changes; everything it returns is freshly allocated or immutable,
// so concurrent callers never share mutable state.
type ViewService struct {
	store   *memory.GraphStore
	logger  *zap.Logger
	metrics *observability.Metrics

	cacheEnabled bool
	cacheMu      sync.RWMutex
	cache        map[viewKey]*GraphView
}

// NewViewService creates a view service over the given graph store.
func NewViewService(
	store *memory.GraphStore,
	logger *zap.Logger,
	metrics *observability.Metrics,
	cacheEnabled bool,
) *ViewService {
	return &ViewService{
		store:        store,
		logger:       logger,
		metrics:      metrics,
		cacheEnabled: cacheEnabled,
		cache:        make(map[viewKey]*GraphView),
	}
}

// InvalidateCache drops all memoized views. Called when the underlying
// dataset snapshot is replaced.
func (s *ViewService) InvalidateCache() {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.cache = make(map[viewKey]*GraphView)
	s.logger.Debug("view cache invalidated")
}

// ViewAtMonth builds the composed dashboard view for a month: the temporal
// subgraph, optionally after a knowledge-loss simulation, with layout
// positions and metrics. Out-of-range months are clamped to the window.
func (s *ViewService) ViewAtMonth(ctx context.Context, month int, opts ViewOptions) (*GraphView, error) {
	if opts.Direction == "" {
		opts.Direction = domainservices.DirectionPrimary
	}
	if !opts.Direction.IsValid() {
		return nil, pkgerrors.NewValidationf("unknown layout direction %q", opts.Direction)
	}

	key := viewKey{
		month:     valueobjects.ClampMonth(month).Int(),
		direction: opts.Direction,
		pruned:    opts.Pruned,
	}

	if s.cacheEnabled {
		s.cacheMu.RLock()
		cached, ok := s.cache[key]
		s.cacheMu.RUnlock()
		if ok {
			s.metrics.RecordCacheHit()
			return cached, nil
		}
	}

	graph := s.store.Snapshot()
	view := s.filter(graph.Nodes(), graph.Edges(), month)

	composed := &GraphView{
		Month:     key.month,
		Direction: opts.Direction.String(),
		Pruned:    opts.Pruned,
	}

	nodes, edges := view.Nodes, view.Edges
	if opts.Pruned {
		if err := s.checkPruneGate(view.Nodes); err != nil {
			return nil, err
		}

		baseline := toMetricsView(s.computeMetrics(nodes, edges))
		composed.BaselineMetrics = &baseline

		result := s.prune(nodes, edges)
		summary := toPruneSummary(result)
		composed.Prune = &summary
		nodes, edges = result.Nodes, result.Edges
	}

	layout, err := s.layout(nodes, edges, opts.Direction)
	if err != nil {
		return nil, err
	}

	composed.Nodes = make([]NodeView, 0, len(layout))
	for _, ln := range layout {
		composed.Nodes = append(composed.Nodes, toNodeView(ln.Node, ln.Position.X(), ln.Position.Y()))
	}
	composed.Edges = toEdgeViews(edges)
	composed.Metrics = toMetricsView(s.computeMetrics(nodes, edges))

	if s.cacheEnabled {
		s.cacheMu.Lock()
		s.cache[key] = composed
		s.cacheMu.Unlock()
	}

	s.logger.Debug("composed graph view",
		zap.Int("month", key.month),
		zap.Bool("pruned", opts.Pruned),
		zap.Int("nodes", len(composed.Nodes)),
		zap.Int("edges", len(composed.Edges)),
	)

	return composed, nil
}

// FilterAtMonth returns the raw temporal subgraph for a month, without
// layout positions.
func (s *ViewService) FilterAtMonth(ctx context.Context, month int) (*FilterView, error) {
	graph := s.store.Snapshot()
	view := s.filter(graph.Nodes(), graph.Edges(), month)

	filtered := &FilterView{
		Month: valueobjects.ClampMonth(month).Int(),
		Nodes: make([]NodeView, 0, len(view.Nodes)),
		Edges: toEdgeViews(view.Edges),
	}
	for _, node := range view.Nodes {
		filtered.Nodes = append(filtered.Nodes, toNodeView(node, 0, 0))
	}
	return filtered, nil
}

// StatsAtMonth computes the engine metrics over the view at a month.
func (s *ViewService) StatsAtMonth(ctx context.Context, month int) (*MetricsView, error) {
	graph := s.store.Snapshot()
	view := s.filter(graph.Nodes(), graph.Edges(), month)
	stats := toMetricsView(s.computeMetrics(view.Nodes, view.Edges))
	return &stats, nil
}

// PrunePreview reports what a knowledge-loss simulation at the given month
// would remove, with metrics before and after. Nothing is committed.
func (s *ViewService) PrunePreview(ctx context.Context, month int) (*PrunePreview, error) {
	graph := s.store.Snapshot()
	view := s.filter(graph.Nodes(), graph.Edges(), month)

	if err := s.checkPruneGate(view.Nodes); err != nil {
		return nil, err
	}

	result := s.prune(view.Nodes, view.Edges)

	return &PrunePreview{
		Month:  valueobjects.ClampMonth(month).Int(),
		Before: toMetricsView(s.computeMetrics(view.Nodes, view.Edges)),
		After:  toMetricsView(s.computeMetrics(result.Nodes, result.Edges)),
		Prune:  toPruneSummary(result),
	}, nil
}

// PathHighlight finds everything connected to the given node within the view
// at a month. A node absent from the view yields Found=false, not an error.
// maxDepth <= 0 means unbounded.
func (s *ViewService) PathHighlight(ctx context.Context, rawNodeID string, month, maxDepth int) (*PathHighlight, error) {
	nodeID, err := valueobjects.NewNodeID(rawNodeID)
	if err != nil {
		return nil, err
	}

	graph := s.store.Snapshot()
	view := s.filter(graph.Nodes(), graph.Edges(), month)

	start := time.Now()
	result := domainservices.ConnectedPath(nodeID, view.Nodes, view.Edges, maxDepth)
	s.metrics.ObserveEngine("path", time.Since(start))

	return toPathHighlight(result), nil
}

// checkPruneGate rejects knowledge-loss simulations over views with too few
// learnings for the removal fraction to be meaningful.
func (s *ViewService) checkPruneGate(nodes []*entities.Node) error {
	learnings := 0
	for _, node := range nodes {
		if node.Kind() == entities.KindLearning {
			learnings++
		}
	}
	if learnings < minLearningsForPrune {
		return pkgerrors.NewValidationf(
			"knowledge-loss simulation requires at least %d learnings in view, have %d",
			minLearningsForPrune, learnings,
		)
	}
	return nil
}

// Instrumented engine wrappers.

func (s *ViewService) filter(nodes []*entities.Node, edges []*entities.Edge, month int) domainservices.View {
	start := time.Now()
	view := domainservices.FilterByMonth(nodes, edges, month)
	s.metrics.ObserveEngine("filter", time.Since(start))
	return view
}

func (s *ViewService) layout(nodes []*entities.Node, edges []*entities.Edge, direction domainservices.Direction) ([]domainservices.LayoutNode, error) {
	start := time.Now()
	layout, err := domainservices.ComputeLayout(nodes, edges, direction)
	s.metrics.ObserveEngine("layout", time.Since(start))
	return layout, err
}

func (s *ViewService) computeMetrics(nodes []*entities.Node, edges []*entities.Edge) domainservices.Metrics {
	start := time.Now()
	m := domainservices.ComputeGraphMetrics(nodes, edges)
	s.metrics.ObserveEngine("metrics", time.Since(start))
	return m
}

func (s *ViewService) prune(nodes []*entities.Node, edges []*entities.Edge) domainservices.PruneResult {
	start := time.Now()
	result := domainservices.PruneForKnowledgeLoss(nodes, edges)
	s.metrics.ObserveEngine("prune", time.Since(start))
	return result
}
