package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cadence-backend/application/services"
	"cadence-backend/infrastructure/dataset"
	"cadence-backend/infrastructure/persistence/memory"
	"cadence-backend/pkg/errors"
	"cadence-backend/pkg/observability"
)

const testDataset = `
nodes:
  - { id: p1, kind: patient, month: 1, label: P1, trial: RESOLVE-NASH, risk_level: high }
  - { id: i1, kind: intervention, month: 1, label: I1, category: sms_reminder }
  - { id: o1, kind: outcome, month: 2, label: O1, positive: true }
  - { id: L1, kind: learning, month: 2, label: L1, pattern: a, confidence: 0.9, sample_size: 20 }
  - { id: L2, kind: learning, month: 3, label: L2, pattern: b, confidence: 0.8, sample_size: 20 }
  - { id: L3, kind: learning, month: 4, label: L3, pattern: c, confidence: 0.7, sample_size: 20 }
  - { id: L4, kind: learning, month: 5, label: L4, pattern: d, confidence: 0.6, sample_size: 20 }
  - { id: L5, kind: learning, month: 6, label: L5, pattern: e, confidence: 0.5, sample_size: 20 }
edges:
  - { id: e1, source: p1, target: i1, month: 1, relationship: received, weight: 0.8 }
  - { id: e2, source: i1, target: o1, month: 2, relationship: produced, weight: 0.8 }
  - { id: e3, source: o1, target: L1, month: 2, relationship: informed, weight: 0.8 }
  - { id: e4, source: L2, target: L1, month: 3, relationship: builds_on, weight: 0.8 }
  - { id: e5, source: L3, target: L2, month: 4, relationship: builds_on, weight: 0.8 }
  - { id: e6, source: L4, target: L3, month: 5, relationship: builds_on, weight: 0.8 }
  - { id: e7, source: L5, target: L4, month: 6, relationship: builds_on, weight: 0.8 }
`

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	graph, err := dataset.Parse([]byte(testDataset))
	require.NoError(t, err)

	logger := zap.NewNop()
	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)
	views := services.NewViewService(memory.NewGraphStore(graph), logger, metrics, true)

	return NewRouter(views, logger, errors.NewErrorHandler(logger), metrics, registry, true).Setup()
}

func doRequest(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

type errorEnvelope struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestRouter_Probes(t *testing.T) {
	handler := newTestHandler(t)

	rec := doRequest(t, handler, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())

	rec = doRequest(t, handler, "/ready")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())
}

func TestRouter_PrometheusEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	// Generate some traffic first so a counter is registered.
	doRequest(t, handler, "/api/v1/graph/view?month=6")

	rec := doRequest(t, handler, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cadence_")
}

func TestGetView(t *testing.T) {
	handler := newTestHandler(t)

	rec := doRequest(t, handler, "/api/v1/graph/view?month=12")
	require.Equal(t, http.StatusOK, rec.Code)

	var view services.GraphView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, 12, view.Month)
	assert.Equal(t, "primary", view.Direction)
	assert.Len(t, view.Nodes, 8)
	assert.Len(t, view.Edges, 7)
	assert.Equal(t, 5, view.Metrics.TotalInsights)
	assert.Nil(t, view.Prune)
}

func TestGetView_Pruned(t *testing.T) {
	handler := newTestHandler(t)

	rec := doRequest(t, handler, "/api/v1/graph/view?month=12&pruned=true&direction=secondary")
	require.Equal(t, http.StatusOK, rec.Code)

	var view services.GraphView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.True(t, view.Pruned)
	assert.Equal(t, "secondary", view.Direction)
	require.NotNil(t, view.Prune)
	assert.Equal(t, 2, view.Prune.PrunedCount)
	require.NotNil(t, view.BaselineMetrics)
	assert.Equal(t, 5, view.BaselineMetrics.TotalInsights)
}

func TestGetView_BadRequests(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		name string
		path string
	}{
		{"missing month", "/api/v1/graph/view"},
		{"non-integer month", "/api/v1/graph/view?month=march"},
		{"bad pruned flag", "/api/v1/graph/view?month=6&pruned=maybe"},
		{"unknown direction", "/api/v1/graph/view?month=6&direction=diagonal"},
		{"prune below learning floor", "/api/v1/graph/view?month=4&pruned=true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, handler, tt.path)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var envelope errorEnvelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
			assert.Equal(t, "VALIDATION", envelope.Error.Type)
			assert.NotEmpty(t, envelope.Error.Message)
		})
	}
}

func TestGetView_OutOfRangeMonthClamps(t *testing.T) {
	handler := newTestHandler(t)

	rec := doRequest(t, handler, "/api/v1/graph/view?month=99")
	require.Equal(t, http.StatusOK, rec.Code)

	var view services.GraphView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, 12, view.Month)
}

func TestGetFilter(t *testing.T) {
	handler := newTestHandler(t)

	rec := doRequest(t, handler, "/api/v1/graph/filter?month=2")
	require.Equal(t, http.StatusOK, rec.Code)

	var view services.FilterView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, 2, view.Month)
	assert.Len(t, view.Nodes, 4)
	assert.Len(t, view.Edges, 3)
}

func TestGetStats(t *testing.T) {
	handler := newTestHandler(t)

	rec := doRequest(t, handler, "/api/v1/graph/stats?month=12")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats services.MetricsView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 5, stats.TotalInsights)
	assert.Equal(t, 1, stats.ConnectedComponents)
}

func TestGetPrunePreview(t *testing.T) {
	handler := newTestHandler(t)

	rec := doRequest(t, handler, "/api/v1/graph/prune-preview?month=12")
	require.Equal(t, http.StatusOK, rec.Code)

	var preview services.PrunePreview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &preview))
	assert.Equal(t, []string{"L1", "L2"}, preview.Prune.PrunedNodeIDs)
	assert.Equal(t, 5, preview.Before.TotalInsights)
	assert.Equal(t, 3, preview.After.TotalInsights)

	rec = doRequest(t, handler, "/api/v1/graph/prune-preview?month=4")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPath(t *testing.T) {
	handler := newTestHandler(t)

	t.Run("full component", func(t *testing.T) {
		rec := doRequest(t, handler, "/api/v1/graph/path/L5?month=12")
		require.Equal(t, http.StatusOK, rec.Code)

		var highlight services.PathHighlight
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &highlight))
		assert.True(t, highlight.Found)
		assert.Len(t, highlight.NodeIDs, 8)
		assert.Len(t, highlight.EdgeIDs, 7)
	})

	t.Run("depth capped", func(t *testing.T) {
		rec := doRequest(t, handler, "/api/v1/graph/path/L5?month=12&depth=1")
		require.Equal(t, http.StatusOK, rec.Code)

		var highlight services.PathHighlight
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &highlight))
		assert.ElementsMatch(t, []string{"L4", "L5"}, highlight.NodeIDs)
	})

	t.Run("unknown node is a null highlight", func(t *testing.T) {
		rec := doRequest(t, handler, "/api/v1/graph/path/ghost?month=12")
		require.Equal(t, http.StatusOK, rec.Code)

		var highlight services.PathHighlight
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &highlight))
		assert.False(t, highlight.Found)
		assert.Empty(t, highlight.NodeIDs)
	})

	t.Run("bad depth", func(t *testing.T) {
		rec := doRequest(t, handler, "/api/v1/graph/path/L5?month=12&depth=deep")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouter_UnknownRoute(t *testing.T) {
	handler := newTestHandler(t)

	rec := doRequest(t, handler, "/api/v1/graph/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
