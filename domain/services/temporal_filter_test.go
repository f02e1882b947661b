package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cadence-backend/domain/core/entities"
)

func TestFilterByMonth_Chain(t *testing.T) {
	nodes, edges := chainFixture(t)

	tests := []struct {
		name      string
		month     int
		wantNodes []string
		wantEdges []string
	}{
		{
			name:      "month 2 sees only the first node and no edges",
			month:     2,
			wantNodes: []string{"A"},
			wantEdges: []string{},
		},
		{
			name:      "month 3 sees the informed edge",
			month:     3,
			wantNodes: []string{"A", "B"},
			wantEdges: []string{"e1"},
		},
		{
			name:      "month 6 sees the whole chain",
			month:     6,
			wantNodes: []string{"A", "B", "C"},
			wantEdges: []string{"e1", "e2"},
		},
		{
			name:      "out-of-range month clamps to the end of the window",
			month:     99,
			wantNodes: []string{"A", "B", "C"},
			wantEdges: []string{"e1", "e2"},
		},
		{
			name:      "below-range month clamps to the first month",
			month:     -3,
			wantNodes: []string{"A"},
			wantEdges: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := FilterByMonth(nodes, edges, tt.month)
			assert.ElementsMatch(t, tt.wantNodes, viewNodeIDs(view))
			assert.ElementsMatch(t, tt.wantEdges, viewEdgeIDs(view))
		})
	}
}

func TestFilterByMonth_Monotonicity(t *testing.T) {
	nodes, edges := chainFixture(t)

	for m1 := 1; m1 <= 12; m1++ {
		for m2 := m1 + 1; m2 <= 12; m2++ {
			earlier := FilterByMonth(nodes, edges, m1)
			later := FilterByMonth(nodes, edges, m2)

			laterIDs := make(map[string]struct{}, len(later.Nodes))
			for _, node := range later.Nodes {
				laterIDs[node.ID().String()] = struct{}{}
			}
			for _, node := range earlier.Nodes {
				_, ok := laterIDs[node.ID().String()]
				require.True(t, ok, "node %s visible at month %d but not at month %d", node.ID(), m1, m2)
			}
		}
	}
}

func TestFilterByMonth_ReferentialClosure(t *testing.T) {
	nodes, edges := chainFixture(t)

	// An edge established in month 4 between a month-3 node and a month-6
	// node: its target is filtered out at month 4 even though the edge's own
	// month passes, so the edge must be dropped.
	edges = append(edges, testEdge(t, "cross", "B", "C", 6, entities.RelationshipRecommends, 0.5))

	for month := 1; month <= 12; month++ {
		view := FilterByMonth(nodes, edges, month)

		present := make(map[string]struct{}, len(view.Nodes))
		for _, node := range view.Nodes {
			present[node.ID().String()] = struct{}{}
		}
		for _, edge := range view.Edges {
			_, sourceOK := present[edge.Source().String()]
			_, targetOK := present[edge.Target().String()]
			assert.True(t, sourceOK, "month %d: edge %s has dangling source", month, edge.ID())
			assert.True(t, targetOK, "month %d: edge %s has dangling target", month, edge.ID())
		}
	}
}

func TestFilterByMonth_Determinism(t *testing.T) {
	nodes, edges := chainFixture(t)

	first := FilterByMonth(nodes, edges, 6)
	second := FilterByMonth(nodes, edges, 6)

	assert.ElementsMatch(t, viewNodeIDs(first), viewNodeIDs(second))
	assert.ElementsMatch(t, viewEdgeIDs(first), viewEdgeIDs(second))
}

func TestFilterByMonth_EmptyInputs(t *testing.T) {
	view := FilterByMonth(nil, nil, 6)
	assert.Empty(t, view.Nodes)
	assert.Empty(t, view.Edges)
}

func TestFilterByMonth_DoesNotMutateInputs(t *testing.T) {
	nodes, edges := chainFixture(t)
	nodesBefore := len(nodes)
	edgesBefore := len(edges)

	_ = FilterByMonth(nodes, edges, 2)

	assert.Len(t, nodes, nodesBefore)
	assert.Len(t, edges, edgesBefore)
}

func BenchmarkFilterByMonth(b *testing.B) {
	nodes, edges := chainFixture(b)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = FilterByMonth(nodes, edges, 6)
	}
}
