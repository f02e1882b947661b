package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cadence-backend/domain/core/entities"
)

func TestConnectedPath_AbsentNodeReturnsNil(t *testing.T) {
	nodes, edges := chainFixture(t)

	result := ConnectedPath(nodeID(t, "ghost"), nodes, edges, 0)
	assert.Nil(t, result)
}

func TestConnectedPath_ChainFromMiddle(t *testing.T) {
	nodes, edges := chainFixture(t)

	result := ConnectedPath(nodeID(t, "B"), nodes, edges, 0)
	require.NotNil(t, result)

	assert.ElementsMatch(t, []string{"A", "B", "C"}, idStrings(result.NodeIDs))
	assert.Len(t, result.EdgeIDs, 2)
}

func TestConnectedPath_IncludesFocusNode(t *testing.T) {
	nodes := []*entities.Node{
		testNode(t, "alone", entities.KindPatient, 1, nil),
	}

	result := ConnectedPath(nodeID(t, "alone"), nodes, nil, 0)
	require.NotNil(t, result)
	assert.ElementsMatch(t, []string{"alone"}, idStrings(result.NodeIDs))
	assert.Empty(t, result.EdgeIDs)
}

func TestConnectedPath_StaysWithinComponent(t *testing.T) {
	nodes, edges := chainFixture(t)
	nodes = append(nodes,
		testNode(t, "X", entities.KindPatient, 1, nil),
		testNode(t, "Y", entities.KindIntervention, 1, nil),
	)
	edges = append(edges, testEdge(t, "xy", "X", "Y", 1, entities.RelationshipReceived, 0.5))

	result := ConnectedPath(nodeID(t, "A"), nodes, edges, 0)
	require.NotNil(t, result)

	assert.ElementsMatch(t, []string{"A", "B", "C"}, idStrings(result.NodeIDs))
	assert.NotContains(t, idStrings(result.NodeIDs), "X")
}

func TestConnectedPath_Symmetry(t *testing.T) {
	nodes, edges := chainFixture(t)

	ids := []string{"A", "B", "C"}
	for _, from := range ids {
		fromResult := ConnectedPath(nodeID(t, from), nodes, edges, 0)
		require.NotNil(t, fromResult)
		for to := range fromResult.NodeIDs {
			toResult := ConnectedPath(to, nodes, edges, 0)
			require.NotNil(t, toResult)
			_, ok := toResult.NodeIDs[nodeID(t, from)]
			assert.True(t, ok, "reachability must be symmetric: %s -> %s but not back", from, to.String())
		}
	}
}

func TestConnectedPath_DepthCap(t *testing.T) {
	nodes, edges := chainFixture(t)

	tests := []struct {
		name      string
		depth     int
		wantNodes []string
	}{
		{
			name:      "depth 1 from A reaches only B",
			depth:     1,
			wantNodes: []string{"A", "B"},
		},
		{
			name:      "depth 2 reaches the whole chain",
			depth:     2,
			wantNodes: []string{"A", "B", "C"},
		},
		{
			name:      "non-positive depth means unbounded",
			depth:     -1,
			wantNodes: []string{"A", "B", "C"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ConnectedPath(nodeID(t, "A"), nodes, edges, tt.depth)
			require.NotNil(t, result)
			assert.ElementsMatch(t, tt.wantNodes, idStrings(result.NodeIDs))
		})
	}
}

func TestConnectedPath_CycleTerminates(t *testing.T) {
	nodes := []*entities.Node{
		testNode(t, "L1", entities.KindLearning, 1, entities.LearningAttributes{Pattern: "p", Confidence: 0.5, SampleSize: 10}),
		testNode(t, "L2", entities.KindLearning, 1, entities.LearningAttributes{Pattern: "q", Confidence: 0.5, SampleSize: 10}),
		testNode(t, "L3", entities.KindLearning, 1, entities.LearningAttributes{Pattern: "r", Confidence: 0.5, SampleSize: 10}),
	}
	edges := []*entities.Edge{
		testEdge(t, "e1", "L1", "L2", 1, entities.RelationshipBuildsOn, 0.5),
		testEdge(t, "e2", "L2", "L3", 1, entities.RelationshipBuildsOn, 0.5),
		testEdge(t, "e3", "L3", "L1", 1, entities.RelationshipBuildsOn, 0.5),
	}

	result := ConnectedPath(nodeID(t, "L1"), nodes, edges, 0)
	require.NotNil(t, result)

	assert.ElementsMatch(t, []string{"L1", "L2", "L3"}, idStrings(result.NodeIDs))
	// All three cycle edges belong to the highlighted component.
	assert.Len(t, result.EdgeIDs, 3)
}

func TestConnectedPath_IgnoresDanglingEdges(t *testing.T) {
	nodes, edges := chainFixture(t)
	edges = append(edges, testEdge(t, "dangling", "B", "ghost", 3, entities.RelationshipInformed, 0.5))

	result := ConnectedPath(nodeID(t, "B"), nodes, edges, 0)
	require.NotNil(t, result)

	assert.ElementsMatch(t, []string{"A", "B", "C"}, idStrings(result.NodeIDs))
	assert.Len(t, result.EdgeIDs, 2)
}

func BenchmarkConnectedPath(b *testing.B) {
	nodes, edges := chainFixture(b)
	start := nodes[1].ID()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = ConnectedPath(start, nodes, edges, 0)
	}
}
