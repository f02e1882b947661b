package services

import (
	"testing"

	"cadence-backend/domain/core/entities"
	"cadence-backend/domain/core/valueobjects"
)

// testNode builds a node, failing the test on invalid input.
func testNode(t testing.TB, id string, kind entities.NodeKind, month int, attrs entities.Attributes) *entities.Node {
	t.Helper()

	nodeID, err := valueobjects.NewNodeID(id)
	if err != nil {
		t.Fatalf("bad node id %q: %v", id, err)
	}
	m, err := valueobjects.NewMonth(month)
	if err != nil {
		t.Fatalf("bad month %d: %v", month, err)
	}
	node, err := entities.NewNode(nodeID, kind, m, "node "+id, attrs)
	if err != nil {
		t.Fatalf("bad node %q: %v", id, err)
	}
	return node
}

// testEdge builds an edge, failing the test on invalid input.
func testEdge(t testing.TB, id, source, target string, month int, rel entities.Relationship, weight float64) *entities.Edge {
	t.Helper()

	edgeID, err := valueobjects.NewEdgeID(id)
	if err != nil {
		t.Fatalf("bad edge id %q: %v", id, err)
	}
	sourceID, err := valueobjects.NewNodeID(source)
	if err != nil {
		t.Fatalf("bad source id %q: %v", source, err)
	}
	targetID, err := valueobjects.NewNodeID(target)
	if err != nil {
		t.Fatalf("bad target id %q: %v", target, err)
	}
	m, err := valueobjects.NewMonth(month)
	if err != nil {
		t.Fatalf("bad month %d: %v", month, err)
	}
	edge, err := entities.NewEdge(edgeID, sourceID, targetID, m, rel, weight)
	if err != nil {
		t.Fatalf("bad edge %q: %v", id, err)
	}
	return edge
}

// nodeID builds a NodeID, failing the test on invalid input.
func nodeID(t testing.TB, id string) valueobjects.NodeID {
	t.Helper()

	parsed, err := valueobjects.NewNodeID(id)
	if err != nil {
		t.Fatalf("bad node id %q: %v", id, err)
	}
	return parsed
}

// idStrings flattens a node-id set into raw strings for assertions.
func idStrings(ids map[valueobjects.NodeID]struct{}) []string {
	out := make([]string, 0, len(ids))
	for id := range ids {
		out = append(out, id.String())
	}
	return out
}

// viewNodeIDs extracts the raw node ids of a view.
func viewNodeIDs(v View) []string {
	out := make([]string, 0, len(v.Nodes))
	for _, node := range v.Nodes {
		out = append(out, node.ID().String())
	}
	return out
}

// viewEdgeIDs extracts the raw edge ids of a view.
func viewEdgeIDs(v View) []string {
	out := make([]string, 0, len(v.Edges))
	for _, edge := range v.Edges {
		out = append(out, edge.ID().String())
	}
	return out
}

// chainFixture is the 3-node, 2-edge chain used across filter and path
// tests: A(month 1) --informed--> B(month 3) --builds_on--> C(month 6).
func chainFixture(t testing.TB) ([]*entities.Node, []*entities.Edge) {
	t.Helper()

	nodes := []*entities.Node{
		testNode(t, "A", entities.KindOutcome, 1, entities.OutcomeAttributes{Positive: true}),
		testNode(t, "B", entities.KindLearning, 3, entities.LearningAttributes{Pattern: "p", Confidence: 0.8, SampleSize: 10}),
		testNode(t, "C", entities.KindLearning, 6, entities.LearningAttributes{Pattern: "q", Confidence: 0.6, SampleSize: 4}),
	}
	edges := []*entities.Edge{
		testEdge(t, "e1", "A", "B", 3, entities.RelationshipInformed, 0.9),
		testEdge(t, "e2", "B", "C", 6, entities.RelationshipBuildsOn, 0.7),
	}
	return nodes, edges
}
