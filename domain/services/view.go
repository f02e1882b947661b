// Package services contains the pure graph analytics engine: temporal
// filtering, layered layout, aggregate metrics, knowledge-loss pruning and
// neighborhood traversal. Every function here is a deterministic function of
// its explicit inputs, allocates its results fresh, and never touches shared
// state, so callers may invoke them concurrently on every interaction.
package services

import (
	"cadence-backend/domain/core/entities"
	"cadence-backend/domain/core/valueobjects"
)

// View is a referentially-closed subgraph: every edge's endpoints are
// guaranteed to be present in Nodes.
type View struct {
	Nodes []*entities.Node
	Edges []*entities.Edge
}

// indexNodes builds an id lookup over a node slice.
func indexNodes(nodes []*entities.Node) map[valueobjects.NodeID]*entities.Node {
	index := make(map[valueobjects.NodeID]*entities.Node, len(nodes))
	for _, node := range nodes {
		index[node.ID()] = node
	}
	return index
}

// closedEdges returns the edges whose endpoints are both present in the
// index, skipping dangling references instead of failing. The second return
// value is the number of edges skipped.
func closedEdges(edges []*entities.Edge, index map[valueobjects.NodeID]*entities.Node) ([]*entities.Edge, int) {
	kept := make([]*entities.Edge, 0, len(edges))
	dangling := 0
	for _, edge := range edges {
		if _, ok := index[edge.Source()]; !ok {
			dangling++
			continue
		}
		if _, ok := index[edge.Target()]; !ok {
			dangling++
			continue
		}
		kept = append(kept, edge)
	}
	return kept, dangling
}
