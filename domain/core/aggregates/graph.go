package aggregates

import (
	"cadence-backend/domain/core/entities"
	"cadence-backend/domain/core/valueobjects"
	pkgerrors "cadence-backend/pkg/errors"
)

// Graph is the aggregate root for the full institutional knowledge graph.
// It is built once from the dataset, validated, and never mutated; the
// engine only ever reads snapshots of it. Node and edge pointers handed out
// by the accessors are safe to share because the entities are immutable.
type Graph struct {
	nodes     map[valueobjects.NodeID]*entities.Node
	edges     map[valueobjects.EdgeID]*entities.Edge
	nodeOrder []valueobjects.NodeID
	edgeOrder []valueobjects.EdgeID
}

// NewGraph builds a graph from the given nodes and edges, enforcing the
// model invariants: unique ids, both edge endpoints present, and no edge
// established before either of its endpoints exists.
func NewGraph(nodes []*entities.Node, edges []*entities.Edge) (*Graph, error) {
	g := &Graph{
		nodes:     make(map[valueobjects.NodeID]*entities.Node, len(nodes)),
		edges:     make(map[valueobjects.EdgeID]*entities.Edge, len(edges)),
		nodeOrder: make([]valueobjects.NodeID, 0, len(nodes)),
		edgeOrder: make([]valueobjects.EdgeID, 0, len(edges)),
	}

	for _, node := range nodes {
		if node == nil {
			return nil, pkgerrors.NewValidation("graph cannot contain nil nodes")
		}
		if _, exists := g.nodes[node.ID()]; exists {
			return nil, pkgerrors.NewValidationf("duplicate node id %s", node.ID())
		}
		g.nodes[node.ID()] = node
		g.nodeOrder = append(g.nodeOrder, node.ID())
	}

	for _, edge := range edges {
		if edge == nil {
			return nil, pkgerrors.NewValidation("graph cannot contain nil edges")
		}
		if _, exists := g.edges[edge.ID()]; exists {
			return nil, pkgerrors.NewValidationf("duplicate edge id %s", edge.ID())
		}

		source, ok := g.nodes[edge.Source()]
		if !ok {
			return nil, pkgerrors.NewValidationf("edge %s references missing source node %s", edge.ID(), edge.Source())
		}
		target, ok := g.nodes[edge.Target()]
		if !ok {
			return nil, pkgerrors.NewValidationf("edge %s references missing target node %s", edge.ID(), edge.Target())
		}

		// An edge cannot appear before both endpoints exist.
		if edge.Month() < source.Month() || edge.Month() < target.Month() {
			return nil, pkgerrors.NewValidationf(
				"edge %s established in month %d before its endpoints exist (source month %d, target month %d)",
				edge.ID(), edge.Month().Int(), source.Month().Int(), target.Month().Int(),
			)
		}

		g.edges[edge.ID()] = edge
		g.edgeOrder = append(g.edgeOrder, edge.ID())
	}

	return g, nil
}

// Nodes returns a fresh slice of all nodes in insertion order.
func (g *Graph) Nodes() []*entities.Node {
	nodes := make([]*entities.Node, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Edges returns a fresh slice of all edges in insertion order.
func (g *Graph) Edges() []*entities.Edge {
	edges := make([]*entities.Edge, 0, len(g.edgeOrder))
	for _, id := range g.edgeOrder {
		edges = append(edges, g.edges[id])
	}
	return edges
}

// Node looks up a node by id.
func (g *Graph) Node(id valueobjects.NodeID) (*entities.Node, bool) {
	node, ok := g.nodes[id]
	return node, ok
}

// Edge looks up an edge by id.
func (g *Graph) Edge(id valueobjects.EdgeID) (*entities.Edge, bool) {
	edge, ok := g.edges[id]
	return edge, ok
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}
