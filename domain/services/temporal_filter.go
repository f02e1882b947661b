package services

import (
	"cadence-backend/domain/core/entities"
	"cadence-backend/domain/core/valueobjects"
)

// FilterByMonth returns the subgraph visible at or before the given month:
// every node that exists by then, and every edge established by then whose
// endpoints both survive the node filter. Out-of-range months are clamped
// into the 12-month window; rejecting unparseable input is the transport
// layer's job.
//
// The result is a fresh View; input slices are never modified. For months
// m1 < m2 the view at m1 is always a subset (by id) of the view at m2.
func FilterByMonth(nodes []*entities.Node, edges []*entities.Edge, month int) View {
	cutoff := valueobjects.ClampMonth(month)

	visible := make([]*entities.Node, 0, len(nodes))
	index := make(map[valueobjects.NodeID]*entities.Node, len(nodes))
	for _, node := range nodes {
		if node.Month() <= cutoff {
			visible = append(visible, node)
			index[node.ID()] = node
		}
	}

	visibleEdges := make([]*entities.Edge, 0, len(edges))
	for _, edge := range edges {
		if edge.Month() > cutoff {
			continue
		}
		if _, ok := index[edge.Source()]; !ok {
			continue
		}
		if _, ok := index[edge.Target()]; !ok {
			continue
		}
		visibleEdges = append(visibleEdges, edge)
	}

	return View{Nodes: visible, Edges: visibleEdges}
}
