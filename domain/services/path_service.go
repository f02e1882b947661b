package services

import (
	"cadence-backend/domain/core/entities"
	"cadence-backend/domain/core/valueobjects"
)

// PathResult is the set of nodes and edges transitively connected to a focus
// node, for interactive highlighting.
type PathResult struct {
	NodeIDs map[valueobjects.NodeID]struct{}
	EdgeIDs map[valueobjects.EdgeID]struct{}
}

// ConnectedPath finds everything reachable from the given node when edge
// direction is ignored, restricted to the supplied view. It returns nil when
// the node is absent from the view: a "no highlight" result, not an error.
//
// maxDepth caps the traversal radius in hops; any value <= 0 means unbounded,
// in which case the result is the full weakly-connected component containing
// the node. The focus node itself is always included.
func ConnectedPath(
	nodeID valueobjects.NodeID,
	nodes []*entities.Node,
	edges []*entities.Edge,
	maxDepth int,
) *PathResult {
	index := indexNodes(nodes)
	if _, ok := index[nodeID]; !ok {
		return nil
	}

	valid, _ := closedEdges(edges, index)

	// Undirected adjacency over the view.
	type neighbor struct {
		node valueobjects.NodeID
		edge valueobjects.EdgeID
	}
	adjacency := make(map[valueobjects.NodeID][]neighbor, len(nodes))
	for _, edge := range valid {
		adjacency[edge.Source()] = append(adjacency[edge.Source()], neighbor{node: edge.Target(), edge: edge.ID()})
		adjacency[edge.Target()] = append(adjacency[edge.Target()], neighbor{node: edge.Source(), edge: edge.ID()})
	}

	result := &PathResult{
		NodeIDs: map[valueobjects.NodeID]struct{}{nodeID: {}},
		EdgeIDs: make(map[valueobjects.EdgeID]struct{}),
	}

	depth := map[valueobjects.NodeID]int{nodeID: 0}
	queue := []valueobjects.NodeID{nodeID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		currentDepth := depth[current]

		for _, next := range adjacency[current] {
			if _, seen := depth[next.node]; seen {
				// Already reached; the connecting edge still belongs to
				// the highlighted neighborhood.
				result.EdgeIDs[next.edge] = struct{}{}
				continue
			}
			if maxDepth > 0 && currentDepth >= maxDepth {
				continue
			}
			depth[next.node] = currentDepth + 1
			result.NodeIDs[next.node] = struct{}{}
			result.EdgeIDs[next.edge] = struct{}{}
			queue = append(queue, next.node)
		}
	}

	return result
}
