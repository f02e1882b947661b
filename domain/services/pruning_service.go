package services

import (
	"math"
	"sort"

	"cadence-backend/domain/core/entities"
	"cadence-backend/domain/core/valueobjects"
)

// PruneResult is the outcome of a knowledge-loss simulation: the surviving
// subgraph plus a description of what was removed, in ranking order.
type PruneResult struct {
	Nodes             []*entities.Node
	Edges             []*entities.Edge
	PrunedCount       int
	PrunedNodeIDs     []valueobjects.NodeID
	LostInsightLabels []string
}

// removalFraction is the share of learning nodes removed by a simulated
// departure of experienced coordinators.
const removalFraction = 0.4

// PruneForKnowledgeLoss simulates institutional knowledge loss by removing
// the highest-connectivity learning nodes together with every edge touching
// them. Connectivity is total degree (in + out) within the given edge set;
// ties break by higher confidence, then by id ascending, so the removal set
// is fully deterministic. The removal count is ceil(0.4 * learning count),
// applied mechanically; callers that want a minimum-population guard must
// enforce it before invoking.
func PruneForKnowledgeLoss(nodes []*entities.Node, edges []*entities.Edge) PruneResult {
	index := indexNodes(nodes)
	valid, _ := closedEdges(edges, index)

	degree := make(map[valueobjects.NodeID]int, len(nodes))
	for _, edge := range valid {
		degree[edge.Source()]++
		degree[edge.Target()]++
	}

	candidates := make([]*entities.Node, 0)
	for _, node := range nodes {
		if node.Kind() == entities.KindLearning {
			candidates = append(candidates, node)
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		di, dj := degree[candidates[i].ID()], degree[candidates[j].ID()]
		if di != dj {
			return di > dj
		}
		ci, cj := learningConfidence(candidates[i]), learningConfidence(candidates[j])
		if ci != cj {
			return ci > cj
		}
		return candidates[i].ID().String() < candidates[j].ID().String()
	})

	removeCount := int(math.Ceil(removalFraction * float64(len(candidates))))

	removed := make(map[valueobjects.NodeID]struct{}, removeCount)
	result := PruneResult{
		PrunedCount:       removeCount,
		PrunedNodeIDs:     make([]valueobjects.NodeID, 0, removeCount),
		LostInsightLabels: make([]string, 0, removeCount),
	}
	for _, node := range candidates[:removeCount] {
		removed[node.ID()] = struct{}{}
		result.PrunedNodeIDs = append(result.PrunedNodeIDs, node.ID())
		result.LostInsightLabels = append(result.LostInsightLabels, node.Label())
	}

	result.Nodes = make([]*entities.Node, 0, len(nodes)-removeCount)
	for _, node := range nodes {
		if _, gone := removed[node.ID()]; !gone {
			result.Nodes = append(result.Nodes, node)
		}
	}

	result.Edges = make([]*entities.Edge, 0, len(valid))
	for _, edge := range valid {
		if _, gone := removed[edge.Source()]; gone {
			continue
		}
		if _, gone := removed[edge.Target()]; gone {
			continue
		}
		result.Edges = append(result.Edges, edge)
	}

	return result
}

func learningConfidence(node *entities.Node) float64 {
	if learning, ok := node.Learning(); ok {
		return learning.Confidence
	}
	return 0
}
