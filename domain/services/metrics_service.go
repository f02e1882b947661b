package services

import (
	"cadence-backend/domain/core/entities"
	"cadence-backend/domain/core/valueobjects"
)

// Metrics aggregates structural and quality measures over a view.
type Metrics struct {
	// KnowledgeScore is a 0-100 composite: the mean evidence-adjusted
	// confidence across all learning nodes, scaled to a percentage.
	KnowledgeScore float64

	// TotalInsights is the number of learning nodes.
	TotalInsights int

	// Density is the ratio of realized to possible directed edges, in [0,1].
	Density float64

	// ConnectedComponents counts weakly-connected components; isolated nodes
	// each count as their own component.
	ConnectedComponents int

	// InterventionSuccessRate is the produced-edge-weighted fraction of
	// positive outcomes, as a percentage.
	InterventionSuccessRate float64

	// DanglingEdges counts edges skipped because an endpoint was missing
	// from the supplied node set. Always zero for correctly-composed views.
	DanglingEdges int
}

// coverageSampleSize is the sample size at which a learning's evidence is
// considered fully trustworthy; thinner samples discount its confidence
// proportionally.
const coverageSampleSize = 20

// ComputeGraphMetrics computes all view metrics in a single pass over the
// nodes and edges. Dangling edges are ignored and counted rather than
// treated as an error. The function is total: empty, single-node and fully
// disconnected inputs are ordinary cases.
func ComputeGraphMetrics(nodes []*entities.Node, edges []*entities.Edge) Metrics {
	index := indexNodes(nodes)

	// Union-find over node ids for weak connectivity.
	uf := newUnionFind(nodes)

	var (
		metrics        Metrics
		confidenceSum  float64
		successWeight  float64
		producedWeight float64
	)

	for _, node := range nodes {
		if learning, ok := node.Learning(); ok {
			metrics.TotalInsights++
			coverage := float64(learning.SampleSize) / coverageSampleSize
			if coverage > 1 {
				coverage = 1
			}
			confidenceSum += learning.Confidence * coverage
		}
	}

	validEdges := 0
	for _, edge := range edges {
		_, sourceOK := index[edge.Source()]
		target, targetOK := index[edge.Target()]
		if !sourceOK || !targetOK {
			metrics.DanglingEdges++
			continue
		}
		validEdges++

		uf.union(edge.Source(), edge.Target())

		if edge.Relationship() == entities.RelationshipProduced {
			if outcome, ok := target.Outcome(); ok {
				producedWeight += edge.Weight()
				if outcome.Positive {
					successWeight += edge.Weight()
				}
			}
		}
	}

	if n := len(nodes); n > 1 {
		metrics.Density = float64(validEdges) / float64(n*(n-1))
	}

	metrics.ConnectedComponents = uf.components()

	if metrics.TotalInsights > 0 {
		metrics.KnowledgeScore = 100 * confidenceSum / float64(metrics.TotalInsights)
	}

	if producedWeight > 0 {
		metrics.InterventionSuccessRate = 100 * successWeight / producedWeight
	}

	return metrics
}

// unionFind is a small disjoint-set over node ids with path compression and
// union by size.
type unionFind struct {
	parent map[valueobjects.NodeID]valueobjects.NodeID
	size   map[valueobjects.NodeID]int
}

func newUnionFind(nodes []*entities.Node) *unionFind {
	uf := &unionFind{
		parent: make(map[valueobjects.NodeID]valueobjects.NodeID, len(nodes)),
		size:   make(map[valueobjects.NodeID]int, len(nodes)),
	}
	for _, node := range nodes {
		uf.parent[node.ID()] = node.ID()
		uf.size[node.ID()] = 1
	}
	return uf
}

func (uf *unionFind) find(id valueobjects.NodeID) valueobjects.NodeID {
	root := id
	for uf.parent[root] != root {
		root = uf.parent[root]
	}
	for uf.parent[id] != root {
		uf.parent[id], id = root, uf.parent[id]
	}
	return root
}

func (uf *unionFind) union(a, b valueobjects.NodeID) {
	rootA, rootB := uf.find(a), uf.find(b)
	if rootA == rootB {
		return
	}
	if uf.size[rootA] < uf.size[rootB] {
		rootA, rootB = rootB, rootA
	}
	uf.parent[rootB] = rootA
	uf.size[rootA] += uf.size[rootB]
}

func (uf *unionFind) components() int {
	count := 0
	for id := range uf.parent {
		if uf.find(id) == id {
			count++
		}
	}
	return count
}
