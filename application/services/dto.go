package services

import (
	"sort"

	"cadence-backend/domain/core/entities"
	domainservices "cadence-backend/domain/services"
)

// NodeView is the serializable shape of a positioned node. Exactly one of
// the kind-specific payloads is set, matching Kind.
type NodeView struct {
	ID    string  `json:"id"`
	Kind  string  `json:"kind"`
	Month int     `json:"month"`
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`

	Patient      *PatientView      `json:"patient,omitempty"`
	Intervention *InterventionView `json:"intervention,omitempty"`
	Outcome      *OutcomeView      `json:"outcome,omitempty"`
	Learning     *LearningView     `json:"learning,omitempty"`
}

type PatientView struct {
	Trial     string `json:"trial,omitempty"`
	RiskLevel string `json:"riskLevel,omitempty"`
}

type InterventionView struct {
	Category string `json:"category,omitempty"`
}

type OutcomeView struct {
	Positive bool   `json:"positive"`
	Detail   string `json:"detail,omitempty"`
}

type LearningView struct {
	Pattern     string   `json:"pattern"`
	Confidence  float64  `json:"confidence"`
	SampleSize  int      `json:"sampleSize"`
	DerivedFrom []string `json:"derivedFrom,omitempty"`
	AppliedTo   []string `json:"appliedTo,omitempty"`
}

// EdgeView is the serializable shape of an edge.
type EdgeView struct {
	ID           string  `json:"id"`
	Source       string  `json:"source"`
	Target       string  `json:"target"`
	Month        int     `json:"month"`
	Relationship string  `json:"relationship"`
	Weight       float64 `json:"weight"`
}

// MetricsView is the serializable shape of the engine metrics.
type MetricsView struct {
	KnowledgeScore          float64 `json:"knowledgeScore"`
	TotalInsights           int     `json:"totalInsights"`
	Density                 float64 `json:"density"`
	ConnectedComponents     int     `json:"connectedComponents"`
	InterventionSuccessRate float64 `json:"interventionSuccessRate"`
	DanglingEdges           int     `json:"danglingEdges"`
}

// PruneSummary describes what a knowledge-loss simulation removed.
type PruneSummary struct {
	PrunedCount       int      `json:"prunedCount"`
	PrunedNodeIDs     []string `json:"prunedNodeIds"`
	LostInsightLabels []string `json:"lostInsightLabels"`
}

// GraphView is the composed dashboard payload: the positioned subgraph for a
// month plus its metrics. BaselineMetrics and Prune are present only for
// pruned views, so the dashboard can show the before/after delta.
type GraphView struct {
	Month     int    `json:"month"`
	Direction string `json:"direction"`
	Pruned    bool   `json:"pruned"`

	Nodes   []NodeView  `json:"nodes"`
	Edges   []EdgeView  `json:"edges"`
	Metrics MetricsView `json:"metrics"`

	BaselineMetrics *MetricsView  `json:"baselineMetrics,omitempty"`
	Prune           *PruneSummary `json:"prune,omitempty"`
}

// FilterView is the raw temporal subgraph for a month, without layout.
type FilterView struct {
	Month int        `json:"month"`
	Nodes []NodeView `json:"nodes"`
	Edges []EdgeView `json:"edges"`
}

// PrunePreview reports what a knowledge-loss simulation would remove at a
// given month, with metrics before and after, without committing anything.
type PrunePreview struct {
	Month  int          `json:"month"`
	Before MetricsView  `json:"before"`
	After  MetricsView  `json:"after"`
	Prune  PruneSummary `json:"prune"`
}

// PathHighlight is the set of node and edge ids connected to a focus node.
// Found is false when the node is absent from the requested view; that is a
// valid empty highlight, not an error.
type PathHighlight struct {
	Found   bool     `json:"found"`
	NodeIDs []string `json:"nodeIds"`
	EdgeIDs []string `json:"edgeIds"`
}

func toNodeView(node *entities.Node, x, y float64) NodeView {
	view := NodeView{
		ID:    node.ID().String(),
		Kind:  node.Kind().String(),
		Month: node.Month().Int(),
		Label: node.Label(),
		X:     x,
		Y:     y,
	}

	switch node.Kind() {
	case entities.KindPatient:
		if attrs, ok := node.Patient(); ok {
			view.Patient = &PatientView{Trial: attrs.Trial, RiskLevel: attrs.RiskLevel}
		}
	case entities.KindIntervention:
		if attrs, ok := node.Intervention(); ok {
			view.Intervention = &InterventionView{Category: attrs.Category}
		}
	case entities.KindOutcome:
		if attrs, ok := node.Outcome(); ok {
			view.Outcome = &OutcomeView{Positive: attrs.Positive, Detail: attrs.Detail}
		}
	case entities.KindLearning:
		if attrs, ok := node.Learning(); ok {
			learning := &LearningView{
				Pattern:    attrs.Pattern,
				Confidence: attrs.Confidence,
				SampleSize: attrs.SampleSize,
			}
			for _, id := range attrs.DerivedFrom {
				learning.DerivedFrom = append(learning.DerivedFrom, id.String())
			}
			for _, id := range attrs.AppliedTo {
				learning.AppliedTo = append(learning.AppliedTo, id.String())
			}
			view.Learning = learning
		}
	}

	return view
}

func toEdgeViews(edges []*entities.Edge) []EdgeView {
	views := make([]EdgeView, 0, len(edges))
	for _, edge := range edges {
		views = append(views, EdgeView{
			ID:           edge.ID().String(),
			Source:       edge.Source().String(),
			Target:       edge.Target().String(),
			Month:        edge.Month().Int(),
			Relationship: edge.Relationship().String(),
			Weight:       edge.Weight(),
		})
	}
	return views
}

func toMetricsView(m domainservices.Metrics) MetricsView {
	return MetricsView{
		KnowledgeScore:          m.KnowledgeScore,
		TotalInsights:           m.TotalInsights,
		Density:                 m.Density,
		ConnectedComponents:     m.ConnectedComponents,
		InterventionSuccessRate: m.InterventionSuccessRate,
		DanglingEdges:           m.DanglingEdges,
	}
}

func toPruneSummary(result domainservices.PruneResult) PruneSummary {
	summary := PruneSummary{
		PrunedCount:       result.PrunedCount,
		PrunedNodeIDs:     make([]string, 0, len(result.PrunedNodeIDs)),
		LostInsightLabels: result.LostInsightLabels,
	}
	for _, id := range result.PrunedNodeIDs {
		summary.PrunedNodeIDs = append(summary.PrunedNodeIDs, id.String())
	}
	return summary
}

func toPathHighlight(result *domainservices.PathResult) *PathHighlight {
	if result == nil {
		return &PathHighlight{Found: false, NodeIDs: []string{}, EdgeIDs: []string{}}
	}

	highlight := &PathHighlight{
		Found:   true,
		NodeIDs: make([]string, 0, len(result.NodeIDs)),
		EdgeIDs: make([]string, 0, len(result.EdgeIDs)),
	}
	for id := range result.NodeIDs {
		highlight.NodeIDs = append(highlight.NodeIDs, id.String())
	}
	for id := range result.EdgeIDs {
		highlight.EdgeIDs = append(highlight.EdgeIDs, id.String())
	}
	sort.Strings(highlight.NodeIDs)
	sort.Strings(highlight.EdgeIDs)
	return highlight
}
