package services

import (
	"sort"

	"cadence-backend/domain/core/entities"
	"cadence-backend/domain/core/valueobjects"
	pkgerrors "cadence-backend/pkg/errors"
)

// Direction selects the layout orientation.
type Direction string

const (
	// DirectionPrimary lays months out top to bottom.
	DirectionPrimary Direction = "primary"

	// DirectionSecondary lays months out left to right.
	DirectionSecondary Direction = "secondary"
)

// IsValid checks if the direction is one of the two orientations.
func (d Direction) IsValid() bool {
	return d == DirectionPrimary || d == DirectionSecondary
}

// String returns the string representation of the direction.
func (d Direction) String() string {
	return string(d)
}

// LayoutNode is a node augmented with its computed 2D position. Layout nodes
// are created fresh on every ComputeLayout call and superseded wholesale on
// the next one; there is no incremental relayout.
type LayoutNode struct {
	Node     *entities.Node
	Position valueobjects.Position
}

// Spacing between adjacent layers (depth axis) and adjacent nodes within a
// layer (breadth axis), in canvas units.
const (
	layerPitch = 160.0
	nodePitch  = 120.0
)

// kindRank orders node kinds within a layer so same-type nodes cluster.
var kindRank = map[entities.NodeKind]int{
	entities.KindPatient:      0,
	entities.KindIntervention: 1,
	entities.KindOutcome:      2,
	entities.KindLearning:     3,
}

// ComputeLayout assigns deterministic 2D coordinates to the node set using a
// layered placement: one layer per distinct month value, ordered ascending;
// within a layer nodes are ordered by kind (patient, intervention, outcome,
// learning) then id, and spaced evenly, centered around zero. Placement
// depends only on the node set; edges do not influence ordering. No
// edge-crossing minimization is attempted, which keeps the function
// O(n log n) and fully stable across repeated calls.
func ComputeLayout(nodes []*entities.Node, edges []*entities.Edge, direction Direction) ([]LayoutNode, error) {
	_ = edges

	if !direction.IsValid() {
		return nil, pkgerrors.NewValidationf("unknown layout direction %q", direction)
	}

	// Group nodes into layers keyed by month.
	layers := make(map[valueobjects.Month][]*entities.Node)
	for _, node := range nodes {
		layers[node.Month()] = append(layers[node.Month()], node)
	}

	months := make([]valueobjects.Month, 0, len(layers))
	for month := range layers {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i] < months[j] })

	placed := make([]LayoutNode, 0, len(nodes))
	for layerIndex, month := range months {
		layer := layers[month]
		sort.Slice(layer, func(i, j int) bool {
			ri, rj := kindRank[layer[i].Kind()], kindRank[layer[j].Kind()]
			if ri != rj {
				return ri < rj
			}
			return layer[i].ID().String() < layer[j].ID().String()
		})

		depth := float64(layerIndex) * layerPitch
		// Center the layer around zero so layers of different sizes stay
		// visually aligned.
		offset := float64(len(layer)-1) / 2.0
		for i, node := range layer {
			breadth := (float64(i) - offset) * nodePitch

			x, y := breadth, depth
			if direction == DirectionSecondary {
				x, y = depth, breadth
			}

			position, err := valueobjects.NewPosition(x, y)
			if err != nil {
				return nil, pkgerrors.Wrap(err, "layout produced invalid position")
			}
			placed = append(placed, LayoutNode{Node: node, Position: position})
		}
	}

	return placed, nil
}
