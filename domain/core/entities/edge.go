package entities

import (
	"cadence-backend/domain/core/valueobjects"
	pkgerrors "cadence-backend/pkg/errors"
)

// Relationship is the typed semantic label on a directed edge.
type Relationship string

const (
	// RelationshipReceived links a patient to an intervention applied to them.
	RelationshipReceived Relationship = "received"

	// RelationshipProduced links an intervention to the outcome it caused.
	RelationshipProduced Relationship = "produced"

	// RelationshipExperienced links a patient to an outcome they experienced.
	RelationshipExperienced Relationship = "experienced"

	// RelationshipInformed links an outcome to a learning derived from it.
	RelationshipInformed Relationship = "informed"

	// RelationshipRecommends links a learning to an intervention it suggests.
	RelationshipRecommends Relationship = "recommends"

	// RelationshipBuildsOn links a learning to an earlier learning it refines.
	RelationshipBuildsOn Relationship = "builds_on"
)

// IsValid checks if the relationship is one of the known labels.
func (r Relationship) IsValid() bool {
	switch r {
	case RelationshipReceived, RelationshipProduced, RelationshipExperienced,
		RelationshipInformed, RelationshipRecommends, RelationshipBuildsOn:
		return true
	default:
		return false
	}
}

// String returns the string representation of the relationship.
func (r Relationship) String() string {
	return string(r)
}

// Edge is a directed, weighted, typed relationship between two nodes.
// Edges are immutable after construction.
type Edge struct {
	id           valueobjects.EdgeID
	source       valueobjects.NodeID
	target       valueobjects.NodeID
	month        valueobjects.Month
	relationship Relationship
	weight       float64
}

// NewEdge creates an edge with full validation. Endpoint existence is the
// graph aggregate's concern; the edge only validates its own fields.
func NewEdge(
	id valueobjects.EdgeID,
	source, target valueobjects.NodeID,
	month valueobjects.Month,
	relationship Relationship,
	weight float64,
) (*Edge, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidation("edge id cannot be empty")
	}
	if source.IsZero() || target.IsZero() {
		return nil, pkgerrors.NewValidationf("edge %s: source and target are required", id)
	}
	if !relationship.IsValid() {
		return nil, pkgerrors.NewValidationf("edge %s: unknown relationship %q", id, relationship)
	}
	if weight < 0 || weight > 1 {
		return nil, pkgerrors.NewValidationf("edge %s: weight must be in [0,1], got %v", id, weight)
	}

	return &Edge{
		id:           id,
		source:       source,
		target:       target,
		month:        month,
		relationship: relationship,
		weight:       weight,
	}, nil
}

// ID returns the edge's unique identifier.
func (e *Edge) ID() valueobjects.EdgeID {
	return e.id
}

// Source returns the source node ID.
func (e *Edge) Source() valueobjects.NodeID {
	return e.source
}

// Target returns the target node ID.
func (e *Edge) Target() valueobjects.NodeID {
	return e.target
}

// Month returns the month the relationship was established.
func (e *Edge) Month() valueobjects.Month {
	return e.month
}

// Relationship returns the semantic label.
func (e *Edge) Relationship() Relationship {
	return e.relationship
}

// Weight returns the relationship strength in [0,1].
func (e *Edge) Weight() float64 {
	return e.weight
}
