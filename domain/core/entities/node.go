package entities

import (
	"cadence-backend/domain/core/valueobjects"
	pkgerrors "cadence-backend/pkg/errors"
)

// NodeKind identifies the entity type a node represents.
type NodeKind string

const (
	KindPatient      NodeKind = "patient"
	KindIntervention NodeKind = "intervention"
	KindOutcome      NodeKind = "outcome"
	KindLearning     NodeKind = "learning"
)

// IsValid checks if the node kind is one of the four known kinds.
func (k NodeKind) IsValid() bool {
	switch k {
	case KindPatient, KindIntervention, KindOutcome, KindLearning:
		return true
	default:
		return false
	}
}

// String returns the string representation of the node kind.
func (k NodeKind) String() string {
	return string(k)
}

// Attributes is the kind-specific payload carried by a node.
type Attributes interface {
	AttributeKind() NodeKind
}

// PatientAttributes describes a trial participant.
type PatientAttributes struct {
	Trial     string
	RiskLevel string
}

// AttributeKind implements Attributes.
func (PatientAttributes) AttributeKind() NodeKind { return KindPatient }

// InterventionAttributes describes an action a coordinator took for a patient.
type InterventionAttributes struct {
	Category string
}

// AttributeKind implements Attributes.
func (InterventionAttributes) AttributeKind() NodeKind { return KindIntervention }

// OutcomeAttributes describes the observed result of an intervention.
type OutcomeAttributes struct {
	Positive bool
	Detail   string
}

// AttributeKind implements Attributes.
func (OutcomeAttributes) AttributeKind() NodeKind { return KindOutcome }

// LearningAttributes describes a generalized insight extracted from outcomes.
type LearningAttributes struct {
	Pattern     string
	Confidence  float64
	SampleSize  int
	DerivedFrom []valueobjects.NodeID
	AppliedTo   []valueobjects.NodeID
}

// AttributeKind implements Attributes.
func (LearningAttributes) AttributeKind() NodeKind { return KindLearning }

func (a LearningAttributes) validate() error {
	if a.Confidence < 0 || a.Confidence > 1 {
		return pkgerrors.NewValidationf("learning confidence must be in [0,1], got %v", a.Confidence)
	}
	if a.SampleSize < 0 {
		return pkgerrors.NewValidationf("learning sample size cannot be negative, got %d", a.SampleSize)
	}
	return nil
}

// Node is an entity in the institutional knowledge graph. Nodes are
// immutable after construction; engine functions share them freely.
type Node struct {
	id         valueobjects.NodeID
	kind       NodeKind
	month      valueobjects.Month
	label      string
	attributes Attributes
}

// NewNode creates a node with full validation of kind, month and attributes.
func NewNode(
	id valueobjects.NodeID,
	kind NodeKind,
	month valueobjects.Month,
	label string,
	attributes Attributes,
) (*Node, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidation("node id cannot be empty")
	}
	if !kind.IsValid() {
		return nil, pkgerrors.NewValidationf("unknown node kind %q", kind)
	}
	if label == "" {
		return nil, pkgerrors.NewValidationf("node %s: label cannot be empty", id)
	}
	if attributes != nil && attributes.AttributeKind() != kind {
		return nil, pkgerrors.NewValidationf(
			"node %s: %s attributes do not match kind %s",
			id, attributes.AttributeKind(), kind,
		)
	}
	if learning, ok := attributes.(LearningAttributes); ok {
		if err := learning.validate(); err != nil {
			return nil, pkgerrors.Wrap(err, "node "+id.String())
		}
	}

	return &Node{
		id:         id,
		kind:       kind,
		month:      month,
		label:      label,
		attributes: attributes,
	}, nil
}

// ID returns the node's unique identifier.
func (n *Node) ID() valueobjects.NodeID {
	return n.id
}

// Kind returns the node's kind.
func (n *Node) Kind() NodeKind {
	return n.kind
}

// Month returns the month the node first exists.
func (n *Node) Month() valueobjects.Month {
	return n.month
}

// Label returns the node's display label.
func (n *Node) Label() string {
	return n.label
}

// Attributes returns the kind-specific payload, which may be nil.
func (n *Node) Attributes() Attributes {
	return n.attributes
}

// Learning returns the learning payload when the node carries one.
func (n *Node) Learning() (LearningAttributes, bool) {
	attrs, ok := n.attributes.(LearningAttributes)
	return attrs, ok
}

// Outcome returns the outcome payload when the node carries one.
func (n *Node) Outcome() (OutcomeAttributes, bool) {
	attrs, ok := n.attributes.(OutcomeAttributes)
	return attrs, ok
}

// Patient returns the patient payload when the node carries one.
func (n *Node) Patient() (PatientAttributes, bool) {
	attrs, ok := n.attributes.(PatientAttributes)
	return attrs, ok
}

// Intervention returns the intervention payload when the node carries one.
func (n *Node) Intervention() (InterventionAttributes, bool) {
	attrs, ok := n.attributes.(InterventionAttributes)
	return attrs, ok
}
