package valueobjects

import (
	pkgerrors "cadence-backend/pkg/errors"
)

// NodeID is a value object wrapping the stable identifier of a graph node.
type NodeID struct {
	value string
}

// NewNodeID creates a node ID from a raw string.
func NewNodeID(value string) (NodeID, error) {
	if value == "" {
		return NodeID{}, pkgerrors.NewValidation("node id cannot be empty")
	}
	return NodeID{value: value}, nil
}

// String returns the raw identifier.
func (id NodeID) String() string {
	return id.value
}

// Equals checks two node IDs for equality.
func (id NodeID) Equals(other NodeID) bool {
	return id.value == other.value
}

// IsZero reports whether the ID is the zero value.
func (id NodeID) IsZero() bool {
	return id.value == ""
}

// EdgeID is a value object wrapping the identifier of a graph edge.
type EdgeID struct {
	value string
}

// NewEdgeID creates an edge ID from a raw string.
func NewEdgeID(value string) (EdgeID, error) {
	if value == "" {
		return EdgeID{}, pkgerrors.NewValidation("edge id cannot be empty")
	}
	return EdgeID{value: value}, nil
}

// String returns the raw identifier.
func (id EdgeID) String() string {
	return id.value
}

// Equals checks two edge IDs for equality.
func (id EdgeID) Equals(other EdgeID) bool {
	return id.value == other.value
}

// IsZero reports whether the ID is the zero value.
func (id EdgeID) IsZero() bool {
	return id.value == ""
}
