package valueobjects

import (
	"math"

	pkgerrors "cadence-backend/pkg/errors"
)

// Position is a value object representing node coordinates in 2D layout space.
type Position struct {
	x float64
	y float64
}

// NewPosition creates a position with validation.
func NewPosition(x, y float64) (Position, error) {
	if !isValidCoordinate(x) || !isValidCoordinate(y) {
		return Position{}, pkgerrors.NewValidation("invalid coordinates: must be finite numbers")
	}
	return Position{x: x, y: y}, nil
}

// X returns the X coordinate.
func (p Position) X() float64 {
	return p.x
}

// Y returns the Y coordinate.
func (p Position) Y() float64 {
	return p.y
}

// DistanceTo calculates the Euclidean distance to another position.
func (p Position) DistanceTo(other Position) float64 {
	dx := p.x - other.x
	dy := p.y - other.y
	return math.Sqrt(dx*dx + dy*dy)
}

// Equals checks if two positions are equal within a small tolerance.
func (p Position) Equals(other Position) bool {
	const epsilon = 1e-9
	return math.Abs(p.x-other.x) < epsilon &&
		math.Abs(p.y-other.y) < epsilon
}

// Swapped returns the position with its axes exchanged.
func (p Position) Swapped() Position {
	return Position{x: p.y, y: p.x}
}

// isValidCoordinate checks if a coordinate is a valid finite number.
func isValidCoordinate(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
