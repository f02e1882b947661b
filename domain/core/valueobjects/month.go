package valueobjects

import (
	pkgerrors "cadence-backend/pkg/errors"
)

// Month bounds for the rolling observation window.
const (
	MinMonth = 1
	MaxMonth = 12
)

// Month is a value object for a month index within the 12-month window.
type Month int

// NewMonth creates a month, rejecting values outside [MinMonth, MaxMonth].
func NewMonth(value int) (Month, error) {
	if value < MinMonth || value > MaxMonth {
		return 0, pkgerrors.NewValidationf("month must be between %d and %d, got %d", MinMonth, MaxMonth, value)
	}
	return Month(value), nil
}

// ClampMonth creates a month, clamping out-of-range values into the window.
// Lenient counterpart of NewMonth for callers that prefer saturation over
// rejection.
func ClampMonth(value int) Month {
	if value < MinMonth {
		return MinMonth
	}
	if value > MaxMonth {
		return MaxMonth
	}
	return Month(value)
}

// Int returns the month as a plain integer.
func (m Month) Int() int {
	return int(m)
}

// Before reports whether m precedes other.
func (m Month) Before(other Month) bool {
	return m < other
}
