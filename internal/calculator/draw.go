// Package calculator holds the pure arithmetic behind bucket draws, debt
// balances and inventory totals. Nothing here touches storage.
package calculator

import (
	"errors"
	"fmt"
)

var (
	// ErrNonPositiveUnits is returned when a draw asks for zero or fewer units.
	ErrNonPositiveUnits = errors.New("units must be positive")

	// ErrInsufficientUnits is returned when a bucket holds fewer units than requested.
	ErrInsufficientUnits = errors.New("insufficient units in bucket")
)

// Draw is the result of taking units out of a bucket.
type Draw struct {
	// Remaining is the bucket's unit count after the draw.
	Remaining int

	// Emptied is true when the draw took the last unit. The bucket must then
	// be completed and the member's active bucket advanced.
	Emptied bool
}

// DrawUnits computes the bucket state after consuming units from it.
// Based on: remaining' = remaining - units, rejected if it would go below zero.
func DrawUnits(remaining, units int) (Draw, error) {
	if units <= 0 {
		return Draw{}, fmt.Errorf("%w: got %d", ErrNonPositiveUnits, units)
	}
	if remaining < units {
		return Draw{}, fmt.Errorf("%w: %d remaining, %d requested", ErrInsufficientUnits, remaining, units)
	}

	next := remaining - units
	return Draw{Remaining: next, Emptied: next == 0}, nil
}
