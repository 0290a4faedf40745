// Package fault holds the error kinds every engine operation reports.
// Callers match them with errors.Is; engine errors wrap them with context.
package fault

import "errors"

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrOutOfBounds      = errors.New("out of bounds")
	ErrOccupied         = errors.New("cell occupied")
	ErrImpassable       = errors.New("terrain impassable")
	ErrCapacityExceeded = errors.New("unit capacity exceeded")
	ErrDeadEntity       = errors.New("entity is dead")
	ErrNotFound         = errors.New("not found")

	ErrTooFar                = errors.New("target too far")
	ErrImmobile              = errors.New("unit cannot move on its own")
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrInvalidState          = errors.New("invalid state")
	ErrMatchEnded            = errors.New("match has ended")
)
