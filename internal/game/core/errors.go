package core

import "errors"

var (
	ErrInvalidCoordinates    = errors.New("invalid coordinates")
	ErrOutOfArena            = errors.New("coordinate outside arena bounds")
	ErrTileOccupied          = errors.New("tile already occupied")
	ErrNoStructure           = errors.New("no structure at coordinate")
	ErrInsufficientResources = errors.New("insufficient structure points")
	ErrDegenerateEdge        = errors.New("edge endpoints coincide")
	ErrUnsupportedSlope      = errors.New("edge slope is not axis-aligned or 45 degrees")
	ErrNotStationary         = errors.New("unit kind is not a stationary structure")
	ErrAlreadyUpgraded       = errors.New("structure is already upgraded")
	ErrInvalidPlayer         = errors.New("invalid player ID")
)
