package game

import "errors"

var (
	ErrPlayerExists   = errors.New("player already exists")
	ErrPlayerNotFound = errors.New("player not found")

	// ErrEntityGone is returned when a weak reference is resolved after
	// the entity it points at was removed from the world.
	ErrEntityGone = errors.New("entity gone")

	// ErrMissingAttribute indicates a read of an attribute key that was
	// never set. Callers that rely on dispatch having set the key may
	// treat this as a programming fault.
	ErrMissingAttribute = errors.New("attribute not set")
)
