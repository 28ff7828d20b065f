package core

import "fmt"

var (
	// ErrDuplicateContainer is returned when a container id is registered while
	// another container with the same id is still present.
	ErrDuplicateContainer = fmt.Errorf("duplicate container")

	// ErrContainerNotFound is returned when an operation references a container
	// id that is not registered.
	ErrContainerNotFound = fmt.Errorf("container not found")

	// ErrInvalidContainer is returned for malformed container configuration
	// (empty id, duplicate item ids).
	ErrInvalidContainer = fmt.Errorf("invalid container")

	// ErrInvalidItem is returned for item records without an id.
	ErrInvalidItem = fmt.Errorf("invalid item")
)
