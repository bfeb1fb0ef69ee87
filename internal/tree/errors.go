package tree

import "errors"

var (
	// ErrPayloadNotFound means the payload has no leaf in the tree. Callers
	// treat this as their view of the tree having drifted from the tree's.
	ErrPayloadNotFound = errors.New("payload not found")

	// ErrNotRestorable means no usable restore memento exists for a payload.
	// Callers fall back to a normal add.
	ErrNotRestorable = errors.New("payload not restorable")

	// ErrDuplicatePayload means the payload already has a leaf.
	ErrDuplicatePayload = errors.New("payload already present")

	// ErrInvalidMode means an add mode names no axis or both axes.
	ErrInvalidMode = errors.New("invalid add mode")

	// ErrNotLeaf means an operation that needs a leaf was given a container.
	ErrNotLeaf = errors.New("node is not a leaf")
)
