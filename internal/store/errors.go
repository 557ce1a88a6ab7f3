// Package store holds the sentinel errors shared by all persistence layers.
// Stores return these (optionally wrapped) so callers can branch on facts
// about the data without inspecting driver errors.
package store

import "errors"

var (
	// ErrNotFound means the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate means an insert collided with a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate")
)
