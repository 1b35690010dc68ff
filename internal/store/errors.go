package store

import "errors"

// ErrNotFound indicates the requested world is not in the store.
var ErrNotFound = errors.New("world not found")

// ErrInvalidTransition indicates a review action not allowed from the
// world's current status.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrSchemaMismatch indicates the database schema version doesn't match the
// version this binary expects.
var ErrSchemaMismatch = errors.New("schema version mismatch")
