// Package store persists collected worlds, their review state, and their
// metric history in SQLite. One row per world carries the latest metadata
// plus the review status; snapshots are append-only history points.
package store
