package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"worldfeed/internal/world"
)

// AddSnapshot appends one metric history point for a stored world.
func (s *Store) AddSnapshot(ctx context.Context, snap world.Snapshot) error {
	if strings.TrimSpace(snap.WorldID) == "" {
		return errors.New("snapshot world id is required")
	}
	capturedAt := snap.CapturedAt
	if capturedAt.IsZero() {
		capturedAt = time.Now().UTC()
	}

	if _, err := s.execWithRetry(
		ensureContext(ctx),
		`INSERT INTO snapshots (world_id, captured_at, visits, favorites, heat, popularity, updated_at_remote)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		snap.WorldID,
		capturedAt.UTC().Format(time.RFC3339Nano),
		snap.Visits, snap.Favorites, snap.Heat, snap.Popularity,
		snap.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

// Snapshots returns the metric history of a world in capture order.
func (s *Store) Snapshots(ctx context.Context, worldID string) ([]world.Snapshot, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT world_id, captured_at, visits, favorites, heat, popularity, updated_at_remote
         FROM snapshots WHERE world_id = ? ORDER BY captured_at, id`,
		worldID)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []world.Snapshot
	for rows.Next() {
		var snap world.Snapshot
		var capturedAt string
		if err := rows.Scan(&snap.WorldID, &capturedAt, &snap.Visits, &snap.Favorites,
			&snap.Heat, &snap.Popularity, &snap.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snap.CapturedAt = parseStoredTime(capturedAt)
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return snaps, nil
}

// SnapshotCounts returns the number of stored history points per world.
func (s *Store) SnapshotCounts(ctx context.Context) (map[string]int, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `SELECT world_id, COUNT(1) FROM snapshots GROUP BY world_id`)
	if err != nil {
		return nil, fmt.Errorf("count snapshots: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var worldID string
		var count int
		if err := rows.Scan(&worldID, &count); err != nil {
			return nil, fmt.Errorf("scan snapshot counts: %w", err)
		}
		counts[worldID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshot counts: %w", err)
	}
	return counts, nil
}
